// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package iometrics counts filesystem operations of a run.
package iometrics

import (
	"fmt"
	"sync"
)

// IOMetrics holds I/O counters.
// A nil *IOMetrics is valid and counts nothing.
type IOMetrics struct {
	name string

	mu    sync.Mutex
	stats Stats
}

// New returns new iometrics for name.
func New(name string) *IOMetrics {
	return &IOMetrics{name: name}
}

// Stats is a snapshot of I/O counters.
type Stats struct {
	// Ops counts operations other than reads and writes,
	// e.g. stat, directory reads during walk.
	Ops     int64
	OpsErrs int64

	ROps   int64
	RBytes int64
	RErrs  int64

	WOps   int64
	WBytes int64
	WErrs  int64
}

func (s Stats) String() string {
	return fmt.Sprintf("ops=%d(err=%d) read=%d/%dB(err=%d) write=%d/%dB(err=%d)",
		s.Ops, s.OpsErrs,
		s.ROps, s.RBytes, s.RErrs,
		s.WOps, s.WBytes, s.WErrs)
}

// OpsDone counts a non read/write operation. err is the operation error.
func (m *IOMetrics) OpsDone(err error) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.Ops++
	if err != nil {
		m.stats.OpsErrs++
	}
}

// ReadDone counts a read of n bytes.
func (m *IOMetrics) ReadDone(n int, err error) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.ROps++
	m.stats.RBytes += int64(n)
	if err != nil {
		m.stats.RErrs++
	}
}

// WriteDone counts a write of n bytes.
func (m *IOMetrics) WriteDone(n int, err error) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.WOps++
	m.stats.WBytes += int64(n)
	if err != nil {
		m.stats.WErrs++
	}
}

// Name returns the name of the iometrics.
func (m *IOMetrics) Name() string {
	if m == nil {
		return "<nil>"
	}
	return m.name
}

// Stats returns the snapshot of the counters.
func (m *IOMetrics) Stats() Stats {
	if m == nil {
		return Stats{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}
