// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package osfs provides OS Filesystem access.
package osfs

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"go.chromium.org/infra/build/hdrguard/o11y/clog"
	"go.chromium.org/infra/build/hdrguard/o11y/iometrics"
)

// OSFS provides OS Filesystem access.
// It counts metrics by iometrics.
type OSFS struct {
	*iometrics.IOMetrics
}

// New creates new OSFS.
func New(name string) *OSFS {
	return &OSFS{IOMetrics: iometrics.New(name)}
}

const slowThreshold = 1 * time.Minute

func logSlow(ctx context.Context, name string, dur time.Duration, err error) {
	buf := make([]byte, 4*1024)
	n := runtime.Stack(buf, false)
	clog.Warningf(ctx, "slow op %s: %s %v\n%s", name, dur, err, buf[:n])
}

// Lstat returns a FileInfo describing the named file.
func (fsys *OSFS) Lstat(ctx context.Context, name string) (fs.FileInfo, error) {
	started := time.Now()
	fi, err := os.Lstat(name)
	fsys.OpsDone(err)
	if dur := time.Since(started); dur > slowThreshold {
		logSlow(ctx, name, dur, err)
	}
	return fi, err
}

// Stat returns a FileInfo describing the named file, following
// symlinks.
func (fsys *OSFS) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	started := time.Now()
	fi, err := os.Stat(name)
	fsys.OpsDone(err)
	if dur := time.Since(started); dur > slowThreshold {
		logSlow(ctx, name, dur, err)
	}
	return fi, err
}

// ReadFile reads the named file and returns the contents.
func (fsys *OSFS) ReadFile(ctx context.Context, name string) ([]byte, error) {
	started := time.Now()
	buf, err := os.ReadFile(name)
	fsys.ReadDone(len(buf), err)
	if dur := time.Since(started); dur > slowThreshold {
		logSlow(ctx, name, dur, err)
	}
	return buf, err
}

// WriteFile overwrites the named file with data.
// It keeps the permission bits of the existing file.
// If name is a symlink, the link target is overwritten.
func (fsys *OSFS) WriteFile(ctx context.Context, name string, data []byte) error {
	perm := fs.FileMode(0644)
	fi, err := fsys.Stat(ctx, name)
	if err == nil {
		perm = fi.Mode().Perm()
	}
	started := time.Now()
	err = os.WriteFile(name, data, perm)
	fsys.WriteDone(len(data), err)
	if dur := time.Since(started); dur > slowThreshold {
		logSlow(ctx, name, dur, err)
	}
	return err
}

// WalkDir walks the file tree rooted at root, calling fn for each file
// or directory in the tree, as filepath.WalkDir does.
// Each visited entry is counted as an operation.
// It stops walking when ctx is canceled.
func (fsys *OSFS) WalkDir(ctx context.Context, root string, fn fs.WalkDirFunc) error {
	started := time.Now()
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		fsys.OpsDone(err)
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		return fn(path, d, err)
	})
	if dur := time.Since(started); dur > slowThreshold {
		clog.Infof(ctx, "slow walk %s: %s", root, dur)
	}
	return err
}
