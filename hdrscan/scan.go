// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package hdrscan

import (
	"context"
	"time"

	"go.chromium.org/infra/build/hdrguard/o11y/clog"
)

// IncludeForm is syntactic form of #include.
type IncludeForm int

const (
	// Quoted is `#include "path"`.
	Quoted IncludeForm = iota + 1
	// Angle is `#include <path>`.
	Angle
)

func (f IncludeForm) String() string {
	switch f {
	case Quoted:
		return "quoted"
	case Angle:
		return "angle"
	}
	return "unknown"
}

// Include is an #include directive found before the first namespace.
type Include struct {
	Path string
	Form IncludeForm
	// Line is zero-based line index.
	Line int
}

// Define is a `#define NAME VALUE` directive.
type Define struct {
	Name  string
	Value string
	// Line is zero-based line index.
	Line int
}

// Result is a result of Scan.
type Result struct {
	// Nesting is #if nesting depth at the end of file.
	Nesting int

	// FirstConditional is the line index of the first #if, #ifdef
	// or #ifndef, or -1 if not found.
	FirstConditional int

	// FirstNamespace is the line index of the first namespace opening
	// line, or -1 if not found.
	FirstNamespace int

	// Includes are #include found before the first namespace,
	// in encounter order.
	Includes []Include

	// Guard is the first #define at nesting depth 1, or nil.
	Guard *Define
}

// Balanced reports whether all #if-family directives are closed by #endif.
func (r Result) Balanced() bool {
	return r.Nesting == 0
}

// HasLandmarks reports whether the include block can be located.
func (r Result) HasLandmarks() bool {
	return r.FirstConditional >= 0 && r.FirstNamespace >= 0 && r.FirstConditional < r.FirstNamespace
}

// Scan scans lines of a header file in a single pass.
// fname is used only for logging.
func Scan(ctx context.Context, fname string, lines []string) Result {
	started := time.Now()
	res := Result{
		FirstConditional: -1,
		FirstNamespace:   -1,
	}
	for i, line := range lines {
		if res.Nesting == 1 && res.Guard == nil {
			if name, value, ok := matchDefine(line); ok {
				res.Guard = &Define{Name: name, Value: value, Line: i}
				if clog.V(ctx, 1) {
					clog.Infof(ctx, "%s:%d: guard define %s %s", fname, i+1, name, value)
				}
				continue
			}
		}
		cond := isConditional(line)
		if cond && res.FirstConditional < 0 {
			res.FirstConditional = i
		}
		if res.FirstNamespace < 0 && isNamespace(line) {
			res.FirstNamespace = i
			if clog.V(ctx, 1) {
				clog.Infof(ctx, "%s:%d: namespace", fname, i+1)
			}
		}
		switch {
		case cond:
			res.Nesting++
		case isEndif(line):
			res.Nesting--
		}
		if res.FirstNamespace >= 0 {
			continue
		}
		if path, form, ok := matchInclude(line); ok {
			res.Includes = append(res.Includes, Include{Path: path, Form: form, Line: i})
			if clog.V(ctx, 2) {
				clog.Infof(ctx, "%s:%d: include %s %q", fname, i+1, form, path)
			}
		}
	}
	if dur := time.Since(started); dur > time.Second {
		clog.Infof(ctx, "slow scan %s %s", fname, dur)
	}
	return res
}
