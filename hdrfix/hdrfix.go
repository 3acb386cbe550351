// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package hdrfix checks and fixes include guards and include blocks
// of header files.
package hdrfix

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pmezard/go-difflib/difflib"

	"go.chromium.org/infra/build/hdrguard/hdrscan"
	"go.chromium.org/infra/build/hdrguard/hdrwalk"
	"go.chromium.org/infra/build/hdrguard/o11y/clog"
	"go.chromium.org/infra/build/hdrguard/osfs"
)

// Mode selects the checks performed on each file.
// Nesting is always checked.
type Mode int

const (
	// CheckGuard reports guard defines that don't match the guard
	// symbol derived from the file path.
	CheckGuard Mode = 1 << iota
	// Rewrite rewrites the include block into canonical form.
	Rewrite
)

// Options is options of Fixer.
type Options struct {
	Mode Mode

	// LocalPrefix is the path prefix of project local includes.
	LocalPrefix string

	// DryRun reports files to update without writing them.
	DryRun bool

	// Diff prints unified diff of updated files.
	Diff bool

	// Out receives diagnostics. Default to os.Stdout.
	Out io.Writer

	// FS is used to access files. Default to osfs.New("hdrfix").
	FS *osfs.OSFS
}

// Stats is statistics of a run.
type Stats struct {
	// Files is the number of header files processed.
	Files int
	// Unmatched is the number of files with unmatched conditionals.
	Unmatched int
	// Mismatched is the number of files with guard mismatch.
	Mismatched int
	// Updated is the number of files updated (or to be updated in dry run).
	Updated int
}

func (s Stats) String() string {
	return fmt.Sprintf("files=%d unmatched=%d mismatched=%d updated=%d", s.Files, s.Unmatched, s.Mismatched, s.Updated)
}

// Fixer checks and fixes header files.
type Fixer struct {
	opts  Options
	stats Stats
}

// New creates a new Fixer.
func New(opts Options) *Fixer {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.FS == nil {
		opts.FS = osfs.New("hdrfix")
	}
	return &Fixer{opts: opts}
}

// Stats returns statistics of files processed so far.
func (f *Fixer) Stats() Stats {
	return f.stats
}

// Run walks roots in order and processes each header file sequentially.
// It stops at the first I/O error.
func (f *Fixer) Run(ctx context.Context, w *hdrwalk.Walker, roots []string) (Stats, error) {
	logger := clog.New(uuid.New().String())
	ctx = clog.NewContext(ctx, logger)
	defer logger.Close()

	started := time.Now()
	for _, root := range roots {
		rctx := clog.NewSpan(ctx, map[string]string{"root": root})
		err := w.Walk(rctx, root, func(hf hdrwalk.File) error {
			return f.File(rctx, hf)
		})
		if err != nil {
			return f.stats, err
		}
	}
	clog.Infof(ctx, "done %s in %s: %s", f.stats, time.Since(started), f.opts.FS.Stats())
	return f.stats, nil
}

// File processes a header file.
// Malformed files and guard mismatches are reported to Out, and
// are not errors.  It returns an error only on I/O failure.
func (f *Fixer) File(ctx context.Context, hf hdrwalk.File) error {
	ctx = clog.NewSpan(ctx, map[string]string{"file": hf.Path})
	buf, err := f.opts.FS.ReadFile(ctx, hf.Path)
	if err != nil {
		return fmt.Errorf("read %s: %w", hf.Path, err)
	}
	f.stats.Files++
	lines, eol := hdrscan.SplitLines(buf)
	guard := hdrscan.GuardSymbol(hf.Rel)
	res := hdrscan.Scan(ctx, hf.Path, lines)
	if clog.V(ctx, 1) {
		clog.Infof(ctx, "guard=%s nesting=%d if=%d namespace=%d includes=%d", guard, res.Nesting, res.FirstConditional, res.FirstNamespace, len(res.Includes))
	}
	if !res.Balanced() {
		f.stats.Unmatched++
		fmt.Fprintf(f.opts.Out, "Unmatched conditional: %s\n", hf.Path)
		return nil
	}
	if f.opts.Mode&CheckGuard != 0 {
		if m := hdrscan.CheckGuard(res, guard); m != nil {
			f.stats.Mismatched++
			fmt.Fprintf(f.opts.Out, "Guard mismatch: %s:%d: expected %s, found %s %s\n", hf.Path, m.Line+1, m.Want, m.Got, m.Value)
		}
	}
	if f.opts.Mode&Rewrite == 0 {
		return nil
	}
	newLines, ok := hdrscan.Rewrite(lines, res, guard, hdrscan.Options{LocalPrefix: f.opts.LocalPrefix})
	if !ok {
		if clog.V(ctx, 1) {
			clog.Infof(ctx, "no include block")
		}
		return nil
	}
	newBuf := hdrscan.JoinLines(newLines, eol)
	if bytes.Equal(buf, newBuf) {
		return nil
	}
	f.stats.Updated++
	if f.opts.DryRun {
		fmt.Fprintf(f.opts.Out, "Would update: %s\n", hf.Path)
	} else {
		fmt.Fprintf(f.opts.Out, "Updating: %s\n", hf.Path)
	}
	if f.opts.Diff {
		err = writeDiff(f.opts.Out, hf.Path, buf, newBuf)
		if err != nil {
			return err
		}
	}
	if f.opts.DryRun {
		return nil
	}
	err = f.opts.FS.WriteFile(ctx, hf.Path, newBuf)
	if err != nil {
		return fmt.Errorf("write %s: %w", hf.Path, err)
	}
	return nil
}

func writeDiff(w io.Writer, fname string, a, b []byte) error {
	return difflib.WriteUnifiedDiff(w, difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(a)),
		B:        difflib.SplitLines(string(b)),
		FromFile: "a/" + fname,
		ToFile:   "b/" + fname,
		Context:  3,
	})
}
