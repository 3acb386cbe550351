// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package hdrflags provides flags and the runner shared by the
// fix and check subcommands.
package hdrflags

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"go.chromium.org/infra/build/hdrguard/hdrfix"
	"go.chromium.org/infra/build/hdrguard/hdrwalk"
	"go.chromium.org/infra/build/hdrguard/osfs"
)

// excludesFlag is a repeatable flag of exclusion patterns.
type excludesFlag []string

func (f *excludesFlag) String() string {
	return strings.Join(*f, ",")
}

func (f *excludesFlag) Set(v string) error {
	*f = append(*f, v)
	return nil
}

// Flags holds flags to select header files.
type Flags struct {
	Excludes excludesFlag
	Ext      string
}

// Register registers flags in fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.Var(&f.Excludes, "x", "exclusion pattern (shell glob) matched against file names. can be repeated")
	fs.Var(&f.Excludes, "exclude", "same as -x")
	fs.StringVar(&f.Ext, "ext", hdrwalk.DefaultExt, "file name extension of header files")
}

// Parse parses args where flags and positional arguments may be
// interspersed, and returns the positional arguments.
// Arguments after "--" are always positional.
func Parse(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for len(args) > 0 {
		err := fs.Parse(args)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", err, flag.ErrHelp)
		}
		rest := fs.Args()
		if endsWithTerminator(fs, args[:len(args)-len(rest)]) {
			positional = append(positional, rest...)
			break
		}
		if len(rest) == 0 {
			break
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
	return positional, nil
}

// endsWithTerminator reports whether the flag arguments consumed by
// fs.Parse end with a "--" terminator, as opposed to "--" given as
// a flag value (e.g. "-x --").
func endsWithTerminator(fs *flag.FlagSet, consumed []string) bool {
	for i := 0; i < len(consumed); i++ {
		arg := consumed[i]
		if arg == "--" {
			return i == len(consumed)-1
		}
		name := strings.TrimLeft(arg, "-")
		if strings.Contains(name, "=") {
			continue
		}
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			continue
		}
		// value in the next argument.
		i++
	}
	return false
}

// Run runs a fixer on roots with opts.
// Usage errors are wrapped with flag.ErrHelp.
func Run(ctx context.Context, f *Flags, opts hdrfix.Options, roots []string) (hdrfix.Stats, error) {
	if len(roots) == 0 {
		return hdrfix.Stats{}, fmt.Errorf("no input files or directories: %w", flag.ErrHelp)
	}
	fsys := osfs.New("hdrguard")
	w, err := hdrwalk.New(fsys, f.Ext, f.Excludes)
	if err != nil {
		return hdrfix.Stats{}, fmt.Errorf("%w: %w", err, flag.ErrHelp)
	}
	opts.FS = fsys
	return hdrfix.New(opts).Run(ctx, w, roots)
}
