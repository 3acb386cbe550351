// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package hdrscan

import "strings"

// DefaultLocalPrefix is the path prefix of project local includes.
const DefaultLocalPrefix = "spark/"

// Options is options for Rewrite.
type Options struct {
	// LocalPrefix is the path prefix of project local includes.
	// Default to DefaultLocalPrefix if empty.
	LocalPrefix string
}

func (o Options) localPrefix() string {
	if o.LocalPrefix == "" {
		return DefaultLocalPrefix
	}
	return o.LocalPrefix
}

// IsLocal reports whether the include path is a project local include.
func (o Options) IsLocal(path string) bool {
	return strings.HasPrefix(path, o.localPrefix())
}

// IncludeBlock returns the canonical include block lines for guard and
// includes.  Every include is followed by a blank line.
func IncludeBlock(guard string, includes []Include, opts Options) []string {
	block := make([]string, 0, 3+4*len(includes))
	block = append(block,
		"#ifndef "+guard,
		"#define "+guard+" 1",
		"")
	for _, inc := range includes {
		sym := GuardSymbol(inc.Path)
		if opts.IsLocal(inc.Path) {
			block = append(block,
				"#ifndef "+sym,
				`  #include "`+inc.Path+`"`,
				"#endif",
				"")
			continue
		}
		block = append(block,
			"#if HAVE_"+sym,
			"  #include <"+inc.Path+">",
			"#endif",
			"")
	}
	return block
}

// Rewrite replaces lines from the first #if-family directive up to
// (not including) the first namespace with IncludeBlock.
// Only includes inside the replaced region are moved into the block;
// includes above it stay where they are.
// Trailing blank lines at the end of file are removed.
// It returns false if res doesn't have both landmarks, or if the
// replaced region doesn't leave exactly one conditional open.
// lines is not modified.
func Rewrite(lines []string, res Result, guard string, opts Options) ([]string, bool) {
	if !res.HasLandmarks() {
		return nil, false
	}
	region := lines[res.FirstConditional:res.FirstNamespace]
	if nesting(region) != 1 {
		return nil, false
	}
	var includes []Include
	for _, inc := range res.Includes {
		if inc.Line >= res.FirstConditional {
			includes = append(includes, inc)
		}
	}
	block := IncludeBlock(guard, includes, opts)
	out := make([]string, 0, len(lines)-len(region)+len(block))
	out = append(out, lines[:res.FirstConditional]...)
	out = append(out, block...)
	out = append(out, lines[res.FirstNamespace:]...)
	for len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" {
		out = out[:len(out)-1]
	}
	return out, true
}

// nesting returns net #if nesting depth of lines.
func nesting(lines []string) int {
	n := 0
	for _, line := range lines {
		switch {
		case isConditional(line):
			n++
		case isEndif(line):
			n--
		}
	}
	return n
}
