// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package hdrscan

import "regexp"

// directive patterns. all are anchored at start of line.
var (
	reQuoteInclude = regexp.MustCompile(`^\s*#\s*include\s+"(.*?)"`)
	reAngleInclude = regexp.MustCompile(`^\s*#\s*include\s+<(.*?)>`)
	reIf           = regexp.MustCompile(`^\s*#\s*if\s`)
	reIfdef        = regexp.MustCompile(`^\s*#\s*ifdef\s`)
	reIfndef       = regexp.MustCompile(`^\s*#\s*ifndef\s+\S`)
	reEndif        = regexp.MustCompile(`^\s*#\s*endif\b`)
	reDefine       = regexp.MustCompile(`^\s*#\s*define\s+(\S+)\s+(\w+)`)
	reNamespace    = regexp.MustCompile(`^\s*namespace(\s+[A-Za-z_][\w:]*)?\s*(\{|$)`)
)

// isConditional reports whether line opens a #if, #ifdef or #ifndef block.
func isConditional(line string) bool {
	return reIf.MatchString(line) || reIfdef.MatchString(line) || reIfndef.MatchString(line)
}

func isEndif(line string) bool {
	return reEndif.MatchString(line)
}

func isNamespace(line string) bool {
	return reNamespace.MatchString(line)
}

// matchInclude returns included path and its form if line is #include.
func matchInclude(line string) (string, IncludeForm, bool) {
	if m := reQuoteInclude.FindStringSubmatch(line); m != nil {
		return m[1], Quoted, true
	}
	if m := reAngleInclude.FindStringSubmatch(line); m != nil {
		return m[1], Angle, true
	}
	return "", 0, false
}

// matchDefine returns macro name and value if line is `#define NAME VALUE`.
func matchDefine(line string) (name, value string, ok bool) {
	m := reDefine.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
