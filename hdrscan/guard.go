// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package hdrscan

import (
	"path/filepath"
	"strings"
)

// GuardSymbol returns include guard macro name for the relative path.
// e.g. "foo/bar.h" -> "FOO_BAR_H".
// Any byte other than [A-Z0-9_] after upper-casing becomes '_'.
func GuardSymbol(rel string) string {
	rel = filepath.ToSlash(rel)
	var sb strings.Builder
	sb.Grow(len(rel))
	for i := 0; i < len(rel); i++ {
		c := rel[i]
		switch {
		case c >= 'a' && c <= 'z':
			sb.WriteByte(c - 'a' + 'A')
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
			sb.WriteByte(c)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// Mismatch is a guard define that doesn't match the expected guard symbol.
type Mismatch struct {
	Want  string
	Got   string
	Value string
	Line  int
}

// CheckGuard checks the guard define found by Scan against want.
// It returns nil if the guard matches, or no guard define was found.
func CheckGuard(res Result, want string) *Mismatch {
	if res.Guard == nil || res.Guard.Name == want {
		return nil
	}
	return &Mismatch{
		Want:  want,
		Got:   res.Guard.Name,
		Value: res.Guard.Value,
		Line:  res.Guard.Line,
	}
}
