// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package hdrscan

import (
	"bytes"
	"strings"
)

// LineEnding returns the line terminator of buf: "\r\n" if the first
// line ends with CRLF, "\n" otherwise.
func LineEnding(buf []byte) string {
	i := bytes.IndexByte(buf, '\n')
	if i > 0 && buf[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// SplitLines splits buf into lines without line terminators, and
// returns the lines and the line terminator of buf (see LineEnding).
// A final line terminator doesn't produce an empty last line.
func SplitLines(buf []byte) ([]string, string) {
	eol := LineEnding(buf)
	if len(buf) == 0 {
		return nil, eol
	}
	lines := strings.Split(string(buf), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if eol == "\r\n" {
		for i, line := range lines {
			lines[i] = strings.TrimSuffix(line, "\r")
		}
	}
	return lines, eol
}

// JoinLines joins lines with eol, and terminates the last line.
func JoinLines(lines []string, eol string) []byte {
	if len(lines) == 0 {
		return nil
	}
	n := len(lines) * len(eol)
	for _, line := range lines {
		n += len(line)
	}
	buf := make([]byte, 0, n)
	for _, line := range lines {
		buf = append(buf, line...)
		buf = append(buf, eol...)
	}
	return buf
}
