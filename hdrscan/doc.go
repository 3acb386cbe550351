// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package hdrscan provides a line-oriented scanner for C/C++ header files
// that checks include guards and rewrites the include block.
//
// It only recognizes the following directives, at the start of a line
// (after optional whitespace)
//
//	#if COND
//	#ifdef NAME
//	#ifndef NAME
//	#endif
//	#define NAME VALUE
//	#include "foo.h"
//	#include <foo.h>
//
// and namespace opening lines such as `namespace foo {`.
//
// It is not a preprocessor. It doesn't expand macros, and doesn't
// handle comments, string literals nor multiline (\ at the end of line)
// directives.
//
// Scan tracks #if nesting and finds two landmark lines: the first
// #if-family directive and the first namespace.  Rewrite replaces
// the lines between them with the canonical include block
//
//	#ifndef FOO_BAR_H
//	#define FOO_BAR_H 1
//
//	#ifndef SPARK_BASE_H
//	  #include "spark/base.h"
//	#endif
//
//	#if HAVE_VECTOR
//	  #include <vector>
//	#endif
//
// where project local includes are recognized by a path prefix.
package hdrscan
