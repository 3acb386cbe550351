// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package hdrwalk

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/go-cmp/cmp"

	"go.chromium.org/infra/build/hdrguard/osfs"
)

func setupFiles(t *testing.T, dir string, fnames []string) {
	t.Helper()
	for _, fname := range fnames {
		fname = filepath.Join(dir, fname)
		err := os.MkdirAll(filepath.Dir(fname), 0755)
		if err != nil {
			t.Fatal(err)
		}
		err = os.WriteFile(fname, []byte("#ifndef X\n#endif\n"), 0644)
		if err != nil {
			t.Fatal(err)
		}
	}
}

func walkRels(ctx context.Context, t *testing.T, w *Walker, root string) []string {
	t.Helper()
	var got []string
	err := w.Walk(ctx, root, func(f File) error {
		got = append(got, f.Rel)
		return nil
	})
	if err != nil {
		t.Fatalf("w.Walk(ctx, %q, fn)=%v; want nil", root, err)
	}
	sort.Strings(got)
	return got
}

func TestWalk(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	setupFiles(t, dir, []string{
		"spark/base.h",
		"spark/base.cpp",
		"spark/skip_me.h",
		"spark/sema/pass.h",
		"spark/sema/skip_me.h",
		"spark/sema/deep/er/skip_me.h",
		"spark/sema/deep/er/keep.h",
		"spark/gen.inc.h",
		"top.h",
		"README",
	})

	w, err := New(osfs.New("test"), "", []string{"skip_*.h", "*.inc.h"})
	if err != nil {
		t.Fatalf("New(...)=_, %v; want nil err", err)
	}
	got := walkRels(ctx, t, w, dir)
	want := []string{
		"spark/base.h",
		"spark/sema/deep/er/keep.h",
		"spark/sema/pass.h",
		"top.h",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("w.Walk diff -want +got:\n%s", diff)
	}
}

func TestWalkFileRoot(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	setupFiles(t, dir, []string{"spark/base.h", "spark/skip_me.h"})

	w, err := New(osfs.New("test"), ".h", []string{"skip_*.h"})
	if err != nil {
		t.Fatal(err)
	}
	root := filepath.Join(dir, "spark/base.h")
	var got []File
	err = w.Walk(ctx, root, func(f File) error {
		got = append(got, f)
		return nil
	})
	if err != nil {
		t.Fatalf("w.Walk(ctx, %q, fn)=%v; want nil", root, err)
	}
	want := []File{{Root: root, Path: root, Rel: "base.h"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("w.Walk diff -want +got:\n%s", diff)
	}

	excluded := filepath.Join(dir, "spark/skip_me.h")
	if got := walkRels(ctx, t, w, excluded); len(got) != 0 {
		t.Errorf("w.Walk(ctx, %q, fn) yields %q; want none", excluded, got)
	}
}

func TestWalkExt(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	setupFiles(t, dir, []string{"a.h", "b.hpp", "c/d.hpp"})

	w, err := New(osfs.New("test"), ".hpp", nil)
	if err != nil {
		t.Fatal(err)
	}
	got := walkRels(ctx, t, w, dir)
	want := []string{"b.hpp", "c/d.hpp"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("w.Walk diff -want +got:\n%s", diff)
	}
}

func TestWalkSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink requires privilege on windows")
	}
	ctx := context.Background()
	dir := t.TempDir()
	setupFiles(t, dir, []string{"real.h", "sub/in.h"})
	for link, target := range map[string]string{
		"link.h":     "real.h",
		"dangling.h": "missing.h",
		"dirlink.h":  "sub",
		"subdir":     "sub",
	} {
		err := os.Symlink(target, filepath.Join(dir, link))
		if err != nil {
			t.Fatal(err)
		}
	}
	w, err := New(osfs.New("test"), "", nil)
	if err != nil {
		t.Fatal(err)
	}
	got := walkRels(ctx, t, w, dir)
	want := []string{"link.h", "real.h", "sub/in.h"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("w.Walk diff -want +got:\n%s", diff)
	}

	root := filepath.Join(dir, "link.h")
	if got := walkRels(ctx, t, w, root); !cmp.Equal(got, []string{"link.h"}) {
		t.Errorf("w.Walk(ctx, %q, fn) yields %q; want [link.h]", root, got)
	}
}

func TestWalkMissingRoot(t *testing.T) {
	ctx := context.Background()
	w, err := New(osfs.New("test"), "", nil)
	if err != nil {
		t.Fatal(err)
	}
	root := filepath.Join(t.TempDir(), "missing")
	err = w.Walk(ctx, root, func(File) error { return nil })
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("w.Walk(ctx, %q, fn)=%v; want %v", root, err, os.ErrNotExist)
	}
}

func TestWalkStopsOnError(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	setupFiles(t, dir, []string{"a.h", "b.h", "c.h"})
	w, err := New(osfs.New("test"), "", nil)
	if err != nil {
		t.Fatal(err)
	}
	errStop := errors.New("stop")
	n := 0
	err = w.Walk(ctx, dir, func(File) error {
		n++
		return errStop
	})
	if !errors.Is(err, errStop) || n != 1 {
		t.Errorf("w.Walk(ctx, %q, fn)=%v; n=%d; want %v; n=1", dir, err, n, errStop)
	}
}

func TestNewBadPattern(t *testing.T) {
	_, err := New(osfs.New("test"), "", []string{"[skip"})
	if !errors.Is(err, doublestar.ErrBadPattern) {
		t.Errorf("New(..., %q)=_, %v; want %v", "[skip", err, doublestar.ErrBadPattern)
	}
}

func TestExcluded(t *testing.T) {
	w, err := New(osfs.New("test"), "", []string{"skip_*.h", "gen?.h", "{a,b}.h"})
	if err != nil {
		t.Fatal(err)
	}
	for _, tc := range []struct {
		name string
		want bool
	}{
		{name: "skip_me.h", want: true},
		{name: "skip_.h", want: true},
		{name: "noskip_me.h", want: false},
		{name: "gen1.h", want: true},
		{name: "gen12.h", want: false},
		{name: "a.h", want: true},
		{name: "c.h", want: false},
	} {
		if got := w.Excluded(tc.name); got != tc.want {
			t.Errorf("w.Excluded(%q)=%t; want %t", tc.name, got, tc.want)
		}
	}
}
