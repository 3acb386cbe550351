// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package osfs

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadWriteFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fname := filepath.Join(dir, "foo.h")
	err := os.WriteFile(fname, []byte("old\n"), 0600)
	if err != nil {
		t.Fatal(err)
	}
	fsys := New("test")
	buf, err := fsys.ReadFile(ctx, fname)
	if err != nil || string(buf) != "old\n" {
		t.Errorf("fsys.ReadFile(ctx, %q)=%q, %v; want %q, nil", fname, buf, err, "old\n")
	}
	err = fsys.WriteFile(ctx, fname, []byte("new\n"))
	if err != nil {
		t.Errorf("fsys.WriteFile(ctx, %q, ...)=%v; want nil", fname, err)
	}
	buf, err = os.ReadFile(fname)
	if err != nil || string(buf) != "new\n" {
		t.Errorf("os.ReadFile(%q)=%q, %v; want %q, nil", fname, buf, err, "new\n")
	}
	if runtime.GOOS != "windows" {
		fi, err := os.Stat(fname)
		if err != nil {
			t.Fatal(err)
		}
		if got := fi.Mode().Perm(); got != 0600 {
			t.Errorf("mode=%v; want %v", got, fs.FileMode(0600))
		}
	}
	st := fsys.Stats()
	if st.ROps != 1 || st.RBytes != 4 || st.WOps != 1 || st.WBytes != 4 {
		t.Errorf("fsys.Stats()=%v; want 1 read, 1 write of 4 bytes", st)
	}
}

func TestWriteFileSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink requires privilege on windows")
	}
	ctx := context.Background()
	dir := t.TempDir()
	target := filepath.Join(dir, "real.h")
	err := os.WriteFile(target, []byte("old\n"), 0600)
	if err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link.h")
	err = os.Symlink("real.h", link)
	if err != nil {
		t.Fatal(err)
	}
	fsys := New("test")
	err = fsys.WriteFile(ctx, link, []byte("new\n"))
	if err != nil {
		t.Fatalf("fsys.WriteFile(ctx, %q, ...)=%v; want nil", link, err)
	}
	fi, err := os.Lstat(link)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode()&fs.ModeSymlink == 0 {
		t.Errorf("%s mode=%v; want symlink", link, fi.Mode())
	}
	fi, err = os.Stat(target)
	if err != nil {
		t.Fatal(err)
	}
	if got := fi.Mode().Perm(); got != 0600 {
		t.Errorf("%s mode=%v; want %v", target, got, fs.FileMode(0600))
	}
	buf, err := os.ReadFile(target)
	if err != nil || string(buf) != "new\n" {
		t.Errorf("os.ReadFile(%q)=%q, %v; want %q, nil", target, buf, err, "new\n")
	}
}

func TestReadFileError(t *testing.T) {
	ctx := context.Background()
	fsys := New("test")
	_, err := fsys.ReadFile(ctx, filepath.Join(t.TempDir(), "missing.h"))
	if err == nil {
		t.Errorf("fsys.ReadFile(ctx, missing)=_, nil; want err")
	}
	if st := fsys.Stats(); st.RErrs != 1 {
		t.Errorf("fsys.Stats().RErrs=%d; want 1", st.RErrs)
	}
}

func TestWalkDir(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	for _, fname := range []string{"a.h", "sub/b.h", "sub/deep/c.h"} {
		fname = filepath.Join(dir, fname)
		err := os.MkdirAll(filepath.Dir(fname), 0755)
		if err != nil {
			t.Fatal(err)
		}
		err = os.WriteFile(fname, nil, 0644)
		if err != nil {
			t.Fatal(err)
		}
	}
	fsys := New("test")
	var got []string
	err := fsys.WalkDir(ctx, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		got = append(got, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatalf("fsys.WalkDir(ctx, %q, fn)=%v; want nil", dir, err)
	}
	want := []string{"a.h", "sub/b.h", "sub/deep/c.h"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fsys.WalkDir diff -want +got:\n%s", diff)
	}
	// 3 dirs + 3 files.
	if st := fsys.Stats(); st.Ops != 6 {
		t.Errorf("fsys.Stats().Ops=%d; want 6", st.Ops)
	}
}

func TestWalkDirCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fsys := New("test")
	err := fsys.WalkDir(ctx, t.TempDir(), func(path string, d fs.DirEntry, err error) error {
		t.Errorf("fn called for %q after cancel", path)
		return nil
	})
	if err != context.Canceled {
		t.Errorf("fsys.WalkDir(canceled ctx)=%v; want %v", err, context.Canceled)
	}
}
