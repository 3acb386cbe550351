// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package hdrwalk enumerates header files under scan roots.
package hdrwalk

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"go.chromium.org/infra/build/hdrguard/o11y/clog"
	"go.chromium.org/infra/build/hdrguard/osfs"
)

// DefaultExt is the default header file extension.
const DefaultExt = ".h"

// File is a header file found under a scan root.
type File struct {
	// Root is the scan root given by the user.
	Root string
	// Path is the path to the file, i.e. filepath.Join(Root, Rel)
	// for directory root.
	Path string
	// Rel is slash separated path relative to Root.
	// For a file root, it is the base name of the file.
	Rel string
}

// Walker walks scan roots and yields header files.
type Walker struct {
	fsys     *osfs.OSFS
	ext      string
	excludes []string
}

// New creates a new Walker for files with ext, excluding files whose
// base name matches any of excludes.
// It returns an error if any exclude pattern is malformed.
func New(fsys *osfs.OSFS, ext string, excludes []string) (*Walker, error) {
	if ext == "" {
		ext = DefaultExt
	}
	for _, pat := range excludes {
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("bad exclude pattern %q: %w", pat, doublestar.ErrBadPattern)
		}
	}
	return &Walker{
		fsys:     fsys,
		ext:      ext,
		excludes: excludes,
	}, nil
}

// Excluded reports whether the base name matches any exclude pattern.
func (w *Walker) Excluded(name string) bool {
	for _, pat := range w.excludes {
		ok, err := doublestar.Match(pat, name)
		if err != nil {
			// patterns are validated in New.
			continue
		}
		if ok {
			return true
		}
	}
	return false
}

// Match reports whether the base name is a header to scan.
func (w *Walker) Match(name string) bool {
	return strings.HasSuffix(name, w.ext) && !w.Excluded(name)
}

// Walk calls fn for each header file under root.
// root may be a directory or a file.
// A symlink to a regular file is yielded as a file; symlinks to
// directories are not followed.  Other non-regular files are skipped.
// Walk stops at the first error returned by fn or by the filesystem.
func (w *Walker) Walk(ctx context.Context, root string, fn func(File) error) error {
	fi, err := w.fsys.Lstat(ctx, root)
	if err != nil {
		return fmt.Errorf("walk %s: %w", root, err)
	}
	if !fi.IsDir() {
		if !w.Match(fi.Name()) || !w.isFile(ctx, root, fi.Mode().Type()) {
			clog.Infof(ctx, "skip %s", root)
			return nil
		}
		return fn(File{Root: root, Path: root, Rel: fi.Name()})
	}
	return w.fsys.WalkDir(ctx, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		if !w.Match(d.Name()) || !w.isFile(ctx, path, d.Type()) {
			if clog.V(ctx, 1) {
				clog.Infof(ctx, "skip %s", path)
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		return fn(File{Root: root, Path: path, Rel: filepath.ToSlash(rel)})
	})
}

// isFile reports whether path of type typ is a regular file or
// a symlink to a regular file.  Dangling symlinks are not files.
func (w *Walker) isFile(ctx context.Context, path string, typ fs.FileMode) bool {
	if typ.IsRegular() {
		return true
	}
	if typ&fs.ModeSymlink == 0 {
		return false
	}
	fi, err := w.fsys.Stat(ctx, path)
	if err != nil {
		clog.Warningf(ctx, "skip symlink %s: %v", path, err)
		return false
	}
	return fi.Mode().IsRegular()
}
