// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Copier copies a directory tree. keep receives each file path relative to
// src; a nil keep copies everything. It returns the number of files copied.
type Copier interface {
	CopyDir(ctx context.Context, src, dst string, keep func(rel string) bool) (int, error)
}

// FSCopier copies between local directories. A symlinked src is resolved
// first; symbolic links inside it are recreated, not followed.
type FSCopier struct{}

var _ Copier = FSCopier{}

func (FSCopier) CopyDir(ctx context.Context, src, dst string, keep func(rel string) bool) (int, error) {
	src, err := filepath.EvalSymlinks(src)
	if err != nil {
		return 0, err
	}
	n := 0
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if keep != nil && !keep(rel) {
			return nil
		}
		target := filepath.Join(dst, rel)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if d.Type()&fs.ModeSymlink != 0 {
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			os.Remove(target)
			if err := os.Symlink(link, target); err != nil {
				return err
			}
			n++
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if err := copyFile(path, target, info.Mode().Perm()); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}

func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
