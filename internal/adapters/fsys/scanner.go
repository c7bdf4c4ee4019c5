// SPDX-FileCopyrightText: 2026 The Permsweep Authors
// SPDX-License-Identifier: EUPL-1.2

// Package fsys implements the directory scanner over an afero filesystem.
package fsys

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/permsweep/permsweep/internal/domain"
	"github.com/permsweep/permsweep/internal/exclude"
)

// Scanner walks a directory tree, yielding one entry per filesystem object
// under the root. Excluded directories are pruned whole, so their contents
// are never statted.
type Scanner struct {
	fsys    afero.Fs
	exclude *exclude.Matcher
}

// NewScanner creates a scanner over fsys. matcher may be nil.
func NewScanner(fsys afero.Fs, matcher *exclude.Matcher) *Scanner {
	return &Scanner{fsys: fsys, exclude: matcher}
}

// Walk implements domain.Scanner. Entries are yielded in the order the
// underlying directory listing returns them; the root itself is not yielded.
func (s *Scanner) Walk(ctx context.Context, root string, fn domain.WalkFunc) error {
	info, err := s.fsys.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrRootInvalid, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrRootInvalid, root)
	}

	return s.walkDir(ctx, root, root, fn)
}

func (s *Scanner) walkDir(ctx context.Context, root, dir string, fn domain.WalkFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	infos, err := afero.ReadDir(s.fsys, dir)
	if err != nil {
		if dir == root {
			// An unreadable root is fatal; deeper failures are per-entry.
			return fmt.Errorf("%w: %w", domain.ErrRootInvalid, err)
		}

		return fn(domain.DirectoryEntry{Path: dir, IsDir: true}, err)
	}

	for _, info := range infos {
		path := filepath.Join(dir, info.Name())
		entry := domain.DirectoryEntry{
			Path:      path,
			IsDir:     info.IsDir(),
			IsSymlink: info.Mode()&fs.ModeSymlink != 0,
		}

		if s.excluded(root, path, info.IsDir()) {
			continue
		}

		if err := fn(entry, nil); err != nil {
			return err
		}

		if info.IsDir() {
			if err := s.walkDir(ctx, root, path, fn); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *Scanner) excluded(root, path string, isDir bool) bool {
	if s.exclude == nil {
		return false
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}

	return s.exclude.Match(filepath.ToSlash(rel), isDir)
}
