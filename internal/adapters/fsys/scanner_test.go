// SPDX-FileCopyrightText: 2026 The Permsweep Authors
// SPDX-License-Identifier: EUPL-1.2

package fsys_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/permsweep/permsweep/internal/adapters/fsys"
	"github.com/permsweep/permsweep/internal/domain"
	"github.com/permsweep/permsweep/internal/exclude"
)

func seedTree(t *testing.T) afero.Fs {
	t.Helper()

	memfs := afero.NewMemMapFs()

	files := []string{
		"/data/report.txt",
		"/data/notes.txt",
		"/data/archive/old.log",
		"/data/build/out.bin",
	}
	for _, path := range files {
		require.NoError(t, afero.WriteFile(memfs, path, []byte("x"), 0o644))
	}

	return memfs
}

func collect(t *testing.T, scanner *fsys.Scanner, root string) []string {
	t.Helper()

	var paths []string

	err := scanner.Walk(context.Background(), root, func(entry domain.DirectoryEntry, err error) error {
		require.NoError(t, err)
		paths = append(paths, entry.Path)

		return nil
	})
	require.NoError(t, err)

	return paths
}

func TestWalkYieldsEveryObjectOnce(t *testing.T) {
	t.Parallel()

	scanner := fsys.NewScanner(seedTree(t), nil)
	paths := collect(t, scanner, "/data")

	assert.ElementsMatch(t, []string{
		"/data/archive",
		"/data/archive/old.log",
		"/data/build",
		"/data/build/out.bin",
		"/data/notes.txt",
		"/data/report.txt",
	}, paths)

	seen := make(map[string]int)
	for _, path := range paths {
		seen[path]++
	}

	for path, count := range seen {
		assert.Equal(t, 1, count, "entry %s yielded more than once", path)
	}
}

func TestWalkPrunesExcludedDirectories(t *testing.T) {
	t.Parallel()

	matcher := exclude.New([]string{"build/", "*.log"})
	scanner := fsys.NewScanner(seedTree(t), matcher)

	paths := collect(t, scanner, "/data")

	assert.ElementsMatch(t, []string{
		"/data/archive",
		"/data/notes.txt",
		"/data/report.txt",
	}, paths)
}

func TestWalkMarksSymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file"), []byte("x"), 0o644))
	require.NoError(t, os.Symlink("file", filepath.Join(dir, "link")))

	scanner := fsys.NewScanner(afero.NewOsFs(), nil)

	flags := make(map[string]bool)
	err := scanner.Walk(context.Background(), dir, func(entry domain.DirectoryEntry, err error) error {
		require.NoError(t, err)
		flags[filepath.Base(entry.Path)] = entry.IsSymlink

		return nil
	})
	require.NoError(t, err)

	assert.True(t, flags["link"])
	assert.False(t, flags["file"])
}

func TestWalkMissingRootIsFatal(t *testing.T) {
	t.Parallel()

	scanner := fsys.NewScanner(afero.NewMemMapFs(), nil)

	calls := 0
	err := scanner.Walk(context.Background(), "/missing", func(domain.DirectoryEntry, error) error {
		calls++

		return nil
	})

	require.ErrorIs(t, err, domain.ErrRootInvalid)
	assert.Zero(t, calls, "no entries should be yielded on a fatal root error")
}

func TestWalkRootMustBeDirectory(t *testing.T) {
	t.Parallel()

	memfs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memfs, "/file", []byte("x"), 0o644))

	err := fsys.NewScanner(memfs, nil).Walk(context.Background(), "/file", func(domain.DirectoryEntry, error) error {
		return nil
	})

	require.ErrorIs(t, err, domain.ErrRootInvalid)
}

func TestWalkStopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := fsys.NewScanner(seedTree(t), nil).Walk(ctx, "/data", func(domain.DirectoryEntry, error) error {
		return nil
	})

	require.ErrorIs(t, err, context.Canceled)
}

func TestWalkCallbackErrorStopsWalk(t *testing.T) {
	t.Parallel()

	scanner := fsys.NewScanner(seedTree(t), nil)

	calls := 0
	err := scanner.Walk(context.Background(), "/data", func(domain.DirectoryEntry, error) error {
		calls++

		return assert.AnError
	})

	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, calls)
}
