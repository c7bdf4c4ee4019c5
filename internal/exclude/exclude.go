// SPDX-FileCopyrightText: 2026 The Permsweep Authors
// SPDX-License-Identifier: EUPL-1.2

// Package exclude matches scan paths against gitignore-syntax patterns so
// whole subtrees can be carved out of a sweep.
package exclude

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/spf13/afero"

	"github.com/permsweep/permsweep/internal/domain"
)

// Matcher decides whether a path, relative to the scan root, is excluded.
// A nil Matcher excludes nothing.
type Matcher struct {
	matcher gitignore.Matcher
}

// New builds a matcher from gitignore-syntax patterns.
func New(patterns []string) *Matcher {
	parsed := make([]gitignore.Pattern, 0, len(patterns))

	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" || strings.HasPrefix(pattern, "#") {
			continue
		}

		parsed = append(parsed, gitignore.ParsePattern(pattern, nil))
	}

	if len(parsed) == 0 {
		return nil
	}

	return &Matcher{matcher: gitignore.NewMatcher(parsed)}
}

// Load reads one pattern per line from path. Blank lines and '#' comments
// are skipped, matching .gitignore conventions.
func Load(fsys afero.Fs, path string) (*Matcher, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrExcludeFileInvalid, err)
	}
	defer file.Close() //nolint:errcheck

	var patterns []string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		patterns = append(patterns, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrExcludeFileInvalid, err)
	}

	return New(patterns), nil
}

// Match reports whether the slash-separated relative path is excluded.
func (m *Matcher) Match(relPath string, isDir bool) bool {
	if m == nil || relPath == "" || relPath == "." {
		return false
	}

	return m.matcher.Match(strings.Split(relPath, "/"), isDir)
}
