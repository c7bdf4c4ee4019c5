// SPDX-FileCopyrightText: 2026 The Permsweep Authors
// SPDX-License-Identifier: EUPL-1.2

// Package config loads optional run defaults from the XDG config directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// ErrInvalid indicates a config file that exists but cannot be parsed.
var ErrInvalid = errors.New("invalid config file")

// File holds defaults that flags override.
type File struct {
	LogFile string   `toml:"log_file"`
	Exclude []string `toml:"exclude"`
	Color   string   `toml:"color"` // "auto", "always", "never"
}

// Path returns the default config file location.
func Path() string {
	return filepath.Join(XDGConfigHome(), "permsweep", "config.toml")
}

// XDGConfigHome returns the XDG config directory.
func XDGConfigHome() string {
	return XDGConfigHomeWithEnv(os.Getenv("XDG_CONFIG_HOME"))
}

// XDGConfigHomeWithEnv returns the XDG config directory with a custom
// environment override for testing.
func XDGConfigHomeWithEnv(xdgConfigHome string) string {
	if xdgConfigHome != "" {
		return xdgConfigHome
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config")
	}

	return ""
}

// Load reads the config file at path. A missing file yields zero-value
// defaults; a malformed file is an error.
func Load(fsys afero.Fs, path string) (*File, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &File{}, nil
		}

		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	var cfg File
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return &cfg, nil
}
