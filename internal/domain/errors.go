// SPDX-FileCopyrightText: 2026 The Permsweep Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import "errors"

// Common domain errors.
var (
	// ErrRootInvalid indicates the scan root does not exist or is not a
	// readable directory. Fatal for the run.
	ErrRootInvalid = errors.New("root directory invalid")
	// ErrUsersFileInvalid indicates the inactive-users file could not be
	// read. Fatal for the run.
	ErrUsersFileInvalid = errors.New("users file invalid")
	// ErrExcludeFileInvalid indicates the exclude-patterns file could not
	// be read. Fatal for the run.
	ErrExcludeFileInvalid = errors.New("exclude file invalid")
	// ErrUnsupportedPlatform indicates permission metadata cannot be read
	// or mutated on this platform.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)
