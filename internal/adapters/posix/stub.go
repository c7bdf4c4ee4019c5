// SPDX-FileCopyrightText: 2026 The Permsweep Authors
// SPDX-License-Identifier: EUPL-1.2

//go:build !linux

package posix

import (
	"context"

	"github.com/permsweep/permsweep/internal/domain"
	"github.com/permsweep/permsweep/internal/identity"
)

// Reader is a stub on non-Linux platforms; permission metadata cannot be
// read here yet.
type Reader struct{}

// NewReader returns the stub reader.
func NewReader(_ identity.Resolver) *Reader {
	return &Reader{}
}

// Read implements domain.PermissionReader.
func (r *Reader) Read(path string) (domain.PermissionRecord, error) {
	return domain.PermissionRecord{}, domain.ErrUnsupportedPlatform
}

// Remover is a stub on non-Linux platforms.
type Remover struct{}

// NewRemover returns the stub remover.
func NewRemover() *Remover {
	return &Remover{}
}

// Remove implements domain.GrantRemover.
func (r *Remover) Remove(_ context.Context, _ domain.DirectoryEntry, _ domain.Grant) error {
	return domain.ErrUnsupportedPlatform
}
