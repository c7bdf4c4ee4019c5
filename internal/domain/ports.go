// SPDX-FileCopyrightText: 2026 The Permsweep Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import "context"

// WalkFunc is called once per filesystem object under the scan root. A
// non-nil err means the entry could not be read (the path is still set);
// the callback decides whether that is worth recording. Returning an error
// stops the walk.
type WalkFunc func(entry DirectoryEntry, err error) error

// Scanner produces a lazy, finite, non-restartable traversal of the tree
// under root. A root that does not exist or is not a readable directory is
// a fatal error for the run.
type Scanner interface {
	Walk(ctx context.Context, root string, fn WalkFunc) error
}

// PermissionReader reads the ownership and ACL state of one path.
type PermissionReader interface {
	Read(path string) (PermissionRecord, error)
}

// GrantRemover strips a single grant from an entry. Failures are isolated
// per grant; the sweep logs them and continues.
type GrantRemover interface {
	Remove(ctx context.Context, entry DirectoryEntry, grant Grant) error
}

// ActionLogger appends action records. Record must never fail the run; a
// sink failure is reported out-of-band (stderr) by the implementation.
type ActionLogger interface {
	Record(rec ActionRecord)
	Close() error
}
