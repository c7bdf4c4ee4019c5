// SPDX-FileCopyrightText: 2026 The Permsweep Authors
// SPDX-License-Identifier: EUPL-1.2

// Package domain contains the core entities and ports for the permission
// sweep: directory entries, permission grants, the inactive-user set, the
// classifier, and the action log record.
package domain

import (
	"io/fs"
	"time"
)

// GrantKind distinguishes how an identity holds access to an entry.
type GrantKind string

const (
	// GrantOwner is the owning identity's permission bits on the entry.
	GrantOwner GrantKind = "owner"
	// GrantACLUser is a named-user entry in the POSIX access ACL.
	GrantACLUser GrantKind = "acl-user"
)

// DirectoryEntry is one filesystem object yielded by the scanner.
type DirectoryEntry struct {
	Path      string `json:"path"`
	IsDir     bool   `json:"is_dir"`
	IsSymlink bool   `json:"is_symlink,omitempty"`
}

// Grant is a single identity→access record attached to an entry.
type Grant struct {
	Identity string    `json:"identity"`
	UID      uint32    `json:"uid"`
	Kind     GrantKind `json:"kind"`
	Rights   string    `json:"rights"` // "rwx" triad, "-" for absent bits
}

// PermissionRecord is the ownership and ACL state of one entry as read from
// the filesystem. Only the remover mutates the underlying state, and only in
// remove mode.
type PermissionRecord struct {
	Entry DirectoryEntry
	Owner Grant
	ACL   []Grant
	Mode  fs.FileMode
}

// Action names what the sweep did (or would do) about a grant.
type Action string

const (
	// ActionIdentified reports a dead grant without mutating it.
	ActionIdentified Action = "identified"
	// ActionRemoved strips a dead grant from the entry.
	ActionRemoved Action = "removed"
	// ActionSkipped marks a dead grant that was deliberately left alone,
	// e.g. it belongs to the invoking user.
	ActionSkipped Action = "skipped"
	// ActionNone marks an entry with no dead grants.
	ActionNone Action = "none"
)

// Outcome is the result of an action.
type Outcome string

const (
	// OutcomeOK means the action completed.
	OutcomeOK Outcome = "ok"
	// OutcomeError means the action failed; Detail carries the cause.
	OutcomeError Outcome = "error"
)

// ActionRecord is one append-only log entry. Records are written by the
// action logger and never read back by the sweep.
type ActionRecord struct {
	Time     time.Time `json:"timestamp"`
	RunID    string    `json:"run_id"`
	Path     string    `json:"path"`
	Identity string    `json:"identity,omitempty"`
	Kind     GrantKind `json:"kind,omitempty"`
	Action   Action    `json:"action"`
	Outcome  Outcome   `json:"outcome"`
	Detail   string    `json:"detail,omitempty"`
}
