// SPDX-FileCopyrightText: 2026 The Permsweep Authors
// SPDX-License-Identifier: EUPL-1.2

//go:build linux

package posix

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/permsweep/permsweep/internal/domain"
)

// ErrSymlink indicates a refused owner-bit removal on a symlink: chmod
// would follow the link and mutate the target's owner bits instead.
var ErrSymlink = errors.New("symlink mode bits apply to the target")

// Remover strips individual dead grants. Owner grants lose their rwx bits
// via chmod; named-user ACL grants are cut out of the access ACL with every
// other entry preserved.
type Remover struct{}

// NewRemover creates a remover backed by real syscalls.
func NewRemover() *Remover {
	return &Remover{}
}

// Remove implements domain.GrantRemover.
func (r *Remover) Remove(ctx context.Context, entry domain.DirectoryEntry, grant domain.Grant) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch grant.Kind {
	case domain.GrantOwner:
		return removeOwnerBits(entry.Path)
	case domain.GrantACLUser:
		return removeACLUser(entry.Path, grant.UID)
	default:
		return fmt.Errorf("unknown grant kind %q on %s", grant.Kind, entry.Path)
	}
}

// removeOwnerBits clears the owner rwx bits, leaving group, other, and
// special bits untouched.
func removeOwnerBits(path string) error {
	var stat unix.Stat_t
	if err := unix.Lstat(path, &stat); err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if stat.Mode&unix.S_IFMT == unix.S_IFLNK {
		return fmt.Errorf("chmod %s: %w", path, ErrSymlink)
	}

	mode := stat.Mode & 0o7777 &^ unix.S_IRWXU

	if err := unix.Chmod(path, mode); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}

	return nil
}

// removeACLUser rewrites the access ACL without the named-user entries for
// uid. When no named user or group entries remain the xattr is removed
// outright, leaving plain mode bits.
func removeACLUser(path string, uid uint32) error {
	entries, err := readACL(path)
	if err != nil {
		return err
	}

	kept, dropped, namedLeft := dropUserEntries(entries, uid)
	if !dropped {
		// Already gone; a second run over the same tree is a no-op.
		return nil
	}

	if !namedLeft {
		if err := unix.Removexattr(path, xattrACLAccess); err != nil {
			return fmt.Errorf("remove acl %s: %w", path, err)
		}

		return nil
	}

	if err := unix.Setxattr(path, xattrACLAccess, encodeACL(kept), 0); err != nil {
		return fmt.Errorf("write acl %s: %w", path, err)
	}

	return nil
}
