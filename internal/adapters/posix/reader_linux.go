// SPDX-FileCopyrightText: 2026 The Permsweep Authors
// SPDX-License-Identifier: EUPL-1.2

//go:build linux

package posix

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"golang.org/x/sys/unix"

	"github.com/permsweep/permsweep/internal/domain"
	"github.com/permsweep/permsweep/internal/identity"
)

// Reader reads ownership and access-ACL state via syscalls.
type Reader struct {
	resolver identity.Resolver
}

// NewReader creates a reader that resolves uids with resolver.
func NewReader(resolver identity.Resolver) *Reader {
	return &Reader{resolver: resolver}
}

// Read implements domain.PermissionReader.
func (r *Reader) Read(path string) (domain.PermissionRecord, error) {
	var stat unix.Stat_t
	if err := unix.Lstat(path, &stat); err != nil {
		return domain.PermissionRecord{}, fmt.Errorf("stat %s: %w", path, err)
	}

	isDir := stat.Mode&unix.S_IFMT == unix.S_IFDIR
	isSymlink := stat.Mode&unix.S_IFMT == unix.S_IFLNK

	rec := domain.PermissionRecord{
		Entry: domain.DirectoryEntry{Path: path, IsDir: isDir, IsSymlink: isSymlink},
		Owner: domain.Grant{
			Identity: r.identityFor(stat.Uid),
			UID:      stat.Uid,
			Kind:     domain.GrantOwner,
			Rights:   rightsString(uint16(stat.Mode >> 6 & 0o7)),
		},
		Mode: fs.FileMode(stat.Mode & 0o7777),
	}

	// Symlinks carry no ACL; their xattr namespace is not accessible.
	if isSymlink {
		return rec, nil
	}

	entries, err := readACL(path)
	if err != nil {
		return rec, err
	}

	for _, entry := range entries {
		if entry.Tag != tagUser {
			continue
		}

		rec.ACL = append(rec.ACL, domain.Grant{
			Identity: r.identityFor(entry.ID),
			UID:      entry.ID,
			Kind:     domain.GrantACLUser,
			Rights:   rightsString(entry.Perm),
		})
	}

	return rec, nil
}

// identityFor resolves a uid to an account name, falling back to the
// decimal uid for deleted accounts.
func (r *Reader) identityFor(uid uint32) string {
	if r.resolver != nil {
		if name, ok := r.resolver.Lookup(uid); ok {
			return name
		}
	}

	return strconv.FormatUint(uint64(uid), 10)
}

// readACL returns the decoded access ACL of path, or nil when the path has
// none (plain mode bits) or the filesystem does not support xattrs.
func readACL(path string) ([]aclEntry, error) {
	size, err := unix.Getxattr(path, xattrACLAccess, nil)
	if err != nil {
		if noACL(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("read acl %s: %w", path, err)
	}

	buf := make([]byte, size)

	size, err = unix.Getxattr(path, xattrACLAccess, buf)
	if err != nil {
		if noACL(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("read acl %s: %w", path, err)
	}

	return decodeACL(buf[:size])
}

func noACL(err error) bool {
	return errors.Is(err, unix.ENODATA) || errors.Is(err, unix.ENOTSUP) || errors.Is(err, unix.EOPNOTSUPP)
}
