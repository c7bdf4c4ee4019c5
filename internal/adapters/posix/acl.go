// SPDX-FileCopyrightText: 2026 The Permsweep Authors
// SPDX-License-Identifier: EUPL-1.2

// Package posix reads and mutates ownership and POSIX access-ACL state.
// The xattr wire codec is portable; the syscall-backed reader and remover
// are Linux-only (see stub.go for other platforms).
package posix

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Name of the extended attribute holding the access ACL.
const xattrACLAccess = "system.posix_acl_access"

// Version header of the posix_acl_xattr wire format.
const aclVersion = 2

// Entry tags, as defined by the posix_acl_xattr format.
const (
	tagUserObj  uint16 = 0x01
	tagUser     uint16 = 0x02
	tagGroupObj uint16 = 0x04
	tagGroup    uint16 = 0x08
	tagMask     uint16 = 0x10
	tagOther    uint16 = 0x20
)

// Permission bits within an entry.
const (
	permRead  uint16 = 0x4
	permWrite uint16 = 0x2
	permExec  uint16 = 0x1
)

const (
	aclHeaderSize = 4
	aclEntrySize  = 8

	// Qualifier value for entries that carry no uid/gid (USER_OBJ, MASK...).
	aclUndefinedID uint32 = 0xFFFFFFFF
)

// ErrBadACL indicates an xattr buffer that is not a version-2 POSIX ACL.
var ErrBadACL = errors.New("malformed posix acl xattr")

// aclEntry is one tag/perm/qualifier triple of the access ACL.
type aclEntry struct {
	Tag  uint16
	Perm uint16
	ID   uint32
}

// decodeACL parses the binary posix_acl_xattr format: a 4-byte little-endian
// version header followed by 8-byte entries.
func decodeACL(buf []byte) ([]aclEntry, error) {
	if len(buf) < aclHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrBadACL, len(buf))
	}

	if version := binary.LittleEndian.Uint32(buf[:aclHeaderSize]); version != aclVersion {
		return nil, fmt.Errorf("%w: version %d", ErrBadACL, version)
	}

	body := buf[aclHeaderSize:]
	if len(body)%aclEntrySize != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrBadACL, len(body)%aclEntrySize)
	}

	entries := make([]aclEntry, 0, len(body)/aclEntrySize)

	for off := 0; off < len(body); off += aclEntrySize {
		entries = append(entries, aclEntry{
			Tag:  binary.LittleEndian.Uint16(body[off:]),
			Perm: binary.LittleEndian.Uint16(body[off+2:]),
			ID:   binary.LittleEndian.Uint32(body[off+4:]),
		})
	}

	return entries, nil
}

// encodeACL serializes entries back into the xattr wire format.
func encodeACL(entries []aclEntry) []byte {
	buf := make([]byte, aclHeaderSize+len(entries)*aclEntrySize)
	binary.LittleEndian.PutUint32(buf, aclVersion)

	for i, entry := range entries {
		off := aclHeaderSize + i*aclEntrySize
		binary.LittleEndian.PutUint16(buf[off:], entry.Tag)
		binary.LittleEndian.PutUint16(buf[off+2:], entry.Perm)
		binary.LittleEndian.PutUint32(buf[off+4:], entry.ID)
	}

	return buf
}

// rightsString renders permission bits as an "rwx" triad.
func rightsString(perm uint16) string {
	rights := []byte{'-', '-', '-'}

	if perm&permRead != 0 {
		rights[0] = 'r'
	}

	if perm&permWrite != 0 {
		rights[1] = 'w'
	}

	if perm&permExec != 0 {
		rights[2] = 'x'
	}

	return string(rights)
}

// dropUserEntries returns entries without the named-user entries for uid,
// plus whether anything was dropped and whether named entries remain. When
// no named user or group entries remain the ACL is equivalent to the mode
// bits and the caller may drop the xattr entirely.
func dropUserEntries(entries []aclEntry, uid uint32) (kept []aclEntry, dropped, namedLeft bool) {
	kept = make([]aclEntry, 0, len(entries))

	for _, entry := range entries {
		if entry.Tag == tagUser && entry.ID == uid {
			dropped = true

			continue
		}

		if entry.Tag == tagUser || entry.Tag == tagGroup {
			namedLeft = true
		}

		kept = append(kept, entry)
	}

	return kept, dropped, namedLeft
}
