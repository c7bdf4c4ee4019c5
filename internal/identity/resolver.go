// SPDX-FileCopyrightText: 2026 The Permsweep Authors
// SPDX-License-Identifier: EUPL-1.2

package identity

import (
	"os"
	"os/user"
	"strconv"
	"strings"
	"sync"
)

// Resolver maps numeric uids to account names.
type Resolver interface {
	// Lookup returns the account name for uid, or false when the uid has
	// no known account (a deleted user, typically).
	Lookup(uid uint32) (string, bool)
}

// PasswdResolver resolves uids by parsing a passwd-format file, with the
// local account database as a fallback. The file is read once and cached;
// a sweep stats thousands of entries and most share a handful of owners.
type PasswdResolver struct {
	path string

	once  sync.Once
	cache map[uint32]string
}

// NewPasswdResolver resolves against /etc/passwd.
func NewPasswdResolver() *PasswdResolver {
	return NewPasswdResolverPath("/etc/passwd")
}

// NewPasswdResolverPath resolves against a passwd-format file at path.
func NewPasswdResolverPath(path string) *PasswdResolver {
	return &PasswdResolver{path: path}
}

// Lookup implements Resolver.
func (r *PasswdResolver) Lookup(uid uint32) (string, bool) {
	r.once.Do(r.load)

	if name, ok := r.cache[uid]; ok {
		return name, true
	}

	// Fallback covers NSS sources (LDAP, SSSD) not present in the file.
	if account, err := user.LookupId(strconv.FormatUint(uint64(uid), 10)); err == nil {
		return account.Username, true
	}

	return "", false
}

func (r *PasswdResolver) load() {
	r.cache = make(map[uint32]string)

	data, err := os.ReadFile(r.path)
	if err != nil {
		return
	}

	for line := range strings.Lines(string(data)) {
		fields := strings.Split(strings.TrimSpace(line), ":")
		if len(fields) < 3 {
			continue
		}

		uid, err := strconv.ParseUint(fields[2], 10, 32)
		if err != nil {
			continue
		}

		if _, ok := r.cache[uint32(uid)]; !ok {
			r.cache[uint32(uid)] = fields[0]
		}
	}
}
