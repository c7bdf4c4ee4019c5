// SPDX-FileCopyrightText: 2026 The Permsweep Authors
// SPDX-License-Identifier: EUPL-1.2

// Package identity loads the inactive-user set and resolves numeric uids to
// account names.
package identity

import (
	"bufio"
	"fmt"
	"os/user"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/text/unicode/norm"

	"github.com/permsweep/permsweep/internal/domain"
)

// UIDLookup resolves an account name to its numeric uid. Returns false when
// the account does not exist on this system.
type UIDLookup func(name string) (uint32, bool)

// SystemUIDLookup resolves names against the local account database.
func SystemUIDLookup(name string) (uint32, bool) {
	account, err := user.Lookup(name)
	if err != nil {
		return 0, false
	}

	uid, err := strconv.ParseUint(account.Uid, 10, 32)
	if err != nil {
		return 0, false
	}

	return uint32(uid), true
}

// LoadInactiveUsers reads account names from path, one per line. Blank lines
// and lines starting with '#' are skipped; names are NFC-normalized so that
// entries pasted from HR exports compare correctly. Names that still resolve
// to a local uid are registered by uid as well, so grants survive passwd
// lookups going stale mid-run.
func LoadInactiveUsers(fsys afero.Fs, path string, lookup UIDLookup) (*domain.InactiveUserSet, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUsersFileInvalid, err)
	}
	defer file.Close() //nolint:errcheck

	var names []string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		names = append(names, norm.NFC.String(line))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUsersFileInvalid, err)
	}

	set := domain.NewInactiveUserSet(names)

	if lookup != nil {
		for _, name := range names {
			if uid, ok := lookup(name); ok {
				set.AddUID(uid)
			}
		}
	}

	return set, nil
}
