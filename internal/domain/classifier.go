// SPDX-FileCopyrightText: 2026 The Permsweep Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

// Classify returns the grants within the record whose identity belongs to
// the inactive-user set: the owner grant when the owner is inactive, plus
// every named-user ACL entry held by an inactive account.
//
// Pure function: no side effects, no mutation of the record. An entry with
// no matching grants yields an empty result, not an error.
func Classify(rec PermissionRecord, set *InactiveUserSet) []Grant {
	if set == nil || set.IsEmpty() {
		return nil
	}

	var dead []Grant

	// An owner grant with no permission bits has nothing left to strip;
	// treating it as live keeps a second remove run a no-op.
	if set.Matches(rec.Owner) && rec.Owner.Rights != "---" {
		dead = append(dead, rec.Owner)
	}

	for _, grant := range rec.ACL {
		if set.Matches(grant) {
			dead = append(dead, grant)
		}
	}

	return dead
}
