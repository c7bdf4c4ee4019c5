// SPDX-FileCopyrightText: 2026 The Permsweep Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

// InactiveUserSet is the set of account identities considered inactive or
// terminated. It is supplied externally and read-only for the duration of a
// run. Membership is by account name, or by numeric uid for accounts that
// still exist locally (a grant can reference a uid whose passwd entry is
// already gone).
type InactiveUserSet struct {
	names map[string]struct{}
	uids  map[uint32]struct{}
}

// NewInactiveUserSet builds a set from account names.
func NewInactiveUserSet(names []string) *InactiveUserSet {
	set := &InactiveUserSet{
		names: make(map[string]struct{}, len(names)),
		uids:  make(map[uint32]struct{}),
	}
	for _, name := range names {
		if name != "" {
			set.names[name] = struct{}{}
		}
	}

	return set
}

// AddUID registers the numeric uid of an inactive account so grants can be
// matched even when the identity no longer resolves to a name.
func (s *InactiveUserSet) AddUID(uid uint32) {
	s.uids[uid] = struct{}{}
}

// ContainsName reports whether the account name is in the set.
func (s *InactiveUserSet) ContainsName(name string) bool {
	_, ok := s.names[name]

	return ok
}

// ContainsUID reports whether the numeric uid is in the set.
func (s *InactiveUserSet) ContainsUID(uid uint32) bool {
	_, ok := s.uids[uid]

	return ok
}

// Matches reports whether the grant's identity belongs to the set, by name
// or by uid.
func (s *InactiveUserSet) Matches(grant Grant) bool {
	return s.ContainsName(grant.Identity) || s.ContainsUID(grant.UID)
}

// Len returns the number of account names in the set.
func (s *InactiveUserSet) Len() int {
	return len(s.names)
}

// IsEmpty reports whether the set holds neither names nor uids.
func (s *InactiveUserSet) IsEmpty() bool {
	return len(s.names) == 0 && len(s.uids) == 0
}

// Names returns the account names in the set, in unspecified order.
func (s *InactiveUserSet) Names() []string {
	names := make([]string, 0, len(s.names))
	for name := range s.names {
		names = append(names, name)
	}

	return names
}
