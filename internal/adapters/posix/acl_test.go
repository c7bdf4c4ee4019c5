// SPDX-FileCopyrightText: 2026 The Permsweep Authors
// SPDX-License-Identifier: EUPL-1.2

package posix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleACL() []aclEntry {
	return []aclEntry{
		{Tag: tagUserObj, Perm: permRead | permWrite, ID: aclUndefinedID},
		{Tag: tagUser, Perm: permRead, ID: 1001},
		{Tag: tagUser, Perm: permRead | permWrite | permExec, ID: 1002},
		{Tag: tagGroupObj, Perm: permRead, ID: aclUndefinedID},
		{Tag: tagMask, Perm: permRead | permWrite | permExec, ID: aclUndefinedID},
		{Tag: tagOther, Perm: 0, ID: aclUndefinedID},
	}
}

func TestACLCodecRoundTrip(t *testing.T) {
	t.Parallel()

	entries := sampleACL()

	decoded, err := decodeACL(encodeACL(entries))
	require.NoError(t, err)
	assert.Equal(t, entries, decoded)
}

func TestDecodeACLRejectsGarbage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		buf  []byte
	}{
		{name: "empty buffer", buf: nil},
		{name: "short header", buf: []byte{0x02}},
		{name: "wrong version", buf: []byte{0x01, 0x00, 0x00, 0x00}},
		{name: "truncated entry", buf: append(encodeACL(sampleACL()), 0xAA, 0xBB)},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := decodeACL(testCase.buf)
			require.ErrorIs(t, err, ErrBadACL)
		})
	}
}

func TestRightsString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "---", rightsString(0))
	assert.Equal(t, "r--", rightsString(permRead))
	assert.Equal(t, "rw-", rightsString(permRead|permWrite))
	assert.Equal(t, "rwx", rightsString(permRead|permWrite|permExec))
	assert.Equal(t, "--x", rightsString(permExec))
}

func TestDropUserEntries(t *testing.T) {
	t.Parallel()

	kept, dropped, namedLeft := dropUserEntries(sampleACL(), 1001)

	assert.True(t, dropped)
	assert.True(t, namedLeft, "uid 1002 entry remains")
	require.Len(t, kept, 5)

	for _, entry := range kept {
		if entry.Tag == tagUser {
			assert.NotEqual(t, uint32(1001), entry.ID)
		}
	}
}

func TestDropUserEntriesLastNamedEntry(t *testing.T) {
	t.Parallel()

	entries := []aclEntry{
		{Tag: tagUserObj, Perm: permRead | permWrite, ID: aclUndefinedID},
		{Tag: tagUser, Perm: permRead, ID: 1001},
		{Tag: tagGroupObj, Perm: permRead, ID: aclUndefinedID},
		{Tag: tagMask, Perm: permRead, ID: aclUndefinedID},
		{Tag: tagOther, Perm: 0, ID: aclUndefinedID},
	}

	kept, dropped, namedLeft := dropUserEntries(entries, 1001)

	assert.True(t, dropped)
	assert.False(t, namedLeft, "base trio plus mask is mode-equivalent")
	assert.Len(t, kept, 4)
}

func TestDropUserEntriesNoMatch(t *testing.T) {
	t.Parallel()

	entries := sampleACL()

	kept, dropped, _ := dropUserEntries(entries, 9999)

	assert.False(t, dropped)
	assert.Equal(t, entries, kept, "unrelated entries must be preserved bit-for-bit")
}
