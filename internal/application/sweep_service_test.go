// SPDX-FileCopyrightText: 2026 The Permsweep Authors
// SPDX-License-Identifier: EUPL-1.2

package application_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/permsweep/permsweep/internal/application"
	"github.com/permsweep/permsweep/internal/domain"
	"github.com/permsweep/permsweep/internal/testutil"
)

var errNotPermitted = errors.New("operation not permitted")

func ownerRecord(path, owner string, uid uint32) domain.PermissionRecord {
	return domain.PermissionRecord{
		Entry: domain.DirectoryEntry{Path: path},
		Owner: domain.Grant{Identity: owner, UID: uid, Kind: domain.GrantOwner, Rights: "rw-"},
	}
}

func newFixture(entries ...domain.DirectoryEntry) (*testutil.MockScanner, *testutil.MockPermissionReader, *testutil.MockGrantRemover, *testutil.RecordingLogger) {
	scanner := &testutil.MockScanner{Entries: entries}
	scanner.On("Walk", mock.Anything, mock.Anything).Return(nil)

	return scanner, &testutil.MockPermissionReader{}, &testutil.MockGrantRemover{}, &testutil.RecordingLogger{}
}

func TestIdentifyModeReportsWithoutMutating(t *testing.T) {
	t.Parallel()

	report := domain.DirectoryEntry{Path: "/data/report.txt"}
	notes := domain.DirectoryEntry{Path: "/data/notes.txt"}

	scanner, reader, remover, logger := newFixture(report, notes)
	reader.On("Read", "/data/report.txt").Return(ownerRecord("/data/report.txt", "alice", 1001), nil)
	reader.On("Read", "/data/notes.txt").Return(ownerRecord("/data/notes.txt", "bob", 1000), nil)

	svc := application.NewSweepService(scanner, reader, remover, logger, domain.NewInactiveUserSet([]string{"alice"}))

	result, err := svc.Run(context.Background(), application.Options{Root: "/data"})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Scanned)
	assert.Equal(t, 1, result.Flagged)
	assert.Zero(t, result.Removed)
	assert.Zero(t, result.Errors)

	require.Len(t, result.Findings, 1)
	assert.Equal(t, "/data/report.txt", result.Findings[0].Path)
	assert.Equal(t, "alice", result.Findings[0].Identity)
	assert.Equal(t, domain.ActionIdentified, result.Findings[0].Action)
	assert.Equal(t, domain.OutcomeOK, result.Findings[0].Outcome)

	remover.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything, mock.Anything)
}

func TestCleanEntryLogsNoActionRecord(t *testing.T) {
	t.Parallel()

	notes := domain.DirectoryEntry{Path: "/data/notes.txt"}

	scanner, reader, remover, logger := newFixture(notes)
	reader.On("Read", "/data/notes.txt").Return(ownerRecord("/data/notes.txt", "bob", 1000), nil)

	svc := application.NewSweepService(scanner, reader, remover, logger, domain.NewInactiveUserSet([]string{"alice"}))

	result, err := svc.Run(context.Background(), application.Options{Root: "/data"})
	require.NoError(t, err)

	assert.Empty(t, result.Findings, "clean entries are not findings")
	require.Len(t, logger.Records, 1, "every classified entry gets a log record")
	assert.Equal(t, domain.ActionNone, logger.Records[0].Action)
	assert.Equal(t, domain.OutcomeOK, logger.Records[0].Outcome)
}

func TestRemoveModeStripsDeadGrants(t *testing.T) {
	t.Parallel()

	report := domain.DirectoryEntry{Path: "/data/report.txt"}
	aliceOwner := domain.Grant{Identity: "alice", UID: 1001, Kind: domain.GrantOwner, Rights: "rw-"}

	scanner, reader, remover, logger := newFixture(report)
	reader.On("Read", "/data/report.txt").Return(ownerRecord("/data/report.txt", "alice", 1001), nil)
	remover.On("Remove", mock.Anything, report, aliceOwner).Return(nil)

	svc := application.NewSweepService(scanner, reader, remover, logger, domain.NewInactiveUserSet([]string{"alice"}))

	result, err := svc.Run(context.Background(), application.Options{Root: "/data", Remove: true})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Removed)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, domain.ActionRemoved, result.Findings[0].Action)
	assert.Equal(t, domain.OutcomeOK, result.Findings[0].Outcome)

	remover.AssertExpectations(t)
}

func TestRemoveFailureIsIsolatedPerGrant(t *testing.T) {
	t.Parallel()

	locked := domain.DirectoryEntry{Path: "/data/locked.txt"}
	report := domain.DirectoryEntry{Path: "/data/report.txt"}

	scanner, reader, remover, logger := newFixture(locked, report)
	reader.On("Read", "/data/locked.txt").Return(ownerRecord("/data/locked.txt", "alice", 1001), nil)
	reader.On("Read", "/data/report.txt").Return(ownerRecord("/data/report.txt", "alice", 1001), nil)

	remover.On("Remove", mock.Anything, locked, mock.Anything).Return(errNotPermitted)
	remover.On("Remove", mock.Anything, report, mock.Anything).Return(nil)

	svc := application.NewSweepService(scanner, reader, remover, logger, domain.NewInactiveUserSet([]string{"alice"}))

	result, err := svc.Run(context.Background(), application.Options{Root: "/data", Remove: true})
	require.NoError(t, err, "per-grant failures must not abort the run")

	assert.Equal(t, 1, result.Errors)
	assert.Equal(t, 1, result.Removed)

	require.Len(t, result.Findings, 2)
	assert.Equal(t, domain.OutcomeError, result.Findings[0].Outcome)
	assert.Equal(t, "operation not permitted", result.Findings[0].Detail)
	assert.Equal(t, domain.OutcomeOK, result.Findings[1].Outcome)
}

func TestRemoveSkipsInvokingUsersOwnGrant(t *testing.T) {
	t.Parallel()

	self := uint32(os.Geteuid())
	report := domain.DirectoryEntry{Path: "/data/own.txt"}

	scanner, reader, remover, logger := newFixture(report)
	reader.On("Read", "/data/own.txt").Return(ownerRecord("/data/own.txt", "me", self), nil)

	set := domain.NewInactiveUserSet([]string{"me"})
	svc := application.NewSweepService(scanner, reader, remover, logger, set)

	result, err := svc.Run(context.Background(), application.Options{Root: "/data", Remove: true})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	assert.Zero(t, result.Removed)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, domain.ActionSkipped, result.Findings[0].Action)

	remover.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveSkipsSymlinkOwnerGrant(t *testing.T) {
	t.Parallel()

	link := domain.DirectoryEntry{Path: "/data/link", IsSymlink: true}

	rec := ownerRecord("/data/link", "alice", 1001)
	rec.Entry.IsSymlink = true
	rec.Owner.Rights = "rwx"

	scanner, reader, remover, logger := newFixture(link)
	reader.On("Read", "/data/link").Return(rec, nil)

	svc := application.NewSweepService(scanner, reader, remover, logger, domain.NewInactiveUserSet([]string{"alice"}))

	result, err := svc.Run(context.Background(), application.Options{Root: "/data", Remove: true})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	assert.Zero(t, result.Removed)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, domain.ActionSkipped, result.Findings[0].Action)
	assert.Contains(t, result.Findings[0].Detail, "symlink")

	remover.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveSkipsSymlinkEvenWhenOnlyReaderSeesIt(t *testing.T) {
	t.Parallel()

	// Scanner entry without the flag; the reader's stat detects the link.
	link := domain.DirectoryEntry{Path: "/data/link"}

	rec := ownerRecord("/data/link", "alice", 1001)
	rec.Entry.IsSymlink = true

	scanner, reader, remover, logger := newFixture(link)
	reader.On("Read", "/data/link").Return(rec, nil)

	svc := application.NewSweepService(scanner, reader, remover, logger, domain.NewInactiveUserSet([]string{"alice"}))

	result, err := svc.Run(context.Background(), application.Options{Root: "/data", Remove: true})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	remover.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything, mock.Anything)
}

func TestReadFailureIsLoggedAndSkipped(t *testing.T) {
	t.Parallel()

	broken := domain.DirectoryEntry{Path: "/data/broken"}
	report := domain.DirectoryEntry{Path: "/data/report.txt"}

	scanner, reader, remover, logger := newFixture(broken, report)
	reader.On("Read", "/data/broken").Return(domain.PermissionRecord{}, errNotPermitted)
	reader.On("Read", "/data/report.txt").Return(ownerRecord("/data/report.txt", "alice", 1001), nil)

	svc := application.NewSweepService(scanner, reader, remover, logger, domain.NewInactiveUserSet([]string{"alice"}))

	result, err := svc.Run(context.Background(), application.Options{Root: "/data"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Errors)
	assert.Equal(t, 1, result.Flagged, "remaining entries are still processed")
}

func TestFatalScannerErrorAbortsRun(t *testing.T) {
	t.Parallel()

	scanner := &testutil.MockScanner{}
	scanner.On("Walk", mock.Anything, mock.Anything).Return(domain.ErrRootInvalid)

	logger := &testutil.RecordingLogger{}
	svc := application.NewSweepService(scanner, &testutil.MockPermissionReader{}, &testutil.MockGrantRemover{}, logger, domain.NewInactiveUserSet(nil))

	_, err := svc.Run(context.Background(), application.Options{Root: "/missing"})
	require.ErrorIs(t, err, domain.ErrRootInvalid)
	assert.Empty(t, logger.Records)
}

func TestACLGrantOnActiveOwnerIsFlagged(t *testing.T) {
	t.Parallel()

	shared := domain.DirectoryEntry{Path: "/data/shared.txt"}
	aliceACL := domain.Grant{Identity: "alice", UID: 1001, Kind: domain.GrantACLUser, Rights: "r--"}

	rec := ownerRecord("/data/shared.txt", "bob", 1000)
	rec.ACL = []domain.Grant{aliceACL}

	scanner, reader, remover, logger := newFixture(shared)
	reader.On("Read", "/data/shared.txt").Return(rec, nil)
	remover.On("Remove", mock.Anything, shared, aliceACL).Return(nil)

	svc := application.NewSweepService(scanner, reader, remover, logger, domain.NewInactiveUserSet([]string{"alice"}))

	result, err := svc.Run(context.Background(), application.Options{Root: "/data", Remove: true})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Removed)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, domain.GrantACLUser, result.Findings[0].Kind)
}
