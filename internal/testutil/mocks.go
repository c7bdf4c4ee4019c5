// SPDX-FileCopyrightText: 2026 The Permsweep Authors
// SPDX-License-Identifier: EUPL-1.2

// Package testutil provides testify mocks for the domain ports.
package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/permsweep/permsweep/internal/domain"
)

// MockScanner mocks the Scanner port. Entries set on the struct are fed to
// the walk callback in order, making traversal deterministic in tests.
type MockScanner struct {
	mock.Mock

	Entries []domain.DirectoryEntry
}

// Walk mocks the traversal; it yields the configured entries unless the
// expectation returns an error.
func (m *MockScanner) Walk(ctx context.Context, root string, fn domain.WalkFunc) error {
	args := m.Called(ctx, root)
	if err := args.Error(0); err != nil {
		return err
	}

	for _, entry := range m.Entries {
		if err := fn(entry, nil); err != nil {
			return err
		}
	}

	return nil
}

// MockPermissionReader mocks the PermissionReader port.
type MockPermissionReader struct {
	mock.Mock
}

// Read mocks a permission read.
func (m *MockPermissionReader) Read(path string) (domain.PermissionRecord, error) {
	args := m.Called(path)

	rec, ok := args.Get(0).(domain.PermissionRecord)
	if !ok {
		return domain.PermissionRecord{}, args.Error(1)
	}

	return rec, args.Error(1)
}

// MockGrantRemover mocks the GrantRemover port.
type MockGrantRemover struct {
	mock.Mock
}

// Remove mocks a grant removal.
func (m *MockGrantRemover) Remove(ctx context.Context, entry domain.DirectoryEntry, grant domain.Grant) error {
	args := m.Called(ctx, entry, grant)

	return args.Error(0)
}

// RecordingLogger is an in-memory ActionLogger capturing every record.
type RecordingLogger struct {
	Records []domain.ActionRecord
	Closed  bool
}

// Record appends the record.
func (l *RecordingLogger) Record(rec domain.ActionRecord) {
	l.Records = append(l.Records, rec)
}

// Close marks the logger closed.
func (l *RecordingLogger) Close() error {
	l.Closed = true

	return nil
}
