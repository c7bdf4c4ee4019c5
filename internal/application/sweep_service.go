// SPDX-FileCopyrightText: 2026 The Permsweep Authors
// SPDX-License-Identifier: EUPL-1.2

// Package application orchestrates the permission sweep: scan, classify,
// remediate, log — one entry at a time.
package application

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/permsweep/permsweep/internal/domain"
)

// Options configures one sweep run.
type Options struct {
	Root   string
	Remove bool
}

// Result summarizes one sweep run. Findings holds the terminal record of
// every dead grant and every per-entry error, in traversal order.
type Result struct {
	RunID    string
	Scanned  int
	Flagged  int
	Removed  int
	Skipped  int
	Errors   int
	Findings []domain.ActionRecord
}

// SweepService runs the scan → classify → remediate → log pass.
type SweepService struct {
	scanner domain.Scanner
	reader  domain.PermissionReader
	remover domain.GrantRemover
	log     domain.ActionLogger
	set     *domain.InactiveUserSet

	runID string
	euid  uint32
	now   func() time.Time
}

// NewSweepService wires the sweep over its ports. The inactive-user set is
// read-only for the duration of the run.
func NewSweepService(
	scanner domain.Scanner,
	reader domain.PermissionReader,
	remover domain.GrantRemover,
	log domain.ActionLogger,
	set *domain.InactiveUserSet,
) *SweepService {
	return &SweepService{
		scanner: scanner,
		reader:  reader,
		remover: remover,
		log:     log,
		set:     set,
		runID:   uuid.NewString(),
		euid:    uint32(os.Geteuid()), //nolint:gosec
		now:     time.Now,
	}
}

// Run processes every entry under opts.Root exactly once. Per-entry and
// per-grant failures are logged and skipped; the returned error is non-nil
// only for fatal conditions (invalid root, cancelled context).
func (s *SweepService) Run(ctx context.Context, opts Options) (*Result, error) {
	result := &Result{RunID: s.runID}

	err := s.scanner.Walk(ctx, opts.Root, func(entry domain.DirectoryEntry, walkErr error) error {
		if walkErr != nil {
			s.recordError(result, entry.Path, domain.ActionNone, walkErr)

			return nil
		}

		result.Scanned++
		s.sweepEntry(ctx, result, entry, opts.Remove)

		return nil
	})
	if err != nil {
		return result, err
	}

	return result, nil
}

func (s *SweepService) sweepEntry(ctx context.Context, result *Result, entry domain.DirectoryEntry, remove bool) {
	rec, err := s.reader.Read(entry.Path)
	if err != nil {
		s.recordError(result, entry.Path, domain.ActionNone, err)

		return
	}

	// The reader's view of the entry is authoritative for link detection.
	entry.IsSymlink = entry.IsSymlink || rec.Entry.IsSymlink

	dead := domain.Classify(rec, s.set)
	if len(dead) == 0 {
		s.log.Record(domain.ActionRecord{
			Time:    s.now(),
			RunID:   s.runID,
			Path:    entry.Path,
			Action:  domain.ActionNone,
			Outcome: domain.OutcomeOK,
		})

		return
	}

	result.Flagged++

	for _, grant := range dead {
		s.sweepGrant(ctx, result, entry, grant, remove)
	}
}

func (s *SweepService) sweepGrant(ctx context.Context, result *Result, entry domain.DirectoryEntry, grant domain.Grant, remove bool) {
	rec := domain.ActionRecord{
		Time:     s.now(),
		RunID:    s.runID,
		Path:     entry.Path,
		Identity: grant.Identity,
		Kind:     grant.Kind,
		Outcome:  domain.OutcomeOK,
	}

	switch {
	case !remove:
		rec.Action = domain.ActionIdentified

	case grant.Kind == domain.GrantOwner && entry.IsSymlink:
		// chmod follows the link; clearing owner bits here would strip
		// the target's owner, who was never classified.
		rec.Action = domain.ActionSkipped
		rec.Detail = "symlink owner bits apply to the target"
		result.Skipped++

	case grant.UID == s.euid:
		// Never strip the invoking user's own access.
		rec.Action = domain.ActionSkipped
		rec.Detail = "grant belongs to invoking user"
		result.Skipped++

	default:
		rec.Action = domain.ActionRemoved

		if err := s.remover.Remove(ctx, entry, grant); err != nil {
			rec.Outcome = domain.OutcomeError
			rec.Detail = err.Error()
			result.Errors++
		} else {
			result.Removed++
		}
	}

	s.log.Record(rec)
	result.Findings = append(result.Findings, rec)
}

func (s *SweepService) recordError(result *Result, path string, action domain.Action, err error) {
	rec := domain.ActionRecord{
		Time:    s.now(),
		RunID:   s.runID,
		Path:    path,
		Action:  action,
		Outcome: domain.OutcomeError,
		Detail:  err.Error(),
	}

	result.Errors++
	s.log.Record(rec)
	result.Findings = append(result.Findings, rec)
}
