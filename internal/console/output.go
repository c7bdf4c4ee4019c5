// SPDX-FileCopyrightText: 2026 The Permsweep Authors
// SPDX-License-Identifier: EUPL-1.2

// Package console formats human and machine output for the sweep.
package console

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/permsweep/permsweep/internal/domain"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Output holds output configuration for one run.
type Output struct {
	Verbose bool
	JSON    bool
	Plain   bool
	Color   string

	stdout io.Writer
	stderr io.Writer
}

// New creates an Output writing to stdout/stderr.
func New(verbose, jsonMode, plain bool, color string) *Output {
	return &Output{
		Verbose: verbose,
		JSON:    jsonMode,
		Plain:   plain,
		Color:   color,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
}

// NewWithWriters creates an Output with custom writers for testing.
func NewWithWriters(stdout, stderr io.Writer, verbose, jsonMode, plain bool, color string) *Output {
	out := New(verbose, jsonMode, plain, color)
	out.stdout = stdout
	out.stderr = stderr

	return out
}

// IsTTY checks if output is going to a terminal (not piped/redirected).
func (o *Output) IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// styled reports whether styling should be applied, honoring the color mode
// and no-color.org conventions.
func (o *Output) styled() bool {
	if o.JSON || o.Plain || o.Color == ColorNever {
		return false
	}

	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}

	if o.Color == ColorAlways {
		return true
	}

	file, ok := o.stdout.(*os.File)

	return ok && o.IsTTY(file.Fd())
}

// Statusf writes a styled status line to stderr ("Checking permissions...").
func (o *Output) Statusf(format string, args ...any) {
	if o.JSON || o.Plain {
		return
	}

	msg := fmt.Sprintf(format, args...)
	if o.styled() {
		msg = statusStyle().Render(msg)
	}

	fmt.Fprintln(o.stderr, msg)
}

// Progressf writes progress detail to stderr (verbose only).
func (o *Output) Progressf(format string, args ...any) {
	if o.Verbose && !o.JSON && !o.Plain {
		fmt.Fprintf(o.stderr, format+"\n", args...)
	}
}

// Successf writes a success line to stderr.
func (o *Output) Successf(format string, args ...any) {
	if o.JSON || o.Plain {
		return
	}

	msg := fmt.Sprintf("✓ "+format, args...)
	if o.styled() {
		msg = successStyle().Render(msg)
	}

	fmt.Fprintln(o.stderr, msg)
}

// Errorf writes an error line to stderr (always visible).
func (o *Output) Errorf(format string, args ...any) {
	if o.Plain || o.JSON {
		fmt.Fprintf(o.stderr, "error: "+format+"\n", args...)

		return
	}

	msg := fmt.Sprintf("✗ "+format, args...)
	if o.styled() {
		msg = errorStyle().Render(msg)
	}

	fmt.Fprintln(o.stderr, msg)
}

// Findings writes the run's findings to stdout: an aligned table by default,
// NDJSON with --json, key:value lines with --plain.
func (o *Output) Findings(findings []domain.ActionRecord) {
	switch {
	case o.JSON:
		encoder := json.NewEncoder(o.stdout)
		for _, rec := range findings {
			if err := encoder.Encode(rec); err != nil {
				fmt.Fprintf(o.stderr, "error encoding JSON: %v\n", err)

				return
			}
		}
	case o.Plain:
		for _, rec := range findings {
			fmt.Fprintf(o.stdout, "%s:%s:%s:%s:%s\n", rec.Path, rec.Identity, rec.Kind, rec.Action, rec.Outcome)
		}
	default:
		o.renderTable(findings)
	}
}

// Summary writes the run totals.
func (o *Output) Summary(scanned, flagged, removed, skipped, errs int) {
	if o.JSON {
		result := map[string]any{
			"status":  "completed",
			"scanned": scanned,
			"flagged": flagged,
			"removed": removed,
			"skipped": skipped,
			"errors":  errs,
		}

		if err := json.NewEncoder(o.stdout).Encode(result); err != nil {
			fmt.Fprintf(o.stderr, "error encoding JSON: %v\n", err)
		}

		return
	}

	if o.Plain {
		fmt.Fprintf(o.stdout, "scanned:%d\nflagged:%d\nremoved:%d\nskipped:%d\nerrors:%d\n", scanned, flagged, removed, skipped, errs)

		return
	}

	msg := fmt.Sprintf("%d entries scanned, %d flagged, %d removed, %d skipped, %d errors",
		scanned, flagged, removed, skipped, errs)
	if o.styled() {
		msg = summaryStyle().Render(msg)
	}

	fmt.Fprintln(o.stdout, msg)
}

func statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // yellow
}

func successStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // green
}

func errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // red
}

func summaryStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true)
}
