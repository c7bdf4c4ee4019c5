// SPDX-FileCopyrightText: 2026 The Permsweep Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cli provides the command-line interface for permsweep.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/permsweep/permsweep/internal/adapters/fsys"
	"github.com/permsweep/permsweep/internal/adapters/posix"
	"github.com/permsweep/permsweep/internal/application"
	"github.com/permsweep/permsweep/internal/auditlog"
	"github.com/permsweep/permsweep/internal/config"
	"github.com/permsweep/permsweep/internal/console"
	"github.com/permsweep/permsweep/internal/domain"
	"github.com/permsweep/permsweep/internal/exclude"
	"github.com/permsweep/permsweep/internal/identity"
)

// Version is set at build time via -ldflags.
var Version = "dev" //nolint:gochecknoglobals

// Exit codes follow standard Unix conventions for better scripting support.
const (
	ExitSuccess         = 0  // Run completed (even with per-grant failures)
	ExitGeneralError    = 1  // Generic failure
	ExitUsageError      = 2  // Invalid command line usage
	ExitConfigError     = 3  // Users/exclude/config file error
	ExitPermissionError = 4  // Log destination could not be opened
	ExitNotFoundError   = 5  // Scan root does not exist or is not a directory
	ExitSystemError     = 12 // Process lock or other system failure
	ExitInterruptError  = 14 // Interrupted
)

// ErrAborted is returned when the user declines the remove confirmation.
var ErrAborted = errors.New("aborted")

// ExitError carries a specific exit code for a failure mode.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// NewExitError creates an ExitError with the specified code and message.
func NewExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// CLI holds the configured command and run-scoped flag state.
type CLI struct {
	app *cli.Command

	directory string
	usersFile string
	remove    bool
	logFile   string
	exclFile  string
	yes       bool
	verbose   bool
	json      bool
	plain     bool
	color     string
}

// NewCLI builds the permsweep command.
func NewCLI() *CLI {
	app := &CLI{}

	app.app = &cli.Command{
		Name:    "permsweep",
		Usage:   "Identify and remove permissions of inactive user accounts",
		Version: Version,
		Suggest: true,
		Description: `Scans a directory tree for permission grants (file ownership and POSIX
ACL entries) that belong to inactive or terminated accounts, and reports
or removes them.

By default the tool only identifies dead grants. Pass --remove to strip
them; each grant is removed in isolation, so one failure never aborts
the run.

EXAMPLES:
  permsweep -d /srv/shares -u inactive.txt              # report only
  permsweep -d /srv/shares -u inactive.txt -r --yes     # remove, no prompt
  permsweep -d /srv/shares -u inactive.txt -e skip.txt -l sweep.log`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "directory",
				Aliases:     []string{"d"},
				Usage:       "root directory to scan",
				Required:    true,
				Destination: &app.directory,
			},
			&cli.StringFlag{
				Name:        "users",
				Aliases:     []string{"u"},
				Usage:       "file with inactive account names, one per line",
				Required:    true,
				Destination: &app.usersFile,
			},
			&cli.BoolFlag{
				Name:        "remove",
				Aliases:     []string{"r"},
				Usage:       "remove dead grants instead of only identifying them",
				Destination: &app.remove,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Aliases:     []string{"l"},
				Usage:       "append action records to this file (default: stdout)",
				Destination: &app.logFile,
			},
			&cli.StringFlag{
				Name:        "exclude",
				Aliases:     []string{"e"},
				Usage:       "file with gitignore-syntax patterns to skip",
				Destination: &app.exclFile,
			},
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the remove-mode confirmation prompt",
				Destination: &app.yes,
			},
			&cli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"v"},
				Usage:       "show progress messages on stderr",
				Destination: &app.verbose,
			},
			&cli.BoolFlag{
				Name:        "json",
				Aliases:     []string{"j"},
				Usage:       "emit findings as newline-delimited JSON",
				Destination: &app.json,
			},
			&cli.BoolFlag{
				Name:        "plain",
				Usage:       "plain text output without formatting, for scripts",
				Destination: &app.plain,
			},
			&cli.StringFlag{
				Name:        "color",
				Usage:       "color output mode: auto, always, never",
				Value:       console.ColorAuto,
				Destination: &app.color,
			},
		},
		Action: app.run,
	}

	return app
}

// Run executes the CLI application.
func (app *CLI) Run(ctx context.Context, args []string) error {
	return app.app.Run(ctx, args)
}

// Command exposes the underlying command, for tests.
func (app *CLI) Command() *cli.Command {
	return app.app
}

func (app *CLI) run(ctx context.Context, _ *cli.Command) error {
	osFs := afero.NewOsFs()

	cfg, err := config.Load(osFs, config.Path())
	if err != nil {
		return NewExitError(ExitConfigError, "could not load config", err)
	}

	app.applyDefaults(cfg)

	out := console.New(app.verbose, app.json, app.plain, app.color)

	set, err := identity.LoadInactiveUsers(osFs, app.usersFile, identity.SystemUIDLookup)
	if err != nil {
		out.Errorf("could not read users file %s", app.usersFile)

		return NewExitError(ExitConfigError, "could not read users file", err)
	}

	matcher, err := app.buildMatcher(osFs, cfg)
	if err != nil {
		out.Errorf("could not read exclude file %s", app.exclFile)

		return NewExitError(ExitConfigError, "could not read exclude file", err)
	}

	if app.remove && !app.yes {
		confirmed, err := confirmRemoval(out, app.directory, set.Len())
		if err != nil {
			return NewExitError(ExitGeneralError, "confirmation failed", err)
		}

		if !confirmed {
			return NewExitError(ExitInterruptError, "aborted", ErrAborted)
		}
	}

	logger, err := auditlog.New(app.logFile)
	if err != nil {
		out.Errorf("could not open log file %s", app.logFile)

		return NewExitError(ExitPermissionError, "could not open log file", err)
	}

	defer func() {
		if closeErr := logger.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to close log file: %v\n", closeErr)
		}
	}()

	return app.sweep(ctx, out, set, matcher, logger)
}

func (app *CLI) sweep(
	ctx context.Context,
	out *console.Output,
	set *domain.InactiveUserSet,
	matcher *exclude.Matcher,
	logger *auditlog.Logger,
) error {
	resolver := identity.NewPasswdResolver()
	service := application.NewSweepService(
		fsys.NewScanner(afero.NewOsFs(), matcher),
		posix.NewReader(resolver),
		posix.NewRemover(),
		logger,
		set,
	)

	if app.remove {
		out.Statusf("Removing permissions...")
	} else {
		out.Statusf("Checking permissions...")
	}

	out.Progressf("scanning %s against %d inactive accounts", app.directory, set.Len())

	result, err := service.Run(ctx, application.Options{Root: app.directory, Remove: app.remove})
	if err != nil {
		if errors.Is(err, domain.ErrRootInvalid) {
			out.Errorf("directory not found or unreadable: %s", app.directory)

			return NewExitError(ExitNotFoundError, "invalid scan root", err)
		}

		if errors.Is(err, context.Canceled) {
			return NewExitError(ExitInterruptError, "interrupted", err)
		}

		return NewExitError(ExitGeneralError, "sweep failed", err)
	}

	out.Findings(result.Findings)
	out.Summary(result.Scanned, result.Flagged, result.Removed, result.Skipped, result.Errors)

	if result.Errors > 0 {
		out.Successf("completed with %d logged errors", result.Errors)
	} else {
		out.Successf("completed")
	}

	// Per-grant failures were logged and do not fail the run.
	return nil
}

// applyDefaults fills unset flags from the config file.
func (app *CLI) applyDefaults(cfg *config.File) {
	if app.logFile == "" {
		app.logFile = cfg.LogFile
	}

	if app.color == console.ColorAuto && cfg.Color != "" {
		app.color = cfg.Color
	}
}

// buildMatcher combines the exclude file with config-file patterns; the
// file takes precedence when both are present.
func (app *CLI) buildMatcher(osFs afero.Fs, cfg *config.File) (*exclude.Matcher, error) {
	if app.exclFile != "" {
		return exclude.Load(osFs, app.exclFile)
	}

	if len(cfg.Exclude) > 0 {
		return exclude.New(cfg.Exclude), nil
	}

	return nil, nil
}
