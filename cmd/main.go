// SPDX-FileCopyrightText: 2026 The Permsweep Authors
// SPDX-License-Identifier: EUPL-1.2

// Package main provides the CLI entry point for permsweep.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"

	"github.com/permsweep/permsweep/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Two instances mutating ACLs under the same tree would race each
	// other; acquire a process lock first.
	lockPath := filepath.Join(os.TempDir(), "permsweep.lock")
	lock := flock.New(lockPath)

	locked, err := lock.TryLock()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to acquire process lock: %v\n", err)

		return cli.ExitSystemError
	}

	if !locked {
		fmt.Fprintf(os.Stderr, "Another permsweep instance is already running\n")

		return cli.ExitGeneralError
	}

	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to release process lock: %v\n", unlockErr)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewCLI()
	if err := app.Run(ctx, os.Args); err != nil {
		exitErr := &cli.ExitError{}
		if errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "%s\n", exitErr.Message)

			return exitErr.Code
		}

		// Usage errors from the flag parser land here.
		fmt.Fprintf(os.Stderr, "%v\n", err)

		return cli.ExitUsageError
	}

	return cli.ExitSuccess
}
