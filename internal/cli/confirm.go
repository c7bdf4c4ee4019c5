// SPDX-FileCopyrightText: 2026 The Permsweep Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/permsweep/permsweep/internal/console"
)

// confirmRemoval asks before mutating filesystem state. Off a TTY (cron,
// pipes) it proceeds without asking; batch callers opt out with --yes.
func confirmRemoval(out *console.Output, root string, userCount int) (bool, error) {
	if !out.IsTTY(os.Stdin.Fd()) || !out.IsTTY(os.Stderr.Fd()) {
		return true, nil
	}

	confirmed := false

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Remove grants of %d inactive accounts under %s?", userCount, root)).
				Description("Dead ACL entries are stripped and owner bits cleared. This cannot be undone.").
				Affirmative("Remove").
				Negative("Cancel").
				Value(&confirmed),
		),
	)

	if err := form.Run(); err != nil {
		return false, err
	}

	return confirmed, nil
}
