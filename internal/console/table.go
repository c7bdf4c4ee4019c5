// SPDX-FileCopyrightText: 2026 The Permsweep Authors
// SPDX-License-Identifier: EUPL-1.2

package console

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/permsweep/permsweep/internal/domain"
)

// renderTable prints findings as an aligned table. Column widths use
// display width rather than byte length so non-ASCII paths line up.
func (o *Output) renderTable(findings []domain.ActionRecord) {
	if len(findings) == 0 {
		return
	}

	header := []string{"PATH", "IDENTITY", "KIND", "ACTION", "OUTCOME"}
	rows := make([][]string, 0, len(findings))

	for _, rec := range findings {
		rows = append(rows, []string{rec.Path, rec.Identity, string(rec.Kind), string(rec.Action), string(rec.Outcome)})
	}

	widths := make([]int, len(header))
	for i, cell := range header {
		widths[i] = runewidth.StringWidth(cell)
	}

	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	printRow := func(row []string) {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = runewidth.FillRight(cell, widths[i])
		}

		fmt.Fprintln(o.stdout, strings.TrimRight(strings.Join(cells, "  "), " "))
	}

	printRow(header)

	for _, row := range rows {
		printRow(row)
	}
}
