// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reader

import (
	"strings"

	"github.com/pdiddy/procurement-parser/pkg/types"
)

const (
	// minTableRows is the number of consecutive grid-like rows needed to
	// call a block a table.
	minTableRows = 2
	// minTableCells is the number of non-blank runs a row needs to look
	// like a table row.
	minTableCells = 2
)

// detectTables groups text rows into tables. Each input row holds the text
// runs of one line, left to right. A table is a run of at least minTableRows
// consecutive rows that each carry at least minTableCells non-blank runs and
// share the same run count. Blank runs become nil cells.
func detectTables(rows [][]string) []types.Table {
	var tables []types.Table
	var current types.Table
	width := 0

	flush := func() {
		if len(current) >= minTableRows {
			tables = append(tables, current)
		}
		current = nil
		width = 0
	}

	for _, runs := range rows {
		row, filled := toTableRow(runs)
		if filled < minTableCells {
			flush()
			continue
		}
		if len(current) > 0 && len(row) != width {
			flush()
		}
		current = append(current, row)
		width = len(row)
	}
	flush()

	return tables
}

// toTableRow converts text runs into cells and reports how many are non-blank.
func toTableRow(runs []string) (types.TableRow, int) {
	row := make(types.TableRow, len(runs))
	filled := 0
	for i, s := range runs {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		row[i] = types.Cell(s)
		filled++
	}
	return row, filled
}
