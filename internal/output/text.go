// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/procurement-parser/pkg/types"
)

// Summary is the human-readable view of one parsed document.
type Summary struct {
	Result *types.ParseResult
	// AllDates lists every date in the document, not only the bucketed ones.
	AllDates []string
	Pages    int
	Tables   int
}

// WriteText writes the summary as aligned "label: value" lines.
func (s Summary) WriteText(w io.Writer) error {
	r := s.Result
	amounts := make([]string, len(r.NMCList))
	for i, v := range r.NMCList {
		amounts[i] = formatRoubles(v)
	}

	lines := [][2]string{
		{"Файл", r.SourceFile},
		{"Страниц", fmt.Sprint(s.Pages)},
		{"Способ закупки", r.ProcurementMethod.StatutoryName()},
		{"НМЦК", orDash(strings.Join(amounts, "; "))},
		{"Размещение", orDash(strings.Join(r.Dates.NoticePlacement, ", "))},
		{"Все даты", orDash(strings.Join(s.AllDates, ", "))},
		{"Таблиц", fmt.Sprint(s.Tables)},
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%-15s %s\n", l[0]+":", l[1]); err != nil {
			return err
		}
	}
	return nil
}

// Tables is a list of tables with a tab-separated text rendering.
type Tables []types.Table

// WriteText writes each table as tab-separated rows, tables separated by a
// blank line. Missing cells are written as empty fields.
func (ts Tables) WriteText(w io.Writer) error {
	for i, t := range ts {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		for _, row := range t {
			cells := make([]string, len(row))
			for j, c := range row {
				if c != nil {
					cells[j] = *c
				}
			}
			if _, err := fmt.Fprintln(w, strings.Join(cells, "\t")); err != nil {
				return err
			}
		}
	}
	return nil
}

// formatRoubles groups digits by thousands with a space: 1200000 -> "1 200 000 руб.".
func formatRoubles(v int64) string {
	digits := fmt.Sprint(v)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String() + " руб."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
