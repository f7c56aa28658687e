// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reader

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// Gaps and tolerances are fractions of the font size.
const (
	// lineTolerance is how far apart two baselines may be and still be
	// read as one line.
	lineTolerance = 0.5
	// wordGap is the horizontal gap above which a space is inserted.
	wordGap = 0.2
	// columnGap is the horizontal gap above which a new run (cell) starts.
	columnGap = 1.5
	// glyphAdvance stands in for glyph width when the font carries none.
	glyphAdvance = 0.5
)

// textLine is one visual line of a page: its baseline and its text runs,
// left to right. Runs are separated by gaps wide enough to be columns.
type textLine struct {
	y    float64
	runs []string
}

// text returns the line with its runs separated by single spaces.
func (l textLine) text() string {
	parts := make([]string, 0, len(l.runs))
	for _, r := range l.runs {
		if r = strings.TrimSpace(r); r != "" {
			parts = append(parts, r)
		}
	}
	return strings.Join(parts, " ")
}

// layoutLines rebuilds the lines of a page from positioned glyphs. Glyphs
// whose baselines agree within lineTolerance form a line; lines run top to
// bottom and glyphs within a line left to right.
func layoutLines(glyphs []pdf.Text) []textLine {
	type bucket struct {
		y, size float64
		glyphs  []pdf.Text
	}
	var buckets []*bucket

	for _, g := range glyphs {
		if g.S == "" {
			continue
		}
		var target *bucket
		for _, b := range buckets {
			if math.Abs(b.y-g.Y) <= max(b.size, g.FontSize, 1)*lineTolerance {
				target = b
				break
			}
		}
		if target == nil {
			target = &bucket{y: g.Y, size: g.FontSize}
			buckets = append(buckets, target)
		}
		target.glyphs = append(target.glyphs, g)
	}

	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].y > buckets[j].y })

	lines := make([]textLine, 0, len(buckets))
	for _, b := range buckets {
		sort.SliceStable(b.glyphs, func(i, j int) bool { return b.glyphs[i].X < b.glyphs[j].X })
		lines = append(lines, textLine{y: b.y, runs: splitRuns(b.glyphs)})
	}
	return lines
}

// splitRuns joins the glyphs of one line into runs. A gap wider than
// wordGap becomes a space, a gap wider than columnGap starts a new run.
// Glyphs without a width that share an origin are laid end to end.
func splitRuns(glyphs []pdf.Text) []string {
	var runs []string
	var b strings.Builder
	var prevOrigin, prevEnd, prevSize float64

	for i, g := range glyphs {
		start := g.X
		if i > 0 {
			if g.W <= 0 && g.X == prevOrigin {
				start = prevEnd
			}
			size := max(prevSize, g.FontSize, 1)
			gap := start - prevEnd
			switch {
			case gap > size*columnGap:
				runs = append(runs, b.String())
				b.Reset()
			case gap > size*wordGap && !strings.HasSuffix(b.String(), " ") && !strings.HasPrefix(g.S, " "):
				b.WriteByte(' ')
			}
		}
		b.WriteString(g.S)

		width := g.W
		if width <= 0 {
			width = g.FontSize * glyphAdvance * float64(utf8.RuneCountInString(g.S))
		}
		prevOrigin, prevEnd, prevSize = g.X, start+width, g.FontSize
	}
	return append(runs, b.String())
}
