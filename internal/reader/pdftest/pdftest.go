// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftest builds small PDF files for tests. Every page uses one
// Helvetica font resource, /F1, with WinAnsi encoding and a uniform glyph
// width of 500/1000 em.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Build returns a PDF with one page per content stream, in order. An empty
// stream gives a blank page.
func Build(pages ...string) []byte {
	var objects []string

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 612 792] >>",
			strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding"+
			" /FirstChar 32 /LastChar 126 /Widths ["+strings.TrimSpace(strings.Repeat("500 ", 95))+"] >>",
	)
	for i, content := range pages {
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

// Write builds a PDF from pages into a temporary file and returns its path.
func Write(t testing.TB, pages ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.pdf")
	if err := os.WriteFile(path, Build(pages...), 0o644); err != nil {
		t.Fatalf("writing PDF fixture: %v", err)
	}
	return path
}

// Lines returns a content stream that prints each line at x=72, starting at
// y=700 and moving down 20 points per line with Td.
func Lines(lines ...string) string {
	var b strings.Builder
	b.WriteString("BT /F1 12 Tf 72 700 Td")
	for i, l := range lines {
		if i > 0 {
			b.WriteString(" 0 -20 Td")
		}
		fmt.Fprintf(&b, " (%s) Tj", escape(l))
	}
	b.WriteString(" ET")
	return b.String()
}

// Grid returns a content stream that prints rows of cells, one row per
// 20 points from y=650, columns 128 points apart from x=72. Every cell is
// placed with Td.
func Grid(rows ...[]string) string {
	var b strings.Builder
	b.WriteString("BT /F1 12 Tf 72 650 Td")
	for i, row := range rows {
		if i > 0 {
			fmt.Fprintf(&b, " %d -20 Td", -128*(len(rows[i-1])-1))
		}
		for j, cell := range row {
			if j > 0 {
				b.WriteString(" 128 0 Td")
			}
			fmt.Fprintf(&b, " (%s) Tj", escape(cell))
		}
	}
	b.WriteString(" ET")
	return b.String()
}

func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`).Replace(s)
}
