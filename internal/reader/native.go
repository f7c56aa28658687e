// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reader

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/procurement-parser/pkg/types"
)

// NativeOpener reads PDFs in-process with the ledongthuc/pdf parser. It
// needs no external tools and is the default backend.
type NativeOpener struct{}

// Open opens the file and parses the PDF cross-reference table. The parser
// panics on some malformed inputs; those panics surface as ErrFormat.
func (NativeOpener) Open(_ context.Context, path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w: %w", path, ErrOpen, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w: %w", path, ErrOpen, err)
	}

	var r *pdf.Reader
	err = guard(func() error {
		var perr error
		r, perr = pdf.NewReader(f, info.Size())
		return perr
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("parsing %s: %w: %w", path, ErrFormat, err)
	}

	var pages int
	if err := guard(func() error { pages = r.NumPage(); return nil }); err != nil {
		f.Close()
		return nil, fmt.Errorf("counting pages of %s: %w: %w", path, ErrFormat, err)
	}

	return &nativeDocument{file: f, reader: r, pages: pages}, nil
}

type nativeDocument struct {
	file   *os.File
	reader *pdf.Reader
	pages  int
}

func (d *nativeDocument) Pages() int { return d.pages }

func (d *nativeDocument) Page(i int) Page {
	return &nativePage{doc: d, num: i + 1}
}

func (d *nativeDocument) Close() error {
	return d.file.Close()
}

// nativePage resolves the underlying pdf.Page lazily so a broken page object
// is reported by Text or Tables rather than by Page.
type nativePage struct {
	doc *nativeDocument
	num int // 1-based, as the parser numbers pages

	laidOut bool
	layout  []textLine
}

func (p *nativePage) load() (pdf.Page, bool, error) {
	var page pdf.Page
	err := guard(func() error {
		page = p.doc.reader.Page(p.num)
		return nil
	})
	if err != nil {
		return pdf.Page{}, false, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	if page.V.IsNull() {
		return pdf.Page{}, false, nil
	}
	return page, true, nil
}

// lines lays out the positioned glyphs of the page. Positions come from
// the full text matrix, so Td, TD, Tm and T* moves all separate lines.
func (p *nativePage) lines() ([]textLine, error) {
	if p.laidOut {
		return p.layout, nil
	}
	page, ok, err := p.load()
	if err != nil {
		return nil, err
	}
	if !ok {
		p.laidOut = true
		return nil, nil
	}

	var content pdf.Content
	err = guard(func() error {
		content = page.Content()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	p.layout, p.laidOut = layoutLines(content.Text), true
	return p.layout, nil
}

// Text returns the page lines top to bottom, joined with "\n".
func (p *nativePage) Text() (string, error) {
	lines, err := p.lines()
	if err != nil {
		return "", err
	}
	texts := make([]string, 0, len(lines))
	for _, l := range lines {
		if t := l.text(); t != "" {
			texts = append(texts, t)
		}
	}
	return strings.Join(texts, "\n"), nil
}

func (p *nativePage) Tables() ([]types.Table, error) {
	lines, err := p.lines()
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, l.runs)
	}
	return detectTables(rows), nil
}

// guard runs fn and converts a panic inside it into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()
	return fn()
}
