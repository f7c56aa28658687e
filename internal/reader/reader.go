// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reader opens procurement PDFs and pulls out their page text and
// tables. Backends (native Go parser, poppler's pdftotext) implement the
// Opener interface; Read walks the pages and assembles an ExtractedDocument.
package reader

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/procurement-parser/internal/container"
	"github.com/pdiddy/procurement-parser/pkg/types"
)

var (
	// ErrOpen reports that the document file could not be opened at all
	// (missing file, permission denied).
	ErrOpen = errors.New("cannot open document")

	// ErrFormat reports that the file was opened but is not a readable PDF.
	ErrFormat = errors.New("unreadable PDF")

	// ErrUnknownBackend reports a reader backend name that is not supported.
	ErrUnknownBackend = errors.New("unknown reader backend")
)

// Opener opens a PDF-like document for page-by-page reading.
type Opener interface {
	// Open prepares the document at path. The caller must Close the result.
	Open(ctx context.Context, path string) (Document, error)
}

// Document is an open PDF. Pages are addressed by zero-based physical index.
type Document interface {
	// Pages returns the number of pages in the document.
	Pages() int

	// Page returns the page at index i, 0 <= i < Pages().
	Page(i int) Page

	// Close releases the underlying file.
	Close() error
}

// Page gives access to the content of a single page.
type Page interface {
	// Text returns the plain text of the page, or "" when the page has none.
	Text() (string, error)

	// Tables returns the tables found on the page, top to bottom.
	Tables() ([]types.Table, error)
}

// Read opens the document at path, visits every page in order and returns
// the concatenated page text and the flattened list of tables. The document
// is closed before Read returns, whatever the outcome. Any failure aborts the
// read; no partial document is returned.
func Read(ctx context.Context, opener Opener, path string) (types.ExtractedDocument, error) {
	doc, err := opener.Open(ctx, path)
	if err != nil {
		return types.ExtractedDocument{}, err
	}
	defer doc.Close()

	n := doc.Pages()
	var texts []string
	tables := []types.Table{}

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return types.ExtractedDocument{}, err
		}

		page := doc.Page(i)

		text, err := page.Text()
		if err != nil {
			return types.ExtractedDocument{}, fmt.Errorf("reading text of page %d of %s: %w", i+1, path, err)
		}
		if text != "" {
			texts = append(texts, text)
		}

		pageTables, err := page.Tables()
		if err != nil {
			return types.ExtractedDocument{}, fmt.Errorf("reading tables of page %d of %s: %w", i+1, path, err)
		}
		tables = append(tables, pageTables...)
	}

	return types.ExtractedDocument{
		Text:   strings.Join(texts, "\n"),
		Tables: tables,
		Pages:  n,
	}, nil
}

// NewOpener builds the Opener selected by cfg. For the pdftotext backend with
// a container image it detects docker or podman and checks that the image
// is present.
func NewOpener(ctx context.Context, cfg types.ReaderConfig) (Opener, error) {
	var opener Opener

	switch cfg.Backend {
	case types.BackendNative, "":
		opener = NativeOpener{}
	case types.BackendPdftotext:
		if cfg.ContainerImage != "" {
			rt, err := container.DetectRuntime(ctx)
			if err != nil {
				return nil, err
			}
			if err := rt.ImageExists(ctx, cfg.ContainerImage); err != nil {
				return nil, fmt.Errorf("pdftotext image not available in %s: %w", rt.Name(), err)
			}
			opener = NewPdftotextOpener(containerRunner{runtime: rt, image: cfg.ContainerImage})
		} else {
			bin := cfg.PdftotextPath
			if bin == "" {
				bin = defaultPdftotext
			}
			opener = NewPdftotextOpener(hostRunner{bin: bin})
		}
	default:
		return nil, fmt.Errorf("%w: %q (use %s or %s)", ErrUnknownBackend, cfg.Backend, types.BackendNative, types.BackendPdftotext)
	}

	if cfg.Validate {
		opener = validatingOpener{next: opener}
	}
	return opener, nil
}
