// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the full parse of one procurement PDF: read the
// document, extract amounts, method and dates, and assemble a ParseResult.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/procurement-parser/internal/extract"
	"github.com/pdiddy/procurement-parser/internal/reader"
	"github.com/pdiddy/procurement-parser/pkg/types"
)

const (
	// snippetLimit is the number of characters kept in RawTextSnippet.
	snippetLimit = 500
	// snippetEllipsis marks a truncated snippet.
	snippetEllipsis = "..."
)

// Pipeline parses procurement documents. It holds no per-document state, so
// one Pipeline may parse any number of documents.
type Pipeline struct {
	opener reader.Opener
	log    *slog.Logger
}

// New returns a Pipeline that reads documents through opener. A nil logger
// falls back to slog.Default().
func New(opener reader.Opener, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{opener: opener, log: log}
}

// Read returns the extracted text and tables of the document at path.
func (p *Pipeline) Read(ctx context.Context, path string) (types.ExtractedDocument, error) {
	return reader.Read(ctx, p.opener, path)
}

// Parse reads the document at path and extracts its procurement facts. A
// read failure is returned as is and no result is produced.
func (p *Pipeline) Parse(ctx context.Context, path string) (*types.ParseResult, error) {
	result, _, err := p.ParseDocument(ctx, path)
	return result, err
}

// ParseDocument is Parse that also returns the extracted document, for
// callers that report on its pages or tables.
func (p *Pipeline) ParseDocument(ctx context.Context, path string) (*types.ParseResult, types.ExtractedDocument, error) {
	start := time.Now()
	log := p.log.With("file", path)

	doc, err := p.Read(ctx, path)
	if err != nil {
		log.Debug("read failed", "error", err)
		return nil, types.ExtractedDocument{}, err
	}
	log.Debug("document read", "pages", doc.Pages, "chars", len([]rune(doc.Text)), "tables", len(doc.Tables))

	result := Assemble(path, doc.Text)

	log.Info("document parsed",
		"method", result.ProcurementMethod,
		"amounts", len(result.NMCList),
		"dates", len(result.Dates.NoticePlacement),
		"elapsed", time.Since(start))
	return result, doc, nil
}

// Assemble runs the extractors over text and builds the result for
// sourceFile. The extractors share only the immutable text, so they run
// concurrently.
func Assemble(sourceFile, text string) *types.ParseResult {
	result := &types.ParseResult{
		SourceFile:     sourceFile,
		RawTextSnippet: Snippet(text),
	}

	var g errgroup.Group
	g.Go(func() error {
		result.NMCList = extract.ParseAmounts(text)
		return nil
	})
	g.Go(func() error {
		result.ProcurementMethod = extract.ClassifyMethod(text)
		return nil
	})
	g.Go(func() error {
		result.Dates = extract.ParseDates(text)
		return nil
	})
	// The extractors cannot fail.
	_ = g.Wait()

	return result
}

// Snippet returns the first 500 characters of text followed by "..." when
// text is longer, or text unchanged otherwise.
func Snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= snippetLimit {
		return text
	}
	return string(runes[:snippetLimit]) + snippetEllipsis
}
