// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the procurement-parser
// pipeline: the extracted document, the parse result and stage configuration.
package types

// TableRow is one row of an extracted table. A nil cell marks a position the
// PDF layout left empty.
type TableRow []*string

// Table is a grid of cells in page order, top row first.
type Table []TableRow

// Cell returns a pointer to s, for building rows in code and tests.
func Cell(s string) *string {
	return &s
}

// ExtractedDocument is the raw material the extractors work on. It is built
// once per read and never modified afterwards.
type ExtractedDocument struct {
	// Text is the concatenation of all non-empty page texts, newline-joined,
	// in physical page order.
	Text string `json:"text" yaml:"text"`

	// Tables holds every table found on every page, flattened in page order.
	Tables []Table `json:"tables" yaml:"tables"`

	// Pages is the number of pages the reader visited.
	Pages int `json:"pages" yaml:"pages"`
}
