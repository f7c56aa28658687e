// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output renders parse results, tables and document info as JSON,
// YAML or a plain-text summary.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/procurement-parser/pkg/types"
)

const defaultIndent = 2

var (
	// ErrUnknownFormat reports an output format name that is not supported.
	ErrUnknownFormat = errors.New("unknown output format")

	// ErrNoTextForm reports a value that has no plain-text rendering.
	ErrNoTextForm = errors.New("no text rendering")
)

// TextWriter is implemented by values that have a plain-text rendering.
type TextWriter interface {
	WriteText(w io.Writer) error
}

// Encoder writes values in one output format.
type Encoder struct {
	format types.OutputFormat
	indent int
}

// NewEncoder returns an Encoder for cfg. An empty format selects JSON and a
// negative indent is treated as zero.
func NewEncoder(cfg types.OutputConfig) (*Encoder, error) {
	format := types.OutputFormat(strings.ToLower(string(cfg.Format)))
	switch format {
	case "":
		format = types.OutputJSON
	case types.OutputJSON, types.OutputYAML, types.OutputText:
	default:
		return nil, fmt.Errorf("%w: %q (use %s, %s or %s)", ErrUnknownFormat, cfg.Format,
			types.OutputJSON, types.OutputYAML, types.OutputText)
	}
	return &Encoder{format: format, indent: max(cfg.Indent, 0)}, nil
}

// Format returns the format the encoder writes.
func (e *Encoder) Format() types.OutputFormat { return e.format }

// Encode writes v to w. JSON is UTF-8 with no HTML escaping and keeps struct
// field order. Text output requires v to implement TextWriter.
func (e *Encoder) Encode(w io.Writer, v any) error {
	switch e.format {
	case types.OutputYAML:
		return e.encodeYAML(w, v)
	case types.OutputText:
		tw, ok := v.(TextWriter)
		if !ok {
			return fmt.Errorf("%w for %T", ErrNoTextForm, v)
		}
		return tw.WriteText(w)
	default:
		return e.encodeJSON(w, v)
	}
}

func (e *Encoder) encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if e.indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", e.indent))
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func (e *Encoder) encodeYAML(w io.Writer, v any) error {
	indent := e.indent
	if indent < defaultIndent {
		indent = defaultIndent
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(indent)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}
