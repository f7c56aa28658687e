// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reader

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// Keep pdfcpu from creating its configuration directory under $HOME.
	model.ConfigPath = "disable"
}

// Info summarizes the structure of a PDF file.
type Info struct {
	Path    string `json:"path" yaml:"path"`
	Pages   int    `json:"pages" yaml:"pages"`
	Valid   bool   `json:"valid" yaml:"valid"`
	Problem string `json:"problem,omitempty" yaml:"problem,omitempty"`
}

// Validate checks the PDF structure at path with pdfcpu in relaxed mode,
// which tolerates the small format deviations common in office PDF exporters.
// A missing file is reported as ErrOpen, a structural problem as ErrFormat.
func Validate(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("opening %s: %w: %w", path, ErrOpen, err)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := guard(func() error { return api.ValidateFile(path, conf) }); err != nil {
		return fmt.Errorf("validating %s: %w: %w", path, ErrFormat, err)
	}
	return nil
}

// Inspect validates the PDF at path and counts its pages. A structural
// problem is reported in Info rather than as an error; only a file that
// cannot be opened fails.
func Inspect(path string) (Info, error) {
	info := Info{Path: path}

	if err := Validate(path); err != nil {
		if errors.Is(err, ErrOpen) {
			return Info{}, err
		}
		info.Problem = err.Error()
		return info, nil
	}
	info.Valid = true

	var pages int
	if err := guard(func() error {
		var perr error
		pages, perr = api.PageCountFile(path)
		return perr
	}); err != nil {
		info.Valid = false
		info.Problem = fmt.Sprintf("counting pages: %v", err)
		return info, nil
	}
	info.Pages = pages
	return info, nil
}

// validatingOpener runs Validate before handing the path to the next opener.
type validatingOpener struct {
	next Opener
}

func (v validatingOpener) Open(ctx context.Context, path string) (Document, error) {
	if err := Validate(path); err != nil {
		return nil, err
	}
	return v.next.Open(ctx, path)
}
