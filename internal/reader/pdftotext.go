// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/pdiddy/procurement-parser/internal/container"
	"github.com/pdiddy/procurement-parser/pkg/types"
)

const defaultPdftotext = "pdftotext"

// pdftotextFlags keep the physical layout, force UTF-8 and unix line ends.
// pdftotext separates pages with a form feed.
var pdftotextFlags = []string{"-layout", "-enc", "UTF-8", "-eol", "unix"}

// commandRunner runs pdftotext with the given input and output arguments.
// When the input argument is "-" the document is read from stdin.
type commandRunner interface {
	Run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error
	// readsStdin reports whether the runner needs the PDF piped on stdin
	// because it cannot see the host filesystem.
	readsStdin() bool
}

// hostRunner runs a pdftotext binary installed on the host.
type hostRunner struct {
	bin string
}

func (h hostRunner) Run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	cmd := exec.CommandContext(ctx, h.bin, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", h.bin, err, msg)
		}
		return fmt.Errorf("%s: %w", h.bin, err)
	}
	return nil
}

func (h hostRunner) readsStdin() bool { return false }

// containerRunner runs pdftotext inside a container image.
type containerRunner struct {
	runtime container.Runtime
	image   string
}

func (c containerRunner) Run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	full := append([]string{defaultPdftotext}, args...)
	return c.runtime.Run(ctx, c.image, full, stdin, stdout)
}

func (c containerRunner) readsStdin() bool { return true }

// PdftotextOpener extracts text with poppler's pdftotext. The whole document
// is converted on Open; pages are split on form feeds. This backend finds no
// tables.
type PdftotextOpener struct {
	runner commandRunner
}

// NewPdftotextOpener returns an opener that runs pdftotext through runner.
func NewPdftotextOpener(runner commandRunner) *PdftotextOpener {
	return &PdftotextOpener{runner: runner}
}

// Open converts the PDF at path to text. A missing or unreadable file is
// reported as ErrOpen; a pdftotext failure as ErrFormat.
func (o *PdftotextOpener) Open(ctx context.Context, path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w: %w", path, ErrOpen, err)
	}
	defer f.Close()

	args := make([]string, 0, len(pdftotextFlags)+2)
	args = append(args, pdftotextFlags...)

	var stdin io.Reader
	if o.runner.readsStdin() {
		args = append(args, "-", "-")
		stdin = f
	} else {
		args = append(args, path, "-")
	}

	var out bytes.Buffer
	if err := o.runner.Run(ctx, args, stdin, &out); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("converting %s with pdftotext: %w: %w", path, ErrFormat, err)
	}

	return &textDocument{pages: splitPages(out.String())}, nil
}

// splitPages splits pdftotext output on form feeds. pdftotext terminates
// every page, including the last, with a form feed, so a trailing empty
// segment is dropped.
func splitPages(out string) []string {
	if out == "" {
		return nil
	}
	pages := strings.Split(out, "\f")
	if pages[len(pages)-1] == "" {
		pages = pages[:len(pages)-1]
	}
	return pages
}

// textDocument is an in-memory document of already extracted page texts.
type textDocument struct {
	pages []string
}

func (d *textDocument) Pages() int { return len(d.pages) }

func (d *textDocument) Page(i int) Page { return textPage(d.pages[i]) }

func (d *textDocument) Close() error { return nil }

type textPage string

func (p textPage) Text() (string, error) {
	// Layout mode pads blank pages with newlines; treat those as no text.
	if strings.TrimSpace(string(p)) == "" {
		return "", nil
	}
	return string(p), nil
}

func (p textPage) Tables() ([]types.Table, error) { return nil, nil }
