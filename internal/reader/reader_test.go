// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/procurement-parser/internal/reader/pdftest"
	"github.com/pdiddy/procurement-parser/pkg/types"
)

// --- fakes ---

type fakePage struct {
	text    string
	tables  []types.Table
	textErr error
}

func (p fakePage) Text() (string, error)         { return p.text, p.textErr }
func (p fakePage) Tables() ([]types.Table, error) { return p.tables, nil }

type fakeDocument struct {
	pages  []fakePage
	closed bool
}

func (d *fakeDocument) Pages() int      { return len(d.pages) }
func (d *fakeDocument) Page(i int) Page { return d.pages[i] }
func (d *fakeDocument) Close() error    { d.closed = true; return nil }

type fakeOpener struct {
	doc *fakeDocument
	err error
}

func (o fakeOpener) Open(context.Context, string) (Document, error) {
	if o.err != nil {
		return nil, o.err
	}
	return o.doc, nil
}

func table(rows ...[]string) types.Table {
	t := make(types.Table, len(rows))
	for i, r := range rows {
		t[i] = make(types.TableRow, len(r))
		for j, c := range r {
			t[i][j] = types.Cell(c)
		}
	}
	return t
}

// --- Read ---

func TestRead_JoinsPageTextInOrder(t *testing.T) {
	doc := &fakeDocument{pages: []fakePage{
		{text: "Извещение о закупке"},
		{text: ""},
		{text: "НМЦК 250 000 руб."},
	}}

	got, err := Read(context.Background(), fakeOpener{doc: doc}, "notice.pdf")

	require.NoError(t, err)
	assert.Equal(t, "Извещение о закупке\nНМЦК 250 000 руб.", got.Text)
	assert.Equal(t, 3, got.Pages)
	assert.True(t, doc.closed, "document should be closed")
}

func TestRead_FlattensTablesAcrossPages(t *testing.T) {
	t1 := table([]string{"Позиция", "Цена"}, []string{"Бумага", "100"})
	t2 := table([]string{"Этап", "Срок"}, []string{"1", "10.10.2025"})
	t3 := table([]string{"a", "b"}, []string{"c", "d"})
	doc := &fakeDocument{pages: []fakePage{
		{tables: []types.Table{t1, t2}},
		{},
		{tables: []types.Table{t3}},
	}}

	got, err := Read(context.Background(), fakeOpener{doc: doc}, "tables.pdf")

	require.NoError(t, err)
	require.Len(t, got.Tables, 3)
	assert.Equal(t, []types.Table{t1, t2, t3}, got.Tables)
}

func TestRead_EmptyDocument(t *testing.T) {
	doc := &fakeDocument{pages: []fakePage{{}, {}}}

	got, err := Read(context.Background(), fakeOpener{doc: doc}, "scan.pdf")

	require.NoError(t, err)
	assert.Equal(t, "", got.Text)
	assert.NotNil(t, got.Tables)
	assert.Empty(t, got.Tables)
}

func TestRead_OpenErrorPropagates(t *testing.T) {
	openErr := errors.New("boom")

	_, err := Read(context.Background(), fakeOpener{err: openErr}, "x.pdf")

	assert.ErrorIs(t, err, openErr)
}

func TestRead_PageErrorClosesDocument(t *testing.T) {
	doc := &fakeDocument{pages: []fakePage{
		{text: "ok"},
		{textErr: ErrFormat},
	}}

	got, err := Read(context.Background(), fakeOpener{doc: doc}, "broken.pdf")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFormat)
	assert.Contains(t, err.Error(), "page 2")
	assert.Equal(t, types.ExtractedDocument{}, got, "no partial result")
	assert.True(t, doc.closed, "document should be closed on failure")
}

func TestRead_CancelledContext(t *testing.T) {
	doc := &fakeDocument{pages: []fakePage{{text: "a"}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Read(ctx, fakeOpener{doc: doc}, "a.pdf")

	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, doc.closed)
}

// --- NewOpener ---

func TestNewOpener(t *testing.T) {
	tests := []struct {
		name    string
		cfg     types.ReaderConfig
		check   func(t *testing.T, o Opener)
		wantErr error
	}{
		{
			name: "default is native",
			cfg:  types.ReaderConfig{},
			check: func(t *testing.T, o Opener) {
				assert.IsType(t, NativeOpener{}, o)
			},
		},
		{
			name: "pdftotext host binary",
			cfg:  types.ReaderConfig{Backend: types.BackendPdftotext, PdftotextPath: "/opt/poppler/bin/pdftotext"},
			check: func(t *testing.T, o Opener) {
				p, ok := o.(*PdftotextOpener)
				require.True(t, ok)
				assert.Equal(t, hostRunner{bin: "/opt/poppler/bin/pdftotext"}, p.runner)
			},
		},
		{
			name: "pdftotext defaults to PATH lookup",
			cfg:  types.ReaderConfig{Backend: types.BackendPdftotext},
			check: func(t *testing.T, o Opener) {
				p, ok := o.(*PdftotextOpener)
				require.True(t, ok)
				assert.Equal(t, hostRunner{bin: "pdftotext"}, p.runner)
			},
		},
		{
			name: "validation wraps the backend",
			cfg:  types.ReaderConfig{Backend: types.BackendNative, Validate: true},
			check: func(t *testing.T, o Opener) {
				v, ok := o.(validatingOpener)
				require.True(t, ok)
				assert.IsType(t, NativeOpener{}, v.next)
			},
		},
		{
			name:    "unknown backend",
			cfg:     types.ReaderConfig{Backend: "tesseract"},
			wantErr: ErrUnknownBackend,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := NewOpener(context.Background(), tt.cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, o)
		})
	}
}

// --- native backend and validation on real files ---

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNativeOpener_MissingFile(t *testing.T) {
	_, err := NativeOpener{}.Open(context.Background(), filepath.Join(t.TempDir(), "absent.pdf"))

	assert.ErrorIs(t, err, ErrOpen)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNativeOpener_NotAPDF(t *testing.T) {
	path := writeTemp(t, "notice.pdf", "this is a plain text file, not a PDF")

	_, err := NativeOpener{}.Open(context.Background(), path)

	assert.ErrorIs(t, err, ErrFormat)
}

func TestNativeOpener_ReadsTextAndTables(t *testing.T) {
	path := pdftest.Write(t,
		pdftest.Lines("Published 05.04.2025", "2 lots"),
		pdftest.Grid([]string{"Col A", "Col B"}, []string{"1", "2"}),
		"",
	)

	doc, err := Read(context.Background(), NativeOpener{}, path)

	require.NoError(t, err)
	assert.Equal(t, 3, doc.Pages)
	assert.Equal(t, "Published 05.04.2025\n2 lots\nCol A Col B\n1 2", doc.Text)
	assert.Equal(t, []types.Table{table([]string{"Col A", "Col B"}, []string{"1", "2"})}, doc.Tables)
}

func TestNativeOpener_LinesMovedWithTdStaySeparate(t *testing.T) {
	path := pdftest.Write(t, pdftest.Lines("Total 1 200", "300 items", "Deadline 10.10.2025"))

	doc, err := Read(context.Background(), NativeOpener{}, path)

	require.NoError(t, err)
	assert.Equal(t, "Total 1 200\n300 items\nDeadline 10.10.2025", doc.Text)
	assert.Empty(t, doc.Tables)
}

func TestNativeOpener_PageOrder(t *testing.T) {
	path := pdftest.Write(t,
		pdftest.Lines("first"),
		pdftest.Lines("second"),
		pdftest.Lines("third"),
	)

	doc, err := Read(context.Background(), NativeOpener{}, path)

	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\nthird", doc.Text)
}

func TestValidate(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		err := Validate(filepath.Join(t.TempDir(), "absent.pdf"))
		assert.ErrorIs(t, err, ErrOpen)
	})
	t.Run("not a PDF", func(t *testing.T) {
		err := Validate(writeTemp(t, "junk.pdf", "junk"))
		assert.ErrorIs(t, err, ErrFormat)
	})
}

func TestInspect_ReportsProblemForJunk(t *testing.T) {
	path := writeTemp(t, "junk.pdf", "junk")

	info, err := Inspect(path)

	require.NoError(t, err)
	assert.Equal(t, path, info.Path)
	assert.False(t, info.Valid)
	assert.NotEmpty(t, info.Problem)
}

func TestValidatingOpener_StopsBeforeBackend(t *testing.T) {
	path := writeTemp(t, "junk.pdf", "junk")
	next := fakeOpener{doc: &fakeDocument{}}

	_, err := validatingOpener{next: next}.Open(context.Background(), path)

	assert.ErrorIs(t, err, ErrFormat)
}
