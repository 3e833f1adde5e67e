package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/nfrund/writerfolio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteYAML_UsesJSONNames(t *testing.T) {
	var buf bytes.Buffer
	err := WriteYAML(&buf, []domain.Service{{ID: "s1", Title: "Editing", Price: "75"}})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "_id: s1")
	assert.Contains(t, out, "title: Editing")
	assert.Contains(t, out, `price: "75"`)
}

func TestExport_OneSheetPerCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.xlsx")
	err := Export(path, Content{
		Services:     []domain.Service{{ID: "s1", Title: "Copywriting", Price: "150"}},
		Projects:     []domain.Project{{ID: "p1", Title: "Launch", Client: "Acme"}, {ID: "p2", Title: "Blog"}},
		Testimonials: nil,
	})
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetServices, SheetPortfolio, SheetTestimonials}, f.GetSheetList())

	rows, err := f.GetRows(SheetPortfolio)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Title", rows[0][1])
	assert.Equal(t, "Acme", rows[1][2])

	rows, err = f.GetRows(SheetTestimonials)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}

func TestExpandGlobs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "nested/b.jpg", "nested/deeper/c.png", "notes.txt"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}

	files, err := ExpandGlobs([]string{filepath.Join(dir, "**", "*.png"), filepath.Join(dir, "a.png")})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.png"),
		filepath.Join(dir, "nested", "deeper", "c.png"),
	}, files)

	_, err = ExpandGlobs([]string{filepath.Join(dir, "*.gif")})
	assert.Error(t, err)
}
