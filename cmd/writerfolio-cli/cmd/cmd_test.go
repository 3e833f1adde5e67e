package cmd

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/nfrund/writerfolio/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "writerfolio-cli v"+version)
}

func TestList(t *testing.T) {
	backend := testutils.NewFakeBackend(t)
	backend.Seed("services", map[string]any{"title": "Copywriting", "description": "Words", "price": "150"})
	backend.SetSettings(map[string]any{"businessName": "Ink & Co"})

	out, err := execute(t, "--api", backend.URL(), "list", "services")
	require.NoError(t, err)
	assert.Contains(t, out, "title: Copywriting")

	out, err = execute(t, "--api", backend.URL(), "list", "settings")
	require.NoError(t, err)
	assert.Contains(t, out, "businessName: Ink & Co")

	_, err = execute(t, "--api", backend.URL(), "list", "widgets")
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	backend := testutils.NewFakeBackend(t)
	backend.Seed("projects", map[string]any{"title": "Launch", "client": "Acme"})
	path := filepath.Join(t.TempDir(), "out.xlsx")

	out, err := execute(t, "--api", backend.URL(), "export", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1 portfolio items")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Portfolio")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestUpload(t *testing.T) {
	backend := testutils.NewFakeBackend(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.png"), []byte("1"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "two.png"), []byte("2"), 0o644))

	out, err := execute(t, "--api", backend.URL(), "--token", testutils.AdminToken, "upload", filepath.Join(dir, "*.png"))
	require.NoError(t, err)
	assert.Contains(t, out, "one.png -> "+backend.Server.URL+"/uploads/")
	assert.Len(t, backend.Calls(http.MethodPost, "/uploads/single"), 2)

	_, err = execute(t, "--api", backend.URL(), "--token", "stale", "upload", filepath.Join(dir, "one.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session has expired")
}
