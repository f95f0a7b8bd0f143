package codec_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/bmdeck/internal/codec"
	"github.com/nikbrunner/bmdeck/internal/model"
)

func TestWriteAndReadBackup(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	now := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	h := model.Hierarchy{{
		ID:          "f1",
		Title:       "Dev",
		DefaultOpen: model.Bool(true),
		Expanded:    true,
		Children:    []model.Bookmark{{ID: "b1", Title: "Go", URL: "https://go.dev"}},
	}}

	path, err := codec.WriteJSONBackup(dir, h, now)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(filepath.Base(path), "bookmarks_backup_2024-03-09.json"))

	got, err := codec.ReadFile(path)
	assert.NilError(t, err)
	assert.DeepEqual(t, got, h)
}

func TestWriteHTMLExport_ReadBack(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	h := model.Hierarchy{{
		ID:       "f1",
		Title:    "Dev",
		Children: []model.Bookmark{{ID: "b1", Title: "Go", URL: "https://go.dev"}},
	}}

	path, err := codec.WriteHTMLExport(dir, h, codec.HTMLOptions{Now: now})
	assert.NilError(t, err)
	assert.Check(t, is.Equal(filepath.Base(path), "chrome_bookmarks_2024-03-09.html"))

	data, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(string(data), codec.ExportHTML(h, codec.HTMLOptions{Now: now})))

	got, err := codec.ReadFile(path)
	assert.NilError(t, err)
	assert.Assert(t, is.Len(got, 1))
	assert.Check(t, is.Equal(got[0].Title, "Dev"))
	assert.Check(t, is.Equal(got[0].Children[0].URL, "https://go.dev"))
}

func TestReadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := codec.ReadFile(filepath.Join(dir, "missing.json"))
	assert.Check(t, errors.Is(err, os.ErrNotExist))

	bad := filepath.Join(dir, "bad.json")
	assert.NilError(t, os.WriteFile(bad, []byte(`{"title":"x"}`), 0644))
	_, err = codec.ReadFile(bad)
	assert.Check(t, errors.Is(err, codec.ErrNotSequence))
}
