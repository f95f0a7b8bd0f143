package codec

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/bmdeck/internal/model"
)

// ReadFile loads a hierarchy from a JSON backup or, by extension, a
// Netscape HTML bookmark file.
func ReadFile(path string) (model.Hierarchy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		h, err := ParseHTML(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return h, nil
	default:
		return UnmarshalJSON(data)
	}
}

// WriteJSONBackup writes the dated JSON backup into dir and returns its path.
func WriteJSONBackup(dir string, h model.Hierarchy, now time.Time) (string, error) {
	data, err := MarshalJSON(h)
	if err != nil {
		return "", err
	}
	return writeInto(dir, JSONBackupName(now), data)
}

// WriteHTMLExport writes the dated Netscape export into dir and returns its
// path.
func WriteHTMLExport(dir string, h model.Hierarchy, opts HTMLOptions) (string, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	return writeInto(dir, HTMLExportName(opts.Now), []byte(ExportHTML(h, opts)))
}

func writeInto(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
