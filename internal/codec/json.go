package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nikbrunner/bmdeck/internal/model"
)

var (
	// ErrFormat is the parent of every import format error.
	ErrFormat = errors.New("invalid bookmark file")
	// ErrMalformed means the text is not parseable JSON.
	ErrMalformed = fmt.Errorf("%w: malformed JSON", ErrFormat)
	// ErrNotSequence means the top-level JSON value is not an array.
	ErrNotSequence = fmt.Errorf("%w: data must be an array", ErrFormat)
	// ErrNoBookmarks means an HTML file held no folders and no links.
	ErrNoBookmarks = fmt.Errorf("%w: no folders or bookmarks found", ErrFormat)
)

// MarshalJSON dumps the hierarchy as indented JSON. The output is lossless.
func MarshalJSON(h model.Hierarchy) ([]byte, error) {
	if h == nil {
		h = model.Hierarchy{}
	}
	return json.MarshalIndent(h, "", "  ")
}

// UnmarshalJSON parses a hierarchy. Fields are not validated; anything
// missing stays at its zero value.
func UnmarshalJSON(data []byte) (model.Hierarchy, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotSequence
	}

	h := model.Hierarchy{}
	if err := json.Unmarshal(trimmed, &h); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return h, nil
}
