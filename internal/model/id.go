package model

import (
	"strings"

	"github.com/google/uuid"
)

// idLength is long enough to make collisions within one hierarchy negligible.
const idLength = 12

// IDFunc generates identifiers for new folders and bookmarks.
type IDFunc func() string

// NewID returns a short opaque identifier.
func NewID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:idLength]
}
