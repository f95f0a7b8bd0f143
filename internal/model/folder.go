package model

// Folder is a top-level container of bookmarks. Folders do not nest.
type Folder struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Icon  string `json:"icon,omitempty"`

	// DefaultOpen is nil for records written before the flag existed.
	DefaultOpen *bool `json:"defaultOpen,omitempty"`

	// Expanded is the accordion state for the current session.
	Expanded bool `json:"expanded"`

	Children []Bookmark `json:"children"`
}

// NewFolderParams holds parameters for creating a new Folder.
type NewFolderParams struct {
	Title       string
	Icon        string
	DefaultOpen bool
}

// NewFolder creates an empty Folder with a generated ID.
// A new folder starts expanded when it is configured to open by default.
func NewFolder(params NewFolderParams) Folder {
	return Folder{
		ID:          NewID(),
		Title:       params.Title,
		Icon:        params.Icon,
		DefaultOpen: Bool(params.DefaultOpen),
		Expanded:    params.DefaultOpen,
		Children:    []Bookmark{},
	}
}

// IsDefaultOpen reports the defaultOpen flag, treating a missing flag as false.
func (f Folder) IsDefaultOpen() bool {
	return f.DefaultOpen != nil && *f.DefaultOpen
}

// Bookmark finds a child bookmark by ID, returns nil if not found.
func (f *Folder) Bookmark(id string) *Bookmark {
	for i := range f.Children {
		if f.Children[i].ID == id {
			return &f.Children[i]
		}
	}
	return nil
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}
