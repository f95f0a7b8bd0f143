package model

// Hierarchy is the ordered sequence of folders. Its order is the display order.
type Hierarchy []Folder

// Clone returns a deep copy so callers can never alias the owner's slices.
func (h Hierarchy) Clone() Hierarchy {
	if h == nil {
		return nil
	}
	out := make(Hierarchy, len(h))
	for i, f := range h {
		out[i] = f
		if f.DefaultOpen != nil {
			out[i].DefaultOpen = Bool(*f.DefaultOpen)
		}
		if f.Children != nil {
			out[i].Children = make([]Bookmark, len(f.Children))
			copy(out[i].Children, f.Children)
		}
	}
	return out
}

// FolderIndex returns the position of the folder with the given ID, or -1.
func (h Hierarchy) FolderIndex(id string) int {
	for i := range h {
		if h[i].ID == id {
			return i
		}
	}
	return -1
}

// Folder finds a folder by ID, returns nil if not found.
func (h Hierarchy) Folder(id string) *Folder {
	if i := h.FolderIndex(id); i >= 0 {
		return &h[i]
	}
	return nil
}

// BookmarkCount returns the total number of bookmarks across all folders.
func (h Hierarchy) BookmarkCount() int {
	n := 0
	for _, f := range h {
		n += len(f.Children)
	}
	return n
}

// HasID reports whether any folder or bookmark already uses id.
func (h Hierarchy) HasID(id string) bool {
	for _, f := range h {
		if f.ID == id {
			return true
		}
		for _, b := range f.Children {
			if b.ID == id {
				return true
			}
		}
	}
	return false
}
