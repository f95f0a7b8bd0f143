package model

// Bookmark represents a titled link inside a folder.
type Bookmark struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// NewBookmarkParams holds parameters for creating a new Bookmark.
type NewBookmarkParams struct {
	Title string
	URL   string
}

// NewBookmark creates a Bookmark with a generated ID.
// The URL is stored as given; callers normalize it at the edit boundary.
func NewBookmark(params NewBookmarkParams) Bookmark {
	return Bookmark{
		ID:    NewID(),
		Title: params.Title,
		URL:   params.URL,
	}
}
