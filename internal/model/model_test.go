package model_test

import (
	"errors"
	"testing"

	"github.com/nikbrunner/bmdeck/internal/model"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func sampleHierarchy() model.Hierarchy {
	return model.Hierarchy{
		{
			ID:          "f1",
			Title:       "Development",
			DefaultOpen: model.Bool(true),
			Expanded:    true,
			Children: []model.Bookmark{
				{ID: "b1", Title: "GitHub", URL: "https://github.com"},
				{ID: "b2", Title: "Go", URL: "https://go.dev"},
			},
		},
		{ID: "f2", Title: "News", Children: []model.Bookmark{}},
	}
}

func TestNewID_ShortAndDistinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := model.NewID()
		if len(id) != 12 {
			t.Fatalf("expected 12 character id, got %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q after %d generations", id, i)
		}
		seen[id] = true
	}
}

func TestNewFolder_ExpandedFollowsDefaultOpen(t *testing.T) {
	open := model.NewFolder(model.NewFolderParams{Title: "Open", DefaultOpen: true})
	closed := model.NewFolder(model.NewFolderParams{Title: "Closed"})

	assert.Check(t, open.Expanded)
	assert.Check(t, open.IsDefaultOpen())
	assert.Check(t, !closed.Expanded)
	assert.Check(t, !closed.IsDefaultOpen())
	assert.Check(t, closed.DefaultOpen != nil, "new folders always carry the flag")
	assert.Check(t, is.Len(closed.Children, 0))
	assert.Check(t, closed.Children != nil)
}

func TestFolder_IsDefaultOpen_MissingFlag(t *testing.T) {
	f := model.Folder{ID: "legacy", Title: "Legacy"}
	assert.Check(t, !f.IsDefaultOpen())
}

func TestHierarchy_CloneIsDeep(t *testing.T) {
	h := sampleHierarchy()
	c := h.Clone()
	assert.DeepEqual(t, h, c)

	c[0].Children[0].Title = "Changed"
	*c[0].DefaultOpen = false
	c[1].Title = "Changed"

	assert.Equal(t, h[0].Children[0].Title, "GitHub")
	assert.Check(t, *h[0].DefaultOpen)
	assert.Equal(t, h[1].Title, "News")
}

func TestHierarchy_CloneNil(t *testing.T) {
	var h model.Hierarchy
	assert.Check(t, h.Clone() == nil)
}

func TestHierarchy_Lookups(t *testing.T) {
	h := sampleHierarchy()

	assert.Equal(t, h.FolderIndex("f2"), 1)
	assert.Equal(t, h.FolderIndex("missing"), -1)
	assert.Check(t, h.Folder("missing") == nil)
	assert.Equal(t, h.Folder("f1").Title, "Development")
	assert.Equal(t, h.Folder("f1").Bookmark("b2").URL, "https://go.dev")
	assert.Check(t, h.Folder("f1").Bookmark("nope") == nil)
	assert.Equal(t, h.BookmarkCount(), 2)
	assert.Check(t, h.HasID("b1"))
	assert.Check(t, h.HasID("f2"))
	assert.Check(t, !h.HasID("zz"))
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"example.com", "https://example.com"},
		{"  example.com/path ", "https://example.com/path"},
		{"http://example.com", "http://example.com"},
		{"https://example.com", "https://example.com"},
		{"ftp://example.com", "https://ftp://example.com"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, model.NormalizeURL(tt.in), tt.want)
		})
	}
}

func TestBookmarkInput_Validate(t *testing.T) {
	valid := model.BookmarkInput{Title: " Docs ", URL: "go.dev"}.Normalize()
	assert.NilError(t, valid.Validate())
	assert.Equal(t, valid.Title, "Docs")
	assert.Equal(t, valid.URL, "https://go.dev")

	err := model.BookmarkInput{Title: "  ", URL: ""}.Normalize().Validate()
	var verr *model.ValidationError
	assert.Assert(t, errors.As(err, &verr))
	assert.DeepEqual(t, verr.Problems, []string{"title is required", "url is required"})
}

func TestFolderInput_Validate(t *testing.T) {
	assert.NilError(t, model.FolderInput{Title: "Work"}.Normalize().Validate())
	assert.NilError(t, model.FolderInput{Title: "Work", Icon: "https://example.com/i.png"}.Validate())

	err := model.FolderInput{Title: ""}.Validate()
	assert.ErrorContains(t, err, "title is required")

	err = model.FolderInput{Title: "Work", Icon: "not a url"}.Validate()
	assert.ErrorContains(t, err, "icon must be a valid URL")
}
