package search

import (
	"testing"

	"github.com/nikbrunner/bmdeck/internal/model"
)

func hierarchy() model.Hierarchy {
	return model.Hierarchy{
		{
			ID:    "f1",
			Title: "Code",
			Children: []model.Bookmark{
				{ID: "b1", Title: "GitHub", URL: "https://github.com"},
				{ID: "b2", Title: "GitLab", URL: "https://gitlab.com"},
			},
		},
		{
			ID:    "f2",
			Title: "Frontend",
			Children: []model.Bookmark{
				{ID: "b3", Title: "TanStack Router", URL: "https://tanstack.com/router"},
				{ID: "b4", Title: "React Router", URL: "https://reactrouter.com"},
				{ID: "b5", Title: "Gitea", URL: "https://gitea.io"},
			},
		},
		{ID: "f3", Title: "Empty", Children: []model.Bookmark{}},
	}
}

func TestFlatten(t *testing.T) {
	got := Flatten(hierarchy())

	if len(got) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(got))
	}
	wantIDs := []string{"b1", "b2", "b3", "b4", "b5"}
	for i, e := range got {
		if e.Bookmark.ID != wantIDs[i] {
			t.Errorf("entry %d: got %s, want %s", i, e.Bookmark.ID, wantIDs[i])
		}
	}
	if got[2].FolderID != "f2" || got[2].FolderTitle != "Frontend" {
		t.Errorf("entry 2 folder = %s/%s, want f2/Frontend", got[2].FolderID, got[2].FolderTitle)
	}
}

func TestFuzzy_EmptyQuery(t *testing.T) {
	if results := Fuzzy(hierarchy(), ""); len(results) != 0 {
		t.Errorf("expected 0 results for empty query, got %d", len(results))
	}
}

func TestFuzzy_ExactMatch(t *testing.T) {
	results := Fuzzy(hierarchy(), "GitHub")

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Bookmark.Title != "GitHub" {
		t.Errorf("expected GitHub, got %s", results[0].Bookmark.Title)
	}
	if results[0].FolderID != "f1" {
		t.Errorf("expected folder f1, got %s", results[0].FolderID)
	}
}

func TestFuzzy_FuzzyMatch(t *testing.T) {
	// "tanrou" should fuzzy match "TanStack Router"
	results := Fuzzy(hierarchy(), "tanrou")

	if len(results) < 1 {
		t.Fatalf("expected at least 1 result for 'tanrou', got %d", len(results))
	}
	if results[0].Bookmark.Title != "TanStack Router" {
		t.Errorf("expected TanStack Router as first result, got %s", results[0].Bookmark.Title)
	}
}

func TestFuzzy_MultipleMatches(t *testing.T) {
	results := Fuzzy(hierarchy(), "git")

	if len(results) != 3 {
		t.Fatalf("expected 3 results for 'git', got %d", len(results))
	}
	for _, r := range results {
		if len(r.MatchedIndexes) != 3 {
			t.Errorf("%s: expected 3 matched indexes, got %v", r.Bookmark.Title, r.MatchedIndexes)
		}
	}
}

func TestFuzzy_NoMatch(t *testing.T) {
	if results := Fuzzy(hierarchy(), "xyz123"); len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}
