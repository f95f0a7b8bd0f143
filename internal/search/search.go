// Package search finds bookmarks by fuzzy title match.
package search

import (
	"github.com/sahilm/fuzzy"

	"github.com/nikbrunner/bmdeck/internal/model"
)

// Entry is a bookmark together with the folder that holds it.
type Entry struct {
	FolderID    string
	FolderTitle string
	Bookmark    model.Bookmark
}

// Result is one fuzzy match.
type Result struct {
	Entry
	MatchedIndexes []int
	Score          int
}

// entries implements fuzzy.Source over bookmark titles.
type entries []Entry

func (e entries) String(i int) string { return e[i].Bookmark.Title }

func (e entries) Len() int { return len(e) }

// Flatten lists every bookmark in hierarchy order.
func Flatten(h model.Hierarchy) []Entry {
	out := make([]Entry, 0, h.BookmarkCount())
	for _, f := range h {
		for _, b := range f.Children {
			out = append(out, Entry{FolderID: f.ID, FolderTitle: f.Title, Bookmark: b})
		}
	}
	return out
}

// Fuzzy searches all bookmarks by title.
// Returns results sorted by match score (best first).
func Fuzzy(h model.Hierarchy, query string) []Result {
	if query == "" {
		return nil
	}

	source := entries(Flatten(h))
	matches := fuzzy.FindFrom(query, source)

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Entry:          source[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}
