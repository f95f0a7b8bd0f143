package store

import (
	"context"
	"fmt"

	"github.com/nikbrunner/bmdeck/internal/model"
)

// CreateFolder appends a new empty folder and returns its ID.
func (s *Store) CreateFolder(ctx context.Context, title, icon string, defaultOpen bool) (string, error) {
	var id string
	err := s.mutate(ctx, OpCreateFolder, func() bool {
		id = s.newID()
		s.folders = append(s.folders, model.Folder{
			ID:          id,
			Title:       title,
			Icon:        icon,
			DefaultOpen: model.Bool(defaultOpen),
			Expanded:    defaultOpen,
			Children:    []model.Bookmark{},
		})
		return true
	})
	return id, err
}

// UpdateFolder changes a folder's title, icon and defaultOpen flag.
// Unknown IDs are ignored.
func (s *Store) UpdateFolder(ctx context.Context, id, title, icon string, defaultOpen bool) error {
	return s.mutate(ctx, OpUpdateFolder, func() bool {
		f := s.folders.Folder(id)
		if f == nil {
			return false
		}
		f.Title = title
		f.Icon = icon
		f.DefaultOpen = model.Bool(defaultOpen)
		return true
	})
}

// DeleteFolder removes a folder together with all of its bookmarks.
// Unknown IDs are ignored.
func (s *Store) DeleteFolder(ctx context.Context, id string) error {
	return s.mutate(ctx, OpDeleteFolder, func() bool {
		i := s.folders.FolderIndex(id)
		if i < 0 {
			return false
		}
		s.folders = append(s.folders[:i:i], s.folders[i+1:]...)
		return true
	})
}

// CreateBookmark appends a bookmark to the parent folder and returns its ID.
// An unknown parent is ignored and yields an empty ID.
func (s *Store) CreateBookmark(ctx context.Context, parentID, title, url string) (string, error) {
	var id string
	err := s.mutate(ctx, OpCreateBookmark, func() bool {
		f := s.folders.Folder(parentID)
		if f == nil {
			return false
		}
		id = s.newID()
		f.Children = append(f.Children, model.Bookmark{ID: id, Title: title, URL: url})
		return true
	})
	return id, err
}

// UpdateBookmark changes a bookmark's title and URL.
// Unknown parents or IDs are ignored.
func (s *Store) UpdateBookmark(ctx context.Context, parentID, id, title, url string) error {
	return s.mutate(ctx, OpUpdateBookmark, func() bool {
		f := s.folders.Folder(parentID)
		if f == nil {
			return false
		}
		b := f.Bookmark(id)
		if b == nil {
			return false
		}
		b.Title = title
		b.URL = url
		return true
	})
}

// DeleteBookmark removes one bookmark; siblings keep their relative order.
// Unknown parents or IDs are ignored.
func (s *Store) DeleteBookmark(ctx context.Context, parentID, id string) error {
	return s.mutate(ctx, OpDeleteBookmark, func() bool {
		f := s.folders.Folder(parentID)
		if f == nil {
			return false
		}
		kept := make([]model.Bookmark, 0, len(f.Children))
		for _, b := range f.Children {
			if b.ID != id {
				kept = append(kept, b)
			}
		}
		if len(kept) == len(f.Children) {
			return false
		}
		f.Children = kept
		return true
	})
}

// MoveFolder removes the folder at from and reinserts it at to.
// Equal indices are a no-op and do not persist.
func (s *Store) MoveFolder(ctx context.Context, from, to int) error {
	var rangeErr error
	err := s.mutate(ctx, OpMoveFolder, func() bool {
		n := len(s.folders)
		if from < 0 || from >= n || to < 0 || to >= n {
			rangeErr = fmt.Errorf("%w: move %d -> %d with %d folders", ErrIndexOutOfRange, from, to, n)
			return false
		}
		if from == to {
			return false
		}
		moved := s.folders[from]
		rest := append(s.folders[:from:from], s.folders[from+1:]...)
		out := make(model.Hierarchy, 0, n)
		out = append(out, rest[:to]...)
		out = append(out, moved)
		out = append(out, rest[to:]...)
		s.folders = out
		return true
	})
	if rangeErr != nil {
		return rangeErr
	}
	return err
}

// ReplaceAll swaps in a whole new hierarchy and persists it. Used by import.
// A nil hierarchy is rejected and leaves the current one untouched.
func (s *Store) ReplaceAll(ctx context.Context, h model.Hierarchy) error {
	if h == nil {
		return ErrNotSequence
	}
	next := h.Clone()
	return s.mutate(ctx, OpReplaceAll, func() bool {
		s.folders = next
		return true
	})
}

// AppendFolders adds folders after the existing ones. IDs that collide with
// existing entries are replaced with fresh ones.
func (s *Store) AppendFolders(ctx context.Context, folders model.Hierarchy) error {
	if folders == nil {
		return ErrNotSequence
	}
	incoming := folders.Clone()
	return s.mutate(ctx, OpAppendFolders, func() bool {
		if len(incoming) == 0 {
			return false
		}
		for i := range incoming {
			f := &incoming[i]
			if f.ID == "" || s.folders.HasID(f.ID) {
				f.ID = s.newID()
			}
			for j := range f.Children {
				b := &f.Children[j]
				if b.ID == "" || s.folders.HasID(b.ID) {
					b.ID = s.newID()
				}
			}
			s.folders = append(s.folders, *f)
		}
		return true
	})
}

// SetExpanded changes the accordion state of a folder. The state is
// session-only, so subscribers are notified without a persistence write.
func (s *Store) SetExpanded(id string, expanded bool) {
	s.mu.Lock()
	f := s.folders.Folder(id)
	if f == nil || f.Expanded == expanded {
		s.mu.Unlock()
		return
	}
	f.Expanded = expanded
	change := s.bumpLocked(OpToggleExpanded)
	s.mu.Unlock()

	s.notify(change)
}
