package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/nikbrunner/bmdeck/internal/codec"
	"github.com/nikbrunner/bmdeck/internal/model"
	"github.com/nikbrunner/bmdeck/internal/storage"
)

// Load reads the durable copy. A missing, unreadable or undecodable copy is
// replaced by the seed folders, which are persisted right away so a durable
// copy always exists afterwards.
func (s *Store) Load(ctx context.Context) error {
	data, ok, err := s.kv.Get(ctx, storage.HierarchyKey)
	if err != nil {
		s.logger.Warn("read hierarchy failed, seeding", zap.Error(err))
		ok = false
	}

	var folders model.Hierarchy
	if ok {
		folders, err = codec.UnmarshalJSON(data)
		if err != nil {
			s.logger.Warn("decode hierarchy failed, seeding", zap.Error(err))
			ok = false
		}
	}

	s.mu.Lock()
	persist := false
	if ok {
		persist = migrate(folders)
		if persist {
			s.logger.Info("migrated legacy folders to defaultOpen")
		}
	} else {
		folders = seed(s.newID)
		migrate(folders)
		persist = true
		s.logger.Info("installed seed folders")
	}
	s.folders = folders

	if persist {
		err = s.persistLocked(ctx)
	} else {
		err = nil
	}
	change := s.bumpLocked(OpLoad)
	s.mu.Unlock()

	s.notify(change)
	return err
}

// migrate initializes Expanded from DefaultOpen. Folders written before the
// flag existed open by default and get the flag set. Reports whether any
// folder was upgraded.
func migrate(folders model.Hierarchy) bool {
	upgraded := false
	for i := range folders {
		f := &folders[i]
		if f.DefaultOpen != nil {
			f.Expanded = *f.DefaultOpen
			continue
		}
		f.DefaultOpen = model.Bool(true)
		f.Expanded = true
		upgraded = true
	}
	return upgraded
}

// seed returns the first-run folders.
func seed(newID model.IDFunc) model.Hierarchy {
	return model.Hierarchy{
		{
			ID:    newID(),
			Title: "Work Resources",
			Children: []model.Bookmark{
				{ID: newID(), Title: "GitHub", URL: "https://github.com"},
				{ID: newID(), Title: "Slack", URL: "https://slack.com"},
			},
		},
		{
			ID:    newID(),
			Title: "News",
			Children: []model.Bookmark{
				{ID: newID(), Title: "Hacker News", URL: "https://news.ycombinator.com"},
			},
		},
	}
}
