// Package store owns the bookmark hierarchy. Every mutation persists the full
// hierarchy and then notifies subscribers.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/nikbrunner/bmdeck/internal/codec"
	"github.com/nikbrunner/bmdeck/internal/model"
	"github.com/nikbrunner/bmdeck/internal/storage"
)

var (
	ErrIndexOutOfRange = errors.New("folder index out of range")
	// ErrNotSequence is returned when a replacement hierarchy is absent.
	ErrNotSequence = codec.ErrNotSequence
)

// Op names the operation that produced a Change.
type Op int

const (
	OpLoad Op = iota
	OpSave
	OpCreateFolder
	OpUpdateFolder
	OpDeleteFolder
	OpCreateBookmark
	OpUpdateBookmark
	OpDeleteBookmark
	OpMoveFolder
	OpReplaceAll
	OpAppendFolders
	OpToggleExpanded
)

var opNames = [...]string{
	"load", "save", "create-folder", "update-folder", "delete-folder",
	"create-bookmark", "update-bookmark", "delete-bookmark", "move-folder",
	"replace-all", "append-folders", "toggle-expanded",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// Change is delivered to subscribers after the hierarchy changed.
type Change struct {
	Op       Op
	Revision uint64
}

// Store owns the hierarchy for the lifetime of the process.
type Store struct {
	kv     storage.KV
	logger *zap.Logger
	newID  model.IDFunc

	mu        sync.Mutex
	folders   model.Hierarchy
	revision  uint64
	observers []*observer
}

type observer struct {
	fn func(Change)
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIDFunc replaces the identifier generator.
func WithIDFunc(fn model.IDFunc) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New creates a Store persisting to kv. Call Load before use.
func New(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:      kv,
		logger:  zap.NewNop(),
		newID:   model.NewID,
		folders: model.Hierarchy{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn for change notifications and returns a function
// that removes it.
func (s *Store) Subscribe(fn func(Change)) func() {
	o := &observer{fn: fn}
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, cur := range s.observers {
			if cur == o {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// Folders returns a deep copy of the hierarchy.
func (s *Store) Folders() model.Hierarchy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.folders.Clone()
}

// Folder returns a copy of the folder with the given ID.
func (s *Store) Folder(id string) (model.Folder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.folders.Folder(id)
	if f == nil {
		return model.Folder{}, false
	}
	return model.Hierarchy{*f}.Clone()[0], true
}

// Len returns the number of folders.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.folders)
}

// Revision increases with every change. Renderers compare it to decide
// whether to recompute.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Save writes the full hierarchy and notifies subscribers.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	err := s.persistLocked(ctx)
	change := s.bumpLocked(OpSave)
	s.mu.Unlock()

	s.notify(change)
	return err
}

// mutate runs fn under the lock. When fn reports a change the hierarchy is
// persisted and subscribers are notified after the lock is released.
func (s *Store) mutate(ctx context.Context, op Op, fn func() bool) error {
	s.mu.Lock()
	if !fn() {
		s.mu.Unlock()
		return nil
	}
	err := s.persistLocked(ctx)
	change := s.bumpLocked(op)
	s.mu.Unlock()

	s.notify(change)
	return err
}

func (s *Store) persistLocked(ctx context.Context) error {
	data, err := codec.MarshalJSON(s.folders)
	if err != nil {
		return fmt.Errorf("encode hierarchy: %w", err)
	}
	if err := s.kv.Set(ctx, storage.HierarchyKey, data); err != nil {
		s.logger.Error("persist hierarchy failed", zap.Error(err))
		return fmt.Errorf("persist hierarchy: %w", err)
	}
	s.logger.Debug("hierarchy persisted",
		zap.Int("folders", len(s.folders)),
		zap.Int("bookmarks", s.folders.BookmarkCount()),
	)
	return nil
}

func (s *Store) bumpLocked(op Op) Change {
	s.revision++
	return Change{Op: op, Revision: s.revision}
}

func (s *Store) notify(change Change) {
	s.mu.Lock()
	observers := append([]*observer(nil), s.observers...)
	s.mu.Unlock()

	for _, o := range observers {
		o.fn(change)
	}
}
