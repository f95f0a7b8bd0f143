package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Keys used by bmdeck.
const (
	HierarchyKey = "bookmarks_data"
	ThemeKey     = "theme_preference"
)

// KV is a durable key-value store addressed by fixed string keys.
type KV interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// ErrCorrupt means the storage file exists but does not hold a JSON object.
var ErrCorrupt = errors.New("storage file is corrupt")

// FileKV implements KV as a single JSON object file.
type FileKV struct {
	path string
	mu   sync.Mutex
}

// NewFileKV creates a FileKV backed by the file at path.
func NewFileKV(path string) *FileKV {
	return &FileKV{path: path}
}

// Path returns the storage file path.
func (s *FileKV) Path() string {
	return s.path
}

// Get reads one key from the file.
// A missing file is the same as a missing key.
func (s *FileKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return nil, false, err
	}
	value, ok := entries[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(value), true, nil
}

// Set writes one key, keeping the others.
// Creates the directory if it doesn't exist. A corrupt file is moved to
// path+".corrupt" and replaced by a fresh one holding only this key.
func (s *FileKV) Set(ctx context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("set %q: value is not valid JSON", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if errors.Is(err, ErrCorrupt) {
		if err := os.Rename(s.path, s.path+".corrupt"); err != nil {
			return err
		}
		entries = map[string]json.RawMessage{}
	} else if err != nil {
		return err
	}
	entries[key] = json.RawMessage(value)

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	// Write to a sibling temp file so a crash never leaves a torn file behind.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileKV) read() (map[string]json.RawMessage, error) {
	entries := map[string]json.RawMessage{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return entries, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("read %s: %w: %v", s.path, ErrCorrupt, err)
	}
	return entries, nil
}

// MemoryKV implements KV in memory. Useful for tests and dry runs.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string][]byte
	writes int
}

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: map[string][]byte{}}
}

func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryKV) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	m.writes++
	return nil
}

// Writes returns how many Set calls succeeded.
func (m *MemoryKV) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Open opens the backend selected by cfg.
func Open(cfg Config) (KV, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Backend {
	case BackendSQLite:
		s, err := NewSQLiteKV(cfg.DataPath)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	case BackendJSON, "":
		return NewFileKV(cfg.DataPath), noop, nil
	case BackendMemory:
		return NewMemoryKV(), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
