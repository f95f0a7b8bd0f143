package store_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/bmdeck/internal/codec"
	"github.com/nikbrunner/bmdeck/internal/model"
	"github.com/nikbrunner/bmdeck/internal/storage"
	"github.com/nikbrunner/bmdeck/internal/store"
)

// seqIDs returns a deterministic ID generator: id1, id2, ...
func seqIDs() model.IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id%d", n)
	}
}

func newLoaded(t *testing.T, kv storage.KV) *store.Store {
	t.Helper()
	s := store.New(kv, store.WithIDFunc(seqIDs()))
	assert.NilError(t, s.Load(context.Background()))
	return s
}

func putHierarchy(t *testing.T, kv storage.KV, h model.Hierarchy) {
	t.Helper()
	data, err := codec.MarshalJSON(h)
	assert.NilError(t, err)
	assert.NilError(t, kv.Set(context.Background(), storage.HierarchyKey, data))
}

func storedHierarchy(t *testing.T, kv storage.KV) model.Hierarchy {
	t.Helper()
	data, ok, err := kv.Get(context.Background(), storage.HierarchyKey)
	assert.NilError(t, err)
	assert.Assert(t, ok, "hierarchy was never persisted")
	h, err := codec.UnmarshalJSON(data)
	assert.NilError(t, err)
	return h
}

func titles(h model.Hierarchy) []string {
	out := make([]string, len(h))
	for i, f := range h {
		out[i] = f.Title
	}
	return out
}

func fourFolders() model.Hierarchy {
	h := model.Hierarchy{}
	for _, title := range []string{"A", "B", "C", "D"} {
		h = append(h, model.Folder{
			ID:          "f" + title,
			Title:       title,
			DefaultOpen: model.Bool(true),
			Children:    []model.Bookmark{},
		})
	}
	return h
}

func TestLoad_SeedsWhenEmpty(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := newLoaded(t, kv)

	got := s.Folders()
	assert.DeepEqual(t, titles(got), []string{"Work Resources", "News"})
	assert.Check(t, is.Len(got[0].Children, 2))
	assert.Check(t, is.Equal(got[0].Children[0].URL, "https://github.com"))
	assert.Check(t, is.Equal(got[0].Children[1].URL, "https://slack.com"))
	assert.Check(t, is.Equal(got[1].Children[0].URL, "https://news.ycombinator.com"))

	// Seed folders are persisted immediately and open by default.
	assert.Check(t, is.Equal(kv.Writes(), 1))
	assert.DeepEqual(t, storedHierarchy(t, kv), got)
	for _, f := range got {
		assert.Check(t, f.IsDefaultOpen())
		assert.Check(t, f.Expanded)
	}
}

func TestLoad_SeedsOnCorruptData(t *testing.T) {
	kv := storage.NewMemoryKV()
	assert.NilError(t, kv.Set(context.Background(), storage.HierarchyKey, []byte(`{"not":"an array"}`)))

	s := newLoaded(t, kv)
	assert.DeepEqual(t, titles(s.Folders()), []string{"Work Resources", "News"})
}

func TestLoad_ReplacesCorruptDataFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	assert.NilError(t, os.WriteFile(path, []byte("garbage"), 0644))
	kv := storage.NewFileKV(path)

	s := newLoaded(t, kv)
	assert.DeepEqual(t, titles(storedHierarchy(t, kv)), []string{"Work Resources", "News"})

	_, err := s.CreateFolder(ctx, "Reading", "", true)
	assert.NilError(t, err)
	assert.DeepEqual(t, titles(storedHierarchy(t, kv)), []string{"Work Resources", "News", "Reading"})
}

func TestLoad_MigratesLegacyFolders(t *testing.T) {
	kv := storage.NewMemoryKV()
	putHierarchy(t, kv, model.Hierarchy{
		{ID: "f1", Title: "Legacy", Children: []model.Bookmark{}},
		{ID: "f2", Title: "Closed", DefaultOpen: model.Bool(false), Expanded: true, Children: []model.Bookmark{}},
	})
	writesBefore := kv.Writes()

	s := newLoaded(t, kv)
	got := s.Folders()

	assert.Check(t, got[0].IsDefaultOpen())
	assert.Check(t, got[0].Expanded)
	assert.Check(t, !got[1].IsDefaultOpen())
	assert.Check(t, !got[1].Expanded, "expanded must follow defaultOpen on load")
	assert.Check(t, is.Equal(kv.Writes(), writesBefore+1))
	assert.Check(t, storedHierarchy(t, kv)[0].IsDefaultOpen())
}

func TestLoad_MigrationIsIdempotent(t *testing.T) {
	kv := storage.NewMemoryKV()
	putHierarchy(t, kv, model.Hierarchy{{ID: "f1", Title: "Legacy", Children: []model.Bookmark{}}})

	first := newLoaded(t, kv).Folders()
	writes := kv.Writes()

	second := newLoaded(t, kv).Folders()
	assert.DeepEqual(t, first, second)
	assert.Check(t, is.Equal(kv.Writes(), writes), "second load must not write")
}

func TestLoad_NoWriteWhenNothingToMigrate(t *testing.T) {
	kv := storage.NewMemoryKV()
	putHierarchy(t, kv, fourFolders())

	newLoaded(t, kv)
	assert.Check(t, is.Equal(kv.Writes(), 1))
}

func TestCreateFolder(t *testing.T) {
	kv := storage.NewMemoryKV()
	putHierarchy(t, kv, model.Hierarchy{})
	s := newLoaded(t, kv)

	id, err := s.CreateFolder(context.Background(), "Tools", "https://example.com/icon.png", false)
	assert.NilError(t, err)
	assert.Check(t, id != "")

	f, ok := s.Folder(id)
	assert.Assert(t, ok)
	assert.Check(t, is.Equal(f.Title, "Tools"))
	assert.Check(t, is.Equal(f.Icon, "https://example.com/icon.png"))
	assert.Check(t, !f.IsDefaultOpen())
	assert.Check(t, !f.Expanded)
	assert.Check(t, is.Len(f.Children, 0))
	assert.DeepEqual(t, storedHierarchy(t, kv), s.Folders())
}

func TestUpdateFolder(t *testing.T) {
	kv := storage.NewMemoryKV()
	putHierarchy(t, kv, fourFolders())
	s := newLoaded(t, kv)
	ctx := context.Background()

	assert.NilError(t, s.UpdateFolder(ctx, "fB", "Bee", "", false))
	f, _ := s.Folder("fB")
	assert.Check(t, is.Equal(f.Title, "Bee"))
	assert.Check(t, !f.IsDefaultOpen())

	writes := kv.Writes()
	assert.NilError(t, s.UpdateFolder(ctx, "missing", "X", "", true))
	assert.Check(t, is.Equal(kv.Writes(), writes), "unknown folder must not persist")
}

func TestDeleteFolder_RemovesBookmarks(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := newLoaded(t, kv)
	ctx := context.Background()
	work := s.Folders()[0]

	assert.NilError(t, s.DeleteFolder(ctx, work.ID))

	got := s.Folders()
	assert.DeepEqual(t, titles(got), []string{"News"})
	for _, b := range work.Children {
		assert.Check(t, !got.HasID(b.ID))
	}
	assert.DeepEqual(t, storedHierarchy(t, kv), got)
}

func TestBookmarkLifecycle(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := newLoaded(t, kv)
	ctx := context.Background()
	news := s.Folders()[1]

	id, err := s.CreateBookmark(ctx, news.ID, "Lobsters", "https://lobste.rs")
	assert.NilError(t, err)

	f, _ := s.Folder(news.ID)
	assert.Assert(t, is.Len(f.Children, 2))
	assert.Check(t, is.Equal(f.Children[1].ID, id))

	assert.NilError(t, s.UpdateBookmark(ctx, news.ID, id, "Lobste.rs", "https://lobste.rs/"))
	f, _ = s.Folder(news.ID)
	assert.Check(t, is.Equal(f.Children[1].Title, "Lobste.rs"))
	assert.Check(t, is.Equal(f.Children[1].URL, "https://lobste.rs/"))

	assert.NilError(t, s.DeleteBookmark(ctx, news.ID, f.Children[0].ID))
	f, _ = s.Folder(news.ID)
	assert.Assert(t, is.Len(f.Children, 1))
	assert.Check(t, is.Equal(f.Children[0].ID, id))
	assert.DeepEqual(t, storedHierarchy(t, kv), s.Folders())
}

func TestBookmarkOps_UnknownParentIsNoop(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := newLoaded(t, kv)
	ctx := context.Background()
	writes := kv.Writes()
	before := s.Folders()

	id, err := s.CreateBookmark(ctx, "missing", "X", "https://x.example")
	assert.NilError(t, err)
	assert.Check(t, is.Equal(id, ""))
	assert.NilError(t, s.UpdateBookmark(ctx, "missing", "b", "X", "https://x.example"))
	assert.NilError(t, s.DeleteBookmark(ctx, before[0].ID, "missing"))

	assert.DeepEqual(t, s.Folders(), before)
	assert.Check(t, is.Equal(kv.Writes(), writes))
}

func TestMoveFolder(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"first to last", 0, 3, []string{"B", "C", "D", "A"}},
		{"last to first", 3, 0, []string{"D", "A", "B", "C"}},
		{"forward one", 1, 2, []string{"A", "C", "B", "D"}},
		{"backward one", 2, 1, []string{"A", "C", "B", "D"}},
		{"middle", 0, 2, []string{"B", "C", "A", "D"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := storage.NewMemoryKV()
			putHierarchy(t, kv, fourFolders())
			s := newLoaded(t, kv)

			assert.NilError(t, s.MoveFolder(context.Background(), tt.from, tt.to))
			assert.DeepEqual(t, titles(s.Folders()), tt.want)
			assert.DeepEqual(t, titles(storedHierarchy(t, kv)), tt.want)
		})
	}
}

func TestMoveFolder_Reversible(t *testing.T) {
	for from := 0; from < 4; from++ {
		for to := 0; to < 4; to++ {
			kv := storage.NewMemoryKV()
			putHierarchy(t, kv, fourFolders())
			s := newLoaded(t, kv)
			ctx := context.Background()
			original := s.Folders()

			assert.NilError(t, s.MoveFolder(ctx, from, to))
			assert.NilError(t, s.MoveFolder(ctx, to, from))
			assert.DeepEqual(t, s.Folders(), original)
		}
	}
}

func TestMoveFolder_SameIndexDoesNotPersist(t *testing.T) {
	kv := storage.NewMemoryKV()
	putHierarchy(t, kv, fourFolders())
	s := newLoaded(t, kv)
	writes := kv.Writes()
	rev := s.Revision()

	assert.NilError(t, s.MoveFolder(context.Background(), 2, 2))
	assert.Check(t, is.Equal(kv.Writes(), writes))
	assert.Check(t, is.Equal(s.Revision(), rev))
}

func TestMoveFolder_OutOfRange(t *testing.T) {
	kv := storage.NewMemoryKV()
	putHierarchy(t, kv, fourFolders())
	s := newLoaded(t, kv)
	before := s.Folders()

	for _, idx := range [][2]int{{-1, 0}, {0, 4}, {4, 0}, {0, -2}} {
		err := s.MoveFolder(context.Background(), idx[0], idx[1])
		assert.Check(t, errors.Is(err, store.ErrIndexOutOfRange), "move %v: %v", idx, err)
	}
	assert.DeepEqual(t, s.Folders(), before)
}

func TestReplaceAll(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := newLoaded(t, kv)
	ctx := context.Background()

	next := fourFolders()
	assert.NilError(t, s.ReplaceAll(ctx, next))
	assert.DeepEqual(t, s.Folders(), next)
	assert.DeepEqual(t, storedHierarchy(t, kv), next)

	// The store keeps its own copy.
	next[0].Title = "mutated"
	assert.Check(t, is.Equal(s.Folders()[0].Title, "A"))

	err := s.ReplaceAll(ctx, nil)
	assert.Check(t, errors.Is(err, store.ErrNotSequence))
	assert.Check(t, errors.Is(err, codec.ErrFormat))
	assert.Check(t, is.Len(s.Folders(), 4))

	assert.NilError(t, s.ReplaceAll(ctx, model.Hierarchy{}))
	assert.Check(t, is.Len(s.Folders(), 0))
}

func TestAppendFolders_RekeysCollisions(t *testing.T) {
	kv := storage.NewMemoryKV()
	putHierarchy(t, kv, fourFolders())
	s := newLoaded(t, kv)

	incoming := model.Hierarchy{
		{ID: "fA", Title: "Again", Children: []model.Bookmark{{ID: "fB", Title: "x", URL: "https://x.example"}}},
		{ID: "fresh", Title: "Fresh", Children: []model.Bookmark{}},
	}
	assert.NilError(t, s.AppendFolders(context.Background(), incoming))

	got := s.Folders()
	assert.DeepEqual(t, titles(got), []string{"A", "B", "C", "D", "Again", "Fresh"})
	assert.Check(t, got[4].ID != "fA")
	assert.Check(t, got[4].Children[0].ID != "fB")
	assert.Check(t, is.Equal(got[5].ID, "fresh"))
}

func TestFolders_ReturnsCopy(t *testing.T) {
	s := newLoaded(t, storage.NewMemoryKV())

	got := s.Folders()
	got[0].Title = "changed"
	got[0].Children[0].Title = "changed"

	again := s.Folders()
	assert.Check(t, is.Equal(again[0].Title, "Work Resources"))
	assert.Check(t, is.Equal(again[0].Children[0].Title, "GitHub"))
}

func TestSubscribe(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := newLoaded(t, kv)
	ctx := context.Background()

	var got []store.Change
	unsubscribe := s.Subscribe(func(c store.Change) {
		// Observers may read the store from inside the callback.
		_ = s.Folders()
		got = append(got, c)
	})

	_, err := s.CreateFolder(ctx, "Tools", "", true)
	assert.NilError(t, err)
	assert.NilError(t, s.MoveFolder(ctx, 0, 2))
	assert.NilError(t, s.MoveFolder(ctx, 1, 1))

	assert.Assert(t, is.Len(got, 2))
	assert.Check(t, is.Equal(got[0].Op, store.OpCreateFolder))
	assert.Check(t, is.Equal(got[1].Op, store.OpMoveFolder))
	assert.Check(t, got[1].Revision > got[0].Revision)

	unsubscribe()
	assert.NilError(t, s.Save(ctx))
	assert.Check(t, is.Len(got, 2))
}

func TestSetExpanded_NotifiesWithoutPersisting(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := newLoaded(t, kv)
	id := s.Folders()[0].ID
	writes := kv.Writes()

	var ops []store.Op
	s.Subscribe(func(c store.Change) { ops = append(ops, c.Op) })

	s.SetExpanded(id, false)
	s.SetExpanded(id, false)

	f, _ := s.Folder(id)
	assert.Check(t, !f.Expanded)
	assert.DeepEqual(t, ops, []store.Op{store.OpToggleExpanded})
	assert.Check(t, is.Equal(kv.Writes(), writes))
}

type failingKV struct {
	*storage.MemoryKV
}

func (failingKV) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestMutation_PersistFailureStillUpdatesMemory(t *testing.T) {
	kv := failingKV{storage.NewMemoryKV()}
	s := store.New(kv, store.WithIDFunc(seqIDs()))
	assert.ErrorContains(t, s.Load(context.Background()), "disk full")

	_, err := s.CreateFolder(context.Background(), "Tools", "", true)
	assert.ErrorContains(t, err, "persist hierarchy")
	assert.Check(t, is.Len(s.Folders(), 3))
}

func TestTheme(t *testing.T) {
	kv := storage.NewMemoryKV()
	ctx := context.Background()

	assert.Check(t, is.Equal(store.LoadTheme(ctx, kv), store.ThemeLight))

	assert.NilError(t, store.SaveTheme(ctx, kv, store.ThemeDark))
	assert.Check(t, is.Equal(store.LoadTheme(ctx, kv), store.ThemeDark))

	assert.NilError(t, kv.Set(ctx, storage.ThemeKey, []byte(`"sepia"`)))
	assert.Check(t, is.Equal(store.LoadTheme(ctx, kv), store.ThemeLight))

	assert.Check(t, is.Equal(store.ThemeLight.Toggle(), store.ThemeDark))
	assert.Check(t, is.Equal(store.ThemeDark.Toggle(), store.ThemeLight))
}
