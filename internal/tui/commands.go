package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/bmdeck/internal/codec"
	"github.com/nikbrunner/bmdeck/internal/launcher"
	"github.com/nikbrunner/bmdeck/internal/model"
	"github.com/nikbrunner/bmdeck/internal/store"
)

type openedMsg struct {
	count int
	err   error
}

type exportedMsg struct {
	dir string
	err error
}

type importedMsg struct {
	folders int
	err     error
}

// openCmd launches bookmarks in order off the update loop.
func openCmd(l launcher.Launcher, bookmarks []model.Bookmark) tea.Cmd {
	return func() tea.Msg {
		return openedMsg{count: len(bookmarks), err: launcher.OpenAll(l, bookmarks)}
	}
}

// exportCmd writes the JSON backup and the HTML export into dir.
func exportCmd(dir string, h model.Hierarchy, now time.Time, verbatim bool) tea.Cmd {
	return func() tea.Msg {
		if _, err := codec.WriteJSONBackup(dir, h, now); err != nil {
			return exportedMsg{err: err}
		}
		if _, err := codec.WriteHTMLExport(dir, h, codec.HTMLOptions{Now: now, Verbatim: verbatim}); err != nil {
			return exportedMsg{err: err}
		}
		return exportedMsg{dir: dir}
	}
}

// importCmd reads path and replaces, or extends, the store's hierarchy.
func importCmd(ctx context.Context, s *store.Store, path string, appendMode bool) tea.Cmd {
	return func() tea.Msg {
		h, err := codec.ReadFile(expandHome(path))
		if err != nil {
			return importedMsg{err: err}
		}
		if appendMode {
			err = s.AppendFolders(ctx, h)
		} else {
			err = s.ReplaceAll(ctx, h)
		}
		return importedMsg{folders: len(h), err: err}
	}
}

func expandHome(path string) string {
	path = strings.TrimSpace(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
