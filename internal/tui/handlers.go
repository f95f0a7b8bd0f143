package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/bmdeck/internal/model"
	"github.com/nikbrunner/bmdeck/internal/reorder"
	"github.com/nikbrunner/bmdeck/internal/store"
)

func (a App) handleKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch a.mode {
	case ModeNormal:
		return a.handleNormalKey(msg)
	case ModeDrag:
		return a.handleDragKey(msg)
	case ModeAddFolder, ModeEditFolder, ModeAddBookmark, ModeEditBookmark:
		return a.handleFormKey(msg)
	case ModeConfirmDelete:
		return a.handleConfirmDeleteKey(msg)
	case ModeImport:
		return a.handleImportKey(msg)
	case ModeHelp:
		if key.Matches(msg, a.keys.Help, a.keys.Cancel, a.keys.Quit) {
			a.mode = ModeNormal
		}
		return a, nil
	}
	return a, nil
}

func (a App) handleNormalKey(msg tea.KeyMsg) (App, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.cursor = Cursor{Folder: 0, Row: HeaderRow}
			a.clampCursor()
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		a.moveDown()

	case key.Matches(msg, a.keys.Up):
		a.moveUp()

	case key.Matches(msg, a.keys.Left):
		a.moveColumn(-1)

	case key.Matches(msg, a.keys.Right):
		a.moveColumn(1)

	case key.Matches(msg, a.keys.Bottom):
		if len(a.folders) > 0 {
			a.cursor = Cursor{Folder: len(a.folders) - 1, Row: HeaderRow}
		}

	case key.Matches(msg, a.keys.Toggle):
		a.toggleCurrent()

	case key.Matches(msg, a.keys.Open):
		if b, ok := a.currentBookmark(); ok {
			return a, openCmd(a.launcher, []model.Bookmark{b})
		}
		a.toggleCurrent()

	case key.Matches(msg, a.keys.OpenAll):
		f, ok := a.currentFolder()
		if !ok {
			return a, nil
		}
		if len(f.Children) == 0 {
			return a, a.setMessage(MessageInfo, fmt.Sprintf("%q has no bookmarks", f.Title))
		}
		return a, openCmd(a.launcher, f.Children)

	case key.Matches(msg, a.keys.Yank):
		b, ok := a.currentBookmark()
		if !ok {
			return a, nil
		}
		if err := a.clipboard(b.URL); err != nil {
			return a, a.setMessage(MessageError, "Copy failed: "+err.Error())
		}
		return a, a.setMessage(MessageSuccess, "Copied "+b.URL)

	case key.Matches(msg, a.keys.AddFolder):
		a.form.Reset("Icon URL (optional)")
		a.mode = ModeAddFolder
		return a, a.form.TitleInput.Focus()

	case key.Matches(msg, a.keys.AddBookmark):
		f, ok := a.currentFolder()
		if !ok {
			return a, a.setMessage(MessageInfo, "Create a folder first (A)")
		}
		a.form.Reset("https://...")
		a.form.FolderID = f.ID
		a.mode = ModeAddBookmark
		return a, a.form.TitleInput.Focus()

	case key.Matches(msg, a.keys.Edit):
		return a.startEdit()

	case key.Matches(msg, a.keys.Delete):
		return a.startDelete()

	case key.Matches(msg, a.keys.Move):
		if _, ok := a.currentFolder(); !ok {
			return a, nil
		}
		if err := a.drag.Start(a.cursor.Folder); err != nil {
			return a, a.setMessage(MessageError, err.Error())
		}
		a.target = a.cursor.Folder
		a.drag.Over(a.target)
		a.mode = ModeDrag

	case key.Matches(msg, a.keys.Theme):
		a.theme = a.theme.Toggle()
		a.styles = NewStyles(a.theme)
		if a.kv != nil {
			if err := store.SaveTheme(a.ctx, a.kv, a.theme); err != nil {
				return a, a.setMessage(MessageError, "Saving theme failed: "+err.Error())
			}
		}

	case key.Matches(msg, a.keys.Export):
		return a, exportCmd(a.exportDir, a.folders.Clone(), a.now(), a.verbatim)

	case key.Matches(msg, a.keys.Import):
		a.imp.PathInput.Reset()
		a.imp.Append = false
		a.mode = ModeImport
		return a, a.imp.PathInput.Focus()

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
	}

	return a, nil
}

// toggleCurrent flips the accordion state of the folder under the cursor.
func (a *App) toggleCurrent() {
	f, ok := a.currentFolder()
	if !ok {
		return
	}
	a.store.SetExpanded(f.ID, !f.Expanded)
	if f.Expanded {
		a.cursor.Row = HeaderRow
	}
}

func (a App) startEdit() (App, tea.Cmd) {
	f, ok := a.currentFolder()
	if !ok {
		return a, nil
	}
	if b, ok := a.currentBookmark(); ok {
		a.form.Reset("https://...")
		a.form.FolderID = f.ID
		a.form.BookmarkID = b.ID
		a.form.TitleInput.SetValue(b.Title)
		a.form.SecondInput.SetValue(b.URL)
		a.mode = ModeEditBookmark
		return a, a.form.TitleInput.Focus()
	}
	a.form.Reset("Icon URL (optional)")
	a.form.FolderID = f.ID
	a.form.TitleInput.SetValue(f.Title)
	a.form.SecondInput.SetValue(f.Icon)
	a.form.DefaultOpen = f.IsDefaultOpen()
	a.mode = ModeEditFolder
	return a, a.form.TitleInput.Focus()
}

func (a App) startDelete() (App, tea.Cmd) {
	f, ok := a.currentFolder()
	if !ok {
		return a, nil
	}
	if b, ok := a.currentBookmark(); ok {
		a.del = DeleteState{FolderID: f.ID, BookmarkID: b.ID, Label: b.Title}
	} else {
		a.del = DeleteState{FolderID: f.ID, Label: f.Title}
	}
	a.mode = ModeConfirmDelete
	return a, nil
}

func (a App) handleDragKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel), key.Matches(msg, a.keys.Quit):
		a.drag.Cancel()
		a.target = reorder.NoCandidate
		a.mode = ModeNormal
		return a, nil

	case key.Matches(msg, a.keys.Confirm), key.Matches(msg, a.keys.Move):
		target := a.target
		a.target = reorder.NoCandidate
		a.mode = ModeNormal
		moved, err := a.drag.Drop(a.ctx, target)
		if moved {
			a.cursor = Cursor{Folder: target, Row: HeaderRow}
		}
		if err != nil {
			return a, a.setMessage(MessageError, "Move failed: "+err.Error())
		}
		return a, nil

	case key.Matches(msg, a.keys.Up):
		a.retarget(dirUp)
	case key.Matches(msg, a.keys.Down):
		a.retarget(dirDown)
	case key.Matches(msg, a.keys.Left):
		a.retarget(dirLeft)
	case key.Matches(msg, a.keys.Right):
		a.retarget(dirRight)
	}
	return a, nil
}

func (a *App) retarget(dir direction) {
	next := a.stepTarget(a.target, dir)
	if next == a.target {
		return
	}
	a.drag.Leave(a.target)
	a.target = next
	a.drag.Over(next)
}

func (a App) handleFormKey(msg tea.KeyMsg) (App, tea.Cmd) {
	folder := a.mode == ModeAddFolder || a.mode == ModeEditFolder

	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.mode = ModeNormal
		return a, nil

	case key.Matches(msg, a.keys.Confirm):
		return a.submitForm()

	case key.Matches(msg, a.keys.Next):
		a.form.cycle(1, folder)
		return a, nil

	case key.Matches(msg, a.keys.Prev):
		a.form.cycle(-1, folder)
		return a, nil
	}

	var cmd tea.Cmd
	switch a.form.Focus {
	case fieldTitle:
		a.form.TitleInput, cmd = a.form.TitleInput.Update(msg)
	case fieldSecond:
		a.form.SecondInput, cmd = a.form.SecondInput.Update(msg)
	case fieldDefaultOpen:
		if msg.String() == " " || msg.String() == "x" {
			a.form.DefaultOpen = !a.form.DefaultOpen
		}
	}
	return a, cmd
}

func (a App) submitForm() (App, tea.Cmd) {
	switch a.mode {
	case ModeAddFolder, ModeEditFolder:
		in := model.FolderInput{
			Title:       a.form.TitleInput.Value(),
			Icon:        a.form.SecondInput.Value(),
			DefaultOpen: a.form.DefaultOpen,
		}.Normalize()
		if err := in.Validate(); err != nil {
			a.form.Err = err.Error()
			return a, nil
		}

		var err error
		if a.mode == ModeAddFolder {
			var id string
			id, err = a.store.CreateFolder(a.ctx, in.Title, in.Icon, in.DefaultOpen)
			a.focusFolder(id)
		} else {
			err = a.store.UpdateFolder(a.ctx, a.form.FolderID, in.Title, in.Icon, in.DefaultOpen)
		}
		a.mode = ModeNormal
		if err != nil {
			return a, a.setMessage(MessageError, "Save failed: "+err.Error())
		}
		return a, nil

	case ModeAddBookmark, ModeEditBookmark:
		in := model.BookmarkInput{
			Title: a.form.TitleInput.Value(),
			URL:   a.form.SecondInput.Value(),
		}.Normalize()
		if err := in.Validate(); err != nil {
			a.form.Err = err.Error()
			return a, nil
		}

		var err error
		if a.mode == ModeAddBookmark {
			_, err = a.store.CreateBookmark(a.ctx, a.form.FolderID, in.Title, in.URL)
			a.store.SetExpanded(a.form.FolderID, true)
			a.focusLastRow(a.form.FolderID)
		} else {
			err = a.store.UpdateBookmark(a.ctx, a.form.FolderID, a.form.BookmarkID, in.Title, in.URL)
		}
		a.mode = ModeNormal
		if err != nil {
			return a, a.setMessage(MessageError, "Save failed: "+err.Error())
		}
		return a, nil
	}
	return a, nil
}

// focusFolder moves the cursor to the header of folder id.
func (a *App) focusFolder(id string) {
	a.syncStore()
	if i := a.folders.FolderIndex(id); i >= 0 {
		a.cursor = Cursor{Folder: i, Row: HeaderRow}
	}
}

// focusLastRow moves the cursor to the newest bookmark of folder id.
func (a *App) focusLastRow(id string) {
	a.syncStore()
	if i := a.folders.FolderIndex(id); i >= 0 {
		a.cursor = Cursor{Folder: i, Row: a.visibleRows(i) - 1}
	}
}

func (a App) handleConfirmDeleteKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Confirm), msg.String() == "y":
		del := a.del
		a.del = DeleteState{}
		a.mode = ModeNormal

		var err error
		if del.BookmarkID != "" {
			err = a.store.DeleteBookmark(a.ctx, del.FolderID, del.BookmarkID)
		} else {
			err = a.store.DeleteFolder(a.ctx, del.FolderID)
		}
		if err != nil {
			return a, a.setMessage(MessageError, "Delete failed: "+err.Error())
		}
		return a, a.setMessage(MessageInfo, "Deleted "+del.Label)

	case key.Matches(msg, a.keys.Cancel), msg.String() == "n":
		a.del = DeleteState{}
		a.mode = ModeNormal
	}
	return a, nil
}

func (a App) handleImportKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.mode = ModeNormal
		return a, nil

	case msg.Type == tea.KeyTab:
		a.imp.Append = !a.imp.Append
		return a, nil

	case key.Matches(msg, a.keys.Confirm):
		path := strings.TrimSpace(a.imp.PathInput.Value())
		if path == "" {
			return a, nil
		}
		a.mode = ModeNormal
		return a, importCmd(a.ctx, a.store, path, a.imp.Append)
	}

	var cmd tea.Cmd
	a.imp.PathInput, cmd = a.imp.PathInput.Update(msg)
	return a, cmd
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
