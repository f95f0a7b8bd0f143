package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/nikbrunner/bmdeck/internal/layout"
)

// Mode is what the keyboard currently drives.
type Mode int

const (
	ModeNormal Mode = iota
	ModeDrag
	ModeAddFolder
	ModeEditFolder
	ModeAddBookmark
	ModeEditBookmark
	ModeConfirmDelete
	ModeImport
	ModeHelp
)

// Cursor points at a folder card and optionally one of its bookmarks.
// Row is HeaderRow when the folder header itself is selected.
type Cursor struct {
	Folder int
	Row    int
}

// HeaderRow marks the folder header as the selected line of a card.
const HeaderRow = -1

// MessageType selects the style of the message line.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageError
)

// Form field indices.
const (
	fieldTitle = iota
	fieldSecond
	fieldDefaultOpen
)

// FormState backs the folder and bookmark modals. The second input is the
// icon for folders and the URL for bookmarks.
type FormState struct {
	TitleInput  textinput.Model
	SecondInput textinput.Model
	DefaultOpen bool
	Focus       int

	FolderID   string // folder being edited or receiving the bookmark
	BookmarkID string // bookmark being edited
	Err        string // validation problems shown under the inputs
}

// NewFormState creates a FormState with initialized inputs.
func NewFormState(cfg layout.LayoutConfig) FormState {
	titleInput := textinput.New()
	titleInput.Placeholder = "Title"
	titleInput.CharLimit = cfg.Input.TitleCharLimit
	titleInput.Width = cfg.Input.StandardWidth

	second := textinput.New()
	second.CharLimit = cfg.Input.URLCharLimit
	second.Width = cfg.Input.StandardWidth

	return FormState{
		TitleInput:  titleInput,
		SecondInput: second,
	}
}

// Reset clears the form for a new modal session.
func (f *FormState) Reset(secondPlaceholder string) {
	f.TitleInput.Reset()
	f.SecondInput.Reset()
	f.SecondInput.Placeholder = secondPlaceholder
	f.DefaultOpen = true
	f.FolderID = ""
	f.BookmarkID = ""
	f.Err = ""
	f.focus(fieldTitle)
}

// fieldCount is the number of focusable fields; folders add the checkbox.
func (f *FormState) fieldCount(folder bool) int {
	if folder {
		return 3
	}
	return 2
}

func (f *FormState) cycle(delta int, folder bool) {
	n := f.fieldCount(folder)
	f.focus((f.Focus + delta + n) % n)
}

func (f *FormState) focus(field int) {
	f.Focus = field
	f.TitleInput.Blur()
	f.SecondInput.Blur()
	switch field {
	case fieldTitle:
		f.TitleInput.Focus()
	case fieldSecond:
		f.SecondInput.Focus()
	}
}

// DeleteState describes what the confirm modal would delete.
type DeleteState struct {
	FolderID   string
	BookmarkID string // empty when deleting the whole folder
	Label      string
}

// ImportState backs the import modal.
type ImportState struct {
	PathInput textinput.Model
	Append    bool
}

// NewImportState creates an ImportState with an initialized input.
func NewImportState(cfg layout.LayoutConfig) ImportState {
	input := textinput.New()
	input.Placeholder = "~/Downloads/bookmarks_backup.json"
	input.CharLimit = cfg.Input.URLCharLimit
	input.Width = cfg.Input.StandardWidth
	return ImportState{PathInput: input}
}
