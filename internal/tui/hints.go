package tui

import "strings"

// Hint is one key and what it does, as shown in the footer.
type Hint struct {
	Key  string
	Desc string
}

var (
	dragHints = []Hint{{"hjkl", "target"}, {"Enter", "drop"}, {"Esc", "cancel"}}
	formHints = []Hint{{"Tab", "next"}, {"Enter", "save"}, {"Esc", "cancel"}}

	importHints = []Hint{{"Tab", "replace/append"}, {"Enter", "import"}, {"Esc", "cancel"}}
	helpHints   = []Hint{{"?/q/Esc", "close"}}
	emptyHints  = []Hint{{"A", "add folder"}, {"i", "import"}, {"?", "help"}, {"q", "quit"}}

	boardHints = []Hint{
		{"hjkl", "move"}, {"space", "fold"},
		{"o", "open"}, {"O", "open all"}, {"m", "drag"},
		{"a/A", "add"}, {"e", "edit"}, {"d", "del"},
		{"?", "help"}, {"q", "quit"},
	}
)

// footerHints picks the hint line for the current mode.
func (a App) footerHints() []Hint {
	switch a.mode {
	case ModeNormal:
		if len(a.folders) == 0 {
			return emptyHints
		}
		return boardHints
	case ModeDrag:
		return dragHints
	case ModeAddFolder, ModeEditFolder, ModeAddBookmark, ModeEditBookmark:
		return formHints
	case ModeImport:
		return importHints
	case ModeHelp:
		return helpHints
	}
	return nil
}

// renderHints joins hints as "key:desc" pairs for the footer.
func (a App) renderHints(hints []Hint) string {
	return a.joinHints(hints, ":", " ")
}

// renderHintsInline is the roomier "key desc" form used inside modals.
func (a App) renderHintsInline(hints []Hint) string {
	return a.joinHints(hints, " ", "  ")
}

func (a App) joinHints(hints []Hint, pair, between string) string {
	var b strings.Builder
	for i, h := range hints {
		if i > 0 {
			b.WriteString(between)
		}
		b.WriteString(a.styles.HintKey.Render(h.Key))
		b.WriteString(pair)
		b.WriteString(a.styles.HintDesc.Render(h.Desc))
	}
	return b.String()
}
