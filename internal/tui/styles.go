package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/bmdeck/internal/store"
)

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App          lipgloss.Style
	Header       lipgloss.Style
	Card         lipgloss.Style
	CardActive   lipgloss.Style
	CardDragged  lipgloss.Style
	CardDrop     lipgloss.Style
	FolderTitle  lipgloss.Style
	Row          lipgloss.Style
	RowSelected  lipgloss.Style
	URL          lipgloss.Style
	Empty        lipgloss.Style
	Modal        lipgloss.Style
	ModalTitle   lipgloss.Style
	FormError    lipgloss.Style
	HintKey      lipgloss.Style // Key portion of hints (e.g., "Enter", "j/k")
	HintDesc     lipgloss.Style // Description portion of hints (e.g., "confirm", "move")
	MessageInfo  lipgloss.Style
	MessageOK    lipgloss.Style
	MessageError lipgloss.Style
}

// palette is the industrial grayscale scheme with a single teal accent.
type palette struct {
	primary, subtle, accent, border, onAccent, drop, ok, bad lipgloss.AdaptiveColor
}

var industrial = palette{
	primary:  lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"},
	subtle:   lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"},
	accent:   lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"},
	border:   lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"},
	onAccent: lipgloss.AdaptiveColor{Light: "#F0F0F0", Dark: "#1A1A1A"},
	drop:     lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"},
	ok:       lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"},
	bad:      lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"},
}

// pick resolves an adaptive color for an explicit theme instead of the
// terminal's detected background.
func pick(c lipgloss.AdaptiveColor, theme store.Theme) lipgloss.Color {
	if theme == store.ThemeDark {
		return lipgloss.Color(c.Dark)
	}
	return lipgloss.Color(c.Light)
}

// NewStyles returns the style set for theme.
func NewStyles(theme store.Theme) Styles {
	p := industrial
	primary := pick(p.primary, theme)
	subtle := pick(p.subtle, theme)
	accent := pick(p.accent, theme)
	border := pick(p.border, theme)

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)

	return Styles{
		App: lipgloss.NewStyle().
			PaddingLeft(1).
			PaddingRight(1),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Card: card,

		CardActive: card.
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent),

		CardDragged: card.
			Border(lipgloss.DoubleBorder()).
			BorderForeground(subtle),

		CardDrop: card.
			Border(lipgloss.ThickBorder()).
			BorderForeground(pick(p.drop, theme)),

		FolderTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),

		Row: lipgloss.NewStyle().
			Foreground(primary),

		RowSelected: lipgloss.NewStyle().
			Background(accent).
			Foreground(pick(p.onAccent, theme)),

		URL: lipgloss.NewStyle().
			Foreground(subtle),

		Empty: lipgloss.NewStyle().
			Foreground(subtle).
			Italic(true),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(1, 2),

		ModalTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		FormError: lipgloss.NewStyle().
			Foreground(pick(p.bad, theme)),

		HintKey: lipgloss.NewStyle().
			Foreground(accent),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),

		MessageInfo: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		MessageOK: lipgloss.NewStyle().
			Foreground(pick(p.ok, theme)).
			Bold(true),

		MessageError: lipgloss.NewStyle().
			Foreground(pick(p.bad, theme)).
			Bold(true),
	}
}
