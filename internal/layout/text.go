package layout

import (
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// VisibleLength returns the number of cells s occupies on screen.
func VisibleLength(s string) int {
	return ansi.StringWidth(s)
}

// TruncateText cuts plain text to maxWidth runes, ending in the ellipsis.
// Returns the text and whether it was cut.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}
	if utf8.RuneCountInString(text) <= maxWidth {
		return text, false
	}

	ellipsis := []rune(cfg.Ellipsis)
	if maxWidth <= len(ellipsis) {
		return string(ellipsis[:maxWidth]), true
	}
	return string([]rune(text)[:maxWidth-len(ellipsis)]) + cfg.Ellipsis, true
}

// TruncateLabel cuts text so that prefix+text+suffix fits maxWidth, keeping
// prefix and suffix intact when there is room for them.
// Example: TruncateLabel("Development", 12, "▾ ", " 3", cfg) -> "▾ Devel... 3"
func TruncateLabel(text string, maxWidth int, prefix, suffix string, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}
	combined := prefix + text + suffix
	if utf8.RuneCountInString(combined) <= maxWidth {
		return combined, false
	}

	overhead := utf8.RuneCountInString(prefix) + utf8.RuneCountInString(suffix) + utf8.RuneCountInString(cfg.Ellipsis)
	if overhead >= maxWidth {
		return TruncateText(combined, maxWidth, cfg)
	}
	runes := []rune(text)
	return prefix + string(runes[:maxWidth-overhead]) + cfg.Ellipsis + suffix, true
}

// TruncateStyled cuts styled text to maxWidth cells without breaking
// escape sequences.
func TruncateStyled(styled string, maxWidth int, cfg TextConfig) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(styled, maxWidth, cfg.Ellipsis)
}
