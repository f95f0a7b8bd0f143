package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/bmdeck/internal/layout"
)

// renderView creates the complete board view.
func (a App) renderView() string {
	switch a.mode {
	case ModeNormal, ModeDrag:
	default:
		return a.renderModal()
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	// App padding (1 each side) is not available to the board.
	boardWidth := a.width - 2
	boardHeight := layout.CalculateBoardHeight(a.height, a.layoutConfig.Board)
	board := a.renderBoard(boardWidth, boardHeight)

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", board, footer),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

func (a App) renderHeader() string {
	if a.mode == ModeDrag && a.drag.Dragging() {
		origin := a.drag.Origin()
		if origin >= 0 && origin < len(a.folders) {
			return a.styles.Header.Render(fmt.Sprintf("Moving %q to position %d of %d",
				a.folders[origin].Title, a.target+1, len(a.folders)))
		}
	}

	title := a.styles.Header.Render("bmdeck")
	stats := a.styles.URL.Render(fmt.Sprintf("  %s · %s · %d col · %s",
		pluralize(len(a.folders), "folder", "folders"),
		pluralize(a.folders.BookmarkCount(), "bookmark", "bookmarks"),
		len(a.columns),
		a.theme,
	))
	return title + stats
}

// renderBoard lays the columns side by side and scrolls them together so
// the cursor line stays visible.
func (a App) renderBoard(width, height int) string {
	if len(a.folders) == 0 {
		empty := a.styles.Empty.Render("No folders yet. Press A to add one or i to import a backup.")
		return lipgloss.NewStyle().Width(width).Height(height).Render(empty)
	}

	cfg := a.layoutConfig.Board
	n := len(a.columns)
	colWidth := layout.CalculateColumnWidth(width, n, cfg)
	gap := strings.Repeat(" ", cfg.ColumnGap)

	rendered := make([]string, 0, 2*n-1)
	cursorLine := 0
	for c, col := range a.columns {
		var cards []string
		line := 0
		for _, card := range col.Cards {
			if card.Index == a.cursor.Folder {
				// Top border, then header, then rows.
				cursorLine = line + 1
				if a.cursor.Row != HeaderRow {
					cursorLine += a.cursor.Row + 1
				}
			}
			box := a.renderCard(card, colWidth)
			line += lipgloss.Height(box)
			cards = append(cards, box)
		}

		column := lipgloss.NewStyle().Width(colWidth).Render(lipgloss.JoinVertical(lipgloss.Left, cards...))
		if c > 0 {
			rendered = append(rendered, gap)
		}
		rendered = append(rendered, column)
	}

	lines := strings.Split(lipgloss.JoinHorizontal(lipgloss.Top, rendered...), "\n")
	offset := layout.CalculateViewportOffset(cursorLine, len(lines), height)
	end := offset + height
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[offset:end], "\n")
}

// renderCard draws one folder as a bordered card.
func (a App) renderCard(card layout.Card, width int) string {
	cfg := a.layoutConfig
	inner := layout.CalculateRowWidth(width, cfg.Board)

	style := a.styles.Card
	switch {
	case a.mode == ModeDrag && card.Index == a.drag.Origin():
		style = a.styles.CardDragged
	case a.mode == ModeDrag && card.Index == a.drag.Candidate():
		style = a.styles.CardDrop
	case a.mode == ModeNormal && card.Index == a.cursor.Folder:
		style = a.styles.CardActive
	}

	prefix := "▸ "
	if card.Expanded {
		prefix = "▾ "
	}
	label, _ := layout.TruncateLabel(card.Title, inner, prefix, fmt.Sprintf(" %d", len(card.Rows)), cfg.Text)

	selected := a.mode == ModeNormal && card.Index == a.cursor.Folder
	var lines []string
	if selected && a.cursor.Row == HeaderRow {
		lines = append(lines, a.styles.RowSelected.Render(padRight(label, inner)))
	} else {
		lines = append(lines, a.styles.FolderTitle.Render(label))
	}

	if card.Expanded {
		if len(card.Rows) == 0 {
			lines = append(lines, a.styles.Empty.Render("(empty)"))
		}
		for i, row := range card.Rows {
			title := row.Title
			if title == "" {
				title = row.URL
			}
			text, _ := layout.TruncateText("  "+title, inner, cfg.Text)
			if selected && a.cursor.Row == i {
				lines = append(lines, a.styles.RowSelected.Render(padRight(text, inner)))
			} else {
				lines = append(lines, a.styles.Row.Render(text))
			}
		}
	}

	// Width excludes the border; the style's padding lives inside it.
	return style.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func padRight(s string, width int) string {
	if pad := width - layout.VisibleLength(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// renderFooter shows the message line, or the selected URL and its icon
// address, above the hints.
func (a App) renderFooter() string {
	var status string
	switch {
	case a.messageText != "":
		status = a.renderMessageLine()
	default:
		if r, ok := a.currentRow(); ok && a.mode == ModeNormal {
			detail := r.URL
			if r.Favicon != "" {
				detail += "  icon " + r.Favicon
			}
			text, _ := layout.TruncateText(detail, a.width-4, a.layoutConfig.Text)
			status = a.styles.URL.Render("↳ " + text)
		}
	}
	return status + "\n" + a.renderHints(a.footerHints())
}

// renderMessageLine renders the styled message with a prefix icon based on type.
func (a App) renderMessageLine() string {
	switch a.messageType {
	case MessageError:
		return a.styles.MessageError.Render("✗ " + a.messageText)
	case MessageSuccess:
		return a.styles.MessageOK.Render("✓ " + a.messageText)
	default:
		return a.styles.MessageInfo.Render(a.messageText)
	}
}

func (a App) renderModal() string {
	var content strings.Builder

	modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal)
	modalStyle := a.styles.Modal.Width(modalWidth)

	switch a.mode {
	case ModeAddFolder, ModeEditFolder:
		title := "Add Folder"
		if a.mode == ModeEditFolder {
			title = "Edit Folder"
		}
		content.WriteString(a.styles.ModalTitle.Render(title) + "\n\n")
		content.WriteString("Title:\n" + a.form.TitleInput.View() + "\n\n")
		content.WriteString("Icon:\n" + a.form.SecondInput.View() + "\n\n")
		check := "[ ]"
		if a.form.DefaultOpen {
			check = "[x]"
		}
		line := check + " Open by default"
		if a.form.Focus == fieldDefaultOpen {
			line = a.styles.RowSelected.Render(line)
		}
		content.WriteString(line)

	case ModeAddBookmark, ModeEditBookmark:
		title := "Add Bookmark"
		if a.mode == ModeEditBookmark {
			title = "Edit Bookmark"
		}
		if f := a.folders.Folder(a.form.FolderID); f != nil {
			title += " to " + f.Title
		}
		content.WriteString(a.styles.ModalTitle.Render(title) + "\n\n")
		content.WriteString("Title:\n" + a.form.TitleInput.View() + "\n\n")
		content.WriteString("URL:\n" + a.form.SecondInput.View())

	case ModeConfirmDelete:
		what := "Bookmark"
		detail := ""
		if a.del.BookmarkID == "" {
			what = "Folder"
			if f := a.folders.Folder(a.del.FolderID); f != nil && len(f.Children) > 0 {
				detail = fmt.Sprintf("Its %s will be deleted too.\n", pluralize(len(f.Children), "bookmark", "bookmarks"))
			}
		}
		content.WriteString(a.styles.ModalTitle.Render("Delete "+what+"?") + "\n\n")
		content.WriteString(fmt.Sprintf("%q\n\n", a.del.Label))
		content.WriteString(a.styles.URL.Render(detail+"This action cannot be undone.") + "\n\n")
		content.WriteString(a.renderHintsInline([]Hint{
			{Key: "Enter", Desc: "confirm"},
			{Key: "Esc", Desc: "cancel"},
		}))

	case ModeImport:
		mode := "Replace all folders"
		if a.imp.Append {
			mode = "Append to existing folders"
		}
		content.WriteString(a.styles.ModalTitle.Render("Import") + "\n\n")
		content.WriteString("File (.json backup or .html export):\n" + a.imp.PathInput.View() + "\n\n")
		content.WriteString(a.styles.URL.Render(mode))

	case ModeHelp:
		content.WriteString(a.renderHelp())
	}

	if a.form.Err != "" && a.isFormMode() {
		content.WriteString("\n\n" + a.styles.FormError.Render(a.form.Err))
	}

	if a.mode != ModeConfirmDelete {
		content.WriteString("\n\n" + a.renderHints(a.footerHints()))
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modalStyle.Render(content.String()))
}

func (a App) isFormMode() bool {
	switch a.mode {
	case ModeAddFolder, ModeEditFolder, ModeAddBookmark, ModeEditBookmark:
		return true
	}
	return false
}

// renderHelp lists every binding in two columns.
func (a App) renderHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.ModalTitle.Render("Keys") + "\n\n")

	left := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpLeftColumnWidth)
	for _, binding := range a.keys.HelpBindings() {
		h := binding.Help()
		b.WriteString(left.Render(a.styles.HintKey.Render(h.Key)) + a.styles.HintDesc.Render(h.Desc) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
