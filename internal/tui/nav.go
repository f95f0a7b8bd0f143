package tui

import (
	"github.com/nikbrunner/bmdeck/internal/layout"
	"github.com/nikbrunner/bmdeck/internal/model"
)

// currentFolder returns the folder under the cursor.
func (a App) currentFolder() (model.Folder, bool) {
	if a.cursor.Folder < 0 || a.cursor.Folder >= len(a.folders) {
		return model.Folder{}, false
	}
	return a.folders[a.cursor.Folder], true
}

// currentBookmark returns the bookmark under the cursor, if a row is selected.
func (a App) currentBookmark() (model.Bookmark, bool) {
	f, ok := a.currentFolder()
	if !ok || a.cursor.Row == HeaderRow || a.cursor.Row >= len(f.Children) {
		return model.Bookmark{}, false
	}
	return f.Children[a.cursor.Row], true
}

// currentRow returns the laid-out row under the cursor.
func (a App) currentRow() (layout.Row, bool) {
	if a.cursor.Row == HeaderRow {
		return layout.Row{}, false
	}
	for _, col := range a.columns {
		for _, card := range col.Cards {
			if card.Index == a.cursor.Folder && a.cursor.Row < len(card.Rows) {
				return card.Rows[a.cursor.Row], true
			}
		}
	}
	return layout.Row{}, false
}

// visibleRows is how many rows of folder i the board shows.
func (a App) visibleRows(i int) int {
	if i < 0 || i >= len(a.folders) || !a.folders[i].Expanded {
		return 0
	}
	return len(a.folders[i].Children)
}

// clampCursor keeps the cursor on an existing, visible line.
func (a *App) clampCursor() {
	if len(a.folders) == 0 {
		a.cursor = Cursor{Folder: 0, Row: HeaderRow}
		return
	}
	if a.cursor.Folder >= len(a.folders) {
		a.cursor = Cursor{Folder: len(a.folders) - 1, Row: HeaderRow}
	}
	if a.cursor.Folder < 0 {
		a.cursor = Cursor{Folder: 0, Row: HeaderRow}
	}
	if rows := a.visibleRows(a.cursor.Folder); a.cursor.Row >= rows {
		a.cursor.Row = rows - 1
	}
	if a.cursor.Row < HeaderRow {
		a.cursor.Row = HeaderRow
	}
}

// below returns the folder index under i in the same column, or -1.
func (a App) below(i int) int {
	n := len(a.columns)
	if n == 0 || i+n >= len(a.folders) {
		return -1
	}
	return i + n
}

// above returns the folder index over i in the same column, or -1.
func (a App) above(i int) int {
	n := len(a.columns)
	if n == 0 || i-n < 0 {
		return -1
	}
	return i - n
}

// beside returns the folder index in the neighbouring column at the same
// height, or the last card of that column when it is shorter. Returns -1
// when there is no such column or it is empty.
func (a App) beside(i, delta int) int {
	col, row, ok := layout.Locate(a.columns, i)
	if !ok {
		return -1
	}
	target := col + delta
	if target < 0 || target >= len(a.columns) {
		return -1
	}
	cards := len(a.columns[target].Cards)
	if cards == 0 {
		return -1
	}
	if row >= cards {
		row = cards - 1
	}
	return row*len(a.columns) + target
}

func (a *App) moveDown() {
	if len(a.folders) == 0 {
		return
	}
	if a.cursor.Row+1 < a.visibleRows(a.cursor.Folder) {
		a.cursor.Row++
		return
	}
	if next := a.below(a.cursor.Folder); next >= 0 {
		a.cursor = Cursor{Folder: next, Row: HeaderRow}
	}
}

func (a *App) moveUp() {
	if len(a.folders) == 0 {
		return
	}
	if a.cursor.Row > HeaderRow {
		a.cursor.Row--
		return
	}
	if prev := a.above(a.cursor.Folder); prev >= 0 {
		a.cursor = Cursor{Folder: prev, Row: a.visibleRows(prev) - 1}
	}
}

func (a *App) moveColumn(delta int) {
	if next := a.beside(a.cursor.Folder, delta); next >= 0 {
		a.cursor = Cursor{Folder: next, Row: HeaderRow}
	}
}

// stepTarget moves the drop candidate like the cursor moves between
// folder headers.
func (a App) stepTarget(from int, dir direction) int {
	var next int
	switch dir {
	case dirUp:
		next = a.above(from)
	case dirDown:
		next = a.below(from)
	case dirLeft:
		next = a.beside(from, -1)
	case dirRight:
		next = a.beside(from, 1)
	}
	if next < 0 {
		return from
	}
	return next
}

type direction int

const (
	dirUp direction = iota
	dirDown
	dirLeft
	dirRight
)
