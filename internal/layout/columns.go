package layout

import "github.com/nikbrunner/bmdeck/internal/model"

// FaviconFunc maps a page URL to the URL of its icon. Nil disables icons.
type FaviconFunc func(pageURL string) string

// Row is one rendered bookmark.
type Row struct {
	ID      string
	Title   string
	URL     string
	Favicon string
}

// Card is one rendered folder. Index is the folder's position in the
// hierarchy, which is what reordering works on.
type Card struct {
	Index    int
	ID       string
	Title    string
	Icon     string
	Expanded bool
	Rows     []Row
}

// Column is a vertical stack of cards.
type Column struct {
	Cards []Card
}

// ColumnCount returns how many columns fit a viewport of the given width.
func ColumnCount(width int, cfg ColumnConfig) int {
	switch {
	case width <= cfg.SingleMax:
		return 1
	case width <= cfg.DoubleMax:
		return 2
	default:
		return 3
	}
}

// Compute distributes folders round-robin: folder i goes to column i mod n.
// Within a column cards keep hierarchy order. The result depends only on
// the arguments.
func Compute(h model.Hierarchy, width int, cfg ColumnConfig, fav FaviconFunc) []Column {
	n := ColumnCount(width, cfg)
	columns := make([]Column, n)
	for i := range columns {
		columns[i].Cards = []Card{}
	}

	for i, f := range h {
		card := Card{
			Index:    i,
			ID:       f.ID,
			Title:    f.Title,
			Icon:     f.Icon,
			Expanded: f.Expanded,
			Rows:     make([]Row, 0, len(f.Children)),
		}
		for _, b := range f.Children {
			row := Row{ID: b.ID, Title: b.Title, URL: b.URL}
			if fav != nil {
				row.Favicon = fav(b.URL)
			}
			card.Rows = append(card.Rows, row)
		}
		col := &columns[i%n]
		col.Cards = append(col.Cards, card)
	}
	return columns
}

// TerminalUnits converts a terminal width in cells to viewport units.
func TerminalUnits(cells int, cfg ColumnConfig) int {
	if cfg.UnitsPerCell <= 0 {
		return cells
	}
	return cells * cfg.UnitsPerCell
}

// Locate returns the column and row of the card for folder index within
// columns, or ok=false.
func Locate(columns []Column, index int) (col, row int, ok bool) {
	n := len(columns)
	if n == 0 || index < 0 {
		return 0, 0, false
	}
	col, row = index%n, index/n
	if row >= len(columns[col].Cards) {
		return 0, 0, false
	}
	return col, row, true
}
