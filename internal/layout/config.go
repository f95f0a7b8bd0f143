package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Columns ColumnConfig
	Board   BoardConfig
	Modal   ModalConfig
	Input   InputConfig
	Text    TextConfig
	Picker  PickerConfig
}

// ColumnConfig holds the breakpoints for the column count.
type ColumnConfig struct {
	// SingleMax is the widest viewport that still gets one column.
	SingleMax int

	// DoubleMax is the widest viewport that still gets two columns.
	DoubleMax int

	// UnitsPerCell converts terminal cells to viewport units.
	UnitsPerCell int
}

// BoardConfig holds column board dimension configuration.
type BoardConfig struct {
	// HeightReduction is subtracted from terminal height for the board.
	// Accounts for: header (1) + blank (1) + message line (1) + help bar (1) = 4
	HeightReduction int

	// MinHeight is the minimum board height.
	MinHeight int

	// ColumnGap is the number of cells between two columns.
	ColumnGap int

	// MinColumnWidth is the narrowest a column may get.
	MinColumnWidth int

	// CardPadding is subtracted from column width for row rendering.
	// Accounts for card border and padding on each side.
	CardPadding int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the standard modal width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// HelpLeftColumnWidth: width for help overlay left column.
	HelpLeftColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	TitleCharLimit  int
	URLCharLimit    int
	SearchCharLimit int

	StandardWidth int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// PickerConfig sizes the quick-open result list.
type PickerConfig struct {
	// ChromeLines are taken by the query line, the blank line and the hint.
	ChromeLines int

	// LinesPerResult is title plus folder/URL detail.
	LinesPerResult int

	// Indent precedes the detail line.
	Indent int
}

// DefaultColumnConfig returns the stock breakpoints.
func DefaultColumnConfig() ColumnConfig {
	return ColumnConfig{
		SingleMax:    600,
		DoubleMax:    900,
		UnitsPerCell: 8,
	}
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Columns: DefaultColumnConfig(),
		Board: BoardConfig{
			HeightReduction: 4, // header (1) + blank (1) + message (1) + help (1)
			MinHeight:       5,
			ColumnGap:       2,
			MinColumnWidth:  20,
			CardPadding:     4,
		},
		Modal: ModalConfig{
			DefaultWidthPercent: 50,
			MinWidth:            40,
			MaxWidth:            80,
			HelpLeftColumnWidth: 18,
		},
		Input: InputConfig{
			TitleCharLimit:  100,
			URLCharLimit:    500,
			SearchCharLimit: 100,
			StandardWidth:   40,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
		Picker: PickerConfig{
			ChromeLines:    3,
			LinesPerResult: 2,
			Indent:         3,
		},
	}
}
