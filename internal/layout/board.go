package layout

// CalculateBoardHeight returns the lines left for columns once the header
// and footer are drawn, never less than MinHeight.
func CalculateBoardHeight(terminalHeight int, cfg BoardConfig) int {
	return max(terminalHeight-cfg.HeightReduction, cfg.MinHeight)
}

// CalculateColumnWidth splits terminalWidth into count columns with
// ColumnGap cells between neighbours.
func CalculateColumnWidth(terminalWidth, count int, cfg BoardConfig) int {
	count = max(count, 1)
	gaps := cfg.ColumnGap * (count - 1)
	return max((terminalWidth-gaps)/count, cfg.MinColumnWidth)
}

// CalculateRowWidth is the label width inside a folder card.
func CalculateRowWidth(columnWidth int, cfg BoardConfig) int {
	return max(columnWidth-cfg.CardPadding, 1)
}

// CalculateViewportOffset returns the first line to draw so that line
// selected sits near the middle of a window of height lines.
func CalculateViewportOffset(selected, total, height int) int {
	if total <= height {
		return 0
	}
	return clamp(selected-height/2, 0, total-height)
}
