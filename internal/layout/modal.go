package layout

// CalculateModalWidth sizes a centered modal: DefaultWidthPercent of the
// terminal, clamped to [MinWidth, MaxWidth], leaving two cells on each side.
func CalculateModalWidth(terminalWidth int, cfg ModalConfig) int {
	width := clamp(terminalWidth*cfg.DefaultWidthPercent/100, cfg.MinWidth, cfg.MaxWidth)
	if limit := terminalWidth - 4; width > limit {
		width = limit
	}
	return max(width, 1)
}

// PickerRows is how many results fit a picker of the given height.
func PickerRows(terminalHeight int, cfg PickerConfig) int {
	per := max(cfg.LinesPerResult, 1)
	return max((terminalHeight-cfg.ChromeLines)/per, 1)
}

// ScrollWindow returns the slice [start, end) of total items to show in
// size rows. The window only moves once the selection leaves it at the
// bottom, so the selection sits on the last visible row while scrolling.
func ScrollWindow(selected, total, size int) (start, end int) {
	if total <= size {
		return 0, total
	}
	if selected >= size {
		start = selected - size + 1
	}
	return start, min(start+size, total)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
