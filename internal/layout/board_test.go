package layout

import (
	"fmt"
	"testing"

	"gotest.tools/v3/assert"
)

func TestCalculateBoardHeight(t *testing.T) {
	cfg := DefaultConfig().Board

	// Header, blank line, message and hints take four lines.
	assert.Equal(t, CalculateBoardHeight(24, cfg), 20)
	assert.Equal(t, CalculateBoardHeight(50, cfg), 46)
	assert.Equal(t, CalculateBoardHeight(8, cfg), cfg.MinHeight)
	assert.Equal(t, CalculateBoardHeight(2, cfg), cfg.MinHeight)
}

func TestCalculateColumnWidth(t *testing.T) {
	cfg := DefaultConfig().Board

	for _, tc := range []struct {
		width, count, want int
	}{
		{width: 70, count: 1, want: 70},
		{width: 100, count: 2, want: 49},
		{width: 160, count: 3, want: 52},
		{width: 40, count: 3, want: cfg.MinColumnWidth},
		{width: 50, count: 0, want: 50},
	} {
		t.Run(fmt.Sprintf("%dx%d", tc.width, tc.count), func(t *testing.T) {
			assert.Equal(t, CalculateColumnWidth(tc.width, tc.count, cfg), tc.want)
		})
	}
}

func TestCalculateRowWidth(t *testing.T) {
	cfg := DefaultConfig().Board

	assert.Equal(t, CalculateRowWidth(24, cfg), 20)
	assert.Equal(t, CalculateRowWidth(52, cfg), 48)
	assert.Equal(t, CalculateRowWidth(3, cfg), 1)
}

func TestCalculateViewportOffset(t *testing.T) {
	for _, tc := range []struct {
		selected, total, height, want int
	}{
		{selected: 2, total: 5, height: 10, want: 0},
		{selected: 1, total: 20, height: 10, want: 0},
		{selected: 10, total: 20, height: 10, want: 5},
		{selected: 18, total: 20, height: 10, want: 10},
		{selected: 19, total: 20, height: 10, want: 10},
	} {
		got := CalculateViewportOffset(tc.selected, tc.total, tc.height)
		assert.Equal(t, got, tc.want, "selected %d of %d", tc.selected, tc.total)
	}
}
