package statusline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBar_FilledCount(t *testing.T) {
	tests := []struct {
		pct    float64
		filled int
	}{
		{0, 0},
		{1, 0},   // floor, not rounding
		{45, 4},  // 4.5 floors to 4
		{50, 5},
		{99, 9},
		{100, 10},
		{-5, 0},   // clamped low
		{150, 10}, // clamped high
	}

	for _, tt := range tests {
		bar := Bar(tt.pct)
		assert.Equal(t, tt.filled, strings.Count(bar, barFilled), "Bar(%v) filled glyphs", tt.pct)
		assert.Equal(t, BarWidth-tt.filled, strings.Count(bar, barEmpty), "Bar(%v) empty glyphs", tt.pct)
	}
}

func TestBar_FixedWidth(t *testing.T) {
	for _, pct := range []float64{0, 1, 45, 50, 99, 100, -5, 150} {
		bar := Bar(pct)
		assert.Equal(t, BarWidth, len([]rune(bar)), "Bar(%v) width", pct)
	}
}

func TestBar_Extremes(t *testing.T) {
	assert.Equal(t, strings.Repeat(barEmpty, BarWidth), Bar(0))
	assert.Equal(t, strings.Repeat(barFilled, BarWidth), Bar(100))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms       int64
		expected string
	}{
		{0, "0m 0s"},
		{999, "0m 0s"},
		{65000, "1m 5s"},
		{3661000, "61m 1s"}, // no hour rollover
		{-500, "0m 0s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatDuration(tt.ms), "FormatDuration(%d)", tt.ms)
	}
}
