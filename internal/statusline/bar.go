package statusline

import (
	"fmt"
	"strings"
)

// BarWidth is the fixed glyph width of every bar segment
const BarWidth = 10

const (
	barFilled = "█"
	barEmpty  = "░"
)

// Bar renders a percentage as a fixed-width block bar. The percentage is
// clamped to [0,100] and the filled count is floored, so Bar(45) shows
// 4 filled glyphs.
func Bar(pct float64) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	filled := int(pct / 100 * BarWidth)

	var bar strings.Builder
	for i := 0; i < BarWidth; i++ {
		if i < filled {
			bar.WriteString(barFilled)
		} else {
			bar.WriteString(barEmpty)
		}
	}
	return bar.String()
}

// FormatDuration renders a millisecond count as whole minutes and seconds.
// Minutes do not roll over into hours: 61 minutes stays "61m".
func FormatDuration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	return fmt.Sprintf("%dm %ds", total/60, total%60)
}
