package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Emphasis thresholds shared by the context and quota bars
const (
	WarningThreshold = 75
	DangerThreshold  = 90
)

// Level is the emphasis applied to a percentage-backed segment
type Level int

const (
	LevelDefault Level = iota
	LevelWarning
	LevelDanger
)

// ForPercent maps a percentage to its emphasis level
func ForPercent(pct float64) Level {
	switch {
	case pct >= DangerThreshold:
		return LevelDanger
	case pct >= WarningThreshold:
		return LevelWarning
	default:
		return LevelDefault
	}
}

var (
	Session  = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	Dir      = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	Branch   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	Model    = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	Duration = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	plain   = lipgloss.NewStyle()
	warning = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	danger  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	separator = lipgloss.NewStyle().Faint(true)
)

// ForLevel returns the style for an emphasis level
func ForLevel(level Level) lipgloss.Style {
	switch level {
	case LevelDanger:
		return danger
	case LevelWarning:
		return warning
	default:
		return plain
	}
}

// Separator joins status line segments
func Separator() string {
	return " " + separator.Render("|") + " "
}

// ForceANSI pins the color profile so escapes survive the pipe to the host.
// Claude Code reads the status line through a pipe, so auto-detection would
// strip all color.
func ForceANSI() {
	lipgloss.SetColorProfile(termenv.ANSI)
}
