package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/bilimpath/bilim/internal/progress"
	"github.com/bilimpath/bilim/internal/ui/theme"
)

// bandColor maps a mastery band to its display color.
func bandColor(b progress.Band) color.Color {
	switch b {
	case progress.BandHigh:
		return theme.Success
	case progress.BandMedium:
		return theme.Warning
	default:
		return theme.Error
	}
}

// MasteryBadge renders a compact "NN%" badge colored by band, or a dim
// placeholder when no mastery has been recorded yet.
func MasteryBadge(mastery float64, known bool, th progress.Thresholds) string {
	if !known {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("  —  ")
	}
	c := bandColor(progress.BandFor(mastery, th))
	return lipgloss.NewStyle().
		Foreground(c).
		Bold(true).
		Render(fmt.Sprintf("%3.0f%%", mastery))
}

// MasteryBar renders a horizontal mastery bar colored by band.
func MasteryBar(mastery float64, known bool, th progress.Thresholds, width int) string {
	if width < 4 {
		width = 4
	}
	if !known {
		return lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(strings.Repeat("░", width))
	}

	filled := int(float64(width) * mastery / 100)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	c := bandColor(progress.BandFor(mastery, th))
	bar := lipgloss.NewStyle().Foreground(c).Render(strings.Repeat("█", filled))
	bar += lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", width-filled))
	return bar
}
