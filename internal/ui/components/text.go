package components

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Fit renders s into exactly width display cells: names wider than the
// column are cut at a rune boundary and given an ellipsis, shorter ones are
// padded with spaces. Width is measured in cells, not bytes, so Cyrillic
// and other multibyte names line up with ASCII ones.
func Fit(s string, width int) string {
	if width < 1 {
		return ""
	}
	if lipgloss.Width(s) > width {
		cells := 0
		var b strings.Builder
		for _, r := range s {
			w := lipgloss.Width(string(r))
			if cells+w > width-1 {
				break
			}
			b.WriteRune(r)
			cells += w
		}
		s = b.String() + "…"
	}
	return s + strings.Repeat(" ", max(0, width-lipgloss.Width(s)))
}
