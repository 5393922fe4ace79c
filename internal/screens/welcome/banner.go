package welcome

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/intake/internal/ui/theme"
)

// RenderBanner returns the questionnaire title letter-spaced in the primary
// color, falling back to the plain title when the spaced form would not fit.
func RenderBanner(title string, width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	spaced := spaceOut(strings.ToUpper(title))
	if lipgloss.Width(spaced) > width-4 {
		return style.Render(title)
	}
	return style.Render(spaced)
}

func spaceOut(s string) string {
	runes := []rune(s)
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}
