package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/intake/internal/ui/components"
	"github.com/abhisek/intake/internal/ui/layout"
	"github.com/abhisek/intake/internal/ui/theme"
)

func stepLabel(step, total int) string {
	return fmt.Sprintf("Step %d/%d", step, total)
}

func (s *QuizScreen) View(width, height int) string {
	view := s.nav.CurrentView()
	contentWidth := layout.ContentWidth(width)

	var b strings.Builder

	bar := components.NewProgressBar("", s.nav.ProgressFraction(), false, contentWidth)
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	if view.IsTerminal() {
		b.WriteString(s.renderTerminal(contentWidth))
	} else {
		b.WriteString(s.renderQuestion(contentWidth))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Width(contentWidth).Render(b.String()))
}

func (s *QuizScreen) renderQuestion(width int) string {
	view := s.nav.CurrentView()

	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Width(width).Render(view.Prompt()))
	b.WriteString("\n")
	if d := view.Description(); d != "" {
		b.WriteString(theme.Hint.Width(width).Render(d))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.list.View())
	return b.String()
}

// renderTerminal shows the final step with a recap of what was answered.
func (s *QuizScreen) renderTerminal(width int) string {
	view := s.nav.CurrentView()

	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render(view.Prompt()))
	b.WriteString("\n")
	if d := view.Description(); d != "" {
		b.WriteString(theme.Subtitle.Width(width).Render(d))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	recap := s.nav.Recap()
	if len(recap) > 0 {
		var lines strings.Builder
		for _, line := range recap {
			lines.WriteString(theme.Hint.Render(line.Prompt))
			lines.WriteString("\n  ")
			lines.WriteString(theme.Chosen.Render(line.Answer))
			lines.WriteString("\n")
		}
		b.WriteString(theme.Card.Width(width).Render(strings.TrimRight(lines.String(), "\n")))
		b.WriteString("\n\n")
	}

	b.WriteString(theme.Subtitle.Width(width).Render("Press any key to finish"))
	return b.String()
}
