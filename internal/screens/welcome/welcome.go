package welcome

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/intake/internal/router"
	"github.com/abhisek/intake/internal/screen"
	"github.com/abhisek/intake/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 300 * time.Millisecond
	totalDur     = 900 * time.Millisecond
)

const cardArt = `╭─────────╮
│  ☐  ☑   │
│  ☐  ☐   │
│  ☑  ☐   │
╰─────────╯`

type tickMsg time.Time

// WelcomeScreen shows the title card before handing over to the questionnaire.
type WelcomeScreen struct {
	title        string
	steps        int
	nextFactory  func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen for a questionnaire called title with the given
// number of steps. It replaces itself with the screen produced by nextFactory.
func New(title string, steps int, nextFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		title:       title,
		steps:       steps,
		nextFactory: nextFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed >= totalDur {
			return w, nil
		}
		w.elapsed += tickInterval
		return w, tick()

	case tea.KeyPressMsg:
		// The first key before the card is complete only skips the animation.
		if w.elapsed < totalDur {
			w.elapsed = totalDur
			return w, nil
		}
		return w, w.transition()
	}

	return w, nil
}

// Ready reports whether the card is fully shown and a key will continue.
func (w *WelcomeScreen) Ready() bool {
	return w.elapsed >= totalDur
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.nextFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{
		lipgloss.NewStyle().Foreground(theme.Primary).Render(cardArt),
	}

	if w.elapsed >= phase1End {
		sections = append(sections,
			"",
			RenderBanner(w.title, width),
			lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render(stepsLine(w.steps)),
		)
	}

	if w.Ready() {
		sections = append(sections,
			"",
			lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Italic(true).
				Render("press any key to begin"),
		)
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func stepsLine(n int) string {
	if n == 1 {
		return "1 step"
	}
	return fmt.Sprintf("%d steps", n)
}
