package app

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/intake/internal/quiz"
	"github.com/abhisek/intake/internal/router"
	"github.com/abhisek/intake/internal/screen"
	"github.com/abhisek/intake/internal/screens/quiz"
	"github.com/abhisek/intake/internal/screens/welcome"
	"github.com/abhisek/intake/internal/store"
	"github.com/abhisek/intake/internal/ui/layout"
)

// Options holds dependencies for the app.
type Options struct {
	Navigator    *qz.Navigator
	EventRepo    store.EventRepo
	AdvanceDelay time.Duration
	Logger       *slog.Logger
	SkipIntro    bool
}

// Result describes how a run ended.
type Result struct {
	SessionID string
	Completed bool // the respondent finished on the terminal step
	Recap     []qz.RecapLine
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	quiz   *quiz.QuizScreen
	width  int
	height int
}

// newAppModel creates a new AppModel, starting on the intro card unless
// SkipIntro is set.
func newAppModel(opts Options) AppModel {
	q := quiz.New(opts.Navigator, quiz.Options{
		EventRepo:    opts.EventRepo,
		AdvanceDelay: opts.AdvanceDelay,
		Logger:       opts.Logger,
	})

	var initial screen.Screen = q
	if !opts.SkipIntro {
		initial = welcome.New(q.Title(), opts.Navigator.Catalog().Len(), func() screen.Screen {
			return q
		})
	}

	return AppModel{
		router: router.New(initial),
		quiz:   q,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var title, left, right string
	if active != nil {
		title = active.Title()
	}
	if hp, ok := active.(screen.HeaderProvider); ok {
		left = hp.HeaderLeft()
		right = hp.HeaderRight()
	}

	header := layout.RenderHeader(left, title, right, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Any key", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) result() *Result {
	nav := m.quiz.Navigator()
	return &Result{
		SessionID: m.quiz.SessionID(),
		Completed: m.quiz.Done(),
		Recap:     nav.Recap(),
	}
}

// Run starts the Bubble Tea program and reports how the session ended.
func Run(opts Options) (*Result, error) {
	if opts.Navigator == nil {
		return nil, fmt.Errorf("app: navigator is required")
	}

	m := newAppModel(opts)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return nil, err
	}
	return m.result(), nil
}
