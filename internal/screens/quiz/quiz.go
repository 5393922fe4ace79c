package quiz

import (
	"context"
	"log/slog"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	qz "github.com/abhisek/intake/internal/quiz"
	"github.com/abhisek/intake/internal/screen"
	"github.com/abhisek/intake/internal/store"
	"github.com/abhisek/intake/internal/ui/components"
	"github.com/abhisek/intake/internal/ui/layout"
)

const defaultTitle = "Personal information"

// Options configures a QuizScreen.
type Options struct {
	// EventRepo receives session and answer events. Nil disables recording.
	EventRepo store.EventRepo

	// AdvanceDelay keeps a chosen option highlighted before the view moves
	// on. Zero advances immediately.
	AdvanceDelay time.Duration

	Logger *slog.Logger

	// SessionID tags recorded events; a random UUID is used when empty.
	SessionID string
}

// QuizScreen renders the navigator and turns key presses into navigator
// operations. It never changes the position except through the navigator.
type QuizScreen struct {
	nav       *qz.Navigator
	eventRepo store.EventRepo
	delay     time.Duration
	logger    *slog.Logger
	sessionID string
	keys      keyMap
	list      components.ChoiceList

	pending bool // an advance is scheduled; input is ignored until it lands
	gen     int
	done    bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.HeaderProvider = (*QuizScreen)(nil)

// New creates a QuizScreen over nav.
func New(nav *qz.Navigator, opts Options) *QuizScreen {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	sessionID := opts.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	s := &QuizScreen{
		nav:       nav,
		eventRepo: opts.EventRepo,
		delay:     opts.AdvanceDelay,
		logger:    logger.With(slog.String("session_id", sessionID)),
		sessionID: sessionID,
		keys:      defaultKeyMap(),
	}
	s.syncList()
	return s
}

// Navigator returns the navigator driven by this screen.
func (s *QuizScreen) Navigator() *qz.Navigator {
	return s.nav
}

// SessionID returns the id recorded events are tagged with.
func (s *QuizScreen) SessionID() string {
	return s.sessionID
}

// Pending reports whether a delayed advance is outstanding.
func (s *QuizScreen) Pending() bool {
	return s.pending
}

// Done reports whether the respondent finished on the terminal step.
func (s *QuizScreen) Done() bool {
	return s.done
}

func (s *QuizScreen) Init() tea.Cmd {
	s.logger.Info("session started", slog.Int("questions", s.nav.Catalog().Len()))
	s.recordSession(store.ActionStart)
	return nil
}

func (s *QuizScreen) Title() string {
	if t := s.nav.Catalog().Title; t != "" {
		return t
	}
	return defaultTitle
}

func (s *QuizScreen) HeaderLeft() string {
	if s.nav.IsAtStart() {
		return ""
	}
	return "← Back"
}

func (s *QuizScreen) HeaderRight() string {
	q, _ := s.nav.Position()
	return stepLabel(q+1, s.nav.Catalog().Len())
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	var hints []layout.KeyHint
	if s.nav.CurrentView().IsTerminal() {
		hints = append(hints, layout.KeyHint{Key: "any key", Description: "Finish"})
	} else {
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Move"},
			layout.KeyHint{Key: "Enter", Description: "Choose"},
			layout.KeyHint{Key: "1-9", Description: "Pick"},
		)
	}
	if !s.nav.IsAtStart() {
		hints = append(hints, layout.KeyHint{Key: "←", Description: "Back"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case advanceMsg:
		return s.handleAdvance(msg)
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	// Input is dropped between a selection and its advance.
	if s.pending || s.done {
		return s, nil
	}

	if key.Matches(msg, s.keys.Back) {
		s.goBack()
		return s, nil
	}

	if s.nav.CurrentView().IsTerminal() {
		return s, s.finish()
	}

	switch {
	case key.Matches(msg, s.keys.Up):
		s.list = s.list.Move(-1)
		return s, nil
	case key.Matches(msg, s.keys.Down):
		s.list = s.list.Move(1)
		return s, nil
	case key.Matches(msg, s.keys.Choose):
		return s.choose(s.list.Current())
	}

	if i := digitChoice(msg.String()); i >= 0 && i < len(s.list.Options) {
		s.list.Cursor = i
		return s.choose(s.list.Current())
	}
	return s, nil
}

func (s *QuizScreen) goBack() {
	if s.nav.IsAtStart() {
		return
	}
	s.nav.GoToPrevious()
	q, sub := s.nav.Position()
	s.logger.Debug("went back", slog.Int("question_index", q), slog.Int("sub_index", sub))
	s.syncList()
}

// choose records option on the current view and schedules (or performs)
// the advance.
func (s *QuizScreen) choose(option string) (screen.Screen, tea.Cmd) {
	if option == "" {
		return s, nil
	}

	answerKey := s.nav.RecordAnswer(option)
	s.logger.Debug("answer recorded", slog.String("key", answerKey), slog.String("option", option))
	s.recordAnswer(answerKey, option)

	if s.delay <= 0 {
		s.nav.Advance()
		s.syncList()
		return s, nil
	}

	s.pending = true
	s.gen++
	s.list.Chosen = option
	s.list.Locked = true

	gen := s.gen
	return s, tea.Tick(s.delay, func(time.Time) tea.Msg {
		return advanceMsg{gen: gen}
	})
}

func (s *QuizScreen) handleAdvance(msg advanceMsg) (screen.Screen, tea.Cmd) {
	if !s.pending || msg.gen != s.gen {
		return s, nil
	}
	s.pending = false
	s.nav.Advance()
	s.syncList()
	return s, nil
}

// finish ends the session from the terminal step.
func (s *QuizScreen) finish() tea.Cmd {
	if s.done {
		return nil
	}
	s.done = true
	s.logger.Info("session completed", slog.Int("answered", len(s.nav.Answers())))
	s.recordSession(store.ActionComplete)
	return tea.Quit
}

// syncList rebuilds the option list for the current view, with the cursor on
// any answer recorded earlier.
func (s *QuizScreen) syncList() {
	view := s.nav.CurrentView()
	chosen, _ := s.nav.Answer(view.Key())
	s.list = components.NewChoiceList(view.Options(), view.Prefer(), chosen)
}

func (s *QuizScreen) recordSession(action string) {
	if s.eventRepo == nil {
		return
	}
	err := s.eventRepo.AppendSessionEvent(context.Background(), store.SessionEventData{
		SessionID:    s.sessionID,
		Action:       action,
		CatalogTitle: s.nav.Catalog().Title,
		Answered:     len(s.nav.Answers()),
	})
	if err != nil {
		s.logger.Warn("failed to record session event", slog.String("action", action), slog.String("error", err.Error()))
	}
}

func (s *QuizScreen) recordAnswer(answerKey, option string) {
	if s.eventRepo == nil {
		return
	}
	err := s.eventRepo.AppendAnswerEvent(context.Background(), store.AnswerEventData{
		SessionID: s.sessionID,
		Key:       answerKey,
		Option:    option,
	})
	if err != nil {
		s.logger.Warn("failed to record answer event", slog.String("key", answerKey), slog.String("error", err.Error()))
	}
}
