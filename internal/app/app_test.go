package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qz "github.com/abhisek/intake/internal/quiz"
	"github.com/abhisek/intake/internal/screens/quiz"
	"github.com/abhisek/intake/internal/screens/welcome"
)

func testOptions(t *testing.T, skipIntro bool) Options {
	t.Helper()
	c, err := qz.DefaultCatalog()
	require.NoError(t, err)
	nav, err := qz.New(c)
	require.NoError(t, err)
	return Options{Navigator: nav, SkipIntro: skipIntro}
}

func update(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func TestNewAppModelStartsOnIntro(t *testing.T) {
	m := newAppModel(testOptions(t, false))
	_, ok := m.router.Active().(*welcome.WelcomeScreen)
	assert.True(t, ok, "expected the intro card first")
}

func TestNewAppModelSkipIntro(t *testing.T) {
	m := newAppModel(testOptions(t, true))
	_, ok := m.router.Active().(*quiz.QuizScreen)
	assert.True(t, ok, "expected the quiz screen first")
}

func TestCtrlCQuits(t *testing.T) {
	m := newAppModel(testOptions(t, true))
	_, cmd := update(m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestEscAtRootIsNoop(t *testing.T) {
	m := newAppModel(testOptions(t, true))
	_, cmd := update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.router.Depth())
}

func TestViewTooSmall(t *testing.T) {
	m := newAppModel(testOptions(t, true))
	m, _ = update(m, tea.WindowSizeMsg{Width: 30, Height: 10})
	assert.Contains(t, m.render(), "Terminal too small")
}

func TestViewRendersHeaderAndHints(t *testing.T) {
	m := newAppModel(testOptions(t, true))
	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 30})

	content := m.render()
	assert.Contains(t, content, "Personal information")
	assert.Contains(t, content, "Step 1/5")
	assert.Contains(t, content, "Choose")
	assert.False(t, strings.Contains(content, "← Back"), "no back marker on the first question")
}

func TestResultReflectsAnswers(t *testing.T) {
	opts := testOptions(t, true)
	m := newAppModel(opts)

	m, _ = update(m, tea.KeyPressMsg{Code: '1', Text: "1"})

	res := m.result()
	assert.False(t, res.Completed)
	assert.NotEmpty(t, res.SessionID)
	require.Len(t, res.Recap, 1)
	assert.Equal(t, "MALE", res.Recap[0].Answer)
}
