package quiz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog("", []Question{
		{ID: 1, Prompt: "First?", Options: []string{"a", "b"}},
		{ID: 2, Prompt: "Second?", Options: []string{"c", "d"}},
	})
	require.NoError(t, err)
	return c
}

func groupedCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog("", []Question{
		{ID: 1, Prompt: "Gender?", Options: []string{"MALE", "FEMALE"}, Prefer: "Prefer not to say"},
		{ID: 4, Prompt: "Background", SubQuestions: []SubQuestion{
			{ID: "education", Prompt: "New?", Options: []string{"go"}},
			{ID: "experience", Prompt: "Familiar?", Options: []string{"go"}},
		}},
		{ID: 5, Prompt: "Done", LastStep: true},
	})
	require.NoError(t, err)
	return c
}

func newNav(t *testing.T, c *Catalog) *Navigator {
	t.Helper()
	n, err := New(c)
	require.NoError(t, err)
	return n
}

func position(n *Navigator) [2]int {
	q, s := n.Position()
	return [2]int{q, s}
}

func TestNewRejectsEmptyCatalog(t *testing.T) {
	for name, c := range map[string]*Catalog{
		"nil":   nil,
		"empty": {},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := New(c)
			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr), "want *ConfigError, got %v", err)
			assert.Contains(t, cfgErr.Error(), "catalog must be non-empty")
		})
	}
}

func TestNewStartsAtOrigin(t *testing.T) {
	n := newNav(t, plainCatalog(t))
	assert.Equal(t, [2]int{0, 0}, position(n))
	assert.Empty(t, n.Answers())
	assert.True(t, n.IsAtStart())
}

func TestPlainQuestionsParkOnTerminal(t *testing.T) {
	n := newNav(t, plainCatalog(t))

	n.SelectOption("a")
	assert.Equal(t, [2]int{1, 0}, position(n))

	n.SelectOption("c")
	assert.Equal(t, [2]int{1, 0}, position(n), "last question must not advance")
	assert.Equal(t, map[string]string{"1": "a", "2": "c"}, n.Answers())
}

func TestSubQuestionGroupAdvance(t *testing.T) {
	n := newNav(t, groupedCatalog(t))
	n.SelectOption("MALE")
	require.Equal(t, [2]int{1, 0}, position(n))

	v := n.CurrentView()
	require.Equal(t, ViewSub, v.Kind)
	assert.Equal(t, "education", v.SubQuestion.ID)

	n.SelectOption("go")
	assert.Equal(t, [2]int{1, 1}, position(n))

	n.SelectOption("go")
	assert.Equal(t, [2]int{2, 0}, position(n))

	answers := n.Answers()
	assert.Equal(t, "go", answers["4_education"])
	assert.Equal(t, "go", answers["4_experience"])
}

func TestSubQuestionGroupAsLastEntry(t *testing.T) {
	c, err := NewCatalog("", []Question{
		{ID: 1, Prompt: "Q", Options: []string{"x"}},
		{ID: 2, Prompt: "Group", SubQuestions: []SubQuestion{
			{ID: "a", Prompt: "A", Options: []string{"y"}},
			{ID: "b", Prompt: "B", Options: []string{"z"}},
		}},
	})
	require.NoError(t, err)
	n := newNav(t, c)

	n.SelectOption("x")
	n.SelectOption("y")
	n.SelectOption("z")
	assert.Equal(t, [2]int{1, 0}, position(n), "group exhausted on last entry resets to its first sub-question")
	assert.Len(t, n.Answers(), 3)
}

func TestGoToPrevious(t *testing.T) {
	tests := []struct {
		name    string
		forward []string
		want    [2]int
	}{
		{"no-op at start", nil, [2]int{0, 0}},
		{"within group", []string{"MALE", "go"}, [2]int{1, 0}},
		{"from group start to previous question", []string{"MALE"}, [2]int{0, 0}},
		{"from terminal to group start", []string{"MALE", "go", "go"}, [2]int{1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newNav(t, groupedCatalog(t))
			for _, opt := range tt.forward {
				n.SelectOption(opt)
			}
			n.GoToPrevious()
			assert.Equal(t, tt.want, position(n))
		})
	}
}

func TestGoToPreviousLandsOnFirstSubQuestion(t *testing.T) {
	c, err := NewCatalog("", []Question{
		{ID: 1, Prompt: "Group", SubQuestions: []SubQuestion{
			{ID: "a", Prompt: "A", Options: []string{"y"}},
			{ID: "b", Prompt: "B", Options: []string{"y"}},
			{ID: "c", Prompt: "C", Options: []string{"y"}},
		}},
		{ID: 2, Prompt: "After", Options: []string{"z"}},
		{ID: 3, Prompt: "End", LastStep: true},
	})
	require.NoError(t, err)
	n := newNav(t, c)
	for i := 0; i < 3; i++ {
		n.SelectOption("y")
	}
	require.Equal(t, [2]int{1, 0}, position(n))

	n.GoToPrevious()
	assert.Equal(t, [2]int{0, 0}, position(n))
	assert.Equal(t, "a", n.CurrentView().SubQuestion.ID)
}

func TestGoToPreviousKeepsAnswers(t *testing.T) {
	n := newNav(t, plainCatalog(t))
	n.SelectOption("a")
	n.GoToPrevious()
	got, ok := n.Answer("1")
	require.True(t, ok)
	assert.Equal(t, "a", got)
}

func TestOverwriteKeepsOneEntry(t *testing.T) {
	n := newNav(t, plainCatalog(t))
	n.SelectOption("a")
	n.GoToPrevious()
	n.SelectOption("b")

	answers := n.Answers()
	assert.Len(t, answers, 1)
	assert.Equal(t, "b", answers["1"])
}

func TestRecordAnswerDoesNotMove(t *testing.T) {
	n := newNav(t, plainCatalog(t))
	key := n.RecordAnswer("b")
	assert.Equal(t, "1", key)
	assert.Equal(t, [2]int{0, 0}, position(n))

	n.Advance()
	assert.Equal(t, [2]int{1, 0}, position(n))
}

func TestAnswersReturnsCopy(t *testing.T) {
	n := newNav(t, plainCatalog(t))
	n.SelectOption("a")
	answers := n.Answers()
	answers["1"] = "tampered"
	got, _ := n.Answer("1")
	assert.Equal(t, "a", got)
}

func TestProgressFraction(t *testing.T) {
	n := newNav(t, groupedCatalog(t))
	assert.InDelta(t, 1.0/3, n.ProgressFraction(), 1e-9)

	prev := n.ProgressFraction()
	for _, opt := range []string{"MALE", "go", "go"} {
		n.SelectOption(opt)
		got := n.ProgressFraction()
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
	assert.Equal(t, 1.0, n.ProgressFraction())
}

func TestProgressFractionSingleEntry(t *testing.T) {
	c, err := NewCatalog("", []Question{{ID: 1, Prompt: "Only", LastStep: true}})
	require.NoError(t, err)
	n := newNav(t, c)
	assert.Equal(t, 1.0, n.ProgressFraction())
	assert.True(t, n.IsLast())
}

func TestIsAtStart(t *testing.T) {
	n := newNav(t, groupedCatalog(t))
	assert.True(t, n.IsAtStart())

	n.SelectOption("FEMALE")
	assert.False(t, n.IsAtStart())

	n.SelectOption("go")
	assert.False(t, n.IsAtStart(), "sub-index 1 is not the start")

	n.GoToPrevious()
	n.GoToPrevious()
	assert.True(t, n.IsAtStart())
}

func TestIndicesStayInRange(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)
	n := newNav(t, c)

	for step := 0; step < 20; step++ {
		v := n.CurrentView()
		if choices := v.Choices(); len(choices) > 0 {
			n.SelectOption(choices[step%len(choices)])
		} else {
			n.Advance()
		}
		q, s := n.Position()
		require.Less(t, q, c.Len())
		if cur := c.Question(q); cur.HasSubQuestions() {
			require.Less(t, s, len(cur.SubQuestions))
		} else {
			require.Equal(t, 0, s)
		}
	}
	assert.True(t, n.IsLast())
}

func TestAnswerKeysDoNotCollide(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, k := range c.Keys() {
		require.False(t, seen[k], "duplicate key %q", k)
		seen[k] = true
	}
	assert.Equal(t, []string{"1", "2", "3", "4_education", "4_experience"}, c.Keys())
}

func TestCurrentViewTopLevel(t *testing.T) {
	n := newNav(t, groupedCatalog(t))
	v := n.CurrentView()
	assert.Equal(t, ViewTopLevel, v.Kind)
	assert.Nil(t, v.SubQuestion)
	assert.Equal(t, "1", v.Key())
	assert.Equal(t, []string{"MALE", "FEMALE", "Prefer not to say"}, v.Choices())
	assert.False(t, v.IsTerminal())
}

func TestRecap(t *testing.T) {
	n := newNav(t, groupedCatalog(t))
	n.SelectOption("Prefer not to say")
	n.SelectOption("go")

	lines := n.Recap()
	require.Len(t, lines, 2)
	assert.Equal(t, RecapLine{Key: "1", Prompt: "Gender?", Answer: "Prefer not to say"}, lines[0])
	assert.Equal(t, "4_education", lines[1].Key)
}

func TestIsTerminalRequiresNoChoices(t *testing.T) {
	withChoices := View{Kind: ViewTopLevel, Question: &Question{ID: 1, Prompt: "Q", Options: []string{"a"}, LastStep: true}}
	assert.False(t, withChoices.IsTerminal(), "options stay selectable on a last_step question")

	empty := View{Kind: ViewTopLevel, Question: &Question{ID: 2, Prompt: "Done", LastStep: true}}
	assert.True(t, empty.IsTerminal())

	// A final question with options is answered, not finished on.
	n := newNav(t, plainCatalog(t))
	n.SelectOption("a")
	require.True(t, n.IsLast())
	assert.False(t, n.CurrentView().IsTerminal())
}
