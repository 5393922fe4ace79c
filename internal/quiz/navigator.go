package quiz

import "maps"

// Navigator owns one questionnaire session: the position within the catalog
// and the answers recorded so far. It is not safe for concurrent use; a
// session has exactly one writer.
type Navigator struct {
	catalog  *Catalog
	question int
	sub      int
	answers  map[string]string
}

// New starts a session at the first question with no answers.
func New(catalog *Catalog) (*Navigator, error) {
	if catalog == nil || catalog.Len() == 0 {
		return nil, configErrorf("catalog must be non-empty")
	}
	return &Navigator{
		catalog: catalog,
		answers: make(map[string]string),
	}, nil
}

// Catalog returns the catalog the navigator walks.
func (n *Navigator) Catalog() *Catalog {
	return n.catalog
}

// Position returns the current question index and sub-question index.
func (n *Navigator) Position() (question, sub int) {
	return n.question, n.sub
}

func (n *Navigator) current() *Question {
	return n.catalog.Question(n.question)
}

// CurrentView resolves the position to the question (and sub-question) being
// asked.
func (n *Navigator) CurrentView() View {
	q := n.current()
	if q.HasSubQuestions() && n.sub < len(q.SubQuestions) {
		return View{Kind: ViewSub, Question: q, SubQuestion: &q.SubQuestions[n.sub]}
	}
	return View{Kind: ViewTopLevel, Question: q}
}

// ProgressFraction is (questionIndex+1)/len(catalog). Sub-questions do not
// move it.
func (n *Navigator) ProgressFraction() float64 {
	return float64(n.question+1) / float64(n.catalog.Len())
}

// IsAtStart reports whether the navigator is on the very first step, where
// there is nothing to go back to.
func (n *Navigator) IsAtStart() bool {
	return n.question == 0 && n.sub == 0
}

// IsLast reports whether the current question is the final catalog entry.
func (n *Navigator) IsLast() bool {
	return n.question == n.catalog.Len()-1
}

// SelectOption records option for the current view and moves forward.
func (n *Navigator) SelectOption(option string) {
	n.RecordAnswer(option)
	n.Advance()
}

// RecordAnswer stores option under the current view's key, overwriting any
// earlier answer, and returns the key. The position does not change.
func (n *Navigator) RecordAnswer(option string) string {
	key := n.CurrentView().Key()
	n.answers[key] = option
	return key
}

// Advance moves to the next sub-question, or past the current question once
// its group is exhausted. On the final catalog entry the position stays put.
func (n *Navigator) Advance() {
	q := n.current()
	if q.HasSubQuestions() {
		if n.sub < len(q.SubQuestions)-1 {
			n.sub++
			return
		}
		n.sub = 0
	}
	if n.question < n.catalog.Len()-1 {
		n.question++
		n.sub = 0
	}
}

// GoToPrevious steps back one sub-question, or to the previous question.
// Stepping back from a group's first sub-question lands on the previous
// question at sub-index 0, not on its last sub-question.
func (n *Navigator) GoToPrevious() {
	if n.current().HasSubQuestions() && n.sub > 0 {
		n.sub--
		return
	}
	if n.question > 0 {
		n.question--
		n.sub = 0
	}
}

// Answer returns the recorded option for key.
func (n *Navigator) Answer(key string) (string, bool) {
	v, ok := n.answers[key]
	return v, ok
}

// Answers returns a copy of every recorded answer.
func (n *Navigator) Answers() map[string]string {
	return maps.Clone(n.answers)
}
