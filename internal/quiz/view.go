package quiz

// ViewKind discriminates what the navigator is currently pointing at.
type ViewKind int

const (
	ViewTopLevel ViewKind = iota // a question answered directly
	ViewSub                      // one entry of a question's sub-question group
)

func (k ViewKind) String() string {
	switch k {
	case ViewTopLevel:
		return "top-level"
	case ViewSub:
		return "sub-question"
	default:
		return "unknown"
	}
}

// View is the navigator's current position resolved against the catalog.
// SubQuestion is nil unless Kind is ViewSub.
type View struct {
	Kind        ViewKind
	Question    *Question
	SubQuestion *SubQuestion
}

// Key returns the answer key selections on this view are stored under.
func (v View) Key() string {
	if v.Kind == ViewSub {
		return SubQuestionKey(v.Question, v.SubQuestion)
	}
	return QuestionKey(v.Question)
}

// Prompt returns the text to display as the question.
func (v View) Prompt() string {
	if v.Kind == ViewSub {
		return v.SubQuestion.Prompt
	}
	return v.Question.Prompt
}

// Description returns the optional helper text under the prompt.
func (v View) Description() string {
	if v.Kind == ViewSub {
		return v.SubQuestion.Description
	}
	return v.Question.Description
}

// Options returns the primary option labels.
func (v View) Options() []string {
	if v.Kind == ViewSub {
		return v.SubQuestion.Options
	}
	return v.Question.Options
}

// Prefer returns the "prefer not to say" label, if the view offers one.
// Sub-questions never do.
func (v View) Prefer() string {
	if v.Kind == ViewSub {
		return ""
	}
	return v.Question.Prefer
}

// Choices returns every selectable label in display order.
func (v View) Choices() []string {
	if v.Kind == ViewSub {
		return v.SubQuestion.Options
	}
	return v.Question.Choices()
}

// IsTerminal reports whether the view is a final step with nothing to pick.
// A question with choices is never terminal, whatever its last_step flag.
func (v View) IsTerminal() bool {
	return v.Kind == ViewTopLevel && len(v.Question.Choices()) == 0
}
