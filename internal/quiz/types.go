package quiz

import "strconv"

// SubQuestion is one entry of a question's nested group.
type SubQuestion struct {
	ID          string   `yaml:"id"`
	Prompt      string   `yaml:"question"`
	Description string   `yaml:"description,omitempty"`
	Options     []string `yaml:"options"`
}

// Question is a single catalog entry.
type Question struct {
	ID           int           `yaml:"id"`
	Prompt       string        `yaml:"question"`
	Description  string        `yaml:"description,omitempty"`
	Options      []string      `yaml:"options,omitempty"`
	Prefer       string        `yaml:"prefer,omitempty"`
	LastStep     bool          `yaml:"last_step,omitempty"`
	SubQuestions []SubQuestion `yaml:"sub_questions,omitempty"`
}

// HasSubQuestions reports whether the question is answered through its
// sub-question group rather than directly.
func (q *Question) HasSubQuestions() bool {
	return len(q.SubQuestions) > 0
}

// Choices returns the selectable labels in display order, with the
// "prefer not to say" label last.
func (q *Question) Choices() []string {
	choices := make([]string, 0, len(q.Options)+1)
	choices = append(choices, q.Options...)
	if q.Prefer != "" {
		choices = append(choices, q.Prefer)
	}
	return choices
}

// QuestionKey is the answer key of a top-level question.
func QuestionKey(q *Question) string {
	return strconv.Itoa(q.ID)
}

// SubQuestionKey is the answer key of a sub-question: the parent id and the
// sub-question id joined by an underscore.
func SubQuestionKey(q *Question, s *SubQuestion) string {
	return strconv.Itoa(q.ID) + "_" + s.ID
}
