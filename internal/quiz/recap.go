package quiz

// RecapLine is one answered question, for display on the terminal step.
type RecapLine struct {
	Key    string
	Prompt string
	Answer string
}

// Recap lists the recorded answers in catalog order. Unanswered keys are
// skipped.
func (n *Navigator) Recap() []RecapLine {
	var lines []RecapLine
	for i := 0; i < n.catalog.Len(); i++ {
		q := n.catalog.Question(i)
		if !q.HasSubQuestions() {
			key := QuestionKey(q)
			if a, ok := n.answers[key]; ok {
				lines = append(lines, RecapLine{Key: key, Prompt: q.Prompt, Answer: a})
			}
			continue
		}
		for j := range q.SubQuestions {
			s := &q.SubQuestions[j]
			key := SubQuestionKey(q, s)
			if a, ok := n.answers[key]; ok {
				lines = append(lines, RecapLine{Key: key, Prompt: s.Prompt, Answer: a})
			}
		}
	}
	return lines
}
