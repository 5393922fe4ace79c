package quiz

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Catalog is the fixed, ordered list of questions for one questionnaire.
type Catalog struct {
	Title     string
	questions []Question
}

type catalogFile struct {
	Title     string     `yaml:"title"`
	Questions []Question `yaml:"questions"`
}

// NewCatalog checks the questions and returns a catalog that owns a copy of
// them. Question ids must be strictly increasing since they define order.
func NewCatalog(title string, questions []Question) (*Catalog, error) {
	if len(questions) == 0 {
		return nil, configErrorf("catalog must be non-empty")
	}

	for i := range questions {
		q := &questions[i]
		if i > 0 && q.ID <= questions[i-1].ID {
			return nil, configErrorf("question %d: ids must be strictly increasing (previous %d)", q.ID, questions[i-1].ID)
		}
		if err := checkQuestion(q, i == len(questions)-1); err != nil {
			return nil, err
		}
	}

	owned := make([]Question, len(questions))
	for i, q := range questions {
		q.Options = append([]string(nil), q.Options...)
		q.SubQuestions = append([]SubQuestion(nil), q.SubQuestions...)
		for j := range q.SubQuestions {
			q.SubQuestions[j].Options = append([]string(nil), q.SubQuestions[j].Options...)
		}
		owned[i] = q
	}

	return &Catalog{Title: title, questions: owned}, nil
}

func checkQuestion(q *Question, last bool) error {
	if q.Prompt == "" {
		return configErrorf("question %d: prompt is empty", q.ID)
	}

	if q.LastStep {
		if !last {
			return configErrorf("question %d: last_step is only allowed on the final question", q.ID)
		}
		if q.HasSubQuestions() || len(q.Choices()) > 0 {
			return configErrorf("question %d: a last_step question cannot offer options", q.ID)
		}
	}

	if q.HasSubQuestions() {
		if len(q.Options) > 0 || q.Prefer != "" {
			return configErrorf("question %d: a question with sub-questions cannot carry its own options", q.ID)
		}
		seen := make(map[string]bool, len(q.SubQuestions))
		for _, s := range q.SubQuestions {
			if s.ID == "" {
				return configErrorf("question %d: sub-question id is empty", q.ID)
			}
			if seen[s.ID] {
				return configErrorf("question %d: duplicate sub-question id %q", q.ID, s.ID)
			}
			seen[s.ID] = true
			if s.Prompt == "" {
				return configErrorf("question %s: prompt is empty", SubQuestionKey(q, &s))
			}
			if len(s.Options) == 0 {
				return configErrorf("question %s: sub-question needs at least one option", SubQuestionKey(q, &s))
			}
			if dup := firstDuplicate(s.Options); dup != "" {
				return configErrorf("question %s: duplicate option %q", SubQuestionKey(q, &s), dup)
			}
		}
		return nil
	}

	choices := q.Choices()
	if len(choices) == 0 && !q.LastStep && !last {
		return configErrorf("question %d: no options and not a terminal step", q.ID)
	}
	if dup := firstDuplicate(choices); dup != "" {
		return configErrorf("question %d: duplicate option %q", q.ID, dup)
	}
	return nil
}

func firstDuplicate(labels []string) string {
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		if seen[l] {
			return l
		}
		seen[l] = true
	}
	return ""
}

// DefaultCatalog returns the embedded onboarding questionnaire.
func DefaultCatalog() (*Catalog, error) {
	c, err := ParseCatalog(defaultCatalogYAML)
	if err != nil {
		return nil, withSource(err, "embedded")
	}
	return c, nil
}

// LoadCatalog reads and validates a YAML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, withSource(err, path)
	}
	return c, nil
}

// ParseCatalog validates YAML catalog bytes against the catalog schema and
// the ordering rules, then builds the catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ConfigError{Msg: "invalid YAML", Err: err}
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var file catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, &ConfigError{Msg: "decode", Err: err}
	}
	return NewCatalog(file.Title, file.Questions)
}

func withSource(err error, source string) error {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) && cfgErr.Source == "" {
		cfgErr.Source = source
	}
	return err
}

// Len returns the number of top-level questions.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// Question returns the question at index i. The returned pointer must not be
// modified.
func (c *Catalog) Question(i int) *Question {
	return &c.questions[i]
}

// Keys returns every answer key the catalog can produce, in catalog order.
func (c *Catalog) Keys() []string {
	var keys []string
	for i := range c.questions {
		q := &c.questions[i]
		if !q.HasSubQuestions() {
			if len(q.Choices()) > 0 {
				keys = append(keys, QuestionKey(q))
			}
			continue
		}
		for j := range q.SubQuestions {
			keys = append(keys, SubQuestionKey(q, &q.SubQuestions[j]))
		}
	}
	return keys
}

// PromptFor returns the prompt shown for an answer key.
func (c *Catalog) PromptFor(key string) (string, bool) {
	for i := range c.questions {
		q := &c.questions[i]
		if !q.HasSubQuestions() {
			if QuestionKey(q) == key {
				return q.Prompt, true
			}
			continue
		}
		for j := range q.SubQuestions {
			if SubQuestionKey(q, &q.SubQuestions[j]) == key {
				return q.SubQuestions[j].Prompt, true
			}
		}
	}
	return "", false
}

// MarshalJSON renders the catalog in the same shape as the YAML source.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	type jsonSub struct {
		ID          string   `json:"id"`
		Prompt      string   `json:"question"`
		Description string   `json:"description,omitempty"`
		Options     []string `json:"options"`
	}
	type jsonQuestion struct {
		ID           int       `json:"id"`
		Prompt       string    `json:"question"`
		Description  string    `json:"description,omitempty"`
		Options      []string  `json:"options,omitempty"`
		Prefer       string    `json:"prefer,omitempty"`
		LastStep     bool      `json:"last_step,omitempty"`
		SubQuestions []jsonSub `json:"sub_questions,omitempty"`
	}

	out := struct {
		Title     string         `json:"title,omitempty"`
		Questions []jsonQuestion `json:"questions"`
	}{Title: c.Title}
	for _, q := range c.questions {
		jq := jsonQuestion{
			ID:          q.ID,
			Prompt:      q.Prompt,
			Description: q.Description,
			Options:     q.Options,
			Prefer:      q.Prefer,
			LastStep:    q.LastStep,
		}
		for _, s := range q.SubQuestions {
			jq.SubQuestions = append(jq.SubQuestions, jsonSub(s))
		}
		out.Questions = append(out.Questions, jq)
	}
	return json.Marshal(out)
}
