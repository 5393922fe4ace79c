package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/intake/internal/ui/theme"
)

// ChoiceList is a single-choice option list. The "prefer not to say" label,
// when present, is rendered last in a dimmer style.
type ChoiceList struct {
	Options []string
	Prefer  string
	Cursor  int
	Chosen  string // label recorded earlier for this question, if any
	Locked  bool   // a selection is being shown before the view changes
}

// NewChoiceList creates a list with the cursor on the previously chosen
// label, or on the first option.
func NewChoiceList(options []string, prefer, chosen string) ChoiceList {
	c := ChoiceList{Options: options, Prefer: prefer, Chosen: chosen}
	for i := 0; i < c.Len(); i++ {
		if c.Label(i) == chosen {
			c.Cursor = i
			break
		}
	}
	return c
}

// Len returns the number of selectable labels.
func (c ChoiceList) Len() int {
	if c.Prefer != "" {
		return len(c.Options) + 1
	}
	return len(c.Options)
}

// Label returns the label at index i.
func (c ChoiceList) Label(i int) string {
	if i == len(c.Options) && c.Prefer != "" {
		return c.Prefer
	}
	return c.Options[i]
}

// Current returns the label under the cursor.
func (c ChoiceList) Current() string {
	if c.Len() == 0 {
		return ""
	}
	return c.Label(c.Cursor)
}

// Move shifts the cursor by delta, clamped to the list.
func (c ChoiceList) Move(delta int) ChoiceList {
	if c.Locked || c.Len() == 0 {
		return c
	}
	c.Cursor += delta
	if c.Cursor < 0 {
		c.Cursor = 0
	}
	if c.Cursor > c.Len()-1 {
		c.Cursor = c.Len() - 1
	}
	return c
}

// View renders the list, one label per line.
func (c ChoiceList) View() string {
	var s string
	for i := 0; i < c.Len(); i++ {
		label := c.Label(i)
		isPrefer := c.Prefer != "" && i == len(c.Options)

		prefix := "  "
		if i == c.Cursor {
			prefix = "▸ "
		}
		mark := "  "
		if label == c.Chosen {
			mark = " ✓"
		}

		var line string
		if isPrefer {
			line = fmt.Sprintf("%s    %s%s", prefix, label, mark)
		} else {
			line = fmt.Sprintf("%s%d)  %s%s", prefix, i+1, label, mark)
		}

		switch {
		case label == c.Chosen && (c.Locked || i != c.Cursor):
			s += theme.Chosen.Render(line) + "\n"
		case i == c.Cursor:
			s += theme.Selected.Render(line) + "\n"
		case isPrefer:
			s += theme.Prefer.Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return s
}
