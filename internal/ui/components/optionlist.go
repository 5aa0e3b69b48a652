package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bilimpath/bilim/internal/ui/theme"
)

// OptionList is an answer-option selector. Unlike a graded choice widget
// it never reveals correctness; the chosen option is simply highlighted
// so the user can change their mind until the exam is submitted.
type OptionList struct {
	Options []string
	Cursor  int
	Chosen  int // -1 when nothing is chosen yet
}

// NewOptionList creates an option list with nothing chosen.
func NewOptionList(options []string) OptionList {
	return OptionList{
		Options: options,
		Cursor:  0,
		Chosen:  -1,
	}
}

// Update handles keyboard navigation and selection. It returns the index
// the user just chose, or -1 when the message did not choose anything.
func (o OptionList) Update(msg tea.Msg) (OptionList, int) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, -1
	}

	switch kmsg.String() {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
	case "down", "j":
		if o.Cursor < len(o.Options)-1 {
			o.Cursor++
		}
	case "enter", " ":
		o.Chosen = o.Cursor
		return o, o.Cursor
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(kmsg.String()[0] - '1')
		if idx < len(o.Options) {
			o.Cursor = idx
			o.Chosen = idx
			return o, idx
		}
	}

	return o, -1
}

// View renders the option list.
func (o OptionList) View() string {
	var s string
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Cursor {
			prefix = "▸ "
		}

		marker := "( )"
		if i == o.Chosen {
			marker = "(•)"
		}

		line := fmt.Sprintf("%s%s %d. %s", prefix, marker, i+1, opt)

		switch {
		case i == o.Chosen:
			s += theme.Selected.Render(line) + "\n"
		case i == o.Cursor:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return s
}
