package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bilimpath/bilim/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with BilimPath styling and an optional
// field label for form layouts.
type TextInput struct {
	Model    textinput.Model
	Label    string
	Password bool
}

// NewTextInput creates a new styled text input.
func NewTextInput(label, placeholder string, password bool, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	if password {
		ti.EchoMode = textinput.EchoPassword
	}

	return TextInput{
		Model:    ti,
		Label:    label,
		Password: password,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return nil
}

// Focus gives the input keyboard focus.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the input with its label.
func (t TextInput) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if t.Focused() {
		labelStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}

	out := ""
	if t.Label != "" {
		out = labelStyle.Render(t.Label) + "\n"
	}
	return out + t.Model.View()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}
