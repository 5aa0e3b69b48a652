package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/bilimpath/bilim/internal/ui/theme"
)

// Button is a single-action control. Screens keep it in the layout and
// toggle Active as its precondition changes; an inactive button renders
// dimmed and ignores input.
type Button struct {
	Label   string
	Active  bool
	OnPress func() tea.Cmd
}

// Update fires OnPress on enter while the button is active.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || !b.Active || b.OnPress == nil {
		return b, nil
	}
	if key.Code == tea.KeyEnter {
		return b, b.OnPress()
	}
	return b, nil
}

// View renders the button as a pill, marked with ⏎ once it will act.
func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render(" ⏎ " + b.Label + " ")
	}
	return theme.ButtonInactive.Render("   " + b.Label + " ")
}
