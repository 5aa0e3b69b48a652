package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/bilimpath/bilim/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscInterceptor is an optional interface for screens that sometimes
// claim the esc key (e.g. to close a search box). When InterceptsEsc
// reports true the app forwards esc to the screen instead of popping
// navigation.
type EscInterceptor interface {
	InterceptsEsc() bool
}
