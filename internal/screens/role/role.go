// Package role is the entry screen: pick Student or Teacher before
// signing in. The chosen role flows into login, registration, and the
// stored session.
package role

import (
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bilimpath/bilim/internal/api"
	"github.com/bilimpath/bilim/internal/router"
	"github.com/bilimpath/bilim/internal/screen"
	"github.com/bilimpath/bilim/internal/screens/login"
	"github.com/bilimpath/bilim/internal/session"
	"github.com/bilimpath/bilim/internal/store"
	"github.com/bilimpath/bilim/internal/ui/components"
	"github.com/bilimpath/bilim/internal/ui/layout"
	"github.com/bilimpath/bilim/internal/ui/theme"
)

// RoleScreen lets the user choose how to sign in.
type RoleScreen struct {
	client   *api.Client
	sessions store.SessionRepo
	attempts store.AttemptRepo
	cur      *session.Session
	log      *slog.Logger
	menu     components.Menu
}

var _ screen.Screen = (*RoleScreen)(nil)
var _ screen.KeyHintProvider = (*RoleScreen)(nil)

// New creates the role selection screen.
func New(client *api.Client, sessions store.SessionRepo, attempts store.AttemptRepo, cur *session.Session, log *slog.Logger) *RoleScreen {
	s := &RoleScreen{
		client:   client,
		sessions: sessions,
		attempts: attempts,
		cur:      cur,
		log:      log,
	}
	s.menu = components.NewMenu([]components.MenuItem{
		{
			Label:       "Student",
			Description: "Practice subjects and take adaptive exams",
			Action:      s.pushLogin(session.RoleStudent),
		},
		{
			Label:       "Teacher",
			Description: "Sign in with an institution code",
			Action:      s.pushLogin(session.RoleTeacher),
		},
		{
			Label:  "Quit",
			Action: func() tea.Cmd { return tea.Quit },
		},
	})
	return s
}

func (s *RoleScreen) pushLogin(role session.Role) func() tea.Cmd {
	return func() tea.Cmd {
		next := login.New(s.client, s.sessions, s.attempts, s.cur, role, s.log)
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: next}
		}
	}
}

func (s *RoleScreen) Init() tea.Cmd {
	return nil
}

func (s *RoleScreen) Title() string {
	return "Welcome"
}

func (s *RoleScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
}

func (s *RoleScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *RoleScreen) View(width, height int) string {
	title := theme.Title.Render("BilimPath")
	subtitle := theme.Subtitle.Render("Adaptive learning, one exam at a time")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		subtitle,
		"",
		s.menu.View(),
	)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
