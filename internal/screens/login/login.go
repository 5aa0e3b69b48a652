// Package login is the sign-in form for the chosen role.
package login

import (
	"context"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bilimpath/bilim/internal/api"
	"github.com/bilimpath/bilim/internal/router"
	"github.com/bilimpath/bilim/internal/screen"
	"github.com/bilimpath/bilim/internal/screens/register"
	"github.com/bilimpath/bilim/internal/screens/subjects"
	"github.com/bilimpath/bilim/internal/session"
	"github.com/bilimpath/bilim/internal/store"
	"github.com/bilimpath/bilim/internal/ui/components"
	"github.com/bilimpath/bilim/internal/ui/layout"
	"github.com/bilimpath/bilim/internal/ui/theme"
)

const (
	fieldEmail = iota
	fieldPassword
	fieldCount
)

// LoginScreen collects credentials and signs the user in.
type LoginScreen struct {
	client   *api.Client
	sessions store.SessionRepo
	attempts store.AttemptRepo
	cur      *session.Session
	role     session.Role
	log      *slog.Logger

	inputs  []components.TextInput
	focus   int
	loading bool
	errMsg  string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a sign-in screen for the given role.
func New(client *api.Client, sessions store.SessionRepo, attempts store.AttemptRepo, cur *session.Session, role session.Role, log *slog.Logger) *LoginScreen {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	inputs := []components.TextInput{
		components.NewTextInput("Email", "you@school.kz", false, 64),
		components.NewTextInput("Password", "", true, 64),
	}
	return &LoginScreen{
		client:   client,
		sessions: sessions,
		attempts: attempts,
		cur:      cur,
		role:     role,
		log:      log,
		inputs:   inputs,
	}
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.inputs[fieldEmail].Focus()
}

func (s *LoginScreen) Title() string {
	return "Sign in"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Sign in"},
		{Key: "Ctrl+R", Description: "Register"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case signedInMsg:
		return s.handleSignedIn(msg)

	case tea.KeyMsg:
		if s.loading {
			return s, nil
		}
		switch msg.String() {
		case "tab", "down":
			return s, s.setFocus((s.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
		case "enter":
			return s, s.submit()
		case "ctrl+r":
			next := register.New(s.client, s.sessions, s.attempts, s.cur, s.role, s.log)
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: next}
			}
		}
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s *LoginScreen) setFocus(i int) tea.Cmd {
	s.inputs[s.focus].Blur()
	s.focus = i
	return s.inputs[s.focus].Focus()
}

// submit validates locally before any request goes out.
func (s *LoginScreen) submit() tea.Cmd {
	email := strings.TrimSpace(s.inputs[fieldEmail].Value())
	password := s.inputs[fieldPassword].Value()

	if email == "" || password == "" {
		s.errMsg = "Enter your email and password"
		return nil
	}

	s.errMsg = ""
	s.loading = true
	client, role := s.client, s.role
	return func() tea.Msg {
		tok, err := client.Login(context.Background(), email, password)
		if err != nil {
			return signedInMsg{Err: err}
		}
		return signedInMsg{Session: session.New(tok.AccessToken, tok.TokenType, role)}
	}
}

func (s *LoginScreen) handleSignedIn(msg signedInMsg) (screen.Screen, tea.Cmd) {
	s.loading = false
	if msg.Err != nil {
		s.errMsg = api.Message(msg.Err)
		return s, nil
	}

	*s.cur = msg.Session
	if err := s.sessions.Save(context.Background(), msg.Session); err != nil {
		s.log.Warn("could not persist session", "error", err)
	}

	next := subjects.New(s.client, s.sessions, s.attempts, s.cur, s.log)
	return s, func() tea.Msg {
		return router.ResetScreenMsg{Screen: next}
	}
}

func (s *LoginScreen) View(width, height int) string {
	title := theme.Title.Render("Sign in as " + roleLabel(s.role))

	var rows []string
	rows = append(rows, title, "")
	for i := range s.inputs {
		rows = append(rows, s.inputs[i].View(), "")
	}

	if s.loading {
		rows = append(rows, theme.Hint.Render("Signing in..."))
	} else if s.errMsg != "" {
		rows = append(rows, theme.ErrorText.Render(s.errMsg))
	} else {
		rows = append(rows, theme.Hint.Render("No account yet? Press Ctrl+R to register"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func roleLabel(r session.Role) string {
	if r == session.RoleTeacher {
		return "a teacher"
	}
	return "a student"
}
