// Package register is the account creation form. A successful
// registration immediately signs the new account in so the user lands
// on their subjects without typing the credentials twice.
package register

import (
	"context"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bilimpath/bilim/internal/api"
	"github.com/bilimpath/bilim/internal/router"
	"github.com/bilimpath/bilim/internal/screen"
	"github.com/bilimpath/bilim/internal/screens/subjects"
	"github.com/bilimpath/bilim/internal/session"
	"github.com/bilimpath/bilim/internal/store"
	"github.com/bilimpath/bilim/internal/ui/components"
	"github.com/bilimpath/bilim/internal/ui/layout"
	"github.com/bilimpath/bilim/internal/ui/theme"
)

const (
	fieldName = iota
	fieldEmail
	fieldCode
	fieldPassword
	fieldCount
)

const minPasswordLen = 6

// RegisterScreen collects the new account details for the chosen role.
type RegisterScreen struct {
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

var _ screen.Screen = (*RegisterScreen)(nil)
var _ screen.KeyHintProvider = (*RegisterScreen)(nil)

// New creates a registration screen for the given role.
func New(client *api.Client, sessions store.SessionRepo, attempts store.AttemptRepo, cur *session.Session, role session.Role, log *slog.Logger) *RegisterScreen {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	codeLabel := "Invite code"
	if role == session.RoleTeacher {
		codeLabel = "Institution code"
	}
	inputs := []components.TextInput{
		components.NewTextInput("Full name", "", false, 64),
		components.NewTextInput("Email", "you@school.kz", false, 64),
		components.NewTextInput(codeLabel, "", false, 32),
		components.NewTextInput("Password", "at least 6 characters", true, 64),
	}
	return &RegisterScreen{
		client:   client,
		sessions: sessions,
		attempts: attempts,
		cur:      cur,
		role:     role,
		log:      log,
		inputs:   inputs,
	}
}

func (s *RegisterScreen) Init() tea.Cmd {
	return s.inputs[fieldName].Focus()
}

func (s *RegisterScreen) Title() string {
	return "Register"
}

func (s *RegisterScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Create account"},
		{Key: "Esc", Description: "Back to sign in"},
	}
}

func (s *RegisterScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case registeredMsg:
		return s.handleRegistered(msg)

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
		}
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s *RegisterScreen) setFocus(i int) tea.Cmd {
	s.inputs[s.focus].Blur()
	s.focus = i
	return s.inputs[s.focus].Focus()
}

// submit validates locally before any request goes out.
func (s *RegisterScreen) submit() tea.Cmd {
	name := strings.TrimSpace(s.inputs[fieldName].Value())
	email := strings.TrimSpace(s.inputs[fieldEmail].Value())
	code := strings.TrimSpace(s.inputs[fieldCode].Value())
	password := s.inputs[fieldPassword].Value()

	switch {
	case name == "" || email == "" || code == "" || password == "":
		s.errMsg = "All fields are required"
		return nil
	case !strings.Contains(email, "@"):
		s.errMsg = "That does not look like an email address"
		return nil
	case len(password) < minPasswordLen:
		s.errMsg = "Password must be at least 6 characters"
		return nil
	}

	in := api.RegisterInput{
		Email:    email,
		Password: password,
		FullName: name,
		Role:     s.role,
	}
	if s.role == session.RoleTeacher {
		in.InstitutionCode = code
	} else {
		in.InviteCode = code
	}

	s.errMsg = ""
	s.loading = true
	client, role := s.client, s.role
	return func() tea.Msg {
		ctx := context.Background()
		if err := client.Register(ctx, in); err != nil {
			return registeredMsg{Err: err}
		}
		tok, err := client.Login(ctx, email, password)
		if err != nil {
			return registeredMsg{Err: err, SignInFailed: true}
		}
		return registeredMsg{Session: session.New(tok.AccessToken, tok.TokenType, role)}
	}
}

func (s *RegisterScreen) handleRegistered(msg registeredMsg) (screen.Screen, tea.Cmd) {
	s.loading = false
	if msg.Err != nil {
		if msg.SignInFailed {
			s.errMsg = "Account created, but sign-in failed. Please sign in manually."
		} else {
			s.errMsg = api.Message(msg.Err)
		}
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

func (s *RegisterScreen) View(width, height int) string {
	title := theme.Title.Render("Create your account")

	var rows []string
	rows = append(rows, title, "")
	for i := range s.inputs {
		rows = append(rows, s.inputs[i].View(), "")
	}

	if s.loading {
		rows = append(rows, theme.Hint.Render("Creating your account..."))
	} else if s.errMsg != "" {
		rows = append(rows, theme.ErrorText.Render(s.errMsg))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
