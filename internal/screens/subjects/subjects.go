// Package subjects is the home screen after sign-in: every subject the
// user studies, with an averaged mastery badge, text search, and mastery
// sorting.
package subjects

import (
	"context"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bilimpath/bilim/internal/api"
	"github.com/bilimpath/bilim/internal/progress"
	"github.com/bilimpath/bilim/internal/router"
	"github.com/bilimpath/bilim/internal/screen"
	"github.com/bilimpath/bilim/internal/screens/topics"
	"github.com/bilimpath/bilim/internal/session"
	"github.com/bilimpath/bilim/internal/store"
	"github.com/bilimpath/bilim/internal/ui/components"
	"github.com/bilimpath/bilim/internal/ui/layout"
	"github.com/bilimpath/bilim/internal/ui/theme"
)

// SubjectsScreen lists the user's subjects with aggregated mastery.
type SubjectsScreen struct {
	client   *api.Client
	sessions store.SessionRepo
	attempts store.AttemptRepo
	cur      *session.Session
	log      *slog.Logger

	subjects []progress.Subject
	views    []progress.SubjectView
	sortMode progress.SortMode
	search   components.TextInput
	cursor   int
	loading  bool
	errMsg   string
}

var _ screen.Screen = (*SubjectsScreen)(nil)
var _ screen.KeyHintProvider = (*SubjectsScreen)(nil)
var _ screen.EscInterceptor = (*SubjectsScreen)(nil)

// New creates the subjects screen.
func New(client *api.Client, sessions store.SessionRepo, attempts store.AttemptRepo, cur *session.Session, log *slog.Logger) *SubjectsScreen {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &SubjectsScreen{
		client:   client,
		sessions: sessions,
		attempts: attempts,
		cur:      cur,
		log:      log,
		search:   components.NewTextInput("", "Search subjects...", false, 48),
		loading:  true,
	}
}

func (s *SubjectsScreen) Init() tea.Cmd {
	if !s.cur.Valid() {
		return func() tea.Msg { return session.ExpiredMsg{} }
	}
	return s.load()
}

func (s *SubjectsScreen) Title() string {
	return "Subjects"
}

func (s *SubjectsScreen) KeyHints() []layout.KeyHint {
	if s.search.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Clear search"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "/", Description: "Search"},
		{Key: "s", Description: "Sort"},
		{Key: "Ctrl+L", Description: "Log out"},
	}
}

func (s *SubjectsScreen) InterceptsEsc() bool {
	return s.search.Focused()
}

// load fetches my-progress. The session is captured by value so a logout
// that races the response cannot change what was sent.
func (s *SubjectsScreen) load() tea.Cmd {
	s.loading = true
	s.errMsg = ""
	client, sess := s.client, *s.cur
	return func() tea.Msg {
		subjects, err := client.MyProgress(context.Background(), sess)
		return progressLoadedMsg{Subjects: subjects, Err: err}
	}
}

func (s *SubjectsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case progressLoadedMsg:
		s.loading = false
		if msg.Err != nil {
			s.errMsg = api.Message(msg.Err)
			return s, nil
		}
		s.subjects = msg.Subjects
		s.views = progress.BuildSubjectViews(msg.Subjects)
		s.cursor = 0
		return s, nil

	case loggedOutMsg:
		return s, func() tea.Msg { return session.ExpiredMsg{} }

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *SubjectsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.search.Focused() {
		switch msg.String() {
		case "esc":
			s.search.Blur()
			s.search.Model.SetValue("")
			s.cursor = 0
			return s, nil
		case "enter":
			s.search.Blur()
			s.cursor = 0
			return s, nil
		}
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		s.cursor = 0
		return s, cmd
	}

	switch msg.String() {
	case "/":
		return s, s.search.Focus()
	case "s":
		s.sortMode = progress.NextTriState(s.sortMode)
		s.cursor = 0
		return s, nil
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.visible())-1 {
			s.cursor++
		}
	case "r":
		if !s.loading {
			return s, s.load()
		}
	case "enter":
		return s, s.openSelected()
	case "ctrl+l":
		return s, s.logout()
	}
	return s, nil
}

// visible applies the filter and sort to the loaded views.
func (s *SubjectsScreen) visible() []progress.SubjectView {
	filtered := progress.FilterSubjects(s.views, s.search.Value())
	return progress.SortSubjectViews(filtered, s.sortMode)
}

func (s *SubjectsScreen) openSelected() tea.Cmd {
	visible := s.visible()
	if s.cursor < 0 || s.cursor >= len(visible) {
		return nil
	}
	subject := progress.FindSubject(s.subjects, visible[s.cursor].ID)
	if subject == nil {
		return nil
	}
	next := topics.New(s.client, s.attempts, s.cur, *subject, s.log)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (s *SubjectsScreen) logout() tea.Cmd {
	s.cur.Clear()
	sessions := s.sessions
	return func() tea.Msg {
		if err := sessions.Clear(context.Background()); err != nil {
			s.log.Warn("could not clear stored session", "error", err)
		}
		return loggedOutMsg{}
	}
}

func (s *SubjectsScreen) View(width, height int) string {
	if s.loading {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Loading your subjects..."))
	}
	if s.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Center,
				theme.ErrorText.Render(s.errMsg),
				"",
				theme.Hint.Render("Press r to retry")))
	}

	var rows []string

	header := theme.Body.Bold(true).Render("Your subjects") +
		"  " + theme.Hint.Render("mastery "+s.sortMode.Indicator())
	rows = append(rows, header, "")

	if s.search.Focused() || s.search.Value() != "" {
		rows = append(rows, s.search.View(), "")
	}

	visible := s.visible()
	switch {
	case len(s.views) == 0:
		rows = append(rows, theme.Hint.Render("No subjects yet. Ask your teacher to add you to a class."))
	case len(visible) == 0:
		rows = append(rows, theme.Hint.Render("No subjects match your search."))
	default:
		for i, v := range visible {
			rows = append(rows, s.renderRow(v, i == s.cursor, width))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

func (s *SubjectsScreen) renderRow(v progress.SubjectView, selected bool, width int) string {
	prefix := "  "
	nameStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if selected {
		prefix = "▸ "
		nameStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}

	name := v.Name
	if name == "" {
		name = fmt.Sprintf("Subject #%s", v.ID)
	}

	const nameWidth = 36
	padded := components.Fit(name, nameWidth)

	badge := components.MasteryBadge(v.Mastery, v.HasMastery, progress.SubjectThresholds)
	bar := components.MasteryBar(v.Mastery, v.HasMastery, progress.SubjectThresholds, 20)

	return prefix + nameStyle.Render(padded) + "  " + badge + "  " + bar
}
