// Package topics lists one subject's topics with per-topic mastery. From
// here the user starts a topic exam (enter on a topic) or a subject-wide
// exam with a named difficulty (x).
package topics

import (
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bilimpath/bilim/internal/api"
	exm "github.com/bilimpath/bilim/internal/exam"
	"github.com/bilimpath/bilim/internal/progress"
	"github.com/bilimpath/bilim/internal/router"
	"github.com/bilimpath/bilim/internal/screen"
	examscr "github.com/bilimpath/bilim/internal/screens/exam"
	"github.com/bilimpath/bilim/internal/session"
	"github.com/bilimpath/bilim/internal/store"
	"github.com/bilimpath/bilim/internal/ui/components"
	"github.com/bilimpath/bilim/internal/ui/layout"
	"github.com/bilimpath/bilim/internal/ui/theme"
)

// subjectExamQuestions is the fixed size of a subject-wide exam.
const subjectExamQuestions = 8

// TopicsScreen lists the topics of one subject.
type TopicsScreen struct {
	client   *api.Client
	attempts store.AttemptRepo
	cur      *session.Session
	subject  progress.Subject
	log      *slog.Logger

	sortMode   progress.SortMode
	search     components.TextInput
	cursor     int
	difficulty int // index into exm.AllNamed()
}

var _ screen.Screen = (*TopicsScreen)(nil)
var _ screen.KeyHintProvider = (*TopicsScreen)(nil)
var _ screen.EscInterceptor = (*TopicsScreen)(nil)

// New creates the topic list for a subject.
func New(client *api.Client, attempts store.AttemptRepo, cur *session.Session, subject progress.Subject, log *slog.Logger) *TopicsScreen {
	return &TopicsScreen{
		client:     client,
		attempts:   attempts,
		cur:        cur,
		subject:    subject,
		log:        log,
		search:     components.NewTextInput("", "Search topics...", false, 48),
		difficulty: 1, // medium
	}
}

func (s *TopicsScreen) Init() tea.Cmd {
	return nil
}

func (s *TopicsScreen) Title() string {
	return s.subjectName()
}

func (s *TopicsScreen) subjectName() string {
	if s.subject.Name != "" {
		return s.subject.Name
	}
	return fmt.Sprintf("Subject #%s", s.subject.ID)
}

func (s *TopicsScreen) KeyHints() []layout.KeyHint {
	if s.search.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Clear search"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Topic exam"},
		{Key: "x", Description: "Subject exam"},
		{Key: "d", Description: "Difficulty"},
		{Key: "/", Description: "Search"},
		{Key: "s", Description: "Sort"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TopicsScreen) InterceptsEsc() bool {
	return s.search.Focused()
}

func (s *TopicsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.search.Focused() {
		switch kmsg.String() {
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

	switch kmsg.String() {
	case "/":
		return s, s.search.Focus()
	case "s":
		s.sortMode = progress.NextBiState(s.sortMode)
		s.cursor = 0
	case "d":
		s.difficulty = (s.difficulty + 1) % len(exm.AllNamed())
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.visible())-1 {
			s.cursor++
		}
	case "enter":
		return s, s.startTopicExam()
	case "x":
		return s, s.startSubjectExam()
	}
	return s, nil
}

// visible applies the filter and sort to the subject's topics.
func (s *TopicsScreen) visible() []progress.Topic {
	filtered := progress.FilterTopics(s.subject.Topics, s.search.Value())
	return progress.SortTopics(filtered, s.sortMode)
}

func (s *TopicsScreen) startTopicExam() tea.Cmd {
	visible := s.visible()
	if s.cursor < 0 || s.cursor >= len(visible) {
		return nil
	}
	topic := visible[s.cursor]
	next := examscr.NewTopicFlow(s.client, s.attempts, s.cur, topic, exm.DefaultLevel, s.log)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (s *TopicsScreen) startSubjectExam() tea.Cmd {
	difficulty := exm.AllNamed()[s.difficulty]
	next := examscr.NewSubjectFlow(s.client, s.attempts, s.cur, s.subject, difficulty, subjectExamQuestions, s.log)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (s *TopicsScreen) View(width, height int) string {
	var rows []string

	header := theme.Body.Bold(true).Render(s.subjectName()) +
		"  " + theme.Hint.Render("mastery "+s.sortMode.Indicator())
	rows = append(rows, header, "")

	rows = append(rows, s.renderChips(), "")

	if s.search.Focused() || s.search.Value() != "" {
		rows = append(rows, s.search.View(), "")
	}

	visible := s.visible()
	switch {
	case len(s.subject.Topics) == 0:
		rows = append(rows, theme.Hint.Render("This subject has no topics yet."))
	case len(visible) == 0:
		rows = append(rows, theme.Hint.Render("No topics match your search."))
	default:
		for i, t := range visible {
			rows = append(rows, s.renderRow(t, i == s.cursor))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

// renderChips shows the named difficulty used by the subject-wide exam.
func (s *TopicsScreen) renderChips() string {
	parts := []string{theme.Hint.Render("Subject exam:")}
	for i, n := range exm.AllNamed() {
		style := theme.ChipInactive
		if i == s.difficulty {
			style = theme.ChipActive
		}
		parts = append(parts, style.Render(n.Label()))
	}
	return strings.Join(parts, " ")
}

func (s *TopicsScreen) renderRow(t progress.Topic, selected bool) string {
	prefix := "  "
	titleStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if selected {
		prefix = "▸ "
		titleStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}

	const titleWidth = 40
	padded := components.Fit(t.Title, titleWidth)

	badge := components.MasteryBadge(t.MasteryLevel, true, progress.TopicThresholds)
	bar := components.MasteryBar(t.MasteryLevel, true, progress.TopicThresholds, 16)

	return prefix + titleStyle.Render(padded) + "  " + badge + "  " + bar
}
