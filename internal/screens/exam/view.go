package exam

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	exm "github.com/bilimpath/bilim/internal/exam"
	"github.com/bilimpath/bilim/internal/progress"
	"github.com/bilimpath/bilim/internal/ui/components"
	"github.com/bilimpath/bilim/internal/ui/theme"
)

var spinFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (s *ExamScreen) View(width, height int) string {
	switch {
	case s.sess.Stage() == exm.StageLoading:
		return s.renderSpinner(width, height, "Generating your exam...")
	case s.sess.Empty():
		return s.renderFailOpen(width, height)
	case s.sess.Stage() == exm.StageResult:
		return s.renderResult(width, height)
	case s.submitting:
		return s.renderSpinner(width, height, "Grading your answers...")
	}
	return s.renderQuestion(width, height)
}

func (s *ExamScreen) renderSpinner(width, height int, text string) string {
	frame := spinFrames[s.spin%len(spinFrames)]
	line := lipgloss.NewStyle().Foreground(theme.Primary).Render(frame) +
		" " + theme.Hint.Render(text)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, line)
}

// renderFailOpen is the terminal state entered when generation failed:
// the error instead of a stuck spinner, with retry as the only way out.
func (s *ExamScreen) renderFailOpen(width, height int) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		theme.ErrorText.Render(s.errMsg),
		"",
		theme.Hint.Render("Press r to try again, or Esc to go back"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *ExamScreen) renderQuestion(width, height int) string {
	q := s.sess.CurrentQuestion()
	if q == nil {
		return ""
	}

	var b strings.Builder

	answered := 0
	for i := 0; i < s.sess.Total(); i++ {
		if _, ok := s.sess.Answer(i); ok {
			answered++
		}
	}

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + s.Title())
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  answered %d/%d",
			s.sess.Current+1, s.sess.Total(), answered, s.sess.Total()))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(0, width-4))))
	b.WriteString("\n\n")

	if q.TopicTitle != "" {
		b.WriteString("  " + theme.Hint.Render(q.TopicTitle) + "\n\n")
	}

	questionStyle := lipgloss.NewStyle().
		Width(width - 4).
		Foreground(theme.Text).
		Bold(true).
		PaddingLeft(2)
	b.WriteString(questionStyle.Render(q.Text))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(s.list.View()))
	b.WriteString("\n")

	if s.errMsg != "" {
		b.WriteString("  " + theme.ErrorText.Render(s.errMsg) + "\n")
	}

	finish := components.Button{Label: "Finish exam", Active: s.sess.CanFinish()}
	b.WriteString("\n  " + finish.View())
	if !s.sess.CanFinish() {
		b.WriteString("  " + theme.Hint.Render("answer every question to finish"))
	}

	return b.String()
}

func (s *ExamScreen) renderResult(width, height int) string {
	res := s.sess.Result
	if res == nil {
		return ""
	}

	var b strings.Builder

	score := int(math.Round(res.Score))
	scoreStyle := theme.Correct
	if progress.BandFor(res.Score, progress.SubjectThresholds) == progress.BandLow {
		scoreStyle = theme.Incorrect
	}

	b.WriteString("  " + theme.Title.Render(s.Title()) + "\n\n")
	b.WriteString("  " + scoreStyle.Render(fmt.Sprintf("Score: %d%%", score)))
	if res.TotalQuestions > 0 {
		b.WriteString("  " + theme.Hint.Render(fmt.Sprintf("(%d of %d correct)", res.CorrectCount, res.TotalQuestions)))
	}
	b.WriteString("\n\n")

	if s.flow == flowTopic {
		b.WriteString(s.renderReview())
	} else {
		b.WriteString(s.renderWeakTopics(res))
	}

	b.WriteString("\n  " + theme.Hint.Render("Press r to retry, Esc when you're done") + "\n")
	return b.String()
}

// renderReview shows the local per-question marks next to the server's
// aggregate score. The two are computed independently.
func (s *ExamScreen) renderReview() string {
	var b strings.Builder
	for _, m := range s.sess.Review() {
		mark := theme.Incorrect.Render("✕")
		if m.Correct {
			mark = theme.Correct.Render("✓")
		}
		line := fmt.Sprintf("  %s  %d. %s", mark, m.Index+1, m.Question)
		b.WriteString(line + "\n")
	}

	if res := s.sess.Result; res != nil && res.Analysis != nil {
		a := res.Analysis
		if a.Explanation != "" {
			b.WriteString("\n  " + theme.Body.Bold(true).Render("What happened") + "\n")
			b.WriteString("  " + theme.Body.Render(a.Explanation) + "\n")
		}
		if a.Recommendation != "" {
			b.WriteString("\n  " + theme.Body.Bold(true).Render("What to do next") + "\n")
			b.WriteString("  " + theme.Body.Render(a.Recommendation) + "\n")
		}
		if len(a.WeakTopics) > 0 {
			b.WriteString("\n  " + theme.Body.Bold(true).Render("Weak spots") + "\n")
			for _, t := range a.WeakTopics {
				b.WriteString("  • " + theme.Body.Render(t) + "\n")
			}
		}
	}
	return b.String()
}

// renderWeakTopics shows the server-flagged weak topics, capped at three.
func (s *ExamScreen) renderWeakTopics(res *exm.Result) string {
	weak := res.TopWeakTopics(3)
	if len(weak) == 0 {
		return "  " + theme.Hint.Render("No weak topics flagged. Keep it up!") + "\n"
	}

	var b strings.Builder
	b.WriteString("  " + theme.Body.Bold(true).Render("Focus on these topics") + "\n")
	for _, w := range weak {
		badge := components.MasteryBadge(w.MasteryLevel, true, progress.TopicThresholds)
		b.WriteString(fmt.Sprintf("  • %s  %s\n", theme.Body.Render(w.TopicTitle), badge))
	}
	return b.String()
}
