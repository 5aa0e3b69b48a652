// Package exam drives one exam attempt end to end: generate, answer,
// submit, review. One screen serves both wire flows; the flow decides
// which generate/submit calls run and how answers are keyed.
package exam

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/bilimpath/bilim/internal/api"
	exm "github.com/bilimpath/bilim/internal/exam"
	"github.com/bilimpath/bilim/internal/progress"
	"github.com/bilimpath/bilim/internal/screen"
	"github.com/bilimpath/bilim/internal/session"
	"github.com/bilimpath/bilim/internal/store"
	"github.com/bilimpath/bilim/internal/ui/components"
	"github.com/bilimpath/bilim/internal/ui/layout"
)

const spinInterval = 120 * time.Millisecond

type flowKind int

const (
	flowTopic flowKind = iota
	flowSubject
)

// ExamScreen runs one attempt of either exam flow.
type ExamScreen struct {
	client   *api.Client
	attempts store.AttemptRepo
	cur      *session.Session
	log      *slog.Logger

	flow         flowKind
	topic        progress.Topic
	level        exm.Level
	subject      progress.Subject
	difficulty   exm.Named
	numQuestions int

	sess *exm.Session
	list components.OptionList

	// seq identifies the newest generate/submit request. A response whose
	// seq doesn't match arrived after the screen moved on and is dropped.
	seq        int
	submitting bool
	errMsg     string
	spin       int
}

var _ screen.Screen = (*ExamScreen)(nil)
var _ screen.KeyHintProvider = (*ExamScreen)(nil)

// NewTopicFlow creates an exam attempt on one topic. Answers are keyed by
// question position and reviewed locally after grading.
func NewTopicFlow(client *api.Client, attempts store.AttemptRepo, cur *session.Session, topic progress.Topic, level exm.Level, log *slog.Logger) *ExamScreen {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &ExamScreen{
		client:   client,
		attempts: attempts,
		cur:      cur,
		log:      log,
		flow:     flowTopic,
		topic:    topic,
		level:    level.Clamp(),
		sess:     exm.NewSession(exm.ByIndex),
	}
}

// NewSubjectFlow creates an exam attempt across a whole subject. Answers
// are keyed by question id; grading is entirely server-side.
func NewSubjectFlow(client *api.Client, attempts store.AttemptRepo, cur *session.Session, subject progress.Subject, difficulty exm.Named, numQuestions int, log *slog.Logger) *ExamScreen {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &ExamScreen{
		client:       client,
		attempts:     attempts,
		cur:          cur,
		log:          log,
		flow:         flowSubject,
		subject:      subject,
		difficulty:   difficulty,
		numQuestions: numQuestions,
		sess:         exm.NewSession(exm.ByID),
	}
}

func (s *ExamScreen) Init() tea.Cmd {
	if !s.cur.Valid() {
		return func() tea.Msg { return session.ExpiredMsg{} }
	}
	return tea.Batch(s.generate(), spinTick())
}

func (s *ExamScreen) Title() string {
	if s.sess.Title != "" {
		return s.sess.Title
	}
	return s.localTitle()
}

// localTitle is the name known before generation returns, also used when
// the wire payload carries no title.
func (s *ExamScreen) localTitle() string {
	if s.flow == flowTopic {
		return s.topic.Title
	}
	if s.subject.Name != "" {
		return s.subject.Name
	}
	return fmt.Sprintf("Subject #%s", s.subject.ID)
}

func (s *ExamScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.sess.Stage() == exm.StageLoading || s.submitting:
		return []layout.KeyHint{{Key: "Esc", Description: "Abandon"}}
	case s.sess.Empty():
		return []layout.KeyHint{
			{Key: "r", Description: "Try again"},
			{Key: "Esc", Description: "Back"},
		}
	case s.sess.Stage() == exm.StageResult:
		return []layout.KeyHint{
			{Key: "r", Description: "Retry exam"},
			{Key: "Esc", Description: "Done"},
		}
	default:
		return []layout.KeyHint{
			{Key: "↑↓/1-9", Description: "Answer"},
			{Key: "←→", Description: "Question"},
			{Key: "f", Description: "Finish"},
			{Key: "Esc", Description: "Abandon"},
		}
	}
}

// generate starts a fresh generation request under a new sequence number.
func (s *ExamScreen) generate() tea.Cmd {
	if !s.cur.Valid() {
		return func() tea.Msg { return session.ExpiredMsg{} }
	}
	s.seq++
	seq := s.seq
	client, sess := s.client, *s.cur

	switch s.flow {
	case flowSubject:
		subjectID, difficulty, n := s.subject.ID, s.difficulty, s.numQuestions
		return func() tea.Msg {
			ex, err := client.GenerateSubjectExam(context.Background(), sess, subjectID, difficulty, n)
			return generatedMsg{Seq: seq, Exam: ex, Err: err}
		}
	default:
		topicID, level := s.topic.ID, s.level
		return func() tea.Msg {
			ex, err := client.GenerateTopicExam(context.Background(), sess, topicID, level)
			return generatedMsg{Seq: seq, Exam: ex, Err: err}
		}
	}
}

// submit sends the recorded answers and, on success, records the attempt
// in the local history before reporting back.
func (s *ExamScreen) submit() tea.Cmd {
	// The token can vanish between entry and submit (logout elsewhere).
	// Redirect instead of issuing a request that can only 401.
	if !s.cur.Valid() {
		return func() tea.Msg { return session.ExpiredMsg{} }
	}
	s.submitting = true
	s.errMsg = ""
	s.seq++
	seq := s.seq
	client, sess, attempts, log := s.client, *s.cur, s.attempts, s.log
	examID, title := s.sess.ExamID, s.Title()

	var call func(ctx context.Context) (exm.Result, error)
	var flowName string
	if s.flow == flowSubject {
		answers := s.sess.IDAnswers()
		flowName = store.FlowSubject
		call = func(ctx context.Context) (exm.Result, error) {
			return client.SubmitSubjectExam(ctx, sess, examID, answers)
		}
	} else {
		answers := s.sess.IndexedAnswers()
		flowName = store.FlowTopic
		call = func(ctx context.Context) (exm.Result, error) {
			return client.SubmitTopicExam(ctx, sess, examID, answers)
		}
	}

	return func() tea.Msg {
		ctx := context.Background()
		res, err := call(ctx)
		if err != nil {
			return submittedMsg{Seq: seq, Err: err}
		}
		if err := attempts.Record(ctx, store.Attempt{
			ExamID:         examID,
			Title:          title,
			Flow:           flowName,
			Score:          res.Score,
			CorrectCount:   res.CorrectCount,
			TotalQuestions: res.TotalQuestions,
		}); err != nil {
			log.Warn("could not record attempt", "error", err)
		}
		return submittedMsg{Seq: seq, Result: res}
	}
}

func (s *ExamScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		if msg.Seq != s.seq {
			return s, nil
		}
		if msg.Err != nil {
			s.errMsg = api.Message(msg.Err)
			s.sess.FailOpen()
			return s, nil
		}
		title := msg.Exam.Title
		if title == "" {
			title = s.localTitle()
		}
		s.errMsg = ""
		s.sess.Begin(msg.Exam.ExamID, title, msg.Exam.Questions)
		s.rebuildList()
		return s, nil

	case submittedMsg:
		if msg.Seq != s.seq {
			return s, nil
		}
		s.submitting = false
		if msg.Err != nil {
			// Answers stay recorded; the user may fix connectivity and
			// press finish again.
			s.errMsg = api.Message(msg.Err)
			return s, nil
		}
		s.errMsg = ""
		s.sess.Finish(msg.Result)
		return s, nil

	case spinTickMsg:
		if s.sess.Stage() == exm.StageLoading || s.submitting {
			s.spin++
			return s, spinTick()
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *ExamScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.sess.Stage() {
	case exm.StageLoading:
		return s, nil

	case exm.StageResult:
		if msg.String() == "r" {
			return s, s.retry()
		}
		return s, nil
	}

	// Test stage.
	if s.sess.Empty() {
		if msg.String() == "r" {
			return s, s.retry()
		}
		return s, nil
	}
	if s.submitting {
		return s, nil
	}

	switch msg.String() {
	case "left", "h":
		s.sess.Prev()
		s.rebuildList()
		return s, nil
	case "right", "l":
		s.sess.Next()
		s.rebuildList()
		return s, nil
	case "f":
		if !s.sess.CanFinish() {
			return s, nil
		}
		cmd := s.submit()
		if !s.submitting {
			// Redirected instead of submitting; no spinner to drive.
			return s, cmd
		}
		return s, tea.Batch(cmd, spinTick())
	}

	var chosen int
	s.list, chosen = s.list.Update(msg)
	if chosen >= 0 {
		s.sess.SelectCurrent(chosen)
	}
	return s, nil
}

// retry discards the attempt and generates a fresh exam.
func (s *ExamScreen) retry() tea.Cmd {
	s.errMsg = ""
	s.sess.Retry()
	return tea.Batch(s.generate(), spinTick())
}

// rebuildList points the option selector at the question under the cursor,
// restoring any previously recorded answer.
func (s *ExamScreen) rebuildList() {
	q := s.sess.CurrentQuestion()
	if q == nil {
		s.list = components.NewOptionList(nil)
		return
	}
	s.list = components.NewOptionList(q.Options)
	if opt, ok := s.sess.Answer(s.sess.Current); ok {
		s.list.Chosen = opt
		s.list.Cursor = opt
	}
}

func spinTick() tea.Cmd {
	return tea.Tick(spinInterval, func(t time.Time) tea.Msg {
		return spinTickMsg(t)
	})
}
