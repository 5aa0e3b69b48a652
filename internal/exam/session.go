package exam

import "strconv"

// Stage is the lifecycle position of an attempt.
type Stage int

const (
	// StageLoading means generation is in flight.
	StageLoading Stage = iota
	// StageTest means questions are on screen and answers are being recorded.
	// An empty question set in this stage is the fail-open terminal sub-state
	// entered when generation fails: the user sees the error instead of a
	// stuck spinner, and finishing is unreachable.
	StageTest
	// StageResult means the server accepted a submission and graded it.
	StageResult
)

// Session tracks one exam attempt from generation to grading.
type Session struct {
	ExamID    string
	Title     string
	Keys      KeyMode
	Questions []Question
	Current   int
	Result    *Result

	// answers maps question key -> selected option position. Completion is
	// defined by key presence, never by the value: option 0 is a real answer.
	// Both flows use this one semantic.
	answers map[string]int

	stage Stage
}

// NewSession creates a session in the loading stage.
func NewSession(keys KeyMode) *Session {
	return &Session{
		Keys:    keys,
		answers: make(map[string]int),
	}
}

// Stage returns the current lifecycle stage.
func (s *Session) Stage() Stage {
	return s.stage
}

// Begin enters the test stage with a fresh question set, discarding any
// previously recorded answers and resetting the cursor.
func (s *Session) Begin(examID, title string, questions []Question) {
	s.ExamID = examID
	s.Title = title
	s.Questions = questions
	s.answers = make(map[string]int)
	s.Current = 0
	s.Result = nil
	s.stage = StageTest
}

// FailOpen enters the test stage with no questions after a failed
// generation. The caller keeps the error message as screen state.
func (s *Session) FailOpen() {
	s.Begin("", "", nil)
}

// Empty reports whether the session is in the fail-open terminal sub-state.
func (s *Session) Empty() bool {
	return s.stage == StageTest && len(s.Questions) == 0
}

// Total returns the number of questions.
func (s *Session) Total() int {
	return len(s.Questions)
}

// CurrentQuestion returns the question under the cursor, or nil when the
// question set is empty.
func (s *Session) CurrentQuestion() *Question {
	if s.Current < 0 || s.Current >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.Current]
}

// key derives the answer key for the question at position i.
func (s *Session) key(i int) string {
	if s.Keys == ByID {
		return s.Questions[i].ID
	}
	return strconv.Itoa(i)
}

// Select records an answer for the question at position qIndex. Out-of-range
// option positions are ignored. Selecting never advances the cursor.
func (s *Session) Select(qIndex, option int) {
	if s.stage != StageTest || qIndex < 0 || qIndex >= len(s.Questions) {
		return
	}
	if option < 0 || option >= len(s.Questions[qIndex].Options) {
		return
	}
	s.answers[s.key(qIndex)] = option
}

// SelectCurrent records an answer for the question under the cursor.
func (s *Session) SelectCurrent(option int) {
	s.Select(s.Current, option)
}

// Answer returns the recorded option position for the question at i.
func (s *Session) Answer(i int) (int, bool) {
	if i < 0 || i >= len(s.Questions) {
		return 0, false
	}
	opt, ok := s.answers[s.key(i)]
	return opt, ok
}

// AnswerText returns the selected option text for the question at i, or ""
// when unanswered.
func (s *Session) AnswerText(i int) string {
	opt, ok := s.Answer(i)
	if !ok {
		return ""
	}
	return s.Questions[i].Options[opt]
}

// Prev moves the cursor back one question, clamped at the first.
func (s *Session) Prev() {
	if s.Current > 0 {
		s.Current--
	}
}

// Next moves the cursor forward one question, clamped at the last. The
// cursor never wraps in either direction.
func (s *Session) Next() {
	if s.Current < len(s.Questions)-1 {
		s.Current++
	}
}

// CanFinish reports whether every question has a recorded answer. False for
// an empty question set, so the fail-open sub-state can never submit.
func (s *Session) CanFinish() bool {
	if s.stage != StageTest || len(s.Questions) == 0 {
		return false
	}
	for i := range s.Questions {
		if _, ok := s.answers[s.key(i)]; !ok {
			return false
		}
	}
	return true
}

// Finish stores the server's grading and enters the result stage.
func (s *Session) Finish(res Result) {
	s.Result = &res
	s.stage = StageResult
}

// Retry returns to the loading stage for a fresh generation, discarding the
// question set, all answers, and the previous result.
func (s *Session) Retry() {
	s.ExamID = ""
	s.Questions = nil
	s.answers = make(map[string]int)
	s.Current = 0
	s.Result = nil
	s.stage = StageLoading
}

// IndexedAnswer pairs a question position with the selected option text
// (topic flow submission shape).
type IndexedAnswer struct {
	QuestionIndex  int
	SelectedOption string
}

// IndexedAnswers enumerates every question in order. Unanswered questions
// submit an empty string; normal UI interaction can't reach that (submit is
// gated by CanFinish) but the payload tolerates it.
func (s *Session) IndexedAnswers() []IndexedAnswer {
	out := make([]IndexedAnswer, len(s.Questions))
	for i := range s.Questions {
		out[i] = IndexedAnswer{
			QuestionIndex:  i,
			SelectedOption: s.AnswerText(i),
		}
	}
	return out
}

// IDAnswer pairs a question id with the selected option position (subject
// flow submission shape).
type IDAnswer struct {
	QuestionID     string
	SelectedOption int
}

// IDAnswers enumerates every question in order. Unanswered questions submit
// option 0; as with IndexedAnswers this is reachable only if the CanFinish
// gate is bypassed.
func (s *Session) IDAnswers() []IDAnswer {
	out := make([]IDAnswer, len(s.Questions))
	for i := range s.Questions {
		opt, _ := s.Answer(i)
		out[i] = IDAnswer{
			QuestionID:     s.Questions[i].ID,
			SelectedOption: opt,
		}
	}
	return out
}
