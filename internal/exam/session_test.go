package exam

import "testing"

func topicQuestions() []Question {
	return []Question{
		{Text: "Capital of Kazakhstan?", Options: []string{"Astana", "Almaty", "Shymkent"}, CorrectAnswer: "Astana"},
		{Text: "2 + 2?", Options: []string{"3", "4"}, CorrectAnswer: "4"},
		{Text: "Water formula?", Options: []string{"H2O", "CO2"}, CorrectAnswer: "H2O"},
	}
}

func subjectQuestions() []Question {
	return []Question{
		{ID: "q-1", Text: "Q1", Options: []string{"a", "b"}, TopicTitle: "Algebra"},
		{ID: "q-2", Text: "Q2", Options: []string{"a", "b", "c"}, TopicTitle: "Geometry"},
	}
}

func TestSession_BeginResetsState(t *testing.T) {
	s := NewSession(ByIndex)
	if s.Stage() != StageLoading {
		t.Fatalf("Stage = %v, want StageLoading", s.Stage())
	}

	s.Begin("ex-1", "Fractions", topicQuestions())
	if s.Stage() != StageTest {
		t.Errorf("Stage = %v, want StageTest", s.Stage())
	}
	if s.Current != 0 {
		t.Errorf("Current = %d, want 0", s.Current)
	}
	if s.CanFinish() {
		t.Error("CanFinish should be false with no answers recorded")
	}
}

func TestSession_CanFinishRequiresEveryKey(t *testing.T) {
	s := NewSession(ByIndex)
	s.Begin("ex-1", "Fractions", topicQuestions())

	s.Select(0, 0)
	s.Select(1, 1)
	if s.CanFinish() {
		t.Error("CanFinish true with one question unanswered")
	}

	s.Select(2, 0)
	if !s.CanFinish() {
		t.Error("CanFinish false with every question answered")
	}
}

func TestSession_OptionZeroCountsAsAnswered(t *testing.T) {
	// Completion is key presence, not value truthiness: selecting the first
	// option must satisfy the predicate.
	s := NewSession(ByID)
	s.Begin("ex-2", "Math", subjectQuestions())

	s.Select(0, 0)
	s.Select(1, 0)
	if !s.CanFinish() {
		t.Error("CanFinish false when every answer is option 0")
	}
}

func TestSession_SelectDoesNotAdvance(t *testing.T) {
	s := NewSession(ByIndex)
	s.Begin("ex-1", "Fractions", topicQuestions())

	s.SelectCurrent(1)
	if s.Current != 0 {
		t.Errorf("Current advanced to %d after select", s.Current)
	}
	if got := s.AnswerText(0); got != "Almaty" {
		t.Errorf("AnswerText(0) = %q, want %q", got, "Almaty")
	}
}

func TestSession_SelectReplacesPriorAnswer(t *testing.T) {
	s := NewSession(ByIndex)
	s.Begin("ex-1", "Fractions", topicQuestions())

	s.Select(0, 1)
	s.Select(0, 0)
	if got := s.AnswerText(0); got != "Astana" {
		t.Errorf("AnswerText(0) = %q, want %q", got, "Astana")
	}
}

func TestSession_CursorClampsWithoutWrap(t *testing.T) {
	s := NewSession(ByIndex)
	s.Begin("ex-1", "Fractions", topicQuestions())

	s.Prev()
	if s.Current != 0 {
		t.Errorf("Prev at first question moved cursor to %d", s.Current)
	}

	s.Next()
	s.Next()
	s.Next()
	s.Next()
	if s.Current != 2 {
		t.Errorf("Next clamped at %d, want 2", s.Current)
	}
}

func TestSession_FailOpenIsTerminal(t *testing.T) {
	s := NewSession(ByIndex)
	s.FailOpen()

	if s.Stage() != StageTest {
		t.Errorf("Stage = %v, want StageTest", s.Stage())
	}
	if !s.Empty() {
		t.Error("Empty() = false for fail-open state")
	}
	if s.CanFinish() {
		t.Error("fail-open state must never be finishable")
	}
	if s.CurrentQuestion() != nil {
		t.Error("CurrentQuestion should be nil with no questions")
	}
}

func TestSession_FinishAndRetry(t *testing.T) {
	s := NewSession(ByID)
	s.Begin("ex-2", "Math", subjectQuestions())
	s.Select(0, 1)
	s.Select(1, 2)

	s.Finish(Result{Score: 50, CorrectCount: 1, TotalQuestions: 2})
	if s.Stage() != StageResult {
		t.Fatalf("Stage = %v, want StageResult", s.Stage())
	}
	if s.Result == nil || s.Result.CorrectCount != 1 {
		t.Error("result not stored")
	}

	s.Retry()
	if s.Stage() != StageLoading {
		t.Errorf("Stage after Retry = %v, want StageLoading", s.Stage())
	}
	if s.Result != nil {
		t.Error("Retry kept the previous result")
	}
	if len(s.Questions) != 0 {
		t.Error("Retry kept the previous question set")
	}
}

func TestSession_IndexedAnswersEnumerateAll(t *testing.T) {
	s := NewSession(ByIndex)
	s.Begin("ex-1", "Fractions", topicQuestions())
	s.Select(0, 0)
	s.Select(2, 1)

	got := s.IndexedAnswers()
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].SelectedOption != "Astana" {
		t.Errorf("answer 0 = %q, want %q", got[0].SelectedOption, "Astana")
	}
	// Unanswered question still appears, with an empty selection.
	if got[1].QuestionIndex != 1 || got[1].SelectedOption != "" {
		t.Errorf("answer 1 = %+v, want empty selection at index 1", got[1])
	}
	if got[2].SelectedOption != "CO2" {
		t.Errorf("answer 2 = %q, want %q", got[2].SelectedOption, "CO2")
	}
}

func TestSession_IDAnswersKeyByQuestionID(t *testing.T) {
	s := NewSession(ByID)
	s.Begin("ex-2", "Math", subjectQuestions())
	s.Select(0, 1)
	s.Select(1, 2)

	got := s.IDAnswers()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].QuestionID != "q-1" || got[0].SelectedOption != 1 {
		t.Errorf("answer 0 = %+v", got[0])
	}
	if got[1].QuestionID != "q-2" || got[1].SelectedOption != 2 {
		t.Errorf("answer 1 = %+v", got[1])
	}
}

func TestSession_SelectIgnoresOutOfRange(t *testing.T) {
	s := NewSession(ByIndex)
	s.Begin("ex-1", "Fractions", topicQuestions())

	s.Select(0, 99)
	s.Select(99, 0)
	s.Select(-1, 0)
	if _, ok := s.Answer(0); ok {
		t.Error("out-of-range option was recorded")
	}
}

func TestResult_TopWeakTopics(t *testing.T) {
	r := Result{WeakTopics: []WeakTopic{
		{TopicTitle: "a"}, {TopicTitle: "b"}, {TopicTitle: "c"}, {TopicTitle: "d"},
	}}
	top := r.TopWeakTopics(3)
	if len(top) != 3 || top[0].TopicTitle != "a" || top[2].TopicTitle != "c" {
		t.Errorf("TopWeakTopics(3) = %+v", top)
	}

	short := Result{WeakTopics: []WeakTopic{{TopicTitle: "a"}}}
	if len(short.TopWeakTopics(3)) != 1 {
		t.Error("TopWeakTopics should not pad short lists")
	}
}

func TestLevel_Clamp(t *testing.T) {
	cases := []struct {
		in, want Level
	}{
		{0, 1}, {1, 1}, {3, 3}, {5, 5}, {9, 5},
	}
	for _, c := range cases {
		if got := c.in.Clamp(); got != c.want {
			t.Errorf("Clamp(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}
