package exam

import "testing"

func TestReview_MarksAgainstLocalAnswers(t *testing.T) {
	s := NewSession(ByIndex)
	s.Begin("ex-1", "Fractions", topicQuestions())

	s.Select(0, 0) // Astana, correct
	s.Select(1, 0) // 3, wrong
	// question 2 left unanswered

	marks := s.Review()
	if len(marks) != 3 {
		t.Fatalf("len = %d, want 3", len(marks))
	}
	if !marks[0].Correct {
		t.Error("mark 0 should be correct")
	}
	if marks[1].Correct {
		t.Error("mark 1 should be incorrect")
	}
	if marks[2].Correct {
		t.Error("unanswered question should be incorrect")
	}
}

func TestReview_IndependentOfServerResult(t *testing.T) {
	s := NewSession(ByIndex)
	s.Begin("ex-1", "Fractions", topicQuestions())
	for i := range s.Questions {
		s.Select(i, 0)
	}

	before := s.Review()
	s.Finish(Result{Score: 0, CorrectCount: 0, TotalQuestions: 3})
	after := s.Review()

	for i := range before {
		if before[i].Correct != after[i].Correct {
			t.Errorf("mark %d changed after server result arrived", i)
		}
	}
}

func TestReview_NoKnownAnswerNeverCorrect(t *testing.T) {
	// Subject-flow questions carry no correct answer; local review must not
	// mark anything correct by accident.
	s := NewSession(ByID)
	s.Begin("ex-2", "Math", subjectQuestions())
	s.Select(0, 0)
	s.Select(1, 0)

	for _, m := range s.Review() {
		if m.Correct {
			t.Errorf("mark %d correct with no known answer", m.Index)
		}
	}
}
