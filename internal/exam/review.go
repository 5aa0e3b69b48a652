package exam

// Mark is the local correctness verdict for one question in the topic-flow
// review.
type Mark struct {
	Index    int
	Question string
	Correct  bool
}

// Review grades the recorded answers against each question's known correct
// answer. This duplicates the server's own grading on purpose: the review
// list renders even when the submit response carries no per-question detail.
// The two gradings can disagree if the server reorders questions or rewrites
// option text between generation and grading; the result screen therefore
// shows the server score alongside these marks rather than deriving one from
// the other.
//
// Unanswered questions are marked incorrect.
func (s *Session) Review() []Mark {
	marks := make([]Mark, len(s.Questions))
	for i, q := range s.Questions {
		marks[i] = Mark{
			Index:    i,
			Question: q.Text,
			Correct:  q.CorrectAnswer != "" && s.AnswerText(i) == q.CorrectAnswer,
		}
	}
	return marks
}
