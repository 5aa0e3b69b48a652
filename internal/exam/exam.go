// Package exam implements the client-side state machine for one exam
// attempt: generate, answer, submit, review. It is pure state; all HTTP
// traffic lives in the api package, and the screens drive transitions in
// response to user events.
//
// The platform exposes two exam flows with different wire shapes: the topic
// flow keys answers by question position and grades locally against a known
// correct answer, while the subject flow keys answers by question id and
// trusts the server entirely. Both are projected onto the single Session
// type here, parameterized by a KeyMode.
package exam

// KeyMode selects how answers are keyed against questions.
type KeyMode int

const (
	// ByIndex keys answers by question position (topic flow).
	ByIndex KeyMode = iota
	// ByID keys answers by question identifier (subject flow).
	ByID
)

// Question is one generated question. ID and TopicTitle are present only in
// the subject flow; CorrectAnswer only in the topic flow.
type Question struct {
	ID            string
	Text          string
	Options       []string
	TopicTitle    string
	CorrectAnswer string
}

// WeakTopic is a topic the server flagged as below proficiency.
type WeakTopic struct {
	TopicID      string
	TopicTitle   string
	MasteryLevel float64
}

// Analysis is the optional AI-generated breakdown attached to a topic-flow
// result.
type Analysis struct {
	Explanation    string
	Recommendation string
	WeakTopics     []string
}

// Result is the server's grading of a submitted attempt. Score is always a
// percentage in [0,100]; the api adapters normalize the subject flow's 0-1
// fraction before it gets here.
type Result struct {
	Score          float64
	CorrectCount   int
	TotalQuestions int
	WeakTopics     []WeakTopic
	Analysis       *Analysis
}

// TopWeakTopics returns at most n weak topics, preserving server order.
func (r Result) TopWeakTopics(n int) []WeakTopic {
	if len(r.WeakTopics) <= n {
		return r.WeakTopics
	}
	return r.WeakTopics[:n]
}
