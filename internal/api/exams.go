package api

import (
	"context"
	"fmt"

	"github.com/bilimpath/bilim/internal/exam"
	"github.com/bilimpath/bilim/internal/session"
)

const (
	generateFallback = "Exam generation failed"
	submitFallback   = "Could not submit answers"
)

// GeneratedExam is the flow-independent result of a generate call, ready to
// feed exam.Session.Begin.
type GeneratedExam struct {
	ExamID    string
	Title     string
	Questions []exam.Question
}

// ---- topic flow: index-keyed answers, integer difficulty, local grading ----

type topicGenerateRequest struct {
	TopicID    idValue `json:"topic_id"`
	Difficulty int     `json:"difficulty"`
}

type topicExamWire struct {
	ExamID    stringID `json:"exam_id"`
	Topic     string   `json:"topic"`
	Questions []struct {
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectAnswer string   `json:"correct_answer"`
	} `json:"questions"`
}

// GenerateTopicExam requests a topic-scoped exam at the given 1-5 level.
func (c *Client) GenerateTopicExam(ctx context.Context, sess session.Session, topicID string, level exam.Level) (GeneratedExam, error) {
	raw, err := c.postJSON(ctx, "/exams/generate", &sess, topicGenerateRequest{
		TopicID:    idValue(topicID),
		Difficulty: int(level.Clamp()),
	}, generateFallback)
	if err != nil {
		return GeneratedExam{}, err
	}

	if err := validatePayload("topic-exam", topicExamSchema, raw, generateFallback); err != nil {
		return GeneratedExam{}, err
	}

	var wire topicExamWire
	if err := decode(raw, &wire, generateFallback); err != nil {
		return GeneratedExam{}, err
	}

	out := GeneratedExam{ExamID: string(wire.ExamID), Title: wire.Topic}
	for _, q := range wire.Questions {
		out.Questions = append(out.Questions, exam.Question{
			Text:          q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	return out, nil
}

type topicSubmitRequest struct {
	Answers []topicAnswerWire `json:"answers"`
}

type topicAnswerWire struct {
	QuestionIndex  int    `json:"question_index"`
	SelectedOption string `json:"selected_option"`
}

type topicResultWire struct {
	Score          float64 `json:"score"`
	CorrectAnswers int     `json:"correct_answers"`
	Analysis       *struct {
		Explanation    string   `json:"explanation"`
		Recommendation string   `json:"recommendation"`
		WeakTopics     []string `json:"weak_topics"`
	} `json:"analysis"`
}

// SubmitTopicExam submits index-keyed answers for grading. The topic flow's
// score is already a 0-100 percentage.
func (c *Client) SubmitTopicExam(ctx context.Context, sess session.Session, examID string, answers []exam.IndexedAnswer) (exam.Result, error) {
	req := topicSubmitRequest{Answers: make([]topicAnswerWire, len(answers))}
	for i, a := range answers {
		req.Answers[i] = topicAnswerWire{
			QuestionIndex:  a.QuestionIndex,
			SelectedOption: a.SelectedOption,
		}
	}

	raw, err := c.postJSON(ctx, fmt.Sprintf("/exams/%s/submit", examID), &sess, req, submitFallback)
	if err != nil {
		return exam.Result{}, err
	}

	var wire topicResultWire
	if err := decode(raw, &wire, submitFallback); err != nil {
		return exam.Result{}, err
	}

	res := exam.Result{
		Score:          wire.Score,
		CorrectCount:   wire.CorrectAnswers,
		TotalQuestions: len(answers),
	}
	if wire.Analysis != nil {
		res.Analysis = &exam.Analysis{
			Explanation:    wire.Analysis.Explanation,
			Recommendation: wire.Analysis.Recommendation,
			WeakTopics:     wire.Analysis.WeakTopics,
		}
	}
	return res, nil
}

// ---- subject flow: id-keyed answers, named difficulty, server grading ----

type subjectGenerateRequest struct {
	SubjectID    idValue `json:"subject_id"`
	Difficulty   string  `json:"difficulty"`
	NumQuestions int     `json:"num_questions"`
}

type subjectExamWire struct {
	ID        stringID `json:"id"`
	Questions []struct {
		ID           stringID `json:"id"`
		QuestionText string   `json:"question_text"`
		Options      []string `json:"options"`
		TopicTitle   string   `json:"topic_title"`
	} `json:"questions"`
}

// GenerateSubjectExam requests a subject-wide exam with a named difficulty
// and a fixed question count.
func (c *Client) GenerateSubjectExam(ctx context.Context, sess session.Session, subjectID string, difficulty exam.Named, numQuestions int) (GeneratedExam, error) {
	raw, err := c.postJSON(ctx, "/exams/generate", &sess, subjectGenerateRequest{
		SubjectID:    idValue(subjectID),
		Difficulty:   string(difficulty),
		NumQuestions: numQuestions,
	}, generateFallback)
	if err != nil {
		return GeneratedExam{}, err
	}

	if err := validatePayload("subject-exam", subjectExamSchema, raw, generateFallback); err != nil {
		return GeneratedExam{}, err
	}

	var wire subjectExamWire
	if err := decode(raw, &wire, generateFallback); err != nil {
		return GeneratedExam{}, err
	}

	out := GeneratedExam{ExamID: string(wire.ID)}
	for _, q := range wire.Questions {
		out.Questions = append(out.Questions, exam.Question{
			ID:         string(q.ID),
			Text:       q.QuestionText,
			Options:    q.Options,
			TopicTitle: q.TopicTitle,
		})
	}
	return out, nil
}

type subjectSubmitRequest struct {
	ExamID  idValue             `json:"exam_id"`
	Answers []subjectAnswerWire `json:"answers"`
}

type subjectAnswerWire struct {
	QuestionID     idValue `json:"question_id"`
	SelectedOption int     `json:"selected_option"`
}

type subjectResultWire struct {
	Score          float64 `json:"score"`
	CorrectCount   int     `json:"correct_count"`
	TotalQuestions int     `json:"total_questions"`
	WeakTopics     []struct {
		TopicID      stringID `json:"topic_id"`
		TopicTitle   string   `json:"topic_title"`
		MasteryLevel float64  `json:"mastery_level"`
	} `json:"weak_topics"`
}

// SubmitSubjectExam submits id-keyed answers for grading. The subject flow
// reports score as a 0-1 fraction; it is normalized to a 0-100 percentage
// here so every Result means the same thing.
func (c *Client) SubmitSubjectExam(ctx context.Context, sess session.Session, examID string, answers []exam.IDAnswer) (exam.Result, error) {
	req := subjectSubmitRequest{
		ExamID:  idValue(examID),
		Answers: make([]subjectAnswerWire, len(answers)),
	}
	for i, a := range answers {
		req.Answers[i] = subjectAnswerWire{
			QuestionID:     idValue(a.QuestionID),
			SelectedOption: a.SelectedOption,
		}
	}

	raw, err := c.postJSON(ctx, "/exams/submit", &sess, req, submitFallback)
	if err != nil {
		return exam.Result{}, err
	}

	var wire subjectResultWire
	if err := decode(raw, &wire, submitFallback); err != nil {
		return exam.Result{}, err
	}

	res := exam.Result{
		Score:          wire.Score * 100,
		CorrectCount:   wire.CorrectCount,
		TotalQuestions: wire.TotalQuestions,
	}
	for _, w := range wire.WeakTopics {
		res.WeakTopics = append(res.WeakTopics, exam.WeakTopic{
			TopicID:      string(w.TopicID),
			TopicTitle:   w.TopicTitle,
			MasteryLevel: w.MasteryLevel,
		})
	}
	return res, nil
}
