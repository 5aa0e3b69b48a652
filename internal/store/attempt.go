package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Flow names recorded with each attempt.
const (
	FlowTopic   = "topic"
	FlowSubject = "subject"
)

// Attempt is one graded exam attempt, as remembered locally. Score is a
// 0-100 percentage.
type Attempt struct {
	ID             string
	ExamID         string
	Title          string
	Flow           string
	Score          float64
	CorrectCount   int
	TotalQuestions int
	TakenAt        time.Time
}

// AttemptRepo records graded attempts for the history view.
type AttemptRepo interface {
	// Record stores an attempt, assigning it a local id.
	Record(ctx context.Context, a Attempt) error

	// Recent returns up to limit attempts, newest first.
	Recent(ctx context.Context, limit int) ([]Attempt, error)
}

type attemptRepo struct {
	db *sql.DB
}

func (r *attemptRepo) Record(ctx context.Context, a Attempt) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.TakenAt.IsZero() {
		a.TakenAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO attempts (id, exam_id, title, flow, score, correct_count, total_questions, taken_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.ExamID, a.Title, a.Flow, a.Score, a.CorrectCount, a.TotalQuestions, a.TakenAt,
	)
	return err
}

func (r *attemptRepo) Recent(ctx context.Context, limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, exam_id, title, flow, score, correct_count, total_questions, taken_at
		 FROM attempts ORDER BY taken_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(&a.ID, &a.ExamID, &a.Title, &a.Flow, &a.Score,
			&a.CorrectCount, &a.TotalQuestions, &a.TakenAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
