package api

import (
	"context"
	"net/http"

	"github.com/bilimpath/bilim/internal/progress"
	"github.com/bilimpath/bilim/internal/session"
)

// Deployed backends disagree on the subject id field: some return
// "subject_id", some "id". Both are accepted, subject_id winning.
type subjectProgressWire struct {
	SubjectID stringID    `json:"subject_id"`
	ID        stringID    `json:"id"`
	Name      string      `json:"name"`
	Topics    []topicWire `json:"topics"`
}

type topicWire struct {
	ID           stringID `json:"id"`
	Title        string   `json:"title"`
	MasteryLevel float64  `json:"mastery_level"`
}

// MyProgress fetches the signed-in student's subjects with per-topic mastery.
func (c *Client) MyProgress(ctx context.Context, sess session.Session) ([]progress.Subject, error) {
	const fallback = "Could not load subjects"

	raw, err := c.do(ctx, http.MethodGet, "/subjects/my-progress", &sess, "", nil, fallback)
	if err != nil {
		return nil, err
	}

	var wire []subjectProgressWire
	if err := decode(raw, &wire, fallback); err != nil {
		return nil, err
	}

	subjects := make([]progress.Subject, 0, len(wire))
	for _, w := range wire {
		id := w.SubjectID
		if id == "" {
			id = w.ID
		}
		s := progress.Subject{ID: string(id), Name: w.Name}
		for _, t := range w.Topics {
			s.Topics = append(s.Topics, progress.Topic{
				ID:           string(t.ID),
				Title:        t.Title,
				MasteryLevel: t.MasteryLevel,
			})
		}
		subjects = append(subjects, s)
	}
	return subjects, nil
}
