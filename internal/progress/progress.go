// Package progress turns the raw my-progress payload into the view models
// rendered by the subject and topic screens: per-subject mastery averages,
// color banding, text search, and mastery sorting.
package progress

// Topic is one topic with its server-computed mastery level (0-100).
type Topic struct {
	ID           string
	Title        string
	MasteryLevel float64
}

// Subject is one subject with its owned topics, as returned by the API.
type Subject struct {
	ID     string
	Name   string
	Topics []Topic
}

// SubjectView is the subject list row: name plus the averaged mastery.
// HasMastery is false for a subject with no topics. "No score yet" is a
// different thing than a score of zero, and the badge is suppressed rather
// than rendered as 0.
type SubjectView struct {
	ID         string
	Name       string
	Mastery    float64
	HasMastery bool
}

// BuildSubjectViews computes the display list from raw subjects, preserving
// input order.
func BuildSubjectViews(subjects []Subject) []SubjectView {
	views := make([]SubjectView, len(subjects))
	for i, s := range subjects {
		v := SubjectView{ID: s.ID, Name: s.Name}
		if len(s.Topics) > 0 {
			sum := 0.0
			for _, t := range s.Topics {
				sum += t.MasteryLevel
			}
			v.Mastery = sum / float64(len(s.Topics))
			v.HasMastery = true
		}
		views[i] = v
	}
	return views
}

// FindSubject returns the subject with the given id, or nil. Used by the
// subject exam screen to resolve the header name from the progress payload.
func FindSubject(subjects []Subject, id string) *Subject {
	for i := range subjects {
		if subjects[i].ID == id {
			return &subjects[i]
		}
	}
	return nil
}
