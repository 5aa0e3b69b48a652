package progress

import "sort"

// SortMode is the mastery sort direction.
type SortMode int

const (
	SortNone SortMode = iota
	SortDesc
	SortAsc
)

// NextTriState advances the subject screen's three-way toggle:
// unsorted → descending → ascending → unsorted.
func NextTriState(m SortMode) SortMode {
	switch m {
	case SortNone:
		return SortDesc
	case SortDesc:
		return SortAsc
	default:
		return SortNone
	}
}

// NextBiState advances the topic screen's two-way toggle:
// descending ↔ ascending. SortNone enters at descending.
func NextBiState(m SortMode) SortMode {
	if m == SortDesc {
		return SortAsc
	}
	return SortDesc
}

// Indicator returns the arrow shown on the sort control.
func (m SortMode) Indicator() string {
	switch m {
	case SortDesc:
		return "↓"
	case SortAsc:
		return "↑"
	default:
		return "—"
	}
}

// SortSubjectViews orders views by averaged mastery without mutating the
// input. Subjects with no mastery sort as -1, below every real score.
// SortNone returns the input as-is.
func SortSubjectViews(views []SubjectView, mode SortMode) []SubjectView {
	if mode == SortNone {
		return views
	}
	out := make([]SubjectView, len(views))
	copy(out, views)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := sortKey(out[i]), sortKey(out[j])
		if mode == SortAsc {
			return a < b
		}
		return a > b
	})
	return out
}

func sortKey(v SubjectView) float64 {
	if !v.HasMastery {
		return -1
	}
	return v.Mastery
}

// SortTopics orders topics by mastery level without mutating the input.
func SortTopics(topics []Topic, mode SortMode) []Topic {
	if mode == SortNone {
		return topics
	}
	out := make([]Topic, len(topics))
	copy(out, topics)
	sort.SliceStable(out, func(i, j int) bool {
		if mode == SortAsc {
			return out[i].MasteryLevel < out[j].MasteryLevel
		}
		return out[i].MasteryLevel > out[j].MasteryLevel
	})
	return out
}
