package progress

import "strings"

// FilterSubjects returns the views whose name contains the query,
// case-insensitively. An empty or whitespace query returns the input
// unchanged.
func FilterSubjects(views []SubjectView, query string) []SubjectView {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return views
	}
	var out []SubjectView
	for _, v := range views {
		if strings.Contains(strings.ToLower(v.Name), q) {
			out = append(out, v)
		}
	}
	return out
}

// FilterTopics returns the topics whose title contains the query,
// case-insensitively.
func FilterTopics(topics []Topic, query string) []Topic {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return topics
	}
	var out []Topic
	for _, t := range topics {
		if strings.Contains(strings.ToLower(t.Title), q) {
			out = append(out, t)
		}
	}
	return out
}
