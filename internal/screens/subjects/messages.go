package subjects

import "github.com/bilimpath/bilim/internal/progress"

// progressLoadedMsg is sent when the my-progress call finishes.
type progressLoadedMsg struct {
	Subjects []progress.Subject
	Err      error
}

// loggedOutMsg is sent after the stored session has been cleared.
type loggedOutMsg struct{}
