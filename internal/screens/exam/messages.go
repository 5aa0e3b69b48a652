package exam

import (
	"time"

	"github.com/bilimpath/bilim/internal/api"
	exm "github.com/bilimpath/bilim/internal/exam"
)

// generatedMsg is sent when the generate call finishes. Seq identifies the
// request; responses carrying a stale Seq are dropped.
type generatedMsg struct {
	Seq  int
	Exam api.GeneratedExam
	Err  error
}

// submittedMsg is sent when the submit call finishes.
type submittedMsg struct {
	Seq    int
	Result exm.Result
	Err    error
}

// spinTickMsg animates the loading spinner.
type spinTickMsg time.Time
