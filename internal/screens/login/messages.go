package login

import "github.com/bilimpath/bilim/internal/session"

// signedInMsg is sent when the sign-in call finishes.
type signedInMsg struct {
	Session session.Session
	Err     error
}
