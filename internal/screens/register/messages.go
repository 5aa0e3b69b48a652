package register

import "github.com/bilimpath/bilim/internal/session"

// registeredMsg is sent when the register-then-sign-in chain finishes.
// SignInFailed distinguishes a failed chained sign-in from a failed
// registration; the account exists in the former case.
type registeredMsg struct {
	Session      session.Session
	Err          error
	SignInFailed bool
}
