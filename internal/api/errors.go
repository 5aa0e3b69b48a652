package api

import "fmt"

// Error is the failure of one API call. The backend is expected, but not
// guaranteed, to return a JSON body with a "detail" string; when it does,
// that text is shown to the user, otherwise the call site's fallback message
// is. Either way the error stops at the triggering screen; nothing here is
// fatal.
type Error struct {
	StatusCode int
	Detail     string
	Fallback   string
	Err        error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Fallback
}

func (e *Error) Unwrap() error { return e.Err }

// Message returns the user-facing text for any error coming out of the
// client, falling back to the raw error string for non-API failures.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func callErr(fallback string, err error) *Error {
	return &Error{Fallback: fallback, Err: fmt.Errorf("request failed: %w", err)}
}
