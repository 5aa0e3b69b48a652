// Package session holds the authenticated user session: the access token
// issued by the BilimPath API, its token type, and the role chosen at sign-in.
// The session is loaded once at startup, injected into every screen that
// needs it, and written only by the login, registration, and logout flows.
package session

// Role identifies which side of the platform the user signed in as.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// ParseRole maps a stored role string to a Role, defaulting to student
// for anything unrecognized.
func ParseRole(s string) Role {
	if s == string(RoleTeacher) {
		return RoleTeacher
	}
	return RoleStudent
}

// Session is the persisted auth state.
type Session struct {
	AccessToken string
	TokenType   string
	Role        Role
}

// New creates a session from a token response, applying the "bearer"
// default when the server omits the token type.
func New(accessToken, tokenType string, role Role) Session {
	if tokenType == "" {
		tokenType = "bearer"
	}
	return Session{
		AccessToken: accessToken,
		TokenType:   tokenType,
		Role:        role,
	}
}

// Valid reports whether a token is present. The client never inspects or
// refreshes the token; it trusts whatever was stored.
func (s Session) Valid() bool {
	return s.AccessToken != ""
}

// Clear wipes the session in place.
func (s *Session) Clear() {
	*s = Session{}
}

// ExpiredMsg signals that a screen found no usable credentials. The app
// root handles it by resetting navigation to role selection.
type ExpiredMsg struct{}
