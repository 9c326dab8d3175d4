package entity

import "time"

// Identity is a copy of a user's email/name/role taken when the session was
// authenticated. It is not refreshed when the user record changes later.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Session is the server-side state referenced by the session cookie.
// A nil Identity means the session is anonymous.
type Session struct {
	ID        string    `json:"id"`
	Identity  *Identity `json:"identity,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Authenticated reports whether the session carries an identity.
func (s *Session) Authenticated() bool {
	return s != nil && s.Identity != nil
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
