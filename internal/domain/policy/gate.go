package policy

import "github.com/oksasatya/go-member-portal/internal/domain/entity"

// Level is the access a route requires.
type Level int

const (
	AnonymousOnly Level = iota
	Authenticated
	Admin
)

// Decision is the outcome of evaluating a session against a Level.
type Decision int

const (
	Proceed Decision = iota
	RedirectHome
	RedirectLogin
	Deny
)

func (d Decision) String() string {
	switch d {
	case Proceed:
		return "proceed"
	case RedirectHome:
		return "redirect_home"
	case RedirectLogin:
		return "redirect_login"
	case Deny:
		return "deny"
	default:
		return "unknown"
	}
}

// Decide evaluates the identity held by a session against the required
// level. It only looks at the snapshot; callers that need the current role
// must confirm it against the credential store after Proceed.
func Decide(id *entity.Identity, required Level) Decision {
	switch required {
	case AnonymousOnly:
		if id != nil {
			return RedirectHome
		}
		return Proceed
	case Authenticated:
		if id == nil {
			return RedirectLogin
		}
		return Proceed
	case Admin:
		if id == nil || id.Role != entity.RoleAdmin {
			return Deny
		}
		return Proceed
	}
	return Deny
}
