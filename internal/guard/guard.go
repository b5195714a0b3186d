// Package guard decides whether the current session may reach a protected
// view. The decision is pure: teardown of a wrong-role session is the
// caller's job, taken explicitly in response to a denied decision.
package guard

import (
	"fmt"

	"github.com/colegioapp/colegio/internal/session"
)

// State is the authorization state for a protected view.
type State int

const (
	// StateLoading means the startup session restore has not completed yet.
	// Nothing protected may render in this state.
	StateLoading State = iota

	// StateUnauthenticated means no session exists; route to login.
	StateUnauthenticated

	// StateUnauthorized means a session exists but its role is not allowed
	// for this view. The caller must tear the session down (one Logout) and
	// route to login: a foreign-role session is never left cached.
	StateUnauthorized

	// StateAuthorized means the view may render.
	StateAuthorized
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateUnauthorized:
		return "unauthorized"
	case StateAuthorized:
		return "authorized"
	default:
		return "unknown"
	}
}

// Decision is the result of an authorization check.
type Decision struct {
	State  State
	Reason string
}

// Allowed reports whether the protected view may render.
func (d Decision) Allowed() bool {
	return d.State == StateAuthorized
}

// Authorize evaluates a session against a view's allowed roles. An empty
// allowed set admits any authenticated user. The function has no side
// effects; it can be called any number of times for the same answer.
func Authorize(sess *session.Session, allowedRoles []string) Decision {
	if sess == nil {
		return Decision{
			State:  StateUnauthenticated,
			Reason: "no active session",
		}
	}

	if len(allowedRoles) == 0 {
		return Decision{State: StateAuthorized}
	}

	for _, role := range allowedRoles {
		if sess.User.Role == role {
			return Decision{State: StateAuthorized}
		}
	}

	return Decision{
		State:  StateUnauthorized,
		Reason: fmt.Sprintf("role %q is not allowed here", sess.User.Role),
	}
}

// Evaluate is Authorize behind the restore gate: until the store's initial
// restore completes the only possible state is loading.
func Evaluate(restored bool, sess *session.Session, allowedRoles []string) Decision {
	if !restored {
		return Decision{State: StateLoading, Reason: "session restore in progress"}
	}
	return Authorize(sess, allowedRoles)
}
