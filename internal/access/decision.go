package access

import (
	"slices"

	"github.com/morelia/expodesk/internal/session"
)

// Decision is the outcome of evaluating a route against the current
// session state. It is recomputed on every request, never cached.
type Decision int

const (
	// Pending: the session could not be resolved yet. Callers must
	// render a neutral waiting state and never redirect, otherwise a
	// slow session store turns into a flash redirect to the login page.
	Pending Decision = iota
	Allow
	RedirectLogin
	RedirectUnauthorized
)

func (d Decision) String() string {
	switch d {
	case Pending:
		return "pending"
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect-login"
	case RedirectUnauthorized:
		return "redirect-unauthorized"
	default:
		return "unknown"
	}
}

// Evaluate is a pure function over an already resolved session state.
// An empty required set means any authenticated principal may pass.
func Evaluate(state session.State, required ...session.Role) Decision {
	if !state.Resolved() {
		return Pending
	}

	role, ok := state.Role()
	if !ok {
		return RedirectLogin
	}

	if len(required) > 0 && !slices.Contains(required, role) {
		return RedirectUnauthorized
	}

	return Allow
}
