package session

// Identity is the resolved (token, role) pair of the current session.
// Token and Role are written and cleared together; there is no state
// where one exists without the other.
type Identity struct {
	Token string
	Role  Role
	Email string
}

// State is the tri-valued outcome of resolving a request's session.
// "not resolved yet" is distinct from "resolved to nobody": collapsing
// the two is what causes flash redirects to the login page.
type State struct {
	resolved bool
	identity *Identity
}

func Unresolved() State {
	return State{}
}

func Anonymous() State {
	return State{resolved: true}
}

func Authenticated(identity Identity) State {
	return State{resolved: true, identity: &identity}
}

func (s State) Resolved() bool {
	return s.resolved
}

// Identity returns nil unless the state is resolved and authenticated.
func (s State) Identity() *Identity {
	if !s.resolved {
		return nil
	}

	return s.identity
}

// Role returns the session's role, or false when there is none.
func (s State) Role() (Role, bool) {
	if !s.resolved || s.identity == nil {
		return "", false
	}

	return s.identity.Role, true
}
