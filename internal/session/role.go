package session

import "github.com/pkg/errors"

// Role is the closed set of principal kinds. It is resolved exactly once
// from the platform's numeric role indicator when a session is created;
// everything downstream compares Roles, never raw strings or codes.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// Role indicators as the platform API reports them.
const (
	roleIndicatorAdmin = 1
	roleIndicatorStaff = 2
)

func RoleFromIndicator(indicator int) (Role, error) {
	switch indicator {
	case roleIndicatorAdmin:
		return RoleAdmin, nil
	case roleIndicatorStaff:
		return RoleStaff, nil
	default:
		return "", errors.Errorf("unknown role indicator '%d'", indicator)
	}
}

func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleStaff:
		return RoleStaff, nil
	default:
		return "", errors.Errorf("unknown role '%s'", raw)
	}
}

// Home is the page a principal lands on right after login.
func (r Role) Home() string {
	if r == RoleAdmin {
		return "/admin"
	}

	return "/staff"
}

func (r Role) String() string {
	return string(r)
}
