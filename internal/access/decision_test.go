package access

import (
	"fmt"
	"testing"

	"github.com/morelia/expodesk/internal/session"
)

func TestEvaluate(t *testing.T) {
	type testCase struct {
		Name     string
		State    session.State
		Required []session.Role
		Expected Decision
	}

	admin := session.Authenticated(session.Identity{Token: "tok", Role: session.RoleAdmin, Email: "ada@fair.example"})
	staff := session.Authenticated(session.Identity{Token: "tok", Role: session.RoleStaff, Email: "lou@fair.example"})

	testCases := []testCase{
		{
			Name:     "UnresolvedIsPending",
			State:    session.Unresolved(),
			Required: []session.Role{session.RoleAdmin},
			Expected: Pending,
		},
		{
			Name:     "UnresolvedIsPendingEvenWithoutRequiredRoles",
			State:    session.Unresolved(),
			Expected: Pending,
		},
		{
			Name:     "AnonymousRedirectsToLogin",
			State:    session.Anonymous(),
			Required: []session.Role{session.RoleAdmin},
			Expected: RedirectLogin,
		},
		{
			Name:     "AnonymousRedirectsToLoginOnUnrestrictedRoute",
			State:    session.Anonymous(),
			Expected: RedirectLogin,
		},
		{
			Name:     "StaffOnAdminRouteIsUnauthorized",
			State:    staff,
			Required: []session.Role{session.RoleAdmin},
			Expected: RedirectUnauthorized,
		},
		{
			Name:     "AdminOnAdminRouteIsAllowed",
			State:    admin,
			Required: []session.Role{session.RoleAdmin},
			Expected: Allow,
		},
		{
			Name:     "AnyRoleOnSharedRoute",
			State:    staff,
			Required: []session.Role{session.RoleAdmin, session.RoleStaff},
			Expected: Allow,
		},
		{
			Name:     "EmptyRequiredSetAllowsAnyAuthenticated",
			State:    staff,
			Expected: Allow,
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d: %s", idx, tc.Name), func(t *testing.T) {
			if e, g := tc.Expected, Evaluate(tc.State, tc.Required...); e != g {
				t.Errorf("Evaluate(): expected '%v', got '%v'", e, g)
			}
		})
	}
}

func TestRuleSet(t *testing.T) {
	rules := RuleSet{
		{Prefix: "/admin/settings", Rule: NewRule(`role == "admin"`)},
	}

	staff := &session.Identity{Token: "tok", Role: session.RoleStaff, Email: "lou@fair.example"}
	admin := &session.Identity{Token: "tok", Role: session.RoleAdmin, Email: "ada@fair.example"}

	allowed, err := rules.Evaluate("/admin/settings/profile", staff)
	if err != nil {
		t.Fatalf("%+v", err)
	}

	if allowed {
		t.Error("staff on /admin/settings: expected rejection")
	}

	allowed, err = rules.Evaluate("/admin/settings/profile", admin)
	if err != nil {
		t.Fatalf("%+v", err)
	}

	if !allowed {
		t.Error("admin on /admin/settings: expected pass")
	}

	// Non matching prefix: rules do not apply.
	allowed, err = rules.Evaluate("/staff", staff)
	if err != nil {
		t.Fatalf("%+v", err)
	}

	if !allowed {
		t.Error("staff outside rule prefix: expected pass")
	}
}
