package access

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/morelia/expodesk/internal/session"
)

type staticResolver struct {
	state session.State
}

func (s staticResolver) Resolve(r *http.Request) session.State {
	return s.state
}

func protectedEcho(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := ContextIdentity(r.Context())
		if err != nil {
			t.Errorf("%+v", err)
		}

		if identity == nil || identity.Token == "" {
			t.Error("expected identity in context")
		}

		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddlewareAllow(t *testing.T) {
	resolver := staticResolver{state: session.Authenticated(session.Identity{
		Token: "tok",
		Role:  session.RoleAdmin,
		Email: "ada@fair.example",
	})}

	middleware := NewMiddleware(resolver)
	handler := middleware.Protect(session.RoleAdmin)(protectedEcho(t))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/admin", nil))

	if e, g := http.StatusOK, res.Code; e != g {
		t.Errorf("res.Code: expected '%v', got '%v'", e, g)
	}
}

func TestMiddlewarePendingNeverRedirects(t *testing.T) {
	middleware := NewMiddleware(staticResolver{state: session.Unresolved()})
	handler := middleware.Protect(session.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("protected handler must not run while pending")
	}))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/admin", nil))

	if e, g := http.StatusServiceUnavailable, res.Code; e != g {
		t.Errorf("res.Code: expected '%v', got '%v'", e, g)
	}

	if location := res.Header().Get("Location"); location != "" {
		t.Errorf("Location: expected no redirect, got '%v'", location)
	}
}

func TestMiddlewareAnonymousRedirectsToLogin(t *testing.T) {
	middleware := NewMiddleware(staticResolver{state: session.Anonymous()})
	handler := middleware.Protect()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("protected handler must not run for anonymous requests")
	}))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/admin/records/venues", nil))

	if e, g := http.StatusSeeOther, res.Code; e != g {
		t.Errorf("res.Code: expected '%v', got '%v'", e, g)
	}

	if e, g := "/auth/login?next=%2Fadmin%2Frecords%2Fvenues", res.Header().Get("Location"); e != g {
		t.Errorf("Location: expected '%v', got '%v'", e, g)
	}
}

func TestMiddlewareWrongRoleRedirectsToUnauthorized(t *testing.T) {
	resolver := staticResolver{state: session.Authenticated(session.Identity{
		Token: "tok",
		Role:  session.RoleStaff,
		Email: "lou@fair.example",
	})}

	middleware := NewMiddleware(resolver)
	handler := middleware.Protect(session.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("protected handler must not run for the wrong role")
	}))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/admin", nil))

	if e, g := http.StatusSeeOther, res.Code; e != g {
		t.Errorf("res.Code: expected '%v', got '%v'", e, g)
	}

	if e, g := "/unauthorized", res.Header().Get("Location"); e != g {
		t.Errorf("Location: expected '%v', got '%v'", e, g)
	}
}

func TestMiddlewareRules(t *testing.T) {
	resolver := staticResolver{state: session.Authenticated(session.Identity{
		Token: "tok",
		Role:  session.RoleStaff,
		Email: "lou@fair.example",
	})}

	middleware := NewMiddleware(resolver, WithRules(RuleSet{
		{Prefix: "/staff/exports", Rule: NewRule(`email endsWith "@fair.example" && role == "admin"`)},
	}))

	handler := middleware.Protect(session.RoleStaff)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("rule should have rejected the request")
	}))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/staff/exports/contacts", nil))

	if e, g := "/unauthorized", res.Header().Get("Location"); e != g {
		t.Errorf("Location: expected '%v', got '%v'", e, g)
	}
}
