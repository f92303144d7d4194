package access

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/morelia/expodesk/internal/session"
	"github.com/morelia/expodesk/pkg/log"
	"github.com/pkg/errors"
)

// Resolver reads the session state of a request.
type Resolver interface {
	Resolve(r *http.Request) session.State
}

// Middleware is the single route protection mechanism: it resolves the
// session, evaluates the policy and either passes the request on with
// the identity in its context or redirects.
type Middleware struct {
	resolver        Resolver
	rules           RuleSet
	loginURL        string
	unauthorizedURL string
}

type MiddlewareOptionFunc func(opts *MiddlewareOptions)

type MiddlewareOptions struct {
	Rules           RuleSet
	LoginURL        string
	UnauthorizedURL string
}

func NewMiddlewareOptions(funcs ...MiddlewareOptionFunc) *MiddlewareOptions {
	opts := &MiddlewareOptions{
		LoginURL:        "/auth/login",
		UnauthorizedURL: "/unauthorized",
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithRules(rules RuleSet) MiddlewareOptionFunc {
	return func(opts *MiddlewareOptions) {
		opts.Rules = rules
	}
}

func WithLoginURL(url string) MiddlewareOptionFunc {
	return func(opts *MiddlewareOptions) {
		opts.LoginURL = url
	}
}

func WithUnauthorizedURL(url string) MiddlewareOptionFunc {
	return func(opts *MiddlewareOptions) {
		opts.UnauthorizedURL = url
	}
}

func NewMiddleware(resolver Resolver, funcs ...MiddlewareOptionFunc) *Middleware {
	opts := NewMiddlewareOptions(funcs...)

	return &Middleware{
		resolver:        resolver,
		rules:           opts.Rules,
		loginURL:        opts.LoginURL,
		unauthorizedURL: opts.UnauthorizedURL,
	}
}

// Protect gates a handler behind the given roles. An empty role set
// only requires an authenticated session.
func (m *Middleware) Protect(required ...session.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			state := m.resolver.Resolve(r)

			switch Evaluate(state, required...) {
			case Pending:
				// Neither protected content nor a redirect while the
				// session is unresolved.
				w.Header().Set("Retry-After", "1")
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
				return

			case RedirectLogin:
				query := url.Values{}
				query.Set("next", r.URL.Path)
				http.Redirect(w, r, m.loginURL+"?"+query.Encode(), http.StatusSeeOther)
				return

			case RedirectUnauthorized:
				http.Redirect(w, r, m.unauthorizedURL, http.StatusSeeOther)
				return
			}

			identity := state.Identity()

			allowed, err := m.rules.Evaluate(r.URL.Path, identity)
			if err != nil {
				slog.ErrorContext(ctx, "could not evaluate access rules", log.Error(errors.WithStack(err)))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			if !allowed {
				http.Redirect(w, r, m.unauthorizedURL, http.StatusSeeOther)
				return
			}

			ctx = setContextIdentity(ctx, identity)
			ctx = log.WithAttrs(ctx,
				slog.String("email", identity.Email),
				slog.String("role", string(identity.Role)),
			)

			next.ServeHTTP(w, r.WithContext(ctx))
		}

		return http.HandlerFunc(fn)
	}
}
