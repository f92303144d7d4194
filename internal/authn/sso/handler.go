package sso

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/markbates/goth/gothic"
	"github.com/morelia/expodesk/internal/backend"
	"github.com/morelia/expodesk/internal/session"
	"github.com/morelia/expodesk/pkg/log"
	"github.com/pkg/errors"
)

// Provider describes a configured identity provider, as shown on the
// login page.
type Provider struct {
	ID    string
	Label string
	Icon  string
}

// Handler drives the browser round trip with an identity provider, then
// exchanges the asserted identity for platform credentials.
type Handler struct {
	mux       *http.ServeMux
	backend   *backend.Client
	sessions  *session.Store
	providers []Provider
	prefix    string
	loginURL  string
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) Providers() []Provider {
	return h.providers
}

func NewHandler(backendClient *backend.Client, sessions *session.Store, funcs ...OptionFunc) *Handler {
	opts := NewOptions(funcs...)
	h := &Handler{
		mux:       http.NewServeMux(),
		backend:   backendClient,
		sessions:  sessions,
		providers: opts.Providers,
		prefix:    opts.Prefix,
		loginURL:  opts.LoginURL,
	}

	h.mux.Handle(fmt.Sprintf("GET %s/{provider}", h.prefix), withContextProvider(http.HandlerFunc(h.handleProvider)))
	h.mux.Handle(fmt.Sprintf("GET %s/{provider}/callback", h.prefix), withContextProvider(http.HandlerFunc(h.handleProviderCallback)))

	return h
}

func (h *Handler) handleProvider(w http.ResponseWriter, r *http.Request) {
	if gothUser, err := gothic.CompleteUserAuth(w, r); err == nil {
		h.completeLogin(w, r, gothUser.Provider, gothUser.UserID, gothUser.Email)
	} else {
		gothic.BeginAuthHandler(w, r)
	}
}

func (h *Handler) handleProviderCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	gothUser, err := gothic.CompleteUserAuth(w, r)
	if err != nil {
		slog.ErrorContext(ctx, "could not complete provider auth", log.Error(errors.WithStack(err)))
		h.redirectWithError(w, r, "sso")
		return
	}

	if gothUser.Email == "" {
		slog.ErrorContext(ctx, "could not authenticate user", log.Error(errors.New("user email missing")))
		h.redirectWithError(w, r, "sso")
		return
	}

	h.completeLogin(w, r, gothUser.Provider, gothUser.UserID, gothUser.Email)
}

func (h *Handler) completeLogin(w http.ResponseWriter, r *http.Request, provider, subject, email string) {
	ctx := r.Context()

	watch, err := h.sessions.WatchSession(ctx, r)
	if err != nil {
		slog.ErrorContext(ctx, "could not snapshot session", log.Error(errors.WithStack(err)))
		h.redirectWithError(w, r, "unavailable")
		return
	}

	creds, err := h.backend.SSOLogin(ctx, provider, subject, email)
	if err != nil {
		if errors.Is(err, backend.ErrAuthenticationFailed) {
			h.redirectWithError(w, r, "unknown-account")
			return
		}

		slog.ErrorContext(ctx, "could not exchange provider identity", log.Error(errors.WithStack(err)))
		h.redirectWithError(w, r, "unavailable")
		return
	}

	identity, err := h.sessions.Commit(ctx, w, r, email, creds, watch)
	if err != nil {
		if errors.Is(err, session.ErrSuperseded) {
			http.Redirect(w, r, h.loginURL, http.StatusSeeOther)
			return
		}

		slog.ErrorContext(ctx, "could not commit session", log.Error(errors.WithStack(err)))
		h.redirectWithError(w, r, "unavailable")
		return
	}

	http.Redirect(w, r, identity.Role.Home(), http.StatusSeeOther)
}

func (h *Handler) redirectWithError(w http.ResponseWriter, r *http.Request, code string) {
	http.Redirect(w, r, fmt.Sprintf("%s?error=%s", h.loginURL, code), http.StatusSeeOther)
}

var _ http.Handler = &Handler{}

func withContextProvider(h http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		provider := r.PathValue("provider")
		r = r.WithContext(context.WithValue(r.Context(), gothic.ProviderParamKey, provider))
		h.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}
