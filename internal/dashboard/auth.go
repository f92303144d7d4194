package dashboard

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/morelia/expodesk/internal/authn/sso"
	"github.com/morelia/expodesk/internal/backend"
	"github.com/morelia/expodesk/internal/session"
	"github.com/morelia/expodesk/internal/ui"
	"github.com/morelia/expodesk/pkg/log"
	"github.com/pkg/errors"
)

// AuthHandler serves the pages reachable without a session: the login
// form, logout and the unauthorized notice.
type AuthHandler struct {
	mux       *http.ServeMux
	sessions  *session.Store
	providers []sso.Provider
}

// ServeHTTP implements http.Handler.
func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewAuthHandler(sessions *session.Store, providers []sso.Provider, limitLogin func(http.Handler) http.Handler) *AuthHandler {
	h := &AuthHandler{
		mux:       &http.ServeMux{},
		sessions:  sessions,
		providers: providers,
	}

	h.mux.HandleFunc("GET /{$}", h.serveRoot)
	h.mux.HandleFunc("GET /auth/login", h.serveLoginPage)
	h.mux.Handle("POST /auth/login", limitLogin(http.HandlerFunc(h.serveLogin)))
	h.mux.HandleFunc("GET /auth/logout", h.serveLogout)
	h.mux.HandleFunc("GET /unauthorized", h.serveUnauthorized)

	return h
}

func (h *AuthHandler) serveRoot(w http.ResponseWriter, r *http.Request) {
	state := h.sessions.Resolve(r)

	if !state.Resolved() {
		w.Header().Set("Retry-After", "1")
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)

		return
	}

	if identity := state.Identity(); identity != nil {
		http.Redirect(w, r, identity.Role.Home(), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}

func (h *AuthHandler) serveLoginPage(w http.ResponseWriter, r *http.Request) {
	state := h.sessions.Resolve(r)
	if identity := state.Identity(); identity != nil {
		http.Redirect(w, r, identity.Role.Home(), http.StatusSeeOther)
		return
	}

	h.renderLogin(w, r, loginTemplateData{
		HeadTemplateData: ui.HeadTemplateData{
			PageTitle: "Sign in",
		},
		Next:      safeNext(r.URL.Query().Get("next")),
		Providers: h.providers,
	})
}

func (h *AuthHandler) serveLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.PostForm.Get("email"))
	password := r.PostForm.Get("password")
	next := safeNext(r.PostForm.Get("next"))

	data := loginTemplateData{
		HeadTemplateData: ui.HeadTemplateData{
			PageTitle: "Sign in",
		},
		Email:     email,
		Next:      next,
		Providers: h.providers,
	}

	identity, err := h.sessions.Login(ctx, w, r, email, password)
	if err != nil {
		switch {
		case errors.Is(err, backend.ErrAuthenticationFailed):
			data.ErrorMessage = "Unknown email or wrong password."

		case errors.Is(err, session.ErrSuperseded):
			http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
			return

		default:
			slog.ErrorContext(ctx, "could not sign in", log.Error(errors.WithStack(err)))
			data.ErrorMessage = "The platform could not be reached, try again in a moment."
		}

		h.renderLogin(w, r, data)

		return
	}

	if next != "" {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, identity.Role.Home(), http.StatusSeeOther)
}

func (h *AuthHandler) serveLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.sessions.Logout(w, r); err != nil {
		slog.ErrorContext(ctx, "could not sign out", log.Error(errors.WithStack(err)))
	}

	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}

func (h *AuthHandler) serveUnauthorized(w http.ResponseWriter, r *http.Request) {
	data := unauthorizedTemplateData{
		HeadTemplateData: ui.HeadTemplateData{
			PageTitle: "Unauthorized",
		},
		HomeHref: "/auth/login",
	}

	if identity := h.sessions.Resolve(r).Identity(); identity != nil {
		data.HomeHref = identity.Role.Home()
	}

	w.WriteHeader(http.StatusForbidden)

	if err := templates.ExecuteTemplate(w, "unauthorized", data); err != nil {
		slog.ErrorContext(r.Context(), "could not execute template", log.Error(errors.WithStack(err)))
	}
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, data loginTemplateData) {
	if err := templates.ExecuteTemplate(w, "login", data); err != nil {
		slog.ErrorContext(r.Context(), "could not execute template", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// safeNext only honors redirect targets inside the dashboard.
func safeNext(next string) string {
	if next == "" {
		return ""
	}

	parsed, err := url.Parse(next)
	if err != nil || parsed.IsAbs() || parsed.Host != "" || !strings.HasPrefix(parsed.Path, "/") {
		return ""
	}

	return parsed.Path
}

var _ http.Handler = &AuthHandler{}
