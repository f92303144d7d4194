package dashboard

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/morelia/expodesk/internal/access"
	"github.com/morelia/expodesk/internal/backend"
	"github.com/morelia/expodesk/internal/nav"
	"github.com/morelia/expodesk/internal/session"
	"github.com/morelia/expodesk/internal/ui"
	"github.com/morelia/expodesk/pkg/log"
	"github.com/pkg/errors"
)

const unavailableNotice = "The platform could not be reached. Showing the page without fresh data, try again in a moment."

// newPageData assembles the chrome shared by every signed-in page: the
// navbar and the sidebar pruned to the identity's role, with the group
// holding the current route force-opened.
func (h *Handler) newPageData(r *http.Request, title string) (pageData, *session.Identity, error) {
	identity, err := access.ContextIdentity(r.Context())
	if err != nil {
		return pageData{}, nil, errors.WithStack(err)
	}

	items := nav.Render(nav.Forest(), identity.Role, r.URL.Path, h.sessions.MenuOpen(r))

	return pageData{
		HeadTemplateData: ui.HeadTemplateData{
			PageTitle: title,
		},
		NavbarTemplateData: ui.NavbarTemplateData{
			Email:       identity.Email,
			NavbarItems: []ui.NavbarItem{ui.NavbarItemLogout},
		},
		SidebarTemplateData: ui.SidebarTemplateData{
			SidebarItems: items,
		},
	}, identity, nil
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	ctx := r.Context()

	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(ctx, "could not execute template", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// resolveFailure handles the platform errors that end the request. It
// returns false for transient failures, leaving the caller to render
// the page with an inline notice instead.
func (h *Handler) resolveFailure(w http.ResponseWriter, r *http.Request, err error) bool {
	ctx := r.Context()

	if errors.Is(err, backend.ErrSessionExpired) {
		if err := h.sessions.Invalidate(w, r); err != nil {
			slog.ErrorContext(ctx, "could not invalidate session", log.Error(errors.WithStack(err)))
		}

		http.Redirect(w, r, fmt.Sprintf("/auth/login?next=%s", url.QueryEscape(r.URL.Path)), http.StatusSeeOther)

		return true
	}

	if errors.Is(err, backend.ErrForbidden) {
		// The token is still valid, the platform just denied this
		// operation. Keep the session.
		http.Redirect(w, r, "/unauthorized", http.StatusSeeOther)

		return true
	}

	if errors.Is(err, backend.ErrNotFound) {
		http.NotFound(w, r)

		return true
	}

	slog.ErrorContext(ctx, "could not query platform", log.Error(errors.WithStack(err)))

	return false
}
