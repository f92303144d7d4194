package dashboard

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/morelia/expodesk/pkg/log"
	"github.com/pkg/errors"
)

// serveMenuToggle flips one sidebar group open or closed and sends the
// user back where they came from.
func (h *Handler) serveMenuToggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	label := r.PostForm.Get("label")
	if label == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if _, err := h.sessions.ToggleMenu(w, r, label); err != nil {
		slog.ErrorContext(ctx, "could not toggle menu group", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, safeReturnPath(r), http.StatusSeeOther)
}

// safeReturnPath only ever redirects inside the dashboard.
func safeReturnPath(r *http.Request) string {
	referer, err := url.Parse(r.Referer())
	if err != nil || referer.Path == "" || referer.Host != r.Host {
		return "/"
	}

	return referer.Path
}
