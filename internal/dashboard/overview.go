package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/morelia/expodesk/internal/backend"
	"github.com/morelia/expodesk/internal/cache"
	"github.com/morelia/expodesk/pkg/log"
	"github.com/pkg/errors"
)

const recentEventCount = 10

func (h *Handler) serveOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, identity, err := h.newPageData(r, "Overview")
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	overview := overviewTemplateData{
		pageData: data,
		Counts:   make([]countTemplateData, 0),
		Events:   make([]eventTemplateData, 0),
	}

	counts, err := h.collectCounts(ctx, identity.Token)
	if err != nil {
		if h.resolveFailure(w, r, err) {
			return
		}

		overview.Notice = unavailableNotice
	}

	overview.Counts = counts

	events, err := h.events.ListEvents(ctx, recentEventCount)
	if err != nil {
		slog.ErrorContext(ctx, "could not list sign-in events", log.Error(errors.WithStack(err)))
	} else {
		for _, event := range events {
			overview.Events = append(overview.Events, newEventTemplateData(event))
		}
	}

	h.render(w, r, "overview", overview)
}

// collectCounts fetches the first page of each record kind through the
// query cache. The platform does not report grand totals, so the card
// shows the first page count, flagged when further pages exist.
func (h *Handler) collectCounts(ctx context.Context, token string) ([]countTemplateData, error) {
	counts := make([]countTemplateData, 0, len(h.records))

	for _, set := range h.records {
		result, err := set.list(ctx, token, 1)
		if err != nil {
			return counts, errors.WithStack(err)
		}

		counts = append(counts, countTemplateData{
			Label:   set.Title,
			Href:    "/admin/records/" + set.Slug,
			Count:   len(result.Rows),
			HasMore: result.HasMore,
		})
	}

	return counts, nil
}

func (h *Handler) serveStaffHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, identity, err := h.newPageData(r, "My Desk")
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	home := staffHomeTemplateData{
		pageData: data,
		Contacts: make([]contactTemplateData, 0),
	}

	contacts, err := cache.Fetch(h.cache, identity.Token, "staff-home:key-contacts", func() (*backend.Page[backend.KeyContact], error) {
		return h.backend.ListKeyContacts(ctx, identity.Token, 1)
	})
	if err != nil {
		if h.resolveFailure(w, r, err) {
			return
		}

		home.Notice = unavailableNotice
	} else {
		for _, contact := range contacts.Items {
			home.Contacts = append(home.Contacts, contactTemplateData{
				Name:    contact.Name,
				Email:   contact.Email,
				Phone:   contact.Phone,
				Company: contact.CompanyName,
			})
		}
	}

	h.render(w, r, "staff_home", home)
}
