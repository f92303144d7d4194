package dashboard

import (
	"context"
	"fmt"
	"net/http"

	"github.com/morelia/expodesk/internal/access"
	"github.com/morelia/expodesk/internal/backend"
	"github.com/morelia/expodesk/internal/cache"
	"github.com/morelia/expodesk/internal/media"
	"github.com/morelia/expodesk/internal/session"
)

// Events exposes the sign-in audit trail to the activity page.
type Events interface {
	ListEvents(ctx context.Context, limit int) ([]*session.Event, error)
}

type Handler struct {
	mux      *http.ServeMux
	backend  *backend.Client
	sessions *session.Store
	cache    *cache.Cache
	media    *media.Store
	events   Events

	records []recordSet
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(guard *access.Middleware, backendClient *backend.Client, sessions *session.Store, queryCache *cache.Cache, mediaStore *media.Store, events Events) *Handler {
	h := &Handler{
		mux:      &http.ServeMux{},
		backend:  backendClient,
		sessions: sessions,
		cache:    queryCache,
		media:    mediaStore,
		events:   events,
	}

	h.records = h.recordSets()

	anyRole := guard.Protect(session.RoleAdmin, session.RoleStaff)
	adminOnly := guard.Protect(session.RoleAdmin)
	staffOnly := guard.Protect(session.RoleStaff)

	handle := func(pattern string, protect func(http.Handler) http.Handler, fn http.HandlerFunc) {
		h.mux.Handle(pattern, protect(fn))
	}

	handle("GET /admin", adminOnly, h.serveOverview)
	handle("GET /staff", staffOnly, h.serveStaffHome)

	for _, set := range h.records {
		prefix := fmt.Sprintf("/admin/records/%s", set.Slug)

		protect := anyRole
		if set.AdminOnly {
			protect = adminOnly
		}

		handle(fmt.Sprintf("GET %s", prefix), protect, h.serveRecordList(set))
		handle(fmt.Sprintf("GET %s/new", prefix), protect, h.serveRecordNew(set))
		handle(fmt.Sprintf("POST %s/new", prefix), protect, h.serveRecordCreate(set))
		handle(fmt.Sprintf("GET %s/{id}/edit", prefix), protect, h.serveRecordEdit(set))
		handle(fmt.Sprintf("POST %s/{id}/edit", prefix), protect, h.serveRecordUpdate(set))

		if h.media != nil {
			handle(fmt.Sprintf("POST %s/{id}/attachments", prefix), protect, h.serveAttachmentUpload(set))
		}
	}

	if h.media != nil {
		handle("GET /media/{key...}", anyRole, h.serveAttachment)
	}

	handle("GET /admin/staff", adminOnly, h.serveStaffMembers)
	handle("GET /admin/staff/approvals", adminOnly, h.serveStaffApprovals)
	handle("GET /admin/staff/{id}", adminOnly, h.serveStaffMember)
	handle("POST /admin/staff/{id}/approve", adminOnly, h.serveStaffApprove)
	handle("GET /admin/activity", adminOnly, h.serveActivity)

	handle("POST /nav/toggle", anyRole, h.serveMenuToggle)

	return h
}

var _ http.Handler = &Handler{}
