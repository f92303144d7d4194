package dashboard

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/morelia/expodesk/internal/access"
	"github.com/morelia/expodesk/internal/backend"
	"github.com/morelia/expodesk/internal/cache"
	"github.com/morelia/expodesk/internal/session"
	"github.com/morelia/expodesk/pkg/log"
	"github.com/pkg/errors"
)

const activityEventCount = 100

func (h *Handler) serveStaffMembers(w http.ResponseWriter, r *http.Request) {
	h.serveStaffList(w, r, "Staff Members", "/admin/staff", false)
}

func (h *Handler) serveStaffApprovals(w http.ResponseWriter, r *http.Request) {
	h.serveStaffList(w, r, "Pending Approvals", "/admin/staff/approvals", true)
}

func (h *Handler) serveStaffList(w http.ResponseWriter, r *http.Request, title, basePath string, pendingOnly bool) {
	ctx := r.Context()

	data, identity, err := h.newPageData(r, title)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}

	staff := staffTemplateData{
		pageData:    data,
		Members:     make([]staffMemberTemplateData, 0),
		PendingOnly: pendingOnly,
		BasePath:    basePath,
		CurrentPage: page,
	}

	result, err := cache.Fetch(h.cache, identity.Token, fmt.Sprintf("staff:page:%d", page), func() (*backend.Page[backend.StaffMember], error) {
		return h.backend.ListStaff(ctx, identity.Token, page)
	})
	if err != nil {
		if h.resolveFailure(w, r, err) {
			return
		}

		staff.Notice = unavailableNotice
	} else {
		staff.CurrentPage = result.CurrentPage
		staff.TotalPages = result.TotalPages
		staff.HasMore = result.HasMore

		for _, member := range result.Items {
			if pendingOnly && member.Status != backend.StaffStatusPending {
				continue
			}

			staff.Members = append(staff.Members, newStaffMemberTemplateData(member))
		}
	}

	if failed := r.URL.Query().Get("error"); failed != "" {
		staff.ErrorMessage = "The approval could not be completed, try again in a moment."
	}

	h.render(w, r, "staff", staff)
}

func newStaffMemberTemplateData(member backend.StaffMember) staffMemberTemplateData {
	role := session.RoleStaff
	if parsed, err := session.RoleFromIndicator(member.RoleIndicator); err == nil {
		role = parsed
	}

	return staffMemberTemplateData{
		ID:     member.ID,
		Name:   member.Name,
		Email:  member.Email,
		Role:   string(role),
		Status: member.Status,
	}
}

func (h *Handler) serveStaffMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, identity, err := h.newPageData(r, "Staff Member")
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	detail := staffDetailTemplateData{
		pageData: data,
	}

	member, err := h.backend.GetStaffMember(ctx, identity.Token, id)
	if err != nil {
		if h.resolveFailure(w, r, err) {
			return
		}

		detail.Notice = unavailableNotice
	} else {
		detail.Found = true
		detail.Member = newStaffMemberTemplateData(*member)
	}

	h.render(w, r, "staff_member", detail)
}

func (h *Handler) serveStaffApprove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := access.ContextIdentity(ctx)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if _, err := h.backend.ApproveStaff(ctx, identity.Token, id); err != nil {
		if h.resolveFailure(w, r, err) {
			return
		}

		http.Redirect(w, r, "/admin/staff/approvals?error=approve", http.StatusSeeOther)

		return
	}

	h.cache.PurgeOwner(identity.Token)

	http.Redirect(w, r, "/admin/staff/approvals", http.StatusSeeOther)
}

func (h *Handler) serveActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, _, err := h.newPageData(r, "Activity")
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	activity := activityTemplateData{
		pageData: data,
		Events:   make([]eventTemplateData, 0),
	}

	events, err := h.events.ListEvents(ctx, activityEventCount)
	if err != nil {
		slog.ErrorContext(ctx, "could not list sign-in events", log.Error(errors.WithStack(err)))
		activity.Notice = "The activity log could not be read."
	} else {
		for _, event := range events {
			activity.Events = append(activity.Events, newEventTemplateData(event))
		}
	}

	h.render(w, r, "activity", activity)
}
