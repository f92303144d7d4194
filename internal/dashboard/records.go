package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/morelia/expodesk/internal/backend"
	"github.com/morelia/expodesk/internal/cache"
	"github.com/pkg/errors"
)

// recordSet describes one kind of platform record and how the dashboard
// lists and edits it. All six sets share the same handlers.
type recordSet struct {
	Slug      string
	Title     string
	Entity    string
	AdminOnly bool
	Columns   []string

	list   func(ctx context.Context, token string, page int) (*listResult, error)
	find   func(ctx context.Context, token string, id int64) ([]formField, error)
	create func(ctx context.Context, token string, form url.Values) error
	update func(ctx context.Context, token string, id int64, form url.Values) error
	fields func() []formField
}

type listResult struct {
	Rows        []recordRow
	CurrentPage int
	TotalPages  int
	HasMore     bool
}

func (h *Handler) recordSets() []recordSet {
	return []recordSet{
		{
			Slug:    "venues",
			Title:   "Venues",
			Entity:  "venues",
			Columns: []string{"Name", "City", "Country", "Capacity"},
			list: func(ctx context.Context, token string, page int) (*listResult, error) {
				return listRecords(h.cache, token, "venues", page, func() (*backend.Page[backend.Venue], error) {
					return h.backend.ListVenues(ctx, token, page)
				}, func(venue backend.Venue) recordRow {
					return recordRow{
						ID:    venue.ID,
						Cells: []string{venue.Name, venue.City, venue.Country, humanize.Comma(int64(venue.Capacity))},
					}
				})
			},
			find: func(ctx context.Context, token string, id int64) ([]formField, error) {
				venue, err := h.backend.GetVenue(ctx, token, id)
				if err != nil {
					return nil, errors.WithStack(err)
				}

				return venueFields(venue), nil
			},
			create: func(ctx context.Context, token string, form url.Values) error {
				_, err := h.backend.CreateVenue(ctx, token, venueFromForm(0, form))
				return errors.WithStack(err)
			},
			update: func(ctx context.Context, token string, id int64, form url.Values) error {
				_, err := h.backend.UpdateVenue(ctx, token, venueFromForm(id, form))
				return errors.WithStack(err)
			},
			fields: func() []formField {
				return venueFields(&backend.Venue{})
			},
		},
		{
			Slug:    "exhibitions",
			Title:   "Exhibitions",
			Entity:  "exhibitions",
			Columns: []string{"Title", "Venue", "Starts", "Ends", "Status"},
			list: func(ctx context.Context, token string, page int) (*listResult, error) {
				return listRecords(h.cache, token, "exhibitions", page, func() (*backend.Page[backend.Exhibition], error) {
					return h.backend.ListExhibitions(ctx, token, page)
				}, func(exhibition backend.Exhibition) recordRow {
					return recordRow{
						ID: exhibition.ID,
						Cells: []string{
							exhibition.Title,
							exhibition.VenueName,
							exhibition.StartsAt.Format("2006-01-02"),
							exhibition.EndsAt.Format("2006-01-02"),
							exhibition.Status,
						},
					}
				})
			},
			find: func(ctx context.Context, token string, id int64) ([]formField, error) {
				exhibition, err := h.backend.GetExhibition(ctx, token, id)
				if err != nil {
					return nil, errors.WithStack(err)
				}

				return exhibitionFields(exhibition), nil
			},
			create: func(ctx context.Context, token string, form url.Values) error {
				_, err := h.backend.CreateExhibition(ctx, token, exhibitionFromForm(0, form))
				return errors.WithStack(err)
			},
			update: func(ctx context.Context, token string, id int64, form url.Values) error {
				_, err := h.backend.UpdateExhibition(ctx, token, exhibitionFromForm(id, form))
				return errors.WithStack(err)
			},
			fields: func() []formField {
				return exhibitionFields(&backend.Exhibition{})
			},
		},
		{
			Slug:    "conferences",
			Title:   "Conferences",
			Entity:  "conferences",
			Columns: []string{"Title", "Venue", "Starts", "Ends", "Status"},
			list: func(ctx context.Context, token string, page int) (*listResult, error) {
				return listRecords(h.cache, token, "conferences", page, func() (*backend.Page[backend.Conference], error) {
					return h.backend.ListConferences(ctx, token, page)
				}, func(conference backend.Conference) recordRow {
					return recordRow{
						ID: conference.ID,
						Cells: []string{
							conference.Title,
							conference.VenueName,
							conference.StartsAt.Format("2006-01-02"),
							conference.EndsAt.Format("2006-01-02"),
							conference.Status,
						},
					}
				})
			},
			find: func(ctx context.Context, token string, id int64) ([]formField, error) {
				conference, err := h.backend.GetConference(ctx, token, id)
				if err != nil {
					return nil, errors.WithStack(err)
				}

				return conferenceFields(conference), nil
			},
			create: func(ctx context.Context, token string, form url.Values) error {
				_, err := h.backend.CreateConference(ctx, token, conferenceFromForm(0, form))
				return errors.WithStack(err)
			},
			update: func(ctx context.Context, token string, id int64, form url.Values) error {
				_, err := h.backend.UpdateConference(ctx, token, conferenceFromForm(id, form))
				return errors.WithStack(err)
			},
			fields: func() []formField {
				return conferenceFields(&backend.Conference{})
			},
		},
		{
			Slug:    "companies",
			Title:   "Companies",
			Entity:  "companies",
			Columns: []string{"Name", "Sector", "City", "Country"},
			list: func(ctx context.Context, token string, page int) (*listResult, error) {
				return listRecords(h.cache, token, "companies", page, func() (*backend.Page[backend.Company], error) {
					return h.backend.ListCompanies(ctx, token, page)
				}, func(company backend.Company) recordRow {
					return recordRow{
						ID:    company.ID,
						Cells: []string{company.Name, company.Sector, company.City, company.Country},
					}
				})
			},
			find: func(ctx context.Context, token string, id int64) ([]formField, error) {
				company, err := h.backend.GetCompany(ctx, token, id)
				if err != nil {
					return nil, errors.WithStack(err)
				}

				return companyFields(company), nil
			},
			create: func(ctx context.Context, token string, form url.Values) error {
				_, err := h.backend.CreateCompany(ctx, token, companyFromForm(0, form))
				return errors.WithStack(err)
			},
			update: func(ctx context.Context, token string, id int64, form url.Values) error {
				_, err := h.backend.UpdateCompany(ctx, token, companyFromForm(id, form))
				return errors.WithStack(err)
			},
			fields: func() []formField {
				return companyFields(&backend.Company{})
			},
		},
		{
			Slug:      "associations",
			Title:     "Associations",
			Entity:    "associations",
			AdminOnly: true,
			Columns:   []string{"Name", "Field"},
			list: func(ctx context.Context, token string, page int) (*listResult, error) {
				return listRecords(h.cache, token, "associations", page, func() (*backend.Page[backend.Association], error) {
					return h.backend.ListAssociations(ctx, token, page)
				}, func(association backend.Association) recordRow {
					return recordRow{
						ID:    association.ID,
						Cells: []string{association.Name, association.Field},
					}
				})
			},
			find: func(ctx context.Context, token string, id int64) ([]formField, error) {
				association, err := h.backend.GetAssociation(ctx, token, id)
				if err != nil {
					return nil, errors.WithStack(err)
				}

				return associationFields(association), nil
			},
			create: func(ctx context.Context, token string, form url.Values) error {
				_, err := h.backend.CreateAssociation(ctx, token, associationFromForm(0, form))
				return errors.WithStack(err)
			},
			update: func(ctx context.Context, token string, id int64, form url.Values) error {
				_, err := h.backend.UpdateAssociation(ctx, token, associationFromForm(id, form))
				return errors.WithStack(err)
			},
			fields: func() []formField {
				return associationFields(&backend.Association{})
			},
		},
		{
			Slug:    "key-contacts",
			Title:   "Key Contacts",
			Entity:  "key-contacts",
			Columns: []string{"Name", "Email", "Phone", "Company"},
			list: func(ctx context.Context, token string, page int) (*listResult, error) {
				return listRecords(h.cache, token, "key-contacts", page, func() (*backend.Page[backend.KeyContact], error) {
					return h.backend.ListKeyContacts(ctx, token, page)
				}, func(contact backend.KeyContact) recordRow {
					return recordRow{
						ID:    contact.ID,
						Cells: []string{contact.Name, contact.Email, contact.Phone, contact.CompanyName},
					}
				})
			},
			find: func(ctx context.Context, token string, id int64) ([]formField, error) {
				contact, err := h.backend.GetKeyContact(ctx, token, id)
				if err != nil {
					return nil, errors.WithStack(err)
				}

				return keyContactFields(contact), nil
			},
			create: func(ctx context.Context, token string, form url.Values) error {
				_, err := h.backend.CreateKeyContact(ctx, token, keyContactFromForm(0, form))
				return errors.WithStack(err)
			},
			update: func(ctx context.Context, token string, id int64, form url.Values) error {
				_, err := h.backend.UpdateKeyContact(ctx, token, keyContactFromForm(id, form))
				return errors.WithStack(err)
			},
			fields: func() []formField {
				return keyContactFields(&backend.KeyContact{})
			},
		},
	}
}

// listRecords fetches one page of records through the query cache so
// that repeated navigation does not hammer the platform.
func listRecords[T any](queryCache *cache.Cache, token, slug string, page int, fetch func() (*backend.Page[T], error), toRow func(T) recordRow) (*listResult, error) {
	key := fmt.Sprintf("records:%s:page:%d", slug, page)

	result, err := cache.Fetch(queryCache, token, key, func() (*listResult, error) {
		fetched, err := fetch()
		if err != nil {
			return nil, errors.WithStack(err)
		}

		rows := make([]recordRow, 0, len(fetched.Items))
		for _, item := range fetched.Items {
			rows = append(rows, toRow(item))
		}

		return &listResult{
			Rows:        rows,
			CurrentPage: fetched.CurrentPage,
			TotalPages:  fetched.TotalPages,
			HasMore:     fetched.HasMore,
		}, nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return result, nil
}

func (h *Handler) serveRecordList(set recordSet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		data, identity, err := h.newPageData(r, set.Title)
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

		result, err := set.list(ctx, identity.Token, page)
		if err != nil {
			if h.resolveFailure(w, r, err) {
				return
			}

			data.Notice = unavailableNotice
			result = &listResult{CurrentPage: page}
		}

		h.render(w, r, "records", recordListTemplateData{
			pageData:    data,
			Title:       set.Title,
			Slug:        set.Slug,
			Columns:     set.Columns,
			Rows:        result.Rows,
			CurrentPage: result.CurrentPage,
			TotalPages:  result.TotalPages,
			HasMore:     result.HasMore,
		})
	}
}

func (h *Handler) serveRecordNew(set recordSet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, _, err := h.newPageData(r, fmt.Sprintf("New %s", set.Title))
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		h.render(w, r, "record_form", recordFormTemplateData{
			pageData:   data,
			Title:      fmt.Sprintf("New %s", set.Title),
			Slug:       set.Slug,
			FormAction: fmt.Sprintf("/admin/records/%s/new", set.Slug),
			Fields:     set.fields(),
		})
	}
}

func (h *Handler) serveRecordCreate(set recordSet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		data, identity, err := h.newPageData(r, fmt.Sprintf("New %s", set.Title))
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		if err := set.create(ctx, identity.Token, r.PostForm); err != nil {
			if h.resolveFailure(w, r, err) {
				return
			}

			h.render(w, r, "record_form", recordFormTemplateData{
				pageData:     data,
				Title:        fmt.Sprintf("New %s", set.Title),
				Slug:         set.Slug,
				FormAction:   fmt.Sprintf("/admin/records/%s/new", set.Slug),
				Fields:       fieldsFromForm(set.fields(), r.PostForm),
				ErrorMessage: unavailableNotice,
			})

			return
		}

		h.cache.PurgeOwner(identity.Token)

		http.Redirect(w, r, fmt.Sprintf("/admin/records/%s", set.Slug), http.StatusSeeOther)
	}
}

func (h *Handler) serveRecordEdit(set recordSet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		data, identity, err := h.newPageData(r, fmt.Sprintf("Edit %s", set.Title))
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		fields, err := set.find(ctx, identity.Token, id)
		if err != nil {
			if h.resolveFailure(w, r, err) {
				return
			}

			data.Notice = unavailableNotice
			fields = set.fields()
		}

		form := recordFormTemplateData{
			pageData:   data,
			Title:      fmt.Sprintf("Edit %s", set.Title),
			Slug:       set.Slug,
			FormAction: fmt.Sprintf("/admin/records/%s/%d/edit", set.Slug, id),
			IsEdit:     true,
			Fields:     fields,
		}

		if h.media != nil {
			form.CanAttach = true
			form.AttachAction = fmt.Sprintf("/admin/records/%s/%d/attachments", set.Slug, id)
			form.Attachments = h.listAttachments(ctx, set.Entity, id)
		}

		h.render(w, r, "record_form", form)
	}
}

func (h *Handler) serveRecordUpdate(set recordSet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		data, identity, err := h.newPageData(r, fmt.Sprintf("Edit %s", set.Title))
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		if err := set.update(ctx, identity.Token, id, r.PostForm); err != nil {
			if h.resolveFailure(w, r, err) {
				return
			}

			h.render(w, r, "record_form", recordFormTemplateData{
				pageData:     data,
				Title:        fmt.Sprintf("Edit %s", set.Title),
				Slug:         set.Slug,
				FormAction:   fmt.Sprintf("/admin/records/%s/%d/edit", set.Slug, id),
				IsEdit:       true,
				Fields:       fieldsFromForm(set.fields(), r.PostForm),
				ErrorMessage: unavailableNotice,
			})

			return
		}

		h.cache.PurgeOwner(identity.Token)

		http.Redirect(w, r, fmt.Sprintf("/admin/records/%s", set.Slug), http.StatusSeeOther)
	}
}

// fieldsFromForm rebuilds a form from what the user submitted so that a
// failed save does not lose their input.
func fieldsFromForm(blank []formField, form url.Values) []formField {
	fields := make([]formField, 0, len(blank))
	for _, field := range blank {
		field.Value = form.Get(field.Name)
		fields = append(fields, field)
	}

	return fields
}
