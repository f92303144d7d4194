package dashboard

import (
	"net/url"
	"strconv"
	"time"

	"github.com/morelia/expodesk/internal/backend"
)

const formDateLayout = "2006-01-02"

func venueFields(venue *backend.Venue) []formField {
	return []formField{
		{Name: "name", Label: "Name", Type: "text", Value: venue.Name},
		{Name: "city", Label: "City", Type: "text", Value: venue.City},
		{Name: "country", Label: "Country", Type: "text", Value: venue.Country},
		{Name: "address", Label: "Address", Type: "text", Value: venue.Address},
		{Name: "capacity", Label: "Capacity", Type: "number", Value: formatInt(venue.Capacity)},
	}
}

func venueFromForm(id int64, form url.Values) *backend.Venue {
	capacity, _ := strconv.Atoi(form.Get("capacity"))

	return &backend.Venue{
		ID:       id,
		Name:     form.Get("name"),
		City:     form.Get("city"),
		Country:  form.Get("country"),
		Address:  form.Get("address"),
		Capacity: capacity,
	}
}

func exhibitionFields(exhibition *backend.Exhibition) []formField {
	return []formField{
		{Name: "title", Label: "Title", Type: "text", Value: exhibition.Title},
		{Name: "venueId", Label: "Venue ID", Type: "number", Value: formatID(exhibition.VenueID)},
		{Name: "startsAt", Label: "Starts", Type: "date", Value: formatDate(exhibition.StartsAt)},
		{Name: "endsAt", Label: "Ends", Type: "date", Value: formatDate(exhibition.EndsAt)},
		{Name: "status", Label: "Status", Type: "text", Value: exhibition.Status},
	}
}

func exhibitionFromForm(id int64, form url.Values) *backend.Exhibition {
	venueID, _ := strconv.ParseInt(form.Get("venueId"), 10, 64)
	startsAt, _ := time.Parse(formDateLayout, form.Get("startsAt"))
	endsAt, _ := time.Parse(formDateLayout, form.Get("endsAt"))

	return &backend.Exhibition{
		ID:       id,
		Title:    form.Get("title"),
		VenueID:  venueID,
		StartsAt: startsAt,
		EndsAt:   endsAt,
		Status:   form.Get("status"),
	}
}

func conferenceFields(conference *backend.Conference) []formField {
	return []formField{
		{Name: "title", Label: "Title", Type: "text", Value: conference.Title},
		{Name: "venueId", Label: "Venue ID", Type: "number", Value: formatID(conference.VenueID)},
		{Name: "startsAt", Label: "Starts", Type: "date", Value: formatDate(conference.StartsAt)},
		{Name: "endsAt", Label: "Ends", Type: "date", Value: formatDate(conference.EndsAt)},
		{Name: "status", Label: "Status", Type: "text", Value: conference.Status},
	}
}

func conferenceFromForm(id int64, form url.Values) *backend.Conference {
	venueID, _ := strconv.ParseInt(form.Get("venueId"), 10, 64)
	startsAt, _ := time.Parse(formDateLayout, form.Get("startsAt"))
	endsAt, _ := time.Parse(formDateLayout, form.Get("endsAt"))

	return &backend.Conference{
		ID:       id,
		Title:    form.Get("title"),
		VenueID:  venueID,
		StartsAt: startsAt,
		EndsAt:   endsAt,
		Status:   form.Get("status"),
	}
}

func companyFields(company *backend.Company) []formField {
	return []formField{
		{Name: "name", Label: "Name", Type: "text", Value: company.Name},
		{Name: "sector", Label: "Sector", Type: "text", Value: company.Sector},
		{Name: "city", Label: "City", Type: "text", Value: company.City},
		{Name: "country", Label: "Country", Type: "text", Value: company.Country},
	}
}

func companyFromForm(id int64, form url.Values) *backend.Company {
	return &backend.Company{
		ID:      id,
		Name:    form.Get("name"),
		Sector:  form.Get("sector"),
		City:    form.Get("city"),
		Country: form.Get("country"),
	}
}

func associationFields(association *backend.Association) []formField {
	return []formField{
		{Name: "name", Label: "Name", Type: "text", Value: association.Name},
		{Name: "field", Label: "Field", Type: "text", Value: association.Field},
	}
}

func associationFromForm(id int64, form url.Values) *backend.Association {
	return &backend.Association{
		ID:    id,
		Name:  form.Get("name"),
		Field: form.Get("field"),
	}
}

func keyContactFields(contact *backend.KeyContact) []formField {
	return []formField{
		{Name: "name", Label: "Name", Type: "text", Value: contact.Name},
		{Name: "email", Label: "Email", Type: "email", Value: contact.Email},
		{Name: "phone", Label: "Phone", Type: "tel", Value: contact.Phone},
		{Name: "companyId", Label: "Company ID", Type: "number", Value: formatID(contact.CompanyID)},
	}
}

func keyContactFromForm(id int64, form url.Values) *backend.KeyContact {
	companyID, _ := strconv.ParseInt(form.Get("companyId"), 10, 64)

	return &backend.KeyContact{
		ID:        id,
		Name:      form.Get("name"),
		Email:     form.Get("email"),
		Phone:     form.Get("phone"),
		CompanyID: companyID,
	}
}

func formatInt(n int) string {
	if n == 0 {
		return ""
	}

	return strconv.Itoa(n)
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}

	return strconv.FormatInt(id, 10)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(formDateLayout)
}
