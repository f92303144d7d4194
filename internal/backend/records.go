package backend

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

type Venue struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	City     string    `json:"city"`
	Country  string    `json:"country"`
	Address  string    `json:"address"`
	Capacity int       `json:"capacity"`
	Created  time.Time `json:"createdAt"`
}

type Exhibition struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	VenueID   int64     `json:"venueId"`
	VenueName string    `json:"venueName"`
	StartsAt  time.Time `json:"startsAt"`
	EndsAt    time.Time `json:"endsAt"`
	Status    string    `json:"status"`
}

type Conference struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	VenueID   int64     `json:"venueId"`
	VenueName string    `json:"venueName"`
	StartsAt  time.Time `json:"startsAt"`
	EndsAt    time.Time `json:"endsAt"`
	Status    string    `json:"status"`
}

type Company struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Sector  string `json:"sector"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type Association struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Field string `json:"field"`
}

type KeyContact struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CompanyID   int64  `json:"companyId"`
	CompanyName string `json:"companyName"`
}

// StaffMember statuses as the platform reports them.
const (
	StaffStatusPending  = "pending"
	StaffStatusApproved = "approved"
)

type StaffMember struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	RoleIndicator int    `json:"roleIndicator"`
	Status        string `json:"status"`
}

func (c *Client) ListVenues(ctx context.Context, token string, page int) (*Page[Venue], error) {
	return list[Venue](ctx, c, token, "/venues", page)
}

func (c *Client) GetVenue(ctx context.Context, token string, id int64) (*Venue, error) {
	return get[Venue](ctx, c, token, fmt.Sprintf("/venues/%d", id))
}

func (c *Client) CreateVenue(ctx context.Context, token string, venue *Venue) (*Venue, error) {
	return create[Venue](ctx, c, token, "/venues", venue)
}

func (c *Client) UpdateVenue(ctx context.Context, token string, venue *Venue) (*Venue, error) {
	return update[Venue](ctx, c, token, fmt.Sprintf("/venues/%d", venue.ID), venue)
}

func (c *Client) ListExhibitions(ctx context.Context, token string, page int) (*Page[Exhibition], error) {
	return list[Exhibition](ctx, c, token, "/exhibitions", page)
}

func (c *Client) GetExhibition(ctx context.Context, token string, id int64) (*Exhibition, error) {
	return get[Exhibition](ctx, c, token, fmt.Sprintf("/exhibitions/%d", id))
}

func (c *Client) CreateExhibition(ctx context.Context, token string, exhibition *Exhibition) (*Exhibition, error) {
	return create[Exhibition](ctx, c, token, "/exhibitions", exhibition)
}

func (c *Client) UpdateExhibition(ctx context.Context, token string, exhibition *Exhibition) (*Exhibition, error) {
	return update[Exhibition](ctx, c, token, fmt.Sprintf("/exhibitions/%d", exhibition.ID), exhibition)
}

func (c *Client) ListConferences(ctx context.Context, token string, page int) (*Page[Conference], error) {
	return list[Conference](ctx, c, token, "/conferences", page)
}

func (c *Client) GetConference(ctx context.Context, token string, id int64) (*Conference, error) {
	return get[Conference](ctx, c, token, fmt.Sprintf("/conferences/%d", id))
}

func (c *Client) CreateConference(ctx context.Context, token string, conference *Conference) (*Conference, error) {
	return create[Conference](ctx, c, token, "/conferences", conference)
}

func (c *Client) UpdateConference(ctx context.Context, token string, conference *Conference) (*Conference, error) {
	return update[Conference](ctx, c, token, fmt.Sprintf("/conferences/%d", conference.ID), conference)
}

func (c *Client) ListCompanies(ctx context.Context, token string, page int) (*Page[Company], error) {
	return list[Company](ctx, c, token, "/companies", page)
}

func (c *Client) GetCompany(ctx context.Context, token string, id int64) (*Company, error) {
	return get[Company](ctx, c, token, fmt.Sprintf("/companies/%d", id))
}

func (c *Client) CreateCompany(ctx context.Context, token string, company *Company) (*Company, error) {
	return create[Company](ctx, c, token, "/companies", company)
}

func (c *Client) UpdateCompany(ctx context.Context, token string, company *Company) (*Company, error) {
	return update[Company](ctx, c, token, fmt.Sprintf("/companies/%d", company.ID), company)
}

func (c *Client) ListAssociations(ctx context.Context, token string, page int) (*Page[Association], error) {
	return list[Association](ctx, c, token, "/associations", page)
}

func (c *Client) GetAssociation(ctx context.Context, token string, id int64) (*Association, error) {
	return get[Association](ctx, c, token, fmt.Sprintf("/associations/%d", id))
}

func (c *Client) CreateAssociation(ctx context.Context, token string, association *Association) (*Association, error) {
	return create[Association](ctx, c, token, "/associations", association)
}

func (c *Client) UpdateAssociation(ctx context.Context, token string, association *Association) (*Association, error) {
	return update[Association](ctx, c, token, fmt.Sprintf("/associations/%d", association.ID), association)
}

func (c *Client) ListKeyContacts(ctx context.Context, token string, page int) (*Page[KeyContact], error) {
	return list[KeyContact](ctx, c, token, "/key-contacts", page)
}

func (c *Client) GetKeyContact(ctx context.Context, token string, id int64) (*KeyContact, error) {
	return get[KeyContact](ctx, c, token, fmt.Sprintf("/key-contacts/%d", id))
}

func (c *Client) CreateKeyContact(ctx context.Context, token string, contact *KeyContact) (*KeyContact, error) {
	return create[KeyContact](ctx, c, token, "/key-contacts", contact)
}

func (c *Client) UpdateKeyContact(ctx context.Context, token string, contact *KeyContact) (*KeyContact, error) {
	return update[KeyContact](ctx, c, token, fmt.Sprintf("/key-contacts/%d", contact.ID), contact)
}

func (c *Client) ListStaff(ctx context.Context, token string, page int) (*Page[StaffMember], error) {
	return list[StaffMember](ctx, c, token, "/staff", page)
}

func (c *Client) GetStaffMember(ctx context.Context, token string, id int64) (*StaffMember, error) {
	return get[StaffMember](ctx, c, token, fmt.Sprintf("/staff/%d", id))
}

// ApproveStaff flips a pending staff member to approved. The transition
// itself happens on the platform side; the dashboard only requests it.
func (c *Client) ApproveStaff(ctx context.Context, token string, id int64) (*StaffMember, error) {
	env, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/staff/%d/approve", id), token, nil, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return decodeItem[StaffMember](env)
}
