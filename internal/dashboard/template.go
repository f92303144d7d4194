package dashboard

import (
	"embed"
	"html/template"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/morelia/expodesk/internal/authn/sso"
	"github.com/morelia/expodesk/internal/session"
	"github.com/morelia/expodesk/internal/ui"
	"github.com/pkg/errors"
)

//go:embed templates/**
var templateFs embed.FS

var templates *template.Template

func init() {
	tmpl, err := ui.Templates(nil, templateFs)
	if err != nil {
		panic(errors.WithStack(err))
	}

	templates = tmpl
}

// pageData is the common chrome of every signed-in page.
type pageData struct {
	ui.HeadTemplateData
	ui.NavbarTemplateData
	ui.SidebarTemplateData

	// Notice is shown as an inline warning, for example when the
	// platform could not be reached and the page renders without data.
	Notice string
}

type overviewTemplateData struct {
	pageData
	Counts []countTemplateData
	Events []eventTemplateData
}

type countTemplateData struct {
	Label string
	Href  string
	Count int

	// HasMore marks a count that only covers the first page.
	HasMore bool
}

type eventTemplateData struct {
	Email     string
	Role      string
	Kind      string
	HumanTime string
}

func newEventTemplateData(event *session.Event) eventTemplateData {
	return eventTemplateData{
		Email:     event.Email,
		Role:      string(event.Role),
		Kind:      string(event.Kind),
		HumanTime: humanize.Time(event.CreatedAt),
	}
}

type staffHomeTemplateData struct {
	pageData
	Contacts []contactTemplateData
}

type contactTemplateData struct {
	Name    string
	Email   string
	Phone   string
	Company string
}

type recordListTemplateData struct {
	pageData
	Title       string
	Slug        string
	Columns     []string
	Rows        []recordRow
	CurrentPage int
	TotalPages  int
	HasMore     bool
}

type recordRow struct {
	ID    int64
	Cells []string
}

type recordFormTemplateData struct {
	pageData
	Title        string
	Slug         string
	FormAction   string
	IsEdit       bool
	Fields       []formField
	ErrorMessage string
	Attachments  []attachmentTemplateData
	CanAttach    bool
	AttachAction string
}

type formField struct {
	Name  string
	Label string
	Type  string
	Value string
}

type attachmentTemplateData struct {
	Key       string
	Name      string
	HumanSize string
	HumanTime string
}

type staffTemplateData struct {
	pageData
	Members      []staffMemberTemplateData
	PendingOnly  bool
	ErrorMessage string
	BasePath     string
	CurrentPage  int
	TotalPages   int
	HasMore      bool
}

type staffDetailTemplateData struct {
	pageData
	Found  bool
	Member staffMemberTemplateData
}

type staffMemberTemplateData struct {
	ID     int64
	Name   string
	Email  string
	Role   string
	Status string
}

type activityTemplateData struct {
	pageData
	Events []eventTemplateData
}

type loginTemplateData struct {
	ui.HeadTemplateData
	Email        string
	Next         string
	ErrorMessage string
	Providers    []sso.Provider
}

type unauthorizedTemplateData struct {
	ui.HeadTemplateData
	HomeHref string
}

func humanSize(size int64) string {
	return humanize.Bytes(uint64(size))
}

func humanTime(t time.Time) string {
	return humanize.Time(t)
}
