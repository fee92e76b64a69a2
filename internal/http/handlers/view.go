package handlers

import (
	"embed"
	"html/template"
	"net/url"
	"strings"

	"routeadmin/internal/data"
	"routeadmin/internal/domain"
	"routeadmin/internal/domain/models"
	"routeadmin/internal/services"
	"routeadmin/internal/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded console templates.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"telURL": telURL,
	}).ParseFS(templateFS, "templates/*.html")
}

func telURL(phone string) template.URL {
	return template.URL("tel:" + url.PathEscape(strings.ReplaceAll(phone, " ", "")))
}

type SelectOption struct {
	Value    string
	Label    string
	Selected bool
}

type RouteRow struct {
	ID        string
	From      string
	To        string
	DateLabel string
	Name      string
	Phone     string
	Note      string
	HasNote   bool
}

type DialogView struct {
	RouteID  string
	Deleting bool
}

// RoutesView is everything routes.html needs; it is derived from a state
// snapshot only, never from the controller itself.
type RoutesView struct {
	Title       string
	Loading     bool
	FromOptions []SelectOption
	ToOptions   []SelectOption
	Routes      []RouteRow
	Empty       bool
	Dialog      *DialogView
	Notices     []domain.Notice
}

// BuildRoutesView renders the route list state into template data.
func BuildRoutesView(s services.State, notices []domain.Notice) RoutesView {
	v := RoutesView{
		Title:       "Маршруты",
		Loading:     s.Loading,
		FromOptions: selectOptions(s.Filter.From),
		ToOptions:   selectOptions(s.Filter.To),
		Routes:      make([]RouteRow, 0, len(s.Routes)),
		Notices:     notices,
	}
	for _, r := range s.Routes {
		v.Routes = append(v.Routes, routeRow(r))
	}
	v.Empty = s.Loaded && len(v.Routes) == 0
	if s.Pending.DialogOpen {
		v.Dialog = &DialogView{RouteID: s.Pending.RouteID.String(), Deleting: s.Deleting}
	}
	return v
}

func routeRow(r models.Route) RouteRow {
	return RouteRow{
		ID:        r.ID.String(),
		From:      r.From,
		To:        r.To,
		DateLabel: utils.FormatRouteDate(r.Date),
		Name:      r.Name,
		Phone:     r.Phone,
		Note:      r.Note,
		HasNote:   r.HasNote(),
	}
}

func selectOptions(selected string) []SelectOption {
	opts := data.CityOptions()
	out := make([]SelectOption, 0, len(opts))
	for _, o := range opts {
		out = append(out, SelectOption{Value: o.Value, Label: o.Label, Selected: o.Value == selected})
	}
	return out
}
