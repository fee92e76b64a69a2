package handlers

import (
	"bytes"
	"strings"
	"testing"

	"routeadmin/internal/domain"
	"routeadmin/internal/domain/models"
	"routeadmin/internal/services"
)

func renderRoutes(t *testing.T, v RoutesView) string {
	t.Helper()
	tpl, err := Templates()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "routes.html", v); err != nil {
		t.Fatalf("execute: %v", err)
	}
	return buf.String()
}

func TestBuildRoutesViewRendersEveryRoute(t *testing.T) {
	s := services.State{
		Loaded: true,
		Filter: models.Filter{From: "Ялта"},
		Routes: []models.Route{
			{ID: "1", From: "Ялта", To: "Керчь", Date: "2024-03-07", Name: "Иван", Phone: "+7 900"},
			{ID: "2", From: "Ялта", To: "Анапа", Date: "2024-03-08", Name: "Олег", Phone: "+7 901", Note: "багаж"},
			{ID: "3", From: "Ялта", To: "Курск", Date: "bad", Name: "Анна", Phone: "+7 902"},
		},
	}
	v := BuildRoutesView(s, nil)
	if len(v.Routes) != 3 || v.Empty {
		t.Fatalf("unexpected view: %+v", v)
	}
	if v.Routes[0].DateLabel != "07 марта 2024" || v.Routes[2].DateLabel != "bad" {
		t.Fatalf("date labels: %q %q", v.Routes[0].DateLabel, v.Routes[2].DateLabel)
	}

	var selected string
	for _, o := range v.FromOptions {
		if o.Selected {
			selected = o.Value
		}
	}
	if selected != "Ялта" {
		t.Fatalf("expected Ялта selected, got %q", selected)
	}

	html := renderRoutes(t, v)
	if got := strings.Count(html, `class="route" data-id=`); got != 3 {
		t.Fatalf("expected 3 route entries, got %d", got)
	}
	if got := strings.Count(html, "Примечание:"); got != 1 {
		t.Fatalf("expected one note row, got %d", got)
	}
	if strings.Contains(html, `role="dialog"`) {
		t.Fatalf("dialog rendered without a pending deletion")
	}
}

func TestBuildRoutesViewDialogAndNotices(t *testing.T) {
	s := services.State{
		Loaded:  true,
		Pending: models.PendingDeletion{RouteID: "42", DialogOpen: true},
	}
	notices := []domain.Notice{{Kind: domain.NoticeDeleteFailure, Message: domain.MsgDeleteFailure}}
	v := BuildRoutesView(s, notices)
	if v.Dialog == nil || v.Dialog.RouteID != "42" {
		t.Fatalf("expected dialog for 42, got %+v", v.Dialog)
	}
	if !v.Empty {
		t.Fatalf("loaded empty list should be marked empty")
	}

	html := renderRoutes(t, v)
	if !strings.Contains(html, "маршрут #42") {
		t.Fatalf("dialog text missing:\n%s", html)
	}
	if !strings.Contains(html, domain.MsgDeleteFailure) {
		t.Fatalf("notice missing")
	}
}

func TestBuildRoutesViewLoading(t *testing.T) {
	v := BuildRoutesView(services.State{Loading: true}, nil)
	html := renderRoutes(t, v)
	if !strings.Contains(html, `aria-busy="true"`) || !strings.Contains(html, `http-equiv="refresh"`) {
		t.Fatalf("loading indicator missing")
	}
}
