package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// RouteID is the server-assigned identifier. The backend may send it as a
// JSON number or a JSON string; both decode to the same textual form.
type RouteID string

func (id *RouteID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = RouteID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("route id: %w", err)
	}
	*id = RouteID(n.String())
	return nil
}

func (id RouteID) String() string { return string(id) }

// Route is one trip record owned by the remote backend.
type Route struct {
	ID    RouteID `json:"id"`
	From  string  `json:"from"`
	To    string  `json:"to"`
	Date  string  `json:"date"`
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Note  string  `json:"note"`
}

// HasNote reports whether the note row should be rendered.
func (r Route) HasNote() bool {
	return r.Note != ""
}

// Filter is the origin/destination selection. Empty means no filter.
type Filter struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (f Filter) Normalize() Filter {
	return Filter{From: strings.TrimSpace(f.From), To: strings.TrimSpace(f.To)}
}

// PendingDeletion is the confirmation overlay state.
type PendingDeletion struct {
	RouteID    RouteID `json:"route_id"`
	DialogOpen bool    `json:"dialog_open"`
}

func (p PendingDeletion) HasTarget() bool {
	return p.RouteID != ""
}
