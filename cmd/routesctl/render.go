package main

import (
	"fmt"
	"io"

	"routeadmin/internal/domain/models"
	"routeadmin/internal/utils"
)

// printRoutes writes one block per route; the note line only when present.
func printRoutes(w io.Writer, routes []models.Route) {
	for _, r := range routes {
		fmt.Fprintf(w, "ID: %s\n", r.ID)
		fmt.Fprintf(w, "  Откуда: %s  Куда: %s\n", r.From, r.To)
		fmt.Fprintf(w, "  Дата: %s\n", utils.FormatRouteDate(r.Date))
		fmt.Fprintf(w, "  Имя: %s  Телефон: %s\n", r.Name, r.Phone)
		if r.HasNote() {
			fmt.Fprintf(w, "  Примечание: %s\n", r.Note)
		}
		fmt.Fprintln(w)
	}
}
