package services

import (
	"bytes"
	"fmt"
	"time"

	"routeadmin/internal/domain/models"
	"routeadmin/internal/utils"

	"github.com/docker/go-units"
	"github.com/phpdave11/gofpdf"
)

// ExportService renders the displayed route list as a printable PDF.
// With FontPath set to a TTF file the text keeps its Cyrillic letters;
// otherwise it is transliterated for the built-in Helvetica font.
type ExportService struct {
	FontPath  string
	RequestID string
	Now       func() time.Time
}

func (s ExportService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// RoutesPDF returns the document bytes and a download filename.
func (s ExportService) RoutesPDF(f models.Filter, routes []models.Route) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Routes", true)

	family := "Helvetica"
	text := utils.Transliterate
	if s.FontPath != "" {
		pdf.AddUTF8Font("RouteFont", "", s.FontPath)
		pdf.AddUTF8Font("RouteFont", "B", s.FontPath)
		family = "RouteFont"
		text = func(v string) string { return v }
	}

	pdf.AddPage()
	pdf.SetFont(family, "B", 16)
	pdf.Cell(0, 10, text("Маршруты"))
	pdf.Ln(10)

	pdf.SetFont(family, "", 10)
	pdf.Cell(0, 6, text(fmt.Sprintf("Откуда: %s   Куда: %s", orAny(f.From), orAny(f.To))))
	pdf.Ln(6)
	pdf.Cell(0, 6, text(fmt.Sprintf("Сформировано: %s   Всего: %d", s.now().Format("2006-01-02 15:04"), len(routes))))
	pdf.Ln(10)

	for _, r := range routes {
		pdf.SetFont(family, "B", 11)
		pdf.Cell(0, 6, text("ID: "+r.ID.String()))
		pdf.Ln(6)
		pdf.SetFont(family, "", 10)
		lines := []string{
			fmt.Sprintf("Откуда: %s   Куда: %s", utils.OrDash(r.From), utils.OrDash(r.To)),
			fmt.Sprintf("Дата: %s", utils.FormatRouteDate(r.Date)),
			fmt.Sprintf("Имя: %s   Телефон: %s", utils.OrDash(r.Name), utils.OrDash(r.Phone)),
		}
		if r.HasNote() {
			lines = append(lines, "Примечание: "+r.Note)
		}
		for _, l := range lines {
			pdf.MultiCell(0, 5, text(l), "", "", false)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("render routes pdf: %w", err)
	}

	filename := fmt.Sprintf("ROUTES_%s_%s.pdf",
		utils.SafeFilenamePart(utils.Transliterate(f.From)),
		utils.SafeFilenamePart(utils.Transliterate(f.To)),
	)
	utils.LogEvent(s.RequestID, "export", "routes_pdf",
		fmt.Sprintf("count=%d size=%s", len(routes), units.HumanSize(float64(buf.Len()))))
	return buf.Bytes(), filename, nil
}

func orAny(city string) string {
	if city == "" {
		return "все"
	}
	return city
}
