package pdf

import (
	"bytes"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/kitaconnect/kita-admin/internal/export"
	"github.com/kitaconnect/kita-admin/internal/view"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

// Generate renders the filtered Kinder rows as a landscape table. Rows whose
// contract ends within the exit window get a highlight fill, mirroring the
// print view.
func (g *Generator) Generate(rows []view.ChildRow, labels export.Labels, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, tr(labels.Get("tab.children")+" - Export"), "", 1, "L", false, 0, "")

	pdf.SetFont(g.fontName, "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 5, tr(labels.Get("print.created")+": "+generatedAt.Format("02.01.2006 15:04")), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(3)

	headers := []string{
		labels.Get("children.guardian_last_name"),
		labels.Get("children.guardian_first_name"),
		labels.Get("children.child_first_name"),
		labels.Get("children.birth_date"),
		labels.Get("children.street"),
		labels.Get("children.zip") + "/" + labels.Get("children.city"),
		labels.Get("children.phone"),
		labels.Get("children.email"),
		labels.Get("children.group"),
	}
	widths := []float64{30, 30, 34, 22, 44, 32, 28, 42, 24}

	pdf.SetFont(g.fontName, "B", 8)
	pdf.SetFillColor(233, 30, 140)
	pdf.SetTextColor(255, 255, 255)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, tr(header), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont(g.fontName, "", 8)
	for _, row := range rows {
		if row.ExitingSoon {
			pdf.SetFillColor(254, 243, 199)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		cells := []string{
			row.GuardianLastName,
			row.GuardianFirstName,
			row.ChildFirstName + " " + row.ChildLastName,
			formatDate(row.BirthDate),
			row.Street,
			row.Zip + " " + row.City,
			row.Phone,
			row.Email,
			row.GroupName,
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6, tr(cell), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont(g.fontName, "", 8)
	pdf.SetFillColor(254, 243, 199)
	pdf.CellFormat(5, 4, "", "1", 0, "L", true, 0, "")
	pdf.CellFormat(0, 4, " "+tr(labels.Get("legend.exiting")), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02.01.2006")
}
