package export

import (
	"bytes"
	"html/template"
	"time"

	"github.com/kitaconnect/kita-admin/internal/model"
	"github.com/kitaconnect/kita-admin/internal/view"
)

const printMIME = "text/html; charset=utf-8"

// The print document is self-contained: inline styles, a title per tab, the
// generation timestamp and a highlight on rows whose contract ends within the
// exit window. The caller opens it in the print dialog instead of saving.
var printTemplate = template.Must(template.New("print").Parse(`<html>
<head>
<title>Export</title>
<style>
  body { font-family: Arial, sans-serif; padding: 20px; }
  h1 { color: #E91E8C; }
  table { width: 100%; border-collapse: collapse; margin-top: 20px; font-size: 11px; }
  th, td { border: 1px solid #ddd; padding: 6px; text-align: left; }
  th { background-color: #E91E8C; color: white; }
  tr:nth-child(even) { background-color: #f9f9f9; }
  tr.exiting { background-color: #FEF3C7; }
  .header { margin-bottom: 20px; }
  .date { color: #666; font-size: 12px; }
  .legend { margin-top: 15px; font-size: 11px; color: #666; }
</style>
</head>
<body>
<div class="header">
  <h1>{{.Title}} - Export</h1>
  <p class="date">{{.CreatedLabel}}: {{.Created}}</p>
</div>
<table>
<tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr{{if .Exiting}} class="exiting"{{end}}>{{range .Cells}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
{{if .Legend}}<div class="legend">{{.Legend}}</div>{{end}}
</body>
</html>
`))

type printRow struct {
	Exiting bool
	Cells   []string
}

type printData struct {
	Title        string
	CreatedLabel string
	Created      string
	Headers      []string
	Rows         []printRow
	Legend       string
}

// ChildrenPrintDoc renders the Kinder table for printing.
func ChildrenPrintDoc(rows []view.ChildRow, labels Labels, now time.Time) (File, error) {
	data := printData{
		Title:        labels.Get("tab.children"),
		CreatedLabel: labels.Get("print.created"),
		Created:      now.Format("02.01.2006 15:04"),
		Legend:       labels.Get("legend.exiting"),
		Headers: []string{
			labels.Get("children.guardian_last_name"),
			labels.Get("children.guardian_first_name"),
			labels.Get("children.child_first_name"),
			labels.Get("children.birth_date"),
			labels.Get("children.street"),
			labels.Get("children.zip") + "/" + labels.Get("children.city"),
			labels.Get("children.phone"),
			labels.Get("children.phone_secondary"),
			labels.Get("children.email"),
			labels.Get("children.group"),
		},
	}
	for _, row := range rows {
		data.Rows = append(data.Rows, printRow{
			Exiting: row.ExitingSoon,
			Cells: []string{
				dash(row.GuardianLastName),
				dash(row.GuardianFirstName),
				row.ChildFirstName + " " + row.ChildLastName,
				formatDate(row.BirthDate),
				dash(row.Street),
				row.Zip + " " + row.City,
				dash(row.Phone),
				dash(row.PhoneSecondary),
				dash(row.Email),
				dash(row.GroupName),
			},
		})
	}
	return renderPrint(data, now)
}

// GuardiansPrintDoc renders the Eltern table for printing.
func GuardiansPrintDoc(guardians []model.Guardian, labels Labels, now time.Time) (File, error) {
	data := printData{
		Title:        labels.Get("tab.guardians"),
		CreatedLabel: labels.Get("print.created"),
		Created:      now.Format("02.01.2006 15:04"),
		Headers: []string{
			labels.Get("guardians.last_name"),
			labels.Get("guardians.email"),
			labels.Get("guardians.phone"),
			labels.Get("guardians.street"),
		},
	}
	for _, g := range guardians {
		phone := strValue(g.Phone)
		if g.PhoneSecondary != nil {
			phone += " / " + *g.PhoneSecondary
		}
		data.Rows = append(data.Rows, printRow{
			Cells: []string{
				g.FirstName + " " + g.LastName,
				dash(strValue(g.Email)),
				dash(phone),
				dash(joinAddress(g)),
			},
		})
	}
	return renderPrint(data, now)
}

// ContractsPrintDoc renders the Verträge table for printing.
func ContractsPrintDoc(rows []view.ContractRow, labels Labels, now time.Time) (File, error) {
	data := printData{
		Title:        labels.Get("tab.contracts"),
		CreatedLabel: labels.Get("print.created"),
		Created:      now.Format("02.01.2006 15:04"),
		Headers: []string{
			labels.Get("contracts.number"),
			labels.Get("contracts.child"),
			labels.Get("contracts.guardian"),
			labels.Get("contracts.status"),
			labels.Get("contracts.start_date"),
			labels.Get("contracts.end_date"),
			labels.Get("contracts.monthly_fee"),
		},
	}
	for _, row := range rows {
		end := labels.Get("print.open_end")
		if row.EndDate != nil {
			end = formatDate(*row.EndDate)
		}
		data.Rows = append(data.Rows, printRow{
			Cells: []string{
				dash(row.ContractNumber),
				dash(row.ChildName),
				dash(row.GuardianName),
				row.Status,
				formatDate(row.StartDate),
				end,
				dash(formatFee(row.MonthlyFee)),
			},
		})
	}
	return renderPrint(data, now)
}

func renderPrint(data printData, now time.Time) (File, error) {
	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, data); err != nil {
		return File{}, err
	}
	return File{
		Name:    "druckansicht_" + now.Format("2006-01-02") + ".html",
		MIME:    printMIME,
		Content: buf.Bytes(),
	}, nil
}

func joinAddress(g model.Guardian) string {
	parts := make([]string, 0, 3)
	for _, p := range []*string{g.AddressStreet, g.AddressZip, g.AddressCity} {
		if p != nil && *p != "" {
			parts = append(parts, *p)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += ", " + p
	}
	return out
}

func dash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
