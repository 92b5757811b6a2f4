package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/kitaconnect/kita-admin/internal/view"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate writes the Belegungsplan workbook: one summary sheet plus one
// sheet per group with its bookings.
func (g *Generator) Generate(plan view.OccupancyPlan) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Übersicht"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, plan); err != nil {
		return nil, err
	}

	usedNames := map[string]struct{}{summarySheet: {}}
	for _, group := range plan.Groups {
		sheetName := buildSheetName(group.Name, group.ID, usedNames)
		usedNames[sheetName] = struct{}{}

		file.NewSheet(sheetName)
		if err := g.writeGroup(file, sheetName, group); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, plan view.OccupancyPlan) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Belegungsplan")
	set("A2", "Von")
	set("B2", formatDate(plan.From))
	set("A3", "Bis")
	set("B3", formatDate(plan.To))
	set("A4", "Buchungen gesamt")
	set("B4", plan.Total)

	tableRow := 6
	set(fmt.Sprintf("A%d", tableRow), "Gruppe")
	set(fmt.Sprintf("B%d", tableRow), "Buchungen")
	set(fmt.Sprintf("C%d", tableRow), "davon Zusatz")

	for i, group := range plan.Groups {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), groupLabel(group.Name))
		set(fmt.Sprintf("B%d", row), len(group.Bookings))
		set(fmt.Sprintf("C%d", row), group.ExtraCount)
	}

	_ = file.SetColWidth(sheet, "A", "A", 30)
	_ = file.SetColWidth(sheet, "B", "C", 14)
	return nil
}

func (g *Generator) writeGroup(file *excelize.File, sheet string, group view.GroupOccupancy) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Gruppe")
	set("B1", groupLabel(group.Name))
	set("A2", "Buchungen")
	set("B2", len(group.Bookings))

	tableRow := 4
	headers := []string{"Datum", "Kind", "Von", "Bis", "Zusatz", "Notizen"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, booking := range group.Bookings {
		row := tableRow + 1 + i
		childName := ""
		if booking.Child != nil {
			childName = booking.Child.FirstName + " " + booking.Child.LastName
		}
		extra := ""
		if booking.IsExtra {
			extra = "ja"
		}
		notes := ""
		if booking.Notes != nil {
			notes = *booking.Notes
		}
		set(fmt.Sprintf("A%d", row), formatDate(booking.Date))
		set(fmt.Sprintf("B%d", row), childName)
		set(fmt.Sprintf("C%d", row), booking.StartTime)
		set(fmt.Sprintf("D%d", row), booking.EndTime)
		set(fmt.Sprintf("E%d", row), extra)
		set(fmt.Sprintf("F%d", row), notes)
	}

	_ = file.SetColWidth(sheet, "A", "A", 14)
	_ = file.SetColWidth(sheet, "B", "B", 28)
	_ = file.SetColWidth(sheet, "C", "E", 10)
	_ = file.SetColWidth(sheet, "F", "F", 40)
	return nil
}

func groupLabel(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Ohne Gruppe"
	}
	return name
}

func buildSheetName(name string, id uuid.UUID, used map[string]struct{}) string {
	base := strings.TrimSpace(name)
	if base == "" {
		if id == uuid.Nil {
			base = "Ohne Gruppe"
		} else {
			base = id.String()
		}
	}
	base = sanitizeSheetName(base)

	if len(base) > 31 {
		base = base[:31]
	}

	nameCandidate := base
	counter := 2
	for {
		if _, exists := used[nameCandidate]; !exists {
			return nameCandidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		trimmed := base
		if len(trimmed)+len(suffix) > 31 {
			trimmed = trimmed[:31-len(suffix)]
		}
		nameCandidate = trimmed + suffix
		counter++
	}
}

func sanitizeSheetName(value string) string {
	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = strings.TrimSpace(replacer.Replace(value))
	if value == "" {
		return "Gruppe"
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02.01.2006")
}
