package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kitaconnect/kita-admin/internal/model"
	"github.com/kitaconnect/kita-admin/internal/view"
)

// File is a finished export ready to hand to the download sink.
type File struct {
	Name    string
	MIME    string
	Content []byte
}

const csvMIME = "text/csv; charset=utf-8"

// Known limitation, kept for compatibility with the legacy export: values are
// joined with ';' without quoting or escaping, so a semicolon inside a
// free-text field misaligns the columns of that row.
const csvDelimiter = ";"

// utf8BOM lets spreadsheet tools detect the encoding.
const utf8BOM = "\ufeff"

// ChildrenCSV serializes the filtered Kinder rows. Output is byte-identical
// for the same rows and date.
func ChildrenCSV(rows []view.ChildRow, labels Labels, today time.Time) File {
	var b strings.Builder
	b.WriteString(utf8BOM)
	writeRecord(&b, []string{
		labels.Get("children.guardian_last_name"),
		labels.Get("children.guardian_first_name"),
		labels.Get("children.child_first_name"),
		labels.Get("children.child_last_name"),
		labels.Get("children.address_extra"),
		labels.Get("children.birth_date"),
		labels.Get("children.street"),
		labels.Get("children.zip"),
		labels.Get("children.city"),
		labels.Get("children.phone"),
		labels.Get("children.phone_secondary"),
		labels.Get("children.phone_work"),
		labels.Get("children.email"),
		labels.Get("children.group"),
		labels.Get("children.contract_status"),
		labels.Get("children.contract_end"),
	})
	for _, row := range rows {
		writeRecord(&b, []string{
			row.GuardianLastName,
			row.GuardianFirstName,
			row.ChildFirstName,
			row.ChildLastName,
			row.AddressExtra,
			formatDate(row.BirthDate),
			row.Street,
			row.Zip,
			row.City,
			row.Phone,
			row.PhoneSecondary,
			row.PhoneWork,
			row.Email,
			row.GroupName,
			row.ContractStatus,
			formatDatePtr(row.ContractEnd),
		})
	}
	return File{
		Name:    exportFileName("kinder", today),
		MIME:    csvMIME,
		Content: []byte(b.String()),
	}
}

// GuardiansCSV serializes the filtered Eltern records.
func GuardiansCSV(guardians []model.Guardian, labels Labels, today time.Time) File {
	var b strings.Builder
	b.WriteString(utf8BOM)
	writeRecord(&b, []string{
		labels.Get("guardians.first_name"),
		labels.Get("guardians.last_name"),
		labels.Get("guardians.email"),
		labels.Get("guardians.phone"),
		labels.Get("guardians.phone_secondary"),
		labels.Get("guardians.street"),
		labels.Get("guardians.zip"),
		labels.Get("guardians.city"),
	})
	for _, g := range guardians {
		writeRecord(&b, []string{
			g.FirstName,
			g.LastName,
			strValue(g.Email),
			strValue(g.Phone),
			strValue(g.PhoneSecondary),
			strValue(g.AddressStreet),
			strValue(g.AddressZip),
			strValue(g.AddressCity),
		})
	}
	return File{
		Name:    exportFileName("eltern", today),
		MIME:    csvMIME,
		Content: []byte(b.String()),
	}
}

// ContractsCSV serializes the filtered Verträge rows.
func ContractsCSV(rows []view.ContractRow, labels Labels, today time.Time) File {
	var b strings.Builder
	b.WriteString(utf8BOM)
	writeRecord(&b, []string{
		labels.Get("contracts.number"),
		labels.Get("contracts.child"),
		labels.Get("contracts.guardian"),
		labels.Get("contracts.status"),
		labels.Get("contracts.start_date"),
		labels.Get("contracts.end_date"),
		labels.Get("contracts.monthly_fee"),
	})
	for _, row := range rows {
		writeRecord(&b, []string{
			row.ContractNumber,
			row.ChildName,
			row.GuardianName,
			row.Status,
			formatDate(row.StartDate),
			formatDatePtr(row.EndDate),
			formatFee(row.MonthlyFee),
		})
	}
	return File{
		Name:    exportFileName("vertraege", today),
		MIME:    csvMIME,
		Content: []byte(b.String()),
	}
}

func writeRecord(b *strings.Builder, values []string) {
	b.WriteString(strings.Join(values, csvDelimiter))
	b.WriteString("\n")
}

func exportFileName(entity string, today time.Time) string {
	return fmt.Sprintf("%s_export_%s.csv", entity, today.Format("2006-01-02"))
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02.01.2006")
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

func formatFee(fee *float64) string {
	if fee == nil {
		return ""
	}
	return strconv.FormatFloat(*fee, 'f', -1, 64) + "€"
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
