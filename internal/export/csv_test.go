package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitaconnect/kita-admin/internal/model"
	"github.com/kitaconnect/kita-admin/internal/view"
)

const bomRune = "\ufeff"

var exportDay = time.Date(2026, time.March, 1, 14, 30, 0, 0, time.UTC)

func sampleChildRows() []view.ChildRow {
	end := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	return []view.ChildRow{
		{
			GuardianLastName:  "Müller",
			GuardianFirstName: "Anna",
			ChildFirstName:    "Mia",
			ChildLastName:     "Müller",
			BirthDate:         time.Date(2022, time.June, 3, 0, 0, 0, 0, time.UTC),
			Street:            "Musterweg 3",
			Zip:               "10115",
			City:              "Berlin",
			Phone:             "030 123",
			Email:             "anna@example.org",
			GroupName:         "Sonnenkäfer",
			ContractStatus:    "active",
			ContractEnd:       &end,
			ExitingSoon:       true,
		},
		{
			ChildFirstName: "Tom",
			ChildLastName:  "Berg",
			BirthDate:      time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestChildrenCSV(t *testing.T) {
	labels := DefaultGermanLabels
	file := ChildrenCSV(sampleChildRows(), labels, exportDay)

	assert.Equal(t, "kinder_export_2026-03-01.csv", file.Name)
	assert.Equal(t, "text/csv; charset=utf-8", file.MIME)

	content := string(file.Content)
	require.True(t, strings.HasPrefix(content, bomRune), "missing BOM")

	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	require.Len(t, lines, 3)

	header := strings.TrimPrefix(lines[0], bomRune)
	assert.Equal(t, 16, len(strings.Split(header, ";")))

	first := strings.Split(lines[1], ";")
	require.Len(t, first, 16)
	assert.Equal(t, "Müller", first[0])
	assert.Equal(t, "03.06.2022", first[5])
	assert.Equal(t, "15.03.2026", first[15])

	second := strings.Split(lines[2], ";")
	assert.Equal(t, "", second[15])
}

func TestChildrenCSVDeterministic(t *testing.T) {
	labels := DefaultGermanLabels
	a := ChildrenCSV(sampleChildRows(), labels, exportDay)
	b := ChildrenCSV(sampleChildRows(), labels, exportDay)
	assert.Equal(t, a, b)
}

func TestChildrenCSVSemicolonInValueShiftsColumns(t *testing.T) {
	rows := []view.ChildRow{{Street: "Weg 1; Hof"}}
	file := ChildrenCSV(rows, DefaultGermanLabels, exportDay)

	lines := strings.Split(strings.TrimSuffix(string(file.Content), "\n"), "\n")
	require.Len(t, lines, 2)
	// No quoting: the embedded delimiter produces one extra column.
	assert.Len(t, strings.Split(lines[1], ";"), 17)
}

func TestGuardiansCSV(t *testing.T) {
	email := "sabine@example.org"
	guardians := []model.Guardian{
		{FirstName: "Sabine", LastName: "Keller", Email: &email},
		{FirstName: "Ben", LastName: "Arndt"},
	}

	file := GuardiansCSV(guardians, DefaultGermanLabels, exportDay)
	assert.Equal(t, "eltern_export_2026-03-01.csv", file.Name)

	lines := strings.Split(strings.TrimSuffix(string(file.Content), "\n"), "\n")
	require.Len(t, lines, 3)

	first := strings.Split(lines[1], ";")
	require.Len(t, first, 8)
	assert.Equal(t, "Sabine", first[0])
	assert.Equal(t, email, first[2])

	second := strings.Split(lines[2], ";")
	assert.Equal(t, "", second[2])
}

func TestContractsCSV(t *testing.T) {
	fee := 450.5
	end := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	rows := []view.ContractRow{
		{
			ContractNumber: "V-2026-001",
			ChildName:      "Mia Müller",
			GuardianName:   "Anna Müller",
			Status:         "active",
			StartDate:      time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
			EndDate:        &end,
			MonthlyFee:     &fee,
		},
		{Status: "pending", StartDate: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)},
	}

	file := ContractsCSV(rows, DefaultGermanLabels, exportDay)
	assert.Equal(t, "vertraege_export_2026-03-01.csv", file.Name)

	lines := strings.Split(strings.TrimSuffix(string(file.Content), "\n"), "\n")
	require.Len(t, lines, 3)

	first := strings.Split(lines[1], ";")
	require.Len(t, first, 7)
	assert.Equal(t, "31.08.2026", first[5])
	assert.Equal(t, "450.5€", first[6])

	second := strings.Split(lines[2], ";")
	assert.Equal(t, "", second[5])
	assert.Equal(t, "", second[6])
}
