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

var printedAt = time.Date(2026, time.March, 1, 14, 30, 0, 0, time.UTC)

func TestChildrenPrintDoc(t *testing.T) {
	rows := []view.ChildRow{
		{ChildFirstName: "Mia", ChildLastName: "Müller", Zip: "10115", City: "Berlin", ExitingSoon: true},
		{ChildFirstName: "Tom", ChildLastName: "Berg"},
	}

	file, err := ChildrenPrintDoc(rows, DefaultGermanLabels, printedAt)
	require.NoError(t, err)

	assert.Equal(t, "druckansicht_2026-03-01.html", file.Name)
	assert.Equal(t, "text/html; charset=utf-8", file.MIME)

	content := string(file.Content)
	assert.Contains(t, content, "Kinder - Export")
	assert.Contains(t, content, "Erstellt am: 01.03.2026 14:30")
	assert.Contains(t, content, "Austritt innerhalb 30 Tagen")

	// Only the exiting row is highlighted.
	assert.Equal(t, 1, strings.Count(content, `class="exiting"`))
	assert.Contains(t, content, "Mia Müller")
	assert.Contains(t, content, "10115 Berlin")
}

func TestChildrenPrintDocEmptyFieldsRenderDash(t *testing.T) {
	rows := []view.ChildRow{{ChildFirstName: "Tom", ChildLastName: "Berg"}}

	file, err := ChildrenPrintDoc(rows, DefaultGermanLabels, printedAt)
	require.NoError(t, err)
	assert.Contains(t, string(file.Content), "<td>-</td>")
}

func TestGuardiansPrintDoc(t *testing.T) {
	phone := "030 123"
	second := "0171 456"
	guardians := []model.Guardian{
		{FirstName: "Anna", LastName: "Huber", Phone: &phone, PhoneSecondary: &second},
	}

	file, err := GuardiansPrintDoc(guardians, DefaultGermanLabels, printedAt)
	require.NoError(t, err)

	content := string(file.Content)
	assert.Contains(t, content, "Eltern - Export")
	assert.Contains(t, content, "030 123 / 0171 456")
	assert.NotContains(t, content, `class="exiting"`)
}

func TestContractsPrintDocOpenEnd(t *testing.T) {
	end := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	rows := []view.ContractRow{
		{ContractNumber: "V-001", Status: "active", StartDate: printedAt, EndDate: &end},
		{ContractNumber: "V-002", Status: "active", StartDate: printedAt},
	}

	file, err := ContractsPrintDoc(rows, DefaultGermanLabels, printedAt)
	require.NoError(t, err)

	content := string(file.Content)
	assert.Contains(t, content, "31.08.2026")
	assert.Contains(t, content, "unbefristet")
}
