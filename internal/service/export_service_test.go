package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitaconnect/kita-admin/internal/cache"
	"github.com/kitaconnect/kita-admin/internal/excel"
	"github.com/kitaconnect/kita-admin/internal/model"
	"github.com/kitaconnect/kita-admin/internal/pdf"
	"github.com/kitaconnect/kita-admin/internal/repository"
	"github.com/kitaconnect/kita-admin/internal/view"
)

func newExportServiceForTest(stores *stubStores) *ExportService {
	views := newViewServiceForTest(stores, cache.New())
	svc := NewExportService(views, excel.NewGenerator(), pdf.NewGenerator(), zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2026, time.March, 1, 14, 30, 0, 0, time.UTC) }
	return svc
}

func TestExportPermissionDenied(t *testing.T) {
	svc := newExportServiceForTest(&stubStores{})

	_, err := svc.Export(context.Background(), ExportInput{
		Principal: parent,
		Tab:       TabChildren,
		Format:    FormatCSV,
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestExportUnknownTabAndFormat(t *testing.T) {
	svc := newExportServiceForTest(&stubStores{})

	_, err := svc.Export(context.Background(), ExportInput{Principal: manager, Tab: "staff", Format: FormatCSV})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Export(context.Background(), ExportInput{Principal: manager, Tab: TabGuardians, Format: FormatPDF})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Export(context.Background(), ExportInput{Principal: manager, Tab: TabContracts, Format: FormatXLSX})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExportChildrenCSVReflectsFilter(t *testing.T) {
	idA, idB := uuid.New(), uuid.New()
	end := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	stores := &stubStores{
		children: []model.Child{
			{ID: idA, FirstName: "Mia", LastName: "Huber"},
			{ID: idB, FirstName: "Tom", LastName: "Berg"},
		},
		contracts: []model.Contract{
			{ChildID: idA, Status: model.ContractStatusActive, EndDate: &end},
		},
	}
	svc := newExportServiceForTest(stores)

	file, err := svc.Export(context.Background(), ExportInput{
		Principal:   manager,
		Tab:         TabChildren,
		Format:      FormatCSV,
		ChildFilter: view.ChildFilter{Exit: view.ExitFilterExiting},
	})
	require.NoError(t, err)

	assert.Equal(t, "kinder_export_2026-03-01.csv", file.Name)
	content := string(file.Content)
	assert.Contains(t, content, "Mia")
	assert.NotContains(t, content, "Tom")
}

func TestExportChildrenPDF(t *testing.T) {
	stores := &stubStores{children: []model.Child{{ID: uuid.New(), FirstName: "Mia", LastName: "Huber"}}}
	svc := newExportServiceForTest(stores)

	file, err := svc.Export(context.Background(), ExportInput{
		Principal: manager,
		Tab:       TabChildren,
		Format:    FormatPDF,
	})
	require.NoError(t, err)

	assert.Equal(t, "kinder_export_2026-03-01.pdf", file.Name)
	assert.Equal(t, "application/pdf", file.MIME)
	assert.NotEmpty(t, file.Content)
}

func TestExportGuardiansPrint(t *testing.T) {
	stores := &stubStores{guardians: []model.Guardian{{ID: uuid.New(), FirstName: "Anna", LastName: "Huber"}}}
	svc := newExportServiceForTest(stores)

	file, err := svc.Export(context.Background(), ExportInput{
		Principal: manager,
		Tab:       TabGuardians,
		Format:    FormatPrint,
	})
	require.NoError(t, err)

	assert.Equal(t, "druckansicht_2026-03-01.html", file.Name)
	assert.Contains(t, string(file.Content), "Anna Huber")
}

func TestExportOccupancy(t *testing.T) {
	groupID := uuid.New()
	stores := &stubStores{
		groups:   []model.Group{{ID: groupID, Name: "Sonnenkäfer"}},
		bookings: []model.ChildBooking{{ID: uuid.New(), GroupID: &groupID}},
	}
	svc := newExportServiceForTest(stores)

	file, err := svc.ExportOccupancy(context.Background(), manager, repository.DateRange{})
	require.NoError(t, err)

	assert.Equal(t, "belegungsplan_2026-03-01.xlsx", file.Name)
	assert.NotEmpty(t, file.Content)

	_, err = svc.ExportOccupancy(context.Background(), parent, repository.DateRange{})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
