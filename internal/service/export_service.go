package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/kitaconnect/kita-admin/internal/excel"
	"github.com/kitaconnect/kita-admin/internal/export"
	"github.com/kitaconnect/kita-admin/internal/model"
	"github.com/kitaconnect/kita-admin/internal/pdf"
	"github.com/kitaconnect/kita-admin/internal/repository"
	"github.com/kitaconnect/kita-admin/internal/view"
)

type Tab string

const (
	TabChildren  Tab = "children"
	TabGuardians Tab = "guardians"
	TabContracts Tab = "contracts"
)

type Format string

const (
	FormatCSV   Format = "csv"
	FormatPrint Format = "print"
	FormatPDF   Format = "pdf"
	FormatXLSX  Format = "xlsx"
)

const (
	pdfMIME  = "application/pdf"
	xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportInput selects the tab, the output format and the view state the
// export should reproduce. The export always serializes exactly what the
// filtered and sorted table shows.
type ExportInput struct {
	Principal model.Principal
	Tab       Tab
	Format    Format

	ChildFilter    view.ChildFilter
	GuardianFilter view.GuardianFilter
	ContractFilter view.ContractFilter
	Sort           view.Sort
}

// ExportService turns the current table view into a downloadable file.
type ExportService struct {
	views  *ViewService
	excel  *excel.Generator
	pdf    *pdf.Generator
	labels export.Labels
	log    zerolog.Logger
	now    func() time.Time
}

func NewExportService(views *ViewService, excelGen *excel.Generator, pdfGen *pdf.Generator, log zerolog.Logger) *ExportService {
	return &ExportService{
		views:  views,
		excel:  excelGen,
		pdf:    pdfGen,
		labels: export.DefaultGermanLabels,
		log:    log,
		now:    time.Now,
	}
}

// Export produces the file for the requested tab and format. PDF is only
// offered for the Kinder tab, matching the download menu.
func (s *ExportService) Export(ctx context.Context, input ExportInput) (export.File, error) {
	if !input.Principal.CanManage() {
		return export.File{}, fmt.Errorf("%w: role %s cannot export", ErrPermissionDenied, input.Principal.Role)
	}

	switch input.Tab {
	case TabChildren:
		return s.exportChildren(ctx, input)
	case TabGuardians:
		return s.exportGuardians(ctx, input)
	case TabContracts:
		return s.exportContracts(ctx, input)
	default:
		return export.File{}, fmt.Errorf("%w: unknown tab %q", ErrInvalidInput, input.Tab)
	}
}

// ExportOccupancy renders the Belegungsplan workbook for the date range.
func (s *ExportService) ExportOccupancy(ctx context.Context, principal model.Principal, rng repository.DateRange) (export.File, error) {
	if !principal.CanManage() {
		return export.File{}, fmt.Errorf("%w: role %s cannot export", ErrPermissionDenied, principal.Role)
	}

	plan, err := s.views.OccupancyPlan(ctx, rng)
	if err != nil {
		return export.File{}, err
	}
	content, err := s.excel.Generate(plan)
	if err != nil {
		return export.File{}, fmt.Errorf("generate workbook: %w", err)
	}
	name := "belegungsplan_" + s.now().Format("2006-01-02") + ".xlsx"
	s.log.Info().Str("file", name).Int("bookings", plan.Total).Msg("occupancy export generated")
	return export.File{Name: name, MIME: xlsxMIME, Content: content}, nil
}

func (s *ExportService) exportChildren(ctx context.Context, input ExportInput) (export.File, error) {
	rows, err := s.views.ChildRows(ctx, input.ChildFilter, input.Sort)
	if err != nil {
		return export.File{}, err
	}
	now := s.now()
	switch input.Format {
	case FormatCSV:
		return s.logged(export.ChildrenCSV(rows, s.labels, now), len(rows)), nil
	case FormatPrint:
		file, err := export.ChildrenPrintDoc(rows, s.labels, now)
		if err != nil {
			return export.File{}, fmt.Errorf("render print view: %w", err)
		}
		return s.logged(file, len(rows)), nil
	case FormatPDF:
		content, err := s.pdf.Generate(rows, s.labels, now)
		if err != nil {
			return export.File{}, fmt.Errorf("generate pdf: %w", err)
		}
		file := export.File{
			Name:    "kinder_export_" + now.Format("2006-01-02") + ".pdf",
			MIME:    pdfMIME,
			Content: content,
		}
		return s.logged(file, len(rows)), nil
	default:
		return export.File{}, fmt.Errorf("%w: format %q not available for children", ErrInvalidInput, input.Format)
	}
}

func (s *ExportService) exportGuardians(ctx context.Context, input ExportInput) (export.File, error) {
	guardians, err := s.views.Guardians(ctx, input.GuardianFilter)
	if err != nil {
		return export.File{}, err
	}
	now := s.now()
	switch input.Format {
	case FormatCSV:
		return s.logged(export.GuardiansCSV(guardians, s.labels, now), len(guardians)), nil
	case FormatPrint:
		file, err := export.GuardiansPrintDoc(guardians, s.labels, now)
		if err != nil {
			return export.File{}, fmt.Errorf("render print view: %w", err)
		}
		return s.logged(file, len(guardians)), nil
	default:
		return export.File{}, fmt.Errorf("%w: format %q not available for guardians", ErrInvalidInput, input.Format)
	}
}

func (s *ExportService) exportContracts(ctx context.Context, input ExportInput) (export.File, error) {
	rows, err := s.views.ContractRows(ctx, input.ContractFilter)
	if err != nil {
		return export.File{}, err
	}
	now := s.now()
	switch input.Format {
	case FormatCSV:
		return s.logged(export.ContractsCSV(rows, s.labels, now), len(rows)), nil
	case FormatPrint:
		file, err := export.ContractsPrintDoc(rows, s.labels, now)
		if err != nil {
			return export.File{}, fmt.Errorf("render print view: %w", err)
		}
		return s.logged(file, len(rows)), nil
	default:
		return export.File{}, fmt.Errorf("%w: format %q not available for contracts", ErrInvalidInput, input.Format)
	}
}

func (s *ExportService) logged(file export.File, rows int) export.File {
	s.log.Info().Str("file", file.Name).Int("rows", rows).Msg("export generated")
	return file
}
