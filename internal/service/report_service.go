package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Yasser-Essafi/SRM/internal/model"
	"github.com/Yasser-Essafi/SRM/internal/repository"
)

// ReportRenderer turns a delinquency report into a downloadable document.
type ReportRenderer interface {
	Render(report model.DelinquencyReport) ([]byte, error)
}

type ExportResult struct {
	FileName string
	Content  []byte
}

// ReportService builds the admin delinquency/outage report and renders it
// through the injected generators.
type ReportService struct {
	store repository.RecordStore
	excel ReportRenderer
	pdf   ReportRenderer
	log   zerolog.Logger
}

func NewReportService(store repository.RecordStore, excel, pdf ReportRenderer, log zerolog.Logger) *ReportService {
	return &ReportService{store: store, excel: excel, pdf: pdf, log: log}
}

// Build groups every unpaid contract under its zone. Every zone gets a
// section even without delinquents, so the outage state is always visible.
func (s *ReportService) Build(ctx context.Context) (model.DelinquencyReport, error) {
	zones, err := s.store.ListZones(ctx)
	if err != nil {
		return model.DelinquencyReport{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	rows, err := s.store.ListUnpaidContracts(ctx)
	if err != nil {
		return model.DelinquencyReport{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	byZone := make(map[int][]model.DelinquentContract, len(zones))
	for _, row := range rows {
		byZone[row.ZoneID] = append(byZone[row.ZoneID], model.DelinquentContract{
			Service:            row.Service,
			ContractNumber:     row.ContractNumber,
			CustomerName:       row.CustomerName,
			Phone:              row.Phone,
			OutstandingBalance: row.OutstandingBalance,
			LastPaymentDate:    row.LastPaymentDate,
			CutStatus:          row.CutStatus,
		})
	}

	report := model.DelinquencyReport{GeneratedAt: time.Now().UTC()}
	for _, zone := range zones {
		report.Zones = append(report.Zones, model.ZoneSection{
			Zone:      zone,
			Contracts: byZone[zone.ZoneID],
		})
	}
	return report, nil
}

func (s *ReportService) ExportExcel(ctx context.Context, principal model.Principal) (*ExportResult, error) {
	return s.export(ctx, principal, s.excel, "xlsx")
}

func (s *ReportService) ExportPDF(ctx context.Context, principal model.Principal) (*ExportResult, error) {
	return s.export(ctx, principal, s.pdf, "pdf")
}

func (s *ReportService) export(ctx context.Context, principal model.Principal, renderer ReportRenderer, ext string) (*ExportResult, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	report, err := s.Build(ctx)
	if err != nil {
		return nil, err
	}

	content, err := renderer.Render(report)
	if err != nil {
		return nil, fmt.Errorf("render %s report: %w", ext, err)
	}

	return &ExportResult{
		FileName: fmt.Sprintf("srm-delinquency-%s.%s", report.GeneratedAt.Format("20060102-150405"), ext),
		Content:  content,
	}, nil
}
