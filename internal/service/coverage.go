package service

import (
	"context"
	"fmt"

	"dealgraph.app/insight/internal/coverage"
	"dealgraph.app/insight/internal/model"
	"dealgraph.app/insight/internal/store"
)

// CoverageReport bundles the ledger's derived views for one catalog read:
// aggregate stats, volume percentages per status, and the remainder-derived
// not-covered volume.
type CoverageReport struct {
	Stats       coverage.AggregateStats
	Percentages map[model.CoverageStatus]float64
	Remainder   int
}

type CoverageService interface {
	Report(ctx context.Context) (*CoverageReport, error)
	Records(ctx context.Context, selector string) ([]model.CoverageRecord, error)
}

type coverageService struct {
	catalog store.CatalogStore
}

func NewCoverageService(catalog store.CatalogStore) CoverageService {
	return &coverageService{catalog: catalog}
}

// Report loads the catalog fresh and computes the aggregate view. A catalog
// that fails validation surfaces a coverage.ValidationError untouched.
func (s *coverageService) Report(ctx context.Context) (*CoverageReport, error) {
	ledger, err := s.ledger(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := ledger.Aggregate()
	if err != nil {
		return nil, err
	}

	percentages := make(map[model.CoverageStatus]float64, 3)
	for _, status := range []model.CoverageStatus{
		model.CoverageStatusCovered,
		model.CoverageStatusPartial,
		model.CoverageStatusNotCovered,
	} {
		percentages[status] = ledger.Percentage(status, stats)
	}

	return &CoverageReport{
		Stats:       stats,
		Percentages: percentages,
		Remainder:   ledger.Remainder(stats),
	}, nil
}

// Records returns the catalog filtered by selector ("all" or a status),
// preserving catalog order.
func (s *coverageService) Records(ctx context.Context, selector string) ([]model.CoverageRecord, error) {
	ledger, err := s.ledger(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.Filter(selector)
}

func (s *coverageService) ledger(ctx context.Context) (*coverage.Ledger, error) {
	records, err := s.catalog.LoadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return coverage.NewLedger(records), nil
}
