package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/verdantiq/greenrag/domain/advisory"
)

// PregenItem is one cell of a pregeneration matrix: a content kind plus
// the dimensions to generate it for.
type PregenItem struct {
	Kind       advisory.Kind
	Dimensions advisory.Dimensions
}

// PregenFailure records one item that could not be generated.
type PregenFailure struct {
	Item  PregenItem
	Error string
}

// PregenReport summarizes a pregeneration batch.
type PregenReport struct {
	Total     int
	Generated int
	Cached    int
	Failures  []PregenFailure
}

// PregenConfig paces a pregeneration batch: after every PauseEvery items
// the batch sleeps for Pause. Zero PauseEvery disables pacing.
type PregenConfig struct {
	PauseEvery int
	Pause      time.Duration
}

// PregenService warms the advisory cache ahead of demand by walking a
// dimension matrix. Individual failures are recorded in the report and do
// not abort the batch; only context cancellation stops it early.
type PregenService struct {
	advisory *AdvisoryService
	cfg      PregenConfig
	logger   *slog.Logger
}

// NewPregenService creates a PregenService.
func NewPregenService(advisorySvc *AdvisoryService, cfg PregenConfig, logger *slog.Logger) *PregenService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PregenService{advisory: advisorySvc, cfg: cfg, logger: logger}
}

// Run generates every item in the batch and reports the outcome. The
// returned error is non-nil only when the context is cancelled; the batch
// itself never fails as a whole.
func (s *PregenService) Run(ctx context.Context, items []PregenItem) (PregenReport, error) {
	report := PregenReport{Total: len(items)}

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		content, err := s.advisory.GetOrGenerate(ctx, item.Kind, item.Dimensions)
		switch {
		case err != nil:
			s.logger.Warn("pregeneration item failed",
				"kind", item.Kind, "cache_key", item.Dimensions.CacheKey(item.Kind), "error", err)
			report.Failures = append(report.Failures, PregenFailure{Item: item, Error: err.Error()})
		case content.Source() == advisory.SourceCache:
			report.Cached++
		default:
			report.Generated++
		}

		if s.cfg.PauseEvery > 0 && (i+1)%s.cfg.PauseEvery == 0 && i+1 < len(items) {
			select {
			case <-ctx.Done():
				return report, ctx.Err()
			case <-time.After(s.cfg.Pause):
			}
		}
	}

	s.logger.Info("pregeneration batch finished",
		"total", report.Total, "generated", report.Generated,
		"cached", report.Cached, "failed", len(report.Failures))
	return report, nil
}

// Matrix expands kind/dimension axes into the full pregeneration batch:
// one scenario and one strategy item per dimension tuple, plus one
// financial item per tuple and strategy type.
func Matrix(tuples []advisory.Dimensions, strategyTypes []string) []PregenItem {
	var items []PregenItem
	for _, d := range tuples {
		items = append(items, PregenItem{Kind: advisory.KindScenario, Dimensions: d})
		items = append(items, PregenItem{Kind: advisory.KindStrategy, Dimensions: d})
		for _, st := range strategyTypes {
			items = append(items, PregenItem{
				Kind: advisory.KindFinancial,
				Dimensions: advisory.NewFinancialDimensions(
					d.CategoryType(), d.CategoryName(), d.Subcategory(),
					d.Industry(), d.CompanySize(), st,
				),
			})
		}
	}
	return items
}
