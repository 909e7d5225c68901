package service

import (
	"context"
	"io"

	"github.com/maroof-insights/storefront-dashboard/internal/analysis"
	"github.com/maroof-insights/storefront-dashboard/internal/chart"
	"github.com/maroof-insights/storefront-dashboard/internal/config"
	"github.com/maroof-insights/storefront-dashboard/internal/dataset"
	"github.com/maroof-insights/storefront-dashboard/internal/models"
)

const (
	defaultHeatmapMin = 0
	defaultHeatmapMax = 100
)

// TableProvider returns the table charts are computed from
type TableProvider interface {
	Load(ctx context.Context) (*dataset.Table, error)
}

// ChartService validates chart parameters, runs the analysis and renders
// the figure
type ChartService struct {
	tables   TableProvider
	renderer *chart.Renderer
	defaults config.ChartConfig
}

// NewChartService creates a new chart service
func NewChartService(tables TableProvider, renderer *chart.Renderer, defaults config.ChartConfig) *ChartService {
	return &ChartService{
		tables:   tables,
		renderer: renderer,
		defaults: defaults,
	}
}

// BusinessMixTable returns the ranked category table
func (s *ChartService) BusinessMixTable(ctx context.Context, f models.BusinessMixFilter) ([]models.CategorySummary, analysis.SortBy, int, error) {
	sortBy := analysis.SortByTotal
	if f.SortBy != "" {
		parsed, err := analysis.ParseSortBy(f.SortBy)
		if err != nil {
			return nil, "", 0, err
		}
		sortBy = parsed
	}
	topN := s.topN(f.TopN, s.defaults.MixTopN)

	t, err := s.tables.Load(ctx)
	if err != nil {
		return nil, "", 0, err
	}

	rows, err := analysis.BusinessMix(t, sortBy, topN)
	if err != nil {
		return nil, "", 0, err
	}
	return rows, sortBy, topN, nil
}

// BusinessMix renders the business-mix bar chart
func (s *ChartService) BusinessMix(ctx context.Context, f models.BusinessMixFilter) (chart.Figure, error) {
	rows, sortBy, topN, err := s.BusinessMixTable(ctx, f)
	if err != nil {
		return chart.Figure{}, err
	}
	return s.renderer.BusinessMix(rows, sortBy, topN), nil
}

// WriteBusinessMixXLSX exports the ranked category table as a workbook
func (s *ChartService) WriteBusinessMixXLSX(ctx context.Context, f models.BusinessMixFilter, w io.Writer) error {
	rows, _, _, err := s.BusinessMixTable(ctx, f)
	if err != nil {
		return err
	}
	return chart.WriteBusinessMixXLSX(rows, s.renderer.Labels(), w)
}

// TopRated renders the highest-rated stores
func (s *ChartService) TopRated(ctx context.Context, f models.TopRatedFilter) (chart.Figure, error) {
	minRating := s.defaults.MinRating
	if f.MinRating != nil {
		minRating = *f.MinRating
	}
	topN := s.topN(f.TopN, s.defaults.DefaultTopN)

	t, err := s.tables.Load(ctx)
	if err != nil {
		return chart.Figure{}, err
	}

	sel, err := analysis.TopByRating(t, minRating, topN)
	if err != nil {
		return chart.Figure{}, err
	}
	return s.renderer.TopRated(sel, minRating, topN), nil
}

// MostReviewed renders the most-reviewed stores
func (s *ChartService) MostReviewed(ctx context.Context, f models.MostReviewedFilter) (chart.Figure, error) {
	topN := s.topN(f.TopN, s.defaults.DefaultTopN)

	t, err := s.tables.Load(ctx)
	if err != nil {
		return chart.Figure{}, err
	}

	sel, err := analysis.TopByReviews(t, topN)
	if err != nil {
		return chart.Figure{}, err
	}
	return s.renderer.MostReviewed(sel, topN), nil
}

// Heatmap renders the rating/review density for a review window. The window
// is clamped to the largest review count and titled after the matching
// quick range.
func (s *ChartService) Heatmap(ctx context.Context, f models.HeatmapFilter) (chart.Figure, error) {
	lo, hi := float64(defaultHeatmapMin), float64(defaultHeatmapMax)
	if f.MinReviews != nil {
		lo = *f.MinReviews
	}
	if f.MaxReviews != nil {
		hi = *f.MaxReviews
	}
	if err := analysis.ValidateRange(lo, hi); err != nil {
		return chart.Figure{}, err
	}

	t, err := s.tables.Load(ctx)
	if err != nil {
		return chart.Figure{}, err
	}

	maxReviews := analysis.ComputeKeyMetrics(t, s.defaults.HighRatingThreshold).MaxReviews
	rng := analysis.ClampRange(lo, hi, maxReviews)
	label := analysis.RangeLabel(analysis.QuickRanges(maxReviews), rng.Min, rng.Max)

	d := analysis.BuildDensityGrid(t, rng)
	return s.renderer.Heatmap(d, s.renderer.RangeTitle(label)), nil
}

// Overview returns the headline metrics of the table
func (s *ChartService) Overview(ctx context.Context, highRating *float64) (models.DatasetOverview, error) {
	threshold := s.defaults.HighRatingThreshold
	if highRating != nil {
		threshold = *highRating
	}

	t, err := s.tables.Load(ctx)
	if err != nil {
		return models.DatasetOverview{}, err
	}

	overview := models.DatasetOverview{
		Metrics:     analysis.ComputeKeyMetrics(t, threshold),
		RatingShare: analysis.ComputeRatingShare(t, s.defaults.MinRating),
	}
	if top, ok := analysis.FindMostReviewed(t); ok {
		overview.MostReviewed = &top
	}
	return overview, nil
}

// QuickRanges returns the review-range presets for the loaded table
func (s *ChartService) QuickRanges(ctx context.Context) ([]models.ReviewRange, error) {
	t, err := s.tables.Load(ctx)
	if err != nil {
		return nil, err
	}
	maxReviews := analysis.ComputeKeyMetrics(t, s.defaults.HighRatingThreshold).MaxReviews
	return analysis.QuickRanges(maxReviews), nil
}

// AnalyzeRange summarizes the stores inside a clamped review window
func (s *ChartService) AnalyzeRange(ctx context.Context, f models.ReviewRangeFilter) (models.RangeAnalysis, error) {
	lo, hi := float64(defaultHeatmapMin), float64(defaultHeatmapMax)
	if f.Min != nil {
		lo = *f.Min
	}
	if f.Max != nil {
		hi = *f.Max
	}
	if err := analysis.ValidateRange(lo, hi); err != nil {
		return models.RangeAnalysis{}, err
	}

	t, err := s.tables.Load(ctx)
	if err != nil {
		return models.RangeAnalysis{}, err
	}

	maxReviews := analysis.ComputeKeyMetrics(t, s.defaults.HighRatingThreshold).MaxReviews
	rng := analysis.ClampRange(lo, hi, maxReviews)
	return analysis.AnalyzeRange(t, rng.Min, rng.Max), nil
}

// topN substitutes the default for an omitted (zero) value. Negative values
// pass through and are rejected by the analysis.
func (s *ChartService) topN(requested, fallback int) int {
	if requested == 0 {
		return fallback
	}
	return requested
}
