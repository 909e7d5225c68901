package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maroof-insights/storefront-dashboard/internal/chart"
	"github.com/maroof-insights/storefront-dashboard/internal/models"
	"github.com/maroof-insights/storefront-dashboard/internal/service"
)

// Figure kinds accepted by render
const (
	kindBusinessMix  = "business-mix"
	kindTopRated     = "top-rated"
	kindMostReviewed = "most-reviewed"
	kindHeatmap      = "heatmap"
)

// renderOptions mirrors the query parameters of the chart endpoints
type renderOptions struct {
	topN       int
	sortBy     string
	minRating  float64
	minReviews float64
	maxReviews float64
	out        string
}

var renderOpts renderOptions

var renderCmd = &cobra.Command{
	Use:   "render <business-mix|top-rated|most-reviewed|heatmap>",
	Short: "Render one figure as JSON, or as PNG/XLSX by output extension",
	Long: `Render one dashboard figure without starting the server.

The figure JSON is written to stdout, or to --out. An --out path ending in .png
exports a bar chart image; business-mix also accepts .xlsx.

Examples:
  server render business-mix --sort-by Reviews --top-n 8
  server render heatmap --min-reviews 100 --max-reviews 500 --out heatmap.json
  server render most-reviewed --out most-reviewed.png`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{kindBusinessMix, kindTopRated, kindMostReviewed, kindHeatmap},
	RunE:      runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	f := renderCmd.Flags()
	f.IntVar(&renderOpts.topN, "top-n", 0, "Number of bars (0 uses the configured default)")
	f.StringVar(&renderOpts.sortBy, "sort-by", "", "Business-mix sort key: Total or Reviews")
	f.Float64Var(&renderOpts.minRating, "min-rating", 0, "Minimum rating for top-rated (default from config)")
	f.Float64Var(&renderOpts.minReviews, "min-reviews", 0, "Lower review bound for the heatmap")
	f.Float64Var(&renderOpts.maxReviews, "max-reviews", 100, "Upper review bound for the heatmap")
	f.StringVar(&renderOpts.out, "out", "", "Output file (default stdout)")
}

func runRender(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	opts := renderOpts
	if !cmd.Flags().Changed("min-rating") {
		opts.minRating = a.cfg.Charts.MinRating
	}

	var w io.Writer = cmd.OutOrStdout()
	if opts.out != "" {
		file, err := os.Create(opts.out)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer file.Close()
		w = file
	}

	return render(cmd.Context(), a.charts, args[0], opts, w)
}

// render writes the requested figure in the format implied by opts.out
func render(ctx context.Context, charts *service.ChartService, kind string, opts renderOptions, w io.Writer) error {
	ext := strings.ToLower(filepath.Ext(opts.out))

	if ext == ".xlsx" {
		if kind != kindBusinessMix {
			return fmt.Errorf("xlsx export is only available for %s", kindBusinessMix)
		}
		return charts.WriteBusinessMixXLSX(ctx, models.BusinessMixFilter{TopN: opts.topN, SortBy: opts.sortBy}, w)
	}

	fig, err := buildFigure(ctx, charts, kind, opts)
	if err != nil {
		return err
	}

	if ext == ".png" {
		return chart.WritePNG(fig, w)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(fig)
}

func buildFigure(ctx context.Context, charts *service.ChartService, kind string, opts renderOptions) (chart.Figure, error) {
	switch kind {
	case kindBusinessMix:
		return charts.BusinessMix(ctx, models.BusinessMixFilter{TopN: opts.topN, SortBy: opts.sortBy})
	case kindTopRated:
		return charts.TopRated(ctx, models.TopRatedFilter{MinRating: &opts.minRating, TopN: opts.topN})
	case kindMostReviewed:
		return charts.MostReviewed(ctx, models.MostReviewedFilter{TopN: opts.topN})
	case kindHeatmap:
		return charts.Heatmap(ctx, models.HeatmapFilter{MinReviews: &opts.minReviews, MaxReviews: &opts.maxReviews})
	default:
		return chart.Figure{}, fmt.Errorf("unknown figure %q", kind)
	}
}
