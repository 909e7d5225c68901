package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/maroof-insights/storefront-dashboard/internal/dataset"
	"github.com/maroof-insights/storefront-dashboard/internal/stats"
)

const (
	// RatingBins is the fixed bin count of the rating axis
	RatingBins = 20
	RatingMin  = 0.0
	RatingMax  = 5.0

	// logScaleRatio is the z_max/z_min ratio above which counts are log-compressed
	logScaleRatio = 100.0

	// minCellsForPercentiles is the non-zero cell count needed before the
	// 1st/99th percentiles replace the raw [0, max] color bounds
	minCellsForPercentiles = 11

	ColorbarTitle    = "عدد المتاجر"
	ColorbarTitleLog = "عدد المتاجر (مقياس لوغاريتمي)"
)

// ReviewRange is the inclusive review-count window of a heatmap request
type ReviewRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DensityGrid is a 2D histogram. Counts is indexed [rating bin][review bin].
type DensityGrid struct {
	Counts      [][]int   `json:"counts"`
	ReviewEdges []float64 `json:"reviewEdges"`
	RatingEdges []float64 `json:"ratingEdges"`
	Total       int       `json:"total"`
}

// ColorScale is the normalized z data handed to the heatmap renderer
type ColorScale struct {
	Z             [][]float64 `json:"z"`
	ZMin          float64     `json:"zmin"`
	ZMax          float64     `json:"zmax"`
	Log           bool        `json:"log"`
	ColorbarTitle string      `json:"colorbarTitle"`
}

// Density is the result of BuildDensityGrid. When NoData is set the other
// fields are empty and the renderer shows a "no data in range" annotation.
type Density struct {
	Range  ReviewRange `json:"range"`
	NoData bool        `json:"noData"`
	Grid   DensityGrid `json:"grid"`
	Scale  ColorScale  `json:"scale"`
	Hover  [][]string  `json:"hover"`
}

// ReviewBinCount picks the review-axis bin count from the range width:
// width <= 10 one bin per integer, <= 50 min(30, width/2), <= 200
// min(50, width/5), otherwise min(100, 2*sqrt(rows)).
func ReviewBinCount(width float64, rows int) int {
	var bins int
	switch {
	case width <= 10:
		bins = int(width) + 1
	case width <= 50:
		bins = min(30, int(width/2))
	case width <= 200:
		bins = min(50, int(width/5))
	default:
		bins = min(100, int(math.Sqrt(float64(rows))*2))
	}
	return max(bins, 1)
}

// BuildDensityGrid bins (review count, rating) pairs of the rows inside rng.
// Rows missing either value, or outside [rng.Min, rng.Max], are dropped. A
// range with a non-finite bound yields NoData.
func BuildDensityGrid(t *dataset.Table, rng ReviewRange) Density {
	if !finite(rng.Min) || !finite(rng.Max) {
		return Density{Range: rng, NoData: true}
	}

	var reviews, ratings []float64
	for i := 0; i < t.Len(); i++ {
		r := t.At(i)
		if !r.HasRating() || !r.HasReviews() {
			continue
		}
		v := float64(*r.TotalReviews)
		if v < rng.Min || v > rng.Max {
			continue
		}
		reviews = append(reviews, v)
		ratings = append(ratings, *r.Rating)
	}

	if len(reviews) == 0 {
		return Density{Range: rng, NoData: true}
	}

	xMin, xMax := rng.Min, rng.Max
	if xMax <= xMin {
		xMax = xMin + 1
	}

	grid := Histogram2D(reviews, ratings,
		ReviewBinCount(xMax-xMin, len(reviews)), RatingBins,
		[2]float64{xMin, xMax}, [2]float64{RatingMin, RatingMax})

	return Density{
		Range: rng,
		Grid:  grid,
		Scale: NormalizeColorScale(grid.Counts),
		Hover: DensityHoverText(grid),
	}
}

// Histogram2D counts (x, y) pairs on evenly spaced bins over the given
// ranges. Values equal to the upper edge fall into the last bin; x values
// outside the range are ignored and y values are clamped to it. The result
// is transposed so rows index y and columns index x.
func Histogram2D(xs, ys []float64, xBins, yBins int, xRange, yRange [2]float64) DensityGrid {
	xEdges := floats.Span(make([]float64, xBins+1), xRange[0], xRange[1])
	yEdges := floats.Span(make([]float64, yBins+1), yRange[0], yRange[1])
	// Span accumulates rounding error; the outer edge must equal the bound
	xEdges[xBins] = xRange[1]
	yEdges[yBins] = yRange[1]

	counts := make([][]int, yBins)
	for i := range counts {
		counts[i] = make([]int, xBins)
	}

	total := 0
	for i := range xs {
		xi := binIndex(xEdges, xs[i])
		if xi < 0 {
			continue
		}
		y := math.Min(math.Max(ys[i], yRange[0]), yRange[1])
		yi := binIndex(yEdges, y)
		counts[yi][xi]++
		total++
	}

	return DensityGrid{Counts: counts, ReviewEdges: xEdges, RatingEdges: yEdges, Total: total}
}

// binIndex returns the bin holding v, or -1 when v lies outside the edges
func binIndex(edges []float64, v float64) int {
	last := len(edges) - 1
	if v < edges[0] || v > edges[last] {
		return -1
	}
	if v == edges[last] {
		return last - 1
	}
	i := sort.Search(len(edges), func(i int) bool { return edges[i] > v })
	return i - 1
}

// NormalizeColorScale derives color bounds from the 1st and 99th percentiles
// of the non-zero cells and switches to log1p compression when the bounds
// span more than two orders of magnitude.
func NormalizeColorScale(counts [][]int) ColorScale {
	var nonZero []float64
	for _, row := range counts {
		for _, c := range row {
			if c > 0 {
				nonZero = append(nonZero, float64(c))
			}
		}
	}

	if len(nonZero) == 0 {
		return ColorScale{Z: toFloat(counts, identity), ZMin: 0, ZMax: 1, ColorbarTitle: ColorbarTitle}
	}

	var zMin, zMax float64
	if len(nonZero) >= minCellsForPercentiles {
		p := stats.Percentiles(nonZero, []float64{1, 99})
		zMin, zMax = p[0], p[1]
	} else {
		zMin, zMax = 0, stats.Max(nonZero)
	}

	if zMax/math.Max(zMin, 1) > logScaleRatio {
		logMin := 0.0
		if zMin > 0 {
			logMin = math.Log1p(zMin)
		}
		return ColorScale{
			Z:             toFloat(counts, math.Log1p),
			ZMin:          logMin,
			ZMax:          math.Log1p(zMax),
			Log:           true,
			ColorbarTitle: ColorbarTitleLog,
		}
	}

	return ColorScale{Z: toFloat(counts, identity), ZMin: zMin, ZMax: zMax, ColorbarTitle: ColorbarTitle}
}

func identity(v float64) float64 { return v }

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func toFloat(counts [][]int, f func(float64) float64) [][]float64 {
	out := make([][]float64, len(counts))
	for i, row := range counts {
		out[i] = make([]float64, len(row))
		for j, c := range row {
			out[i][j] = f(float64(c))
		}
	}
	return out
}

// DensityHoverText builds one tooltip per cell from the bin edges
func DensityHoverText(g DensityGrid) [][]string {
	hover := make([][]string, len(g.Counts))
	for i, row := range g.Counts {
		hover[i] = make([]string, len(row))
		for j, count := range row {
			var b strings.Builder
			fmt.Fprintf(&b, "مراجعات: %s<br>", reviewBinLabel(g.ReviewEdges[j], g.ReviewEdges[j+1]))
			fmt.Fprintf(&b, "تقييم: %.2f–%.2f<br>", g.RatingEdges[i], g.RatingEdges[i+1])
			fmt.Fprintf(&b, "عدد المتاجر: %d", count)
			hover[i][j] = b.String()
		}
	}
	return hover
}

func reviewBinLabel(lo, hi float64) string {
	start, end := int(lo), int(hi)
	if end-start <= 1 {
		return fmt.Sprintf("%d", start)
	}
	return fmt.Sprintf("%d–%d", start, end)
}

// BinCenters returns the midpoints of consecutive edges
func BinCenters(edges []float64) []float64 {
	if len(edges) < 2 {
		return nil
	}
	centers := make([]float64, len(edges)-1)
	for i := range centers {
		centers[i] = (edges[i] + edges[i+1]) / 2
	}
	return centers
}
