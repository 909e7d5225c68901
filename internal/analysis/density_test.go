package analysis

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/maroof-insights/storefront-dashboard/internal/models"
)

func TestReviewBinCount(t *testing.T) {
	tests := []struct {
		width float64
		rows  int
		want  int
	}{
		{0, 5, 1},
		{1, 5, 2},
		{10, 5, 11},
		{11, 5, 5},
		{50, 5, 25},
		{100, 5, 20},
		{200, 5, 40},
		{300, 100, 20},
		{10000, 100000, 100},
		{500, 0, 1},
	}
	for _, tt := range tests {
		if got := ReviewBinCount(tt.width, tt.rows); got != tt.want {
			t.Errorf("ReviewBinCount(%v, %d) = %d, want %d", tt.width, tt.rows, got, tt.want)
		}
	}
}

func TestBuildDensityGridShape(t *testing.T) {
	tbl := table(store("a", 4.5, 10), store("b", 3.0, 55))

	d := BuildDensityGrid(tbl, ReviewRange{Min: 0, Max: 100})
	if d.NoData {
		t.Fatal("unexpected NoData")
	}
	if len(d.Grid.Counts) != RatingBins {
		t.Errorf("rating rows = %d, want %d", len(d.Grid.Counts), RatingBins)
	}
	if len(d.Grid.Counts[0]) != 20 {
		t.Errorf("review columns = %d, want 20", len(d.Grid.Counts[0]))
	}
	if len(d.Grid.ReviewEdges) != 21 || len(d.Grid.RatingEdges) != RatingBins+1 {
		t.Errorf("unexpected edge counts %d/%d", len(d.Grid.ReviewEdges), len(d.Grid.RatingEdges))
	}
	// rating 4.5 -> bin 18, reviews 10 -> bin 2
	if d.Grid.Counts[18][2] != 1 {
		t.Errorf("expected one store at [18][2], got %d", d.Grid.Counts[18][2])
	}
}

func TestBuildDensityGridCellSum(t *testing.T) {
	records := []models.StoreRecord{
		store("a", 5.0, 0),
		store("b", 0.0, 100),
		store("c", 4.2, 50),
		store("d", 4.2, 101),
		store("e", 3.3, 99),
		{Name: "no rating", TotalReviews: models.IntPtr(20)},
		{Name: "no reviews", Rating: models.FloatPtr(4)},
	}
	for i := 0; i < 40; i++ {
		records = append(records, store("bulk", float64(i%50)/10, int64(i*3)))
	}
	tbl := table(records...)

	ranges := []ReviewRange{{0, 100}, {0, 5}, {10, 20}, {50, 50}, {0, 1000}}
	for _, rng := range ranges {
		want := 0
		for _, r := range records {
			if r.HasRating() && r.HasReviews() {
				v := float64(*r.TotalReviews)
				if v >= rng.Min && v <= rng.Max {
					want++
				}
			}
		}

		d := BuildDensityGrid(tbl, rng)
		got := 0
		for _, row := range d.Grid.Counts {
			for _, c := range row {
				got += c
			}
		}
		if got != want {
			t.Errorf("range %+v: cell sum = %d, want %d", rng, got, want)
		}
		if want > 0 && d.Grid.Total != want {
			t.Errorf("range %+v: Total = %d, want %d", rng, d.Grid.Total, want)
		}
		if (want == 0) != d.NoData {
			t.Errorf("range %+v: NoData = %v with %d rows", rng, d.NoData, want)
		}
	}
}

func TestBuildDensityGridNoData(t *testing.T) {
	tbl := table(store("a", 4, 500))

	d := BuildDensityGrid(tbl, ReviewRange{Min: 0, Max: 100})
	if !d.NoData {
		t.Fatal("expected NoData for an empty range")
	}
	if d.Grid.Counts != nil {
		t.Error("NoData result should carry no grid")
	}
}

func TestBuildDensityGridDegenerateRange(t *testing.T) {
	tbl := table(store("a", 4, 7), store("b", 2, 7))

	d := BuildDensityGrid(tbl, ReviewRange{Min: 7, Max: 7})
	if d.NoData {
		t.Fatal("unexpected NoData")
	}
	edges := d.Grid.ReviewEdges
	if edges[0] != 7 || edges[len(edges)-1] != 8 {
		t.Errorf("expected edges widened to [7, 8], got %v", edges)
	}
	if d.Grid.Total != 2 {
		t.Errorf("Total = %d, want 2", d.Grid.Total)
	}
}

func TestBuildDensityGridKeepsUpperBound(t *testing.T) {
	ranges := []ReviewRange{{0, 193}, {3, 196}, {7, 200}, {0, 100}, {12, 4321}}
	for _, rng := range ranges {
		lo, hi := int64(rng.Min), int64(rng.Max)
		d := BuildDensityGrid(table(store("low", 4, lo), store("high", 4, hi)), rng)
		if d.NoData {
			t.Fatalf("range %+v: unexpected NoData", rng)
		}

		got := 0
		for _, row := range d.Grid.Counts {
			for _, c := range row {
				got += c
			}
		}
		if got != 2 {
			t.Errorf("range %+v: cell sum = %d, want 2", rng, got)
		}

		edges := d.Grid.ReviewEdges
		if last := edges[len(edges)-1]; last != rng.Max {
			t.Errorf("range %+v: last review edge = %v", rng, last)
		}
		if last := d.Grid.RatingEdges[len(d.Grid.RatingEdges)-1]; last != RatingMax {
			t.Errorf("range %+v: last rating edge = %v", rng, last)
		}

		row := d.Hover[0]
		suffix := fmt.Sprintf("–%d<br>", hi)
		if !strings.Contains(row[len(row)-1], suffix) {
			t.Errorf("range %+v: last hover %q lacks %q", rng, row[len(row)-1], suffix)
		}
	}
}

func TestBuildDensityGridNonFiniteRange(t *testing.T) {
	tbl := table(store("a", 4, 10), store("b", 3, 50))

	ranges := []ReviewRange{
		{Min: 0, Max: math.NaN()},
		{Min: math.NaN(), Max: 100},
		{Min: 0, Max: math.Inf(1)},
		{Min: math.Inf(-1), Max: 100},
	}
	for _, rng := range ranges {
		if d := BuildDensityGrid(tbl, rng); !d.NoData {
			t.Errorf("range %+v: expected NoData", rng)
		}
	}
}

func TestNormalizeColorScaleLinear(t *testing.T) {
	counts := [][]int{{0, 3}, {7, 0}}

	s := NormalizeColorScale(counts)
	if s.Log {
		t.Error("unexpected log scale")
	}
	if s.ZMin != 0 || s.ZMax != 7 {
		t.Errorf("bounds = [%v, %v], want [0, 7]", s.ZMin, s.ZMax)
	}
	if s.ColorbarTitle != ColorbarTitle {
		t.Errorf("colorbar title = %q", s.ColorbarTitle)
	}
}

func TestNormalizeColorScaleLog(t *testing.T) {
	counts := [][]int{{1, 0}, {0, 1000}}

	s := NormalizeColorScale(counts)
	if !s.Log {
		t.Fatal("expected log scale for a 1:1000 grid")
	}
	if s.ColorbarTitle != ColorbarTitleLog {
		t.Errorf("colorbar title = %q, want %q", s.ColorbarTitle, ColorbarTitleLog)
	}
	if s.ZMin != 0 {
		t.Errorf("ZMin = %v, want 0", s.ZMin)
	}
	if math.Abs(s.ZMax-math.Log1p(1000)) > 1e-12 {
		t.Errorf("ZMax = %v, want log1p(1000)", s.ZMax)
	}
	if math.Abs(s.Z[1][1]-math.Log1p(1000)) > 1e-12 || s.Z[0][1] != 0 {
		t.Errorf("grid not log1p-compressed: %v", s.Z)
	}
}

func TestNormalizeColorScalePercentiles(t *testing.T) {
	row := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 1000}
	s := NormalizeColorScale([][]int{row})

	// p1 = 1.1, p99 = 901
	if !s.Log {
		t.Fatal("expected log scale")
	}
	if math.Abs(s.ZMin-math.Log1p(1.1)) > 1e-9 {
		t.Errorf("ZMin = %v, want log1p(1.1)", s.ZMin)
	}
	if math.Abs(s.ZMax-math.Log1p(901)) > 1e-9 {
		t.Errorf("ZMax = %v, want log1p(901)", s.ZMax)
	}
}

func TestNormalizeColorScaleEmpty(t *testing.T) {
	s := NormalizeColorScale([][]int{{0, 0}})
	if s.ZMin != 0 || s.ZMax != 1 || s.Log {
		t.Errorf("unexpected scale for empty grid: %+v", s)
	}
}

func TestDensityHoverText(t *testing.T) {
	grid := Histogram2D([]float64{0, 40}, []float64{4.6, 1.0}, 2, 2, [2]float64{0, 100}, [2]float64{0, 5})

	hover := DensityHoverText(grid)
	if len(hover) != 2 || len(hover[0]) != 2 {
		t.Fatalf("unexpected hover shape")
	}
	cell := hover[1][0]
	for _, want := range []string{"مراجعات: 0–50", "تقييم: 2.50–5.00", "عدد المتاجر: 1"} {
		if !strings.Contains(cell, want) {
			t.Errorf("hover %q missing %q", cell, want)
		}
	}

	single := DensityHoverText(Histogram2D([]float64{3}, []float64{4}, 2, 1, [2]float64{3, 4}, [2]float64{0, 5}))
	if !strings.HasPrefix(single[0][0], "مراجعات: 3<br>") {
		t.Errorf("narrow bins should show a single value, got %q", single[0][0])
	}
}

func TestBinCenters(t *testing.T) {
	got := BinCenters([]float64{0, 1, 3})
	if len(got) != 2 || got[0] != 0.5 || got[1] != 2 {
		t.Errorf("BinCenters() = %v", got)
	}
	if BinCenters([]float64{1}) != nil {
		t.Error("expected nil for a single edge")
	}
}
