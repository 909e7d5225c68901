package chart

import (
	"strings"
	"testing"

	"github.com/maroof-insights/storefront-dashboard/internal/analysis"
	"github.com/maroof-insights/storefront-dashboard/internal/dataset"
	"github.com/maroof-insights/storefront-dashboard/internal/models"
)

func TestHeatmapFigure(t *testing.T) {
	tbl := dataset.NewTable("test", []models.StoreRecord{
		{Name: "a", Rating: models.FloatPtr(4.5), TotalReviews: models.IntPtr(10)},
		{Name: "b", Rating: models.FloatPtr(3.5), TotalReviews: models.IntPtr(70)},
	})
	d := analysis.BuildDensityGrid(tbl, analysis.ReviewRange{Min: 0, Max: 100})

	fig := DefaultRenderer().Heatmap(d, "")
	if len(fig.Data) != 1 {
		t.Fatalf("expected one trace, got %d", len(fig.Data))
	}
	tr := fig.Data[0]
	if tr.Type != "heatmap" {
		t.Errorf("type = %q", tr.Type)
	}
	if xs := tr.X.([]float64); len(xs) != 20 || xs[0] != 2.5 {
		t.Errorf("x centers = %v", xs)
	}
	if ys := tr.Y.([]float64); len(ys) != analysis.RatingBins || ys[0] != 0.125 {
		t.Errorf("y centers = %v", ys)
	}
	if *tr.ZMin != 0 || *tr.ZMax != 1 {
		t.Errorf("z bounds = [%v, %v]", *tr.ZMin, *tr.ZMax)
	}
	if tr.ColorBar.Title.Text != analysis.ColorbarTitle {
		t.Errorf("colorbar title = %q", tr.ColorBar.Title.Text)
	}
	if len(tr.ColorScale) != 5 {
		t.Errorf("colorscale stops = %d", len(tr.ColorScale))
	}

	title := fig.Layout.Title.Text
	if !strings.HasPrefix(title, "كثافة التقييمات مقابل المراجعات<br>") || !strings.Contains(title, "0–100") {
		t.Errorf("title = %q", title)
	}
	if fig.Layout.Height != 500 || fig.Layout.Margin.T != 70 {
		t.Errorf("unexpected layout %+v", fig.Layout)
	}
}

func TestHeatmapNoData(t *testing.T) {
	d := analysis.BuildDensityGrid(dataset.NewTable("empty", nil), analysis.ReviewRange{Min: 100, Max: 500})

	fig := DefaultRenderer().Heatmap(d, "custom")
	if !fig.AnnotationOnly() {
		t.Fatal("expected annotation-only figure")
	}
	a := fig.Layout.Annotations[0]
	if a.Text != "لا توجد بيانات في نطاق 100-500 مراجعة" {
		t.Errorf("annotation = %q", a.Text)
	}
	if a.XRef != "paper" || *a.X != 0.5 || *a.Y != 0.5 || a.Font.Size != 16 {
		t.Errorf("annotation placement = %+v", a)
	}
}

func TestHeatmapCustomTitle(t *testing.T) {
	tbl := dataset.NewTable("test", []models.StoreRecord{
		{Name: "a", Rating: models.FloatPtr(4), TotalReviews: models.IntPtr(3)},
	})
	d := analysis.BuildDensityGrid(tbl, analysis.ReviewRange{Min: 0, Max: 5})

	fig := DefaultRenderer().Heatmap(d, "عنوان - مخصص")
	if !strings.HasPrefix(fig.Layout.Title.Text, "عنوان - مخصص<br>") {
		t.Errorf("title = %q", fig.Layout.Title.Text)
	}
}
