package chart

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/maroof-insights/storefront-dashboard/internal/analysis"
	"github.com/maroof-insights/storefront-dashboard/internal/dataset"
	"github.com/maroof-insights/storefront-dashboard/internal/models"
)

func mixRows() []models.CategorySummary {
	return []models.CategorySummary{
		{Category: "B", TotalCount: 1, TotalReviews: 30},
		{Category: "A", TotalCount: 2, TotalReviews: 30},
	}
}

func TestBusinessMixFigure(t *testing.T) {
	r := DefaultRenderer()
	fig := r.BusinessMix(mixRows(), analysis.SortByTotal, 12)

	if len(fig.Data) != 2 {
		t.Fatalf("expected 2 traces, got %d", len(fig.Data))
	}
	first := fig.Data[0]
	if first.Name != "عدد المتاجر" || first.Marker.Color != "#2C7D8B" {
		t.Errorf("unexpected first series %q %s", first.Name, first.Marker.Color)
	}
	if first.Orientation != "h" || first.Width != 0.3 || first.TextPosition != "outside" {
		t.Errorf("unexpected bar styling %+v", first)
	}
	if got := first.X.([]float64); got[1] != 2 {
		t.Errorf("count values = %v", got)
	}
	if got := first.Y.([]string); got[0] != "B" || got[1] != "A" {
		t.Errorf("labels = %v", got)
	}
	if !strings.Contains(first.HoverTemplate, "متجر") {
		t.Errorf("hover template = %q", first.HoverTemplate)
	}

	l := fig.Layout
	if l.Title.Text != "أعلى 12 نوع متجر حسب عدد المتاجر" {
		t.Errorf("title = %q", l.Title.Text)
	}
	if l.Height != 420 {
		t.Errorf("height = %d, want 420", l.Height)
	}
	if l.BarMode != "group" || l.YAxis.CategoryOrder != "total ascending" {
		t.Errorf("unexpected layout %+v", l)
	}
}

func TestBusinessMixFigureByReviews(t *testing.T) {
	fig := DefaultRenderer().BusinessMix(mixRows(), analysis.SortByReviews, 5)

	if fig.Data[0].Name != "عدد التقييمات" || fig.Data[0].Marker.Color != "#2C7D8B" {
		t.Errorf("review series should lead, got %q", fig.Data[0].Name)
	}
	if !strings.Contains(fig.Data[0].HoverTemplate, "تقييم") {
		t.Errorf("review series hover = %q", fig.Data[0].HoverTemplate)
	}
	if fig.Data[1].Name != "عدد المتاجر" {
		t.Errorf("second series = %q", fig.Data[1].Name)
	}
	if fig.Layout.Height != 400 {
		t.Errorf("height floor not applied: %d", fig.Layout.Height)
	}
	if !strings.HasSuffix(fig.Layout.Title.Text, "عدد التقييمات") {
		t.Errorf("title = %q", fig.Layout.Title.Text)
	}
}

func TestTopRatedAnnotation(t *testing.T) {
	fig := DefaultRenderer().TopRated(analysis.Selection{NoMatch: true}, 4.5, 10)

	if !fig.AnnotationOnly() {
		t.Fatal("expected an annotation-only figure")
	}
	if got := fig.Layout.Annotations[0].Text; got != "لا توجد متاجر بتقييم ≥ 4.5" {
		t.Errorf("annotation = %q", got)
	}
	if fig.Layout.XAxis != nil || fig.Layout.YAxis != nil {
		t.Error("annotation figure should not carry axes")
	}
}

func TestTopRatedFigure(t *testing.T) {
	tbl := dataset.NewTable("test", []models.StoreRecord{
		{Name: "a", Rating: models.FloatPtr(4.567), TotalReviews: models.IntPtr(12)},
		{Name: "b", Rating: models.FloatPtr(5)},
	})
	sel, err := analysis.TopByRating(tbl, 4, 10)
	if err != nil {
		t.Fatal(err)
	}

	fig := DefaultRenderer().TopRated(sel, 4, 10)
	if fig.AnnotationOnly() {
		t.Fatal("unexpected annotation")
	}
	if fig.Layout.Title.Text != "أعلى 10 متجر بتقييم ≥ 4.0" {
		t.Errorf("title = %q", fig.Layout.Title.Text)
	}
	rating := fig.Data[0]
	if text := rating.Text.([]string); text[0] != "4.57" || text[1] != "5" {
		t.Errorf("rating text = %v", text)
	}
	if rating.HoverTemplate != "%{hovertext}<extra></extra>" || len(rating.HoverText) != 2 {
		t.Errorf("unexpected hover %q %d", rating.HoverTemplate, len(rating.HoverText))
	}
	reviews := fig.Data[1]
	if v := reviews.X.([]float64); v[0] != 12 || v[1] != 0 {
		t.Errorf("review values = %v", v)
	}
	if text := reviews.Text.([]string); text[1] != "" {
		t.Errorf("missing review count should have empty text, got %q", text[1])
	}
}

func TestMostReviewedEmpty(t *testing.T) {
	sel, err := analysis.TopByReviews(dataset.NewTable("empty", nil), 10)
	if err != nil {
		t.Fatal(err)
	}

	fig := DefaultRenderer().MostReviewed(sel, 10)
	if fig.AnnotationOnly() {
		t.Fatal("empty most-reviewed selection must not become an annotation")
	}
	if len(fig.Data) != 2 {
		t.Fatalf("expected 2 traces, got %d", len(fig.Data))
	}
	if n := len(fig.Data[0].X.([]float64)); n != 0 {
		t.Errorf("expected zero points, got %d", n)
	}
	if fig.Data[0].Name != "عدد التقييمات" {
		t.Errorf("first series = %q", fig.Data[0].Name)
	}
}

func TestFigureJSON(t *testing.T) {
	fig := DefaultRenderer().BusinessMix(mixRows(), analysis.SortByTotal, 10)

	raw, err := json.Marshal(fig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"orientation":"h"`, `"barmode":"group"`, `"categoryorder":"total ascending"`, `"bgcolor":"#C9D2BA"`} {
		if !strings.Contains(string(raw), key) {
			t.Errorf("json missing %s", key)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[float64]string{4.5: "4.5", 4: "4.0", 4.25: "4.25", 0: "0.0"}
	for in, want := range tests {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%v) = %q, want %q", in, got, want)
		}
	}
}
