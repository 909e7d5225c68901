package chart

import (
	"fmt"

	"github.com/maroof-insights/storefront-dashboard/internal/analysis"
)

const transparent = "rgba(255, 255, 255, 0)"

// heatmapColorScale keeps zero cells transparent
var heatmapColorScale = [][]any{
	{0.0, transparent},
	{0.001, "#6B2F1D"},
	{0.33, "#236A77"},
	{0.66, "#26AD90"},
	{1.0, "#1CC741"},
}

// Heatmap draws a density grid. An empty title falls back to the default
// heatmap title; a NoData density becomes a centered annotation.
func (r *Renderer) Heatmap(d analysis.Density, title string) Figure {
	lo, hi := analysis.FormatBound(d.Range.Min), analysis.FormatBound(d.Range.Max)
	if d.NoData {
		return r.centeredAnnotation(fmt.Sprintf("لا توجد بيانات في نطاق %s-%s مراجعة", lo, hi), 16)
	}
	if title == "" {
		title = r.labels.HeatmapTitle
	}

	trace := Trace{
		Type:          "heatmap",
		X:             analysis.BinCenters(d.Grid.ReviewEdges),
		Y:             analysis.BinCenters(d.Grid.RatingEdges),
		Z:             d.Scale.Z,
		Text:          d.Hover,
		HoverTemplate: "%{text}<extra></extra>",
		ColorScale:    heatmapColorScale,
		ColorBar:      &ColorBar{Title: &Title{Text: d.Scale.ColorbarTitle}, TickFormat: ",d"},
		ZMin:          ptr(d.Scale.ZMin),
		ZMax:          ptr(d.Scale.ZMax),
		ShowScale:     ptr(true),
	}

	text := fmt.Sprintf("%s<br><span style='font-size:12px;'>%s: %s–%s</span>", title, r.labels.ReviewsRange, lo, hi)
	return Figure{
		Data: []Trace{trace},
		Layout: Layout{
			Title:       &Title{Text: text, Font: r.theme.font(r.theme.TitleSize)},
			XAxis:       &Axis{Title: &Title{Text: r.labels.HeatmapXAxis}, TickFormat: ",d"},
			YAxis:       &Axis{Title: &Title{Text: r.labels.HeatmapYAxis}, TickFormat: ".1f"},
			Font:        r.theme.font(12),
			HoverLabel:  r.theme.hoverLabel(""),
			Margin:      &Margin{L: 10, R: 10, T: 70, B: 50},
			Height:      500,
			PlotBGColor: transparent,
		},
	}
}

// RangeTitle names the heatmap after the selected review range
func (r *Renderer) RangeTitle(rangeName string) string {
	return fmt.Sprintf("%s - %s", r.labels.HeatmapTitle, rangeName)
}
