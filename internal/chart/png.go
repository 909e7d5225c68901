package chart

import (
	"errors"
	"fmt"
	"io"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	// ErrNothingToRender is returned for annotation-only figures
	ErrNothingToRender = errors.New("figure has no data to render")

	// ErrUnsupportedFigure is returned for figures without a bar trace
	ErrUnsupportedFigure = errors.New("only bar figures can be exported as PNG")
)

const (
	pngHeight     = 512
	pngMinWidth   = 1024
	pngBarWidth   = 40
	pngBarSpacing = 30
	pngSideMargin = 120
	pngLabelRunes = 18
)

// WritePNG renders the first bar series of fig as a vertical bar chart.
// Bars keep the figure's order, so the largest value is drawn last.
func WritePNG(fig Figure, w io.Writer) error {
	if fig.AnnotationOnly() {
		return ErrNothingToRender
	}
	if len(fig.Data) == 0 || fig.Data[0].Type != "bar" {
		return ErrUnsupportedFigure
	}

	trace := fig.Data[0]
	values, ok := trace.X.([]float64)
	if !ok {
		return ErrUnsupportedFigure
	}
	labels, _ := trace.Y.([]string)
	if len(values) == 0 {
		return ErrNothingToRender
	}

	color := drawing.ColorFromHex(strings.TrimPrefix(markerColor(trace), "#"))
	bars := make([]gochart.Value, len(values))
	top := 0.0
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = shorten(labels[i], pngLabelRunes)
		}
		bars[i] = gochart.Value{
			Label: label,
			Value: v,
			Style: gochart.Style{FillColor: color, StrokeColor: color, StrokeWidth: 1},
		}
		top = max(top, v)
	}
	if top <= 0 {
		top = 1
	}

	title := ""
	if fig.Layout.Title != nil {
		title = fig.Layout.Title.Text
	}

	graph := gochart.BarChart{
		Title:      title,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Width:      max(pngMinWidth, len(bars)*(pngBarWidth+pngBarSpacing)+pngSideMargin),
		Height:     pngHeight,
		BarWidth:   pngBarWidth,
		BarSpacing: pngBarSpacing,
		YAxis:      gochart.YAxis{Range: &gochart.ContinuousRange{Min: 0, Max: top}},
		Bars:       bars,
	}
	if err := graph.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("failed to render png: %w", err)
	}
	return nil
}

func markerColor(t Trace) string {
	if t.Marker == nil || t.Marker.Color == "" {
		return DefaultTheme().PrimaryColor
	}
	return t.Marker.Color
}

func shorten(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
