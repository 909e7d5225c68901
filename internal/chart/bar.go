package chart

import (
	"fmt"
	"strconv"

	"github.com/maroof-insights/storefront-dashboard/internal/analysis"
	"github.com/maroof-insights/storefront-dashboard/internal/models"
)

const (
	barWidth       = 0.3
	minBarHeight   = 400
	heightPerBar   = 35
	barTitleMargin = 50
)

// Renderer builds figures with a fixed theme and wording
type Renderer struct {
	theme  Theme
	labels Labels
}

// NewRenderer creates a Renderer
func NewRenderer(theme Theme, labels Labels) *Renderer {
	return &Renderer{theme: theme, labels: labels}
}

// DefaultRenderer uses the dashboard theme and Arabic labels
func DefaultRenderer() *Renderer {
	return NewRenderer(DefaultTheme(), ArabicLabels())
}

// Labels returns the wording the renderer uses
func (r *Renderer) Labels() Labels {
	return r.labels
}

type barSeries struct {
	name     string
	values   []float64
	text     []string
	color    string
	template string
	hover    []string
}

// BusinessMix draws the category table as grouped horizontal bars. The
// series of the ranking metric comes first and takes the primary color.
func (r *Renderer) BusinessMix(rows []models.CategorySummary, sortBy analysis.SortBy, topN int) Figure {
	labels := make([]string, len(rows))
	counts := make([]float64, len(rows))
	reviews := make([]float64, len(rows))
	countText := make([]string, len(rows))
	reviewText := make([]string, len(rows))
	for i, row := range rows {
		labels[i] = row.Category
		counts[i] = float64(row.TotalCount)
		reviews[i] = float64(row.TotalReviews)
		countText[i] = strconv.FormatInt(row.TotalCount, 10)
		reviewText[i] = strconv.FormatInt(row.TotalReviews, 10)
	}

	countSeries := barSeries{
		name:     r.labels.StoreCount,
		values:   counts,
		text:     countText,
		template: fmt.Sprintf("%%{y}<br>%%{x} %s<extra></extra>", r.labels.StoreUnit),
	}
	reviewSeries := barSeries{
		name:     r.labels.ReviewCount,
		values:   reviews,
		text:     reviewText,
		template: fmt.Sprintf("%%{y}<br>%%{x} %s<extra></extra>", r.labels.ReviewUnit),
	}

	first, second := countSeries, reviewSeries
	sortText := r.labels.StoreCount
	if sortBy == analysis.SortByReviews {
		first, second = reviewSeries, countSeries
		sortText = r.labels.ReviewCount
	}
	first.color = r.theme.PrimaryColor
	second.color = r.theme.SecondaryColor

	title := fmt.Sprintf("أعلى %d نوع متجر حسب %s", topN, sortText)
	return Figure{
		Data:   []Trace{r.bar(labels, first), r.bar(labels, second)},
		Layout: r.barLayout(title, r.labels.CountAxis, topN),
	}
}

// TopRated draws the highest-rated stores, rating first then review count.
// An empty selection becomes an annotation.
func (r *Renderer) TopRated(sel analysis.Selection, minRating float64, topN int) Figure {
	if sel.NoMatch {
		return r.Annotation(fmt.Sprintf("لا توجد متاجر بتقييم ≥ %s", FormatNumber(minRating)), 14)
	}

	names, hover := storeLabels(sel)
	ratings, ratingText := ratingValues(sel)
	reviews, reviewText := reviewValues(sel)

	title := fmt.Sprintf("أعلى %d متجر بتقييم ≥ %s", topN, FormatNumber(minRating))
	return Figure{
		Data: []Trace{
			r.bar(names, barSeries{name: r.labels.Rating, values: ratings, text: ratingText, color: r.theme.PrimaryColor, hover: hover}),
			r.bar(names, barSeries{name: r.labels.ReviewCount, values: reviews, text: reviewText, color: r.theme.SecondaryColor, hover: hover}),
		},
		Layout: r.barLayout(title, r.labels.RatingAxis, topN),
	}
}

// MostReviewed draws the most-reviewed stores, review count first then
// rating. An empty selection draws empty axes, never an annotation.
func (r *Renderer) MostReviewed(sel analysis.Selection, topN int) Figure {
	names, hover := storeLabels(sel)
	ratings, ratingText := ratingValues(sel)
	reviews, reviewText := reviewValues(sel)

	title := fmt.Sprintf("أعلى %d متجر حسب عدد التقييمات", topN)
	return Figure{
		Data: []Trace{
			r.bar(names, barSeries{name: r.labels.ReviewCount, values: reviews, text: reviewText, color: r.theme.PrimaryColor, hover: hover}),
			r.bar(names, barSeries{name: r.labels.Rating, values: ratings, text: ratingText, color: r.theme.SecondaryColor, hover: hover}),
		},
		Layout: r.barLayout(title, r.labels.ReviewsAxis, topN),
	}
}

func (r *Renderer) bar(labels []string, s barSeries) Trace {
	template := s.template
	if s.hover != nil {
		template = "%{hovertext}<extra></extra>"
	}
	return Trace{
		Type:          "bar",
		Name:          s.name,
		Orientation:   "h",
		X:             s.values,
		Y:             labels,
		Text:          s.text,
		TextPosition:  "outside",
		HoverText:     s.hover,
		HoverTemplate: template,
		Marker:        &Marker{Color: s.color},
		Width:         barWidth,
	}
}

func (r *Renderer) barLayout(title, xTitle string, topN int) Layout {
	return Layout{
		Title:   &Title{Text: title, Font: r.theme.font(r.theme.TitleSize)},
		XAxis:   &Axis{Title: &Title{Text: xTitle}},
		YAxis:   &Axis{CategoryOrder: "total ascending"},
		BarMode: "group",
		Height:  max(minBarHeight, topN*heightPerBar),
		Margin:  &Margin{L: 10, R: 10, T: barTitleMargin, B: 10},
		Legend: &Legend{
			Title:       &Title{Text: r.labels.Legend},
			Orientation: "h",
			YAnchor:     "bottom",
			Y:           1.02,
			XAnchor:     "center",
			X:           0.5,
		},
		HoverLabel: r.theme.hoverLabel("right"),
		Font:       &Font{Family: r.theme.FontFamily},
	}
}

func storeLabels(sel analysis.Selection) (names, hover []string) {
	names = make([]string, len(sel.Rows))
	hover = make([]string, len(sel.Rows))
	for i, row := range sel.Rows {
		names[i] = row.Record.Name
		hover[i] = row.Hover
	}
	return names, hover
}

// ratingValues returns bar lengths and labels; a missing rating draws as 0
// with an empty label
func ratingValues(sel analysis.Selection) ([]float64, []string) {
	values := make([]float64, len(sel.Rows))
	text := make([]string, len(sel.Rows))
	for i, row := range sel.Rows {
		if row.Record.HasRating() {
			values[i] = *row.Record.Rating
			text[i] = roundText(*row.Record.Rating)
		}
	}
	return values, text
}

func reviewValues(sel analysis.Selection) ([]float64, []string) {
	values := make([]float64, len(sel.Rows))
	text := make([]string, len(sel.Rows))
	for i, row := range sel.Rows {
		if row.Record.HasReviews() {
			values[i] = float64(*row.Record.TotalReviews)
			text[i] = strconv.FormatInt(*row.Record.TotalReviews, 10)
		}
	}
	return values, text
}
