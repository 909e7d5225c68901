package analysis

import (
	"sort"

	"github.com/maroof-insights/storefront-dashboard/internal/dataset"
	"github.com/maroof-insights/storefront-dashboard/internal/models"
)

// StoreRow is a selected store together with its tooltip
type StoreRow struct {
	Record models.StoreRecord
	Hover  string
}

// Selection is the output of a top-N selector. NoMatch is set when a filter
// left nothing to chart; renderers draw an annotation instead of bars.
type Selection struct {
	Rows    []StoreRow
	NoMatch bool
}

// TopByRating keeps stores rated at least minRating and returns the topN
// highest, ordered ascending by rating.
func TopByRating(t *dataset.Table, minRating float64, topN int) (Selection, error) {
	if topN < 1 {
		return Selection{}, ErrInvalidTopN
	}

	var rows []StoreRow
	for i := 0; i < t.Len(); i++ {
		r := t.At(i)
		if r.HasRating() && *r.Rating >= minRating {
			rows = append(rows, StoreRow{Record: r})
		}
	}
	if len(rows) == 0 {
		return Selection{NoMatch: true}, nil
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return *rows[i].Record.Rating < *rows[j].Record.Rating
	})
	return Selection{Rows: withHover(tail(rows, topN))}, nil
}

// TopByReviews returns the topN most-reviewed stores, ordered ascending by
// review count. An empty table yields an empty selection, never NoMatch.
// Stores without a review count rank below every counted store.
func TopByReviews(t *dataset.Table, topN int) (Selection, error) {
	if topN < 1 {
		return Selection{}, ErrInvalidTopN
	}

	rows := make([]StoreRow, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		r := t.At(i)
		rows = append(rows, StoreRow{Record: r})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Record, rows[j].Record
		if !a.HasReviews() || !b.HasReviews() {
			return !a.HasReviews() && b.HasReviews()
		}
		return *a.TotalReviews < *b.TotalReviews
	})
	return Selection{Rows: withHover(tail(rows, topN))}, nil
}

// withHover fills tooltips only for the rows that survive truncation
func withHover(rows []StoreRow) []StoreRow {
	out := make([]StoreRow, len(rows))
	for i, row := range rows {
		out[i] = StoreRow{Record: row.Record, Hover: BuildHoverText(row.Record)}
	}
	return out
}
