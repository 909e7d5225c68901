package analysis

import (
	"sort"
	"strings"

	"github.com/maroof-insights/storefront-dashboard/internal/dataset"
	"github.com/maroof-insights/storefront-dashboard/internal/models"
)

// SortBy selects the metric the business mix is ranked by
type SortBy string

const (
	SortByTotal   SortBy = "Total"
	SortByReviews SortBy = "Reviews"
)

// ParseSortBy accepts "Total" or "Reviews" in any letter case
func ParseSortBy(s string) (SortBy, error) {
	switch {
	case strings.EqualFold(s, string(SortByTotal)):
		return SortByTotal, nil
	case strings.EqualFold(s, string(SortByReviews)):
		return SortByReviews, nil
	default:
		return "", ErrInvalidSortBy
	}
}

func (s SortBy) metric(c models.CategorySummary) int64 {
	if s == SortByReviews {
		return c.TotalReviews
	}
	return c.TotalCount
}

// BuildBusinessMix groups the table twice, once by the primary label and once
// by the free-text label, and concatenates both partial tables. The same label
// may therefore appear twice. The placeholder category is dropped from the
// primary grouping and blank labels are dropped from both.
func BuildBusinessMix(t *dataset.Table) []models.CategorySummary {
	primary := groupByLabel(t, func(r models.StoreRecord) *string { return r.BusinessType })
	freeText := groupByLabel(t, func(r models.StoreRecord) *string { return r.OtherType })

	mixed := make([]models.CategorySummary, 0, len(primary)+len(freeText))
	for _, c := range primary {
		if c.Category == PlaceholderCategory || isBlank(c.Category) {
			continue
		}
		mixed = append(mixed, c)
	}
	for _, c := range freeText {
		if isBlank(c.Category) {
			continue
		}
		mixed = append(mixed, c)
	}
	return mixed
}

// BusinessMix ranks the business mix by sortBy and keeps the topN largest
// groups. The result is ordered ascending, so the largest group comes last.
func BusinessMix(t *dataset.Table, sortBy SortBy, topN int) ([]models.CategorySummary, error) {
	if sortBy != SortByTotal && sortBy != SortByReviews {
		return nil, ErrInvalidSortBy
	}
	if topN < 1 {
		return nil, ErrInvalidTopN
	}

	mixed := BuildBusinessMix(t)
	sort.SliceStable(mixed, func(i, j int) bool {
		return sortBy.metric(mixed[i]) < sortBy.metric(mixed[j])
	})
	return tail(mixed, topN), nil
}

// groupByLabel counts rows and sums reviews per raw label value. Rows whose
// label is missing are skipped. Groups come out in label order.
func groupByLabel(t *dataset.Table, label func(models.StoreRecord) *string) []models.CategorySummary {
	index := make(map[string]int)
	var groups []models.CategorySummary

	for i := 0; i < t.Len(); i++ {
		r := t.At(i)
		v := label(r)
		if v == nil {
			continue
		}
		pos, ok := index[*v]
		if !ok {
			pos = len(groups)
			index[*v] = pos
			groups = append(groups, models.CategorySummary{Category: *v})
		}
		groups[pos].TotalCount++
		groups[pos].TotalReviews += r.ReviewsValue()
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].Category < groups[j].Category })
	return groups
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func tail[T any](rows []T, n int) []T {
	if len(rows) <= n {
		return rows
	}
	return rows[len(rows)-n:]
}
