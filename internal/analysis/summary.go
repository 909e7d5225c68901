package analysis

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/maroof-insights/storefront-dashboard/internal/dataset"
	"github.com/maroof-insights/storefront-dashboard/internal/models"
)

const (
	// DefaultHighRating is the threshold of an "excellent" store
	DefaultHighRating = 4.5

	// CustomRangeLabel names a review range that matches no preset
	CustomRangeLabel = "مخصص"

	bestInRange        = 3
	opportunitiesLimit = 3
	rangeFallbackWidth = 100
)

// ComputeKeyMetrics summarizes the whole table. Missing ratings and review
// counts are skipped by the mean and the sums.
func ComputeKeyMetrics(t *dataset.Table, highThreshold float64) models.KeyMetrics {
	var ratings, reviews []float64
	var maxReviews int64
	highRated := 0

	for i := 0; i < t.Len(); i++ {
		r := t.At(i)
		if r.HasRating() {
			ratings = append(ratings, *r.Rating)
			if *r.Rating >= highThreshold {
				highRated++
			}
		}
		if r.HasReviews() {
			reviews = append(reviews, float64(*r.TotalReviews))
			if *r.TotalReviews > maxReviews {
				maxReviews = *r.TotalReviews
			}
		}
	}

	m := models.KeyMetrics{
		TotalStores:   t.Len(),
		TotalReviews:  int64(floats.Sum(reviews)),
		HighRated:     highRated,
		HighThreshold: highThreshold,
		MaxReviews:    maxReviews,
	}
	if len(ratings) > 0 {
		m.AverageRating = stat.Mean(ratings, nil)
	}
	return m
}

// ComputeRatingShare counts stores rated at least minRating and their share
// of all stores in percent.
func ComputeRatingShare(t *dataset.Table, minRating float64) models.RatingShare {
	share := models.RatingShare{MinRating: minRating}
	for i := 0; i < t.Len(); i++ {
		r := t.At(i)
		if r.HasRating() && *r.Rating >= minRating {
			share.Count++
		}
	}
	if t.Len() > 0 {
		share.Percentage = float64(share.Count) / float64(t.Len()) * 100
	}
	return share
}

// FindMostReviewed returns the store with the largest review count and the
// mean review count of the table. ok is false when no store has a count.
func FindMostReviewed(t *dataset.Table) (models.MostReviewedStore, bool) {
	var reviews []float64
	best := -1
	for i := 0; i < t.Len(); i++ {
		r := t.At(i)
		if !r.HasReviews() {
			continue
		}
		reviews = append(reviews, float64(*r.TotalReviews))
		if best < 0 || *r.TotalReviews > *t.At(best).TotalReviews {
			best = i
		}
	}
	if best < 0 {
		return models.MostReviewedStore{}, false
	}
	return models.MostReviewedStore{
		Store:          t.At(best),
		AverageReviews: stat.Mean(reviews, nil),
	}, true
}

// QuickRanges returns the review-range presets offered for a dataset whose
// largest review count is maxReviews.
func QuickRanges(maxReviews int64) []models.ReviewRange {
	ranges := []models.ReviewRange{
		{Label: "0-100 مراجعة (مبتدئين)", Min: 0, Max: 100},
		{Label: "100-500 مراجعة (متوسطين)", Min: 100, Max: 500},
		{Label: "500-1000 مراجعة (نشطين)", Min: 500, Max: 1000},
	}

	top := float64(maxReviews)
	switch {
	case maxReviews >= 5000:
		ranges = append(ranges,
			models.ReviewRange{Label: "1000-5000 مراجعة (محترفين)", Min: 1000, Max: 5000},
			models.ReviewRange{Label: fmt.Sprintf("%d+ مراجعة (كبار)", maxReviews), Min: 5000, Max: top},
		)
	case maxReviews > 1000:
		ranges = append(ranges, models.ReviewRange{Label: "1000+ مراجعة (محترفين)", Min: 1000, Max: top})
	}
	return ranges
}

// RangeLabel returns the short name of the preset matching [lo, hi], or
// CustomRangeLabel. The parenthesised audience suffix is dropped.
func RangeLabel(ranges []models.ReviewRange, lo, hi float64) string {
	label := CustomRangeLabel
	for _, r := range ranges {
		if r.Min == lo && r.Max == hi {
			label = shortLabel(r.Label)
		}
	}
	return label
}

func shortLabel(label string) string {
	for i := 0; i+1 < len(label); i++ {
		if label[i] == ' ' && label[i+1] == '(' {
			return label[:i]
		}
	}
	return label
}

// ValidateRange rejects NaN bounds, negative bounds and an infinite lower
// bound. An infinite upper bound is accepted and later capped by ClampRange.
func ValidateRange(lo, hi float64) error {
	if math.IsNaN(lo) || math.IsNaN(hi) || lo < 0 || hi < 0 || math.IsInf(lo, 1) {
		return ErrInvalidRange
	}
	return nil
}

// ClampRange caps hi at maxReviews and repairs an empty window by widening
// it to min(lo+100, maxReviews).
func ClampRange(lo, hi float64, maxReviews int64) ReviewRange {
	top := float64(maxReviews)
	if hi > top {
		hi = top
	}
	if hi <= lo {
		hi = min(lo+rangeFallbackWidth, top)
	}
	return ReviewRange{Min: lo, Max: hi}
}

// AnalyzeRange summarizes the stores whose review count lies in [lo, hi]
func AnalyzeRange(t *dataset.Table, lo, hi float64) models.RangeAnalysis {
	result := models.RangeAnalysis{Min: lo, Max: hi}

	var inRange []models.StoreRecord
	for i := 0; i < t.Len(); i++ {
		r := t.At(i)
		if !r.HasReviews() {
			continue
		}
		v := float64(*r.TotalReviews)
		if v >= lo && v <= hi {
			inRange = append(inRange, r)
		}
	}
	if len(inRange) == 0 {
		result.Empty = true
		return result
	}

	var ratings, reviews []float64
	for _, r := range inRange {
		if r.HasRating() {
			ratings = append(ratings, *r.Rating)
		}
		reviews = append(reviews, float64(*r.TotalReviews))
	}

	result.StoreCount = len(inRange)
	result.AverageReviews = stat.Mean(reviews, nil)
	if len(ratings) > 0 {
		result.AverageRating = stat.Mean(ratings, nil)
	}
	if t.Len() > 0 {
		result.ShareOfTotal = float64(len(inRange)) / float64(t.Len()) * 100
	}

	best := make([]models.StoreRecord, len(inRange))
	copy(best, inRange)
	sort.SliceStable(best, func(i, j int) bool {
		a, b := best[i], best[j]
		if a.RatingValue() != b.RatingValue() {
			if !a.HasRating() || !b.HasRating() {
				return a.HasRating()
			}
			return *a.Rating > *b.Rating
		}
		return *a.TotalReviews > *b.TotalReviews
	})
	result.Best = best[:min(bestInRange, len(best))]

	for _, r := range inRange {
		if len(result.Opportunities) == opportunitiesLimit {
			break
		}
		if r.HasRating() && *r.Rating >= DefaultHighRating && float64(*r.TotalReviews) <= result.AverageReviews {
			result.Opportunities = append(result.Opportunities, r)
		}
	}
	return result
}

// FormatBound prints a range bound without a trailing ".0"
func FormatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
