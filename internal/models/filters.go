package models

// BusinessMixFilter represents query parameters for the business-mix chart
type BusinessMixFilter struct {
	TopN   int    `form:"topN"`
	SortBy string `form:"sortBy"` // Total, Reviews
}

// TopRatedFilter represents query parameters for the highest-rated chart
type TopRatedFilter struct {
	MinRating *float64 `form:"minRating"`
	TopN      int      `form:"topN"`
}

// MostReviewedFilter represents query parameters for the most-reviewed chart
type MostReviewedFilter struct {
	TopN int `form:"topN"`
}

// ReviewRangeFilter represents a review-count window
type ReviewRangeFilter struct {
	Min *float64 `form:"min"`
	Max *float64 `form:"max"`
}

// HeatmapFilter represents query parameters for the rating/reviews heatmap
type HeatmapFilter struct {
	MinReviews *float64 `form:"minReviews"`
	MaxReviews *float64 `form:"maxReviews"`
}

// MetricsFilter represents query parameters for the dataset metrics
type MetricsFilter struct {
	HighRating *float64 `form:"highRating"`
}
