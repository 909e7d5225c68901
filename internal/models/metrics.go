package models

// KeyMetrics is the headline summary of the whole table
type KeyMetrics struct {
	TotalStores   int     `json:"totalStores"`
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int64   `json:"totalReviews"`
	HighRated     int     `json:"highRated"`
	HighThreshold float64 `json:"highThreshold"`
	MaxReviews    int64   `json:"maxReviews"`
}

// RatingShare counts stores at or above a rating threshold
type RatingShare struct {
	MinRating  float64 `json:"minRating"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ReviewRange is a named review-count preset
type ReviewRange struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// RangeAnalysis summarizes the stores inside a review-count window
type RangeAnalysis struct {
	Min            float64       `json:"min"`
	Max            float64       `json:"max"`
	Empty          bool          `json:"empty"`
	StoreCount     int           `json:"storeCount"`
	AverageRating  float64       `json:"averageRating"`
	AverageReviews float64       `json:"averageReviews"`
	ShareOfTotal   float64       `json:"shareOfTotal"`
	Best           []StoreRecord `json:"best"`
	Opportunities  []StoreRecord `json:"opportunities"`
}

// MostReviewedStore is the busiest store and the market average
type MostReviewedStore struct {
	Store          StoreRecord `json:"store"`
	AverageReviews float64     `json:"averageReviews"`
}

// DatasetOverview is the payload of the metrics endpoint
type DatasetOverview struct {
	Metrics      KeyMetrics         `json:"metrics"`
	RatingShare  RatingShare        `json:"ratingShare"`
	MostReviewed *MostReviewedStore `json:"mostReviewed,omitempty"`
	Snapshot     *Snapshot          `json:"snapshot,omitempty"`
}
