package models

// StoreRecord is one row of the storefront source table. Nullable columns are
// pointers; a nil value means the cell was missing in the source.
type StoreRecord struct {
	BusinessType *string  `json:"businessType,omitempty" db:"business_type_ar"` // primary (Arabic) category label
	OtherType    *string  `json:"otherType,omitempty" db:"other_type_name"`     // free-text category label
	Name         string   `json:"name" db:"name_ar"`
	Description  *string  `json:"description,omitempty" db:"description"`
	Rating       *float64 `json:"rating,omitempty" db:"rating"`               // 0.0-5.0
	TotalReviews *int64   `json:"totalReviews,omitempty" db:"total_reviews"` // non-negative
}

// HasRating reports whether the rating cell is present
func (r StoreRecord) HasRating() bool { return r.Rating != nil }

// HasReviews reports whether the review-count cell is present
func (r StoreRecord) HasReviews() bool { return r.TotalReviews != nil }

// RatingValue returns the rating or 0 when missing
func (r StoreRecord) RatingValue() float64 {
	if r.Rating == nil {
		return 0
	}
	return *r.Rating
}

// ReviewsValue returns the review count or 0 when missing
func (r StoreRecord) ReviewsValue() int64 {
	if r.TotalReviews == nil {
		return 0
	}
	return *r.TotalReviews
}

// CategorySummary is one row of the business-mix aggregation
type CategorySummary struct {
	Category     string `json:"category"`
	TotalCount   int64  `json:"total"`
	TotalReviews int64  `json:"reviews"`
}

// Snapshot describes a persisted copy of the source table
type Snapshot struct {
	ID          string `json:"id" db:"id"`
	Source      string `json:"source" db:"source"`
	RecordCount int    `json:"recordCount" db:"record_count"`
	CreatedAt   string `json:"createdAt" db:"created_at"`
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string { return &s }

// FloatPtr returns a pointer to f
func FloatPtr(f float64) *float64 { return &f }

// IntPtr returns a pointer to i
func IntPtr(i int64) *int64 { return &i }
