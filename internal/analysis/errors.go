package analysis

import "errors"

var (
	// ErrInvalidSortBy is returned for a sort metric other than Total or Reviews
	ErrInvalidSortBy = errors.New("sort_by must be 'Total' or 'Reviews'")

	// ErrInvalidTopN is returned when the requested row count is not positive
	ErrInvalidTopN = errors.New("top_n must be a positive integer")

	// ErrInvalidRange is returned for a negative review-count bound
	ErrInvalidRange = errors.New("review range bounds must be finite and non-negative")
)
