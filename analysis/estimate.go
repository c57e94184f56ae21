package analysis

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCount is returned when an observed occurrence count is negative.
	ErrInvalidCount = errors.New("occurrence count must be non-negative")

	// ErrInvalidDocumentCount is returned when the document total is not positive.
	ErrInvalidDocumentCount = errors.New("document count must be positive")
)

// ReappearanceProbability estimates how likely a question group is to appear
// in the next paper, given its occurrence count across totalDocuments papers.
// It uses Laplace (add-one) smoothing: (count+1)/(totalDocuments+2). For
// count <= totalDocuments the smoothing keeps the estimate strictly inside
// (0, 1): a question seen in every paper is still not certain to reappear,
// and one never seen is not impossible. A count above the document total (a
// question repeated within one paper) pushes the raw estimate to the upper
// bound or past it and is passed through unchanged, never clamped. A
// non-positive document total is a configuration error.
func ReappearanceProbability(count, totalDocuments int) (float64, error) {
	if count < 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidCount, count)
	}
	if totalDocuments <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidDocumentCount, totalDocuments)
	}
	return float64(count+1) / float64(totalDocuments+2), nil
}
