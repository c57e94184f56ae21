package analysis

import (
	"errors"
	"fmt"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// Default similarity thresholds. Corpus-level matching (grouping questions
// across many papers) tolerates more variation than session-level matching
// (deduplicating within a single generated test).
const (
	DefaultCorpusThreshold  = 85
	DefaultSessionThreshold = 90
)

// ErrInvalidThreshold is returned when a similarity threshold falls outside
// the 0-100 score scale.
var ErrInvalidThreshold = errors.New("similarity threshold must be between 0 and 100")

// ValidateThreshold rejects thresholds outside [0, 100]. Out-of-range values
// are an error, never silently clamped.
func ValidateThreshold(threshold int) error {
	if threshold < 0 || threshold > 100 {
		return fmt.Errorf("%w: got %d", ErrInvalidThreshold, threshold)
	}
	return nil
}

// Similarity scores two question texts on a 0-100 scale using a token-set
// ratio over their normalized forms. Token-set comparison is order and
// duplication insensitive, which is what reworded exam questions need:
// "calculate the mean of the data" and "calculate the average of the data"
// still score high. Identical inputs always score 100 and the score is
// symmetric.
func Similarity(a, b string) int {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return 100
	}
	if na == "" || nb == "" {
		return 0
	}
	return fuzzy.TokenSetRatio(na, nb)
}

// IsMatch reports whether two question texts are similar enough to be
// considered the same question at the given threshold.
func IsMatch(a, b string, threshold int) (bool, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return false, err
	}
	return Similarity(a, b) >= threshold, nil
}

// withinLengthRatio is a cheap prefilter applied before fuzzy scoring: when
// two texts differ in length by more than half the leader's length they
// cannot plausibly be the same question, so the expensive comparison is
// skipped.
func withinLengthRatio(candidate, leader string) bool {
	if len(leader) == 0 {
		return len(candidate) == 0
	}
	diff := len(candidate) - len(leader)
	if diff < 0 {
		diff = -diff
	}
	return float64(diff)/float64(len(leader)) <= 0.5
}
