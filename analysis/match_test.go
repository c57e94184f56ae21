package analysis

import (
	"errors"
	"testing"
)

func TestSimilarityIdenticalIs100(t *testing.T) {
	q := "Explain the process of normalization."
	if got := Similarity(q, q); got != 100 {
		t.Errorf("Similarity(q, q) = %d, want 100", got)
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	a := "Calculate the mean of the following data set"
	b := "Calculate the average of the following data set"
	if Similarity(a, b) != Similarity(b, a) {
		t.Errorf("Similarity not symmetric: %d vs %d", Similarity(a, b), Similarity(b, a))
	}
}

func TestSimilarityRewordedQuestionsMatch(t *testing.T) {
	a := "Calculate the mean of the following data set"
	b := "Calculate the average of the following data set"
	score := Similarity(a, b)
	if score < DefaultCorpusThreshold {
		t.Errorf("Similarity = %d, want >= %d", score, DefaultCorpusThreshold)
	}
}

func TestSimilarityIgnoresCaseAndPunctuation(t *testing.T) {
	if got := Similarity("DEFINE normalization!", "define normalization"); got != 100 {
		t.Errorf("Similarity = %d, want 100", got)
	}
}

func TestSimilarityUnrelatedQuestionsLow(t *testing.T) {
	a := "Explain the two phase locking protocol"
	b := "Calculate the standard deviation of sales figures"
	if score := Similarity(a, b); score >= DefaultCorpusThreshold {
		t.Errorf("unrelated questions scored %d, want < %d", score, DefaultCorpusThreshold)
	}
}

func TestValidateThreshold(t *testing.T) {
	for _, ok := range []int{0, 50, 85, 100} {
		if err := ValidateThreshold(ok); err != nil {
			t.Errorf("ValidateThreshold(%d) = %v, want nil", ok, err)
		}
	}
	for _, bad := range []int{-1, 101, 1000} {
		err := ValidateThreshold(bad)
		if !errors.Is(err, ErrInvalidThreshold) {
			t.Errorf("ValidateThreshold(%d) = %v, want ErrInvalidThreshold", bad, err)
		}
	}
}

func TestIsMatchRejectsInvalidThreshold(t *testing.T) {
	_, err := IsMatch("a question here", "another question", 150)
	if !errors.Is(err, ErrInvalidThreshold) {
		t.Errorf("IsMatch with threshold 150 = %v, want ErrInvalidThreshold", err)
	}
}

func TestIsMatch(t *testing.T) {
	match, err := IsMatch(
		"Calculate the mean of the following data set",
		"Calculate the average of the following data set",
		DefaultCorpusThreshold,
	)
	if err != nil {
		t.Fatalf("IsMatch returned error: %v", err)
	}
	if !match {
		t.Error("reworded questions did not match at corpus threshold")
	}
}

func TestWithinLengthRatio(t *testing.T) {
	leader := "calculate the mean of the data"
	if !withinLengthRatio(leader, leader) {
		t.Error("identical texts rejected by length prefilter")
	}
	long := leader + " extended with a much longer trailing clause about samples and populations"
	if withinLengthRatio(long, leader) {
		t.Error("wildly longer text passed the length prefilter")
	}
}
