package analysis

import (
	"errors"
	"math"
	"testing"
)

func TestReappearanceProbabilityKnownValue(t *testing.T) {
	got, err := ReappearanceProbability(2, 5)
	if err != nil {
		t.Fatalf("ReappearanceProbability returned error: %v", err)
	}
	if math.Abs(got-0.4286) > 0.001 {
		t.Errorf("ReappearanceProbability(2, 5) = %v, want 0.4286±0.001", got)
	}
}

func TestReappearanceProbabilityBounds(t *testing.T) {
	cases := []struct{ count, docs int }{
		{0, 1}, {1, 1}, {3, 10}, {10, 10}, {0, 100},
	}
	for _, c := range cases {
		got, err := ReappearanceProbability(c.count, c.docs)
		if err != nil {
			t.Fatalf("ReappearanceProbability(%d, %d) error: %v", c.count, c.docs, err)
		}
		if got <= 0 || got >= 1 {
			t.Errorf("ReappearanceProbability(%d, %d) = %v, want strictly inside (0, 1)", c.count, c.docs, got)
		}
	}
}

func TestReappearanceProbabilityInvalidInputs(t *testing.T) {
	if _, err := ReappearanceProbability(-1, 5); !errors.Is(err, ErrInvalidCount) {
		t.Errorf("negative count: got %v, want ErrInvalidCount", err)
	}
	if _, err := ReappearanceProbability(1, 0); !errors.Is(err, ErrInvalidDocumentCount) {
		t.Errorf("zero documents: got %v, want ErrInvalidDocumentCount", err)
	}
	if _, err := ReappearanceProbability(1, -1); !errors.Is(err, ErrInvalidDocumentCount) {
		t.Errorf("negative documents: got %v, want ErrInvalidDocumentCount", err)
	}
}

func TestReappearanceProbabilityWithinPaperRepeats(t *testing.T) {
	// A question seen twice in a single paper exceeds the document total;
	// the raw estimate passes through uncapped.
	got, err := ReappearanceProbability(2, 1)
	if err != nil {
		t.Fatalf("ReappearanceProbability(2, 1) error: %v", err)
	}
	if got != 1.0 {
		t.Errorf("ReappearanceProbability(2, 1) = %v, want 1.0 (uncapped (2+1)/(1+2))", got)
	}
}

func TestReappearanceProbabilityMonotonic(t *testing.T) {
	prev := 0.0
	for count := 0; count <= 10; count++ {
		p, err := ReappearanceProbability(count, 10)
		if err != nil {
			t.Fatal(err)
		}
		if p <= prev {
			t.Errorf("probability not increasing with count: p(%d)=%v, p(%d)=%v", count-1, prev, count, p)
		}
		prev = p
	}
}
