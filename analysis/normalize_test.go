package analysis

import "testing"

func TestNormalizeLowercasesAndStripsPunctuation(t *testing.T) {
	got := Normalize("  What IS   Normalization, really?!  ")
	want := "what is normalization really?"
	if got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalizeKeepsQuestionMark(t *testing.T) {
	got := Normalize("Define DBMS?")
	if got != "define dbms?" {
		t.Errorf("Normalize() = %q, want %q", got, "define dbms?")
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Explain the process of normalization.",
		"Calculate the Mean (average) of: 1, 2, 3",
		"",
		"already normalized text?",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent on %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if got := Normalize("   \t\n "); got != "" {
		t.Errorf("Normalize(whitespace) = %q, want empty", got)
	}
}

func TestTokenCount(t *testing.T) {
	if n := TokenCount("calculate the mean value"); n != 4 {
		t.Errorf("TokenCount = %d, want 4", n)
	}
	if n := TokenCount(""); n != 0 {
		t.Errorf("TokenCount(empty) = %d, want 0", n)
	}
}
