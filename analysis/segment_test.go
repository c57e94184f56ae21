package analysis

import (
	"strings"
	"testing"
)

func TestSegmentStripsArtifactsAndMarker(t *testing.T) {
	text := "Page 3\n\n42\n\n1. Explain the process of normalization."
	got := Segment(text, "doc-1", DefaultSegmentConfig())

	if len(got) != 1 {
		t.Fatalf("Segment returned %d candidates, want 1: %+v", len(got), got)
	}
	want := "Explain the process of normalization."
	if got[0].Text != want {
		t.Errorf("candidate text = %q, want %q", got[0].Text, want)
	}
	if got[0].SourceDocumentID != "doc-1" {
		t.Errorf("source document = %q, want doc-1", got[0].SourceDocumentID)
	}
	if got[0].PositionInDocument != 0 {
		t.Errorf("position = %d, want 0", got[0].PositionInDocument)
	}
}

func TestSegmentEmptyInput(t *testing.T) {
	if got := Segment("", "doc", DefaultSegmentConfig()); len(got) != 0 {
		t.Errorf("Segment(empty) returned %d candidates, want 0", len(got))
	}
	if got := Segment("   \n\n  ", "doc", DefaultSegmentConfig()); len(got) != 0 {
		t.Errorf("Segment(whitespace) returned %d candidates, want 0", len(got))
	}
}

func TestSegmentMultipleQuestions(t *testing.T) {
	text := "1. Explain the process of normalization in databases.\n" +
		"2. What is a transaction? Describe ACID properties.\n" +
		"3. Calculate the mean of the given data set values."
	got := Segment(text, "doc", DefaultSegmentConfig())
	if len(got) != 3 {
		t.Fatalf("Segment returned %d candidates, want 3: %+v", len(got), got)
	}
	for i, c := range got {
		if c.PositionInDocument != i {
			t.Errorf("candidate %d has position %d", i, c.PositionInDocument)
		}
	}
}

func TestSegmentSkipsFirstPageHeader(t *testing.T) {
	header := make([]string, 9)
	for i := range header {
		header[i] = "University of Examples Department of Computer Science"
	}
	text := strings.Join(header, "\n") + "\n1. Explain the concept of indexing in databases."
	got := Segment(text, "doc", DefaultSegmentConfig())
	if len(got) != 1 {
		t.Fatalf("Segment returned %d candidates, want 1: %+v", len(got), got)
	}
}

func TestSegmentNoHeaderSkipOnShortFirstPage(t *testing.T) {
	// Fewer lines than the header budget: nothing is skipped, so a
	// question in the first lines survives.
	text := "1. Explain the concept of indexing in databases."
	got := Segment(text, "doc", DefaultSegmentConfig())
	if len(got) != 1 {
		t.Fatalf("Segment returned %d candidates, want 1", len(got))
	}
}

func TestSegmentHeaderNotSkippedOnLaterPages(t *testing.T) {
	page2 := make([]string, 0, 12)
	for i := 0; i < 10; i++ {
		page2 = append(page2, "filler context line with no markers")
	}
	page2 = append(page2, "4. Describe the two phase locking protocol in detail.")
	text := "1. Explain the process of query optimization steps." +
		PageBreakMarker + strings.Join(page2, "\n")

	got := Segment(text, "doc", DefaultSegmentConfig())
	if len(got) != 2 {
		t.Fatalf("Segment returned %d candidates, want 2: %+v", len(got), got)
	}
}

func TestSegmentStripsMarksAnnotation(t *testing.T) {
	text := "1. Explain the process of normalization. [10 Marks]"
	got := Segment(text, "doc", DefaultSegmentConfig())
	if len(got) != 1 {
		t.Fatalf("Segment returned %d candidates, want 1", len(got))
	}
	if strings.Contains(strings.ToLower(got[0].Text), "marks") {
		t.Errorf("marks annotation not stripped: %q", got[0].Text)
	}
}

func TestSegmentRejectsShortFragments(t *testing.T) {
	text := "1. Solve this.\n2. Explain the process of normalization in detail."
	got := Segment(text, "doc", DefaultSegmentConfig())
	if len(got) != 1 {
		t.Fatalf("Segment returned %d candidates, want 1: %+v", len(got), got)
	}
	if !strings.Contains(got[0].Text, "normalization") {
		t.Errorf("wrong candidate survived: %q", got[0].Text)
	}
}

func TestSegmentDropsDatasetRows(t *testing.T) {
	text := "1. Calculate the mean of the following sales data.\n" +
		"Products Sales Quantity\n" +
		"12, 34, 56\n" +
		"78, 90, 11"
	got := Segment(text, "doc", DefaultSegmentConfig())
	if len(got) != 1 {
		t.Fatalf("Segment returned %d candidates, want 1: %+v", len(got), got)
	}
	if strings.Contains(got[0].Text, "34") {
		t.Errorf("dataset rows not stripped: %q", got[0].Text)
	}
}

func TestSegmentCustomConfig(t *testing.T) {
	cfg := SegmentConfig{HeaderSkipLines: 2, MinLength: 5, MinTokens: 2}
	text := "skip one\nskip two\nextra\n1. Define indexing?"
	got := Segment(text, "doc", cfg)
	if len(got) != 1 {
		t.Fatalf("Segment returned %d candidates, want 1: %+v", len(got), got)
	}
}
