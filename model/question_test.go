package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/edugenai/paper-analyzer/analysis"
)

func TestQuestionOptionsRoundTrip(t *testing.T) {
	q := Question{Type: analysis.TypeMCQ}
	options := []string{"Paris", "London", "Berlin", "Madrid"}

	if err := q.SetOptions(options); err != nil {
		t.Fatalf("SetOptions returned error: %v", err)
	}

	got := q.OptionList()
	if len(got) != 4 {
		t.Fatalf("OptionList returned %d options, want 4", len(got))
	}
	for i, opt := range options {
		if got[i] != opt {
			t.Errorf("option %d = %q, want %q", i, got[i], opt)
		}
	}
}

func TestQuestionOptionsEmpty(t *testing.T) {
	var q Question
	if err := q.SetOptions(nil); err != nil {
		t.Fatalf("SetOptions(nil) returned error: %v", err)
	}
	if got := q.OptionList(); got != nil {
		t.Errorf("OptionList = %v, want nil", got)
	}
}

func TestQuestionToResponse(t *testing.T) {
	paperID := uint(7)
	q := Question{
		SubjectID:     3,
		PaperID:       &paperID,
		Text:          "Which layer handles routing? (a) physical (b) network (c) session (d) application",
		Type:          analysis.TypeMCQ,
		CorrectAnswer: "B",
		Points:        2,
		Source:        analysis.SourceExtracted,
		NeedsReview:   true,
	}
	if err := q.SetOptions([]string{"physical", "network", "session", "application"}); err != nil {
		t.Fatal(err)
	}

	resp := q.ToResponse()
	if resp.Type != analysis.TypeMCQ || resp.Points != 2 || !resp.NeedsReview {
		t.Errorf("ToResponse = %+v", resp)
	}
	if resp.PaperID != 7 {
		t.Errorf("response paper ID = %d, want 7", resp.PaperID)
	}
	if len(resp.Options) != 4 {
		t.Errorf("response options = %v", resp.Options)
	}
}

func TestQuestionWithoutPaper(t *testing.T) {
	// Manual and AI-generated questions have no source paper; the paper
	// reference must stay NULL, not a zero FK that no paper row satisfies.
	q := Question{
		SubjectID: 3,
		Text:      "Define a binary search tree and its ordering property.",
		Type:      analysis.TypeShortAnswer,
		Points:    5,
		Source:    analysis.SourceManualUpload,
	}
	if q.PaperID != nil {
		t.Fatalf("paper ID = %v, want nil", q.PaperID)
	}

	resp := q.ToResponse()
	if resp.PaperID != 0 {
		t.Errorf("response paper ID = %d, want 0", resp.PaperID)
	}

	body, err := json.Marshal(q)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(body), "paper_id") {
		t.Errorf("paperless question serialized a paper_id: %s", body)
	}
}
