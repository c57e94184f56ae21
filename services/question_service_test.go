package services

import (
	"testing"

	"github.com/edugenai/paper-analyzer/analysis"
)

func TestBuildManualQuestionHasNoPaper(t *testing.T) {
	q, err := buildManualQuestion(3, AddQuestionRequest{
		Text: "Define a binary search tree and its ordering property.",
	})
	if err != nil {
		t.Fatalf("buildManualQuestion returned error: %v", err)
	}
	if q.PaperID != nil {
		t.Errorf("manual question paper ID = %v, want nil", q.PaperID)
	}
	if q.Source != analysis.SourceManualUpload {
		t.Errorf("source = %q, want manual_upload", q.Source)
	}
}

func TestBuildManualQuestionClassifiesAndScores(t *testing.T) {
	q, err := buildManualQuestion(1, AddQuestionRequest{
		Text: "Explain the difference between TCP and UDP protocols.",
	})
	if err != nil {
		t.Fatalf("buildManualQuestion returned error: %v", err)
	}
	if q.Type != analysis.TypeEssay {
		t.Errorf("type = %q, want Essay", q.Type)
	}
	if q.Points != 10 {
		t.Errorf("points = %d, want 10", q.Points)
	}
}

func TestBuildManualQuestionMCQGate(t *testing.T) {
	_, err := buildManualQuestion(1, AddQuestionRequest{
		Text:    "Which layer handles routing in the OSI model?",
		Type:    string(analysis.TypeMCQ),
		Options: []string{"physical", "network"},
	})
	if err == nil {
		t.Fatal("expected error for MCQ with 2 options")
	}

	q, err := buildManualQuestion(1, AddQuestionRequest{
		Text:    "Which layer handles routing in the OSI model?",
		Type:    string(analysis.TypeMCQ),
		Options: []string{"physical", "network", "session", "application"},
	})
	if err != nil {
		t.Fatalf("valid MCQ rejected: %v", err)
	}
	if len(q.OptionList()) != 4 {
		t.Errorf("options = %v, want 4", q.OptionList())
	}
}
