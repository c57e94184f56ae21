package analysis

import (
	"context"
	"errors"
	"testing"
)

func TestClassifyMCQ(t *testing.T) {
	cases := []string{
		"Which of the following is a valid key? (a) primary (b) foreign (c) super (d) candidate",
		"Select the correct option A from the list below",
		"Pick choice b if the statement holds",
	}
	for _, q := range cases {
		if got := Classify(q); got != TypeMCQ {
			t.Errorf("Classify(%q) = %q, want MCQ", q, got)
		}
	}
}

func TestClassifyEssay(t *testing.T) {
	cases := []string{
		"Explain the process of normalization in databases",
		"Compare and contrast TCP and UDP protocols",
		"Critically evaluate the CAP theorem trade-offs",
	}
	for _, q := range cases {
		if got := Classify(q); got != TypeEssay {
			t.Errorf("Classify(%q) = %q, want Essay", q, got)
		}
	}
}

func TestClassifyShortAnswer(t *testing.T) {
	cases := []string{
		"Calculate the mean of the given data set",
		"What is the time complexity of quicksort?",
		"How many bits are in an IPv6 address?",
	}
	for _, q := range cases {
		if got := Classify(q); got != TypeShortAnswer {
			t.Errorf("Classify(%q) = %q, want Short Answer", q, got)
		}
	}
}

func TestClassifyDefaultsToShortAnswer(t *testing.T) {
	if got := Classify("The normalization forms used in relational design"); got != TypeShortAnswer {
		t.Errorf("Classify default = %q, want Short Answer", got)
	}
}

func TestClassifyRuleOrder(t *testing.T) {
	// Option markers win even when essay verbs are present.
	q := "Explain which is correct: (a) one (b) two (c) three (d) four"
	if got := Classify(q); got != TypeMCQ {
		t.Errorf("Classify(%q) = %q, want MCQ (option markers take precedence)", q, got)
	}
}

func TestClassificationRuleTable(t *testing.T) {
	wantOrder := []QuestionType{TypeMCQ, TypeEssay, TypeShortAnswer}
	if len(classificationRules) != len(wantOrder) {
		t.Fatalf("rule table has %d rules, want %d", len(classificationRules), len(wantOrder))
	}
	for i, want := range wantOrder {
		if classificationRules[i].result != want {
			t.Errorf("rule %d (%s) assigns %q, want %q", i, classificationRules[i].name, classificationRules[i].result, want)
		}
	}

	// Each rule's predicate is checkable in isolation.
	samples := []string{
		"pick option b from the list",
		"critically evaluate the design",
		"compute the checksum of the frame",
	}
	for i, rule := range classificationRules {
		if !rule.match(samples[i]) {
			t.Errorf("rule %q did not match its sample %q", rule.name, samples[i])
		}
		for j, other := range samples {
			if j != i && rule.match(other) {
				t.Errorf("rule %q also matched %q, samples are not discriminating", rule.name, other)
			}
		}
	}
}

func TestPointsFor(t *testing.T) {
	if PointsFor(TypeMCQ) != 2 {
		t.Errorf("MCQ points = %d, want 2", PointsFor(TypeMCQ))
	}
	if PointsFor(TypeShortAnswer) != 5 {
		t.Errorf("short answer points = %d, want 5", PointsFor(TypeShortAnswer))
	}
	if PointsFor(TypeEssay) != 10 {
		t.Errorf("essay points = %d, want 10", PointsFor(TypeEssay))
	}
}

func TestValidateMCQOptions(t *testing.T) {
	valid := []string{"Paris", "London", "Berlin", "Madrid"}
	if !ValidateMCQOptions(valid) {
		t.Error("four distinct options rejected")
	}
	if ValidateMCQOptions([]string{"a", "b", "c"}) {
		t.Error("three options accepted")
	}
	if ValidateMCQOptions([]string{"a", "b", "c", "d", "e"}) {
		t.Error("five options accepted")
	}
	if ValidateMCQOptions([]string{"a", "b", "c", "  "}) {
		t.Error("blank option accepted")
	}
	if ValidateMCQOptions([]string{"a", "b", "c", "a"}) {
		t.Error("duplicate option accepted")
	}
}

type stubGenerator struct {
	options []string
	err     error
}

func (s *stubGenerator) GenerateOptions(_ context.Context, _ string) ([]string, error) {
	return s.options, s.err
}

func TestStructureQuestionsClassifiesAndScores(t *testing.T) {
	cands := []RawQuestionCandidate{
		{Text: "Explain the process of normalization in databases"},
		{Text: "Calculate the mean of the given data set"},
	}
	questions, diag := StructureQuestions(context.Background(), cands, nil)

	if diag.Attempted != 2 || diag.Accepted != 2 {
		t.Fatalf("diagnostics = %+v, want 2 attempted / 2 accepted", diag)
	}
	if questions[0].Type != TypeEssay || questions[0].Points != 10 {
		t.Errorf("essay question structured as %+v", questions[0])
	}
	if questions[1].Type != TypeShortAnswer || questions[1].Points != 5 {
		t.Errorf("short answer question structured as %+v", questions[1])
	}
}

func TestStructureQuestionsRejectsTooShort(t *testing.T) {
	cands := []RawQuestionCandidate{{Text: "short"}}
	questions, diag := StructureQuestions(context.Background(), cands, nil)
	if len(questions) != 0 {
		t.Errorf("short text produced %d questions, want 0", len(questions))
	}
	if diag.RejectedTooShort != 1 {
		t.Errorf("diagnostics = %+v, want 1 rejected too short", diag)
	}
}

func TestStructureQuestionsMCQWithGenerator(t *testing.T) {
	gen := &stubGenerator{options: []string{"First", "Second", "Third", "Fourth"}}
	cands := []RawQuestionCandidate{
		{Text: "Which of these is a join type? (a) inner (b) outer (c) cross (d) all"},
	}
	questions, diag := StructureQuestions(context.Background(), cands, gen)

	if len(questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(questions))
	}
	q := questions[0]
	if q.Type != TypeMCQ || q.Points != 2 {
		t.Errorf("MCQ structured as %+v", q)
	}
	if len(q.Options) != 4 || q.Options[0] != "First" {
		t.Errorf("generator options not used: %v", q.Options)
	}
	if q.NeedsReview {
		t.Error("generated MCQ flagged for review")
	}
	if diag.RejectedInvalidMCQ != 0 {
		t.Errorf("diagnostics = %+v, want 0 invalid MCQ", diag)
	}
}

func TestStructureQuestionsMCQFallback(t *testing.T) {
	gen := &stubGenerator{err: errors.New("inference unavailable")}
	cands := []RawQuestionCandidate{
		{Text: "Which of these is a join type? (a) inner (b) outer (c) cross (d) all"},
	}
	questions, diag := StructureQuestions(context.Background(), cands, gen)

	if len(questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(questions))
	}
	q := questions[0]
	if !q.NeedsReview {
		t.Error("fallback MCQ not flagged for review")
	}
	if len(q.Options) != 4 {
		t.Errorf("fallback options = %v, want 4 placeholders", q.Options)
	}
	if diag.RejectedInvalidMCQ != 1 {
		t.Errorf("diagnostics = %+v, want 1 invalid MCQ", diag)
	}
}

func TestStructureQuestionsEmptyInput(t *testing.T) {
	questions, diag := StructureQuestions(context.Background(), nil, nil)
	if len(questions) != 0 {
		t.Errorf("empty input produced %d questions", len(questions))
	}
	if diag != (Diagnostics{}) {
		t.Errorf("empty input diagnostics = %+v, want zero", diag)
	}
}
