package analysis

import (
	"errors"
	"sort"
	"testing"
)

func candidatesFrom(texts map[string][]string) []RawQuestionCandidate {
	var docs []string
	for doc := range texts {
		docs = append(docs, doc)
	}
	sort.Strings(docs)

	var out []RawQuestionCandidate
	for _, doc := range docs {
		for i, text := range texts[doc] {
			out = append(out, RawQuestionCandidate{
				Text:               text,
				SourceDocumentID:   doc,
				PositionInDocument: i,
			})
		}
	}
	return out
}

func TestAggregateGroupsRewordedQuestions(t *testing.T) {
	cands := candidatesFrom(map[string][]string{
		"paper-1": {"Calculate the mean of the following data set"},
		"paper-2": {"Calculate the average of the following data set"},
	})

	report, err := Aggregate(cands, DefaultCorpusThreshold)
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}
	if len(report.Groups) != 1 {
		t.Fatalf("got %d groups, want 1: %+v", len(report.Groups), report.Groups)
	}
	if report.Groups[0].Count != 2 {
		t.Errorf("group count = %d, want 2", report.Groups[0].Count)
	}
	if report.Groups[0].RepresentativeText != "Calculate the mean of the following data set" {
		t.Errorf("representative = %q, want the first-seen text", report.Groups[0].RepresentativeText)
	}
	if report.RepeatedGroups != 1 {
		t.Errorf("repeated groups = %d, want 1", report.RepeatedGroups)
	}
	if len(report.SimilarityLog) != 1 {
		t.Errorf("similarity log has %d entries, want 1", len(report.SimilarityLog))
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	report, err := Aggregate(nil, DefaultCorpusThreshold)
	if err != nil {
		t.Fatalf("Aggregate(nil) returned error: %v", err)
	}
	if len(report.Groups) != 0 || report.TotalCandidateQuestions != 0 {
		t.Errorf("empty input produced non-empty report: %+v", report)
	}
}

func TestAggregateInvalidThreshold(t *testing.T) {
	_, err := Aggregate(nil, -5)
	if !errors.Is(err, ErrInvalidThreshold) {
		t.Errorf("Aggregate with threshold -5 = %v, want ErrInvalidThreshold", err)
	}
}

func TestAggregateConservesMembers(t *testing.T) {
	cands := candidatesFrom(map[string][]string{
		"paper-1": {
			"Explain the process of normalization in databases",
			"Calculate the mean of the following data set",
		},
		"paper-2": {
			"Calculate the average of the following data set",
			"Describe the two phase locking protocol in detail",
		},
		"paper-3": {
			"Explain the process of normalisation in databases",
		},
	})

	report, err := Aggregate(cands, DefaultCorpusThreshold)
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}

	total := 0
	for _, g := range report.Groups {
		if g.Count != len(g.Members) {
			t.Errorf("group %q count %d != members %d", g.RepresentativeText, g.Count, len(g.Members))
		}
		total += g.Count
	}
	if total != report.TotalCandidateQuestions {
		t.Errorf("members across groups = %d, want %d", total, report.TotalCandidateQuestions)
	}
	if total != len(cands) {
		t.Errorf("members across groups = %d, want %d candidates", total, len(cands))
	}
}

func TestAggregateSkipsTinyFragments(t *testing.T) {
	cands := []RawQuestionCandidate{
		{Text: "solve this now", SourceDocumentID: "paper-1"},
		{Text: "Explain the process of normalization in databases", SourceDocumentID: "paper-1"},
	}
	report, err := Aggregate(cands, DefaultCorpusThreshold)
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}
	if report.TotalCandidateQuestions != 1 {
		t.Errorf("candidate questions = %d, want 1 (fragment skipped)", report.TotalCandidateQuestions)
	}
	if len(report.Groups) != 1 {
		t.Errorf("got %d groups, want 1", len(report.Groups))
	}
}

func TestAggregateOrderIndependentGroupSizes(t *testing.T) {
	texts := []string{
		"Calculate the mean of the following data set",
		"Describe the two phase locking protocol in detail",
		"Calculate the average of the following data set",
		"Explain the process of normalization in databases",
	}

	forward := make([]RawQuestionCandidate, len(texts))
	for i, txt := range texts {
		forward[i] = RawQuestionCandidate{Text: txt, SourceDocumentID: "p"}
	}
	reversed := make([]RawQuestionCandidate, len(texts))
	for i := range texts {
		reversed[i] = forward[len(texts)-1-i]
	}

	a, err := Aggregate(forward, DefaultCorpusThreshold)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Aggregate(reversed, DefaultCorpusThreshold)
	if err != nil {
		t.Fatal(err)
	}

	sizesA := groupSizes(a)
	sizesB := groupSizes(b)
	if len(sizesA) != len(sizesB) {
		t.Fatalf("group counts differ by order: %v vs %v", sizesA, sizesB)
	}
	for i := range sizesA {
		if sizesA[i] != sizesB[i] {
			t.Errorf("group size multiset differs by order: %v vs %v", sizesA, sizesB)
			break
		}
	}
}

func groupSizes(r *FrequencyReport) []int {
	sizes := make([]int, 0, len(r.Groups))
	for _, g := range r.Groups {
		sizes = append(sizes, g.Count)
	}
	sort.Ints(sizes)
	return sizes
}

func TestAggregateSimilarityLogSorted(t *testing.T) {
	cands := []RawQuestionCandidate{
		{Text: "Calculate the mean of the following data set", SourceDocumentID: "p1"},
		{Text: "Calculate the mean of the following data set", SourceDocumentID: "p2"},
		{Text: "Calculate the average of the following data set", SourceDocumentID: "p3"},
	}
	report, err := Aggregate(cands, DefaultCorpusThreshold)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(report.SimilarityLog); i++ {
		if report.SimilarityLog[i-1].Score < report.SimilarityLog[i].Score {
			t.Errorf("similarity log not sorted descending: %+v", report.SimilarityLog)
			break
		}
	}
}

func TestApplyReappearance(t *testing.T) {
	cands := []RawQuestionCandidate{
		{Text: "Calculate the mean of the following data set", SourceDocumentID: "p1"},
		{Text: "Calculate the average of the following data set", SourceDocumentID: "p2"},
		{Text: "Describe the two phase locking protocol in detail", SourceDocumentID: "p3"},
	}
	report, err := Aggregate(cands, DefaultCorpusThreshold)
	if err != nil {
		t.Fatal(err)
	}
	if err := report.ApplyReappearance(5); err != nil {
		t.Fatalf("ApplyReappearance returned error: %v", err)
	}

	if report.TotalDocuments != 5 {
		t.Errorf("total documents = %d, want 5", report.TotalDocuments)
	}
	for _, g := range report.Groups {
		switch {
		case g.Count > 1:
			want := 3.0 / 7.0 // (2+1)/(5+2)
			if diff := g.ReappearanceChance - want; diff > 0.001 || diff < -0.001 {
				t.Errorf("repeated group chance = %v, want %v", g.ReappearanceChance, want)
			}
		default:
			if g.ReappearanceChance != 0 {
				t.Errorf("singleton group has non-zero chance %v", g.ReappearanceChance)
			}
		}
	}

	// One repeated group, so the percentage average is its chance x 100.
	wantAvg := 3.0 / 7.0 * 100
	if diff := report.AverageReappearanceChance - wantAvg; diff > 0.1 || diff < -0.1 {
		t.Errorf("average reappearance chance = %v, want %v (percent)", report.AverageReappearanceChance, wantAvg)
	}
}

func TestApplyReappearanceZeroDocuments(t *testing.T) {
	cands := []RawQuestionCandidate{
		{Text: "Calculate the mean of the following data set", SourceDocumentID: "p1"},
		{Text: "Calculate the average of the following data set", SourceDocumentID: "p2"},
	}
	report, err := Aggregate(cands, DefaultCorpusThreshold)
	if err != nil {
		t.Fatal(err)
	}
	if err := report.ApplyReappearance(0); !errors.Is(err, ErrInvalidDocumentCount) {
		t.Errorf("ApplyReappearance(0) with a repeated group = %v, want ErrInvalidDocumentCount", err)
	}
}
