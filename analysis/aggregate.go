package analysis

import (
	"sort"
)

// MinGroupTokens is the minimum token count for a candidate to participate
// in frequency grouping. Shorter fragments ("solve the following") match
// everything and poison groups.
const MinGroupTokens = 4

// GroupMember is one occurrence of a grouped question, keeping the original
// (un-normalized) text and the document it came from.
type GroupMember struct {
	Text             string `json:"text"`
	SourceDocumentID string `json:"source_document_id"`
}

// QuestionGroup is a set of question occurrences judged to be the same
// underlying question. RepresentativeText is the original text of the first
// member seen; comparison happens against its normalized form, which is
// never exposed or stored. ReappearanceChance is a probability (0 for
// singletons); the report-wide average is expressed as a percentage.
type QuestionGroup struct {
	RepresentativeText string        `json:"representative_text"`
	Members            []GroupMember `json:"members"`
	Count              int           `json:"count"`
	ReappearanceChance float64       `json:"reappearance_chance"`

	leaderNorm string
}

// SimilarityLogEntry records one accepted match for diagnostics, highest
// scores first.
type SimilarityLogEntry struct {
	Score         int    `json:"score"`
	CandidateText string `json:"candidate_text"`
	LeaderText    string `json:"leader_text"`
}

// FrequencyReport is the result of grouping all candidates from a corpus of
// documents. RepeatedPercentage and AverageReappearanceChance are both on a
// 0-100 scale; per-group chances stay probabilities.
type FrequencyReport struct {
	TotalDocuments            int                  `json:"total_documents"`
	TotalCandidateQuestions   int                  `json:"total_candidate_questions"`
	Groups                    []QuestionGroup      `json:"groups"`
	RepeatedGroups            int                  `json:"repeated_groups"`
	RepeatedPercentage        float64              `json:"repeated_percentage"`
	AverageReappearanceChance float64              `json:"average_reappearance_chance"`
	SimilarityLog             []SimilarityLogEntry `json:"similarity_log"`
}

// Aggregate groups question candidates by fuzzy similarity. Grouping is
// greedy first-match-wins: each candidate joins the FIRST existing group
// whose leader it matches at or above the threshold, in group creation
// order, and otherwise founds a new group. Every candidate with enough
// tokens lands in exactly one group, so member counts are conserved.
// Empty input produces an empty report, not an error.
func Aggregate(candidates []RawQuestionCandidate, threshold int) (*FrequencyReport, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return nil, err
	}

	report := &FrequencyReport{}

	for _, cand := range candidates {
		norm := Normalize(cand.Text)
		if TokenCount(norm) < MinGroupTokens {
			continue
		}
		report.TotalCandidateQuestions++

		matched := false
		for gi := range report.Groups {
			group := &report.Groups[gi]
			if !withinLengthRatio(norm, group.leaderNorm) {
				continue
			}
			score := Similarity(cand.Text, group.RepresentativeText)
			if score < threshold {
				continue
			}
			group.Members = append(group.Members, GroupMember{
				Text:             cand.Text,
				SourceDocumentID: cand.SourceDocumentID,
			})
			group.Count++
			report.SimilarityLog = append(report.SimilarityLog, SimilarityLogEntry{
				Score:         score,
				CandidateText: cand.Text,
				LeaderText:    group.RepresentativeText,
			})
			matched = true
			break
		}

		if !matched {
			report.Groups = append(report.Groups, QuestionGroup{
				RepresentativeText: cand.Text,
				Members: []GroupMember{{
					Text:             cand.Text,
					SourceDocumentID: cand.SourceDocumentID,
				}},
				Count:      1,
				leaderNorm: norm,
			})
		}
	}

	for _, g := range report.Groups {
		if g.Count > 1 {
			report.RepeatedGroups++
		}
	}
	if len(report.Groups) > 0 {
		report.RepeatedPercentage = float64(report.RepeatedGroups) / float64(len(report.Groups)) * 100
	}

	sort.SliceStable(report.SimilarityLog, func(i, j int) bool {
		return report.SimilarityLog[i].Score > report.SimilarityLog[j].Score
	})

	return report, nil
}

// ApplyReappearance fills in per-group reappearance estimates and the
// report-wide average (a percentage over repeated groups) for a corpus of
// totalDocuments papers. Groups seen only once keep a zero chance: a single
// sighting is not evidence of a repeating question. A non-positive document
// total is rejected by the estimator; callers with an empty corpus skip
// estimation instead.
func (r *FrequencyReport) ApplyReappearance(totalDocuments int) error {
	r.TotalDocuments = totalDocuments

	var sum float64
	var repeated int
	for i := range r.Groups {
		g := &r.Groups[i]
		if g.Count <= 1 {
			g.ReappearanceChance = 0
			continue
		}
		p, err := ReappearanceProbability(g.Count, totalDocuments)
		if err != nil {
			return err
		}
		g.ReappearanceChance = p
		sum += p
		repeated++
	}

	if repeated > 0 {
		r.AverageReappearanceChance = sum / float64(repeated) * 100
	}
	return nil
}
