package analysis

import (
	"regexp"
	"strings"
)

// PageBreakMarker separates pages in extracted document text. The PDF
// extractor inserts this between pages so the segmenter can apply
// first-page-only rules (header skipping) and reason about page artifacts.
const PageBreakMarker = "\n--- Page Break ---\n"

// RawQuestionCandidate is a question-like span of text pulled from a
// document before any grouping or classification has happened.
type RawQuestionCandidate struct {
	Text               string
	SourceDocumentID   string
	PositionInDocument int
}

// SegmentConfig controls how documents are split into question candidates.
type SegmentConfig struct {
	// HeaderSkipLines is how many leading lines of the first page are
	// treated as institutional boilerplate (university name, course code,
	// exam instructions) and dropped. Skipping only happens when the first
	// page actually has more lines than this.
	HeaderSkipLines int

	// MinLength is the minimum character length of a candidate.
	MinLength int

	// MinTokens is the minimum token count of a candidate.
	MinTokens int
}

// DefaultSegmentConfig returns the segmentation defaults used for typical
// exam papers.
func DefaultSegmentConfig() SegmentConfig {
	return SegmentConfig{
		HeaderSkipLines: 9,
		MinLength:       15,
		MinTokens:       3,
	}
}

var (
	// Question boundary markers: numbered, lettered, roman, "Question N",
	// "Q.N", "Part A", "Section B". Multiline so they anchor per line.
	boundaryPattern = regexp.MustCompile(`(?im)^\s*(?:question\s+no\.?\s*\d+|question\s*:?\s*\d*|q\.?\s*\d+\.?|\d+\.\s+|\d+\)\s+|\(\d+\)\s+|[a-z]\)\s+|[a-z]\.\s+|\([a-z]\)\s+|[ivx]+\.\s+|part\s+[a-z]\b|section\s+[a-z]\b)`)

	// Leading marker on a candidate line, stripped before validation.
	leadingMarkerPattern = regexp.MustCompile(`(?i)^\s*(?:question\s+no\.?\s*\d+[.:)]?|question\s*:?\s*\d*[.:)]?|q\.?\s*\d+[.:)]?|\d+[.)]\s*|\(\d+\)\s*|[a-z][.)]\s+|\([a-z]\)\s*|[ivx]+\.\s+|part\s+[a-z][.:)]?|section\s+[a-z][.:)]?)\s*`)

	marksPattern        = regexp.MustCompile(`(?i)[\[(]\s*\d+\s*marks?\s*[\])]|\b\d+\s*marks?\b`)
	pageArtifactPattern = regexp.MustCompile(`(?i)^\s*(?:page\s*\d+\s*(?:of\s*\d+)?|\d+\s*/\s*\d+)\s*$`)
	numericOnlyPattern  = regexp.MustCompile(`^\s*\d+\s*$`)
	datasetHeaderLine   = regexp.MustCompile(`(?i)^\s*(?:time|branch|products?|sales|quantity|dimension|ti|w\d+)\b[\s:|,]*`)
	numericLinePattern  = regexp.MustCompile(`^\s*(?:[\d,.\-]+\s*)+$`)
)

// questionCues are interrogative words that mark a line as question-like
// even without a trailing question mark.
var questionCues = []string{
	"what", "why", "how", "when", "where", "which", "who",
	"explain", "describe", "define", "discuss", "compare", "contrast",
	"analyze", "analyse", "evaluate", "calculate", "compute", "find",
	"determine", "derive", "prove", "show", "state", "list", "write",
	"draw", "solve", "differentiate", "distinguish", "illustrate", "justify",
}

// Segment splits extracted document text into raw question candidates.
// Empty or whitespace-only input yields no candidates. sourceDocumentID is
// attached to every candidate for later group membership tracking.
func Segment(documentText, sourceDocumentID string, cfg SegmentConfig) []RawQuestionCandidate {
	if strings.TrimSpace(documentText) == "" {
		return nil
	}

	pages := strings.Split(documentText, PageBreakMarker)
	var candidates []RawQuestionCandidate

	for pageIdx, page := range pages {
		lines := strings.Split(page, "\n")

		// Header boilerplate only ever appears on the first page, and only
		// when the page is long enough that dropping lines cannot swallow
		// the whole thing.
		if pageIdx == 0 && cfg.HeaderSkipLines > 0 && len(lines) > cfg.HeaderSkipLines {
			lines = lines[cfg.HeaderSkipLines:]
		}

		body := strings.Join(lines, "\n")

		for _, span := range splitOnBoundaries(body) {
			text := cleanCandidate(span)
			if !validCandidate(text, cfg) {
				continue
			}
			candidates = append(candidates, RawQuestionCandidate{
				Text:               text,
				SourceDocumentID:   sourceDocumentID,
				PositionInDocument: len(candidates),
			})
		}
	}

	return candidates
}

// splitOnBoundaries cuts text at question boundary markers, returning the
// span from each marker up to the next one. Text before the first marker is
// discarded — it is preamble, not a question.
func splitOnBoundaries(text string) []string {
	locs := boundaryPattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	spans := make([]string, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		spans = append(spans, text[loc[0]:end])
	}
	return spans
}

// cleanCandidate strips the leading question marker, marks annotations,
// dataset rows and page artifacts from a raw span, and collapses the
// remainder onto one line.
func cleanCandidate(span string) string {
	var kept []string
	for _, line := range strings.Split(span, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if pageArtifactPattern.MatchString(line) ||
			numericOnlyPattern.MatchString(line) ||
			datasetHeaderLine.MatchString(line) ||
			numericLinePattern.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}

	text := strings.Join(kept, " ")
	text = leadingMarkerPattern.ReplaceAllString(text, "")
	text = marksPattern.ReplaceAllString(text, "")
	text = strings.Join(strings.Fields(text), " ")
	return strings.TrimSpace(text)
}

// validCandidate applies the length, token and question-likeness gates.
func validCandidate(text string, cfg SegmentConfig) bool {
	if len(text) < cfg.MinLength {
		return false
	}
	if TokenCount(text) < cfg.MinTokens {
		return false
	}
	if strings.Contains(text, "?") {
		return true
	}
	lower := strings.ToLower(text)
	for _, cue := range questionCues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}
