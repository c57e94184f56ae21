package analysis

import (
	"context"
	"regexp"
	"strings"
)

// QuestionType is the lexical category a question falls into.
type QuestionType string

const (
	TypeMCQ         QuestionType = "MCQ"
	TypeShortAnswer QuestionType = "Short Answer"
	TypeEssay       QuestionType = "Essay"
)

// QuestionSource records where a structured question came from.
type QuestionSource string

const (
	SourceExtracted    QuestionSource = "extracted"
	SourceAIGenerated  QuestionSource = "ai_generated"
	SourceManualUpload QuestionSource = "manual_upload"
)

var optionMarkerPattern = regexp.MustCompile(`(?i)\([a-d]\)|\b[a-d]\)\s|option\s+[a-d]\b|choice\s+[a-d]\b`)

var essayKeywords = []string{
	"explain", "describe", "discuss", "compare", "contrast", "analyze",
	"analyse", "evaluate", "justify", "elaborate", "critically",
}

var computationKeywords = []string{
	"calculate", "compute", "find", "determine", "what is", "how many",
	"solve", "derive",
}

// classificationRule pairs a lexical predicate with the type it assigns.
type classificationRule struct {
	name   string
	match  func(lower string) bool
	result QuestionType
}

func containsAny(keywords []string) func(string) bool {
	return func(lower string) bool {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
		return false
	}
}

// classificationRules are evaluated in order; the first match wins. Option
// markers must stay first: an MCQ stem often carries essay verbs too.
var classificationRules = []classificationRule{
	{name: "option markers", match: optionMarkerPattern.MatchString, result: TypeMCQ},
	{name: "essay verbs", match: containsAny(essayKeywords), result: TypeEssay},
	{name: "computation cues", match: containsAny(computationKeywords), result: TypeShortAnswer},
}

// Classify assigns a question type by walking the rule table in order.
// A question matching no rule defaults to Short Answer.
func Classify(text string) QuestionType {
	lower := strings.ToLower(text)
	for _, rule := range classificationRules {
		if rule.match(lower) {
			return rule.result
		}
	}
	return TypeShortAnswer
}

// PointsFor returns the default mark weight for a question type.
func PointsFor(t QuestionType) int {
	switch t {
	case TypeMCQ:
		return 2
	case TypeEssay:
		return 10
	default:
		return 5
	}
}

// DistractorGenerator produces answer options for an MCQ question. The AI
// inference client implements this; tests use a stub.
type DistractorGenerator interface {
	GenerateOptions(ctx context.Context, questionText string) ([]string, error)
}

// FallbackOptions returns the placeholder option set used when no generator
// is available or generation fails. Callers flag questions built with these
// for manual review.
func FallbackOptions() []string {
	return []string{
		"Option A - First choice",
		"Option B - Second choice",
		"Option C - Third choice",
		"Option D - Fourth choice",
	}
}

// ValidateMCQOptions enforces the MCQ option gate: exactly four options,
// none empty, all distinct after trimming.
func ValidateMCQOptions(options []string) bool {
	if len(options) != 4 {
		return false
	}
	seen := make(map[string]struct{}, 4)
	for _, opt := range options {
		trimmed := strings.TrimSpace(opt)
		if trimmed == "" {
			return false
		}
		if _, dup := seen[trimmed]; dup {
			return false
		}
		seen[trimmed] = struct{}{}
	}
	return true
}

// StructuredQuestion is a fully classified question ready for storage or
// test assembly.
type StructuredQuestion struct {
	Text          string         `json:"text"`
	Type          QuestionType   `json:"type"`
	Options       []string       `json:"options,omitempty"`
	CorrectAnswer string         `json:"correct_answer"`
	Points        int            `json:"points"`
	Source        QuestionSource `json:"source"`
	NeedsReview   bool           `json:"needs_review"`
}

// Diagnostics summarizes a structuring batch.
type Diagnostics struct {
	Attempted          int `json:"attempted"`
	Accepted           int `json:"accepted"`
	RejectedTooShort   int `json:"rejected_too_short"`
	RejectedInvalidMCQ int `json:"rejected_invalid_mcq"`
}

const minStructuredLength = 10

// StructureQuestions classifies each candidate and builds storable
// questions. MCQs get options from gen when provided; when generation fails
// or produces an invalid option set, the placeholder options are used and
// the question is flagged for review (counted in RejectedInvalidMCQ, though
// the question itself is still accepted with fallback options).
func StructureQuestions(ctx context.Context, candidates []RawQuestionCandidate, gen DistractorGenerator) ([]StructuredQuestion, Diagnostics) {
	var diag Diagnostics
	questions := make([]StructuredQuestion, 0, len(candidates))

	for _, cand := range candidates {
		diag.Attempted++

		text := strings.TrimSpace(cand.Text)
		if len(text) < minStructuredLength {
			diag.RejectedTooShort++
			continue
		}

		qType := Classify(text)
		q := StructuredQuestion{
			Text:   text,
			Type:   qType,
			Points: PointsFor(qType),
			Source: SourceExtracted,
		}

		switch qType {
		case TypeMCQ:
			options, ok := generateOptions(ctx, gen, text)
			if !ok {
				diag.RejectedInvalidMCQ++
				options = FallbackOptions()
				q.NeedsReview = true
			}
			q.Options = options
			q.CorrectAnswer = "A"
		case TypeEssay:
			q.CorrectAnswer = "Essay grading rubric and key points"
		default:
			q.CorrectAnswer = "Sample answer based on question context"
		}

		questions = append(questions, q)
		diag.Accepted++
	}

	return questions, diag
}

func generateOptions(ctx context.Context, gen DistractorGenerator, text string) ([]string, bool) {
	if gen == nil {
		return nil, false
	}
	options, err := gen.GenerateOptions(ctx, text)
	if err != nil || !ValidateMCQOptions(options) {
		return nil, false
	}
	return options, true
}
