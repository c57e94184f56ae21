package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/edugenai/paper-analyzer/analysis"
	"github.com/edugenai/paper-analyzer/model"
)

// TestGenService assembles mock tests from the question bank. Within one
// test, near-duplicate questions are filtered at the session threshold,
// which is stricter than corpus grouping: a practice test should never show
// the same question twice, even lightly reworded.
type TestGenService struct {
	db        *gorm.DB
	frequency *FrequencyService
	threshold int
}

// NewTestGenService creates a new test generation service. The session
// dedup threshold comes from TESTGEN_THRESHOLD; invalid values fail
// construction rather than being clamped.
func NewTestGenService(db *gorm.DB, frequency *FrequencyService) (*TestGenService, error) {
	threshold := analysis.DefaultSessionThreshold
	if v := os.Getenv("TESTGEN_THRESHOLD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TESTGEN_THRESHOLD %q: %w", v, err)
		}
		if err := analysis.ValidateThreshold(n); err != nil {
			return nil, fmt.Errorf("invalid TESTGEN_THRESHOLD: %w", err)
		}
		threshold = n
	}

	return &TestGenService{
		db:        db,
		frequency: frequency,
		threshold: threshold,
	}, nil
}

// GenerateTestRequest describes the mock test to assemble
type GenerateTestRequest struct {
	Title          string `json:"title" validate:"omitempty,max=255"`
	QuestionCount  int    `json:"question_count" validate:"omitempty,gte=1,lte=100"`
	DurationMins   int    `json:"duration_mins" validate:"omitempty,gte=5,lte=360"`
	PreferFrequent bool   `json:"prefer_frequent"`
}

// newTestUID builds the public test identifier
func newTestUID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "test_" + hex[:8]
}

// GenerateTest assembles and persists a mock test for a subject. When
// PreferFrequent is set, questions from repeated frequency groups come
// first; remaining slots are filled in bank order.
func (s *TestGenService) GenerateTest(ctx context.Context, subjectID uint, req GenerateTestRequest) (*model.MockTest, error) {
	if req.QuestionCount == 0 {
		req.QuestionCount = 10
	}
	if req.DurationMins == 0 {
		req.DurationMins = 60
	}
	if req.Title == "" {
		req.Title = "Practice Test"
	}

	var questions []model.Question
	if err := s.db.Where("subject_id = ?", subjectID).
		Order("created_at ASC, id ASC").
		Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to load question bank: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("subject %d has no questions to build a test from", subjectID)
	}

	if req.PreferFrequent {
		questions = s.frequentFirst(ctx, subjectID, questions)
	}

	selected, err := s.selectDistinct(questions, req.QuestionCount)
	if err != nil {
		return nil, err
	}

	responses := make([]model.QuestionResponse, 0, len(selected))
	totalPoints := 0
	for _, q := range selected {
		responses = append(responses, q.ToResponse())
		totalPoints += q.Points
	}

	payload, err := json.Marshal(responses)
	if err != nil {
		return nil, fmt.Errorf("failed to encode test questions: %w", err)
	}

	test := &model.MockTest{
		TestUID:       newTestUID(),
		SubjectID:     subjectID,
		Title:         req.Title,
		QuestionCount: len(selected),
		TotalPoints:   totalPoints,
		DurationMins:  req.DurationMins,
		Questions:     datatypes.JSON(payload),
	}
	if err := s.db.Create(test).Error; err != nil {
		return nil, fmt.Errorf("failed to store mock test: %w", err)
	}

	log.Printf("TestGenService: generated %s for subject %d with %d questions",
		test.TestUID, subjectID, len(selected))

	return test, nil
}

// selectDistinct walks the ordered bank greedily, skipping any question that
// matches an already selected one at the session threshold.
func (s *TestGenService) selectDistinct(pool []model.Question, want int) ([]model.Question, error) {
	selected := make([]model.Question, 0, want)

	for _, q := range pool {
		if len(selected) == want {
			break
		}
		duplicate := false
		for _, picked := range selected {
			match, err := analysis.IsMatch(q.Text, picked.Text, s.threshold)
			if err != nil {
				return nil, fmt.Errorf("session dedup failed: %w", err)
			}
			if match {
				duplicate = true
				break
			}
		}
		if !duplicate {
			selected = append(selected, q)
		}
	}

	if len(selected) == 0 {
		return nil, fmt.Errorf("no distinct questions available")
	}
	return selected, nil
}

// frequentFirst reorders the bank so questions belonging to repeated
// frequency groups come before singletons. A report failure degrades to the
// original order.
func (s *TestGenService) frequentFirst(ctx context.Context, subjectID uint, questions []model.Question) []model.Question {
	report, err := s.frequency.GetReport(ctx, subjectID)
	if err != nil {
		log.Printf("TestGenService: frequency report unavailable, keeping bank order: %v", err)
		return questions
	}

	repeated := make(map[string]bool)
	for _, g := range report.Groups {
		if g.Count <= 1 {
			continue
		}
		for _, m := range g.Members {
			repeated[analysis.Normalize(m.Text)] = true
		}
	}

	front := make([]model.Question, 0, len(questions))
	back := make([]model.Question, 0, len(questions))
	for _, q := range questions {
		if repeated[analysis.Normalize(q.Text)] {
			front = append(front, q)
		} else {
			back = append(back, q)
		}
	}
	return append(front, back...)
}

// GetTest returns a mock test by its public identifier
func (s *TestGenService) GetTest(testUID string) (*model.MockTest, error) {
	var test model.MockTest
	if err := s.db.Where("test_uid = ?", testUID).First(&test).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("test %s not found", testUID)
		}
		return nil, fmt.Errorf("failed to load test: %w", err)
	}
	return &test, nil
}

// ListTests returns mock tests for a subject, newest first
func (s *TestGenService) ListTests(subjectID uint) ([]model.MockTest, error) {
	var tests []model.MockTest
	if err := s.db.Where("subject_id = ?", subjectID).
		Order("created_at DESC").
		Find(&tests).Error; err != nil {
		return nil, fmt.Errorf("failed to list tests: %w", err)
	}
	return tests, nil
}
