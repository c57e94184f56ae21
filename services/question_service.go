package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/edugenai/paper-analyzer/analysis"
	"github.com/edugenai/paper-analyzer/model"
)

// QuestionService handles the question bank: listing, manual additions and
// review corrections.
type QuestionService struct {
	db *gorm.DB
}

// NewQuestionService creates a new question service
func NewQuestionService(db *gorm.DB) *QuestionService {
	return &QuestionService{db: db}
}

// QuestionFilter narrows question bank listings
type QuestionFilter struct {
	Type        analysis.QuestionType
	NeedsReview *bool
	PaperID     uint
}

// ListQuestions returns a page of questions for a subject
func (s *QuestionService) ListQuestions(subjectID uint, filter QuestionFilter, page, limit int) ([]model.Question, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := s.db.Model(&model.Question{}).Where("subject_id = ?", subjectID)
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.NeedsReview != nil {
		query = query.Where("needs_review = ?", *filter.NeedsReview)
	}
	if filter.PaperID != 0 {
		query = query.Where("paper_id = ?", filter.PaperID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count questions: %w", err)
	}

	var questions []model.Question
	if err := query.Order("created_at ASC, id ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&questions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list questions: %w", err)
	}

	return questions, total, nil
}

// AddQuestionRequest represents a manually added question
type AddQuestionRequest struct {
	Text          string   `json:"text" validate:"required,min=10"`
	Type          string   `json:"type" validate:"omitempty,oneof=MCQ 'Short Answer' Essay"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Points        int      `json:"points" validate:"omitempty,gte=1,lte=100"`
}

// buildManualQuestion turns an add request into a storable question. The
// paper reference stays nil: a manually authored question has no source
// paper, and the row must carry a NULL FK rather than a zero one.
func buildManualQuestion(subjectID uint, req AddQuestionRequest) (*model.Question, error) {
	text := strings.TrimSpace(req.Text)

	qType := analysis.QuestionType(req.Type)
	if qType == "" {
		qType = analysis.Classify(text)
	}

	if qType == analysis.TypeMCQ && !analysis.ValidateMCQOptions(req.Options) {
		return nil, fmt.Errorf("MCQ questions require exactly 4 distinct non-empty options")
	}

	points := req.Points
	if points == 0 {
		points = analysis.PointsFor(qType)
	}

	question := &model.Question{
		SubjectID:     subjectID,
		Text:          text,
		Type:          qType,
		CorrectAnswer: req.CorrectAnswer,
		Points:        points,
		Source:        analysis.SourceManualUpload,
	}
	if qType == analysis.TypeMCQ {
		if err := question.SetOptions(req.Options); err != nil {
			return nil, fmt.Errorf("failed to encode options: %w", err)
		}
	}
	return question, nil
}

// AddQuestion inserts a manually authored question. When the type is not
// supplied it is classified from the text; MCQ questions must carry a valid
// option set.
func (s *QuestionService) AddQuestion(subjectID uint, req AddQuestionRequest) (*model.Question, error) {
	var subject model.Subject
	if err := s.db.First(&subject, subjectID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("subject %d not found", subjectID)
		}
		return nil, fmt.Errorf("failed to load subject: %w", err)
	}

	question, err := buildManualQuestion(subjectID, req)
	if err != nil {
		return nil, err
	}

	if err := s.db.Create(question).Error; err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return question, nil
}

// ReviewQuestionRequest carries corrections applied during manual review
type ReviewQuestionRequest struct {
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// ReviewQuestion applies reviewer corrections to a flagged question and
// clears its review flag. MCQ option replacements go through the same gate
// as generated options.
func (s *QuestionService) ReviewQuestion(questionID uint, req ReviewQuestionRequest) (*model.Question, error) {
	var question model.Question
	if err := s.db.First(&question, questionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("question %d not found", questionID)
		}
		return nil, fmt.Errorf("failed to load question: %w", err)
	}

	if len(req.Options) > 0 {
		if question.Type != analysis.TypeMCQ {
			return nil, fmt.Errorf("options can only be set on MCQ questions")
		}
		if !analysis.ValidateMCQOptions(req.Options) {
			return nil, fmt.Errorf("MCQ questions require exactly 4 distinct non-empty options")
		}
		if err := question.SetOptions(req.Options); err != nil {
			return nil, fmt.Errorf("failed to encode options: %w", err)
		}
	}
	if req.CorrectAnswer != "" {
		question.CorrectAnswer = req.CorrectAnswer
	}
	question.NeedsReview = false

	if err := s.db.Save(&question).Error; err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}
	return &question, nil
}

// DeleteQuestion soft-deletes a question from the bank
func (s *QuestionService) DeleteQuestion(questionID uint) error {
	result := s.db.Delete(&model.Question{}, questionID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete question: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("question %d not found", questionID)
	}
	return nil
}
