package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edugenai/paper-analyzer/analysis"
	"github.com/edugenai/paper-analyzer/model"
	"github.com/edugenai/paper-analyzer/utils/pdfvalidation"
)

// PaperService handles question paper ingestion: PDF validation, text
// extraction, question segmentation and question bank persistence.
type PaperService struct {
	db         *gorm.DB
	extractor  *PDFExtractor
	distractor *DistractorService
	segmentCfg analysis.SegmentConfig
}

// NewPaperService creates a new paper service
func NewPaperService(db *gorm.DB) *PaperService {
	cfg := analysis.DefaultSegmentConfig()
	if v := os.Getenv("SEGMENT_HEADER_LINES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.HeaderSkipLines = n
		} else {
			log.Printf("PaperService: ignoring invalid SEGMENT_HEADER_LINES=%q", v)
		}
	}

	return &PaperService{
		db:         db,
		extractor:  NewPDFExtractor(),
		distractor: NewDistractorService(),
		segmentCfg: cfg,
	}
}

// PaperMeta carries optional metadata supplied with an upload
type PaperMeta struct {
	Title    string `json:"title"`
	Year     int    `json:"year" validate:"omitempty,gte=1990,lte=2100"`
	ExamType string `json:"exam_type"`
}

// IngestResult is the outcome of ingesting one paper
type IngestResult struct {
	Paper       *model.PaperDocument `json:"paper"`
	Questions   []model.Question     `json:"questions"`
	Diagnostics analysis.Diagnostics `json:"diagnostics"`
}

// IngestPaper validates, extracts and segments an uploaded question paper,
// persisting the paper record and the structured questions. The paper record
// is created first so a failed extraction still leaves an auditable row with
// status failed.
func (s *PaperService) IngestPaper(ctx context.Context, subjectID uint, fileName string, content []byte, meta PaperMeta) (*IngestResult, error) {
	var subject model.Subject
	if err := s.db.First(&subject, subjectID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("subject %d not found", subjectID)
		}
		return nil, fmt.Errorf("failed to load subject: %w", err)
	}

	validation, err := pdfvalidation.ValidatePDFBytes(content, pdfvalidation.PaperLimits)
	if err != nil {
		return nil, fmt.Errorf("failed to validate PDF: %w", err)
	}
	if !validation.Valid {
		return nil, fmt.Errorf("invalid paper upload: %s", validation.Error)
	}

	paper := &model.PaperDocument{
		DocumentUID: uuid.NewString(),
		SubjectID:   subjectID,
		Title:       meta.Title,
		Year:        meta.Year,
		ExamType:    meta.ExamType,
		FileName:    fileName,
		FileSize:    validation.FileSize,
		PageCount:   validation.PageCount,
		Status:      model.ExtractionProcessing,
	}
	if err := s.db.Create(paper).Error; err != nil {
		return nil, fmt.Errorf("failed to create paper record: %w", err)
	}

	text, err := s.extractor.ExtractText(content)
	if err != nil {
		s.markFailed(paper, err)
		return nil, fmt.Errorf("text extraction failed: %w", err)
	}

	candidates := analysis.Segment(text, paper.DocumentUID, s.segmentCfg)
	log.Printf("PaperService: segmented %d question candidates from %q", len(candidates), fileName)

	var gen analysis.DistractorGenerator
	if s.distractor.Enabled() {
		gen = s.distractor
	}
	structured, diag := analysis.StructureQuestions(ctx, candidates, gen)

	questions := make([]model.Question, 0, len(structured))
	for _, sq := range structured {
		q := model.Question{
			SubjectID:     subjectID,
			PaperID:       &paper.ID,
			Text:          sq.Text,
			Type:          sq.Type,
			CorrectAnswer: sq.CorrectAnswer,
			Points:        sq.Points,
			Source:        sq.Source,
			NeedsReview:   sq.NeedsReview,
		}
		if err := q.SetOptions(sq.Options); err != nil {
			s.markFailed(paper, err)
			return nil, fmt.Errorf("failed to encode options: %w", err)
		}
		questions = append(questions, q)
	}

	if len(questions) > 0 {
		if err := s.db.Create(&questions).Error; err != nil {
			s.markFailed(paper, err)
			return nil, fmt.Errorf("failed to store questions: %w", err)
		}
	}

	paper.Status = model.ExtractionCompleted
	paper.QuestionCount = len(questions)
	if err := s.db.Save(paper).Error; err != nil {
		return nil, fmt.Errorf("failed to update paper record: %w", err)
	}

	log.Printf("PaperService: ingested paper %s with %d questions (diagnostics %+v)",
		paper.DocumentUID, len(questions), diag)

	return &IngestResult{
		Paper:       paper,
		Questions:   questions,
		Diagnostics: diag,
	}, nil
}

func (s *PaperService) markFailed(paper *model.PaperDocument, cause error) {
	paper.Status = model.ExtractionFailed
	paper.ExtractionError = cause.Error()
	if err := s.db.Save(paper).Error; err != nil {
		log.Printf("PaperService: failed to record extraction failure for paper %s: %v", paper.DocumentUID, err)
	}
}

// ListPapers returns papers for a subject, newest first
func (s *PaperService) ListPapers(subjectID uint) ([]model.PaperDocument, error) {
	var papers []model.PaperDocument
	if err := s.db.Where("subject_id = ?", subjectID).
		Order("created_at DESC").
		Find(&papers).Error; err != nil {
		return nil, fmt.Errorf("failed to list papers: %w", err)
	}
	return papers, nil
}

// GetPaper returns one paper by its public identifier
func (s *PaperService) GetPaper(documentUID string) (*model.PaperDocument, error) {
	var paper model.PaperDocument
	if err := s.db.Where("document_uid = ?", documentUID).First(&paper).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("paper %s not found", documentUID)
		}
		return nil, fmt.Errorf("failed to load paper: %w", err)
	}
	return &paper, nil
}

// DeletePaper soft-deletes a paper and its extracted questions
func (s *PaperService) DeletePaper(documentUID string) error {
	paper, err := s.GetPaper(documentUID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("paper_id = ?", paper.ID).Delete(&model.Question{}).Error; err != nil {
			return fmt.Errorf("failed to delete questions: %w", err)
		}
		if err := tx.Delete(paper).Error; err != nil {
			return fmt.Errorf("failed to delete paper: %w", err)
		}
		return nil
	})
}
