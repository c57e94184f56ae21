package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/edugenai/paper-analyzer/model"
)

// SubjectService handles subject CRUD
type SubjectService struct {
	db *gorm.DB
}

// NewSubjectService creates a new subject service
func NewSubjectService(db *gorm.DB) *SubjectService {
	return &SubjectService{db: db}
}

// CreateSubjectRequest represents the request to create a subject
type CreateSubjectRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Code        string `json:"code" validate:"omitempty,max=50"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

// CreateSubject creates a subject, enforcing code uniqueness
func (s *SubjectService) CreateSubject(req CreateSubjectRequest) (*model.Subject, error) {
	if req.Code != "" {
		var existing model.Subject
		err := s.db.Where("code = ?", req.Code).First(&existing).Error
		if err == nil {
			return nil, fmt.Errorf("subject with code %q already exists", req.Code)
		}
		if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("failed to check subject code: %w", err)
		}
	}

	subject := &model.Subject{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
	}
	if err := s.db.Create(subject).Error; err != nil {
		return nil, fmt.Errorf("failed to create subject: %w", err)
	}
	return subject, nil
}

// GetSubject returns one subject with its papers preloaded
func (s *SubjectService) GetSubject(id uint) (*model.Subject, error) {
	var subject model.Subject
	if err := s.db.Preload("Papers").First(&subject, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("subject %d not found", id)
		}
		return nil, fmt.Errorf("failed to load subject: %w", err)
	}
	return &subject, nil
}

// ListSubjects returns a page of subjects with the total count
func (s *SubjectService) ListSubjects(page, limit int) ([]model.Subject, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := s.db.Model(&model.Subject{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count subjects: %w", err)
	}

	var subjects []model.Subject
	if err := s.db.Preload("Papers").
		Order("name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&subjects).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list subjects: %w", err)
	}

	return subjects, total, nil
}

// UpdateSubject applies partial updates to a subject
func (s *SubjectService) UpdateSubject(id uint, req CreateSubjectRequest) (*model.Subject, error) {
	subject, err := s.GetSubject(id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		subject.Name = req.Name
	}
	if req.Code != "" {
		subject.Code = req.Code
	}
	if req.Description != "" {
		subject.Description = req.Description
	}

	if err := s.db.Save(subject).Error; err != nil {
		return nil, fmt.Errorf("failed to update subject: %w", err)
	}
	return subject, nil
}

// DeleteSubject soft-deletes a subject and its dependent records
func (s *SubjectService) DeleteSubject(id uint) error {
	subject, err := s.GetSubject(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("subject_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return fmt.Errorf("failed to delete questions: %w", err)
		}
		if err := tx.Where("subject_id = ?", id).Delete(&model.PaperDocument{}).Error; err != nil {
			return fmt.Errorf("failed to delete papers: %w", err)
		}
		if err := tx.Where("subject_id = ?", id).Delete(&model.FrequencyReportRecord{}).Error; err != nil {
			return fmt.Errorf("failed to delete report snapshots: %w", err)
		}
		if err := tx.Delete(subject).Error; err != nil {
			return fmt.Errorf("failed to delete subject: %w", err)
		}
		return nil
	})
}
