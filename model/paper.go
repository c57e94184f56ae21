package model

import (
	"time"

	"gorm.io/gorm"
)

// ExtractionStatus represents the status of text extraction for a paper
type ExtractionStatus string

const (
	ExtractionPending    ExtractionStatus = "pending"
	ExtractionProcessing ExtractionStatus = "processing"
	ExtractionCompleted  ExtractionStatus = "completed"
	ExtractionFailed     ExtractionStatus = "failed"
)

// PaperDocument represents one uploaded question paper for a subject.
// DocumentUID is the stable external identifier attached to every question
// candidate extracted from the paper.
type PaperDocument struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"-"`
	DocumentUID     string           `gorm:"type:varchar(64);uniqueIndex;not null" json:"document_uid"`
	SubjectID       uint             `gorm:"index;not null" json:"subject_id"`
	Title           string           `gorm:"type:varchar(255)" json:"title,omitempty"`
	Year            int              `gorm:"default:0" json:"year,omitempty"` // e.g., 2023
	ExamType        string           `gorm:"type:varchar(50)" json:"exam_type,omitempty"`
	FileName        string           `gorm:"type:varchar(255)" json:"file_name"`
	FileSize        int64            `gorm:"default:0" json:"file_size"`
	PageCount       int              `gorm:"default:0" json:"page_count"`
	Status          ExtractionStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	ExtractionError string           `gorm:"type:text" json:"extraction_error,omitempty"`
	QuestionCount   int              `gorm:"default:0" json:"question_count"`

	// Relationships
	Subject Subject `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"-"`
}

// PaperResponse is the API representation of an uploaded paper
type PaperResponse struct {
	ID            uint             `json:"id"`
	DocumentUID   string           `json:"document_uid"`
	SubjectID     uint             `json:"subject_id"`
	Title         string           `json:"title,omitempty"`
	Year          int              `json:"year,omitempty"`
	ExamType      string           `json:"exam_type,omitempty"`
	FileName      string           `json:"file_name"`
	PageCount     int              `json:"page_count"`
	Status        ExtractionStatus `json:"status"`
	QuestionCount int              `json:"question_count"`
	UploadedAt    time.Time        `json:"uploaded_at"`
}

// ToResponse converts a PaperDocument to its API representation
func (p *PaperDocument) ToResponse() PaperResponse {
	return PaperResponse{
		ID:            p.ID,
		DocumentUID:   p.DocumentUID,
		SubjectID:     p.SubjectID,
		Title:         p.Title,
		Year:          p.Year,
		ExamType:      p.ExamType,
		FileName:      p.FileName,
		PageCount:     p.PageCount,
		Status:        p.Status,
		QuestionCount: p.QuestionCount,
		UploadedAt:    p.CreatedAt,
	}
}
