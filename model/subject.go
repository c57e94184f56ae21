package model

import (
	"time"

	"gorm.io/gorm"
)

// Subject represents a course subject whose question papers are analyzed
type Subject struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Code        string         `gorm:"type:varchar(50);uniqueIndex" json:"code,omitempty"` // e.g., "CS301"
	Description string         `gorm:"type:text" json:"description,omitempty"`

	// Relationships
	Papers    []PaperDocument `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"papers,omitempty"`
	Questions []Question      `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

// SubjectResponse is the API representation of a subject
type SubjectResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
	PaperCount  int    `json:"paper_count"`
}

// ToResponse converts a Subject to its API representation
func (s *Subject) ToResponse() SubjectResponse {
	return SubjectResponse{
		ID:          s.ID,
		Name:        s.Name,
		Code:        s.Code,
		Description: s.Description,
		PaperCount:  len(s.Papers),
	}
}
