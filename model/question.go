package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/edugenai/paper-analyzer/analysis"
)

// Question is a structured question in the subject's question bank. Options
// is a JSON array, populated only for MCQ questions. The stored text is
// always the original extracted text, never a normalized form. PaperID is
// nullable: manual and AI-generated questions have no source paper.
type Question struct {
	ID            uint                    `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
	DeletedAt     gorm.DeletedAt          `gorm:"index" json:"-"`
	SubjectID     uint                    `gorm:"index;not null" json:"subject_id"`
	PaperID       *uint                   `gorm:"index" json:"paper_id,omitempty"`
	Text          string                  `gorm:"type:text;not null" json:"text"`
	Type          analysis.QuestionType   `gorm:"type:varchar(20);not null" json:"type"`
	Options       datatypes.JSON          `gorm:"type:jsonb" json:"options,omitempty"`
	CorrectAnswer string                  `gorm:"type:text" json:"correct_answer,omitempty"`
	Points        int                     `gorm:"default:0" json:"points"`
	Source        analysis.QuestionSource `gorm:"type:varchar(20);default:'extracted'" json:"source"`
	NeedsReview   bool                    `gorm:"default:false" json:"needs_review"`

	// Relationships
	Subject Subject       `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"-"`
	Paper   PaperDocument `gorm:"foreignKey:PaperID;constraint:OnDelete:SET NULL" json:"-"`
}

// QuestionResponse is the API representation of a question
type QuestionResponse struct {
	ID            uint                    `json:"id"`
	SubjectID     uint                    `json:"subject_id"`
	PaperID       uint                    `json:"paper_id,omitempty"`
	Text          string                  `json:"text"`
	Type          analysis.QuestionType   `json:"type"`
	Options       []string                `json:"options,omitempty"`
	CorrectAnswer string                  `json:"correct_answer,omitempty"`
	Points        int                     `json:"points"`
	Source        analysis.QuestionSource `json:"source"`
	NeedsReview   bool                    `json:"needs_review"`
}

// OptionList decodes the stored options JSON into a string slice
func (q *Question) OptionList() []string {
	if len(q.Options) == 0 {
		return nil
	}
	var opts []string
	if err := json.Unmarshal(q.Options, &opts); err != nil {
		return nil
	}
	return opts
}

// SetOptions encodes a string slice into the options JSON column
func (q *Question) SetOptions(opts []string) error {
	if len(opts) == 0 {
		q.Options = nil
		return nil
	}
	data, err := json.Marshal(opts)
	if err != nil {
		return err
	}
	q.Options = datatypes.JSON(data)
	return nil
}

// ToResponse converts a Question to its API representation
func (q *Question) ToResponse() QuestionResponse {
	var paperID uint
	if q.PaperID != nil {
		paperID = *q.PaperID
	}
	return QuestionResponse{
		ID:            q.ID,
		SubjectID:     q.SubjectID,
		PaperID:       paperID,
		Text:          q.Text,
		Type:          q.Type,
		Options:       q.OptionList(),
		CorrectAnswer: q.CorrectAnswer,
		Points:        q.Points,
		Source:        q.Source,
		NeedsReview:   q.NeedsReview,
	}
}
