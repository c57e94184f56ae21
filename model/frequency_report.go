package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FrequencyReportRecord is a persisted snapshot of a frequency analysis run
// for a subject. Payload holds the full report (groups, members, similarity
// log) as JSON; the scalar columns are denormalized for cheap listing.
type FrequencyReportRecord struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
	SubjectID          uint           `gorm:"index;not null" json:"subject_id"`
	Threshold          int            `gorm:"not null" json:"threshold"`
	TotalDocuments     int            `gorm:"default:0" json:"total_documents"`
	TotalQuestions     int            `gorm:"default:0" json:"total_questions"`
	GroupCount         int            `gorm:"default:0" json:"group_count"`
	RepeatedGroups     int            `gorm:"default:0" json:"repeated_groups"`
	RepeatedPercentage float64        `gorm:"default:0" json:"repeated_percentage"`
	AverageChance      float64        `gorm:"default:0" json:"average_reappearance_chance"`
	Payload            datatypes.JSON `gorm:"type:jsonb" json:"payload,omitempty"`

	// Relationships
	Subject Subject `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for FrequencyReportRecord
func (FrequencyReportRecord) TableName() string {
	return "frequency_reports"
}
