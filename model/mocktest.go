package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MockTest is a generated practice test assembled from the question bank.
// TestUID is the public identifier (test_<hex>) handed back to clients.
// Questions holds the assembled question set as JSON so the test stays
// stable even when the underlying bank changes later.
type MockTest struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	TestUID       string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"test_uid"`
	SubjectID     uint           `gorm:"index;not null" json:"subject_id"`
	Title         string         `gorm:"type:varchar(255)" json:"title"`
	QuestionCount int            `gorm:"default:0" json:"question_count"`
	TotalPoints   int            `gorm:"default:0" json:"total_points"`
	DurationMins  int            `gorm:"default:0" json:"duration_mins"`
	Questions     datatypes.JSON `gorm:"type:jsonb" json:"questions,omitempty"`

	// Relationships
	Subject Subject `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for MockTest
func (MockTest) TableName() string {
	return "mock_tests"
}
