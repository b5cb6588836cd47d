package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review states of a MarkRecord. Pending is the initial state; approved is
// terminal; rejected returns to pending when the teacher resubmits.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// MarkRecord holds one student's score for one exam. Score is null exactly
// when IsAbsent is true. Once Status is approved the row is frozen against
// further teacher submissions.
type MarkRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ExamID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_exam_student" json:"exam_id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_exam_student" json:"student_id"`

	Score    *int   `json:"score"`
	IsAbsent bool   `gorm:"not null;default:false" json:"is_absent"`
	Status   string `gorm:"size:20;not null;default:'pending';index" json:"status"`

	SubmittedBy uuid.UUID  `gorm:"type:uuid;not null" json:"submitted_by"`
	SubmittedAt time.Time  `gorm:"not null" json:"submitted_at"`
	ReviewedBy  *uuid.UUID `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`

	Exam    *Exam    `gorm:"foreignKey:ExamID" json:"exam,omitempty"`
	Student *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *MarkRecord) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
