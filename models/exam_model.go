package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Exam is an assessment definition scoped to one section/subject. Marks are
// entered against it while IsActive is true.
type Exam struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	SectionID uuid.UUID  `gorm:"type:uuid;not null;index" json:"section_id"`
	SubjectID uuid.UUID  `gorm:"type:uuid;not null;index" json:"subject_id"`
	MaxScore  int        `gorm:"not null" json:"max_score"`
	IsActive  bool       `gorm:"default:true" json:"is_active"`
	StartsAt  *time.Time `json:"starts_at,omitempty"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`

	Section *Section `gorm:"foreignKey:SectionID" json:"section,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *Exam) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
