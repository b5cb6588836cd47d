package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enrollment is one roster row: a student taking a subject in a section.
// Position fixes the order students appear on the mark-entry sheet.
type Enrollment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SectionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_roster_member" json:"section_id"`
	SubjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_roster_member" json:"subject_id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_roster_member" json:"student_id"`
	Position  int       `gorm:"not null;default:0" json:"position"`

	Student *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Section *Section `gorm:"foreignKey:SectionID" json:"section,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TeacherAssignment grants a teacher mark-entry rights for a section/subject pair.
type TeacherAssignment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TeacherID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_teacher_assignment" json:"teacher_id"`
	SectionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_teacher_assignment" json:"section_id"`
	SubjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_teacher_assignment" json:"subject_id"`

	Teacher *User    `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Section *Section `gorm:"foreignKey:SectionID" json:"section,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *TeacherAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
