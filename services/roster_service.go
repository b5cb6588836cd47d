package services

import (
	"github.com/google/uuid"
	"github.com/ssemakula/marksheet/models"
	"gorm.io/gorm"
)

// GetRoster returns the ordered roster for a section/subject pair: enrollments
// with their students, in entry-sheet order.
func GetRoster(db *gorm.DB, sectionID, subjectID uuid.UUID) ([]models.Enrollment, error) {
	var roster []models.Enrollment
	err := db.Preload("Student").
		Joins("JOIN students ON students.id = enrollments.student_id").
		Where("enrollments.section_id = ? AND enrollments.subject_id = ?", sectionID, subjectID).
		Order("enrollments.position, students.last_name, students.first_name").
		Find(&roster).Error
	if err != nil {
		return nil, err
	}
	return roster, nil
}

// IsTeacherAssigned reports whether the teacher may enter marks for the
// section/subject pair.
func IsTeacherAssigned(db *gorm.DB, teacherID, sectionID, subjectID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&models.TeacherAssignment{}).
		Where("teacher_id = ? AND section_id = ? AND subject_id = ?", teacherID, sectionID, subjectID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
