package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/ssemakula/marksheet/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database per test. The named DSN with
// cache=shared keeps the pool's connections on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.Section{},
		&models.Subject{},
		&models.Enrollment{},
		&models.TeacherAssignment{},
		&models.Exam{},
		&models.MarkRecord{},
	)
	require.NoError(t, err)

	return db
}

type marksFixture struct {
	teacher  models.User
	admin    models.User
	section  models.Section
	subject  models.Subject
	students []models.Student
	exam     models.Exam
}

// seedMarksFixture creates a section/subject with three enrolled students, an
// assigned teacher, an admin and one active exam.
func seedMarksFixture(t *testing.T, db *gorm.DB, maxScore int) *marksFixture {
	t.Helper()

	f := &marksFixture{
		teacher: models.User{FullName: "Grace Nansubuga", Email: "grace@school.test", Password: "x", Role: models.RoleTeacher, IsActive: true},
		admin:   models.User{FullName: "Head Teacher", Email: "head@school.test", Password: "x", Role: models.RoleAdmin, IsActive: true},
		section: models.Section{Name: "S3 East", IsActive: true},
		subject: models.Subject{Name: "Mathematics", Code: "MTC"},
	}
	require.NoError(t, db.Create(&f.teacher).Error)
	require.NoError(t, db.Create(&f.admin).Error)
	require.NoError(t, db.Create(&f.section).Error)
	require.NoError(t, db.Create(&f.subject).Error)

	names := []struct{ first, last string }{
		{"Aisha", "Kintu"},
		{"Brian", "Mugisha"},
		{"Cathy", "Nakato"},
	}
	for i, n := range names {
		student := models.Student{
			AdmissionNo: fmt.Sprintf("2026-%05d", i+1),
			FirstName:   n.first,
			LastName:    n.last,
			IsActive:    true,
		}
		require.NoError(t, db.Create(&student).Error)
		f.students = append(f.students, student)

		enrollment := models.Enrollment{
			SectionID: f.section.ID,
			SubjectID: f.subject.ID,
			StudentID: student.ID,
			Position:  i + 1,
		}
		require.NoError(t, db.Create(&enrollment).Error)
	}

	assignment := models.TeacherAssignment{
		TeacherID: f.teacher.ID,
		SectionID: f.section.ID,
		SubjectID: f.subject.ID,
	}
	require.NoError(t, db.Create(&assignment).Error)

	f.exam = models.Exam{
		Name:      "End of Term 1",
		SectionID: f.section.ID,
		SubjectID: f.subject.ID,
		MaxScore:  maxScore,
		IsActive:  true,
	}
	require.NoError(t, db.Create(&f.exam).Error)

	return f
}

func intPtr(v int) *int {
	return &v
}

func loadRecord(t *testing.T, db *gorm.DB, examID, studentID uuid.UUID) models.MarkRecord {
	t.Helper()
	var record models.MarkRecord
	err := db.First(&record, "exam_id = ? AND student_id = ?", examID, studentID).Error
	require.NoError(t, err)
	return record
}
