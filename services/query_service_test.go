package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/ssemakula/marksheet/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEntrySheetSynthesizesPlaceholders(t *testing.T) {
	db := newTestDB(t)
	f := seedMarksFixture(t, db, 50)

	_, err := SubmitMarks(db, f.exam.ID, f.teacher.ID, []MarkEntry{
		{StudentID: f.students[1].ID, Score: intPtr(33)},
	})
	require.NoError(t, err)

	sheet, err := GetEntrySheet(db, f.exam.ID)
	require.NoError(t, err)

	assert.Equal(t, f.exam.ID, sheet.Exam.ID)
	require.Len(t, sheet.Rows, 3)

	// Roster order is preserved.
	for i, row := range sheet.Rows {
		assert.Equal(t, f.students[i].ID, row.StudentID)
		assert.Equal(t, f.students[i].AdmissionNo, row.AdmissionNo)
	}

	placeholder := sheet.Rows[0]
	assert.False(t, placeholder.HasRecord)
	assert.Nil(t, placeholder.RecordID)
	assert.Nil(t, placeholder.Score)
	assert.Equal(t, models.StatusPending, placeholder.Status)

	recorded := sheet.Rows[1]
	assert.True(t, recorded.HasRecord)
	require.NotNil(t, recorded.Score)
	assert.Equal(t, 33, *recorded.Score)

	// Placeholders are synthesized, never persisted.
	var count int64
	db.Model(&models.MarkRecord{}).Where("exam_id = ?", f.exam.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestGetEntrySheetUnknownExam(t *testing.T) {
	db := newTestDB(t)
	seedMarksFixture(t, db, 50)

	_, err := GetEntrySheet(db, uuid.New())
	assert.ErrorIs(t, err, ErrExamNotFound)
}

func TestListMarksForExam(t *testing.T) {
	db := newTestDB(t)
	f := seedMarksFixture(t, db, 50)

	_, err := SubmitMarks(db, f.exam.ID, f.teacher.ID, []MarkEntry{
		{StudentID: f.students[2].ID, Score: intPtr(12)},
		{StudentID: f.students[0].ID, Score: intPtr(48)},
	})
	require.NoError(t, err)

	records, err := ListMarksForExam(db, f.exam.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Ordered by student name, with identity attached.
	assert.Equal(t, f.students[0].ID, records[0].StudentID)
	require.NotNil(t, records[0].Student)
	assert.Equal(t, "Kintu", records[0].Student.LastName)
	assert.Equal(t, f.students[2].ID, records[1].StudentID)

	_, err = ListMarksForExam(db, uuid.New())
	assert.ErrorIs(t, err, ErrExamNotFound)
}

func TestGetReviewQueue(t *testing.T) {
	db := newTestDB(t)
	f := seedMarksFixture(t, db, 50)

	secondExam := models.Exam{
		Name:      "Midterm",
		SectionID: f.section.ID,
		SubjectID: f.subject.ID,
		MaxScore:  100,
		IsActive:  true,
	}
	require.NoError(t, db.Create(&secondExam).Error)

	_, err := SubmitMarks(db, f.exam.ID, f.teacher.ID, []MarkEntry{
		{StudentID: f.students[0].ID, Score: intPtr(40)},
		{StudentID: f.students[1].ID, Score: intPtr(35)},
	})
	require.NoError(t, err)
	_, err = SubmitMarks(db, secondExam.ID, f.teacher.ID, []MarkEntry{
		{StudentID: f.students[0].ID, Score: intPtr(80)},
	})
	require.NoError(t, err)

	queue, err := GetReviewQueue(db)
	require.NoError(t, err)
	require.Len(t, queue, 2)

	// Most pending first.
	assert.Equal(t, f.exam.ID, queue[0].Exam.ID)
	assert.EqualValues(t, 2, queue[0].PendingCount)
	assert.Equal(t, secondExam.ID, queue[1].Exam.ID)
	assert.EqualValues(t, 1, queue[1].PendingCount)

	// Fully decided exams drop off the queue.
	_, err = ApproveAllPending(db, f.exam.ID, f.admin.ID)
	require.NoError(t, err)

	queue, err = GetReviewQueue(db)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, secondExam.ID, queue[0].Exam.ID)
}

func TestGetApprovedScore(t *testing.T) {
	db := newTestDB(t)
	f := seedMarksFixture(t, db, 50)

	_, err := SubmitMarks(db, f.exam.ID, f.teacher.ID, []MarkEntry{
		{StudentID: f.students[0].ID, Score: intPtr(44)},
		{StudentID: f.students[1].ID, IsAbsent: true},
	})
	require.NoError(t, err)

	// Pending marks are not visible to the approved-score read.
	_, found, err := GetApprovedScore(db, f.exam.ID, f.students[0].ID)
	require.NoError(t, err)
	assert.False(t, found)

	_, err = ApproveAllPending(db, f.exam.ID, f.admin.ID)
	require.NoError(t, err)

	score, found, err := GetApprovedScore(db, f.exam.ID, f.students[0].ID)
	require.NoError(t, err)
	assert.True(t, found)
	require.NotNil(t, score)
	assert.Equal(t, 44, *score)

	// Approved absence reads as found with no score.
	score, found, err = GetApprovedScore(db, f.exam.ID, f.students[1].ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Nil(t, score)

	_, found, err = GetApprovedScore(db, f.exam.ID, f.students[2].ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestListActiveExamsForTeacher(t *testing.T) {
	db := newTestDB(t)
	f := seedMarksFixture(t, db, 50)

	closed := models.Exam{
		Name:      "Old Exam",
		SectionID: f.section.ID,
		SubjectID: f.subject.ID,
		MaxScore:  50,
		IsActive:  false,
	}
	require.NoError(t, db.Create(&closed).Error)

	exams, err := ListActiveExamsForTeacher(db, f.teacher.ID)
	require.NoError(t, err)
	require.Len(t, exams, 1)
	assert.Equal(t, f.exam.ID, exams[0].ID)

	other := models.User{FullName: "Unassigned", Email: "nobody@school.test", Password: "x", Role: models.RoleTeacher, IsActive: true}
	require.NoError(t, db.Create(&other).Error)

	exams, err = ListActiveExamsForTeacher(db, other.ID)
	require.NoError(t, err)
	assert.Empty(t, exams)
}
