package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/ssemakula/marksheet/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitMarksCreatesPendingRecords(t *testing.T) {
	db := newTestDB(t)
	f := seedMarksFixture(t, db, 50)

	result, err := SubmitMarks(db, f.exam.ID, f.teacher.ID, []MarkEntry{
		{StudentID: f.students[0].ID, Score: intPtr(45)},
		{StudentID: f.students[1].ID, IsAbsent: true},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Written)
	assert.Equal(t, 0, result.SkippedLocked)
	assert.Empty(t, result.Failures)

	scored := loadRecord(t, db, f.exam.ID, f.students[0].ID)
	assert.Equal(t, models.StatusPending, scored.Status)
	require.NotNil(t, scored.Score)
	assert.Equal(t, 45, *scored.Score)
	assert.False(t, scored.IsAbsent)
	assert.Equal(t, f.teacher.ID, scored.SubmittedBy)
	assert.Nil(t, scored.ReviewedBy)
	assert.Nil(t, scored.ReviewedAt)

	absent := loadRecord(t, db, f.exam.ID, f.students[1].ID)
	assert.Equal(t, models.StatusPending, absent.Status)
	assert.True(t, absent.IsAbsent)
	assert.Nil(t, absent.Score)

	// No placeholder row for the student who was not submitted.
	var count int64
	db.Model(&models.MarkRecord{}).Where("exam_id = ?", f.exam.ID).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestSubmitMarksRejectsOutOfRangeScores(t *testing.T) {
	db := newTestDB(t)
	f := seedMarksFixture(t, db, 50)

	result, err := SubmitMarks(db, f.exam.ID, f.teacher.ID, []MarkEntry{
		{StudentID: f.students[0].ID, Score: intPtr(61)},
		{StudentID: f.students[1].ID, Score: intPtr(-1)},
		{StudentID: f.students[2].ID, Score: intPtr(50)},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Written)
	require.Len(t, result.Failures, 2)
	for _, failure := range result.Failures {
		assert.Equal(t, FailureInvalidScore, failure.Reason)
	}

	// Invalid entries never create records.
	var count int64
	db.Model(&models.MarkRecord{}).Where("exam_id = ?", f.exam.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSubmitMarksRequiresScoreUnlessAbsent(t *testing.T) {
	db := newTestDB(t)
	f := seedMarksFixture(t, db, 50)

	result, err := SubmitMarks(db, f.exam.ID, f.teacher.ID, []MarkEntry{
		{StudentID: f.students[0].ID},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Written)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, FailureInvalidScore, result.Failures[0].Reason)
}

func TestSubmitMarksUnknownStudent(t *testing.T) {
	db := newTestDB(t)
	f := seedMarksFixture(t, db, 50)

	outsider := models.Student{AdmissionNo: "2026-09999", FirstName: "Olivia", LastName: "Outside", IsActive: true}
	require.NoError(t, db.Create(&outsider).Error)

	result, err := SubmitMarks(db, f.exam.ID, f.teacher.ID, []MarkEntry{
		{StudentID: outsider.ID, Score: intPtr(30)},
		{StudentID: f.students[0].ID, Score: intPtr(30)},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Written)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, FailureUnknownStudent, result.Failures[0].Reason)
	assert.Equal(t, outsider.ID, result.Failures[0].StudentID)
}

func TestSubmitMarksPreconditions(t *testing.T) {
	db := newTestDB(t)
	f := seedMarksFixture(t, db, 50)

	entries := []MarkEntry{{StudentID: f.students[0].ID, Score: intPtr(10)}}

	_, err := SubmitMarks(db, uuid.New(), f.teacher.ID, entries)
	assert.ErrorIs(t, err, ErrExamNotFound)

	// Unassigned teacher is refused before anything is written.
	other := models.User{FullName: "Other Teacher", Email: "other@school.test", Password: "x", Role: models.RoleTeacher, IsActive: true}
	require.NoError(t, db.Create(&other).Error)
	_, err = SubmitMarks(db, f.exam.ID, other.ID, entries)
	assert.ErrorIs(t, err, ErrNotAssigned)

	require.NoError(t, db.Model(&f.exam).Update("is_active", false).Error)
	_, err = SubmitMarks(db, f.exam.ID, f.teacher.ID, entries)
	assert.ErrorIs(t, err, ErrExamInactive)

	var count int64
	db.Model(&models.MarkRecord{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestSubmitMarksSkipsApprovedRecords(t *testing.T) {
	db := newTestDB(t)
	f := seedMarksFixture(t, db, 50)

	_, err := SubmitMarks(db, f.exam.ID, f.teacher.ID, []MarkEntry{
		{StudentID: f.students[0].ID, Score: intPtr(45)},
		{StudentID: f.students[1].ID, Score: intPtr(30)},
	})
	require.NoError(t, err)

	approved := loadRecord(t, db, f.exam.ID, f.students[0].ID)
	_, err = ReviewMarks(db, f.exam.ID, f.admin.ID, []uuid.UUID{approved.ID}, models.StatusApproved)
	require.NoError(t, err)

	result, err := SubmitMarks(db, f.exam.ID, f.teacher.ID, []MarkEntry{
		{StudentID: f.students[0].ID, Score: intPtr(10)},
		{StudentID: f.students[1].ID, Score: intPtr(35)},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Written)
	assert.Equal(t, 1, result.SkippedLocked)
	assert.Empty(t, result.Failures)

	// The approved mark is frozen at its reviewed value.
	frozen := loadRecord(t, db, f.exam.ID, f.students[0].ID)
	assert.Equal(t, models.StatusApproved, frozen.Status)
	require.NotNil(t, frozen.Score)
	assert.Equal(t, 45, *frozen.Score)
	require.NotNil(t, frozen.ReviewedBy)
	assert.Equal(t, f.admin.ID, *frozen.ReviewedBy)

	rewritten := loadRecord(t, db, f.exam.ID, f.students[1].ID)
	require.NotNil(t, rewritten.Score)
	assert.Equal(t, 35, *rewritten.Score)
	assert.Equal(t, models.StatusPending, rewritten.Status)
}

func TestResubmitRejectedResetsToPending(t *testing.T) {
	db := newTestDB(t)
	f := seedMarksFixture(t, db, 50)

	_, err := SubmitMarks(db, f.exam.ID, f.teacher.ID, []MarkEntry{
		{StudentID: f.students[0].ID, Score: intPtr(20)},
	})
	require.NoError(t, err)

	record := loadRecord(t, db, f.exam.ID, f.students[0].ID)
	_, err = ReviewMarks(db, f.exam.ID, f.admin.ID, []uuid.UUID{record.ID}, models.StatusRejected)
	require.NoError(t, err)

	result, err := SubmitMarks(db, f.exam.ID, f.teacher.ID, []MarkEntry{
		{StudentID: f.students[0].ID, Score: intPtr(25)},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Written)

	resubmitted := loadRecord(t, db, f.exam.ID, f.students[0].ID)
	assert.Equal(t, models.StatusPending, resubmitted.Status)
	require.NotNil(t, resubmitted.Score)
	assert.Equal(t, 25, *resubmitted.Score)
	// The old rejection audit does not survive resubmission.
	assert.Nil(t, resubmitted.ReviewedBy)
	assert.Nil(t, resubmitted.ReviewedAt)
}

func TestSubmitMarksOverwritesPendingEntry(t *testing.T) {
	db := newTestDB(t)
	f := seedMarksFixture(t, db, 50)

	_, err := SubmitMarks(db, f.exam.ID, f.teacher.ID, []MarkEntry{
		{StudentID: f.students[0].ID, Score: intPtr(20)},
	})
	require.NoError(t, err)

	result, err := SubmitMarks(db, f.exam.ID, f.teacher.ID, []MarkEntry{
		{StudentID: f.students[0].ID, IsAbsent: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Written)

	record := loadRecord(t, db, f.exam.ID, f.students[0].ID)
	assert.True(t, record.IsAbsent)
	assert.Nil(t, record.Score)
	assert.Equal(t, models.StatusPending, record.Status)

	// Still exactly one row per (exam, student).
	var count int64
	db.Model(&models.MarkRecord{}).Where("exam_id = ? AND student_id = ?", f.exam.ID, f.students[0].ID).Count(&count)
	assert.EqualValues(t, 1, count)
}
