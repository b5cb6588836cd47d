package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ssemakula/marksheet/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrExamNotFound = errors.New("exam not found")
	ErrExamInactive = errors.New("exam is closed for mark entry")
	ErrNotAssigned  = errors.New("teacher is not assigned to this section and subject")
)

// Per-entry failure reasons. A failed entry never aborts its siblings.
const (
	FailureInvalidScore   = "invalid_score"
	FailureUnknownStudent = "unknown_student"
)

type MarkEntry struct {
	StudentID uuid.UUID `json:"student_id"`
	Score     *int      `json:"score"`
	IsAbsent  bool      `json:"is_absent"`
}

type EntryFailure struct {
	StudentID uuid.UUID `json:"student_id"`
	Reason    string    `json:"reason"`
	Message   string    `json:"message"`
}

type SubmissionResult struct {
	Written       int            `json:"written"`
	SkippedLocked int            `json:"skipped_locked"`
	Failures      []EntryFailure `json:"failures"`
}

// SubmitMarks upserts a teacher's batch of mark entries for one exam.
//
// Preconditions (exam exists and is active, teacher assigned) fail the whole
// call before anything is written. After that each entry stands alone:
// invalid or unknown entries are collected as failures, entries whose record
// is already approved are counted as locked skips, and every remaining entry
// is written with status reset to pending and the reviewer audit cleared.
func SubmitMarks(db *gorm.DB, examID, teacherID uuid.UUID, entries []MarkEntry) (*SubmissionResult, error) {
	var exam models.Exam
	if err := db.First(&exam, "id = ?", examID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}
	if !exam.IsActive {
		return nil, ErrExamInactive
	}

	assigned, err := IsTeacherAssigned(db, teacherID, exam.SectionID, exam.SubjectID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, ErrNotAssigned
	}

	roster, err := GetRoster(db, exam.SectionID, exam.SubjectID)
	if err != nil {
		return nil, err
	}
	enrolled := make(map[uuid.UUID]bool, len(roster))
	for _, e := range roster {
		enrolled[e.StudentID] = true
	}

	result := &SubmissionResult{Failures: []EntryFailure{}}

	for _, entry := range entries {
		if !enrolled[entry.StudentID] {
			result.Failures = append(result.Failures, EntryFailure{
				StudentID: entry.StudentID,
				Reason:    FailureUnknownStudent,
				Message:   "student is not on the roster for this exam",
			})
			continue
		}

		var score *int
		if entry.IsAbsent {
			score = nil
		} else {
			if entry.Score == nil {
				result.Failures = append(result.Failures, EntryFailure{
					StudentID: entry.StudentID,
					Reason:    FailureInvalidScore,
					Message:   "score is required when the student is not absent",
				})
				continue
			}
			if *entry.Score < 0 || *entry.Score > exam.MaxScore {
				result.Failures = append(result.Failures, EntryFailure{
					StudentID: entry.StudentID,
					Reason:    FailureInvalidScore,
					Message:   fmt.Sprintf("score must be between 0 and %d", exam.MaxScore),
				})
				continue
			}
			s := *entry.Score
			score = &s
		}

		now := time.Now()
		record := models.MarkRecord{
			ExamID:      exam.ID,
			StudentID:   entry.StudentID,
			Score:       score,
			IsAbsent:    entry.IsAbsent,
			Status:      models.StatusPending,
			SubmittedBy: teacherID,
			SubmittedAt: now,
		}

		// Single atomic statement: insert, or overwrite the existing row only
		// while it is not approved. RowsAffected == 0 means the row is locked.
		res := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "exam_id"}, {Name: "student_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"score":        score,
				"is_absent":    entry.IsAbsent,
				"status":       models.StatusPending,
				"submitted_by": teacherID,
				"submitted_at": now,
				"reviewed_by":  nil,
				"reviewed_at":  nil,
				"updated_at":   now,
			}),
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Neq{
					Column: clause.Column{Table: "mark_records", Name: "status"},
					Value:  models.StatusApproved,
				},
			}},
		}).Create(&record)
		if res.Error != nil {
			return nil, fmt.Errorf("failed to save mark for student %s: %w", entry.StudentID, res.Error)
		}

		if res.RowsAffected == 0 {
			result.SkippedLocked++
		} else {
			result.Written++
		}
	}

	return result, nil
}
