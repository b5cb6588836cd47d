package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ssemakula/marksheet/models"
	"gorm.io/gorm"
)

var ErrInvalidTargetStatus = errors.New("target status must be approved or rejected")

// Skip reasons for review targets that were not transitioned.
const (
	SkipAlreadyApproved = "already_approved"
	SkipAlreadyRejected = "already_rejected"
	SkipNotFound        = "not_found"
)

type ReviewSkip struct {
	RecordID uuid.UUID `json:"record_id"`
	Reason   string    `json:"reason"`
}

type ReviewResult struct {
	Transitioned int          `json:"transitioned"`
	Skipped      []ReviewSkip `json:"skipped"`
}

// ReviewMarks moves the targeted pending records of one exam to approved or
// rejected. The pending precondition is applied per row inside the UPDATE
// itself, so a record resubmitted or decided concurrently is skipped rather
// than overwritten. Records not in pending are reported, never failed.
// Review stays available after an exam is deactivated for entry.
func ReviewMarks(db *gorm.DB, examID, reviewerID uuid.UUID, recordIDs []uuid.UUID, targetStatus string) (*ReviewResult, error) {
	if targetStatus != models.StatusApproved && targetStatus != models.StatusRejected {
		return nil, ErrInvalidTargetStatus
	}

	var exam models.Exam
	if err := db.First(&exam, "id = ?", examID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}

	result := &ReviewResult{Skipped: []ReviewSkip{}}
	now := time.Now()

	for _, id := range recordIDs {
		res := db.Model(&models.MarkRecord{}).
			Where("id = ? AND exam_id = ? AND status = ?", id, examID, models.StatusPending).
			Updates(map[string]interface{}{
				"status":      targetStatus,
				"reviewed_by": reviewerID,
				"reviewed_at": now,
			})
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected > 0 {
			result.Transitioned++
			continue
		}

		var record models.MarkRecord
		err := db.Select("status").First(&record, "id = ? AND exam_id = ?", id, examID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			result.Skipped = append(result.Skipped, ReviewSkip{RecordID: id, Reason: SkipNotFound})
		case err != nil:
			return nil, err
		case record.Status == models.StatusApproved:
			result.Skipped = append(result.Skipped, ReviewSkip{RecordID: id, Reason: SkipAlreadyApproved})
		default:
			result.Skipped = append(result.Skipped, ReviewSkip{RecordID: id, Reason: SkipAlreadyRejected})
		}
	}

	return result, nil
}

// ApproveAllPending approves every record of the exam that is still pending at
// commit time. Calling it again immediately transitions nothing.
func ApproveAllPending(db *gorm.DB, examID, reviewerID uuid.UUID) (int, error) {
	var exam models.Exam
	if err := db.First(&exam, "id = ?", examID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrExamNotFound
		}
		return 0, err
	}

	res := db.Model(&models.MarkRecord{}).
		Where("exam_id = ? AND status = ?", examID, models.StatusPending).
		Updates(map[string]interface{}{
			"status":      models.StatusApproved,
			"reviewed_by": reviewerID,
			"reviewed_at": time.Now(),
		})
	if res.Error != nil {
		return 0, res.Error
	}

	return int(res.RowsAffected), nil
}
