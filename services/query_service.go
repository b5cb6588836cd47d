package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/ssemakula/marksheet/models"
	"gorm.io/gorm"
)

// EntrySheetRow is one line of the teacher's mark-entry screen. Students with
// no MarkRecord yet get a synthesized placeholder (HasRecord false); nothing
// is persisted for them until first submission.
type EntrySheetRow struct {
	StudentID   uuid.UUID  `json:"student_id"`
	AdmissionNo string     `json:"admission_no"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	HasRecord   bool       `json:"has_record"`
	RecordID    *uuid.UUID `json:"record_id,omitempty"`
	Score       *int       `json:"score"`
	IsAbsent    bool       `json:"is_absent"`
	Status      string     `json:"status"`
}

type EntrySheet struct {
	Exam models.Exam     `json:"exam"`
	Rows []EntrySheetRow `json:"rows"`
}

// GetEntrySheet joins the exam's roster with existing mark records, in roster
// order.
func GetEntrySheet(db *gorm.DB, examID uuid.UUID) (*EntrySheet, error) {
	var exam models.Exam
	if err := db.Preload("Section").Preload("Subject").First(&exam, "id = ?", examID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}

	roster, err := GetRoster(db, exam.SectionID, exam.SubjectID)
	if err != nil {
		return nil, err
	}

	var records []models.MarkRecord
	if err := db.Where("exam_id = ?", examID).Find(&records).Error; err != nil {
		return nil, err
	}
	byStudent := make(map[uuid.UUID]models.MarkRecord, len(records))
	for _, r := range records {
		byStudent[r.StudentID] = r
	}

	sheet := &EntrySheet{Exam: exam, Rows: make([]EntrySheetRow, 0, len(roster))}
	for _, enr := range roster {
		row := EntrySheetRow{
			StudentID: enr.StudentID,
			Status:    models.StatusPending,
		}
		if enr.Student != nil {
			row.AdmissionNo = enr.Student.AdmissionNo
			row.FirstName = enr.Student.FirstName
			row.LastName = enr.Student.LastName
		}
		if rec, ok := byStudent[enr.StudentID]; ok {
			id := rec.ID
			row.HasRecord = true
			row.RecordID = &id
			row.Score = rec.Score
			row.IsAbsent = rec.IsAbsent
			row.Status = rec.Status
		}
		sheet.Rows = append(sheet.Rows, row)
	}

	return sheet, nil
}

// ListMarksForExam returns the exam's persisted records with student identity,
// for the admin review screen.
func ListMarksForExam(db *gorm.DB, examID uuid.UUID) ([]models.MarkRecord, error) {
	var exam models.Exam
	if err := db.First(&exam, "id = ?", examID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}

	var records []models.MarkRecord
	err := db.Preload("Student").
		Joins("JOIN students ON students.id = mark_records.student_id").
		Where("mark_records.exam_id = ?", examID).
		Order("students.last_name, students.first_name").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

type ReviewQueueItem struct {
	Exam         models.Exam `json:"exam"`
	PendingCount int64       `json:"pending_count"`
}

// GetReviewQueue lists every exam that still has pending records, with its
// pending count, most backed-up first.
func GetReviewQueue(db *gorm.DB) ([]ReviewQueueItem, error) {
	type pendingRow struct {
		ExamID uuid.UUID
		Count  int64
	}
	var pending []pendingRow
	err := db.Model(&models.MarkRecord{}).
		Select("exam_id, count(*) as count").
		Where("status = ?", models.StatusPending).
		Group("exam_id").
		Order("count desc").
		Scan(&pending).Error
	if err != nil {
		return nil, err
	}

	queue := make([]ReviewQueueItem, 0, len(pending))
	for _, p := range pending {
		var exam models.Exam
		if err := db.Preload("Section").Preload("Subject").First(&exam, "id = ?", p.ExamID).Error; err != nil {
			return nil, err
		}
		queue = append(queue, ReviewQueueItem{Exam: exam, PendingCount: p.Count})
	}
	return queue, nil
}

// GetApprovedScore is the stable read used by downstream report views: the
// approved score for one (exam, student), or found=false while no approved
// record exists. A nil score with found=true means an approved absence.
func GetApprovedScore(db *gorm.DB, examID, studentID uuid.UUID) (score *int, found bool, err error) {
	var record models.MarkRecord
	err = db.Where("exam_id = ? AND student_id = ? AND status = ?", examID, studentID, models.StatusApproved).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return record.Score, true, nil
}

// ListActiveExamsForTeacher returns active exams in sections/subjects the
// teacher is assigned to.
func ListActiveExamsForTeacher(db *gorm.DB, teacherID uuid.UUID) ([]models.Exam, error) {
	var exams []models.Exam
	err := db.Preload("Section").Preload("Subject").
		Joins("JOIN teacher_assignments ON teacher_assignments.section_id = exams.section_id AND teacher_assignments.subject_id = exams.subject_id").
		Where("teacher_assignments.teacher_id = ? AND exams.is_active = ?", teacherID, true).
		Order("exams.created_at desc").
		Find(&exams).Error
	if err != nil {
		return nil, err
	}
	return exams, nil
}
