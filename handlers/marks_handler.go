package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ssemakula/marksheet/database"
	"github.com/ssemakula/marksheet/services"
)

type SubmitMarksRequest struct {
	Entries []struct {
		StudentID string `json:"student_id" validate:"required,uuid"`
		Score     *int   `json:"score"`
		IsAbsent  bool   `json:"is_absent"`
	} `json:"entries" validate:"required,min=1"`
}

// SubmitMarks is the teacher's batch mark-entry endpoint. The response always
// carries both the written count and the itemized skips/failures so the UI
// can render a mixed-result summary.
func SubmitMarks(c *fiber.Ctx) error {
	teacherID := currentUserID(c)

	examID, err := uuid.Parse(c.Params("examId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exam id"})
	}

	var req SubmitMarksRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	entries := make([]services.MarkEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		studentID, err := uuid.Parse(e.StudentID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student id in entries"})
		}
		entries = append(entries, services.MarkEntry{
			StudentID: studentID,
			Score:     e.Score,
			IsAbsent:  e.IsAbsent,
		})
	}

	result, err := services.SubmitMarks(database.DB, examID, teacherID, entries)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrExamNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exam not found"})
		case errors.Is(err, services.ErrExamInactive):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Exam is closed for mark entry"})
		case errors.Is(err, services.ErrNotAssigned):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not assigned to this section and subject"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save marks"})
	}

	return c.JSON(result)
}

// GetEntrySheet returns the roster joined with existing records for the
// exam's mark-entry screen.
func GetEntrySheet(c *fiber.Ctx) error {
	examID, err := uuid.Parse(c.Params("examId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exam id"})
	}

	sheet, err := services.GetEntrySheet(database.DB, examID)
	if err != nil {
		if errors.Is(err, services.ErrExamNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exam not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load entry sheet"})
	}

	return c.JSON(sheet)
}

func ListTeacherExams(c *fiber.Ctx) error {
	teacherID := currentUserID(c)

	exams, err := services.ListActiveExamsForTeacher(database.DB, teacherID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load exams"})
	}
	return c.JSON(exams)
}

// GetApprovedScore exposes the stable approved-score read consumed by report
// views.
func GetApprovedScore(c *fiber.Ctx) error {
	examID, err := uuid.Parse(c.Params("examId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exam id"})
	}
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student id"})
	}

	score, found, err := services.GetApprovedScore(database.DB, examID, studentID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load score"})
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No approved mark for this student"})
	}

	return c.JSON(fiber.Map{
		"exam_id":    examID,
		"student_id": studentID,
		"score":      score,
		"is_absent":  score == nil,
	})
}
