package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ssemakula/marksheet/database"
	"github.com/ssemakula/marksheet/services"
)

type ReviewMarksRequest struct {
	RecordIDs    []string `json:"record_ids" validate:"required,min=1,dive,uuid"`
	TargetStatus string   `json:"target_status" validate:"required,oneof=approved rejected"`
}

// ReviewMarks transitions the targeted pending records to approved or
// rejected. Targets already decided come back in the skipped list.
func ReviewMarks(c *fiber.Ctx) error {
	reviewerID := currentUserID(c)

	examID, err := uuid.Parse(c.Params("examId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exam id"})
	}

	var req ReviewMarksRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	recordIDs := make([]uuid.UUID, 0, len(req.RecordIDs))
	for _, raw := range req.RecordIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid record id"})
		}
		recordIDs = append(recordIDs, id)
	}

	result, err := services.ReviewMarks(database.DB, examID, reviewerID, recordIDs, req.TargetStatus)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrExamNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exam not found"})
		case errors.Is(err, services.ErrInvalidTargetStatus):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to review marks"})
	}

	return c.JSON(result)
}

// ApproveAllPending approves every record still pending for the exam.
func ApproveAllPending(c *fiber.Ctx) error {
	reviewerID := currentUserID(c)

	examID, err := uuid.Parse(c.Params("examId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exam id"})
	}

	count, err := services.ApproveAllPending(database.DB, examID, reviewerID)
	if err != nil {
		if errors.Is(err, services.ErrExamNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exam not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to approve marks"})
	}

	return c.JSON(fiber.Map{"transitioned": count})
}

func GetReviewQueue(c *fiber.Ctx) error {
	queue, err := services.GetReviewQueue(database.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load review queue"})
	}
	return c.JSON(queue)
}

// AdminListMarks returns all persisted records for an exam with student
// identity.
func AdminListMarks(c *fiber.Ctx) error {
	examID, err := uuid.Parse(c.Params("examId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exam id"})
	}

	records, err := services.ListMarksForExam(database.DB, examID)
	if err != nil {
		if errors.Is(err, services.ErrExamNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exam not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load marks"})
	}
	return c.JSON(records)
}
