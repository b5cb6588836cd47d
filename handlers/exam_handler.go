package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ssemakula/marksheet/database"
	"github.com/ssemakula/marksheet/models"
)

type ExamRequest struct {
	Name      string     `json:"name" validate:"required"`
	SectionID string     `json:"section_id" validate:"required,uuid"`
	SubjectID string     `json:"subject_id" validate:"required,uuid"`
	MaxScore  int        `json:"max_score" validate:"required,gt=0"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
}

func CreateExam(c *fiber.Ctx) error {
	var req ExamRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	sectionID, _ := uuid.Parse(req.SectionID)
	subjectID, _ := uuid.Parse(req.SubjectID)

	var section models.Section
	if err := database.DB.First(&section, "id = ?", sectionID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Section not found"})
	}
	var subject models.Subject
	if err := database.DB.First(&subject, "id = ?", subjectID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Subject not found"})
	}

	exam := models.Exam{
		Name:      req.Name,
		SectionID: sectionID,
		SubjectID: subjectID,
		MaxScore:  req.MaxScore,
		IsActive:  true,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
	}
	if err := database.DB.Create(&exam).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create exam"})
	}

	return c.Status(fiber.StatusCreated).JSON(exam)
}

func ListExams(c *fiber.Ctx) error {
	var exams []models.Exam
	database.DB.Preload("Section").Preload("Subject").Order("created_at desc").Find(&exams)
	return c.JSON(exams)
}

func GetExam(c *fiber.Ctx) error {
	examID := c.Params("examId")
	var exam models.Exam
	if err := database.DB.Preload("Section").Preload("Subject").First(&exam, "id = ?", examID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exam not found"})
	}
	return c.JSON(exam)
}

type UpdateExamRequest struct {
	Name     string     `json:"name" validate:"required"`
	MaxScore int        `json:"max_score" validate:"required,gt=0"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

// UpdateExam edits the definition. MaxScore changes are refused once any
// marks exist, otherwise previously valid scores could fall out of range.
func UpdateExam(c *fiber.Ctx) error {
	examID := c.Params("examId")
	var exam models.Exam
	if err := database.DB.First(&exam, "id = ?", examID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exam not found"})
	}

	var req UpdateExamRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.MaxScore != exam.MaxScore {
		var count int64
		database.DB.Model(&models.MarkRecord{}).Where("exam_id = ?", exam.ID).Count(&count)
		if count > 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Cannot change max score after marks have been entered"})
		}
	}

	exam.Name = req.Name
	exam.MaxScore = req.MaxScore
	exam.StartsAt = req.StartsAt
	exam.EndsAt = req.EndsAt
	if err := database.DB.Save(&exam).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update exam"})
	}

	return c.JSON(exam)
}

// DeactivateExam closes the exam for mark entry. Records stay reviewable.
func DeactivateExam(c *fiber.Ctx) error {
	examID := c.Params("examId")
	var exam models.Exam
	if err := database.DB.First(&exam, "id = ?", examID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exam not found"})
	}

	exam.IsActive = false
	if err := database.DB.Save(&exam).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to deactivate exam"})
	}

	return c.JSON(exam)
}
