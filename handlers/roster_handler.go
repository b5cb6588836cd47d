package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ssemakula/marksheet/database"
	"github.com/ssemakula/marksheet/models"
	"github.com/ssemakula/marksheet/services"
	"github.com/ssemakula/marksheet/utils"
	"gorm.io/gorm"
)

type StudentRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

func CreateStudent(c *fiber.Ctx) error {
	var req StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var student models.Student
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		admissionNo, err := utils.GenerateUniqueAdmissionNo(tx)
		if err != nil {
			return err
		}
		student = models.Student{
			AdmissionNo: admissionNo,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			IsActive:    true,
		}
		return tx.Create(&student).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create student"})
	}

	return c.Status(fiber.StatusCreated).JSON(student)
}

func ListStudents(c *fiber.Ctx) error {
	var students []models.Student
	database.DB.Order("last_name, first_name").Find(&students)
	return c.JSON(students)
}

type SectionRequest struct {
	Name string `json:"name" validate:"required"`
}

func CreateSection(c *fiber.Ctx) error {
	var req SectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	section := models.Section{Name: req.Name, IsActive: true}
	if err := database.DB.Create(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Section already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create section"})
	}
	return c.Status(fiber.StatusCreated).JSON(section)
}

func ListSections(c *fiber.Ctx) error {
	var sections []models.Section
	database.DB.Order("name").Find(&sections)
	return c.JSON(sections)
}

type SubjectRequest struct {
	Name string `json:"name" validate:"required"`
	Code string `json:"code" validate:"required"`
}

func CreateSubject(c *fiber.Ctx) error {
	var req SubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	subject := models.Subject{Name: req.Name, Code: req.Code}
	if err := database.DB.Create(&subject).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Subject code already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create subject"})
	}
	return c.Status(fiber.StatusCreated).JSON(subject)
}

func ListSubjects(c *fiber.Ctx) error {
	var subjects []models.Subject
	database.DB.Order("code").Find(&subjects)
	return c.JSON(subjects)
}

type EnrollmentRequest struct {
	SectionID string `json:"section_id" validate:"required,uuid"`
	SubjectID string `json:"subject_id" validate:"required,uuid"`
	StudentID string `json:"student_id" validate:"required,uuid"`
	Position  int    `json:"position"`
}

func CreateEnrollment(c *fiber.Ctx) error {
	var req EnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	sectionID, _ := uuid.Parse(req.SectionID)
	subjectID, _ := uuid.Parse(req.SubjectID)
	studentID, _ := uuid.Parse(req.StudentID)

	var student models.Student
	if err := database.DB.First(&student, "id = ?", studentID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Student not found"})
	}

	enrollment := models.Enrollment{
		SectionID: sectionID,
		SubjectID: subjectID,
		StudentID: studentID,
		Position:  req.Position,
	}
	if err := database.DB.Create(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Student is already enrolled"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create enrollment"})
	}
	return c.Status(fiber.StatusCreated).JSON(enrollment)
}

type AssignmentRequest struct {
	TeacherID string `json:"teacher_id" validate:"required,uuid"`
	SectionID string `json:"section_id" validate:"required,uuid"`
	SubjectID string `json:"subject_id" validate:"required,uuid"`
}

func CreateAssignment(c *fiber.Ctx) error {
	var req AssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	teacherID, _ := uuid.Parse(req.TeacherID)
	sectionID, _ := uuid.Parse(req.SectionID)
	subjectID, _ := uuid.Parse(req.SubjectID)

	var teacher models.User
	if err := database.DB.First(&teacher, "id = ? AND role = ?", teacherID, models.RoleTeacher).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Teacher not found"})
	}

	assignment := models.TeacherAssignment{
		TeacherID: teacherID,
		SectionID: sectionID,
		SubjectID: subjectID,
	}
	if err := database.DB.Create(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Assignment already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create assignment"})
	}
	return c.Status(fiber.StatusCreated).JSON(assignment)
}

// GetSectionRoster returns the ordered roster for a section/subject pair.
func GetSectionRoster(c *fiber.Ctx) error {
	sectionID, err := uuid.Parse(c.Params("sectionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid section id"})
	}
	subjectID, err := uuid.Parse(c.Query("subject_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "subject_id is required"})
	}

	roster, err := services.GetRoster(database.DB, sectionID, subjectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load roster"})
	}
	return c.JSON(roster)
}
