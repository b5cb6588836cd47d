package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ssemakula/marksheet/handlers"
	"github.com/ssemakula/marksheet/middleware"
)

func ExamRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	exams := api.Group("/admin/exams", middleware.Protected(), middleware.AdminRequired())
	exams.Post("", handlers.CreateExam)
	exams.Get("", handlers.ListExams)
	exams.Get("/:examId", handlers.GetExam)
	exams.Put("/:examId", handlers.UpdateExam)
	exams.Delete("/:examId", handlers.DeactivateExam)
}
