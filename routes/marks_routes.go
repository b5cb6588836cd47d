package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ssemakula/marksheet/handlers"
	"github.com/ssemakula/marksheet/middleware"
)

func MarksRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	teacher := api.Group("/teacher", middleware.Protected(), middleware.TeacherRequired())
	teacher.Get("/exams", handlers.ListTeacherExams)
	teacher.Post("/exams/:examId/marks", handlers.SubmitMarks)

	// Entry sheet is shared: teachers load it to enter marks, admins to read.
	sheets := api.Group("/exams", middleware.Protected(), middleware.StaffRequired())
	sheets.Get("/:examId/marks", handlers.GetEntrySheet)
	sheets.Get("/:examId/students/:studentId/approved-score", handlers.GetApprovedScore)

	reviews := api.Group("/admin/reviews", middleware.Protected(), middleware.AdminRequired())
	reviews.Get("/queue", handlers.GetReviewQueue)
	reviews.Post("/exams/:examId", handlers.ReviewMarks)
	reviews.Post("/exams/:examId/approve-all", handlers.ApproveAllPending)

	adminMarks := api.Group("/admin/exams", middleware.Protected(), middleware.AdminRequired())
	adminMarks.Get("/:examId/marks", handlers.AdminListMarks)
}
