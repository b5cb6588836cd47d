package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ssemakula/marksheet/handlers"
	"github.com/ssemakula/marksheet/middleware"
)

func RosterRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	students := admin.Group("/students")
	students.Post("", handlers.CreateStudent)
	students.Get("", handlers.ListStudents)

	sections := admin.Group("/sections")
	sections.Post("", handlers.CreateSection)
	sections.Get("", handlers.ListSections)
	sections.Get("/:sectionId/roster", handlers.GetSectionRoster)

	subjects := admin.Group("/subjects")
	subjects.Post("", handlers.CreateSubject)
	subjects.Get("", handlers.ListSubjects)

	admin.Post("/enrollments", handlers.CreateEnrollment)
	admin.Post("/assignments", handlers.CreateAssignment)
}
