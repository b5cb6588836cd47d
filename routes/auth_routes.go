package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ssemakula/marksheet/handlers"
	"github.com/ssemakula/marksheet/middleware"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/login", handlers.LoginUser)

	users := api.Group("/admin/users", middleware.Protected(), middleware.AdminRequired())
	users.Post("", handlers.CreateUser)
}
