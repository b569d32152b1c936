package handler

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the todo CRUD surface behind the given auth
// middleware.
func RegisterRoutes(app *fiber.App, h *TodoHandler, requireAuth fiber.Handler) {
	todos := app.Group("/api/v1/todos", requireAuth)
	todos.Post("/", h.Create)
	todos.Get("/", h.List)
	todos.Get("/:id", h.Get)
	todos.Put("/:id", h.Update)
	todos.Delete("/:id", h.Delete)
	todos.Post("/:id/complete", h.MarkComplete)
}
