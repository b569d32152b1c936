package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ammarakk/todo-backend/pkg/constant"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	auth := app.Group("/api/v1/auth")
	auth.Post("/signup", h.Register)
	auth.Post("/login", h.Login)
	auth.Post("/refresh", h.Refresh)
	auth.Post("/logout", h.Logout)
	auth.Get("/me", h.RequireAuth(), h.Me)

	// Admin-only endpoints
	admin := app.Group("/api/v1/admin", h.RequireAuth(), h.RequireRole(constant.RoleAdmin))
	admin.Delete("/users/:id/sessions", h.ForceLogout)
}
