package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ammarakk/todo-backend/internal/auth/domain"
	apperr "github.com/ammarakk/todo-backend/internal/errors"
)

const userLocalsKey = "current_user"

// RequireAuth verifies the bearer access token and loads its subject into
// the request context. All failures collapse into one generic 401.
func (h *AuthHandler) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(authz, "Bearer ")
		if !ok || token == "" {
			return unauthorized(c)
		}

		user, err := h.userService.ResolveCurrentUser(c.Context(), token)
		if err != nil {
			return unauthorized(c)
		}

		c.Locals(userLocalsKey, user)
		return c.Next()
	}
}

// RequireRole guards a route group behind a role. Must run after RequireAuth.
func (h *AuthHandler) RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return unauthorized(c)
		}
		if user.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(
				apperr.NewErrorResponse("forbidden", "insufficient permissions"))
		}
		return c.Next()
	}
}

// CurrentUser returns the authenticated user stored by RequireAuth, or nil.
func CurrentUser(c *fiber.Ctx) *domain.User {
	user, _ := c.Locals(userLocalsKey).(*domain.User)
	return user
}
