package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ammarakk/todo-backend/internal/auth/dto"
	"github.com/ammarakk/todo-backend/internal/auth/service"
	apperr "github.com/ammarakk/todo-backend/internal/errors"
	"github.com/ammarakk/todo-backend/internal/obs"
)

type AuthHandler struct {
	userService *service.UserService
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			apperr.NewErrorResponse("bad_request", "invalid request body"))
	}

	if details := input.Validate(); len(details) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(
			apperr.NewErrorResponse("validation_error", "validation failed", details...))
	}

	user, err := h.userService.Register(c.Context(), input)
	if err != nil {
		if errors.Is(err, apperr.ErrEmailAlreadyInUse) {
			obs.ObserveAuth("register", "email_already_exists")
			return c.Status(fiber.StatusConflict).JSON(
				apperr.NewErrorResponse("email_already_exists", "email already registered"))
		}
		obs.ObserveAuth("register", "error")
		return internalError(c)
	}

	obs.ObserveAuth("register", "success")
	return c.Status(fiber.StatusCreated).JSON(dto.NewUserOutput(user))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			apperr.NewErrorResponse("bad_request", "invalid request body"))
	}

	tokens, err := h.userService.Login(c.Context(), input)
	if err != nil {
		obs.ObserveAuth("login", outcomeFor(err))
		if errors.Is(err, apperr.ErrInvalidCredentials) {
			return unauthorized(c)
		}
		return internalError(c)
	}

	obs.ObserveAuth("login", "success")
	return c.Status(fiber.StatusOK).JSON(tokens)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input dto.RefreshInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			apperr.NewErrorResponse("bad_request", "invalid request body"))
	}

	tokens, err := h.userService.Refresh(c.Context(), input)
	if err != nil {
		obs.ObserveAuth("refresh", outcomeFor(err))
		if isAuthFailure(err) {
			return unauthorized(c)
		}
		return internalError(c)
	}

	obs.ObserveAuth("refresh", "success")
	return c.Status(fiber.StatusOK).JSON(tokens)
}

// Logout always reports success for a well-formed request, whatever the
// token's state.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var input dto.LogoutInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			apperr.NewErrorResponse("bad_request", "invalid request body"))
	}

	h.userService.Logout(c.Context(), input)

	obs.ObserveAuth("logout", "success")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "logged out"})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := CurrentUser(c)
	if user == nil {
		return unauthorized(c)
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewUserOutput(user))
}

func (h *AuthHandler) ForceLogout(c *fiber.Ctx) error {
	userID := c.Params("id")
	if err := h.userService.ForceLogout(c.Context(), userID); err != nil {
		return internalError(c)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "sessions revoked"})
}

// unauthorized writes the single generic authentication failure. The internal
// kind stays in the logs and metrics.
func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(
		apperr.NewErrorResponse("unauthorized", "authentication failed"))
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(
		apperr.NewErrorResponse("internal_error", "internal server error"))
}

func isAuthFailure(err error) bool {
	return errors.Is(err, apperr.ErrInvalidToken) ||
		errors.Is(err, apperr.ErrInvalidRefreshToken) ||
		errors.Is(err, apperr.ErrRefreshTokenExpired) ||
		errors.Is(err, apperr.ErrInvalidCredentials) ||
		errors.Is(err, apperr.ErrUserNotFound)
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, apperr.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, apperr.ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, apperr.ErrInvalidRefreshToken):
		return "invalid_refresh_token"
	case errors.Is(err, apperr.ErrRefreshTokenExpired):
		return "expired"
	case errors.Is(err, apperr.ErrUserNotFound):
		return "user_not_found"
	default:
		return "error"
	}
}
