package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	authhandler "github.com/ammarakk/todo-backend/internal/auth/handler"
	apperr "github.com/ammarakk/todo-backend/internal/errors"
	"github.com/ammarakk/todo-backend/internal/todo/domain"
	"github.com/ammarakk/todo-backend/internal/todo/dto"
	"github.com/ammarakk/todo-backend/internal/todo/service"
)

type TodoHandler struct {
	todoService *service.TodoService
}

func NewTodoHandler(todoService *service.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

func (h *TodoHandler) Create(c *fiber.Ctx) error {
	user := authhandler.CurrentUser(c)

	var input dto.CreateTodoInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c)
	}
	if details := input.Validate(); len(details) > 0 {
		return validationFailed(c, details)
	}

	todo, err := h.todoService.Create(c.Context(), user.ID, input)
	if err != nil {
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewTodoOutput(todo))
}

func (h *TodoHandler) List(c *fiber.Ctx) error {
	user := authhandler.CurrentUser(c)

	filter := domain.Filter{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Category: c.Query("category"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}

	page, err := h.todoService.List(c.Context(), user.ID, filter)
	if err != nil {
		return internalError(c)
	}

	return c.Status(fiber.StatusOK).JSON(page)
}

func (h *TodoHandler) Get(c *fiber.Ctx) error {
	user := authhandler.CurrentUser(c)

	todo, err := h.todoService.Get(c.Context(), user.ID, c.Params("id"))
	if err != nil {
		return todoError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewTodoOutput(todo))
}

func (h *TodoHandler) Update(c *fiber.Ctx) error {
	user := authhandler.CurrentUser(c)

	var input dto.UpdateTodoInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c)
	}
	if details := input.Validate(); len(details) > 0 {
		return validationFailed(c, details)
	}

	todo, err := h.todoService.Update(c.Context(), user.ID, c.Params("id"), input)
	if err != nil {
		return todoError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewTodoOutput(todo))
}

func (h *TodoHandler) Delete(c *fiber.Ctx) error {
	user := authhandler.CurrentUser(c)

	if err := h.todoService.Delete(c.Context(), user.ID, c.Params("id")); err != nil {
		return todoError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "todo deleted"})
}

func (h *TodoHandler) MarkComplete(c *fiber.Ctx) error {
	user := authhandler.CurrentUser(c)

	todo, err := h.todoService.MarkComplete(c.Context(), user.ID, c.Params("id"))
	if err != nil {
		return todoError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewTodoOutput(todo))
}

func todoError(c *fiber.Ctx, err error) error {
	if errors.Is(err, apperr.ErrTodoNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(
			apperr.NewErrorResponse("not_found", "todo not found"))
	}
	return internalError(c)
}

func badRequest(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(
		apperr.NewErrorResponse("bad_request", "invalid request body"))
}

func validationFailed(c *fiber.Ctx, details []apperr.ErrorDetail) error {
	return c.Status(fiber.StatusBadRequest).JSON(
		apperr.NewErrorResponse("validation_error", "validation failed", details...))
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(
		apperr.NewErrorResponse("internal_error", "internal server error"))
}
