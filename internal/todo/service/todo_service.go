package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	apperr "github.com/ammarakk/todo-backend/internal/errors"
	"github.com/ammarakk/todo-backend/internal/todo/domain"
	"github.com/ammarakk/todo-backend/internal/todo/dto"
	"github.com/ammarakk/todo-backend/pkg/constant"
)

type TodoService struct {
	repo domain.TodoRepository
}

func NewTodoService(repo domain.TodoRepository) *TodoService {
	return &TodoService{repo: repo}
}

func (s *TodoService) Create(ctx context.Context, userID string, input dto.CreateTodoInput) (*domain.Todo, error) {
	now := time.Now()

	status := input.Status
	if status == "" {
		status = constant.TodoStatusPending
	}
	priority := input.Priority
	if priority == "" {
		priority = constant.TodoPriorityMedium
	}

	todo := &domain.Todo{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     input.DueDate,
		Category:    input.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, err
	}

	return todo, nil
}

func (s *TodoService) List(ctx context.Context, userID string, f domain.Filter) (*dto.PaginatedResponse, error) {
	if f.Page < 1 {
		f.Page = constant.DefaultPage
	}
	if f.PageSize < 1 {
		f.PageSize = constant.DefaultPageSize
	}
	if f.PageSize > constant.MaxPageSize {
		f.PageSize = constant.MaxPageSize
	}

	todos, total, err := s.repo.List(ctx, userID, f)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.TodoOutput, 0, len(todos))
	for _, t := range todos {
		items = append(items, dto.NewTodoOutput(t))
	}

	totalPages := (total + f.PageSize - 1) / f.PageSize

	return &dto.PaginatedResponse{
		Items:      items,
		Total:      total,
		Page:       f.Page,
		PageSize:   f.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *TodoService) Get(ctx context.Context, userID, id string) (*domain.Todo, error) {
	todo, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, apperr.ErrTodoNotFound
	}
	return todo, nil
}

func (s *TodoService) Update(ctx context.Context, userID, id string, input dto.UpdateTodoInput) (*domain.Todo, error) {
	todo, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		todo.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		todo.Description = *input.Description
	}
	if input.Status != nil {
		todo.Status = *input.Status
	}
	if input.Priority != nil {
		todo.Priority = *input.Priority
	}
	if input.DueDate != nil {
		todo.DueDate = input.DueDate
	}
	if input.Category != nil {
		todo.Category = *input.Category
	}
	todo.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, todo); err != nil {
		return nil, err
	}

	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.SoftDelete(ctx, userID, id)
}

func (s *TodoService) MarkComplete(ctx context.Context, userID, id string) (*domain.Todo, error) {
	todo, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	todo.Status = constant.TodoStatusCompleted
	todo.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, todo); err != nil {
		return nil, err
	}

	return todo, nil
}
