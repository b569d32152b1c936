package dto

import (
	"strings"
	"time"

	apperr "github.com/ammarakk/todo-backend/internal/errors"
	"github.com/ammarakk/todo-backend/internal/todo/domain"
	"github.com/ammarakk/todo-backend/pkg/constant"
)

type CreateTodoInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	Category    string     `json:"category"`
}

func (i *CreateTodoInput) Validate() []apperr.ErrorDetail {
	var details []apperr.ErrorDetail

	title := strings.TrimSpace(i.Title)
	if title == "" {
		details = append(details, apperr.ErrorDetail{Field: "title", Message: "title is required"})
	} else if len(title) > constant.MaxTitleLength {
		details = append(details, apperr.ErrorDetail{Field: "title", Message: "title must be at most 255 characters"})
	}

	if i.Status != "" && !validStatus(i.Status) {
		details = append(details, apperr.ErrorDetail{Field: "status", Message: "status must be pending, in_progress or completed"})
	}
	if i.Priority != "" && !validPriority(i.Priority) {
		details = append(details, apperr.ErrorDetail{Field: "priority", Message: "priority must be low, medium or high"})
	}

	return details
}

// UpdateTodoInput carries a partial update; nil fields are left untouched.
type UpdateTodoInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	Category    *string    `json:"category"`
}

func (i *UpdateTodoInput) Validate() []apperr.ErrorDetail {
	var details []apperr.ErrorDetail

	if i.Title != nil {
		title := strings.TrimSpace(*i.Title)
		if title == "" {
			details = append(details, apperr.ErrorDetail{Field: "title", Message: "title cannot be empty"})
		} else if len(title) > constant.MaxTitleLength {
			details = append(details, apperr.ErrorDetail{Field: "title", Message: "title must be at most 255 characters"})
		}
	}
	if i.Status != nil && !validStatus(*i.Status) {
		details = append(details, apperr.ErrorDetail{Field: "status", Message: "status must be pending, in_progress or completed"})
	}
	if i.Priority != nil && !validPriority(*i.Priority) {
		details = append(details, apperr.ErrorDetail{Field: "priority", Message: "priority must be low, medium or high"})
	}

	return details
}

type TodoOutput struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Category    string     `json:"category,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewTodoOutput(t *domain.Todo) *TodoOutput {
	return &TodoOutput{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		Category:    t.Category,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

type PaginatedResponse struct {
	Items      []*TodoOutput `json:"items"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

func validStatus(s string) bool {
	return s == constant.TodoStatusPending || s == constant.TodoStatusInProgress || s == constant.TodoStatusCompleted
}

func validPriority(p string) bool {
	return p == constant.TodoPriorityLow || p == constant.TodoPriorityMedium || p == constant.TodoPriorityHigh
}
