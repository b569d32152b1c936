package domain

import (
	"context"
	"time"
)

type Todo struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     *time.Time
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// Filter narrows a listing. Zero-value fields are not applied.
type Filter struct {
	Search   string
	Status   string
	Priority string
	Category string
	Page     int
	PageSize int
}

//go:generate mockgen -destination=../../mocks/mock_todo_repository.go -package=mocks github.com/ammarakk/todo-backend/internal/todo/domain TodoRepository

// TodoRepository persists todos. Every method scopes by owner: a todo the
// user does not own behaves exactly like one that does not exist. Soft
// deleted rows are invisible to all methods.
type TodoRepository interface {
	Create(ctx context.Context, t *Todo) error
	List(ctx context.Context, userID string, f Filter) ([]*Todo, int, error)
	GetByID(ctx context.Context, userID, id string) (*Todo, error)
	Update(ctx context.Context, t *Todo) error
	SoftDelete(ctx context.Context, userID, id string) error
}
