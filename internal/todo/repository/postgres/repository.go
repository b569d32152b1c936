package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperr "github.com/ammarakk/todo-backend/internal/errors"
	"github.com/ammarakk/todo-backend/internal/todo/domain"
)

// DBTX is the subset of pgxpool.Pool the repository needs; pgxmock satisfies
// it in tests.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DBTX
}

func NewPostgresRepository(db DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const todoColumns = `id, user_id, title, description, status, priority, due_date, category, created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, t *domain.Todo) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO todos (id, user_id, title, description, status, priority, due_date, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, t.ID, t.UserID, t.Title, t.Description, t.Status, t.Priority,
		t.DueDate, t.Category, t.CreatedAt, t.UpdatedAt)
	return err
}

// List returns one page of the user's todos plus the unpaginated total.
// Conditions are built once and shared by the count and page queries.
func (r *PostgresRepository) List(ctx context.Context, userID string, f domain.Filter) ([]*domain.Todo, int, error) {
	conds := []string{"user_id = $1", "deleted_at IS NULL"}
	args := []any{userID}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", n, n))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Priority != "" {
		args = append(args, f.Priority)
		conds = append(conds, fmt.Sprintf("priority = $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}

	where := strings.Join(conds, " AND ")

	var total int
	countQuery := "SELECT count(*) FROM todos WHERE " + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count todos: %w", err)
	}

	offset := (f.Page - 1) * f.PageSize
	args = append(args, f.PageSize, offset)
	pageQuery := fmt.Sprintf(
		"SELECT %s FROM todos WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		todoColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, pageQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	var todos []*domain.Todo
	for rows.Next() {
		var t domain.Todo
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status,
			&t.Priority, &t.DueDate, &t.Category, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return todos, total, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*domain.Todo, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM todos
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
		LIMIT 1;
	`, todoColumns)
	row := r.db.QueryRow(ctx, query, id, userID)

	var t domain.Todo
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status,
		&t.Priority, &t.DueDate, &t.Category, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	return &t, nil
}

func (r *PostgresRepository) Update(ctx context.Context, t *domain.Todo) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE todos
		SET title = $1, description = $2, status = $3, priority = $4,
		    due_date = $5, category = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9 AND deleted_at IS NULL
	`, t.Title, t.Description, t.Status, t.Priority, t.DueDate, t.Category,
		t.UpdatedAt, t.ID, t.UserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrTodoNotFound
	}
	return nil
}

func (r *PostgresRepository) SoftDelete(ctx context.Context, userID, id string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE todos SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrTodoNotFound
	}
	return nil
}
