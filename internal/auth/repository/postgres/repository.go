package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ammarakk/todo-backend/internal/auth/domain"
	apperr "github.com/ammarakk/todo-backend/internal/errors"
)

// DBTX is the subset of pgxpool.Pool the repository needs. pgxmock satisfies
// it too, so tests run against the same code path.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type PostgresRepository struct {
	db DBTX
}

func NewPostgresRepository(db DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, role, is_verified, created_at, updated_at
		FROM users
		WHERE email = $1
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, email)

	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role,
		&user.IsVerified, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, role, is_verified, created_at, updated_at
		FROM users
		WHERE id = $1
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, id)

	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role,
		&user.IsVerified, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO users (id, email, password_hash, role, is_verified, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, user.ID, user.Email, user.PasswordHash, user.Role, user.IsVerified,
		user.CreatedAt, user.UpdatedAt)

	return err
}

func (r *PostgresRepository) StoreSession(ctx context.Context, s *domain.Session) error {
	query := `INSERT INTO sessions (id, user_id, token_hash, expires_at, created_at)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(ctx, query, s.ID, s.UserID, s.TokenHash, s.ExpiresAt, s.CreatedAt)
	return err
}

// GetSessionByTokenHash returns the active session backing a refresh token,
// or nil when none exists. Expiry is not filtered here: the service layer
// distinguishes expired from revoked.
func (r *PostgresRepository) GetSessionByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	query := `
		SELECT id, user_id, token_hash, expires_at, revoked_at, created_at
		FROM sessions
		WHERE token_hash = $1 AND revoked_at IS NULL
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, tokenHash)

	var session domain.Session
	err := row.Scan(&session.ID, &session.UserID, &session.TokenHash,
		&session.ExpiresAt, &session.RevokedAt, &session.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &session, nil
}

// RevokeSession marks a session revoked. Revoking an already-revoked session
// is a no-op.
func (r *PostgresRepository) RevokeSession(ctx context.Context, sessionID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE sessions SET revoked_at = now()
		WHERE id = $1 AND revoked_at IS NULL
	`, sessionID)
	return err
}

func (r *PostgresRepository) RevokeAllForUser(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE sessions SET revoked_at = now()
		WHERE user_id = $1 AND revoked_at IS NULL
	`, userID)
	return err
}

// RotateSession revokes the presented session and inserts its replacement in
// one transaction. The guarded UPDATE makes concurrent rotations of the same
// token mutually exclusive: the loser sees zero rows and gets
// ErrSessionRevoked.
func (r *PostgresRepository) RotateSession(ctx context.Context, oldSessionID string, newSession *domain.Session) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin rotation: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE sessions SET revoked_at = now()
		WHERE id = $1 AND revoked_at IS NULL
	`, oldSessionID)
	if err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrSessionRevoked
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO sessions (id, user_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, newSession.ID, newSession.UserID, newSession.TokenHash,
		newSession.ExpiresAt, newSession.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to store rotated session: %w", err)
	}

	return tx.Commit(ctx)
}
