package domain

import "context"

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/ammarakk/todo-backend/internal/auth/domain UserRepository

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error

	StoreSession(ctx context.Context, s *Session) error
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (*Session, error)
	RevokeSession(ctx context.Context, sessionID string) error
	RevokeAllForUser(ctx context.Context, userID string) error
	// RotateSession revokes the old session and stores its replacement in a
	// single transaction. Returns ErrSessionRevoked when the old session was
	// already revoked, which callers treat as replay detection.
	RotateSession(ctx context.Context, oldSessionID string, newSession *Session) error
}
