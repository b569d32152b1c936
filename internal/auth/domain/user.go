package domain

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is one issued refresh token. TokenHash is the SHA-256 of the token
// string; the raw token is never persisted. RevokedAt nil means active.
type Session struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
