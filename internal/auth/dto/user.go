package dto

import (
	"time"

	"github.com/ammarakk/todo-backend/internal/auth/domain"
)

// UserOutput is the public view of a user. The password hash never appears
// in any response shape.
type UserOutput struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewUserOutput(u *domain.User) *UserOutput {
	return &UserOutput{
		ID:         u.ID,
		Email:      u.Email,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

type TokenResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int         `json:"expires_in"`
	User         *UserOutput `json:"user,omitempty"`
}
