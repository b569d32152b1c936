package dto

import (
	"net/mail"
	"strings"

	apperr "github.com/ammarakk/todo-backend/internal/errors"
	"github.com/ammarakk/todo-backend/pkg/constant"
)

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (i *RegisterInput) Validate() []apperr.ErrorDetail {
	var details []apperr.ErrorDetail

	email := strings.TrimSpace(i.Email)
	if email == "" {
		details = append(details, apperr.ErrorDetail{Field: "email", Message: "email is required"})
	} else if _, err := mail.ParseAddress(email); err != nil {
		details = append(details, apperr.ErrorDetail{Field: "email", Message: "email is not a valid address"})
	}

	if len(i.Password) < constant.MinPasswordLength {
		details = append(details, apperr.ErrorDetail{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	return details
}
