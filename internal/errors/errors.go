package errors

import (
	"errors"
)

// Service-level error kinds. Handlers translate these into HTTP responses;
// the distinction between the token failure kinds is for logging only and
// must never reach the client verbatim.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailAlreadyInUse   = errors.New("email already in use")
	ErrInvalidToken        = errors.New("invalid token")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrSessionRevoked      = errors.New("session already revoked")
	ErrUserNotFound        = errors.New("user not found")
	ErrTodoNotFound        = errors.New("todo not found")
	ErrForbidden           = errors.New("forbidden")
)

// ErrorDetail is a single per-field validation failure.
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

func NewErrorResponse(code, message string, details ...ErrorDetail) ErrorResponse {
	return ErrorResponse{Code: code, Message: message, Details: details}
}
