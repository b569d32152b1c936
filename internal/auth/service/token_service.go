package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/ammarakk/todo-backend/internal/auth/service TokenGenerator

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ammarakk/todo-backend/internal/auth/domain"
	"github.com/ammarakk/todo-backend/pkg/constant"
)

type TokenGenerator interface {
	Generate(user *domain.User) (*TokenPair, error)
	VerifyAccessToken(tokenString string) (*JWTCustomClaims, error)
	VerifyRefreshToken(tokenString string) (*JWTCustomClaims, error)
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
}

// TokenPair carries one freshly issued access/refresh token pair. SessionID
// is the refresh token's jti and doubles as the primary key of the session
// row that backs it.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	SessionID        string
	RefreshExpiresAt time.Time
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	TokenType string `json:"type"`
}

// TokenService signs and verifies HS256 tokens with a single shared secret.
// The type claim separates access from refresh tokens so a refresh token can
// never act as a bearer credential.
type TokenService struct {
	Secret             string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

func NewTokenService(secret string, accessMinutes, refreshMinutes int) *TokenService {
	return &TokenService{
		Secret:             secret,
		AccessTokenExpiry:  time.Duration(accessMinutes) * time.Minute,
		RefreshTokenExpiry: time.Duration(refreshMinutes) * time.Minute,
	}
}

func (ts *TokenService) Generate(user *domain.User) (*TokenPair, error) {
	now := time.Now()
	sessionID := uuid.NewString()
	refreshExpiresAt := now.Add(ts.RefreshTokenExpiry)

	accessClaims := JWTCustomClaims{
		Email:     user.Email,
		Role:      user.Role,
		TokenType: constant.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	refreshClaims := JWTCustomClaims{
		TokenType: constant.TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(refreshExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(ts.Secret))
	if err != nil {
		return nil, err
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(ts.Secret))
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		SessionID:        sessionID,
		RefreshExpiresAt: refreshExpiresAt,
	}, nil
}

func (ts *TokenService) GetAccessTokenExpiry() time.Duration {
	return ts.AccessTokenExpiry
}

func (ts *TokenService) GetRefreshTokenExpiry() time.Duration {
	return ts.RefreshTokenExpiry
}

// VerifyAccessToken parses and validates the given access token string.
func (ts *TokenService) VerifyAccessToken(tokenString string) (*JWTCustomClaims, error) {
	return ts.verify(tokenString, constant.TokenTypeAccess)
}

// VerifyRefreshToken parses and validates the given refresh token string.
func (ts *TokenService) VerifyRefreshToken(tokenString string) (*JWTCustomClaims, error) {
	return ts.verify(tokenString, constant.TokenTypeRefresh)
}

func (ts *TokenService) verify(tokenString, expectedType string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	// A validly signed token of the wrong kind is still rejected.
	if claims.TokenType != expectedType {
		return nil, fmt.Errorf("unexpected token type %q, want %q", claims.TokenType, expectedType)
	}

	return claims, nil
}
