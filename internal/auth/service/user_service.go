package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ammarakk/todo-backend/config"
	"github.com/ammarakk/todo-backend/internal/auth/domain"
	"github.com/ammarakk/todo-backend/internal/auth/dto"
	apperr "github.com/ammarakk/todo-backend/internal/errors"
	"github.com/ammarakk/todo-backend/pkg/constant"
)

// UserService orchestrates the refresh token lifecycle: a session is issued
// on login, rotated on every refresh, and ends up revoked, rotated or
// expired. A rotated or revoked token presented again is replay.
type UserService struct {
	repo         domain.UserRepository
	tokenService TokenGenerator
	cfg          *config.Config
}

func NewUserService(repo domain.UserRepository, tokenService TokenGenerator, cfg *config.Config) *UserService {
	return &UserService{
		repo:         repo,
		tokenService: tokenService,
		cfg:          cfg,
	}
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*domain.User, error) {
	// Email comparison is case-insensitive: normalize once at the boundary.
	email := strings.ToLower(strings.TrimSpace(input.Email))

	existingUser, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, apperr.ErrEmailAlreadyInUse
	}

	hashedPassword, err := HashPassword(input.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         constant.RoleUser,
		IsVerified:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	// Unknown email and wrong password collapse into the same failure so the
	// response cannot be used to enumerate accounts.
	if user == nil || !VerifyPassword(user.PasswordHash, input.Password) {
		return nil, apperr.ErrInvalidCredentials
	}

	pair, err := s.tokenService.Generate(user)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &domain.Session{
		ID:        pair.SessionID,
		UserID:    user.ID,
		TokenHash: HashRefreshToken(pair.RefreshToken),
		ExpiresAt: pair.RefreshExpiresAt,
		CreatedAt: now,
	}

	if err := s.repo.StoreSession(ctx, session); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int(s.tokenService.GetAccessTokenExpiry().Seconds()),
		User:         dto.NewUserOutput(user),
	}, nil
}

func (s *UserService) Refresh(ctx context.Context, input dto.RefreshInput) (*dto.TokenResponse, error) {
	// Step 1: the token itself must be well-formed, signed and of type refresh.
	if _, err := s.tokenService.VerifyRefreshToken(input.RefreshToken); err != nil {
		log.Printf("refresh rejected: %v", err)
		return nil, apperr.ErrInvalidToken
	}

	// Step 2: find the backing session. Not-found and already-revoked are
	// deliberately indistinguishable to the caller.
	session, err := s.repo.GetSessionByTokenHash(ctx, HashRefreshToken(input.RefreshToken))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperr.ErrInvalidRefreshToken
	}

	// Step 3: expiry is checked lazily, here, so it can be reported as its
	// own kind for logging. The hash lookup already excludes revoked rows, so
	// an inactive session at this point means expiry.
	if !session.Active(time.Now()) {
		if err := s.repo.RevokeSession(ctx, session.ID); err != nil {
			log.Printf("warn: failed to revoke expired session %s: %v", session.ID, err)
		}
		return nil, apperr.ErrRefreshTokenExpired
	}

	user, err := s.repo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.ErrUserNotFound
	}

	pair, err := s.tokenService.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate new tokens: %w", err)
	}

	newSession := &domain.Session{
		ID:        pair.SessionID,
		UserID:    user.ID,
		TokenHash: HashRefreshToken(pair.RefreshToken),
		ExpiresAt: pair.RefreshExpiresAt,
		CreatedAt: time.Now(),
	}

	// Step 4: rotation is one atomic unit. A concurrent refresh on the same
	// token loses the race inside the transaction and surfaces here as
	// ErrSessionRevoked.
	if err := s.repo.RotateSession(ctx, session.ID, newSession); err != nil {
		if errors.Is(err, apperr.ErrSessionRevoked) {
			log.Printf("refresh replay detected for session %s", session.ID)
			return nil, apperr.ErrInvalidRefreshToken
		}
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int(s.tokenService.GetAccessTokenExpiry().Seconds()),
		User:         dto.NewUserOutput(user),
	}, nil
}

// Logout is best-effort: whatever state the token is in, the client sees
// success. Anything else would leak token validity and break idempotency.
func (s *UserService) Logout(ctx context.Context, input dto.LogoutInput) {
	claims, err := s.tokenService.VerifyRefreshToken(input.RefreshToken)
	if err != nil {
		log.Printf("logout with unusable token: %v", err)
		return
	}

	if input.Everywhere {
		if err := s.repo.RevokeAllForUser(ctx, claims.Subject); err != nil {
			log.Printf("warn: logout-everywhere for user %s: %v", claims.Subject, err)
		}
		return
	}

	session, err := s.repo.GetSessionByTokenHash(ctx, HashRefreshToken(input.RefreshToken))
	if err != nil || session == nil {
		return
	}
	if err := s.repo.RevokeSession(ctx, session.ID); err != nil {
		log.Printf("warn: failed to revoke session %s: %v", session.ID, err)
	}
}

// ResolveCurrentUser verifies an access token and loads its subject. A valid
// signature does not imply the user still exists.
func (s *UserService) ResolveCurrentUser(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := s.tokenService.VerifyAccessToken(accessToken)
	if err != nil {
		log.Printf("access token rejected: %v", err)
		return nil, apperr.ErrInvalidToken
	}

	user, err := s.repo.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.ErrUserNotFound
	}

	return user, nil
}

// ForceLogout revokes every active session of a user. Used by the admin
// surface.
func (s *UserService) ForceLogout(ctx context.Context, userID string) error {
	return s.repo.RevokeAllForUser(ctx, userID)
}
