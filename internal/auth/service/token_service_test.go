package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammarakk/todo-backend/internal/auth/domain"
	"github.com/ammarakk/todo-backend/pkg/constant"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testUser() *domain.User {
	return &domain.User{
		ID:    "user-123",
		Email: "test@example.com",
		Role:  constant.RoleUser,
	}
}

func TestNewTokenService(t *testing.T) {
	ts := NewTokenService(testSecret, 15, 10080)

	assert.NotNil(t, ts)
	assert.Equal(t, testSecret, ts.Secret)
	assert.Equal(t, 15*time.Minute, ts.AccessTokenExpiry)
	assert.Equal(t, 10080*time.Minute, ts.RefreshTokenExpiry)
}

func TestTokenService_Generate(t *testing.T) {
	ts := NewTokenService(testSecret, 15, 10080)
	user := testUser()

	beforeGenerate := time.Now()
	pair, err := ts.Generate(user)
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.NotEmpty(t, pair.SessionID)

	// Verify access token claims
	accessClaims := &JWTCustomClaims{}
	accessParsed, err := jwt.ParseWithClaims(pair.AccessToken, accessClaims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, accessParsed.Valid)
	assert.Equal(t, user.ID, accessClaims.Subject)
	assert.Equal(t, user.Email, accessClaims.Email)
	assert.Equal(t, user.Role, accessClaims.Role)
	assert.Equal(t, constant.TokenTypeAccess, accessClaims.TokenType)

	// Verify refresh token claims
	refreshClaims := &JWTCustomClaims{}
	refreshParsed, err := jwt.ParseWithClaims(pair.RefreshToken, refreshClaims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, refreshParsed.Valid)
	assert.Equal(t, user.ID, refreshClaims.Subject)
	assert.Equal(t, pair.SessionID, refreshClaims.ID)
	assert.Equal(t, constant.TokenTypeRefresh, refreshClaims.TokenType)
	// The refresh token carries no user profile claims.
	assert.Empty(t, refreshClaims.Email)
	assert.Empty(t, refreshClaims.Role)

	assert.True(t, accessClaims.ExpiresAt.Time.After(beforeGenerate))
	assert.True(t, refreshClaims.ExpiresAt.Time.After(accessClaims.ExpiresAt.Time))
	assert.WithinDuration(t, beforeGenerate.Add(ts.RefreshTokenExpiry), pair.RefreshExpiresAt, time.Second)
}

func TestTokenService_Generate_UniquePairs(t *testing.T) {
	ts := NewTokenService(testSecret, 15, 10080)
	user := testUser()

	first, err := ts.Generate(user)
	require.NoError(t, err)
	second, err := ts.Generate(user)
	require.NoError(t, err)

	// A fresh jti guarantees the refresh tokens differ even within one clock
	// second.
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.NotEqual(t, first.SessionID, second.SessionID)
}

func TestTokenService_Verify(t *testing.T) {
	ts := NewTokenService(testSecret, 15, 10080)
	pair, err := ts.Generate(testUser())
	require.NoError(t, err)

	t.Run("valid access token", func(t *testing.T) {
		claims, err := ts.VerifyAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.Subject)
	})

	t.Run("valid refresh token", func(t *testing.T) {
		claims, err := ts.VerifyRefreshToken(pair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, pair.SessionID, claims.ID)
	})

	t.Run("refresh token rejected where access expected", func(t *testing.T) {
		_, err := ts.VerifyAccessToken(pair.RefreshToken)
		assert.Error(t, err)
	})

	t.Run("access token rejected where refresh expected", func(t *testing.T) {
		_, err := ts.VerifyRefreshToken(pair.AccessToken)
		assert.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := ts.VerifyAccessToken("not-a-jwt")
		assert.Error(t, err)
	})
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	ts := NewTokenService(testSecret, 15, 10080)
	other := NewTokenService("ffffffffffffffffffffffffffffffff", 15, 10080)

	pair, err := other.Generate(testUser())
	require.NoError(t, err)

	// Claim content is irrelevant when the signature does not check out.
	_, err = ts.VerifyAccessToken(pair.AccessToken)
	assert.Error(t, err)
	_, err = ts.VerifyRefreshToken(pair.RefreshToken)
	assert.Error(t, err)
}

func TestTokenService_Verify_Expired(t *testing.T) {
	ts := NewTokenService(testSecret, -1, -1)

	pair, err := ts.Generate(testUser())
	require.NoError(t, err)

	_, err = ts.VerifyAccessToken(pair.AccessToken)
	assert.Error(t, err)
	_, err = ts.VerifyRefreshToken(pair.RefreshToken)
	assert.Error(t, err)
}
