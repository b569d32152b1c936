package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ammarakk/todo-backend/config"
	"github.com/ammarakk/todo-backend/internal/auth/domain"
	"github.com/ammarakk/todo-backend/internal/auth/dto"
	"github.com/ammarakk/todo-backend/internal/auth/handler"
	"github.com/ammarakk/todo-backend/internal/auth/service"
	"github.com/ammarakk/todo-backend/internal/mocks"
	"github.com/ammarakk/todo-backend/pkg/constant"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestApp(t *testing.T) (*fiber.App, *mocks.MockUserRepository, *service.TokenService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := mocks.NewMockUserRepository(ctrl)
	tokenService := service.NewTokenService(testSecret, 15, 10080)
	cfg := &config.Config{JWTSecret: testSecret, BcryptCost: bcrypt.MinCost}
	userService := service.NewUserService(mockRepo, tokenService, cfg)
	authHandler := handler.NewAuthHandler(userService)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)

	return app, mockRepo, tokenService
}

type testResponse struct {
	Code int
	Body string
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) testResponse {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return testResponse{Code: resp.StatusCode, Body: string(data)}
}

func TestSignup(t *testing.T) {
	app, mockRepo, _ := newTestApp(t)

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().GetByEmail(gomock.Any(), "a@x.com").Return(nil, nil)
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		rec := postJSON(t, app, "/api/v1/auth/signup", dto.RegisterInput{Email: "a@x.com", Password: "password123"})
		assert.Equal(t, fiber.StatusCreated, rec.Code)
		assert.NotContains(t, rec.Body, "password")
	})

	t.Run("validation failure lists fields", func(t *testing.T) {
		rec := postJSON(t, app, "/api/v1/auth/signup", dto.RegisterInput{Email: "not-an-email", Password: "short"})
		assert.Equal(t, fiber.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body, "validation_error")
		assert.Contains(t, rec.Body, "email")
		assert.Contains(t, rec.Body, "password")
	})

	t.Run("duplicate email", func(t *testing.T) {
		existing := &domain.User{ID: "u1", Email: "a@x.com"}
		mockRepo.EXPECT().GetByEmail(gomock.Any(), "a@x.com").Return(existing, nil)

		rec := postJSON(t, app, "/api/v1/auth/signup", dto.RegisterInput{Email: "a@x.com", Password: "password123"})
		assert.Equal(t, fiber.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body, "email_already_exists")
	})
}

func TestLogin_UniformFailure(t *testing.T) {
	app, mockRepo, _ := newTestApp(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{ID: "u1", Email: "a@x.com", PasswordHash: string(hash), Role: constant.RoleUser}

	mockRepo.EXPECT().GetByEmail(gomock.Any(), "nobody@x.com").Return(nil, nil)
	unknownRec := postJSON(t, app, "/api/v1/auth/login", dto.LoginInput{Email: "nobody@x.com", Password: "password123"})

	mockRepo.EXPECT().GetByEmail(gomock.Any(), "a@x.com").Return(user, nil)
	wrongPwRec := postJSON(t, app, "/api/v1/auth/login", dto.LoginInput{Email: "a@x.com", Password: "wrong"})

	// Unknown email and wrong password are byte-identical to the client.
	assert.Equal(t, fiber.StatusUnauthorized, unknownRec.Code)
	assert.Equal(t, fiber.StatusUnauthorized, wrongPwRec.Code)
	assert.Equal(t, unknownRec.Body, wrongPwRec.Body)
}

func TestLogin_Success(t *testing.T) {
	app, mockRepo, _ := newTestApp(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{ID: "u1", Email: "a@x.com", PasswordHash: string(hash), Role: constant.RoleUser}

	mockRepo.EXPECT().GetByEmail(gomock.Any(), "a@x.com").Return(user, nil)
	mockRepo.EXPECT().StoreSession(gomock.Any(), gomock.Any()).Return(nil)

	rec := postJSON(t, app, "/api/v1/auth/login", dto.LoginInput{Email: "a@x.com", Password: "password123"})
	assert.Equal(t, fiber.StatusOK, rec.Code)

	var tokens dto.TokenResponse
	require.NoError(t, json.Unmarshal([]byte(rec.Body), &tokens))
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "bearer", tokens.TokenType)
	assert.Equal(t, 900, tokens.ExpiresIn)
	require.NotNil(t, tokens.User)
	assert.Equal(t, "a@x.com", tokens.User.Email)
	assert.NotContains(t, rec.Body, "password_hash")
}

func TestRefresh_Unauthorized(t *testing.T) {
	app, _, _ := newTestApp(t)

	rec := postJSON(t, app, "/api/v1/auth/refresh", dto.RefreshInput{RefreshToken: "garbage"})
	assert.Equal(t, fiber.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body, "authentication failed")
	// The internal failure kind never leaks.
	assert.NotContains(t, rec.Body, "malformed")
}

func TestLogout_AlwaysSucceeds(t *testing.T) {
	app, _, _ := newTestApp(t)

	first := postJSON(t, app, "/api/v1/auth/logout", dto.LogoutInput{RefreshToken: "garbage"})
	second := postJSON(t, app, "/api/v1/auth/logout", dto.LogoutInput{RefreshToken: "garbage"})

	assert.Equal(t, fiber.StatusOK, first.Code)
	assert.Equal(t, fiber.StatusOK, second.Code)
}

func TestMe(t *testing.T) {
	app, mockRepo, tokenService := newTestApp(t)

	user := &domain.User{ID: "u1", Email: "a@x.com", PasswordHash: "hash", Role: constant.RoleUser}

	t.Run("success", func(t *testing.T) {
		pair, err := tokenService.Generate(user)
		require.NoError(t, err)

		mockRepo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)

		req := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "a@x.com")
		assert.NotContains(t, string(body), "hash")
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/auth/me", nil)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("refresh token rejected as bearer credential", func(t *testing.T) {
		pair, err := tokenService.Generate(user)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired access token", func(t *testing.T) {
		expired := service.NewTokenService(testSecret, -1, 10080)
		pair, err := expired.Generate(user)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("user deleted after issuance", func(t *testing.T) {
		pair, err := tokenService.Generate(user)
		require.NoError(t, err)

		mockRepo.EXPECT().GetByID(gomock.Any(), user.ID).Return(nil, nil)

		req := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestAdminForceLogout(t *testing.T) {
	app, mockRepo, tokenService := newTestApp(t)

	admin := &domain.User{ID: "admin-1", Email: "admin@x.com", Role: constant.RoleAdmin}
	regular := &domain.User{ID: "u1", Email: "a@x.com", Role: constant.RoleUser}

	t.Run("admin revokes a user's sessions", func(t *testing.T) {
		pair, err := tokenService.Generate(admin)
		require.NoError(t, err)

		mockRepo.EXPECT().GetByID(gomock.Any(), admin.ID).Return(admin, nil)
		mockRepo.EXPECT().RevokeAllForUser(gomock.Any(), "u1").Return(nil)

		req := httptest.NewRequest("DELETE", "/api/v1/admin/users/u1/sessions", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		pair, err := tokenService.Generate(regular)
		require.NoError(t, err)

		mockRepo.EXPECT().GetByID(gomock.Any(), regular.ID).Return(regular, nil)

		req := httptest.NewRequest("DELETE", "/api/v1/admin/users/u1/sessions", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	// Expired token on the admin group exercises the shared middleware path.
	t.Run("expired admin token", func(t *testing.T) {
		expired := service.NewTokenService(testSecret, -1, 10080)
		pair, err := expired.Generate(admin)
		require.NoError(t, err)

		req := httptest.NewRequest("DELETE", "/api/v1/admin/users/u1/sessions", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
