package handlers_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ashutosh-050/sweet-shop-service/internal/api/http/handlers"
	"github.com/ashutosh-050/sweet-shop-service/internal/config"
	"github.com/ashutosh-050/sweet-shop-service/internal/domain"
	"github.com/ashutosh-050/sweet-shop-service/internal/mocks"
	"github.com/ashutosh-050/sweet-shop-service/internal/service"
)

func newResetApp(exposeResetTokens bool) *fiber.App {
	users := new(mocks.UserRepository)
	users.On("GetByEmail", mock.Anything, "carol@example.com").
		Return(&domain.User{ID: "user-1", Username: "carol", Email: "carol@example.com"}, nil)

	resets := new(mocks.PasswordResetRepository)
	resets.On("Create", mock.Anything, mock.AnythingOfType("*repository.PasswordResetToken")).Return(nil)

	authService := service.NewAuthService(config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "testsecret",
			TokenTTLMinutes:         180,
			PasswordResetTTLMinutes: 30,
			BcryptCost:              bcrypt.MinCost,
		},
	}, service.AuthDependencies{UserRepo: users, PasswordResetRepo: resets})

	app := fiber.New()
	h := handlers.NewUsersHandler(authService, exposeResetTokens)
	app.Post("/auth/password/reset/request", h.RequestPasswordReset)
	return app
}

func requestReset(t *testing.T, app *fiber.App) map[string]interface{} {
	t.Helper()

	req := httptest.NewRequest("POST", "/auth/password/reset/request",
		strings.NewReader(`{"email":"carol@example.com"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestRequestPasswordResetHidesTokenInProduction(t *testing.T) {
	app := newResetApp(false)

	body := requestReset(t, app)
	assert.Equal(t, "password reset token issued", body["message"])
	assert.NotContains(t, body, "token")
	assert.Contains(t, body, "expires_at")
}

func TestRequestPasswordResetEchoesTokenOutsideProduction(t *testing.T) {
	app := newResetApp(true)

	body := requestReset(t, app)
	token, ok := body["token"].(string)
	require.True(t, ok)
	assert.NotEmpty(t, token)
}
