package auth

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ashutosh-050/sweet-shop-service/internal/domain"
	"github.com/ashutosh-050/sweet-shop-service/internal/mocks"
	apperrors "github.com/ashutosh-050/sweet-shop-service/pkg/util"
)

func newGateApp(users *mocks.UserRepository, extra ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{
				"code":    de.Code,
				"message": de.Message,
			}})
		},
	})

	m := NewAuthMiddleware(NewTokenManager("testsecret", 180), users)
	chain := append([]fiber.Handler{m.Handle}, extra...)
	chain = append(chain, func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewInternalError(nil)
		}
		return c.JSON(fiber.Map{"username": principal.User.Username})
	})
	app.Get("/protected", chain...)
	return app
}

func gateRequest(t *testing.T, app *fiber.App, authHeader string) (int, string) {
	t.Helper()

	req := httptest.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
		Username string `json:"username"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	if body.Error.Code != "" {
		return resp.StatusCode, body.Error.Code
	}
	return resp.StatusCode, body.Username
}

func TestHandleRejectsMissingHeader(t *testing.T) {
	app := newGateApp(new(mocks.UserRepository))

	status, code := gateRequest(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", code)
}

func TestHandleRejectsMalformedHeader(t *testing.T) {
	app := newGateApp(new(mocks.UserRepository))

	for _, header := range []string{"Bearer", "Token abc", "bogus"} {
		status, code := gateRequest(t, app, header)
		assert.Equal(t, fiber.StatusUnauthorized, status, header)
		assert.Equal(t, "UNAUTHORIZED", code, header)
	}
}

func TestHandleRejectsInvalidToken(t *testing.T) {
	app := newGateApp(new(mocks.UserRepository))

	status, code := gateRequest(t, app, "Bearer not-a-token")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", code)
}

func TestHandleRejectsTokenForDeletedUser(t *testing.T) {
	tm := NewTokenManager("testsecret", 180)
	token, _, err := tm.GenerateToken("user-gone", domain.RoleUser)
	require.NoError(t, err)

	users := new(mocks.UserRepository)
	users.On("GetByID", mock.Anything, "user-gone").Return(nil, pgx.ErrNoRows)

	app := newGateApp(users)
	status, code := gateRequest(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", code)
	users.AssertExpectations(t)
}

func TestHandleLoadsPrincipal(t *testing.T) {
	tm := NewTokenManager("testsecret", 180)
	token, _, err := tm.GenerateToken("user-1", domain.RoleUser)
	require.NoError(t, err)

	users := new(mocks.UserRepository)
	users.On("GetByID", mock.Anything, "user-1").
		Return(&domain.User{ID: "user-1", Username: "eve", Role: domain.RoleUser}, nil)

	app := newGateApp(users)
	status, username := gateRequest(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "eve", username)
}

func TestRequireAdminForbidsNonAdmin(t *testing.T) {
	tm := NewTokenManager("testsecret", 180)
	token, _, err := tm.GenerateToken("user-1", domain.RoleUser)
	require.NoError(t, err)

	users := new(mocks.UserRepository)
	users.On("GetByID", mock.Anything, "user-1").
		Return(&domain.User{ID: "user-1", Username: "eve", Role: domain.RoleUser}, nil)

	app := newGateApp(users, RequireAdmin())
	status, code := gateRequest(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", code)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	tm := NewTokenManager("testsecret", 180)
	token, _, err := tm.GenerateToken("admin-1", domain.RoleAdmin)
	require.NoError(t, err)

	users := new(mocks.UserRepository)
	users.On("GetByID", mock.Anything, "admin-1").
		Return(&domain.User{ID: "admin-1", Username: "alice", Role: domain.RoleAdmin}, nil)

	app := newGateApp(users, RequireAdmin())
	status, username := gateRequest(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "alice", username)
}

func TestRequireAdminWithoutPrincipal(t *testing.T) {
	// route misconfigured without the auth middleware in front
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{"code": de.Code}})
		},
	})
	app.Get("/admin", RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
