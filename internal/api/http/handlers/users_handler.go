package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/ashutosh-050/sweet-shop-service/internal/api/dto"
	"github.com/ashutosh-050/sweet-shop-service/internal/service"
	apperrors "github.com/ashutosh-050/sweet-shop-service/pkg/util"
)

// UsersHandler exposes auth and user administration endpoints.
type UsersHandler struct {
	auth              *service.AuthService
	exposeResetTokens bool
}

// NewUsersHandler constructs handler. exposeResetTokens controls whether
// password reset tokens are echoed in the response; it must be false in
// production.
func NewUsersHandler(authService *service.AuthService, exposeResetTokens bool) *UsersHandler {
	return &UsersHandler{auth: authService, exposeResetTokens: exposeResetTokens}
}

// Register handles POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, token, _, err := h.auth.Register(c.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.AuthResponse{
		Token:    token,
		Role:     user.Role,
		Username: user.Username,
	})
}

// Login handles POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, token, _, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{
		Token:    token,
		Role:     user.Role,
		Username: user.Username,
	})
}

// ListAll handles GET /auth/all (admin only).
func (h *UsersHandler) ListAll(c *fiber.Ctx) error {
	users, err := h.auth.ListUsers(c.Context())
	if err != nil {
		return err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.UserResponse{
			ID:        users[i].ID,
			Username:  users[i].Username,
			Email:     users[i].Email,
			Role:      users[i].Role,
			CreatedAt: users[i].CreatedAt,
		})
	}
	return c.JSON(items)
}

// Promote handles PATCH /auth/promote/:id (admin only).
func (h *UsersHandler) Promote(c *fiber.Ctx) error {
	user, err := h.auth.Promote(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("%s is now an admin", user.Username),
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

// RequestPasswordReset handles POST /auth/password/reset/request.
func (h *UsersHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	token, err := h.auth.RequestPasswordReset(c.Context(), req.Email)
	if err != nil {
		return err
	}

	response := fiber.Map{
		"message":    "password reset token issued",
		"expires_at": token.ExpiresAt,
	}
	// the notification channel is a logging stub; outside production the
	// token is echoed so the flow can be exercised end to end
	if h.exposeResetTokens {
		response["token"] = token.Token
	}
	return c.JSON(response)
}

// ConfirmPasswordReset handles POST /auth/password/reset/confirm.
func (h *UsersHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" {
		return apperrors.NewValidationError("token required", nil)
	}

	if err := h.auth.ConfirmPasswordReset(c.Context(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "password updated"})
}
