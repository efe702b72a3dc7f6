package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/ashutosh-050/sweet-shop-service/internal/api/dto"
	"github.com/ashutosh-050/sweet-shop-service/internal/auth"
	"github.com/ashutosh-050/sweet-shop-service/internal/domain"
	"github.com/ashutosh-050/sweet-shop-service/internal/service"
	apperrors "github.com/ashutosh-050/sweet-shop-service/pkg/util"
)

// OrdersHandler manages the order endpoints.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orderService *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orderService}
}

// Create handles POST /orders: the purchase flow.
func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("unauthorized")
	}

	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	order, err := h.orders.Purchase(c.Context(), principal.User.ID, req.SweetID, req.Quantity)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Order placed successfully",
		"order":   dto.NewOrderResponse(order),
	})
}

// ListMine handles GET /orders: the caller's orders, newest first.
func (h *OrdersHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("unauthorized")
	}

	orders, err := h.orders.ListForUser(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(orderResponses(orders))
}

// ListRecent handles GET /orders/all: the 10 most recent orders across users.
func (h *OrdersHandler) ListRecent(c *fiber.Ctx) error {
	orders, err := h.orders.ListRecent(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(orderResponses(orders))
}

func orderResponses(orders []domain.Order) []dto.OrderResponse {
	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, dto.NewOrderResponse(&orders[i]))
	}
	return items
}
