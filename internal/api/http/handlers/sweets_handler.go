package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/ashutosh-050/sweet-shop-service/internal/api/dto"
	"github.com/ashutosh-050/sweet-shop-service/internal/domain"
	"github.com/ashutosh-050/sweet-shop-service/internal/service"
	apperrors "github.com/ashutosh-050/sweet-shop-service/pkg/util"
)

// SweetsHandler manages catalog endpoints.
type SweetsHandler struct {
	catalog *service.CatalogService
}

// NewSweetsHandler constructs handler.
func NewSweetsHandler(catalogService *service.CatalogService) *SweetsHandler {
	return &SweetsHandler{catalog: catalogService}
}

// Create handles POST /sweets (admin only).
func (h *SweetsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSweetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	sweet, err := h.catalog.Create(c.Context(), service.SweetCreateInput{
		Name:     req.Name,
		Price:    req.Price,
		Stock:    req.Stock,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewSweetResponse(sweet))
}

// List handles GET /sweets.
func (h *SweetsHandler) List(c *fiber.Ctx) error {
	sweets, err := h.catalog.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(sweetResponses(sweets))
}

// Search handles GET /sweets/search?q=.
func (h *SweetsHandler) Search(c *fiber.Ctx) error {
	sweets, err := h.catalog.Search(c.Context(), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(sweetResponses(sweets))
}

// Delete handles DELETE /sweets/:id (admin only).
func (h *SweetsHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Sweet deleted successfully"})
}

// Purchase handles PUT /sweets/:id/purchase (admin only): a direct stock
// decrement without an order record.
func (h *SweetsHandler) Purchase(c *fiber.Ctx) error {
	var req dto.QuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	stock, err := h.catalog.DecrementStock(c.Context(), c.Params("id"), req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Stock updated successfully", "stock": stock})
}

// Restock handles PATCH /sweets/:id/restock (admin only).
func (h *SweetsHandler) Restock(c *fiber.Ctx) error {
	var req dto.QuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	stock, err := h.catalog.Restock(c.Context(), c.Params("id"), req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Stock updated successfully", "stock": stock})
}

func sweetResponses(sweets []domain.Sweet) []dto.SweetResponse {
	items := make([]dto.SweetResponse, 0, len(sweets))
	for i := range sweets {
		items = append(items, dto.NewSweetResponse(&sweets[i]))
	}
	return items
}
