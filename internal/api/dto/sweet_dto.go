package dto

import (
	"time"

	"github.com/ashutosh-050/sweet-shop-service/internal/domain"
)

// CreateSweetRequest payload for new catalog items. Price is a pointer so a
// missing field can be told apart from zero.
type CreateSweetRequest struct {
	Name     string   `json:"name"`
	Price    *float64 `json:"price"`
	Stock    int      `json:"stock"`
	ImageURL *string  `json:"imageUrl"`
}

// QuantityRequest carries a stock adjustment amount.
type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SweetResponse is the catalog item wire form.
type SweetResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	ImageURL  *string   `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewSweetResponse converts the domain model.
func NewSweetResponse(sweet *domain.Sweet) SweetResponse {
	return SweetResponse{
		ID:        sweet.ID,
		Name:      sweet.Name,
		Price:     sweet.Price,
		Stock:     sweet.Stock,
		ImageURL:  sweet.ImageURL,
		CreatedAt: sweet.CreatedAt,
		UpdatedAt: sweet.UpdatedAt,
	}
}
