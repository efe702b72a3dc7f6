package dto

import (
	"math"
	"time"

	"github.com/ashutosh-050/sweet-shop-service/internal/domain"
)

// CreateOrderRequest payload for placing an order.
type CreateOrderRequest struct {
	SweetID  string `json:"sweetId"`
	Quantity int    `json:"quantity"`
}

// OrderResponse is the ledger entry wire form. TotalPrice is rounded to two
// decimals here only; storage keeps full precision.
type OrderResponse struct {
	ID         string             `json:"id"`
	Username   string             `json:"username"`
	SweetName  string             `json:"sweetName"`
	SweetID    string             `json:"sweetId"`
	Quantity   int                `json:"quantity"`
	TotalPrice float64            `json:"totalPrice"`
	Status     domain.OrderStatus `json:"status"`
	CreatedAt  time.Time          `json:"createdAt"`
}

// NewOrderResponse converts the domain model.
func NewOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:         order.ID,
		Username:   order.Username,
		SweetName:  order.SweetName,
		SweetID:    order.SweetID,
		Quantity:   order.Quantity,
		TotalPrice: math.Round(order.TotalPrice*100) / 100,
		Status:     order.Status,
		CreatedAt:  order.CreatedAt,
	}
}
