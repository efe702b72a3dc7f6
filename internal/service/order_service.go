package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ashutosh-050/sweet-shop-service/internal/domain"
	"github.com/ashutosh-050/sweet-shop-service/internal/events"
	"github.com/ashutosh-050/sweet-shop-service/internal/repository"
	apperrors "github.com/ashutosh-050/sweet-shop-service/pkg/util"
)

// taxRate is the fixed 18% GST surcharge applied to every purchase subtotal.
const taxRate = 0.18

const recentOrdersLimit = 10

// OrderService orchestrates purchases: it validates the request, decrements
// catalog stock, computes the tax-inclusive total and records the order.
type OrderService struct {
	users      repository.UserRepository
	sweets     repository.SweetRepository
	orders     repository.OrderRepository
	dispatcher events.Dispatcher
}

// NewOrderService builds the service.
func NewOrderService(users repository.UserRepository, sweets repository.SweetRepository, orders repository.OrderRepository, dispatcher events.Dispatcher) *OrderService {
	return &OrderService{users: users, sweets: sweets, orders: orders, dispatcher: dispatcher}
}

// Purchase places an order for the authenticated user. Username and sweet
// name are copied onto the order as snapshots taken before the decrement.
func (s *OrderService) Purchase(ctx context.Context, userID, sweetID string, quantity int) (*domain.Order, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}

	if _, err := uuid.Parse(sweetID); err != nil {
		return nil, apperrors.NewValidationError("invalid sweet id", nil)
	}
	if quantity <= 0 {
		return nil, apperrors.NewValidationError("quantity must be positive", nil)
	}

	sweet, err := s.sweets.GetByID(ctx, sweetID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("sweet", nil)
		}
		return nil, err
	}

	order := &domain.Order{
		Username:   user.Username,
		SweetName:  sweet.Name,
		SweetID:    sweet.ID,
		Quantity:   quantity,
		TotalPrice: float64(quantity) * sweet.Price * (1 + taxRate),
		Status:     domain.OrderStatusPending,
	}

	remaining, err := s.orders.PlaceOrder(ctx, order)
	if err != nil {
		switch err {
		case pgx.ErrNoRows:
			return nil, apperrors.NewNotFound("sweet", nil)
		case repository.ErrInsufficientStock:
			return nil, apperrors.NewInsufficientStock("not enough stock available", nil)
		}
		return nil, err
	}

	s.publish(ctx, events.EventOrderPlaced, events.OrderPlacedPayload{
		OrderID:    order.ID,
		Username:   order.Username,
		SweetID:    order.SweetID,
		SweetName:  order.SweetName,
		Quantity:   order.Quantity,
		TotalPrice: order.TotalPrice,
	})
	if remaining == 0 {
		s.publish(ctx, events.EventStockDepleted, events.StockDepletedPayload{
			SweetID:   order.SweetID,
			SweetName: order.SweetName,
		})
	}
	return order, nil
}

// ListForUser returns the caller's orders, newest first.
func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return s.orders.ListByUsername(ctx, user.Username)
}

// ListRecent returns the most recent orders across all users.
func (s *OrderService) ListRecent(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListRecent(ctx, recentOrdersLimit)
}

func (s *OrderService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
