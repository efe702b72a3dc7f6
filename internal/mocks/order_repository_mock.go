package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ashutosh-050/sweet-shop-service/internal/domain"
)

// OrderRepository is a testify mock of repository.OrderRepository.
type OrderRepository struct{ mock.Mock }

func (m *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *OrderRepository) PlaceOrder(ctx context.Context, order *domain.Order) (int, error) {
	args := m.Called(ctx, order)
	return args.Int(0), args.Error(1)
}

func (m *OrderRepository) ListByUsername(ctx context.Context, username string) ([]domain.Order, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *OrderRepository) ListRecent(ctx context.Context, limit int) ([]domain.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}
