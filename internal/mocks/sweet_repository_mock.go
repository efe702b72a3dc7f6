package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ashutosh-050/sweet-shop-service/internal/domain"
)

// SweetRepository is a testify mock of repository.SweetRepository.
type SweetRepository struct{ mock.Mock }

func (m *SweetRepository) Create(ctx context.Context, sweet *domain.Sweet) error {
	return m.Called(ctx, sweet).Error(0)
}

func (m *SweetRepository) GetByID(ctx context.Context, id string) (*domain.Sweet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sweet), args.Error(1)
}

func (m *SweetRepository) List(ctx context.Context) ([]domain.Sweet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sweet), args.Error(1)
}

func (m *SweetRepository) SearchByName(ctx context.Context, term string) ([]domain.Sweet, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sweet), args.Error(1)
}

func (m *SweetRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *SweetRepository) DecrementStock(ctx context.Context, id string, quantity int) (int, error) {
	args := m.Called(ctx, id, quantity)
	return args.Int(0), args.Error(1)
}

func (m *SweetRepository) IncrementStock(ctx context.Context, id string, quantity int) (int, error) {
	args := m.Called(ctx, id, quantity)
	return args.Int(0), args.Error(1)
}
