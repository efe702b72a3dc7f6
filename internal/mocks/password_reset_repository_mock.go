package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ashutosh-050/sweet-shop-service/internal/repository"
)

// PasswordResetRepository is a testify mock of repository.PasswordResetRepository.
type PasswordResetRepository struct{ mock.Mock }

func (m *PasswordResetRepository) Create(ctx context.Context, token *repository.PasswordResetToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *PasswordResetRepository) GetByToken(ctx context.Context, token string) (*repository.PasswordResetToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PasswordResetToken), args.Error(1)
}

func (m *PasswordResetRepository) MarkUsed(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
