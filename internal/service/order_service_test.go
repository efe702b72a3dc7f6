package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ashutosh-050/sweet-shop-service/internal/domain"
	"github.com/ashutosh-050/sweet-shop-service/internal/mocks"
	"github.com/ashutosh-050/sweet-shop-service/internal/repository"
	"github.com/ashutosh-050/sweet-shop-service/internal/service"
	apperrors "github.com/ashutosh-050/sweet-shop-service/pkg/util"
)

const buyerID = "3f6b9a52-58a1-44b4-a6f8-1f8a2f6f0c11"

func buyer() *domain.User {
	return &domain.User{ID: buyerID, Username: "eve", Role: domain.RoleUser}
}

func ladoo() *domain.Sweet {
	return &domain.Sweet{ID: sweetID, Name: "Ladoo", Price: 10, Stock: 5}
}

func TestPurchaseHappyPath(t *testing.T) {
	users := new(mocks.UserRepository)
	users.On("GetByID", mock.Anything, buyerID).Return(buyer(), nil)

	sweets := new(mocks.SweetRepository)
	sweets.On("GetByID", mock.Anything, sweetID).Return(ladoo(), nil)

	orders := new(mocks.OrderRepository)
	orders.On("PlaceOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Order).ID = "order-1"
	}).Return(3, nil)

	svc := service.NewOrderService(users, sweets, orders, nil)
	order, err := svc.Purchase(context.Background(), buyerID, sweetID, 2)
	require.NoError(t, err)

	// snapshots are copied at purchase time
	assert.Equal(t, "eve", order.Username)
	assert.Equal(t, "Ladoo", order.SweetName)
	assert.Equal(t, sweetID, order.SweetID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	// 2 x 10 x 1.18
	assert.InDelta(t, 23.60, order.TotalPrice, 0.0001)

	orders.AssertExpectations(t)
}

func TestPurchaseValidation(t *testing.T) {
	users := new(mocks.UserRepository)
	users.On("GetByID", mock.Anything, buyerID).Return(buyer(), nil)

	orders := new(mocks.OrderRepository)
	svc := service.NewOrderService(users, new(mocks.SweetRepository), orders, nil)

	_, err := svc.Purchase(context.Background(), buyerID, "1234", 2)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))

	_, err = svc.Purchase(context.Background(), buyerID, sweetID, 0)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))

	orders.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
}

func TestPurchaseUnknownUser(t *testing.T) {
	users := new(mocks.UserRepository)
	users.On("GetByID", mock.Anything, buyerID).Return(nil, pgx.ErrNoRows)

	svc := service.NewOrderService(users, new(mocks.SweetRepository), new(mocks.OrderRepository), nil)
	_, err := svc.Purchase(context.Background(), buyerID, sweetID, 1)
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestPurchaseInsufficientStockCreatesNoOrder(t *testing.T) {
	users := new(mocks.UserRepository)
	users.On("GetByID", mock.Anything, buyerID).Return(buyer(), nil)

	sweets := new(mocks.SweetRepository)
	sweets.On("GetByID", mock.Anything, sweetID).Return(ladoo(), nil)

	orders := new(mocks.OrderRepository)
	orders.On("PlaceOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).
		Return(0, repository.ErrInsufficientStock)

	svc := service.NewOrderService(users, sweets, orders, nil)
	_, err := svc.Purchase(context.Background(), buyerID, sweetID, 9)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainCode(t, err))
}

func TestListForUserResolvesUsername(t *testing.T) {
	users := new(mocks.UserRepository)
	users.On("GetByID", mock.Anything, buyerID).Return(buyer(), nil)

	orders := new(mocks.OrderRepository)
	orders.On("ListByUsername", mock.Anything, "eve").
		Return([]domain.Order{{ID: "order-1", Username: "eve"}}, nil)

	svc := service.NewOrderService(users, new(mocks.SweetRepository), orders, nil)
	result, err := svc.ListForUser(context.Background(), buyerID)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "eve", result[0].Username)
}

// ledgerFake mimics the repository's conditional decrement: the stock check
// and write happen under one lock, as the SQL does in one statement.
type ledgerFake struct {
	mu     sync.Mutex
	stock  int
	placed []domain.Order
}

func (f *ledgerFake) Create(_ context.Context, order *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.placed = append(f.placed, *order)
	return nil
}

func (f *ledgerFake) PlaceOrder(_ context.Context, order *domain.Order) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stock < order.Quantity {
		return 0, repository.ErrInsufficientStock
	}
	f.stock -= order.Quantity
	f.placed = append(f.placed, *order)
	return f.stock, nil
}

func (f *ledgerFake) ListByUsername(_ context.Context, _ string) ([]domain.Order, error) {
	return nil, nil
}

func (f *ledgerFake) ListRecent(_ context.Context, _ int) ([]domain.Order, error) {
	return nil, nil
}

func TestConcurrentPurchasesNeverOversell(t *testing.T) {
	users := new(mocks.UserRepository)
	users.On("GetByID", mock.Anything, buyerID).Return(buyer(), nil)

	sweets := new(mocks.SweetRepository)
	sweets.On("GetByID", mock.Anything, sweetID).Return(ladoo(), nil)

	ledger := &ledgerFake{stock: 5}
	svc := service.NewOrderService(users, sweets, ledger, nil)

	const callers = 10
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Purchase(context.Background(), buyerID, sweetID, 2)
		}(i)
	}
	wg.Wait()

	sold := 0
	insufficient := 0
	for _, err := range errs {
		if err == nil {
			sold += 2
			continue
		}
		var de *apperrors.DomainError
		require.True(t, errors.As(err, &de))
		require.Equal(t, "INSUFFICIENT_STOCK", de.Code)
		insufficient++
	}

	assert.Positive(t, insufficient)
	assert.Equal(t, 5-sold, ledger.stock)
	assert.GreaterOrEqual(t, ledger.stock, 0)
	assert.Len(t, ledger.placed, sold/2)
}
