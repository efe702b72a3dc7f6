package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ashutosh-050/sweet-shop-service/internal/domain"
)

// OrderRepository encapsulates the append-only order ledger.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	PlaceOrder(ctx context.Context, order *domain.Order) (int, error)
	ListByUsername(ctx context.Context, username string) ([]domain.Order, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Order, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository instantiates repository.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	const query = `
        INSERT INTO orders (username, sweet_name, sweet_id, quantity, total_price, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		order.Username,
		order.SweetName,
		order.SweetID,
		order.Quantity,
		order.TotalPrice,
		order.Status,
	).Scan(&order.ID, &order.CreatedAt)
}

// PlaceOrder decrements the sweet's stock and inserts the order record on a
// single transaction, so a failed order write cannot leak a decrement. The
// decrement itself stays conditional on stock >= quantity. Returns the
// remaining stock.
func (r *orderRepository) PlaceOrder(ctx context.Context, order *domain.Order) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const decrement = `
        UPDATE sweets SET stock = stock - $2, updated_at=NOW()
        WHERE id=$1 AND stock >= $2
        RETURNING stock`
	var remaining int
	if err := tx.QueryRow(ctx, decrement, order.SweetID, order.Quantity).Scan(&remaining); err != nil {
		if err != pgx.ErrNoRows {
			return 0, err
		}
		var exists bool
		if probeErr := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM sweets WHERE id=$1)`, order.SweetID).Scan(&exists); probeErr != nil {
			return 0, probeErr
		}
		if !exists {
			return 0, pgx.ErrNoRows
		}
		return 0, ErrInsufficientStock
	}

	const insert = `
        INSERT INTO orders (username, sweet_name, sweet_id, quantity, total_price, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, insert,
		order.Username,
		order.SweetName,
		order.SweetID,
		order.Quantity,
		order.TotalPrice,
		order.Status,
	).Scan(&order.ID, &order.CreatedAt); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return remaining, nil
}

func (r *orderRepository) ListByUsername(ctx context.Context, username string) ([]domain.Order, error) {
	const query = `
        SELECT id, username, sweet_name, sweet_id, quantity, total_price, status, created_at
        FROM orders WHERE username=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *orderRepository) ListRecent(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 10
	}
	const query = `
        SELECT id, username, sweet_name, sweet_id, quantity, total_price, status, created_at
        FROM orders ORDER BY created_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func scanOrders(rows pgx.Rows) ([]domain.Order, error) {
	var result []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.Username,
			&order.SweetName,
			&order.SweetID,
			&order.Quantity,
			&order.TotalPrice,
			&order.Status,
			&order.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	return result, rows.Err()
}
