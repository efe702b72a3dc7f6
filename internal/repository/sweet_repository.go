package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ashutosh-050/sweet-shop-service/internal/domain"
)

// ErrInsufficientStock signals a decrement larger than the available stock.
var ErrInsufficientStock = errors.New("insufficient stock")

// SweetRepository encapsulates catalog persistence.
type SweetRepository interface {
	Create(ctx context.Context, sweet *domain.Sweet) error
	GetByID(ctx context.Context, id string) (*domain.Sweet, error)
	List(ctx context.Context) ([]domain.Sweet, error)
	SearchByName(ctx context.Context, term string) ([]domain.Sweet, error)
	Delete(ctx context.Context, id string) error
	DecrementStock(ctx context.Context, id string, quantity int) (int, error)
	IncrementStock(ctx context.Context, id string, quantity int) (int, error)
}

type sweetRepository struct {
	pool *pgxpool.Pool
}

// NewSweetRepository instantiates repository.
func NewSweetRepository(pool *pgxpool.Pool) SweetRepository {
	return &sweetRepository{pool: pool}
}

func (r *sweetRepository) Create(ctx context.Context, sweet *domain.Sweet) error {
	const query = `
        INSERT INTO sweets (name, price, stock, image_url)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		sweet.Name,
		sweet.Price,
		sweet.Stock,
		sweet.ImageURL,
	).Scan(&sweet.ID, &sweet.CreatedAt, &sweet.UpdatedAt)
}

func (r *sweetRepository) GetByID(ctx context.Context, id string) (*domain.Sweet, error) {
	const query = `
        SELECT id, name, price, stock, image_url, created_at, updated_at
        FROM sweets WHERE id=$1`
	var sweet domain.Sweet
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&sweet.ID,
		&sweet.Name,
		&sweet.Price,
		&sweet.Stock,
		&sweet.ImageURL,
		&sweet.CreatedAt,
		&sweet.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &sweet, nil
}

func (r *sweetRepository) List(ctx context.Context) ([]domain.Sweet, error) {
	const query = `
        SELECT id, name, price, stock, image_url, created_at, updated_at
        FROM sweets ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSweets(rows)
}

func (r *sweetRepository) SearchByName(ctx context.Context, term string) ([]domain.Sweet, error) {
	const query = `
        SELECT id, name, price, stock, image_url, created_at, updated_at
        FROM sweets WHERE LOWER(name) LIKE $1 ORDER BY created_at`
	pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	rows, err := r.pool.Query(ctx, query, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSweets(rows)
}

func (r *sweetRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM sweets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DecrementStock performs the conditional update that keeps stock
// non-negative under concurrent purchases: the stock check and the write
// happen in a single statement.
func (r *sweetRepository) DecrementStock(ctx context.Context, id string, quantity int) (int, error) {
	const query = `
        UPDATE sweets SET stock = stock - $2, updated_at=NOW()
        WHERE id=$1 AND stock >= $2
        RETURNING stock`
	var remaining int
	err := r.pool.QueryRow(ctx, query, id, quantity).Scan(&remaining)
	if err == nil {
		return remaining, nil
	}
	if err != pgx.ErrNoRows {
		return 0, err
	}

	// No row matched: either the sweet is gone or stock was too low.
	var exists bool
	if probeErr := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM sweets WHERE id=$1)`, id).Scan(&exists); probeErr != nil {
		return 0, probeErr
	}
	if !exists {
		return 0, pgx.ErrNoRows
	}
	return 0, ErrInsufficientStock
}

func (r *sweetRepository) IncrementStock(ctx context.Context, id string, quantity int) (int, error) {
	const query = `
        UPDATE sweets SET stock = stock + $2, updated_at=NOW()
        WHERE id=$1
        RETURNING stock`
	var stock int
	if err := r.pool.QueryRow(ctx, query, id, quantity).Scan(&stock); err != nil {
		return 0, err
	}
	return stock, nil
}

func scanSweets(rows pgx.Rows) ([]domain.Sweet, error) {
	var result []domain.Sweet
	for rows.Next() {
		var sweet domain.Sweet
		if err := rows.Scan(
			&sweet.ID,
			&sweet.Name,
			&sweet.Price,
			&sweet.Stock,
			&sweet.ImageURL,
			&sweet.CreatedAt,
			&sweet.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, sweet)
	}
	return result, rows.Err()
}
