package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ashutosh-050/sweet-shop-service/internal/domain"
	"github.com/ashutosh-050/sweet-shop-service/internal/events"
	"github.com/ashutosh-050/sweet-shop-service/internal/repository"
	apperrors "github.com/ashutosh-050/sweet-shop-service/pkg/util"
)

// CatalogService manages the sweets catalog.
type CatalogService struct {
	sweets     repository.SweetRepository
	dispatcher events.Dispatcher
}

// NewCatalogService builds the service.
func NewCatalogService(sweets repository.SweetRepository, dispatcher events.Dispatcher) *CatalogService {
	return &CatalogService{sweets: sweets, dispatcher: dispatcher}
}

// SweetCreateInput carries the fields for a new catalog item.
type SweetCreateInput struct {
	Name     string
	Price    *float64
	Stock    int
	ImageURL *string
}

// Create adds a new sweet to the catalog.
func (s *CatalogService) Create(ctx context.Context, input SweetCreateInput) (*domain.Sweet, error) {
	if strings.TrimSpace(input.Name) == "" || input.Price == nil {
		return nil, apperrors.NewValidationError("name and price are required", nil)
	}
	if *input.Price <= 0 {
		return nil, apperrors.NewValidationError("price must be positive", nil)
	}
	if input.Stock < 0 {
		return nil, apperrors.NewValidationError("stock cannot be negative", nil)
	}

	sweet := &domain.Sweet{
		Name:     strings.TrimSpace(input.Name),
		Price:    *input.Price,
		Stock:    input.Stock,
		ImageURL: input.ImageURL,
	}
	if err := s.sweets.Create(ctx, sweet); err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflict("sweet already exists", nil)
		}
		return nil, err
	}

	s.publish(ctx, events.EventSweetCreated, events.SweetCreatedPayload{
		SweetID: sweet.ID,
		Name:    sweet.Name,
		Price:   sweet.Price,
		Stock:   sweet.Stock,
	})
	return sweet, nil
}

// List returns the whole catalog.
func (s *CatalogService) List(ctx context.Context) ([]domain.Sweet, error) {
	return s.sweets.List(ctx)
}

// Search returns sweets whose name contains the term, case-insensitive.
func (s *CatalogService) Search(ctx context.Context, term string) ([]domain.Sweet, error) {
	if strings.TrimSpace(term) == "" {
		return nil, apperrors.NewValidationError("query parameter 'q' is required", nil)
	}
	return s.sweets.SearchByName(ctx, term)
}

// Delete removes a sweet. Existing orders keep their name snapshot.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewValidationError("invalid sweet id", nil)
	}
	if err := s.sweets.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("sweet", nil)
		}
		return err
	}
	return nil
}

// DecrementStock atomically reduces stock, guarding the non-negative
// invariant, and returns the remaining count.
func (s *CatalogService) DecrementStock(ctx context.Context, id string, quantity int) (int, error) {
	if _, err := uuid.Parse(id); err != nil {
		return 0, apperrors.NewValidationError("invalid sweet id", nil)
	}
	if quantity <= 0 {
		return 0, apperrors.NewValidationError("quantity must be a positive number", nil)
	}

	remaining, err := s.sweets.DecrementStock(ctx, id, quantity)
	if err != nil {
		switch err {
		case pgx.ErrNoRows:
			return 0, apperrors.NewNotFound("sweet", nil)
		case repository.ErrInsufficientStock:
			return 0, apperrors.NewInsufficientStock("not enough stock available", nil)
		}
		return 0, err
	}

	if remaining == 0 {
		s.publish(ctx, events.EventStockDepleted, events.StockDepletedPayload{SweetID: id})
	}
	return remaining, nil
}

// Restock atomically increases stock and returns the new count.
func (s *CatalogService) Restock(ctx context.Context, id string, quantity int) (int, error) {
	if _, err := uuid.Parse(id); err != nil {
		return 0, apperrors.NewValidationError("invalid sweet id", nil)
	}
	if quantity <= 0 {
		return 0, apperrors.NewValidationError("quantity must be a positive number", nil)
	}

	stock, err := s.sweets.IncrementStock(ctx, id, quantity)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, apperrors.NewNotFound("sweet", nil)
		}
		return 0, err
	}
	return stock, nil
}

func (s *CatalogService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
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
