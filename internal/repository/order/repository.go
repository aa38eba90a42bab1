package order

import (
	"context"

	"tsrfashion-backend/internal/domain"
)

type Repository interface {
	// Create persists the order. A colliding order number surfaces as
	// domain.ErrAlreadyExists so callers can regenerate.
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByNumber(ctx context.Context, number string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
}
