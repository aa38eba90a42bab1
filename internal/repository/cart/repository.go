package cart

import (
	"context"

	"tsrfashion-backend/internal/domain"
)

type CreateCartInput struct {
	CustomerID  *string
	AnonymousID *string
}

type Repository interface {
	Create(ctx context.Context, in CreateCartInput) (*domain.Cart, error)
	GetByID(ctx context.Context, id string) (*domain.Cart, error)
	GetActiveByCustomer(ctx context.Context, customerID string) (*domain.Cart, error)
	GetActiveByAnonymous(ctx context.Context, anonymousID string) (*domain.Cart, error)
	AssignCustomer(ctx context.Context, cartID, customerID string) error
	AddItem(ctx context.Context, cartID string, product domain.Product, quantity int) error
	ChangeItemQuantity(ctx context.Context, cartID, itemID string, quantity int) error
	Clear(ctx context.Context, cartID string) error
}
