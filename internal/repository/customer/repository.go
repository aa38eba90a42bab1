package customer

import (
	"context"

	"tsrfashion-backend/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	UpdateFields(ctx context.Context, id, fullName, phone string) (*domain.Customer, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpsertShippingProfile(ctx context.Context, customerID string, details domain.ShippingDetails) (*domain.ShippingProfile, error)
	GetShippingProfile(ctx context.Context, customerID string) (*domain.ShippingProfile, error)
}
