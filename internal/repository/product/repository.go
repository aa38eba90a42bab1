package product

import (
	"context"

	"tsrfashion-backend/internal/domain"
)

type Repository interface {
	List(ctx context.Context, category string) ([]domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}
