package contact

import (
	"context"

	"tsrfashion-backend/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, m domain.ContactMessage) (*domain.ContactMessage, error)
}
