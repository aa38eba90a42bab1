package contact

import (
	"context"

	"tsrfashion-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, m domain.ContactMessage) (*domain.ContactMessage, error) {
	const q = `
INSERT INTO contact_messages (name, email, subject, message)
VALUES ($1, $2, $3, $4)
RETURNING id::text, name, email, subject, message, created_at
`
	var out domain.ContactMessage
	if err := r.pool.QueryRow(ctx, q, m.Name, m.Email, m.Subject, m.Message).Scan(
		&out.ID, &out.Name, &out.Email, &out.Subject, &out.Message, &out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}
