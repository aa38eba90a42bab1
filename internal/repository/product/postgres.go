package product

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"

	"tsrfashion-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `id::text, slug, name, category, COALESCE(description, ''), price, discount_percent, discount_amount, images, created_at`

func (r *postgresRepo) List(ctx context.Context, category string) ([]domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products
ORDER BY created_at DESC
`
	args := []interface{}{}
	if category != "" {
		q = `
SELECT ` + productColumns + `
FROM products
WHERE category = $1
ORDER BY created_at DESC
`
		args = append(args, category)
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: list category=%q error=%v", category, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products
WHERE slug = $1
`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get slug=%s error=%v", slug, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	imagesJSON, err := json.Marshal(product.Images)
	if err != nil {
		return nil, err
	}
	const q = `
INSERT INTO products (slug, name, category, description, price, discount_percent, discount_amount, images)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (slug) DO UPDATE SET
    name = EXCLUDED.name,
    category = EXCLUDED.category,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    discount_percent = EXCLUDED.discount_percent,
    discount_amount = EXCLUDED.discount_amount,
    images = EXCLUDED.images
RETURNING id::text, created_at
`
	res := product
	if err := r.pool.QueryRow(ctx, q,
		product.Slug, product.Name, product.Category, product.Description,
		product.Price, product.DiscountPercent, product.DiscountAmount, imagesJSON,
	).Scan(&res.ID, &res.CreatedAt); err != nil {
		r.logger.Printf("product repo: upsert slug=%s error=%v", product.Slug, err)
		return nil, err
	}
	return &res, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	var imagesJSON []byte
	if err := row.Scan(
		&p.ID, &p.Slug, &p.Name, &p.Category, &p.Description,
		&p.Price, &p.DiscountPercent, &p.DiscountAmount, &imagesJSON, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	if len(imagesJSON) > 0 {
		if err := json.Unmarshal(imagesJSON, &p.Images); err != nil {
			return nil, err
		}
	}
	return &p, nil
}
