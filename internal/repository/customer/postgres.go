package customer

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"tsrfashion-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `
INSERT INTO customers (email, password_hash, full_name, phone)
VALUES ($1, $2, $3, $4)
RETURNING id::text, email, password_hash, full_name, phone, created_at
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, strings.ToLower(c.Email), c.PasswordHash, c.FullName, c.Phone))
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	const q = `
SELECT id::text, email, password_hash, full_name, phone, created_at
FROM customers
WHERE lower(email) = lower($1)
LIMIT 1
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, email))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	const q = `
SELECT id::text, email, password_hash, full_name, phone, created_at
FROM customers
WHERE id = $1
LIMIT 1
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) UpdateFields(ctx context.Context, id, fullName, phone string) (*domain.Customer, error) {
	const q = `
UPDATE customers
SET full_name = $2, phone = $3
WHERE id = $1
RETURNING id::text, email, password_hash, full_name, phone, created_at
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, id, fullName, phone))
}

func (r *postgresRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE customers SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) UpsertShippingProfile(ctx context.Context, customerID string, d domain.ShippingDetails) (*domain.ShippingProfile, error) {
	const q = `
INSERT INTO shipping_profiles (customer_id, full_name, email, phone, city, postal_code, street, apartment, road, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (customer_id) DO UPDATE SET
    full_name = EXCLUDED.full_name,
    email = EXCLUDED.email,
    phone = EXCLUDED.phone,
    city = EXCLUDED.city,
    postal_code = EXCLUDED.postal_code,
    street = EXCLUDED.street,
    apartment = EXCLUDED.apartment,
    road = EXCLUDED.road,
    notes = EXCLUDED.notes,
    updated_at = now()
RETURNING customer_id::text, full_name, email, phone, city, postal_code, street, apartment, road, notes, updated_at
`
	return r.scanProfile(r.pool.QueryRow(ctx, q,
		customerID, d.FullName, d.Email, d.Phone, d.City, d.PostalCode, d.Street, d.Apartment, d.Road, d.Notes,
	))
}

func (r *postgresRepo) GetShippingProfile(ctx context.Context, customerID string) (*domain.ShippingProfile, error) {
	const q = `
SELECT customer_id::text, full_name, email, phone, city, postal_code, street, apartment, road, notes, updated_at
FROM shipping_profiles
WHERE customer_id = $1
LIMIT 1
`
	return r.scanProfile(r.pool.QueryRow(ctx, q, customerID))
}

func (r *postgresRepo) scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(&c.ID, &c.Email, &c.PasswordHash, &c.FullName, &c.Phone, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("customer repo: scan error=%v", err)
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) scanProfile(row pgx.Row) (*domain.ShippingProfile, error) {
	var p domain.ShippingProfile
	d := &p.Details
	err := row.Scan(&p.CustomerID, &d.FullName, &d.Email, &d.Phone, &d.City, &d.PostalCode, &d.Street, &d.Apartment, &d.Road, &d.Notes, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("customer repo: scan profile error=%v", err)
		return nil, err
	}
	return &p, nil
}
