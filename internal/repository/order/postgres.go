package order

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"

	"tsrfashion-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

const orderColumns = `id::text, number, customer_id::text, placed_at, total_amount, items_count, status, payment_method, estimated_delivery,
       note, ship_full_name, ship_email, ship_phone, ship_city, ship_postal_code, ship_street, ship_apartment, ship_road, ship_notes, history`

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	historyJSON, err := json.Marshal(o.History)
	if err != nil {
		return nil, err
	}

	const q = `
INSERT INTO orders (
    number, customer_id, placed_at, total_amount, items_count, status, payment_method, estimated_delivery,
    note, ship_full_name, ship_email, ship_phone, ship_city, ship_postal_code, ship_street, ship_apartment, ship_road, ship_notes, history
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
RETURNING ` + orderColumns + `
`
	s := o.Shipping
	row := r.pool.QueryRow(ctx, q,
		o.Number, o.CustomerID, o.PlacedAt, o.TotalAmount, o.ItemsCount, o.Status, o.PaymentMethod, o.EstimatedDelivery,
		o.Note, s.FullName, s.Email, s.Phone, s.City, s.PostalCode, s.Street, s.Apartment, s.Road, s.Notes, historyJSON,
	)
	stored, err := r.scanOrder(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("order repo: create number=%s error=%v", o.Number, err)
		return nil, err
	}
	return stored, nil
}

func (r *postgresRepo) GetByNumber(ctx context.Context, number string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE lower(number) = lower($1)
LIMIT 1
`
	o, err := r.scanOrder(r.pool.QueryRow(ctx, q, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get number=%s error=%v", number, err)
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE customer_id = $1
ORDER BY placed_at DESC
`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		r.logger.Printf("order repo: list customer_id=%s error=%v", customerID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	s := &o.Shipping
	var historyJSON []byte
	if err := row.Scan(
		&o.ID, &o.Number, &o.CustomerID, &o.PlacedAt, &o.TotalAmount, &o.ItemsCount, &o.Status, &o.PaymentMethod, &o.EstimatedDelivery,
		&o.Note, &s.FullName, &s.Email, &s.Phone, &s.City, &s.PostalCode, &s.Street, &s.Apartment, &s.Road, &s.Notes, &historyJSON,
	); err != nil {
		return nil, err
	}
	if len(historyJSON) > 0 {
		if err := json.Unmarshal(historyJSON, &o.History); err != nil {
			return nil, err
		}
	}
	return &o, nil
}
