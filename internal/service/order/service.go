// Package order exposes tracking and history lookups over persisted
// orders, falling back to locally cached snapshots when a row has not
// reached the database yet.
package order

import (
	"context"
	"errors"
	"sort"
	"strings"

	"tsrfashion-backend/internal/domain"
	"tsrfashion-backend/internal/localstore"
)

// SampleNamespace holds seeded demonstration orders shown to users with
// no history of their own.
const SampleNamespace = "samples"

type repository interface {
	GetByNumber(ctx context.Context, number string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
}

type Service struct {
	repo  repository
	local *localstore.Store
}

func New(repo repository, local *localstore.Store) *Service {
	return &Service{repo: repo, local: local}
}

// Track finds an order by number, case-insensitively. The database row
// wins when present; otherwise cached and sample snapshots are consulted.
func (s *Service) Track(ctx context.Context, actor domain.Actor, number string) (*domain.Order, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, domain.ErrNotFound
	}

	stored, err := s.repo.GetByNumber(ctx, number)
	if err == nil {
		return stored, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	key := "order:" + strings.ToLower(number)
	namespaces := []string{SampleNamespace}
	if actor.Authenticated() {
		namespaces = append([]string{"user:" + actor.CustomerID()}, namespaces...)
	}
	for _, ns := range namespaces {
		if item, ok := s.local.Get(ns, key); ok {
			if order, ok := item.Value.(domain.Order); ok {
				return &order, nil
			}
		}
	}
	return nil, domain.ErrNotFound
}

// Recent lists the actor's orders newest first, merging persisted rows
// with cached snapshots that have not reached the database. Guests with
// no identity see the seeded samples.
func (s *Service) Recent(ctx context.Context, actor domain.Actor) ([]domain.Order, error) {
	var orders []domain.Order
	seen := make(map[string]bool)

	if actor.Authenticated() {
		stored, err := s.repo.ListByCustomer(ctx, actor.CustomerID())
		if err != nil {
			return nil, err
		}
		for _, o := range stored {
			orders = append(orders, o)
			seen[strings.ToLower(o.Number)] = true
		}
		for _, item := range s.local.List("user:" + actor.CustomerID()) {
			order, ok := item.Value.(domain.Order)
			if !ok || seen[strings.ToLower(order.Number)] {
				continue
			}
			orders = append(orders, order)
			seen[strings.ToLower(order.Number)] = true
		}
	}

	if len(orders) == 0 {
		for _, item := range s.local.List(SampleNamespace) {
			if order, ok := item.Value.(domain.Order); ok {
				orders = append(orders, order)
			}
		}
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].PlacedAt.After(orders[j].PlacedAt)
	})
	return orders, nil
}
