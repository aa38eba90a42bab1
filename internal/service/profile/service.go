package profile

import (
	"context"
	"errors"
	"io"
	"log"

	"tsrfashion-backend/internal/domain"
	custrepo "tsrfashion-backend/internal/repository/customer"
	"tsrfashion-backend/internal/localstore"
)

// ErrNoIdentity is returned when a guest actor has no account to attach a
// profile to. Guest checkout defers the sync until the implicit account
// exists.
var ErrNoIdentity = errors.New("no identity for profile")

const snapshotKey = "profile"

// Service persists the validated shipping snapshot as the customer's
// default profile record.
type Service struct {
	repo   custrepo.Repository
	local  *localstore.Store
	logger *log.Logger
}

func New(repo custrepo.Repository, local *localstore.Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, local: local, logger: logger}
}

// Sync upserts the profile keyed by the actor's identity, refreshing the
// updated-at timestamp. Repeated calls with identical data are idempotent.
func (s *Service) Sync(ctx context.Context, actor domain.Actor, details domain.ShippingDetails) (*domain.ShippingProfile, error) {
	if !actor.Authenticated() {
		return nil, ErrNoIdentity
	}
	profile, err := s.repo.UpsertShippingProfile(ctx, actor.CustomerID(), details)
	if err != nil {
		return nil, err
	}
	if s.local != nil {
		s.local.Put(namespace(actor), snapshotKey, *profile)
	}
	return profile, nil
}

// Load returns the stored profile for pre-filling the address form. If the
// database read fails, a locally cached snapshot is served instead so the
// form can still pre-fill.
func (s *Service) Load(ctx context.Context, actor domain.Actor) (*domain.ShippingProfile, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrNotFound
	}
	profile, err := s.repo.GetShippingProfile(ctx, actor.CustomerID())
	if err == nil {
		return profile, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNotFound
	}
	s.logger.Printf("profile: load customer_id=%s error=%v", actor.CustomerID(), err)
	if s.local != nil {
		if item, ok := s.local.Get(namespace(actor), snapshotKey); ok {
			if cached, ok := item.Value.(domain.ShippingProfile); ok {
				return &cached, nil
			}
		}
	}
	return nil, err
}

func namespace(actor domain.Actor) string {
	return "user:" + actor.CustomerID()
}
