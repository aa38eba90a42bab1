package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"tsrfashion-backend/internal/domain"
	"tsrfashion-backend/internal/localstore"
)

type stubRepo struct {
	upserts    int
	lastID     string
	lastInput  domain.ShippingDetails
	upsertErr  error
	profile    *domain.ShippingProfile
	getErr     error
	updatedAts []time.Time
}

func (s *stubRepo) Create(_ context.Context, _ domain.Customer) (*domain.Customer, error) {
	return nil, nil
}
func (s *stubRepo) GetByEmail(_ context.Context, _ string) (*domain.Customer, error) {
	return nil, domain.ErrNotFound
}
func (s *stubRepo) GetByID(_ context.Context, _ string) (*domain.Customer, error) {
	return nil, domain.ErrNotFound
}
func (s *stubRepo) UpdateFields(_ context.Context, _, _, _ string) (*domain.Customer, error) {
	return nil, domain.ErrNotFound
}
func (s *stubRepo) UpdatePassword(_ context.Context, _, _ string) error {
	return nil
}

func (s *stubRepo) UpsertShippingProfile(_ context.Context, customerID string, details domain.ShippingDetails) (*domain.ShippingProfile, error) {
	if s.upsertErr != nil {
		return nil, s.upsertErr
	}
	s.upserts++
	s.lastID = customerID
	s.lastInput = details
	updatedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(s.upserts) * time.Minute)
	s.updatedAts = append(s.updatedAts, updatedAt)
	return &domain.ShippingProfile{CustomerID: customerID, Details: details, UpdatedAt: updatedAt}, nil
}

func (s *stubRepo) GetShippingProfile(_ context.Context, _ string) (*domain.ShippingProfile, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.profile == nil {
		return nil, domain.ErrNotFound
	}
	return s.profile, nil
}

func authedActor() domain.Actor {
	return domain.Actor{Customer: &domain.Customer{ID: "cust-1", Email: "user@example.com"}}
}

func TestSyncRequiresIdentity(t *testing.T) {
	svc := New(&stubRepo{}, localstore.New(), nil)
	_, err := svc.Sync(context.Background(), domain.Guest(), domain.ShippingDetails{})
	if !errors.Is(err, ErrNoIdentity) {
		t.Fatalf("expected ErrNoIdentity, got %v", err)
	}
}

func TestSyncIdempotentRefreshesTimestamp(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, localstore.New(), nil)
	details := domain.ShippingDetails{FullName: "Test User", City: "Dhaka"}

	first, err := svc.Sync(context.Background(), authedActor(), details)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	second, err := svc.Sync(context.Background(), authedActor(), details)
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if repo.upserts != 2 || repo.lastID != "cust-1" {
		t.Fatalf("unexpected upsert calls %d id=%s", repo.upserts, repo.lastID)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Fatalf("timestamp not refreshed: %v vs %v", second.UpdatedAt, first.UpdatedAt)
	}
	if second.Details != details {
		t.Fatalf("details changed across idempotent sync: %+v", second.Details)
	}
}

func TestLoadFallsBackToLocalSnapshot(t *testing.T) {
	local := localstore.New()
	repo := &stubRepo{}
	svc := New(repo, local, nil)
	details := domain.ShippingDetails{FullName: "Test User", City: "Dhaka", PostalCode: "1207"}

	if _, err := svc.Sync(context.Background(), authedActor(), details); err != nil {
		t.Fatalf("sync: %v", err)
	}

	repo.getErr = errors.New("connection refused")
	got, err := svc.Load(context.Background(), authedActor())
	if err != nil {
		t.Fatalf("expected cached profile, got error %v", err)
	}
	if got.Details != details {
		t.Fatalf("unexpected cached details %+v", got.Details)
	}
}

func TestLoadGuestNotFound(t *testing.T) {
	svc := New(&stubRepo{}, localstore.New(), nil)
	if _, err := svc.Load(context.Background(), domain.Guest()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
