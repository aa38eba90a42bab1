package order

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tsrfashion-backend/internal/domain"
	"tsrfashion-backend/internal/localstore"
)

type stubRepo struct {
	orders map[string]domain.Order // keyed by lowercase number
	err    error
}

func (s *stubRepo) GetByNumber(_ context.Context, number string) (*domain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	o, ok := s.orders[strings.ToLower(number)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &o, nil
}

func (s *stubRepo) ListByCustomer(_ context.Context, customerID string) ([]domain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []domain.Order
	for _, o := range s.orders {
		if o.CustomerID != nil && *o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func sampleOrder(number string, placedAt time.Time, customerID string) domain.Order {
	o := domain.Order{
		Number:      number,
		PlacedAt:    placedAt,
		TotalAmount: 1200,
		Status:      domain.StatusProcessing,
		History:     domain.NewTimeline(placedAt),
	}
	if customerID != "" {
		o.CustomerID = &customerID
	}
	return o
}

func authedActor(id string) domain.Actor {
	return domain.Actor{Customer: &domain.Customer{ID: id}}
}

func TestTrackCaseInsensitive(t *testing.T) {
	repo := &stubRepo{orders: map[string]domain.Order{
		"tsr-1a2b3c4d5e": sampleOrder("TSR-1A2B3C4D5E", time.Now(), "cust-1"),
	}}
	svc := New(repo, localstore.New())

	got, err := svc.Track(context.Background(), domain.Guest(), "tsr-1a2b3c4d5e")
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	if got.Number != "TSR-1A2B3C4D5E" {
		t.Fatalf("number = %q", got.Number)
	}
}

func TestTrackDatabaseRowWinsOverSnapshot(t *testing.T) {
	placed := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	stored := sampleOrder("TSR-AAAA000000", placed, "cust-1")
	stored.Status = domain.StatusShipped

	repo := &stubRepo{orders: map[string]domain.Order{"tsr-aaaa000000": stored}}
	local := localstore.New()
	stale := sampleOrder("TSR-AAAA000000", placed, "cust-1")
	local.Put("user:cust-1", "order:tsr-aaaa000000", stale)

	svc := New(repo, local)
	got, err := svc.Track(context.Background(), authedActor("cust-1"), "TSR-AAAA000000")
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	if got.Status != domain.StatusShipped {
		t.Fatalf("expected the persisted row, got status %q", got.Status)
	}
}

func TestTrackFallsBackToCachedSnapshot(t *testing.T) {
	local := localstore.New()
	local.Put("user:cust-1", "order:tsr-bbbb000000", sampleOrder("TSR-BBBB000000", time.Now(), "cust-1"))

	svc := New(&stubRepo{orders: map[string]domain.Order{}}, local)
	got, err := svc.Track(context.Background(), authedActor("cust-1"), "TSR-BBBB000000")
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	if got.Number != "TSR-BBBB000000" {
		t.Fatalf("number = %q", got.Number)
	}
}

func TestTrackSampleVisibleToGuests(t *testing.T) {
	local := localstore.New()
	local.Put(SampleNamespace, "order:tsr-cccc000000", sampleOrder("TSR-CCCC000000", time.Now(), ""))

	svc := New(&stubRepo{orders: map[string]domain.Order{}}, local)
	if _, err := svc.Track(context.Background(), domain.Guest(), "TSR-CCCC000000"); err != nil {
		t.Fatalf("track: %v", err)
	}
}

func TestTrackUnknownNumber(t *testing.T) {
	svc := New(&stubRepo{orders: map[string]domain.Order{}}, localstore.New())
	if _, err := svc.Track(context.Background(), domain.Guest(), "TSR-MISSING000"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Track(context.Background(), domain.Guest(), "  "); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("blank number should be not found, got %v", err)
	}
}

func TestRecentMergesAndSortsNewestFirst(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	repo := &stubRepo{orders: map[string]domain.Order{
		"tsr-old0000000": sampleOrder("TSR-OLD0000000", base, "cust-1"),
		"tsr-new0000000": sampleOrder("TSR-NEW0000000", base.AddDate(0, 0, 10), "cust-1"),
	}}
	local := localstore.New()
	// Cached but not yet listed remotely.
	local.Put("user:cust-1", "order:tsr-mid0000000", sampleOrder("TSR-MID0000000", base.AddDate(0, 0, 5), "cust-1"))
	// Duplicate of a persisted row must not appear twice.
	local.Put("user:cust-1", "order:tsr-new0000000", sampleOrder("TSR-NEW0000000", base.AddDate(0, 0, 10), "cust-1"))

	svc := New(repo, local)
	got, err := svc.Recent(context.Background(), authedActor("cust-1"))
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(got))
	}
	want := []string{"TSR-NEW0000000", "TSR-MID0000000", "TSR-OLD0000000"}
	for i, number := range want {
		if got[i].Number != number {
			t.Fatalf("order %d = %q, want %q", i, got[i].Number, number)
		}
	}
}

func TestRecentEmptyHistoryShowsSamples(t *testing.T) {
	local := localstore.New()
	local.Put(SampleNamespace, "order:tsr-cccc000000", sampleOrder("TSR-CCCC000000", time.Now(), ""))

	svc := New(&stubRepo{orders: map[string]domain.Order{}}, local)
	got, err := svc.Recent(context.Background(), authedActor("cust-2"))
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 || got[0].Number != "TSR-CCCC000000" {
		t.Fatalf("expected the seeded sample, got %+v", got)
	}
}
