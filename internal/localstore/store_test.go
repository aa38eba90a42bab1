package localstore

import (
	"testing"
	"time"
)

func TestPutRefreshesStoredAt(t *testing.T) {
	store := New()
	current := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	store.Put("user:1", "profile", "v1")
	first, ok := store.Get("user:1", "profile")
	if !ok {
		t.Fatalf("expected item")
	}

	current = current.Add(time.Minute)
	store.Put("user:1", "profile", "v2")
	second, _ := store.Get("user:1", "profile")
	if !second.StoredAt.After(first.StoredAt) {
		t.Fatalf("stored-at not refreshed: %v vs %v", second.StoredAt, first.StoredAt)
	}
	if second.Value != "v2" {
		t.Fatalf("unexpected value %v", second.Value)
	}
}

func TestNamespacesAreIsolated(t *testing.T) {
	store := New()
	store.Put("user:1", "order", "a")
	store.Put("user:2", "order", "b")

	if _, ok := store.Get("user:3", "order"); ok {
		t.Fatalf("unexpected hit for empty namespace")
	}
	if items := store.List("user:1"); len(items) != 1 || items[0].Value != "a" {
		t.Fatalf("unexpected items %+v", items)
	}

	store.Delete("user:1", "order")
	if items := store.List("user:1"); len(items) != 0 {
		t.Fatalf("delete did not remove item")
	}
	if items := store.List("user:2"); len(items) != 1 {
		t.Fatalf("delete leaked across namespaces")
	}
}
