// Package localstore is a per-user namespaced key-value cache used for
// optimistic display of profile and order snapshots. It is never the
// source of truth once a database row exists.
package localstore

import (
	"sync"
	"time"
)

type Item struct {
	Key      string
	Value    interface{}
	StoredAt time.Time
}

type Store struct {
	mu   sync.RWMutex
	data map[string]map[string]Item
	now  func() time.Time
}

func New() *Store {
	return &Store{
		data: make(map[string]map[string]Item),
		now:  time.Now,
	}
}

// Put stores value under namespace/key, refreshing the stored-at timestamp.
func (s *Store) Put(namespace, key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns := s.data[namespace]
	if ns == nil {
		ns = make(map[string]Item)
		s.data[namespace] = ns
	}
	ns[key] = Item{Key: key, Value: value, StoredAt: s.now()}
}

func (s *Store) Get(namespace, key string) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.data[namespace][key]
	return item, ok
}

// List returns all items in a namespace in unspecified order.
func (s *Store) List(namespace string) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ns := s.data[namespace]
	items := make([]Item, 0, len(ns))
	for _, item := range ns {
		items = append(items, item)
	}
	return items
}

func (s *Store) Delete(namespace, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data[namespace], key)
}
