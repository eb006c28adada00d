// Package memstore provides an in-memory implementation of alert.Store.
package memstore

import (
	"context"
	"sync"

	"github.com/linnemanlabs/aegis/internal/alert"
)

// Store holds alert records in memory. Suitable for dev/testing.
// Ingestion order is preserved for List.
type Store struct {
	mu    sync.RWMutex
	order []string                // ids in ingestion order
	byID  map[string]*alert.Alert // alert ID -> record
}

// New initializes a new in-memory Store.
func New() *Store {
	return &Store{
		byID: make(map[string]*alert.Alert),
	}
}

// List returns copies of all alerts in ingestion order.
func (s *Store) List(_ context.Context) ([]alert.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]alert.Alert, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.byID[id])
	}
	return out, nil
}

// Get retrieves an alert by its ID. Returns a copy.
func (s *Store) Get(_ context.Context, id string) (*alert.Alert, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.byID[id]
	if !ok {
		return nil, false, nil
	}
	cp := *a
	return &cp, true, nil
}

// Put stores a copy of the alert. New ids are appended to the listing order;
// existing ids are replaced in place.
func (s *Store) Put(_ context.Context, al *alert.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[al.ID]; !ok {
		s.order = append(s.order, al.ID)
	}
	cp := *al
	s.byID[al.ID] = &cp
	return nil
}

// UpdateStatus mutates the status of one record. The listing order is
// unchanged. Returns a copy of the updated record, or alert.ErrNotFound.
func (s *Store) UpdateStatus(_ context.Context, id string, status alert.Status) (*alert.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byID[id]
	if !ok {
		return nil, alert.ErrNotFound
	}
	a.Status = status
	cp := *a
	return &cp, nil
}
