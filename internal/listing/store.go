package listing

import (
	"context"
	"sync"

	"rently/pkg/platform/sentinel"
)

// Store is the listing persistence contract.
type Store interface {
	Create(ctx context.Context, l *Listing) error
	FindByID(ctx context.Context, id string) (*Listing, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*Listing, error)
	Update(ctx context.Context, l *Listing) error
}

// InMemoryStore keeps listings in a process-local map.
type InMemoryStore struct {
	mu       sync.RWMutex
	listings map[string]Listing
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{listings: make(map[string]Listing)}
}

func (s *InMemoryStore) Create(_ context.Context, l *Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.listings[l.ID]; exists {
		return sentinel.ErrConflict
	}
	s.listings[l.ID] = *l
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id string) (*Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.listings[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := l
	return &copied, nil
}

func (s *InMemoryStore) ListBySeller(_ context.Context, sellerID string) ([]*Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Listing
	for _, l := range s.listings {
		if l.SellerID == sellerID {
			copied := l
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *InMemoryStore) Update(_ context.Context, l *Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.listings[l.ID]; !exists {
		return sentinel.ErrNotFound
	}
	s.listings[l.ID] = *l
	return nil
}
