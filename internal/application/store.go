package application

import (
	"context"
	"sort"
	"sync"

	"rently/pkg/platform/sentinel"
)

// Store is the application persistence contract. ListByListing returns
// applications ordered by match score, highest first, so sellers see the
// strongest candidates on top.
type Store interface {
	Create(ctx context.Context, a *Application) error
	FindByID(ctx context.Context, id string) (*Application, error)
	FindByListingAndApplicant(ctx context.Context, listingID, applicantID string) (*Application, error)
	ListByListing(ctx context.Context, listingID string) ([]*Application, error)
	Update(ctx context.Context, a *Application) error
}

// InMemoryStore keeps applications in a process-local map.
type InMemoryStore struct {
	mu   sync.RWMutex
	apps map[string]Application
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{apps: make(map[string]Application)}
}

func (s *InMemoryStore) Create(_ context.Context, a *Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.apps[a.ID]; exists {
		return sentinel.ErrConflict
	}
	for _, existing := range s.apps {
		if existing.ListingID == a.ListingID && existing.ApplicantID == a.ApplicantID {
			return sentinel.ErrConflict
		}
	}
	s.apps[a.ID] = *a
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id string) (*Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.apps[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := a
	return &copied, nil
}

func (s *InMemoryStore) FindByListingAndApplicant(_ context.Context, listingID, applicantID string) (*Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.apps {
		if a.ListingID == listingID && a.ApplicantID == applicantID {
			copied := a
			return &copied, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) ListByListing(_ context.Context, listingID string) ([]*Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Application
	for _, a := range s.apps {
		if a.ListingID == listingID {
			copied := a
			out = append(out, &copied)
		}
	}
	sortByMatchScore(out)
	return out, nil
}

func (s *InMemoryStore) Update(_ context.Context, a *Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.apps[a.ID]; !exists {
		return sentinel.ErrNotFound
	}
	s.apps[a.ID] = *a
	return nil
}

// sortByMatchScore orders highest score first; unscreened applications sink
// to the bottom, ties break on submission time.
func sortByMatchScore(apps []*Application) {
	sort.SliceStable(apps, func(i, j int) bool {
		si, sj := -1, -1
		if apps[i].Match != nil {
			si = apps[i].Match.MatchScore
		}
		if apps[j].Match != nil {
			sj = apps[j].Match.MatchScore
		}
		if si != sj {
			return si > sj
		}
		return apps[i].CreatedAt.Before(apps[j].CreatedAt)
	})
}
