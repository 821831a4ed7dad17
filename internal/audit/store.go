package audit

import (
	"context"
	"sync"
)

// Store is the audit persistence contract: append-only plus per-applicant reads.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByApplicant(ctx context.Context, applicantID string) ([]Event, error)
}

// InMemoryStore keeps audit events in memory, newest last.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[string][]Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[string][]Event)}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.ApplicantID] = append(s.events[event.ApplicantID], event)
	return nil
}

func (s *InMemoryStore) ListByApplicant(_ context.Context, applicantID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events[applicantID]...), nil
}
