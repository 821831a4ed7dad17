package store

import (
	"context"
	"fmt"
	"sync"

	"rently/internal/screening/models"
	"rently/pkg/platform/sentinel"
)

// InMemory keeps screening reports in a process-local map. Reports are
// immutable once stored, so reads return copies to keep that guarantee even
// against careless callers.
type InMemory struct {
	mu      sync.RWMutex
	reports map[string]models.ScreeningReport
}

// NewInMemory creates an empty in-memory report store.
func NewInMemory() *InMemory {
	return &InMemory{reports: make(map[string]models.ScreeningReport)}
}

func (s *InMemory) Find(_ context.Context, applicantID string) (*models.ScreeningReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.reports[applicantID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := report
	return &copied, nil
}

func (s *InMemory) Save(_ context.Context, report *models.ScreeningReport) error {
	if report == nil || report.ApplicantID == "" {
		return fmt.Errorf("report with applicant id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// First write wins, matching the postgres and redis stores: a report is
	// canonical once stored and concurrent producers must not replace it.
	if _, exists := s.reports[report.ApplicantID]; exists {
		return nil
	}
	s.reports[report.ApplicantID] = *report
	return nil
}
