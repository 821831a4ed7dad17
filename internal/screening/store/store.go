// Package store persists canonical screening reports keyed by applicant so a
// repeat application reuses the original report instead of re-querying paid
// providers.
package store

import (
	"context"

	"rently/internal/screening/models"
)

// ReportStore is the report reuse cache contract. Find returns
// sentinel.ErrNotFound when no report exists for the applicant.
type ReportStore interface {
	Find(ctx context.Context, applicantID string) (*models.ScreeningReport, error)
	Save(ctx context.Context, report *models.ScreeningReport) error
}
