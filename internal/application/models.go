// Package application owns rental applications: the submission a buyer makes
// against a listing, the match result computed at submission time, and the
// seller's decision.
package application

import (
	"strings"
	"time"

	"rently/internal/screening/models"
	dErrors "rently/pkg/domain-errors"
)

// Status tracks where an application sits in the seller's pipeline.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDeclined Status = "declined"
)

// Application is one applicant's submission against one listing. The match
// result is a snapshot taken at submission time; later criteria edits on the
// listing do not rewrite it.
type Application struct {
	ID          string               `json:"id"`
	ListingID   string               `json:"listing_id"`
	ApplicantID string               `json:"applicant_id"`
	Applicant   models.ApplicantInfo `json:"applicant"`
	Message     string               `json:"message,omitempty"`
	Status      Status               `json:"status"`
	Match       *models.MatchResult  `json:"match,omitempty"`
	Screened    bool                 `json:"screened"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// Validate enforces submission invariants at the domain boundary.
func (a *Application) Validate() error {
	if strings.TrimSpace(a.ListingID) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "listing ID is required")
	}
	if strings.TrimSpace(a.ApplicantID) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "applicant ID is required")
	}
	if strings.TrimSpace(a.Applicant.FirstName) == "" && strings.TrimSpace(a.Applicant.LastName) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "applicant name is required")
	}
	return nil
}
