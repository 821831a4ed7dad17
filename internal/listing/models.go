// Package listing owns property listings and the screening criteria a seller
// attaches to them.
package listing

import (
	"strings"
	"time"

	"rently/internal/screening/models"
	dErrors "rently/pkg/domain-errors"
)

// Status tracks listing visibility.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Listing is one property offered for rent or sale.
type Listing struct {
	ID          string                   `json:"id"`
	SellerID    string                   `json:"seller_id"`
	Title       string                   `json:"title"`
	Description string                   `json:"description,omitempty"`
	Address     string                   `json:"address"`
	PriceCents  int64                    `json:"price_cents"`
	Criteria    models.ScreeningCriteria `json:"screening_criteria"`
	Status      Status                   `json:"status"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// Validate enforces the listing invariants at the domain boundary.
func (l *Listing) Validate() error {
	if strings.TrimSpace(l.Title) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "listing title is required")
	}
	if strings.TrimSpace(l.Address) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "listing address is required")
	}
	if l.PriceCents <= 0 {
		return dErrors.New(dErrors.CodeBadRequest, "listing price must be positive")
	}
	if l.Criteria.MinCreditScore < 0 {
		return dErrors.New(dErrors.CodeBadRequest, "minimum credit score cannot be negative")
	}
	return nil
}
