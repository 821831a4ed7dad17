package listing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"rently/internal/platform/metrics"
	dErrors "rently/pkg/domain-errors"
	"rently/pkg/platform/sentinel"
	"rently/pkg/requestcontext"
)

// Service orchestrates listing lifecycle management.
type Service struct {
	store   Store
	metrics *metrics.Metrics
}

func NewService(store Store, m *metrics.Metrics) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("listing store is required")
	}
	return &Service{store: store, metrics: m}, nil
}

// Create validates and persists a new listing owned by sellerID.
func (s *Service) Create(ctx context.Context, sellerID string, l Listing) (*Listing, error) {
	if sellerID == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "seller is required")
	}

	now := requestcontext.Now(ctx)
	l.ID = uuid.NewString()
	l.SellerID = sellerID
	l.Status = StatusActive
	l.CreatedAt = now
	l.UpdatedAt = now

	if err := l.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, &l); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create listing")
	}

	if s.metrics != nil {
		s.metrics.IncrementListingsCreated()
	}
	return &l, nil
}

// Get retrieves a listing by ID.
func (s *Service) Get(ctx context.Context, id string) (*Listing, error) {
	l, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, wrapListingErr(err)
	}
	return l, nil
}

// ListBySeller returns all listings owned by a seller.
func (s *Service) ListBySeller(ctx context.Context, sellerID string) ([]*Listing, error) {
	return s.store.ListBySeller(ctx, sellerID)
}

// UpdateCriteria replaces the screening criteria on a listing the seller owns.
// Already-scored applications keep their original MatchResult; only new
// applications see the updated criteria.
func (s *Service) UpdateCriteria(ctx context.Context, sellerID, listingID string, criteria ScreeningCriteriaUpdate) (*Listing, error) {
	l, err := s.store.FindByID(ctx, listingID)
	if err != nil {
		return nil, wrapListingErr(err)
	}
	if l.SellerID != sellerID {
		return nil, dErrors.New(dErrors.CodeForbidden, "listing belongs to another seller")
	}
	if criteria.MinCreditScore < 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "minimum credit score cannot be negative")
	}

	l.Criteria.MinCreditScore = criteria.MinCreditScore
	l.Criteria.NoEvictions = criteria.NoEvictions
	l.Criteria.NoBankruptcy = criteria.NoBankruptcy
	l.Criteria.NoCriminal = criteria.NoCriminal
	l.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.Update(ctx, l); err != nil {
		return nil, wrapListingErr(err)
	}
	return l, nil
}

// ScreeningCriteriaUpdate is the mutable subset of listing criteria.
type ScreeningCriteriaUpdate struct {
	MinCreditScore int  `json:"min_credit_score"`
	NoEvictions    bool `json:"no_evictions"`
	NoBankruptcy   bool `json:"no_bankruptcy"`
	NoCriminal     bool `json:"no_criminal"`
}

func wrapListingErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "listing not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "listing store failure")
}
