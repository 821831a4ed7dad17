package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"rently/internal/audit"
	"rently/internal/listing"
	"rently/internal/platform/metrics"
	"rently/internal/screening/models"
	dErrors "rently/pkg/domain-errors"
	"rently/pkg/platform/sentinel"
	"rently/pkg/requestcontext"
)

// Screener produces and scores screening reports. Submission treats screening
// as best-effort: a screening failure never blocks the application itself.
type Screener interface {
	GetOrCreateReport(ctx context.Context, applicantID string, info models.ApplicantInfo) (*models.ScreeningReport, error)
	Score(report *models.ScreeningReport, criteria models.ScreeningCriteria) models.MatchResult
}

// ListingSource resolves the listing an application targets.
type ListingSource interface {
	Get(ctx context.Context, id string) (*listing.Listing, error)
}

// Service owns the application lifecycle: submit, list for a seller, decide.
type Service struct {
	store     Store
	listings  ListingSource
	screener  Screener
	publisher *audit.Publisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func NewService(store Store, listings ListingSource, screener Screener, publisher *audit.Publisher, logger *slog.Logger, m *metrics.Metrics) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("application store is required")
	}
	if listings == nil {
		return nil, fmt.Errorf("listing source is required")
	}
	if screener == nil {
		return nil, fmt.Errorf("screener is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Service{
		store:     store,
		listings:  listings,
		screener:  screener,
		publisher: publisher,
		logger:    logger,
		metrics:   m,
	}, nil
}

// SubmitRequest carries the applicant's submission.
type SubmitRequest struct {
	ListingID string               `json:"listing_id"`
	Applicant models.ApplicantInfo `json:"applicant"`
	Message   string               `json:"message,omitempty"`
}

// Submit creates an application against a listing, running the screening
// pipeline and scoring the resulting report against the listing's criteria.
// The match result is snapshotted onto the application; a screening failure
// leaves the application unscreened rather than rejecting it.
func (s *Service) Submit(ctx context.Context, applicantID string, req SubmitRequest) (*Application, error) {
	if applicantID == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "applicant is required")
	}

	l, err := s.listings.Get(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}
	if l.Status != listing.StatusActive {
		return nil, dErrors.New(dErrors.CodeConflict, "listing is not accepting applications")
	}

	// Reject duplicates before running screening so a repeat submission does
	// not burn provider calls. Create's conflict check backstops the race.
	if _, err := s.store.FindByListingAndApplicant(ctx, l.ID, applicantID); err == nil {
		return nil, dErrors.New(dErrors.CodeConflict, "applicant already applied to this listing")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "application lookup failed")
	}

	now := requestcontext.Now(ctx)
	app := Application{
		ID:          uuid.NewString(),
		ListingID:   l.ID,
		ApplicantID: applicantID,
		Applicant:   req.Applicant,
		Message:     req.Message,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := app.Validate(); err != nil {
		return nil, err
	}

	report, err := s.screener.GetOrCreateReport(ctx, applicantID, req.Applicant)
	if err != nil {
		s.logger.WarnContext(ctx, "screening unavailable, submitting without match score",
			"request_id", requestcontext.RequestID(ctx),
			"applicant_id", applicantID,
			"listing_id", l.ID,
			"error", err,
		)
	} else {
		match := s.screener.Score(report, l.Criteria)
		app.Match = &match
		app.Screened = true
	}

	if err := s.store.Create(ctx, &app); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "applicant already applied to this listing")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create application")
	}

	if s.metrics != nil {
		s.metrics.IncrementApplicationsSubmitted()
	}
	if app.Match != nil {
		_ = s.publisher.Emit(ctx, audit.Event{
			Type:        audit.EventApplicationScored,
			ApplicantID: applicantID,
			Detail: map[string]string{
				"listing_id":  l.ID,
				"match_score": strconv.Itoa(app.Match.MatchScore),
				"match_color": string(app.Match.MatchColor),
			},
		})
	}
	return &app, nil
}

// Get returns one application, visible to the applicant or the listing's seller.
func (s *Service) Get(ctx context.Context, callerID, id string) (*Application, error) {
	app, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, wrapApplicationErr(err)
	}
	if app.ApplicantID == callerID {
		return app, nil
	}
	l, err := s.listings.Get(ctx, app.ListingID)
	if err != nil {
		return nil, err
	}
	if l.SellerID != callerID {
		return nil, dErrors.New(dErrors.CodeForbidden, "application belongs to another party")
	}
	return app, nil
}

// ListForListing returns a listing's applications for its seller, ordered by
// match score, highest first.
func (s *Service) ListForListing(ctx context.Context, sellerID, listingID string) ([]*Application, error) {
	l, err := s.listings.Get(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if l.SellerID != sellerID {
		return nil, dErrors.New(dErrors.CodeForbidden, "listing belongs to another seller")
	}
	apps, err := s.store.ListByListing(ctx, listingID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list applications")
	}
	return apps, nil
}

// Decide moves a pending application to approved or declined. Only the
// listing's seller may decide, and a decision is final.
func (s *Service) Decide(ctx context.Context, sellerID, applicationID string, approve bool) (*Application, error) {
	app, err := s.store.FindByID(ctx, applicationID)
	if err != nil {
		return nil, wrapApplicationErr(err)
	}
	l, err := s.listings.Get(ctx, app.ListingID)
	if err != nil {
		return nil, err
	}
	if l.SellerID != sellerID {
		return nil, dErrors.New(dErrors.CodeForbidden, "listing belongs to another seller")
	}
	if app.Status != StatusPending {
		return nil, dErrors.New(dErrors.CodeConflict, "application already decided")
	}

	if approve {
		app.Status = StatusApproved
	} else {
		app.Status = StatusDeclined
	}
	app.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.Update(ctx, app); err != nil {
		return nil, wrapApplicationErr(err)
	}
	return app, nil
}

func wrapApplicationErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "application not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "application storage failure")
}
