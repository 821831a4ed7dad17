package screening

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"rently/internal/audit"
	"rently/internal/screening/metrics"
	"rently/internal/screening/models"
	"rently/internal/screening/score"
	"rently/internal/screening/store"
	"rently/pkg/platform/sentinel"
)

// Service is the screening core's surface to the application-submission flow:
// report reuse, orchestration, and scoring.
type Service struct {
	reports      store.ReportStore
	orchestrator *Orchestrator
	publisher    *audit.Publisher
	logger       *slog.Logger
	metrics      *metrics.Metrics
}

// NewService wires the screening service. publisher may be nil.
func NewService(reports store.ReportStore, orchestrator *Orchestrator, publisher *audit.Publisher, logger *slog.Logger, m *metrics.Metrics) (*Service, error) {
	if reports == nil {
		return nil, fmt.Errorf("report store is required")
	}
	if orchestrator == nil {
		return nil, fmt.Errorf("orchestrator is required")
	}
	return &Service{
		reports:      reports,
		orchestrator: orchestrator,
		publisher:    publisher,
		logger:       logger,
		metrics:      m,
	}, nil
}

// GetOrCreateReport returns the canonical report for an applicant. An
// existing report with a populated credit score is reused verbatim: the same
// applicant's risk profile does not change between applications in quick
// succession, so re-querying paid providers is wasted cost. Otherwise the
// orchestrator produces a fresh report, which is persisted for later reuse.
func (s *Service) GetOrCreateReport(ctx context.Context, applicantID string, info models.ApplicantInfo) (*models.ScreeningReport, error) {
	if applicantID == "" {
		return nil, fmt.Errorf("applicant id is required")
	}

	existing, err := s.reports.Find(ctx, applicantID)
	switch {
	case err == nil && existing.CreditScore > 0:
		s.metrics.RecordCacheHit()
		_ = s.publisher.Emit(ctx, audit.Event{
			Type:        audit.EventReportReused,
			ApplicantID: applicantID,
		})
		return existing, nil
	case err != nil && !errors.Is(err, sentinel.ErrNotFound):
		// A broken cache must not block screening; fall through to a fresh run.
		s.logger.WarnContext(ctx, "report cache lookup failed",
			"applicant_id", applicantID,
			"error", err,
		)
	}
	s.metrics.RecordCacheMiss()

	report := s.orchestrator.ProduceReport(ctx, applicantID, info)

	if err := s.reports.Save(ctx, report); err != nil {
		// The caller still gets a usable report; only reuse is lost.
		s.logger.ErrorContext(ctx, "failed to persist screening report",
			"applicant_id", applicantID,
			"error", err,
		)
	}

	eventType := audit.EventReportCreated
	if report.Synthetic {
		eventType = audit.EventSyntheticFallback
	}
	_ = s.publisher.Emit(ctx, audit.Event{
		Type:        eventType,
		ApplicantID: applicantID,
	})
	return report, nil
}

// Score compares a report against a listing's criteria. Pure passthrough to
// the calculator so callers depend on the service, not the scoring package.
func (s *Service) Score(report *models.ScreeningReport, criteria models.ScreeningCriteria) models.MatchResult {
	return score.Score(report, criteria)
}
