// Package screening orchestrates the six external verification checks into
// one canonical report and scores it against listing criteria.
package screening

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"rently/internal/platform/config"
	"rently/internal/screening/metrics"
	"rently/internal/screening/models"
	"rently/internal/screening/provider"
	"rently/internal/screening/session"
)

// Orchestrator sequences the provider adapters into one canonical report,
// falling back to synthetic data when the provider is unconfigured or
// authentication fails. It never returns an error: screening must not block
// an application from being submitted.
type Orchestrator struct {
	cfg      config.ScreeningConfig
	session  *session.Session
	adapters *provider.Adapters
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewOrchestrator wires the orchestrator. session may be nil when the
// provider is unconfigured.
func NewOrchestrator(cfg config.ScreeningConfig, sess *session.Session, adapters *provider.Adapters, logger *slog.Logger, m *metrics.Metrics) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		session:  sess,
		adapters: adapters,
		logger:   logger,
		metrics:  m,
		now:      time.Now,
	}
}

// ProduceReport runs the full screening pipeline for one applicant. The five
// sandbox checks are mutually independent and run concurrently; the
// public-safety check joins them, and the fold below cannot start until every
// check has completed. Each adapter degrades to its documented default on
// failure, so the report always comes back fully populated.
func (o *Orchestrator) ProduceReport(ctx context.Context, applicantID string, info models.ApplicantInfo) *models.ScreeningReport {
	start := o.now()
	defer func() {
		o.metrics.ObserveDuration(time.Since(start).Seconds())
	}()

	if !o.cfg.Configured() || o.session == nil {
		o.logger.InfoContext(ctx, "screening provider unconfigured, generating synthetic report",
			"applicant_id", applicantID,
		)
		return o.syntheticReport(applicantID)
	}

	token, ok := o.session.Credential(ctx)
	if !ok {
		o.logger.WarnContext(ctx, "screening provider unavailable, generating synthetic report",
			"applicant_id", applicantID,
		)
		return o.syntheticReport(applicantID)
	}

	var (
		fraud, ident, credit, criminal, eviction, publicSafety provider.Partial
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { fraud = o.adapters.RunFraud(gctx, token); return nil })
	g.Go(func() error { ident = o.adapters.RunIdentity(gctx, token); return nil })
	g.Go(func() error { credit = o.adapters.RunCredit(gctx, token); return nil })
	g.Go(func() error { criminal = o.adapters.RunCriminal(gctx, token); return nil })
	g.Go(func() error { eviction = o.adapters.RunEviction(gctx, token); return nil })
	g.Go(func() error { publicSafety = o.adapters.RunPublicSafety(gctx, info); return nil })
	// Adapters absorb their own failures, so the only wait outcome is completion.
	_ = g.Wait()

	report := &models.ScreeningReport{
		ApplicantID:      applicantID,
		CreditScore:      credit.CreditScore,
		Evictions:        eviction.Evictions,
		Bankruptcies:     credit.Bankruptcies,
		CriminalOffenses: criminal.CriminalOffenses,
		FraudRiskScore:   fraud.FraudRiskScore,
		IdentityVerified: ident.IdentityVerified,
		PublicSafety:     publicSafety.PublicSafety,
		SourceRequestIDs: sourceRequestIDs(map[string]string{
			"fraud":    fraud.RequestID,
			"identity": ident.RequestID,
			"credit":   credit.RequestID,
			"criminal": criminal.RequestID,
			"eviction": eviction.RequestID,
		}),
		CreatedAt: o.now(),
	}

	o.logger.InfoContext(ctx, "screening report produced",
		"applicant_id", applicantID,
		"credit_score", report.CreditScore,
		"public_safety_match", report.PublicSafety.MatchFound,
	)
	return report
}

func sourceRequestIDs(ids map[string]string) map[string]string {
	out := make(map[string]string, len(ids))
	for check, id := range ids {
		if id != "" {
			out[check] = id
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
