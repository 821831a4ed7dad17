package provider

import (
	"context"
	"log/slog"

	"rently/internal/screening/extract"
	"rently/internal/screening/identity"
	"rently/internal/screening/metrics"
	"rently/internal/screening/models"
)

// Candidate keys per check. Upstream renames these across releases; the
// extract heuristics search all of them.
var (
	fraudScoreKeys  = []string{"fraudRiskScore", "riskScore", "fraud_score", "score"}
	identityKeys    = []string{"verified", "identityVerified", "match"}
	creditScoreKeys = []string{"creditScore", "ficoScore", "credit_score", "score"}
	bankruptcyKeys  = []string{"bankruptcies", "bankruptcyRecords", "bankruptcy_count"}
	criminalKeys    = []string{"offenses", "criminalRecords", "records", "convictions"}
	evictionKeys    = []string{"evictions", "evictionCount", "evictionRecords", "eviction_count", "filings"}
)

const watchlistPageSize = 10

// Partial carries one adapter's contribution to the canonical report.
// Defaulted marks results where the upstream call failed and the documented
// safe default was substituted; the fold never aborts on a defaulted partial.
type Partial struct {
	CreditScore      int
	Evictions        int
	Bankruptcies     int
	CriminalOffenses int
	FraudRiskScore   *float64
	IdentityVerified bool
	PublicSafety     models.PublicSafetyMatch
	RequestID        string
	Defaulted        bool
}

// Adapters runs the six provider checks. Each adapter is its own failure
// boundary: upstream errors are logged and replaced with documented defaults
// so one provider outage never aborts the other checks.
type Adapters struct {
	client   Client
	rotation *identity.Rotation
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewAdapters wires the adapters to a vendor client and an identity rotation.
func NewAdapters(client Client, rotation *identity.Rotation, logger *slog.Logger, m *metrics.Metrics) *Adapters {
	return &Adapters{client: client, rotation: rotation, logger: logger, metrics: m}
}

// RunFraud returns the fraud risk score. Default on failure: nil (not checked).
func (a *Adapters) RunFraud(ctx context.Context, token string) Partial {
	body, reqID, err := a.runSandboxCheck(ctx, token, identity.CheckFraud)
	if err != nil {
		return a.defaulted(ctx, identity.CheckFraud, err)
	}
	p := Partial{RequestID: reqID}
	if score, ok := extract.FindFirstValue(body, fraudScoreKeys...); ok {
		p.FraudRiskScore = &score
	}
	a.metrics.RecordCheck(string(identity.CheckFraud), "ok")
	return p
}

// RunIdentity returns identity verification. Default on failure: not verified.
func (a *Adapters) RunIdentity(ctx context.Context, token string) Partial {
	body, reqID, err := a.runSandboxCheck(ctx, token, identity.CheckIdentity)
	if err != nil {
		return a.defaulted(ctx, identity.CheckIdentity, err)
	}
	verified := extract.CountOccurrences(body, identityKeys...) > 0
	a.metrics.RecordCheck(string(identity.CheckIdentity), "ok")
	return Partial{IdentityVerified: verified, RequestID: reqID}
}

// RunCredit returns the bureau credit score and bankruptcy count.
// Default on failure: 0 for both.
func (a *Adapters) RunCredit(ctx context.Context, token string) Partial {
	body, reqID, err := a.runSandboxCheck(ctx, token, identity.CheckCredit)
	if err != nil {
		return a.defaulted(ctx, identity.CheckCredit, err)
	}
	p := Partial{RequestID: reqID}
	if score, ok := extract.FindFirstValue(body, creditScoreKeys...); ok {
		p.CreditScore = int(score)
	}
	p.Bankruptcies = extract.CountOccurrences(body, bankruptcyKeys...)
	a.metrics.RecordCheck(string(identity.CheckCredit), "ok")
	return p
}

// RunCriminal returns the criminal offense count. Default on failure: 0.
func (a *Adapters) RunCriminal(ctx context.Context, token string) Partial {
	body, reqID, err := a.runSandboxCheck(ctx, token, identity.CheckCriminal)
	if err != nil {
		return a.defaulted(ctx, identity.CheckCriminal, err)
	}
	a.metrics.RecordCheck(string(identity.CheckCriminal), "ok")
	return Partial{CriminalOffenses: extract.CountOccurrences(body, criminalKeys...), RequestID: reqID}
}

// RunEviction returns the eviction record count. Default on failure: 0.
func (a *Adapters) RunEviction(ctx context.Context, token string) Partial {
	body, reqID, err := a.runSandboxCheck(ctx, token, identity.CheckEviction)
	if err != nil {
		return a.defaulted(ctx, identity.CheckEviction, err)
	}
	a.metrics.RecordCheck(string(identity.CheckEviction), "ok")
	return Partial{Evictions: extract.CountOccurrences(body, evictionKeys...), RequestID: reqID}
}

// RunPublicSafety queries the watchlist with the applicant's real name; this
// is the one check not built from a sandbox identity. A failed fetch is
// treated as clear rather than a distinct unknown state, so an outage cannot
// zero out every applicant's score.
func (a *Adapters) RunPublicSafety(ctx context.Context, info models.ApplicantInfo) Partial {
	name := info.FullName()
	result, err := a.client.SearchWatchlist(ctx, name, watchlistPageSize)
	if err != nil {
		a.logger.WarnContext(ctx, "screening check failed, using default",
			"check", "public_safety",
			"error", err,
		)
		a.metrics.RecordCheck("public_safety", "defaulted")
		return Partial{PublicSafety: models.PublicSafetyMatch{SearchedName: name}, Defaulted: true}
	}

	match := models.PublicSafetyMatch{
		SearchedName: name,
		MatchCount:   result.Total,
	}
	if len(result.Items) > 0 {
		match.MatchFound = true
		if match.MatchCount == 0 {
			match.MatchCount = len(result.Items)
		}
		for _, item := range result.Items {
			match.Crimes = append(match.Crimes, models.Crime{
				Name:        item.Title,
				Description: item.Description,
			})
		}
	}
	a.metrics.RecordCheck("public_safety", "ok")
	return Partial{PublicSafety: match}
}

func (a *Adapters) runSandboxCheck(ctx context.Context, token string, check identity.CheckType) (any, string, error) {
	profile, ok := a.rotation.Next(check)
	if !ok {
		return nil, "", errNoPool(check)
	}
	return a.client.RunCheck(ctx, token, check, profile)
}

func (a *Adapters) defaulted(ctx context.Context, check identity.CheckType, err error) Partial {
	a.logger.WarnContext(ctx, "screening check failed, using default",
		"check", string(check),
		"error", err,
	)
	a.metrics.RecordCheck(string(check), "defaulted")
	return Partial{Defaulted: true}
}

type errNoPool identity.CheckType

func (e errNoPool) Error() string { return "no identity pool for check " + string(e) }
