// Package models defines the canonical screening report, landlord criteria,
// and the derived match result shared across the screening pipeline.
package models

import "time"

// ApplicantInfo is the applicant-supplied data the pipeline starts from.
// Sandbox checks never see this PII; only the public-safety watchlist query
// is built from the real name.
type ApplicantInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// FullName joins first and last name for watchlist queries.
func (a ApplicantInfo) FullName() string {
	switch {
	case a.FirstName == "":
		return a.LastName
	case a.LastName == "":
		return a.FirstName
	default:
		return a.FirstName + " " + a.LastName
	}
}

// Crime describes one watchlist entry attached to a public-safety match.
type Crime struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PublicSafetyMatch is the outcome of the public-safety watchlist check.
// MatchFound forces the match score to zero regardless of every other field.
type PublicSafetyMatch struct {
	MatchFound   bool    `json:"match_found"`
	MatchCount   int     `json:"match_count"`
	SearchedName string  `json:"searched_name"`
	Crimes       []Crime `json:"crimes,omitempty"`
}

// ScreeningReport is the canonical normalized report produced once per
// applicant and reused read-only across applications. A nil FraudRiskScore
// means the fraud check did not run.
type ScreeningReport struct {
	ApplicantID      string            `json:"applicant_id"`
	CreditScore      int               `json:"credit_score"`
	Evictions        int               `json:"evictions"`
	Bankruptcies     int               `json:"bankruptcies"`
	CriminalOffenses int               `json:"criminal_offenses"`
	FraudRiskScore   *float64          `json:"fraud_risk_score,omitempty"`
	IdentityVerified bool              `json:"identity_verified"`
	PublicSafety     PublicSafetyMatch `json:"public_safety_match"`
	SourceRequestIDs map[string]string `json:"source_request_ids,omitempty"`
	Synthetic        bool              `json:"synthetic"`
	CreatedAt        time.Time         `json:"created_at"`
}

// ScreeningCriteria is owned by the listing and supplied by the seller.
// MinCreditScore of 0 means credit is not required; each boolean toggles
// whether that category is scored at all.
type ScreeningCriteria struct {
	MinCreditScore int  `json:"min_credit_score"`
	NoEvictions    bool `json:"no_evictions"`
	NoBankruptcy   bool `json:"no_bankruptcy"`
	NoCriminal     bool `json:"no_criminal"`
}

// MatchColor tiers a match score for display.
type MatchColor string

const (
	MatchGreen  MatchColor = "green"
	MatchYellow MatchColor = "yellow"
	MatchRed    MatchColor = "red"
)

// CategoryResult is the per-category scoring breakdown.
type CategoryResult struct {
	Passed    bool   `json:"passed"`
	Points    int    `json:"points"`
	MaxPoints int    `json:"max_points"`
	Detail    string `json:"detail"`
}

// MatchResult compares one report against one listing's criteria.
// Recomputed fresh for every (report, criteria) pair, never mutated after creation.
type MatchResult struct {
	MatchScore     int                       `json:"match_score"`
	MatchColor     MatchColor                `json:"match_color"`
	MatchBreakdown map[string]CategoryResult `json:"match_breakdown"`
	TotalPoints    int                       `json:"total_points"`
	EarnedPoints   int                       `json:"earned_points"`
}
