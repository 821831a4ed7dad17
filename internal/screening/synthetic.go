package screening

import (
	"math/rand/v2"

	"rently/internal/screening/models"
)

// syntheticReport generates a random but plausible report so the pipeline is
// always demoable without live provider access. Distributions are fixed:
// credit clusters in the mid-600s to mid-700s, adverse records are uncommon,
// and the watchlist never matches synthetically because a fabricated hard
// fail would zero out a real applicant's score.
func (o *Orchestrator) syntheticReport(applicantID string) *models.ScreeningReport {
	o.metrics.RecordSynthetic()

	fraud := rand.Float64() * 5 // mostly under the pass threshold
	report := &models.ScreeningReport{
		ApplicantID:      applicantID,
		CreditScore:      580 + rand.IntN(241), // 580-820
		Evictions:        adverseCount(0.15, 2),
		Bankruptcies:     adverseCount(0.10, 1),
		CriminalOffenses: adverseCount(0.20, 3),
		FraudRiskScore:   &fraud,
		IdentityVerified: rand.Float64() < 0.9,
		PublicSafety:     models.PublicSafetyMatch{MatchFound: false},
		Synthetic:        true,
		CreatedAt:        o.now(),
	}
	return report
}

// adverseCount returns 0 with probability 1-p, otherwise 1..max.
func adverseCount(p float64, max int) int {
	if rand.Float64() >= p {
		return 0
	}
	return 1 + rand.IntN(max)
}
