// Package score converts a canonical screening report plus a listing's
// criteria into a single comparable 0-100 match score.
package score

import (
	"fmt"
	"math"
	"strings"

	"rently/internal/screening/models"
)

// Category weights out of 100.
const (
	creditWeight     = 25
	evictionsWeight  = 20
	bankruptcyWeight = 20
	criminalWeight   = 20
	fraudWeight      = 15
)

// fraudRiskThreshold is the highest fraud risk score that still passes.
const fraudRiskThreshold = 3

// Breakdown category keys.
const (
	CategoryCredit       = "credit"
	CategoryEvictions    = "evictions"
	CategoryBankruptcy   = "bankruptcy"
	CategoryCriminal     = "criminal"
	CategoryFraud        = "fraud"
	CategoryPublicSafety = "publicSafetyMatch"
)

// Score is a pure function: identical (report, criteria) inputs always yield
// an identical MatchResult, and it is safe to call concurrently.
//
// The public-safety hard fail is an explicit early return, not a post-hoc
// adjustment, so future category additions cannot bypass the override. A nil
// report is a programmer error and panics: silently defaulting it would
// bypass the hard-fail guarantee.
func Score(report *models.ScreeningReport, criteria models.ScreeningCriteria) models.MatchResult {
	if report == nil {
		panic("score: nil screening report")
	}

	if report.PublicSafety.MatchFound {
		return hardFail(report)
	}

	breakdown := make(map[string]models.CategoryResult, 5)
	total, earned := 0, 0

	addCategory := func(name string, active bool, weight int, passed bool, detail, inactiveDetail string) {
		if !active {
			// Inactive categories never penalize: they score as passed with
			// zero weight on both sides of the ratio.
			breakdown[name] = models.CategoryResult{Passed: true, Detail: inactiveDetail}
			return
		}
		points := 0
		if passed {
			points = weight
		}
		total += weight
		earned += points
		breakdown[name] = models.CategoryResult{
			Passed:    passed,
			Points:    points,
			MaxPoints: weight,
			Detail:    detail,
		}
	}

	addCategory(CategoryCredit,
		criteria.MinCreditScore > 0,
		creditWeight,
		report.CreditScore >= criteria.MinCreditScore,
		fmt.Sprintf("credit score %d against minimum %d", report.CreditScore, criteria.MinCreditScore),
		"credit score not required",
	)
	addCategory(CategoryEvictions,
		criteria.NoEvictions,
		evictionsWeight,
		report.Evictions == 0,
		fmt.Sprintf("%d eviction record(s)", report.Evictions),
		"eviction history not required",
	)
	addCategory(CategoryBankruptcy,
		criteria.NoBankruptcy,
		bankruptcyWeight,
		report.Bankruptcies == 0,
		fmt.Sprintf("%d bankruptcy record(s)", report.Bankruptcies),
		"bankruptcy history not required",
	)
	addCategory(CategoryCriminal,
		criteria.NoCriminal,
		criminalWeight,
		report.CriminalOffenses == 0,
		fmt.Sprintf("%d criminal offense(s)", report.CriminalOffenses),
		"criminal history not required",
	)

	fraudDetail := "fraud risk not checked"
	fraudPassed := false
	if report.FraudRiskScore != nil {
		fraudPassed = *report.FraudRiskScore <= fraudRiskThreshold
		fraudDetail = fmt.Sprintf("fraud risk score %.1f (threshold %d)", *report.FraudRiskScore, fraudRiskThreshold)
	}
	addCategory(CategoryFraud,
		report.FraudRiskScore != nil,
		fraudWeight,
		fraudPassed,
		fraudDetail,
		"fraud risk not checked",
	)

	// No active categories at all: an unconfigured listing cannot penalize anyone.
	matchScore := 100
	if total > 0 {
		matchScore = int(math.Round(100 * float64(earned) / float64(total)))
	}

	return models.MatchResult{
		MatchScore:     matchScore,
		MatchColor:     colorFor(matchScore),
		MatchBreakdown: breakdown,
		TotalPoints:    total,
		EarnedPoints:   earned,
	}
}

func hardFail(report *models.ScreeningReport) models.MatchResult {
	descriptions := make([]string, 0, len(report.PublicSafety.Crimes))
	for _, crime := range report.PublicSafety.Crimes {
		if crime.Description != "" {
			descriptions = append(descriptions, crime.Description)
		} else if crime.Name != "" {
			descriptions = append(descriptions, crime.Name)
		}
	}
	detail := "public safety watchlist match"
	if len(descriptions) > 0 {
		detail = "public safety watchlist match: " + strings.Join(descriptions, "; ")
	}

	breakdown := map[string]models.CategoryResult{
		CategoryPublicSafety: {Passed: false, Points: 0, MaxPoints: 100, Detail: detail},
	}
	for _, name := range []string{CategoryCredit, CategoryEvictions, CategoryBankruptcy, CategoryCriminal, CategoryFraud} {
		breakdown[name] = models.CategoryResult{
			Passed: false,
			Detail: "overridden by public safety match",
		}
	}

	return models.MatchResult{
		MatchScore:     0,
		MatchColor:     models.MatchRed,
		MatchBreakdown: breakdown,
		TotalPoints:    100,
		EarnedPoints:   0,
	}
}

func colorFor(score int) models.MatchColor {
	switch {
	case score >= 80:
		return models.MatchGreen
	case score >= 60:
		return models.MatchYellow
	default:
		return models.MatchRed
	}
}
