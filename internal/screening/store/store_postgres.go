package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rently/internal/screening/models"
	"rently/pkg/platform/sentinel"
)

// Postgres persists screening reports in PostgreSQL. The variable-shape parts
// of the report (public safety match, source request IDs) are stored as JSONB
// alongside the scored scalar columns.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed report store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (s *Postgres) Find(ctx context.Context, applicantID string) (*models.ScreeningReport, error) {
	var (
		report        models.ScreeningReport
		publicSafety  []byte
		sourceReqIDs  []byte
		fraudRiskScan *float64
	)
	err := s.pool.QueryRow(ctx, `
		SELECT applicant_id, credit_score, evictions, bankruptcies, criminal_offenses,
		       fraud_risk_score, identity_verified, public_safety, source_request_ids,
		       synthetic, created_at
		FROM screening_reports
		WHERE applicant_id = $1
	`, applicantID).Scan(
		&report.ApplicantID, &report.CreditScore, &report.Evictions, &report.Bankruptcies,
		&report.CriminalOffenses, &fraudRiskScan, &report.IdentityVerified,
		&publicSafety, &sourceReqIDs, &report.Synthetic, &report.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find screening report: %w", err)
	}

	report.FraudRiskScore = fraudRiskScan
	if err := json.Unmarshal(publicSafety, &report.PublicSafety); err != nil {
		return nil, fmt.Errorf("decode public safety match: %w", err)
	}
	if len(sourceReqIDs) > 0 {
		if err := json.Unmarshal(sourceReqIDs, &report.SourceRequestIDs); err != nil {
			return nil, fmt.Errorf("decode source request ids: %w", err)
		}
	}
	return &report, nil
}

func (s *Postgres) Save(ctx context.Context, report *models.ScreeningReport) error {
	if report == nil || report.ApplicantID == "" {
		return fmt.Errorf("report with applicant id is required")
	}

	publicSafety, err := json.Marshal(report.PublicSafety)
	if err != nil {
		return fmt.Errorf("encode public safety match: %w", err)
	}
	sourceReqIDs, err := json.Marshal(report.SourceRequestIDs)
	if err != nil {
		return fmt.Errorf("encode source request ids: %w", err)
	}

	// Reports are created exactly once per applicant; on conflict the first
	// write wins so a racing duplicate screening run cannot replace it.
	_, err = s.pool.Exec(ctx, `
		INSERT INTO screening_reports (
			applicant_id, credit_score, evictions, bankruptcies, criminal_offenses,
			fraud_risk_score, identity_verified, public_safety, source_request_ids,
			synthetic, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (applicant_id) DO NOTHING
	`, report.ApplicantID, report.CreditScore, report.Evictions, report.Bankruptcies,
		report.CriminalOffenses, report.FraudRiskScore, report.IdentityVerified,
		publicSafety, sourceReqIDs, report.Synthetic, report.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save screening report: %w", err)
	}
	return nil
}
