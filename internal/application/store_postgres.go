package application

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

// PostgresStore persists applications in PostgreSQL. The applicant snapshot
// and match result are stored as JSONB; the unique (listing_id, applicant_id)
// index enforces one application per applicant per listing.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, a *Application) error {
	applicant, match, err := encodeApplication(a)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO applications (id, listing_id, applicant_id, applicant, message, status, match, screened, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (listing_id, applicant_id) DO NOTHING
	`, a.ID, a.ListingID, a.ApplicantID, applicant, a.Message, a.Status, match, a.Screened, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*Application, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, listing_id, applicant_id, applicant, message, status, match, screened, created_at, updated_at
		FROM applications WHERE id = $1
	`, id)
	return scanApplication(row)
}

func (s *PostgresStore) FindByListingAndApplicant(ctx context.Context, listingID, applicantID string) (*Application, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, listing_id, applicant_id, applicant, message, status, match, screened, created_at, updated_at
		FROM applications WHERE listing_id = $1 AND applicant_id = $2
	`, listingID, applicantID)
	return scanApplication(row)
}

func (s *PostgresStore) ListByListing(ctx context.Context, listingID string) ([]*Application, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, listing_id, applicant_id, applicant, message, status, match, screened, created_at, updated_at
		FROM applications WHERE listing_id = $1
		ORDER BY COALESCE((match->>'match_score')::int, -1) DESC, created_at ASC
	`, listingID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var out []*Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, a *Application) error {
	applicant, match, err := encodeApplication(a)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE applications
		SET applicant = $2, message = $3, status = $4, match = $5, screened = $6, updated_at = $7
		WHERE id = $1
	`, a.ID, applicant, a.Message, a.Status, match, a.Screened, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func encodeApplication(a *Application) (applicant, match []byte, err error) {
	applicant, err = json.Marshal(a.Applicant)
	if err != nil {
		return nil, nil, fmt.Errorf("encode applicant: %w", err)
	}
	if a.Match != nil {
		match, err = json.Marshal(a.Match)
		if err != nil {
			return nil, nil, fmt.Errorf("encode match result: %w", err)
		}
	}
	return applicant, match, nil
}

func scanApplication(row rowScanner) (*Application, error) {
	var (
		a         Application
		applicant []byte
		match     []byte
	)
	err := row.Scan(&a.ID, &a.ListingID, &a.ApplicantID, &applicant, &a.Message,
		&a.Status, &match, &a.Screened, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan application: %w", err)
	}
	if err := json.Unmarshal(applicant, &a.Applicant); err != nil {
		return nil, fmt.Errorf("decode applicant: %w", err)
	}
	if len(match) > 0 {
		a.Match = &models.MatchResult{}
		if err := json.Unmarshal(match, a.Match); err != nil {
			return nil, fmt.Errorf("decode match result: %w", err)
		}
	}
	return &a, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}
