package listing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rently/pkg/platform/sentinel"
)

// PostgresStore persists listings in PostgreSQL. Screening criteria are
// stored as JSONB so criteria fields can evolve without schema churn.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, l *Listing) error {
	criteria, err := json.Marshal(l.Criteria)
	if err != nil {
		return fmt.Errorf("encode screening criteria: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO listings (id, seller_id, title, description, address, price_cents, criteria, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, l.ID, l.SellerID, l.Title, l.Description, l.Address, l.PriceCents, criteria, l.Status, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create listing: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*Listing, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, seller_id, title, description, address, price_cents, criteria, status, created_at, updated_at
		FROM listings WHERE id = $1
	`, id)
	return scanListing(row)
}

func (s *PostgresStore) ListBySeller(ctx context.Context, sellerID string) ([]*Listing, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, seller_id, title, description, address, price_cents, criteria, status, created_at, updated_at
		FROM listings WHERE seller_id = $1 ORDER BY created_at DESC
	`, sellerID)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	var out []*Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, l *Listing) error {
	criteria, err := json.Marshal(l.Criteria)
	if err != nil {
		return fmt.Errorf("encode screening criteria: %w", err)
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE listings
		SET title = $2, description = $3, address = $4, price_cents = $5, criteria = $6, status = $7, updated_at = $8
		WHERE id = $1
	`, l.ID, l.Title, l.Description, l.Address, l.PriceCents, criteria, l.Status, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner) (*Listing, error) {
	var (
		l        Listing
		criteria []byte
	)
	err := row.Scan(&l.ID, &l.SellerID, &l.Title, &l.Description, &l.Address,
		&l.PriceCents, &criteria, &l.Status, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan listing: %w", err)
	}
	if err := json.Unmarshal(criteria, &l.Criteria); err != nil {
		return nil, fmt.Errorf("decode screening criteria: %w", err)
	}
	return &l, nil
}
