//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"rently/internal/screening/models"
	"rently/internal/screening/store"
	"rently/pkg/platform/sentinel"
)

const reportsSchema = `
CREATE TABLE IF NOT EXISTS screening_reports (
	applicant_id       TEXT PRIMARY KEY,
	credit_score       INTEGER NOT NULL DEFAULT 0,
	evictions          INTEGER NOT NULL DEFAULT 0,
	bankruptcies       INTEGER NOT NULL DEFAULT 0,
	criminal_offenses  INTEGER NOT NULL DEFAULT 0,
	fraud_risk_score   DOUBLE PRECISION,
	identity_verified  BOOLEAN NOT NULL DEFAULT FALSE,
	public_safety      JSONB NOT NULL DEFAULT '{}',
	source_request_ids JSONB NOT NULL DEFAULT '{}',
	synthetic          BOOLEAN NOT NULL DEFAULT FALSE,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);`

type PostgresReportSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	store     *store.Postgres
}

func TestPostgresReportSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresReportSuite))
}

func (s *PostgresReportSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("rently_test"),
		tcpostgres.WithUsername("rently"),
		tcpostgres.WithPassword("rently"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(60*time.Second)),
	)
	s.Require().NoError(err)
	s.container = container

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	pool, err := pgxpool.New(ctx, url)
	s.Require().NoError(err)
	s.pool = pool

	_, err = pool.Exec(ctx, reportsSchema)
	s.Require().NoError(err)

	s.store = store.NewPostgres(pool)
}

func (s *PostgresReportSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *PostgresReportSuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(), "TRUNCATE screening_reports")
	s.Require().NoError(err)
}

func (s *PostgresReportSuite) TestSaveAndFindRoundTrip() {
	ctx := context.Background()
	fraud := 2.5
	report := &models.ScreeningReport{
		ApplicantID:      "applicant-1",
		CreditScore:      702,
		Evictions:        1,
		FraudRiskScore:   &fraud,
		IdentityVerified: true,
		PublicSafety: models.PublicSafetyMatch{
			SearchedName: "Jane Doe",
		},
		SourceRequestIDs: map[string]string{"credit": "req-9"},
		CreatedAt:        time.Now().UTC().Truncate(time.Millisecond),
	}

	s.Require().NoError(s.store.Save(ctx, report))

	found, err := s.store.Find(ctx, "applicant-1")
	s.Require().NoError(err)
	s.Equal(702, found.CreditScore)
	s.Equal(1, found.Evictions)
	s.Require().NotNil(found.FraudRiskScore)
	s.Equal(2.5, *found.FraudRiskScore)
	s.Equal("Jane Doe", found.PublicSafety.SearchedName)
	s.Equal("req-9", found.SourceRequestIDs["credit"])
}

func (s *PostgresReportSuite) TestFindMissing() {
	_, err := s.store.Find(context.Background(), "nobody")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresReportSuite) TestFirstWriteWins() {
	ctx := context.Background()

	first := &models.ScreeningReport{ApplicantID: "a", CreditScore: 700, CreatedAt: time.Now()}
	second := &models.ScreeningReport{ApplicantID: "a", CreditScore: 500, CreatedAt: time.Now()}

	s.Require().NoError(s.store.Save(ctx, first))
	s.Require().NoError(s.store.Save(ctx, second))

	found, err := s.store.Find(ctx, "a")
	s.Require().NoError(err)
	s.Equal(700, found.CreditScore, "a racing duplicate run must not replace the original report")
}
