package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rently/internal/application"
	applicationhandler "rently/internal/application/handler"
	"rently/internal/audit"
	audithandler "rently/internal/audit/handler"
	"rently/internal/jwtauth"
	"rently/internal/listing"
	listinghandler "rently/internal/listing/handler"
	"rently/internal/screening/models"
	"rently/internal/screening/score"
)

type fixedScreener struct {
	report *models.ScreeningReport
}

func (s *fixedScreener) GetOrCreateReport(_ context.Context, applicantID string, _ models.ApplicantInfo) (*models.ScreeningReport, error) {
	report := *s.report
	report.ApplicantID = applicantID
	return &report, nil
}

func (s *fixedScreener) Score(report *models.ScreeningReport, criteria models.ScreeningCriteria) models.MatchResult {
	return score.Score(report, criteria)
}

func newTestRouter(t *testing.T) (http.Handler, *jwtauth.JWTService) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)

	listingService, err := listing.NewService(listing.NewInMemoryStore(), nil)
	require.NoError(t, err)

	publisher := audit.NewPublisher(audit.NewInMemoryStore())
	screener := &fixedScreener{report: &models.ScreeningReport{
		CreditScore:      710,
		IdentityVerified: true,
	}}
	applicationService, err := application.NewService(application.NewInMemoryStore(),
		listingService, screener, publisher, logger, nil)
	require.NoError(t, err)

	jwtService := jwtauth.NewJWTService("test-signing-key", "rently", "rently-api")

	router := NewRouter(Deps{
		Logger:       logger,
		JWTValidator: jwtService,
		Listings:     listinghandler.New(listingService, logger),
		Applications: applicationhandler.New(applicationService, logger),
		Audit:        audithandler.New(publisher, logger),
	})
	return router, jwtService
}

func bearerFor(t *testing.T, jwtService *jwtauth.JWTService, userID uuid.UUID) string {
	t.Helper()
	token, err := jwtService.GenerateAccessToken(userID, "user", time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, router http.Handler, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthzIsPublic(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestAPIRejectsMissingToken(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/listings/abc", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListingAndApplicationFlow(t *testing.T) {
	router, jwtService := newTestRouter(t)
	seller := bearerFor(t, jwtService, uuid.New())
	buyerID := uuid.New()
	buyer := bearerFor(t, jwtService, buyerID)

	rec := doJSON(t, router, http.MethodPost, "/listings", seller, map[string]any{
		"title":            "Loft downtown",
		"address":          "9 Main St",
		"price_cents":      250000,
		"min_credit_score": 650,
		"no_evictions":     true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created listing.Listing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, 650, created.Criteria.MinCreditScore)

	rec = doJSON(t, router, http.MethodPost, "/applications", buyer, map[string]any{
		"listing_id": created.ID,
		"applicant":  map[string]string{"first_name": "Ann", "last_name": "Lee"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var app application.Application
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &app))
	require.NotNil(t, app.Match)
	assert.Equal(t, 100, app.Match.MatchScore)
	assert.Equal(t, models.MatchGreen, app.Match.MatchColor)

	rec = doJSON(t, router, http.MethodGet, "/listings/"+created.ID+"/applications", seller, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var apps []application.Application
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apps))
	require.Len(t, apps, 1)

	rec = doJSON(t, router, http.MethodPost, "/applications/"+app.ID+"/decision", seller, map[string]string{
		"decision": "approved",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/applicants/"+buyerID.String()+"/audit", buyer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var events []audit.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, audit.EventApplicationScored, events[0].Type)
}

func TestAuditTrailIsPrivate(t *testing.T) {
	router, jwtService := newTestRouter(t)
	caller := bearerFor(t, jwtService, uuid.New())

	rec := doJSON(t, router, http.MethodGet, "/applicants/"+uuid.NewString()+"/audit", caller, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
