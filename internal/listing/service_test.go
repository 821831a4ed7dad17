package listing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rently/internal/screening/models"
	dErrors "rently/pkg/domain-errors"
	"rently/pkg/requestcontext"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(NewInMemoryStore(), nil)
	require.NoError(t, err)
	return svc
}

func validListing() Listing {
	return Listing{
		Title:      "Sunny two bedroom",
		Address:    "12 Oak St, Springfield",
		PriceCents: 185000,
		Criteria:   models.ScreeningCriteria{MinCreditScore: 650, NoEvictions: true},
	}
}

func TestCreateAssignsIdentityAndTimestamps(t *testing.T) {
	svc := newTestService(t)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	created, err := svc.Create(ctx, "seller-1", validListing())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "seller-1", created.SellerID)
	assert.Equal(t, StatusActive, created.Status)
	assert.Equal(t, now, created.CreatedAt)
	assert.Equal(t, now, created.UpdatedAt)
}

func TestCreateRejectsMissingSeller(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), "", validListing())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestCreateRejectsInvalidListing(t *testing.T) {
	svc := newTestService(t)

	bad := validListing()
	bad.Title = ""
	_, err := svc.Create(context.Background(), "seller-1", bad)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestGetMissingListing(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background(), "no-such-listing")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestListBySellerReturnsOnlyOwn(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "seller-1", validListing())
	require.NoError(t, err)
	_, err = svc.Create(ctx, "seller-1", validListing())
	require.NoError(t, err)
	_, err = svc.Create(ctx, "seller-2", validListing())
	require.NoError(t, err)

	mine, err := svc.ListBySeller(ctx, "seller-1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, l := range mine {
		assert.Equal(t, "seller-1", l.SellerID)
	}
}

func TestUpdateCriteria(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "seller-1", validListing())
	require.NoError(t, err)

	updated, err := svc.UpdateCriteria(ctx, "seller-1", created.ID, ScreeningCriteriaUpdate{
		MinCreditScore: 700,
		NoBankruptcy:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, 700, updated.Criteria.MinCreditScore)
	assert.True(t, updated.Criteria.NoBankruptcy)
	assert.False(t, updated.Criteria.NoEvictions)

	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 700, fetched.Criteria.MinCreditScore)
}

func TestUpdateCriteriaRejectsNonOwner(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "seller-1", validListing())
	require.NoError(t, err)

	_, err = svc.UpdateCriteria(ctx, "seller-2", created.ID, ScreeningCriteriaUpdate{MinCreditScore: 500})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
}
