package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rently/internal/screening/models"
	"rently/pkg/platform/sentinel"
)

func TestInMemory_SaveAndFind(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	report := &models.ScreeningReport{
		ApplicantID: "applicant-1",
		CreditScore: 710,
		CreatedAt:   time.Now(),
	}
	require.NoError(t, s.Save(ctx, report))

	found, err := s.Find(ctx, "applicant-1")
	require.NoError(t, err)
	assert.Equal(t, 710, found.CreditScore)
}

func TestInMemory_FindMissing(t *testing.T) {
	s := NewInMemory()
	_, err := s.Find(context.Background(), "nobody")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestInMemory_SaveValidation(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	assert.Error(t, s.Save(ctx, nil))
	assert.Error(t, s.Save(ctx, &models.ScreeningReport{}))
}

func TestInMemory_FirstWriteWins(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &models.ScreeningReport{ApplicantID: "a", CreditScore: 700}))
	require.NoError(t, s.Save(ctx, &models.ScreeningReport{ApplicantID: "a", CreditScore: 500}))

	found, err := s.Find(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 700, found.CreditScore, "stored report must not be replaced")
}

func TestInMemory_ReturnsCopy(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &models.ScreeningReport{ApplicantID: "a", CreditScore: 700}))

	first, err := s.Find(ctx, "a")
	require.NoError(t, err)
	first.CreditScore = 1 // mutating the returned copy must not touch the stored report

	second, err := s.Find(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 700, second.CreditScore)
}
