package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"rently/internal/screening/models"
	"rently/pkg/platform/sentinel"
)

const reportKeyPrefix = "screening:report:"

// Redis caches screening reports as JSON values with a TTL. Useful in front
// of the postgres store or standalone for stateless deployments.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis constructs a Redis-backed report store.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (s *Redis) Find(ctx context.Context, applicantID string) (*models.ScreeningReport, error) {
	raw, err := s.client.Get(ctx, reportKeyPrefix+applicantID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find screening report: %w", err)
	}

	var report models.ScreeningReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("decode screening report: %w", err)
	}
	return &report, nil
}

func (s *Redis) Save(ctx context.Context, report *models.ScreeningReport) error {
	if report == nil || report.ApplicantID == "" {
		return fmt.Errorf("report with applicant id is required")
	}

	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode screening report: %w", err)
	}
	// NX keeps the first stored report authoritative for the TTL window.
	if err := s.client.SetNX(ctx, reportKeyPrefix+report.ApplicantID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save screening report: %w", err)
	}
	return nil
}
