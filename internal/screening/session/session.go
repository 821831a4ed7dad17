// Package session caches the bearer credential for the upstream screening
// provider and refreshes it before expiry.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// LoginFunc performs the username/password exchange with the provider,
// returning a bearer token and its TTL.
type LoginFunc func(ctx context.Context) (token string, ttl time.Duration, err error)

// Session holds a single cached credential plus its expiry. It is injected
// into the orchestrator rather than living in package globals, so concurrent
// access and test control stay explicit. The mutex makes the refresh
// single-flight: under concurrent submissions only one login exchange runs.
type Session struct {
	mu      sync.Mutex
	token   string
	expires time.Time

	login  LoginFunc
	margin time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// New builds a session cache. margin is the safety window before expiry in
// which the credential is considered stale (typically 5 minutes).
func New(login LoginFunc, margin time.Duration, logger *slog.Logger) *Session {
	return &Session{
		login:  login,
		margin: margin,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the session's clock. Test hook.
func (s *Session) WithClock(now func() time.Time) *Session {
	s.now = now
	return s
}

// Credential returns a valid bearer token, refreshing it when the cached one
// is absent or within the safety margin of expiry. The second return is false
// when login fails; callers must treat that as "provider unavailable", not a
// fatal error.
func (s *Session) Credential(ctx context.Context) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.token != "" && now.Before(s.expires.Add(-s.margin)) {
		return s.token, true
	}

	token, ttl, err := s.login(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "screening provider login failed", "error", err)
		return "", false
	}

	s.token = token
	s.expires = now.Add(ttl)
	return s.token, true
}

// Invalidate drops the cached credential so the next call performs a fresh
// login. Used when the provider rejects a token mid-flight.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expires = time.Time{}
}
