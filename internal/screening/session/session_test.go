package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestSession_CachesUntilMargin(t *testing.T) {
	var logins int
	login := func(ctx context.Context) (string, time.Duration, error) {
		logins++
		return "token-1", time.Hour, nil
	}

	current := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	s := New(login, 5*time.Minute, discardLogger()).WithClock(func() time.Time { return current })

	tok, ok := s.Credential(context.Background())
	require.True(t, ok)
	assert.Equal(t, "token-1", tok)

	// Well inside the TTL: no second login.
	current = current.Add(30 * time.Minute)
	tok, ok = s.Credential(context.Background())
	require.True(t, ok)
	assert.Equal(t, "token-1", tok)
	assert.Equal(t, 1, logins)
}

func TestSession_RefreshesInsideMargin(t *testing.T) {
	var logins int
	login := func(ctx context.Context) (string, time.Duration, error) {
		logins++
		return "token", time.Hour, nil
	}

	current := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	s := New(login, 5*time.Minute, discardLogger()).WithClock(func() time.Time { return current })

	_, ok := s.Credential(context.Background())
	require.True(t, ok)

	// 56 minutes in: 4 minutes to expiry, inside the 5 minute margin.
	current = current.Add(56 * time.Minute)
	_, ok = s.Credential(context.Background())
	require.True(t, ok)
	assert.Equal(t, 2, logins)
}

func TestSession_LoginFailureReturnsFalse(t *testing.T) {
	login := func(ctx context.Context) (string, time.Duration, error) {
		return "", 0, errors.New("upstream 503")
	}
	s := New(login, 5*time.Minute, discardLogger())

	tok, ok := s.Credential(context.Background())
	assert.False(t, ok)
	assert.Empty(t, tok)
}

func TestSession_Invalidate(t *testing.T) {
	var logins int
	login := func(ctx context.Context) (string, time.Duration, error) {
		logins++
		return "token", time.Hour, nil
	}
	s := New(login, 5*time.Minute, discardLogger())

	_, ok := s.Credential(context.Background())
	require.True(t, ok)
	s.Invalidate()
	_, ok = s.Credential(context.Background())
	require.True(t, ok)
	assert.Equal(t, 2, logins)
}

func TestSession_SingleFlightUnderConcurrency(t *testing.T) {
	var logins atomic.Int32
	login := func(ctx context.Context) (string, time.Duration, error) {
		logins.Add(1)
		time.Sleep(5 * time.Millisecond)
		return "token", time.Hour, nil
	}
	s := New(login, 5*time.Minute, discardLogger())

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := s.Credential(context.Background())
			assert.True(t, ok)
		}()
	}
	wg.Wait()

	// The mutex serializes refreshes: the first fills the cache, the rest reuse it.
	assert.Equal(t, int32(1), logins.Load())
}
