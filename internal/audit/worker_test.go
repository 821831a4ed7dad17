package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_EmitStampsTimestamp(t *testing.T) {
	store := NewInMemoryStore()
	p := NewPublisher(store)

	require.NoError(t, p.Emit(context.Background(), Event{
		Type:        EventReportCreated,
		ApplicantID: "a1",
	}))

	events, err := p.List(context.Background(), "a1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestPublisher_NilIsNoOp(t *testing.T) {
	var p *Publisher
	assert.NoError(t, p.Emit(context.Background(), Event{Type: EventReportReused}))
}

func TestWorker_DrainsInbox(t *testing.T) {
	store := NewInMemoryStore()
	inbox := make(chan Event, 4)
	worker := NewWorker(store, inbox)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	inbox <- Event{Type: EventApplicationScored, ApplicantID: "a1", Detail: map[string]string{"score": "85"}}
	inbox <- Event{Type: EventReportReused, ApplicantID: "a1"}

	require.Eventually(t, func() bool {
		events, err := store.ListByApplicant(context.Background(), "a1")
		return err == nil && len(events) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
