package audit

import (
	"context"

	"rently/pkg/platform/sentinel"
)

// AsyncStore keeps audit writes off the request path. Append enqueues onto
// the worker inbox; reads go straight to the backing store.
type AsyncStore struct {
	backing Store
	inbox   chan Event
}

func NewAsyncStore(backing Store, buffer int) *AsyncStore {
	return &AsyncStore{backing: backing, inbox: make(chan Event, buffer)}
}

// Append enqueues the event without blocking. A full inbox drops the write
// with an error rather than stalling a submission.
func (s *AsyncStore) Append(_ context.Context, event Event) error {
	select {
	case s.inbox <- event:
		return nil
	default:
		return sentinel.ErrUnavailable
	}
}

func (s *AsyncStore) ListByApplicant(ctx context.Context, applicantID string) ([]Event, error) {
	return s.backing.ListByApplicant(ctx, applicantID)
}

// Inbox exposes the queue for the persisting worker.
func (s *AsyncStore) Inbox() <-chan Event {
	return s.inbox
}
