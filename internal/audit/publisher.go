package audit

import (
	"context"
	"time"
)

// Publisher captures structured audit events. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

// Emit appends one event, stamping the timestamp when the caller left it zero.
// A nil publisher is a no-op so audit stays optional in tests.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if p == nil {
		return nil
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	return p.store.Append(ctx, event)
}

// List returns the audit trail for one applicant.
func (p *Publisher) List(ctx context.Context, applicantID string) ([]Event, error) {
	return p.store.ListByApplicant(ctx, applicantID)
}
