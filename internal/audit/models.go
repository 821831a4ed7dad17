// Package audit records an append-only trail of screening decisions so a
// landlord's outcome can be explained after the fact.
package audit

import "time"

// EventType classifies an audit event.
type EventType string

const (
	EventReportCreated     EventType = "report_created"
	EventReportReused      EventType = "report_reused"
	EventSyntheticFallback EventType = "synthetic_fallback"
	EventApplicationScored EventType = "application_scored"
)

// Event is one audit record. Detail carries event-specific fields (match
// score, listing ID) without committing the schema to a fixed shape.
type Event struct {
	Type        EventType         `json:"type"`
	ApplicantID string            `json:"applicant_id"`
	Detail      map[string]string `json:"detail,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}
