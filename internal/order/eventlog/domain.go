// Package eventlog defines the append-only audit trail of order lifecycle
// events.
//
// Every mutation of an order (creation, proof submission, status change,
// archive, delete) appends one immutable row. It serves two purposes:
//
//  1. Observability: the admin can see exactly when an order moved between
//     statuses and who moved it, and correlate each event with a distributed
//     trace via the trace_id field.
//
//  2. Dispute handling: payment proofs arrive out-of-band, so a durable
//     record of when a proof was attached is the only evidence the shop has.
package eventlog

import "time"

// Kind classifies a lifecycle event.
type Kind string

const (
	KindCreated        Kind = "CREATED"
	KindProofSubmitted Kind = "PROOF_SUBMITTED"
	KindStatusChanged  Kind = "STATUS_CHANGED"
	KindArchived       Kind = "ARCHIVED"
	KindDeleted        Kind = "DELETED"
)

// Event is a single row in the order_events table: a point-in-time snapshot
// of something that happened to an order.
type Event struct {
	// OrderID joins the event with the business record.
	OrderID string

	// Kind is what happened.
	Kind Kind

	// ActorID is the user who caused the event: the buyer for checkout
	// events, the admin for status changes.
	ActorID string

	// Detail is a short human-readable note, e.g. "Pending -> Shipped".
	Detail string

	// TraceID is the W3C trace ID extracted from the OpenTelemetry span that
	// was active when this event was written. Allows jumping from an event
	// row directly to the full trace in Grafana/Tempo.
	TraceID string

	// SpanID pinpoints the exact operation within the trace.
	SpanID string

	// OccurredAt is the wall-clock time of the event.
	OccurredAt time.Time
}
