package eventlog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// NewEvent builds an Event with the OTel trace identifiers automatically
// extracted from ctx. If the context carries no active span (e.g. in unit
// tests), both ids are left empty — the caller should handle this gracefully.
func NewEvent(ctx context.Context, orderID string, kind Kind, actorID, detail string) *Event {
	e := &Event{
		OrderID:    orderID,
		Kind:       kind,
		ActorID:    actorID,
		Detail:     detail,
		OccurredAt: time.Now().UTC(),
	}

	sc := trace.SpanFromContext(ctx).SpanContext()
	if sc.IsValid() {
		e.TraceID = sc.TraceID().String() // 32 hex chars
		e.SpanID = sc.SpanID().String()   // 16 hex chars
	}
	return e
}
