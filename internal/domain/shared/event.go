package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DomainEvent is a change recorded by an aggregate and dispatched once the
// aggregate is saved. Every event is scoped to the owner company whose data
// (and cached reports) it affects.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	AggregateType() string
	AggregateID() uuid.UUID
	TenantID() uuid.UUID
	OccurredAt() time.Time
}

// EventHeader is the envelope embedded by every concrete event
type EventHeader struct {
	ID        uuid.UUID `json:"event_id"`
	Type      string    `json:"event_type"`
	Aggregate string    `json:"aggregate_type"`
	SubjectID uuid.UUID `json:"aggregate_id"`
	Tenant    uuid.UUID `json:"tenant_id"`
	At        time.Time `json:"occurred_at"`
}

// NewEventHeader stamps a new event of eventType raised by aggregate aggID in tenantID
func NewEventHeader(eventType, aggregateType string, aggID, tenantID uuid.UUID) EventHeader {
	return EventHeader{
		ID:        uuid.New(),
		Type:      eventType,
		Aggregate: aggregateType,
		SubjectID: aggID,
		Tenant:    tenantID,
		At:        time.Now().UTC(),
	}
}

func (h *EventHeader) EventID() uuid.UUID     { return h.ID }
func (h *EventHeader) EventType() string      { return h.Type }
func (h *EventHeader) AggregateType() string  { return h.Aggregate }
func (h *EventHeader) AggregateID() uuid.UUID { return h.SubjectID }
func (h *EventHeader) TenantID() uuid.UUID    { return h.Tenant }
func (h *EventHeader) OccurredAt() time.Time  { return h.At }

// EventHandler reacts to dispatched events
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes lists the events the handler subscribes to; empty means all
	EventTypes() []string
}

// EventPublisher dispatches events to their handlers
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventBus is an EventPublisher handlers can subscribe to
type EventBus interface {
	EventPublisher
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventRecorder buffers events until its aggregate is persisted
type EventRecorder interface {
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// PublishRecorded publishes and clears the events buffered by rec. A nil
// publisher leaves them buffered. Handler failures are the bus's concern and
// never fail the write that produced the events.
func PublishRecorded(ctx context.Context, publisher EventPublisher, rec EventRecorder) {
	if publisher == nil {
		return
	}
	events := rec.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = publisher.Publish(ctx, events...)
	rec.ClearDomainEvents()
}
