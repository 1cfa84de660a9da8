// Package event is the in-process domain event bus.
//
// Events are delivered synchronously once the producing transaction has
// committed. A failing handler is logged and counted but never fails the
// publisher, so a committed write stands even when cache invalidation cannot run.
package event

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/erp/invoicing/internal/infrastructure/logger"
	"github.com/erp/invoicing/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// InMemoryEventBus routes events to handlers registered in a HandlerRegistry
type InMemoryEventBus struct {
	registry  *HandlerRegistry
	logger    *zap.Logger
	tracer    trace.Tracer
	metrics   *telemetry.EventMetrics
	published atomic.Int64
	failed    atomic.Int64
}

func NewInMemoryEventBus(l *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   l.Named("events"),
		tracer:   otel.Tracer("github.com/erp/invoicing/internal/infrastructure/event"),
	}
}

// SetMetrics records deliveries on m as well as in Stats
func (b *InMemoryEventBus) SetMetrics(m *telemetry.EventMetrics) {
	b.metrics = m
}

// Publish delivers each event to its handlers in registration order. It
// always returns nil; handler failures show up in Stats and the span.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, ev := range events {
		b.deliver(ctx, ev)
	}
	return nil
}

func (b *InMemoryEventBus) deliver(ctx context.Context, ev shared.DomainEvent) {
	ctx, span := b.tracer.Start(ctx, "event "+ev.EventType(), trace.WithAttributes(
		attribute.String("event.type", ev.EventType()),
		attribute.String("event.aggregate_id", ev.AggregateID().String()),
		attribute.String("event.tenant_id", ev.TenantID().String()),
	))
	defer span.End()
	b.published.Add(1)
	b.metrics.Published(ctx, ev.EventType())

	for _, h := range b.registry.GetHandlers(ev.EventType()) {
		start := time.Now()
		err := safeHandle(ctx, h, ev)
		b.metrics.Handled(ctx, ev.EventType(), time.Since(start), err)
		if err == nil {
			continue
		}
		b.failed.Add(1)
		span.RecordError(err)
		span.SetStatus(codes.Error, "event handler failed")
		logger.L(ctx).Error("event handler failed",
			zap.String("event_type", ev.EventType()),
			zap.Stringer("event_id", ev.EventID()),
			zap.Error(err),
		)
	}
}

// safeHandle runs h and reports a panic as an error
func safeHandle(ctx context.Context, h shared.EventHandler, ev shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("event handler panicked: %v", r)
		}
	}()
	return h.Handle(ctx, ev)
}

// Subscribe registers handler for eventTypes, or for handler.EventTypes()
// when none are given
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("handler subscribed", zap.Strings("event_types", eventTypes), zap.Int("handlers", b.registry.Len()))
}

func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
}

// Stats returns the events published and the handler invocations that failed
func (b *InMemoryEventBus) Stats() (published, failed int64) {
	return b.published.Load(), b.failed.Load()
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
