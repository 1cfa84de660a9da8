package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/erp/invoicing/internal/domain/document"
	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/erp/invoicing/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

type testEvent struct {
	shared.EventHeader
}

func newTestEvent(eventType string, tenantID uuid.UUID) *testEvent {
	return &testEvent{
		EventHeader: shared.NewEventHeader(eventType, document.AggregateTypeDocument, uuid.New(), tenantID),
	}
}

type testHandler struct {
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
	panicWith  any
	mu         sync.Mutex
}

func newTestHandler(eventTypes ...string) *testHandler {
	return &testHandler{eventTypes: eventTypes}
}

func (h *testHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	if h.panicWith != nil {
		panic(h.panicWith)
	}
	return h.err
}

func (h *testHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *testHandler) getHandled() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.handled...)
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := newTestHandler(document.EventTypeDocumentCreated)
	bus.Subscribe(handler)

	event := newTestEvent(document.EventTypeDocumentCreated, uuid.New())
	require.NoError(t, bus.Publish(context.Background(), event))

	require.Len(t, handler.getHandled(), 1)
	assert.Equal(t, event, handler.getHandled()[0])

	published, failed := bus.Stats()
	assert.Equal(t, int64(1), published)
	assert.Equal(t, int64(0), failed)
}

func TestInMemoryEventBus_Publish_Routing(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	created := newTestHandler()
	status := newTestHandler()
	all := newTestHandler()
	bus.Subscribe(created, document.EventTypeDocumentCreated)
	bus.Subscribe(status, document.EventTypeDocumentStatusChanged)
	bus.registry.Register(all)

	tenant := uuid.New()
	require.NoError(t, bus.Publish(context.Background(),
		newTestEvent(document.EventTypeDocumentCreated, tenant),
		newTestEvent(document.EventTypeDocumentTotalsRecalculated, tenant),
	))

	assert.Len(t, created.getHandled(), 1)
	assert.Empty(t, status.getHandled())
	assert.Len(t, all.getHandled(), 2)
}

func TestInMemoryEventBus_Publish_FailuresDoNotStopDispatch(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(h *testHandler)
	}{
		{name: "handler error", prepare: func(h *testHandler) { h.err = errors.New("redis down") }},
		{name: "handler panic", prepare: func(h *testHandler) { h.panicWith = "boom" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := NewInMemoryEventBus(zap.NewNop())

			failing := newTestHandler(document.EventTypeDocumentCreated)
			tt.prepare(failing)
			healthy := newTestHandler(document.EventTypeDocumentCreated)
			bus.Subscribe(failing)
			bus.Subscribe(healthy)

			err := bus.Publish(context.Background(), newTestEvent(document.EventTypeDocumentCreated, uuid.New()))

			require.NoError(t, err)
			assert.Len(t, healthy.getHandled(), 1)
			_, failed := bus.Stats()
			assert.Equal(t, int64(1), failed)
		})
	}
}

func TestInMemoryEventBus_RecordsMetrics(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(ctx) })
	metrics, err := telemetry.NewEventMetrics(provider.Meter("test"))
	require.NoError(t, err)

	bus := NewInMemoryEventBus(zap.NewNop())
	bus.SetMetrics(metrics)
	failing := newTestHandler(document.EventTypeDocumentStatusChanged)
	failing.err = errors.New("redis down")
	bus.Subscribe(failing)
	bus.Subscribe(newTestHandler(document.EventTypeDocumentStatusChanged))

	require.NoError(t, bus.Publish(ctx, newTestEvent(document.EventTypeDocumentStatusChanged, uuid.New())))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	sums := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					result, _ := dp.Attributes.Value("result")
					sums[m.Name+"/"+result.AsString()] += dp.Value
				}
			}
		}
	}
	assert.Equal(t, map[string]int64{
		"invoicing_events_published_total/":         1,
		"invoicing_event_handler_calls_total/ok":    1,
		"invoicing_event_handler_calls_total/error": 1,
	}, sums)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := newTestHandler(document.EventTypeDocumentCreated)
	bus.Subscribe(handler)
	_ = bus.Publish(context.Background(), newTestEvent(document.EventTypeDocumentCreated, uuid.New()))

	bus.Unsubscribe(handler)
	_ = bus.Publish(context.Background(), newTestEvent(document.EventTypeDocumentCreated, uuid.New()))

	assert.Len(t, handler.getHandled(), 1)
}

func TestInMemoryEventBus_PublishRecorded(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := newTestHandler()
	bus.registry.Register(handler)

	tenant := uuid.New()
	doc, err := document.NewDocument(tenant, document.DocumentInput{
		Type:      document.TypeCustomerInvoice,
		CompanyID: uuid.New(),
		DocNumber: "F-001",
		DocDate:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		VatRate:   decimal.RequireFromString("0.21"),
	})
	require.NoError(t, err)
	require.NoError(t, doc.ChangeStatus(document.StatusPaid))

	shared.PublishRecorded(context.Background(), bus, doc)

	handled := handler.getHandled()
	require.Len(t, handled, 2)
	assert.Equal(t, document.EventTypeDocumentCreated, handled[0].EventType())
	assert.Equal(t, document.EventTypeDocumentStatusChanged, handled[1].EventType())
	assert.Equal(t, tenant, handled[0].TenantID())
	assert.Empty(t, doc.GetDomainEvents())

	shared.PublishRecorded(context.Background(), bus, doc)
	assert.Len(t, handler.getHandled(), 2)
}
