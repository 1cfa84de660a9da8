package event

import (
	"testing"

	"github.com/erp/invoicing/internal/domain/document"
	"github.com/stretchr/testify/assert"
)

func TestHandlerRegistry_Register(t *testing.T) {
	t.Run("routes by event type", func(t *testing.T) {
		registry := NewHandlerRegistry()
		handler := newTestHandler()

		registry.Register(handler, document.EventTypeDocumentCreated, document.EventTypeDocumentStatusChanged)

		assert.Len(t, registry.GetHandlers(document.EventTypeDocumentCreated), 1)
		assert.Len(t, registry.GetHandlers(document.EventTypeDocumentStatusChanged), 1)
		assert.Empty(t, registry.GetHandlers(document.EventTypeDocumentTotalsRecalculated))
	})

	t.Run("wildcard handlers follow typed handlers", func(t *testing.T) {
		registry := NewHandlerRegistry()
		typed := newTestHandler()
		wildcard := newTestHandler()

		registry.Register(wildcard)
		registry.Register(typed, document.EventTypeDocumentCreated)

		handlers := registry.GetHandlers(document.EventTypeDocumentCreated)
		assert.Len(t, handlers, 2)
		assert.Same(t, typed, handlers[0])
		assert.Same(t, wildcard, handlers[1])
	})

	t.Run("duplicate registration is ignored", func(t *testing.T) {
		registry := NewHandlerRegistry()
		handler := newTestHandler()

		registry.Register(handler, document.EventTypeDocumentCreated)
		registry.Register(handler, document.EventTypeDocumentCreated)

		assert.Len(t, registry.GetHandlers(document.EventTypeDocumentCreated), 1)
		assert.Equal(t, 1, registry.Len())
	})
}

func TestHandlerRegistry_Unregister(t *testing.T) {
	registry := NewHandlerRegistry()
	a := newTestHandler()
	b := newTestHandler()

	registry.Register(a, document.EventTypeDocumentCreated)
	registry.Register(b, document.EventTypeDocumentCreated)
	registry.Register(a)
	assert.Equal(t, 2, registry.Len())

	registry.Unregister(a)

	handlers := registry.GetHandlers(document.EventTypeDocumentCreated)
	assert.Len(t, handlers, 1)
	assert.Same(t, b, handlers[0])
	assert.Equal(t, 1, registry.Len())

	registry.Unregister(b)
	assert.Empty(t, registry.GetHandlers(document.EventTypeDocumentCreated))
	assert.Equal(t, 0, registry.Len())
}
