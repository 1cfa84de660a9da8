package document

import (
	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeDocument = "Document"

// Event type constants
const (
	EventTypeDocumentCreated            = "DocumentCreated"
	EventTypeDocumentTotalsRecalculated = "DocumentTotalsRecalculated"
	EventTypeDocumentStatusChanged      = "DocumentStatusChanged"
)

// DocumentCreatedEvent is published when a document is created
type DocumentCreatedEvent struct {
	shared.EventHeader
	DocumentID uuid.UUID    `json:"document_id"`
	Type       DocumentType `json:"type"`
	DocNumber  string       `json:"doc_number"`
	CompanyID  uuid.UUID    `json:"company_id"`
}

// NewDocumentCreatedEvent creates a new DocumentCreatedEvent
func NewDocumentCreatedEvent(d *Document) *DocumentCreatedEvent {
	return &DocumentCreatedEvent{
		EventHeader: shared.NewEventHeader(EventTypeDocumentCreated, AggregateTypeDocument, d.ID, d.OwnerCompanyID),
		DocumentID:  d.ID,
		Type:        d.Type,
		DocNumber:   d.DocNumber,
		CompanyID:   d.CompanyID,
	}
}

// DocumentTotalsRecalculatedEvent is published whenever derived totals are rewritten
type DocumentTotalsRecalculatedEvent struct {
	shared.EventHeader
	DocumentID uuid.UUID       `json:"document_id"`
	OrderCount int             `json:"order_count"`
	TotalNet   decimal.Decimal `json:"total_net"`
	TotalToPay decimal.Decimal `json:"total_to_pay"`
}

// NewDocumentTotalsRecalculatedEvent creates a new DocumentTotalsRecalculatedEvent
func NewDocumentTotalsRecalculatedEvent(d *Document) *DocumentTotalsRecalculatedEvent {
	return &DocumentTotalsRecalculatedEvent{
		EventHeader: shared.NewEventHeader(EventTypeDocumentTotalsRecalculated, AggregateTypeDocument, d.ID, d.OwnerCompanyID),
		DocumentID:  d.ID,
		OrderCount:  len(d.OrderIDs),
		TotalNet:    d.TotalNet,
		TotalToPay:  d.TotalToPay,
	}
}

// DocumentStatusChangedEvent is published when a document's status changes
type DocumentStatusChangedEvent struct {
	shared.EventHeader
	DocumentID uuid.UUID      `json:"document_id"`
	OldStatus  DocumentStatus `json:"old_status"`
	NewStatus  DocumentStatus `json:"new_status"`
}

// NewDocumentStatusChangedEvent creates a new DocumentStatusChangedEvent
func NewDocumentStatusChangedEvent(d *Document, old DocumentStatus) *DocumentStatusChangedEvent {
	return &DocumentStatusChangedEvent{
		EventHeader: shared.NewEventHeader(EventTypeDocumentStatusChanged, AggregateTypeDocument, d.ID, d.OwnerCompanyID),
		DocumentID:  d.ID,
		OldStatus:   old,
		NewStatus:   d.Status,
	}
}
