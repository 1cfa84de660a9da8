package company

import (
	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypeCompany  = "Company"
	AggregateTypeCustomer = "Customer"
	AggregateTypeProvider = "Provider"
)

// Event type constants
const (
	EventTypeCompanyCreated       = "CompanyCreated"
	EventTypeCompanyOwnerAssigned = "CompanyOwnerAssigned"
	EventTypeCustomerRegistered   = "CustomerRegistered"
	EventTypeProviderRegistered   = "ProviderRegistered"
)

// CompanyCreatedEvent is published when a company is registered
type CompanyCreatedEvent struct {
	shared.EventHeader
	CompanyID uuid.UUID `json:"company_id"`
	LegalName string    `json:"legal_name"`
	VATNumber string    `json:"vat_number"`
}

// NewCompanyCreatedEvent creates a new CompanyCreatedEvent
func NewCompanyCreatedEvent(c *Company) *CompanyCreatedEvent {
	return &CompanyCreatedEvent{
		EventHeader: shared.NewEventHeader(EventTypeCompanyCreated, AggregateTypeCompany, c.ID, c.TenantID()),
		CompanyID:   c.ID,
		LegalName:   c.LegalName,
		VATNumber:   c.VATNumber,
	}
}

// CompanyOwnerAssignedEvent is published when a company is placed under a tenant
type CompanyOwnerAssignedEvent struct {
	shared.EventHeader
	CompanyID      uuid.UUID `json:"company_id"`
	OwnerCompanyID uuid.UUID `json:"owner_company_id"`
}

// NewCompanyOwnerAssignedEvent creates a new CompanyOwnerAssignedEvent
func NewCompanyOwnerAssignedEvent(c *Company, ownerID uuid.UUID) *CompanyOwnerAssignedEvent {
	return &CompanyOwnerAssignedEvent{
		EventHeader:    shared.NewEventHeader(EventTypeCompanyOwnerAssigned, AggregateTypeCompany, c.ID, ownerID),
		CompanyID:      c.ID,
		OwnerCompanyID: ownerID,
	}
}

// PartnerRegisteredEvent is published when a customer or provider role is created
type PartnerRegisteredEvent struct {
	shared.EventHeader
	CounterpartyID uuid.UUID `json:"counterparty_id"`
}

// NewPartnerRegisteredEvent creates a new PartnerRegisteredEvent
func NewPartnerRegisteredEvent(eventType, aggType string, id, tenantID, counterpartyID uuid.UUID) *PartnerRegisteredEvent {
	return &PartnerRegisteredEvent{
		EventHeader:    shared.NewEventHeader(eventType, aggType, id, tenantID),
		CounterpartyID: counterpartyID,
	}
}
