package company

import (
	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/google/uuid"
)

// Customer is the role record of a counterparty company the tenant invoices
type Customer struct {
	shared.TenantAggregateRoot
	PartyProfile
	CompanyID uuid.UUID
	DueDays   *int
	PayMethod *PayMethod
}

// NewCustomer registers counterparty as a customer of the tenant ownerCompanyID
func NewCustomer(ownerCompanyID uuid.UUID, counterparty *Company, dueDays *int, payMethod *PayMethod) (*Customer, error) {
	if counterparty == nil {
		return nil, shared.ValidationErrors{"company_id": "Company is required"}
	}
	in := PartnerInput{CompanyID: counterparty.ID, DueDays: dueDays, PayMethod: payMethod}
	if errs := ValidatePartnerInput(in); errs.HasErrors() {
		return nil, errs
	}

	c := &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(ownerCompanyID),
		PartyProfile:        counterparty.PartyProfile,
		CompanyID:           counterparty.ID,
		DueDays:             dueDays,
		PayMethod:           payMethod,
	}
	c.AddDomainEvent(NewPartnerRegisteredEvent(EventTypeCustomerRegistered, AggregateTypeCustomer, c.ID, ownerCompanyID, c.CompanyID))
	return c, nil
}

// DueDaysOrZero returns the payment delay in days, treating a missing value as zero
func (c *Customer) DueDaysOrZero() int {
	if c.DueDays == nil {
		return 0
	}
	return *c.DueDays
}

// Provider is the role record of a counterparty company that invoices the tenant
type Provider struct {
	shared.TenantAggregateRoot
	PartyProfile
	CompanyID uuid.UUID
}

// NewProvider registers counterparty as a provider of the tenant ownerCompanyID
func NewProvider(ownerCompanyID uuid.UUID, counterparty *Company) (*Provider, error) {
	if counterparty == nil {
		return nil, shared.ValidationErrors{"company_id": "Company is required"}
	}
	if errs := ValidatePartnerInput(PartnerInput{CompanyID: counterparty.ID}); errs.HasErrors() {
		return nil, errs
	}

	p := &Provider{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(ownerCompanyID),
		PartyProfile:        counterparty.PartyProfile,
		CompanyID:           counterparty.ID,
	}
	p.AddDomainEvent(NewPartnerRegisteredEvent(EventTypeProviderRegistered, AggregateTypeProvider, p.ID, ownerCompanyID, p.CompanyID))
	return p, nil
}
