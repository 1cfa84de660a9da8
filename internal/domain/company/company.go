package company

import (
	"time"

	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/google/uuid"
)

// ErrInvalidOwnership is returned when an ownership link would break the two-level tree
var ErrInvalidOwnership = shared.ErrInvalidOwnership.With("Owner company cannot itself be owned")

// Company is a node in the two-level ownership tree.
// A nil OwnerCompanyID means the company is itself a root tenant.
type Company struct {
	shared.BaseAggregateRoot
	PartyProfile
	OwnerCompanyID *uuid.UUID
}

// NewCompany creates a root company
func NewCompany(profile PartyProfile) (*Company, error) {
	if errs := ValidateCompanyInput(CompanyInput{Profile: profile}); errs.HasErrors() {
		return nil, errs
	}

	c := &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PartyProfile:      profile,
	}
	c.AddDomainEvent(NewCompanyCreatedEvent(c))
	return c, nil
}

// AssignOwner makes owner the managing tenant of c.
// The owner must be a root and must not be c itself.
func (c *Company) AssignOwner(owner *Company) error {
	if owner == nil {
		return shared.ErrInvalidOwnership.With("Owner company is required")
	}
	if owner.ID == c.ID {
		return shared.ErrInvalidOwnership.With("Company cannot own itself")
	}
	if !owner.IsRoot() {
		return ErrInvalidOwnership
	}

	ownerID := owner.ID
	c.OwnerCompanyID = &ownerID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	c.AddDomainEvent(NewCompanyOwnerAssignedEvent(c, ownerID))
	return nil
}

// IsRoot reports whether the company is a root tenant
func (c *Company) IsRoot() bool {
	return c.OwnerCompanyID == nil
}

// TenantID returns the tenant whose scope contains the company
func (c *Company) TenantID() uuid.UUID {
	if c.OwnerCompanyID == nil {
		return c.ID
	}
	return *c.OwnerCompanyID
}
