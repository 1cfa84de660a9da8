package company

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/google/uuid"
)

// CompanyReader looks up companies regardless of tenant
type CompanyReader interface {
	FindCompanyByID(ctx context.Context, id uuid.UUID) (*Company, error)
}

// OwnershipResolver enforces tenant isolation for every company-scoped operation
type OwnershipResolver struct {
	companies CompanyReader
}

// NewOwnershipResolver creates a new OwnershipResolver
func NewOwnershipResolver(companies CompanyReader) *OwnershipResolver {
	return &OwnershipResolver{companies: companies}
}

// ResolveOwnerScope returns the tenant that bounds the caller's queries
func (r *OwnershipResolver) ResolveOwnerScope(callerTenantID uuid.UUID) uuid.UUID {
	return callerTenantID
}

// AssertBelongsToTenant fails with shared.ErrNotFound when companyID is missing
// or lies outside tenantID. Lookup failures other than not-found are returned wrapped.
func (r *OwnershipResolver) AssertBelongsToTenant(ctx context.Context, companyID, tenantID uuid.UUID) error {
	_, err := r.LoadForTenant(ctx, companyID, tenantID)
	return err
}

// LoadForTenant returns the company after checking it belongs to tenantID
func (r *OwnershipResolver) LoadForTenant(ctx context.Context, companyID, tenantID uuid.UUID) (*Company, error) {
	c, err := r.companies.FindCompanyByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("find company %s: %w", companyID, err)
	}
	if c == nil || !BelongsToTenant(c, tenantID) {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

// BelongsToTenant reports whether c is the tenant root itself or is owned by it
func BelongsToTenant(c *Company, tenantID uuid.UUID) bool {
	if c.OwnerCompanyID == nil {
		return c.ID == tenantID
	}
	return *c.OwnerCompanyID == tenantID
}
