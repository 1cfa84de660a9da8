package company

import (
	"context"

	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/google/uuid"
)

// CompanyRepository defines the interface for company persistence
type CompanyRepository interface {
	CompanyReader

	// FindForTenant returns the tenant root and every company it owns
	FindForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Company, error)

	// ExistsByVATNumber checks whether a VAT number is already used within a tenant
	ExistsByVATNumber(ctx context.Context, tenantID uuid.UUID, vatNumber string) (bool, error)

	// Save creates or updates a company
	Save(ctx context.Context, company *Company) error
}

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByIDForTenant finds a customer by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)

	// FindByCompany finds the customer record of a counterparty within a tenant
	FindByCompany(ctx context.Context, tenantID, companyID uuid.UUID) (*Customer, error)

	// FindAllForTenant lists customers of a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error
}

// ProviderRepository defines the interface for provider persistence
type ProviderRepository interface {
	// FindByIDForTenant finds a provider by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Provider, error)

	// FindAllForTenant lists providers of a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Provider, error)

	// Save creates or updates a provider
	Save(ctx context.Context, provider *Provider) error
}

// BankAccountRepository defines the interface for bank account persistence
type BankAccountRepository interface {
	// FindByIDForTenant finds a bank account by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*BankAccount, error)

	// FindByCompany lists the accounts of a company within a tenant
	FindByCompany(ctx context.Context, tenantID, companyID uuid.UUID) ([]BankAccount, error)

	// Save creates or updates a bank account
	Save(ctx context.Context, account *BankAccount) error
}
