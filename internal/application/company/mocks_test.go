package company

import (
	"context"

	"github.com/erp/invoicing/internal/domain/company"
	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockCompanyRepository is a mock implementation of CompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]company.Company, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]company.Company), args.Error(1)
}

func (m *MockCompanyRepository) ExistsByVATNumber(ctx context.Context, tenantID uuid.UUID, vatNumber string) (bool, error) {
	args := m.Called(ctx, tenantID, vatNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockCompanyRepository) Save(ctx context.Context, c *company.Company) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*company.Customer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByCompany(ctx context.Context, tenantID, companyID uuid.UUID) (*company.Customer, error) {
	args := m.Called(ctx, tenantID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]company.Customer, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]company.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, c *company.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// MockProviderRepository is a mock implementation of ProviderRepository
type MockProviderRepository struct {
	mock.Mock
}

func (m *MockProviderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*company.Provider, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Provider), args.Error(1)
}

func (m *MockProviderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]company.Provider, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]company.Provider), args.Error(1)
}

func (m *MockProviderRepository) Save(ctx context.Context, p *company.Provider) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockBankAccountRepository is a mock implementation of BankAccountRepository
type MockBankAccountRepository struct {
	mock.Mock
}

func (m *MockBankAccountRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*company.BankAccount, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) FindByCompany(ctx context.Context, tenantID, companyID uuid.UUID) ([]company.BankAccount, error) {
	args := m.Called(ctx, tenantID, companyID)
	return args.Get(0).([]company.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) Save(ctx context.Context, b *company.BankAccount) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// =============================================================================
// Fixtures
// =============================================================================

func newRootCompany(name string) *company.Company {
	c, err := company.NewCompany(company.NewPartyProfile(name, "", "VAT-"+name))
	if err != nil {
		panic(err)
	}
	c.ClearDomainEvents()
	return c
}

func newOwnedCompany(owner *company.Company, name string) *company.Company {
	c := newRootCompany(name)
	if err := c.AssignOwner(owner); err != nil {
		panic(err)
	}
	c.ClearDomainEvents()
	return c
}
