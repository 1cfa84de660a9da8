package document

import (
	"context"

	"github.com/erp/invoicing/internal/domain/company"
	"github.com/erp/invoicing/internal/domain/document"
	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockCompanyReader struct {
	mock.Mock
}

func (m *MockCompanyReader) FindCompanyByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Company), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*document.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]document.Order, error) {
	args := m.Called(ctx, tenantID, ids)
	return args.Get(0).([]document.Order), args.Error(1)
}

func (m *MockOrderRepository) FindOrdersForDocument(ctx context.Context, tenantID, documentID uuid.UUID) ([]document.Order, error) {
	args := m.Called(ctx, tenantID, documentID)
	return args.Get(0).([]document.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]document.Order, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]document.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *document.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

type MockChangeRateRepository struct {
	mock.Mock
}

func (m *MockChangeRateRepository) FindByIDForTenant(ctx context.Context, tenantID uuid.UUID, id int64) (*document.ChangeRate, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.ChangeRate), args.Error(1)
}

func (m *MockChangeRateRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]document.ChangeRate, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]document.ChangeRate), args.Error(1)
}

func (m *MockChangeRateRepository) Save(ctx context.Context, rate *document.ChangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*document.Document, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Document), args.Error(1)
}

func (m *MockDocumentRepository) ExistsByDocNumber(ctx context.Context, tenantID uuid.UUID, docType document.DocumentType, docNumber string) (bool, error) {
	args := m.Called(ctx, tenantID, docType, docNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentRepository) Save(ctx context.Context, doc *document.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

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

// fakeTxManager runs fn directly and counts the units of work
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

// recordingPublisher keeps every published event
type recordingPublisher struct {
	events []shared.DomainEvent
}

func (r *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	r.events = append(r.events, events...)
	return nil
}

func (r *recordingPublisher) types() []string {
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.EventType()
	}
	return out
}
