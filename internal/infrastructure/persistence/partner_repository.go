package persistence

import (
	"context"

	"github.com/erp/invoicing/internal/domain/company"
	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/erp/invoicing/internal/infrastructure/persistence/models"
	"github.com/erp/invoicing/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var partnerList = listQuery{
	sortColumns:   partySortColumns,
	defaultSort:   "legal_name",
	searchColumns: []string{"legal_name", "commercial_name", "vat_number", "email"},
}

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByIDForTenant finds a customer by ID within a tenant
func (r *GormCustomerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*company.Customer, error) {
	var model models.CustomerModel
	if err := conn(ctx, r.db).
		Scopes(tenant.OwnerScope(tenantID)).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// FindByCompany finds the customer record of a counterparty within a tenant
func (r *GormCustomerRepository) FindByCompany(ctx context.Context, tenantID, companyID uuid.UUID) (*company.Customer, error) {
	var model models.CustomerModel
	if err := conn(ctx, r.db).
		Scopes(tenant.OwnerScope(tenantID)).
		First(&model, "company_id = ?", companyID).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists customers of a tenant
func (r *GormCustomerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]company.Customer, error) {
	var customerModels []models.CustomerModel
	query := partnerList.apply(conn(ctx, r.db).Model(&models.CustomerModel{}).Scopes(tenant.OwnerScope(tenantID)), filter)
	if err := query.Find(&customerModels).Error; err != nil {
		return nil, err
	}

	customers := make([]company.Customer, len(customerModels))
	for i, model := range customerModels {
		customers[i] = *model.ToDomain()
	}
	return customers, nil
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *company.Customer) error {
	return conn(ctx, r.db).Save(models.CustomerModelFromDomain(customer)).Error
}

// GormProviderRepository implements ProviderRepository using GORM
type GormProviderRepository struct {
	db *gorm.DB
}

// NewGormProviderRepository creates a new GormProviderRepository
func NewGormProviderRepository(db *gorm.DB) *GormProviderRepository {
	return &GormProviderRepository{db: db}
}

// FindByIDForTenant finds a provider by ID within a tenant
func (r *GormProviderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*company.Provider, error) {
	var model models.ProviderModel
	if err := conn(ctx, r.db).
		Scopes(tenant.OwnerScope(tenantID)).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists providers of a tenant
func (r *GormProviderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]company.Provider, error) {
	var providerModels []models.ProviderModel
	query := partnerList.apply(conn(ctx, r.db).Model(&models.ProviderModel{}).Scopes(tenant.OwnerScope(tenantID)), filter)
	if err := query.Find(&providerModels).Error; err != nil {
		return nil, err
	}

	providers := make([]company.Provider, len(providerModels))
	for i, model := range providerModels {
		providers[i] = *model.ToDomain()
	}
	return providers, nil
}

// Save creates or updates a provider
func (r *GormProviderRepository) Save(ctx context.Context, provider *company.Provider) error {
	return conn(ctx, r.db).Save(models.ProviderModelFromDomain(provider)).Error
}

// GormBankAccountRepository implements BankAccountRepository using GORM
type GormBankAccountRepository struct {
	db *gorm.DB
}

// NewGormBankAccountRepository creates a new GormBankAccountRepository
func NewGormBankAccountRepository(db *gorm.DB) *GormBankAccountRepository {
	return &GormBankAccountRepository{db: db}
}

// FindByIDForTenant finds a bank account by ID within a tenant
func (r *GormBankAccountRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*company.BankAccount, error) {
	var model models.BankAccountModel
	if err := conn(ctx, r.db).
		Scopes(tenant.OwnerScope(tenantID)).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// FindByCompany lists the accounts of a company within a tenant, oldest first
func (r *GormBankAccountRepository) FindByCompany(ctx context.Context, tenantID, companyID uuid.UUID) ([]company.BankAccount, error) {
	var accountModels []models.BankAccountModel
	if err := conn(ctx, r.db).
		Scopes(tenant.OwnerScope(tenantID)).
		Where("company_id = ?", companyID).
		Order("created_at ASC, id ASC").
		Find(&accountModels).Error; err != nil {
		return nil, err
	}

	accounts := make([]company.BankAccount, len(accountModels))
	for i, model := range accountModels {
		accounts[i] = *model.ToDomain()
	}
	return accounts, nil
}

// Save creates or updates a bank account
func (r *GormBankAccountRepository) Save(ctx context.Context, account *company.BankAccount) error {
	return conn(ctx, r.db).Save(models.BankAccountModelFromDomain(account)).Error
}

var (
	_ company.CustomerRepository    = (*GormCustomerRepository)(nil)
	_ company.ProviderRepository    = (*GormProviderRepository)(nil)
	_ company.BankAccountRepository = (*GormBankAccountRepository)(nil)
)
