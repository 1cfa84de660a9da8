package persistence

import (
	"context"
	"strings"

	"github.com/erp/invoicing/internal/domain/company"
	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/erp/invoicing/internal/infrastructure/persistence/models"
	"github.com/erp/invoicing/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var companyList = listQuery{
	sortColumns:   partySortColumns,
	defaultSort:   "legal_name",
	searchColumns: []string{"legal_name", "commercial_name", "vat_number"},
}

// GormCompanyRepository implements CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindCompanyByID finds a company by its ID regardless of tenant.
// Callers check ownership through the OwnershipResolver.
func (r *GormCompanyRepository) FindCompanyByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	var model models.CompanyModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// FindForTenant returns the tenant root and every company it owns
func (r *GormCompanyRepository) FindForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]company.Company, error) {
	var companyModels []models.CompanyModel
	query := companyList.apply(conn(ctx, r.db).Model(&models.CompanyModel{}).Scopes(tenant.CompanyScope(tenantID)), filter)
	if err := query.Find(&companyModels).Error; err != nil {
		return nil, err
	}

	companies := make([]company.Company, len(companyModels))
	for i, model := range companyModels {
		companies[i] = *model.ToDomain()
	}
	return companies, nil
}

// ExistsByVATNumber checks whether a VAT number is already used within a tenant
func (r *GormCompanyRepository) ExistsByVATNumber(ctx context.Context, tenantID uuid.UUID, vatNumber string) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).
		Model(&models.CompanyModel{}).
		Scopes(tenant.CompanyScope(tenantID)).
		Where("vat_number = ?", strings.ToUpper(strings.TrimSpace(vatNumber))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a company
func (r *GormCompanyRepository) Save(ctx context.Context, c *company.Company) error {
	return conn(ctx, r.db).Save(models.CompanyModelFromDomain(c)).Error
}

var _ company.CompanyRepository = (*GormCompanyRepository)(nil)
