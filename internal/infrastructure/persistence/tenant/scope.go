// Package tenant provides owner-company scoping for GORM queries.
//
// Every tenant-owned table carries an owner_company_id column. Repositories
// apply one of these scopes to each query so a row outside the caller's tenant
// is indistinguishable from a missing row.
//
// Usage:
//
//	db.Scopes(tenant.OwnerScope(tenantID)).First(&model, "id = ?", id)
package tenant

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnerColumn is the column holding the owning tenant
const OwnerColumn = "owner_company_id"

// OwnerScope restricts a query to rows owned by tenantID
func OwnerScope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(OwnerColumn+" = ?", tenantID)
	}
}

// CompanyScope restricts a company query to the tenant root and the companies it owns
func CompanyScope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("((id = ? AND "+OwnerColumn+" IS NULL) OR "+OwnerColumn+" = ?)", tenantID, tenantID)
	}
}

// ChangeRateScope restricts a change-rate query to the tenant's rates plus the
// shared base-currency row
func ChangeRateScope(tenantID uuid.UUID, baseID int64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("("+OwnerColumn+" = ? OR ("+OwnerColumn+" IS NULL AND (id = ? OR is_base = ?)))", tenantID, baseID, true)
	}
}
