package models

import (
	"time"

	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/google/uuid"
)

// AggregateRow holds the columns shared by every aggregate table
type AggregateRow struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Version   int       `gorm:"not null;default:1"`
}

func (r *AggregateRow) aggregateRoot() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{
		BaseEntity: shared.BaseEntity{ID: r.ID, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
		Version:    r.Version,
	}
}

func (r *AggregateRow) setAggregateRoot(a shared.BaseAggregateRoot) {
	r.ID, r.CreatedAt, r.UpdatedAt = a.ID, a.CreatedAt, a.UpdatedAt
	r.Version = a.Version
}

// TenantRow is an aggregate row owned by a root company
type TenantRow struct {
	AggregateRow
	OwnerCompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
}

func (r *TenantRow) tenantRoot() shared.TenantAggregateRoot {
	return shared.TenantAggregateRoot{BaseAggregateRoot: r.aggregateRoot(), OwnerCompanyID: r.OwnerCompanyID}
}

func (r *TenantRow) setTenantRoot(t shared.TenantAggregateRoot) {
	r.setAggregateRoot(t.BaseAggregateRoot)
	r.OwnerCompanyID = t.OwnerCompanyID
}
