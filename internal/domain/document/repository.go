package document

import (
	"context"

	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByIDForTenant finds an order by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)

	// FindByIDsForTenant finds several orders within a tenant; missing ids are skipped
	FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Order, error)

	// FindOrdersForDocument returns every order linked to a document
	FindOrdersForDocument(ctx context.Context, tenantID, documentID uuid.UUID) ([]Order, error)

	// FindAllForTenant lists orders of a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Order, error)

	// Save creates or updates an order
	Save(ctx context.Context, order *Order) error
}

// ChangeRateRepository defines the interface for change rate persistence
type ChangeRateRepository interface {
	// FindByIDForTenant finds a rate owned by the tenant or the shared base-currency row
	FindByIDForTenant(ctx context.Context, tenantID uuid.UUID, id int64) (*ChangeRate, error)

	// FindAllForTenant lists the tenant's rates plus the base-currency row
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]ChangeRate, error)

	// Save creates a rate and assigns its id
	Save(ctx context.Context, rate *ChangeRate) error
}

// DocumentRepository defines the interface for document persistence.
// Save persists the linked order set together with the derived totals.
type DocumentRepository interface {
	// FindByIDForTenant finds a document by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Document, error)

	// ExistsByDocNumber checks whether a number is already used for a type within a tenant
	ExistsByDocNumber(ctx context.Context, tenantID uuid.UUID, docType DocumentType, docNumber string) (bool, error)

	// Save creates or updates a document and its order links
	Save(ctx context.Context, doc *Document) error
}
