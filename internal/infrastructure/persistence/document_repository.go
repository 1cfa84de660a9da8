package persistence

import (
	"context"
	"strings"

	"github.com/erp/invoicing/internal/domain/document"
	"github.com/erp/invoicing/internal/infrastructure/persistence/models"
	"github.com/erp/invoicing/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDocumentRepository implements DocumentRepository using GORM.
// Order links live in document_orders and are rewritten on every save.
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// FindByIDForTenant finds a document by ID within a tenant, with its change rate and order links
func (r *GormDocumentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*document.Document, error) {
	db := conn(ctx, r.db)

	var model models.DocumentModel
	if err := db.
		Preload("ChangeRate").
		Scopes(tenant.OwnerScope(tenantID)).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}

	var orderIDs []uuid.UUID
	if err := db.
		Model(&models.DocumentOrderModel{}).
		Where("document_id = ?", id).
		Order("order_id ASC").
		Pluck("order_id", &orderIDs).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(orderIDs), nil
}

// ExistsByDocNumber checks whether a number is already used for a type within a tenant
func (r *GormDocumentRepository) ExistsByDocNumber(ctx context.Context, tenantID uuid.UUID, docType document.DocumentType, docNumber string) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).
		Model(&models.DocumentModel{}).
		Scopes(tenant.OwnerScope(tenantID)).
		Where("type = ? AND doc_number = ?", docType, strings.TrimSpace(docNumber)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a document and replaces its order links in one transaction
func (r *GormDocumentRepository) Save(ctx context.Context, doc *document.Document) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(models.DocumentModelFromDomain(doc)).Error; err != nil {
			return err
		}
		if err := tx.Where("document_id = ?", doc.ID).Delete(&models.DocumentOrderModel{}).Error; err != nil {
			return err
		}
		if len(doc.OrderIDs) == 0 {
			return nil
		}

		links := make([]models.DocumentOrderModel, len(doc.OrderIDs))
		for i, orderID := range doc.OrderIDs {
			links[i] = models.DocumentOrderModel{DocumentID: doc.ID, OrderID: orderID}
		}
		return tx.Create(&links).Error
	})
}

var _ document.DocumentRepository = (*GormDocumentRepository)(nil)
