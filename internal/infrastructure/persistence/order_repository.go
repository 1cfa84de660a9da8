package persistence

import (
	"context"

	"github.com/erp/invoicing/internal/domain/document"
	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/erp/invoicing/internal/infrastructure/persistence/models"
	"github.com/erp/invoicing/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var orderList = listQuery{
	sortColumns:   orderSortColumns,
	defaultSort:   "order_date",
	searchColumns: []string{"reference", "description"},
}

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByIDForTenant finds an order by ID within a tenant
func (r *GormOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*document.Order, error) {
	var model models.OrderModel
	if err := conn(ctx, r.db).
		Scopes(tenant.OwnerScope(tenantID)).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// FindByIDsForTenant finds several orders within a tenant; ids outside the tenant are skipped
func (r *GormOrderRepository) FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]document.Order, error) {
	if len(ids) == 0 {
		return []document.Order{}, nil
	}

	var orderModels []models.OrderModel
	if err := conn(ctx, r.db).
		Scopes(tenant.OwnerScope(tenantID)).
		Where("id IN ?", ids).
		Order("order_date ASC, id ASC").
		Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return ordersToDomain(orderModels), nil
}

// FindOrdersForDocument returns every order linked to a document
func (r *GormOrderRepository) FindOrdersForDocument(ctx context.Context, tenantID, documentID uuid.UUID) ([]document.Order, error) {
	var orderModels []models.OrderModel
	if err := conn(ctx, r.db).
		Joins("JOIN document_orders ON document_orders.order_id = orders.id").
		Where("document_orders.document_id = ? AND orders."+tenant.OwnerColumn+" = ?", documentID, tenantID).
		Order("orders.order_date ASC, orders.id ASC").
		Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return ordersToDomain(orderModels), nil
}

// FindAllForTenant lists orders of a tenant
func (r *GormOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]document.Order, error) {
	var orderModels []models.OrderModel
	query := orderList.apply(conn(ctx, r.db).Model(&models.OrderModel{}).Scopes(tenant.OwnerScope(tenantID)), filter)
	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return ordersToDomain(orderModels), nil
}

// Save creates or updates an order
func (r *GormOrderRepository) Save(ctx context.Context, order *document.Order) error {
	return conn(ctx, r.db).Save(models.OrderModelFromDomain(order)).Error
}

func ordersToDomain(orderModels []models.OrderModel) []document.Order {
	orders := make([]document.Order, len(orderModels))
	for i, model := range orderModels {
		orders[i] = *model.ToDomain()
	}
	return orders
}

// GormChangeRateRepository implements ChangeRateRepository using GORM
type GormChangeRateRepository struct {
	db *gorm.DB
}

// NewGormChangeRateRepository creates a new GormChangeRateRepository
func NewGormChangeRateRepository(db *gorm.DB) *GormChangeRateRepository {
	return &GormChangeRateRepository{db: db}
}

// FindByIDForTenant finds a rate owned by the tenant or the shared base-currency row
func (r *GormChangeRateRepository) FindByIDForTenant(ctx context.Context, tenantID uuid.UUID, id int64) (*document.ChangeRate, error) {
	var model models.ChangeRateModel
	if err := conn(ctx, r.db).
		Scopes(tenant.ChangeRateScope(tenantID, document.BaseCurrencyRateID)).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists the base-currency row first, then the tenant's rates newest first
func (r *GormChangeRateRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]document.ChangeRate, error) {
	var rateModels []models.ChangeRateModel
	if err := conn(ctx, r.db).
		Scopes(tenant.ChangeRateScope(tenantID, document.BaseCurrencyRateID)).
		Order("is_base DESC, date DESC, id DESC").
		Find(&rateModels).Error; err != nil {
		return nil, err
	}

	rates := make([]document.ChangeRate, len(rateModels))
	for i, model := range rateModels {
		rates[i] = *model.ToDomain()
	}
	return rates, nil
}

// Save creates a rate and assigns its id, or updates an existing one
func (r *GormChangeRateRepository) Save(ctx context.Context, rate *document.ChangeRate) error {
	model := models.ChangeRateModelFromDomain(rate)
	if rate.ID != 0 {
		return conn(ctx, r.db).Save(model).Error
	}
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return err
	}
	rate.ID = model.ID
	return nil
}

var (
	_ document.OrderRepository      = (*GormOrderRepository)(nil)
	_ document.ChangeRateRepository = (*GormChangeRateRepository)(nil)
)
