package document

import (
	"context"

	"github.com/erp/invoicing/internal/domain/company"
	"github.com/erp/invoicing/internal/domain/document"
	"github.com/google/uuid"
)

// OrderService handles billable orders
type OrderService struct {
	orderRepo document.OrderRepository
	ownership *company.OwnershipResolver
}

// NewOrderService creates a new OrderService
func NewOrderService(companies company.CompanyReader, orderRepo document.OrderRepository) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		ownership: company.NewOwnershipResolver(companies),
	}
}

// Create registers an order for a company of the tenant
func (s *OrderService) Create(ctx context.Context, tenantID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	in := document.OrderInput{
		CompanyID:   req.CompanyID,
		Reference:   req.Reference,
		Description: req.Description,
		Total:       req.Total,
		OrderDate:   req.OrderDate,
	}
	if errs := document.ValidateOrderInput(in); errs.HasErrors() {
		return nil, errs
	}

	scope := s.ownership.ResolveOwnerScope(tenantID)
	if err := s.ownership.AssertBelongsToTenant(ctx, req.CompanyID, scope); err != nil {
		return nil, err
	}

	order, err := document.NewOrder(scope, in)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order of the tenant
func (s *OrderService) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, s.ownership.ResolveOwnerScope(tenantID), orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List lists the orders of the tenant
func (s *OrderService) List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindAllForTenant(ctx, s.ownership.ResolveOwnerScope(tenantID), filter.toDomain())
	if err != nil {
		return nil, err
	}
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses, nil
}
