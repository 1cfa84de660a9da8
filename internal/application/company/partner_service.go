package company

import (
	"context"
	"errors"

	"github.com/erp/invoicing/internal/domain/company"
	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/google/uuid"
)

// PartnerService registers tenant companies in the customer and provider roles
type PartnerService struct {
	customerRepo   company.CustomerRepository
	providerRepo   company.ProviderRepository
	ownership      *company.OwnershipResolver
	eventPublisher shared.EventPublisher
}

// NewPartnerService creates a new PartnerService
func NewPartnerService(
	companies company.CompanyReader,
	customerRepo company.CustomerRepository,
	providerRepo company.ProviderRepository,
) *PartnerService {
	return &PartnerService{
		customerRepo: customerRepo,
		providerRepo: providerRepo,
		ownership:    company.NewOwnershipResolver(companies),
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *PartnerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateCustomer registers a company of the tenant as a customer
func (s *PartnerService) CreateCustomer(ctx context.Context, tenantID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	scope := s.ownership.ResolveOwnerScope(tenantID)
	counterparty, err := s.ownership.LoadForTenant(ctx, req.CompanyID, scope)
	if err != nil {
		return nil, err
	}

	existing, err := s.customerRepo.FindByCompany(ctx, scope, req.CompanyID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists.With("Company is already registered as a customer")
	}

	var payMethod *company.PayMethod
	if req.PayMethod != nil {
		m := company.PayMethod(*req.PayMethod)
		payMethod = &m
	}
	customer, err := company.NewCustomer(scope, counterparty, req.DueDays, payMethod)
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	shared.PublishRecorded(ctx, s.eventPublisher, customer)

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetCustomer retrieves a customer of the tenant
func (s *PartnerService) GetCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, s.ownership.ResolveOwnerScope(tenantID), customerID)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// ListCustomers lists the customers of the tenant
func (s *PartnerService) ListCustomers(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]CustomerResponse, error) {
	customers, err := s.customerRepo.FindAllForTenant(ctx, s.ownership.ResolveOwnerScope(tenantID), filter.toDomain())
	if err != nil {
		return nil, err
	}
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses, nil
}

// CreateProvider registers a company of the tenant as a provider
func (s *PartnerService) CreateProvider(ctx context.Context, tenantID uuid.UUID, req CreateProviderRequest) (*ProviderResponse, error) {
	scope := s.ownership.ResolveOwnerScope(tenantID)
	counterparty, err := s.ownership.LoadForTenant(ctx, req.CompanyID, scope)
	if err != nil {
		return nil, err
	}

	provider, err := company.NewProvider(scope, counterparty)
	if err != nil {
		return nil, err
	}
	if err := s.providerRepo.Save(ctx, provider); err != nil {
		return nil, err
	}
	shared.PublishRecorded(ctx, s.eventPublisher, provider)

	response := ToProviderResponse(provider)
	return &response, nil
}

// ListProviders lists the providers of the tenant
func (s *PartnerService) ListProviders(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]ProviderResponse, error) {
	providers, err := s.providerRepo.FindAllForTenant(ctx, s.ownership.ResolveOwnerScope(tenantID), filter.toDomain())
	if err != nil {
		return nil, err
	}
	responses := make([]ProviderResponse, len(providers))
	for i := range providers {
		responses[i] = ToProviderResponse(&providers[i])
	}
	return responses, nil
}
