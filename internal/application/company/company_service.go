package company

import (
	"context"

	"github.com/erp/invoicing/internal/domain/company"
	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/google/uuid"
)

// CompanyService handles company registration and lookup
type CompanyService struct {
	companyRepo    company.CompanyRepository
	ownership      *company.OwnershipResolver
	eventPublisher shared.EventPublisher
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo company.CompanyRepository) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		ownership:   company.NewOwnershipResolver(companyRepo),
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *CompanyService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateRoot registers a new root company, which becomes a tenant of its own
func (s *CompanyService) CreateRoot(ctx context.Context, req CreateCompanyRequest) (*CompanyResponse, error) {
	profile, err := req.profile()
	if err != nil {
		return nil, err
	}
	c, err := company.NewCompany(profile)
	if err != nil {
		return nil, err
	}
	if err := s.companyRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	s.publish(ctx, c)

	response := ToCompanyResponse(c)
	return &response, nil
}

// Create registers a company owned by the tenant root
func (s *CompanyService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCompanyRequest) (*CompanyResponse, error) {
	owner, err := s.ownership.LoadForTenant(ctx, tenantID, s.ownership.ResolveOwnerScope(tenantID))
	if err != nil {
		return nil, err
	}

	profile, err := req.profile()
	if err != nil {
		return nil, err
	}
	exists, err := s.companyRepo.ExistsByVATNumber(ctx, tenantID, profile.VATNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists.With("Company with this VAT number already exists")
	}

	c, err := company.NewCompany(profile)
	if err != nil {
		return nil, err
	}
	if err := c.AssignOwner(owner); err != nil {
		return nil, err
	}
	if err := s.companyRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	s.publish(ctx, c)

	response := ToCompanyResponse(c)
	return &response, nil
}

// GetByID retrieves a company visible to the tenant
func (s *CompanyService) GetByID(ctx context.Context, tenantID, companyID uuid.UUID) (*CompanyResponse, error) {
	c, err := s.ownership.LoadForTenant(ctx, companyID, s.ownership.ResolveOwnerScope(tenantID))
	if err != nil {
		return nil, err
	}
	response := ToCompanyResponse(c)
	return &response, nil
}

// List returns the tenant root and the companies it owns
func (s *CompanyService) List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]CompanyResponse, error) {
	companies, err := s.companyRepo.FindForTenant(ctx, s.ownership.ResolveOwnerScope(tenantID), filter.toDomain())
	if err != nil {
		return nil, err
	}
	responses := make([]CompanyResponse, len(companies))
	for i := range companies {
		responses[i] = ToCompanyResponse(&companies[i])
	}
	return responses, nil
}

func (s *CompanyService) publish(ctx context.Context, c *company.Company) {
	shared.PublishRecorded(ctx, s.eventPublisher, c)
}
