package document

import (
	"context"

	"github.com/erp/invoicing/internal/domain/document"
	"github.com/google/uuid"
)

// ChangeRateService handles currency change rates. The base-currency row is shared by every tenant.
type ChangeRateService struct {
	rateRepo document.ChangeRateRepository
}

// NewChangeRateService creates a new ChangeRateService
func NewChangeRateService(rateRepo document.ChangeRateRepository) *ChangeRateService {
	return &ChangeRateService{rateRepo: rateRepo}
}

// Create registers a change rate owned by the tenant
func (s *ChangeRateService) Create(ctx context.Context, tenantID uuid.UUID, req CreateChangeRateRequest) (*ChangeRateResponse, error) {
	rate, err := document.NewChangeRate(tenantID, document.ChangeRateInput{
		Currency1: req.Currency1,
		Currency2: req.Currency2,
		Rate:      req.Rate,
		Date:      req.Date,
	})
	if err != nil {
		return nil, err
	}
	if err := s.rateRepo.Save(ctx, rate); err != nil {
		return nil, err
	}

	response := ToChangeRateResponse(rate)
	return &response, nil
}

// List returns the tenant's rates and the base-currency row
func (s *ChangeRateService) List(ctx context.Context, tenantID uuid.UUID) ([]ChangeRateResponse, error) {
	rates, err := s.rateRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	responses := make([]ChangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToChangeRateResponse(&rates[i])
	}
	return responses, nil
}
