package company

import (
	"context"

	"github.com/erp/invoicing/internal/domain/company"
	"github.com/erp/invoicing/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// BankAccountService handles bank accounts of tenant companies
type BankAccountService struct {
	accountRepo company.BankAccountRepository
	ownership   *company.OwnershipResolver
}

// NewBankAccountService creates a new BankAccountService
func NewBankAccountService(companies company.CompanyReader, accountRepo company.BankAccountRepository) *BankAccountService {
	return &BankAccountService{
		accountRepo: accountRepo,
		ownership:   company.NewOwnershipResolver(companies),
	}
}

// Create registers a bank account. An IBAN failing the checksum is reported on field "iban".
func (s *BankAccountService) Create(ctx context.Context, tenantID uuid.UUID, req CreateBankAccountRequest) (*BankAccountResponse, error) {
	in := company.BankAccountInput{
		CompanyID: req.CompanyID,
		IBAN:      req.IBAN,
		Holder:    req.Holder,
		Branch:    req.Branch,
	}
	if errs := company.ValidateBankAccountInput(in); errs.HasErrors() {
		return nil, errs
	}

	scope := s.ownership.ResolveOwnerScope(tenantID)
	if err := s.ownership.AssertBelongsToTenant(ctx, req.CompanyID, scope); err != nil {
		return nil, err
	}

	account, err := company.NewBankAccount(scope, in)
	if err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	response := ToBankAccountResponse(account)
	return &response, nil
}

// ListByCompany lists the accounts of a company of the tenant
func (s *BankAccountService) ListByCompany(ctx context.Context, tenantID, companyID uuid.UUID) ([]BankAccountResponse, error) {
	scope := s.ownership.ResolveOwnerScope(tenantID)
	if err := s.ownership.AssertBelongsToTenant(ctx, companyID, scope); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.FindByCompany(ctx, scope, companyID)
	if err != nil {
		return nil, err
	}
	responses := make([]BankAccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToBankAccountResponse(&accounts[i])
	}
	return responses, nil
}

// CheckIBAN validates an IBAN without storing anything
func (s *BankAccountService) CheckIBAN(req CheckIBANRequest) IBANCheckResponse {
	resp := IBANCheckResponse{IBAN: req.IBAN, Valid: valueobject.IsValidIBAN(req.IBAN)}
	if resp.Valid {
		resp.Normalized = valueobject.NormalizeIBAN(req.IBAN)
		resp.Formatted = valueobject.FormatIBAN(req.IBAN)
	}
	return resp
}
