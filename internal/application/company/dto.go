package company

import (
	"time"

	"github.com/erp/invoicing/internal/domain/company"
	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/erp/invoicing/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// =============================================================================
// Company DTOs
// =============================================================================

// AddressRequest is the postal address accepted on party registration
type AddressRequest struct {
	Street     string `json:"street" binding:"required,max=200"`
	City       string `json:"city" binding:"required,max=100"`
	Province   string `json:"province" binding:"max=100"`
	PostalCode string `json:"postal_code" binding:"max=20"`
	Country    string `json:"country" binding:"max=100"`
}

// toAddress converts the request into a value object
func (r *AddressRequest) toAddress() (valueobject.Address, error) {
	if r == nil {
		return valueobject.EmptyAddress(), nil
	}
	return valueobject.NewAddress(r.Street, r.City,
		valueobject.WithProvince(r.Province),
		valueobject.WithPostalCode(r.PostalCode),
		valueobject.WithCountry(r.Country),
	)
}

// CreateCompanyRequest represents a request to register a company.
// Inside a tenant the new company is owned by the tenant root.
type CreateCompanyRequest struct {
	LegalName      string          `json:"legal_name" binding:"required,min=1,max=200"`
	CommercialName string          `json:"commercial_name" binding:"max=200"`
	VATNumber      string          `json:"vat_number" binding:"required,min=1,max=30"`
	Email          string          `json:"email" binding:"omitempty,email,max=200"`
	Phone          string          `json:"phone" binding:"max=50"`
	Address        *AddressRequest `json:"address"`
}

// profile builds the party profile carried by the request
func (r CreateCompanyRequest) profile() (company.PartyProfile, error) {
	addr, err := r.Address.toAddress()
	if err != nil {
		return company.PartyProfile{}, shared.ValidationErrors{"address": err.Error()}
	}
	return company.NewPartyProfile(r.LegalName, r.CommercialName, r.VATNumber).
		WithContact(r.Email, r.Phone).
		WithAddress(addr), nil
}

// CompanyResponse represents a company in API responses
type CompanyResponse struct {
	ID             uuid.UUID           `json:"id"`
	OwnerCompanyID *uuid.UUID          `json:"owner_company_id,omitempty"`
	IsRoot         bool                `json:"is_root"`
	LegalName      string              `json:"legal_name"`
	CommercialName string              `json:"commercial_name,omitempty"`
	DisplayName    string              `json:"display_name"`
	VATNumber      string              `json:"vat_number"`
	Email          string              `json:"email,omitempty"`
	Phone          string              `json:"phone,omitempty"`
	Address        valueobject.Address `json:"address"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// ToCompanyResponse converts a domain Company to CompanyResponse
func ToCompanyResponse(c *company.Company) CompanyResponse {
	return CompanyResponse{
		ID:             c.ID,
		OwnerCompanyID: c.OwnerCompanyID,
		IsRoot:         c.IsRoot(),
		LegalName:      c.LegalName,
		CommercialName: c.CommercialName,
		DisplayName:    c.DisplayName(),
		VATNumber:      c.VATNumber,
		Email:          c.Email,
		Phone:          c.Phone,
		Address:        c.Address,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// ListFilter holds the common list query parameters
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// toDomain fills in defaults and converts to a repository filter
func (f ListFilter) toDomain() shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	filter.OrderBy = f.OrderBy
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	} else {
		filter.OrderDir = "asc"
	}
	filter.Search = f.Search
	return filter
}

// =============================================================================
// Customer / Provider DTOs
// =============================================================================

// CreateCustomerRequest registers a company of the tenant as a customer
type CreateCustomerRequest struct {
	CompanyID uuid.UUID `json:"company_id" binding:"required"`
	DueDays   *int      `json:"due_days" binding:"omitempty,min=0,max=365"`
	PayMethod *string   `json:"pay_method" binding:"omitempty,oneof=TRANSFER CASH CARD DIRECT_DEBIT CHECK"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID             uuid.UUID `json:"id"`
	OwnerCompanyID uuid.UUID `json:"owner_company_id"`
	CompanyID      uuid.UUID `json:"company_id"`
	LegalName      string    `json:"legal_name"`
	DisplayName    string    `json:"display_name"`
	VATNumber      string    `json:"vat_number"`
	DueDays        *int      `json:"due_days,omitempty"`
	PayMethod      string    `json:"pay_method,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *company.Customer) CustomerResponse {
	resp := CustomerResponse{
		ID:             c.ID,
		OwnerCompanyID: c.OwnerCompanyID,
		CompanyID:      c.CompanyID,
		LegalName:      c.LegalName,
		DisplayName:    c.DisplayName(),
		VATNumber:      c.VATNumber,
		DueDays:        c.DueDays,
		CreatedAt:      c.CreatedAt,
	}
	if c.PayMethod != nil {
		resp.PayMethod = c.PayMethod.String()
	}
	return resp
}

// CreateProviderRequest registers a company of the tenant as a provider
type CreateProviderRequest struct {
	CompanyID uuid.UUID `json:"company_id" binding:"required"`
}

// ProviderResponse represents a provider in API responses
type ProviderResponse struct {
	ID             uuid.UUID `json:"id"`
	OwnerCompanyID uuid.UUID `json:"owner_company_id"`
	CompanyID      uuid.UUID `json:"company_id"`
	LegalName      string    `json:"legal_name"`
	DisplayName    string    `json:"display_name"`
	VATNumber      string    `json:"vat_number"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToProviderResponse converts a domain Provider to ProviderResponse
func ToProviderResponse(p *company.Provider) ProviderResponse {
	return ProviderResponse{
		ID:             p.ID,
		OwnerCompanyID: p.OwnerCompanyID,
		CompanyID:      p.CompanyID,
		LegalName:      p.LegalName,
		DisplayName:    p.DisplayName(),
		VATNumber:      p.VATNumber,
		CreatedAt:      p.CreatedAt,
	}
}

// =============================================================================
// Bank account DTOs
// =============================================================================

// CreateBankAccountRequest registers a bank account for a company of the tenant.
// The IBAN checksum is verified by the domain, not by binding.
type CreateBankAccountRequest struct {
	CompanyID uuid.UUID `json:"company_id" binding:"required"`
	IBAN      string    `json:"iban" binding:"required,max=50"`
	Holder    string    `json:"holder" binding:"max=200"`
	Branch    string    `json:"branch" binding:"max=200"`
}

// BankAccountResponse represents a bank account in API responses
type BankAccountResponse struct {
	ID            uuid.UUID `json:"id"`
	CompanyID     uuid.UUID `json:"company_id"`
	IBAN          string    `json:"iban"`
	FormattedIBAN string    `json:"formatted_iban"`
	Holder        string    `json:"holder,omitempty"`
	Branch        string    `json:"branch,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToBankAccountResponse converts a domain BankAccount to BankAccountResponse
func ToBankAccountResponse(b *company.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		ID:            b.ID,
		CompanyID:     b.CompanyID,
		IBAN:          b.IBAN,
		FormattedIBAN: b.FormattedIBAN(),
		Holder:        b.Holder,
		Branch:        b.Branch,
		CreatedAt:     b.CreatedAt,
	}
}

// CheckIBANRequest asks whether an IBAN passes the checksum
type CheckIBANRequest struct {
	IBAN string `json:"iban" binding:"required"`
}

// IBANCheckResponse reports the outcome of an IBAN check
type IBANCheckResponse struct {
	IBAN       string `json:"iban"`
	Valid      bool   `json:"valid"`
	Normalized string `json:"normalized,omitempty"`
	Formatted  string `json:"formatted,omitempty"`
}
