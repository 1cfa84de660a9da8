package company

import (
	"net/mail"

	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/erp/invoicing/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

const (
	maxNameLength  = 200
	maxVATLength   = 30
	maxPhoneLength = 50
	maxDueDays     = 365
	maxHolderLen   = 200
	maxBranchLen   = 200
)

// CompanyInput is the raw input accepted when registering a company
type CompanyInput struct {
	Profile        PartyProfile
	OwnerCompanyID *uuid.UUID
}

// PartnerInput is the raw input accepted when registering a customer or provider
type PartnerInput struct {
	CompanyID uuid.UUID
	DueDays   *int
	PayMethod *PayMethod
}

// BankAccountInput is the raw input accepted when registering a bank account
type BankAccountInput struct {
	CompanyID uuid.UUID
	IBAN      string
	Holder    string
	Branch    string
}

// ValidateProfile checks the shared party fields and records failures in errs
func ValidateProfile(p PartyProfile, errs shared.ValidationErrors) {
	if p.LegalName == "" {
		errs.Add("legal_name", "Legal name is required")
	} else if len(p.LegalName) > maxNameLength {
		errs.Add("legal_name", "Legal name cannot exceed 200 characters")
	}
	if len(p.CommercialName) > maxNameLength {
		errs.Add("commercial_name", "Commercial name cannot exceed 200 characters")
	}
	if p.VATNumber == "" {
		errs.Add("vat_number", "VAT number is required")
	} else if len(p.VATNumber) > maxVATLength {
		errs.Add("vat_number", "VAT number cannot exceed 30 characters")
	}
	if p.Email != "" {
		if _, err := mail.ParseAddress(p.Email); err != nil {
			errs.Add("email", "Invalid email format")
		}
	}
	if len(p.Phone) > maxPhoneLength {
		errs.Add("phone", "Phone cannot exceed 50 characters")
	}
}

// ValidateCompanyInput validates a company registration
func ValidateCompanyInput(in CompanyInput) shared.ValidationErrors {
	errs := shared.ValidationErrors{}
	ValidateProfile(in.Profile, errs)
	if in.OwnerCompanyID != nil && *in.OwnerCompanyID == uuid.Nil {
		errs.Add("owner_company_id", "Owner company id cannot be empty")
	}
	return errs
}

// ValidatePartnerInput validates a customer or provider registration
func ValidatePartnerInput(in PartnerInput) shared.ValidationErrors {
	errs := shared.ValidationErrors{}
	if in.CompanyID == uuid.Nil {
		errs.Add("company_id", "Company is required")
	}
	if in.DueDays != nil && (*in.DueDays < 0 || *in.DueDays > maxDueDays) {
		errs.Add("due_days", "Due days must be between 0 and 365")
	}
	if in.PayMethod != nil && !in.PayMethod.IsValid() {
		errs.Add("pay_method", "Unknown payment method")
	}
	return errs
}

// ValidateBankAccountInput validates a bank account registration, including the IBAN checksum
func ValidateBankAccountInput(in BankAccountInput) shared.ValidationErrors {
	errs := shared.ValidationErrors{}
	if in.CompanyID == uuid.Nil {
		errs.Add("company_id", "Company is required")
	}
	if !valueobject.IsValidIBAN(in.IBAN) {
		errs.Add("iban", "Invalid IBAN")
	}
	if len(in.Holder) > maxHolderLen {
		errs.Add("holder", "Holder cannot exceed 200 characters")
	}
	if len(in.Branch) > maxBranchLen {
		errs.Add("branch", "Branch cannot exceed 200 characters")
	}
	return errs
}
