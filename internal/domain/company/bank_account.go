package company

import (
	"strings"

	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/erp/invoicing/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// BankAccount is an account held by a company within the tenant's scope
type BankAccount struct {
	shared.TenantAggregateRoot
	CompanyID uuid.UUID
	IBAN      string
	Holder    string
	Branch    string
}

// NewBankAccount validates the input (IBAN checksum included) and creates the account.
// The IBAN is stored normalized.
func NewBankAccount(ownerCompanyID uuid.UUID, in BankAccountInput) (*BankAccount, error) {
	if errs := ValidateBankAccountInput(in); errs.HasErrors() {
		return nil, errs
	}

	return &BankAccount{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(ownerCompanyID),
		CompanyID:           in.CompanyID,
		IBAN:                valueobject.NormalizeIBAN(in.IBAN),
		Holder:              strings.TrimSpace(in.Holder),
		Branch:              strings.TrimSpace(in.Branch),
	}, nil
}

// FormattedIBAN returns the IBAN grouped in blocks of four
func (b *BankAccount) FormattedIBAN() string {
	return valueobject.FormatIBAN(b.IBAN)
}
