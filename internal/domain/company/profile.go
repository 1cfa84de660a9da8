package company

import (
	"strings"

	"github.com/erp/invoicing/internal/domain/shared/valueobject"
)

// PartyProfile holds the identity fields shared by companies, customers and providers
type PartyProfile struct {
	LegalName      string
	CommercialName string
	VATNumber      string
	Email          string
	Phone          string
	Address        valueobject.Address
}

// NewPartyProfile creates a profile with trimmed names. VAT numbers are upper-cased.
func NewPartyProfile(legalName, commercialName, vatNumber string) PartyProfile {
	return PartyProfile{
		LegalName:      strings.TrimSpace(legalName),
		CommercialName: strings.TrimSpace(commercialName),
		VATNumber:      strings.ToUpper(strings.TrimSpace(vatNumber)),
	}
}

// WithContact returns a copy of the profile with email and phone set
func (p PartyProfile) WithContact(email, phone string) PartyProfile {
	p.Email = strings.TrimSpace(email)
	p.Phone = strings.TrimSpace(phone)
	return p
}

// WithAddress returns a copy of the profile with the given address
func (p PartyProfile) WithAddress(addr valueobject.Address) PartyProfile {
	p.Address = addr
	return p
}

// DisplayName prefers the commercial name and falls back to the legal name
func (p PartyProfile) DisplayName() string {
	if p.CommercialName != "" {
		return p.CommercialName
	}
	return p.LegalName
}
