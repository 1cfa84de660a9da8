package document

import (
	"strings"
	"time"

	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BaseCurrencyRateID is the seeded change rate meaning "no conversion"
const BaseCurrencyRateID int64 = 1

// ChangeRate converts document totals from Currency1 into Currency2.
// The base-currency row has no owner and is visible to every tenant.
type ChangeRate struct {
	ID             int64
	OwnerCompanyID *uuid.UUID
	Currency1      string
	Currency2      string
	Rate           decimal.Decimal
	Date           time.Time
	IsBase         bool
	CreatedAt      time.Time
}

// ChangeRateInput is the raw input accepted when registering a change rate
type ChangeRateInput struct {
	Currency1 string
	Currency2 string
	Rate      decimal.Decimal
	Date      time.Time
}

// ValidateChangeRateInput validates a change rate registration
func ValidateChangeRateInput(in ChangeRateInput) shared.ValidationErrors {
	errs := shared.ValidationErrors{}
	if !isCurrencyCode(in.Currency1) {
		errs.Add("currency1", "Currency must be a 3-letter ISO code")
	}
	if !isCurrencyCode(in.Currency2) {
		errs.Add("currency2", "Currency must be a 3-letter ISO code")
	}
	if !in.Rate.IsPositive() {
		errs.Add("rate", "Rate must be greater than 0")
	}
	if in.Date.IsZero() {
		errs.Add("date", "Date is required")
	}
	return errs
}

// NewChangeRate creates a tenant-scoped change rate. The id is assigned on save.
func NewChangeRate(ownerCompanyID uuid.UUID, in ChangeRateInput) (*ChangeRate, error) {
	if errs := ValidateChangeRateInput(in); errs.HasErrors() {
		return nil, errs
	}

	owner := ownerCompanyID
	return &ChangeRate{
		OwnerCompanyID: &owner,
		Currency1:      strings.ToUpper(in.Currency1),
		Currency2:      strings.ToUpper(in.Currency2),
		Rate:           in.Rate,
		Date:           truncateToDate(in.Date),
		CreatedAt:      time.Now(),
	}, nil
}

// IsBaseCurrency reports whether the rate means "no conversion".
// The seeded id 1 keeps that meaning alongside the explicit flag.
func (r *ChangeRate) IsBaseCurrency() bool {
	return r.ID == BaseCurrencyRateID || r.IsBase
}

// VisibleTo reports whether tenantID may reference the rate
func (r *ChangeRate) VisibleTo(tenantID uuid.UUID) bool {
	if r.OwnerCompanyID == nil {
		return r.IsBaseCurrency()
	}
	return *r.OwnerCompanyID == tenantID
}

func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}
