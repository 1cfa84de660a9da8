package document

import (
	"strings"
	"time"

	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderInput is the raw input accepted when registering an order
type OrderInput struct {
	CompanyID   uuid.UUID
	Reference   string
	Description string
	Total       decimal.Decimal
	OrderDate   time.Time
}

// ValidateOrderInput validates an order registration
func ValidateOrderInput(in OrderInput) shared.ValidationErrors {
	errs := shared.ValidationErrors{}
	if in.CompanyID == uuid.Nil {
		errs.Add("company_id", "Company is required")
	}
	ref := strings.TrimSpace(in.Reference)
	if ref == "" {
		errs.Add("reference", "Reference is required")
	} else if len(ref) > 50 {
		errs.Add("reference", "Reference cannot exceed 50 characters")
	}
	if in.Total.IsNegative() {
		errs.Add("total", "Total cannot be negative")
	}
	if in.OrderDate.IsZero() {
		errs.Add("order_date", "Order date is required")
	}
	return errs
}

// Order is a billable unit of work whose total is fixed at creation
type Order struct {
	shared.TenantAggregateRoot
	CompanyID   uuid.UUID
	Reference   string
	Description string
	Total       decimal.Decimal
	OrderDate   time.Time
}

// NewOrder creates an order for the counterparty in.CompanyID
func NewOrder(ownerCompanyID uuid.UUID, in OrderInput) (*Order, error) {
	if errs := ValidateOrderInput(in); errs.HasErrors() {
		return nil, errs
	}

	return &Order{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(ownerCompanyID),
		CompanyID:           in.CompanyID,
		Reference:           strings.ToUpper(strings.TrimSpace(in.Reference)),
		Description:         strings.TrimSpace(in.Description),
		Total:               in.Total,
		OrderDate:           truncateToDate(in.OrderDate),
	}, nil
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
