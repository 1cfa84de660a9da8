package report

import (
	"context"

	"github.com/google/uuid"
)

// CashFlowFilter defines the inputs of a cash-flow report
type CashFlowFilter struct {
	TenantID  uuid.UUID `json:"-"`
	Range     DateRange `json:"range"`
	Direction Direction `json:"direction"`
}

// InvoiceReader fetches report read models already scoped to a tenant
type InvoiceReader interface {
	// FindInvoices returns INV_* documents of the filter's direction issued within its range
	FindInvoices(ctx context.Context, filter CashFlowFilter) ([]InvoiceSummary, error)

	// FindPendingInvoices returns invoices whose status still awaits payment
	FindPendingInvoices(ctx context.Context, tenantID uuid.UUID) ([]InvoiceSummary, error)
}
