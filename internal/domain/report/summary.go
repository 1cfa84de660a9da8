package report

import (
	"strings"
	"time"

	"github.com/erp/invoicing/internal/domain/document"
	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceSummary is the read model of a document used by the report aggregators.
// Its totals are the persisted derived values.
type InvoiceSummary struct {
	ID               uuid.UUID               `json:"id_document"`
	Type             document.DocumentType   `json:"type"`
	Status           document.DocumentStatus `json:"status"`
	CompanyID        uuid.UUID               `json:"company_id"`
	ComName          string                  `json:"com_name"`
	DocNumber        string                  `json:"doc_number"`
	DocDate          time.Time               `json:"doc_date"`
	Deadline         *time.Time              `json:"deadline,omitempty"`
	TotalNet         decimal.Decimal         `json:"total_net"`
	TotalVat         decimal.Decimal         `json:"total_vat"`
	TotalWithholding decimal.Decimal         `json:"total_withholding"`
	TotalToPay       decimal.Decimal         `json:"total_to_pay"`
}

// Direction selects which side of the tenant's invoicing a report covers
type Direction string

const (
	DirectionSales     Direction = "sales"
	DirectionPurchases Direction = "purchases"
	DirectionAll       Direction = "all"
)

// ParseDirection parses a direction, treating an empty value as all
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return DirectionAll, nil
	case DirectionSales, DirectionPurchases, DirectionAll:
		return d, nil
	}
	return "", shared.ValidationErrors{"direction": "Must be one of: sales purchases all"}
}

// DocumentTypes returns the invoice types included by the direction
func (d Direction) DocumentTypes() []document.DocumentType {
	switch d {
	case DirectionSales:
		return []document.DocumentType{document.TypeCustomerInvoice}
	case DirectionPurchases:
		return []document.DocumentType{document.TypeProviderInvoice}
	default:
		return []document.DocumentType{document.TypeCustomerInvoice, document.TypeProviderInvoice}
	}
}

// Includes reports whether an invoice of type t belongs to the direction
func (d Direction) Includes(t document.DocumentType) bool {
	for _, dt := range d.DocumentTypes() {
		if dt == t {
			return true
		}
	}
	return false
}

// FilterDirection keeps the invoices matching d
func FilterDirection(invoices []InvoiceSummary, d Direction) []InvoiceSummary {
	out := make([]InvoiceSummary, 0, len(invoices))
	for _, inv := range invoices {
		if d.Includes(inv.Type) {
			out = append(out, inv)
		}
	}
	return out
}

// lessByDate orders invoices by date, then number, then id
func lessByDate(a, b InvoiceSummary, dateA, dateB time.Time) bool {
	if !dateA.Equal(dateB) {
		return dateA.Before(dateB)
	}
	if a.DocNumber != b.DocNumber {
		return a.DocNumber < b.DocNumber
	}
	return a.ID.String() < b.ID.String()
}
