package document

import (
	"strings"
	"time"

	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentType distinguishes invoices from quotes and purchase orders
type DocumentType string

const (
	TypeCustomerInvoice DocumentType = "INV_CUSTOMER"
	TypeProviderInvoice DocumentType = "INV_PROVIDER"
	TypeQuote           DocumentType = "QUOTE"
	TypePurchaseOrder   DocumentType = "PURCHASE_ORDER"
)

// IsValid reports whether t is a known document type
func (t DocumentType) IsValid() bool {
	switch t {
	case TypeCustomerInvoice, TypeProviderInvoice, TypeQuote, TypePurchaseOrder:
		return true
	}
	return false
}

// IsInvoice reports whether t is one of the INV_* types
func (t DocumentType) IsInvoice() bool {
	return strings.HasPrefix(string(t), "INV_")
}

// DocumentStatus is the payment status of a document
type DocumentStatus string

const (
	StatusPending  DocumentStatus = "PENDING"
	StatusAccepted DocumentStatus = "ACCEPTED"
	StatusModified DocumentStatus = "MODIFIED"
	StatusPaid     DocumentStatus = "PAID"
	StatusRejected DocumentStatus = "REJECTED"
)

// IsValid reports whether s is a known status
func (s DocumentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusModified, StatusPaid, StatusRejected:
		return true
	}
	return false
}

// IsPending reports whether the document still awaits payment
func (s DocumentStatus) IsPending() bool {
	return s == StatusPending || s == StatusAccepted || s == StatusModified
}

// PendingStatuses returns the statuses counted as awaiting payment
func PendingStatuses() []DocumentStatus {
	return []DocumentStatus{StatusPending, StatusAccepted, StatusModified}
}

// DocumentInput is the raw input accepted when creating a document
type DocumentInput struct {
	Type        DocumentType
	CompanyID   uuid.UUID
	DocNumber   string
	DocDate     time.Time
	Deadline    *time.Time
	VatRate     decimal.Decimal
	Withholding decimal.Decimal
}

// ValidateDocumentInput validates a document creation request
func ValidateDocumentInput(in DocumentInput) shared.ValidationErrors {
	errs := shared.ValidationErrors{}
	if !in.Type.IsValid() {
		errs.Add("type", "Unknown document type")
	}
	if in.CompanyID == uuid.Nil {
		errs.Add("company_id", "Company is required")
	}
	num := strings.TrimSpace(in.DocNumber)
	if num == "" {
		errs.Add("doc_number", "Document number is required")
	} else if len(num) > 50 {
		errs.Add("doc_number", "Document number cannot exceed 50 characters")
	}
	if in.DocDate.IsZero() {
		errs.Add("doc_date", "Document date is required")
	}
	if in.Deadline != nil && !in.DocDate.IsZero() && in.Deadline.Before(truncateToDate(in.DocDate)) {
		errs.Add("deadline", "Deadline cannot be before the document date")
	}
	validateFraction("vat_rate", in.VatRate, errs)
	validateFraction("withholding", in.Withholding, errs)
	return errs
}

func validateFraction(field string, v decimal.Decimal, errs shared.ValidationErrors) {
	if v.IsNegative() || v.GreaterThan(decimal.NewFromInt(1)) {
		errs.Add(field, "Must be a fraction between 0 and 1")
	}
}

// ErrDocumentPaid is returned when a paid document's financial inputs are modified
var ErrDocumentPaid = shared.ErrInvalidState.With("Paid documents cannot be modified")

// Document is an invoice, quote or purchase order. Its totals are derived from
// the linked orders and rates and are never set independently.
type Document struct {
	shared.TenantAggregateRoot
	Type        DocumentType
	Status      DocumentStatus
	CompanyID   uuid.UUID
	DocNumber   string
	DocDate     time.Time
	Deadline    *time.Time
	VatRate     decimal.Decimal
	Withholding decimal.Decimal
	OrderIDs    []uuid.UUID
	ChangeRate  *ChangeRate

	TotalNet              decimal.Decimal
	TotalVat              decimal.Decimal
	TotalWithholding      decimal.Decimal
	TotalGross            decimal.Decimal
	TotalToPay            decimal.Decimal
	TotalGrossInCurrency2 *decimal.Decimal
	TotalToPayInCurrency2 *decimal.Decimal

	NotePayment *string
}

// NewDocument creates a PENDING document with zero totals
func NewDocument(ownerCompanyID uuid.UUID, in DocumentInput) (*Document, error) {
	if errs := ValidateDocumentInput(in); errs.HasErrors() {
		return nil, errs
	}

	var deadline *time.Time
	if in.Deadline != nil {
		d := truncateToDate(*in.Deadline)
		deadline = &d
	}

	doc := &Document{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(ownerCompanyID),
		Type:                in.Type,
		Status:              StatusPending,
		CompanyID:           in.CompanyID,
		DocNumber:           strings.TrimSpace(in.DocNumber),
		DocDate:             truncateToDate(in.DocDate),
		Deadline:            deadline,
		VatRate:             in.VatRate,
		Withholding:         in.Withholding,
		OrderIDs:            []uuid.UUID{},
		TotalNet:            decimal.Zero,
		TotalVat:            decimal.Zero,
		TotalWithholding:    decimal.Zero,
		TotalGross:          decimal.Zero,
		TotalToPay:          decimal.Zero,
	}
	doc.AddDomainEvent(NewDocumentCreatedEvent(doc))
	return doc, nil
}

// IsPaid reports whether the document has been settled
func (d *Document) IsPaid() bool {
	return d.Status == StatusPaid
}

// HasOrder reports whether orderID is linked to the document
func (d *Document) HasOrder(orderID uuid.UUID) bool {
	for _, id := range d.OrderIDs {
		if id == orderID {
			return true
		}
	}
	return false
}

// AttachOrders links orders to the document, ignoring ones already linked.
// Totals must be recomputed afterwards.
func (d *Document) AttachOrders(orderIDs ...uuid.UUID) error {
	if d.IsPaid() {
		return ErrDocumentPaid
	}
	for _, id := range orderIDs {
		if !d.HasOrder(id) {
			d.OrderIDs = append(d.OrderIDs, id)
		}
	}
	d.touch()
	return nil
}

// DetachOrder unlinks an order from the document
func (d *Document) DetachOrder(orderID uuid.UUID) error {
	if d.IsPaid() {
		return ErrDocumentPaid
	}
	if !d.HasOrder(orderID) {
		return shared.ErrNotFound
	}
	kept := d.OrderIDs[:0]
	for _, id := range d.OrderIDs {
		if id != orderID {
			kept = append(kept, id)
		}
	}
	d.OrderIDs = kept
	d.touch()
	return nil
}

// SetRates replaces the VAT, withholding and change rate. A nil rate removes conversion.
func (d *Document) SetRates(vatRate, withholding decimal.Decimal, rate *ChangeRate) error {
	if d.IsPaid() {
		return ErrDocumentPaid
	}
	errs := shared.ValidationErrors{}
	validateFraction("vat_rate", vatRate, errs)
	validateFraction("withholding", withholding, errs)
	if err := errs.OrNil(); err != nil {
		return err
	}
	d.VatRate = vatRate
	d.Withholding = withholding
	d.ChangeRate = rate
	d.touch()
	return nil
}

// ApplyTotals writes the derived totals onto the document
func (d *Document) ApplyTotals(t Totals) {
	d.TotalNet = t.Net
	d.TotalVat = t.Vat
	d.TotalWithholding = t.Withholding
	d.TotalGross = t.Gross
	d.TotalToPay = t.ToPay
	d.TotalGrossInCurrency2 = t.GrossInCurrency2
	d.TotalToPayInCurrency2 = t.ToPayInCurrency2
	d.touch()
	d.AddDomainEvent(NewDocumentTotalsRecalculatedEvent(d))
}

// Totals returns the currently stored derived values
func (d *Document) Totals() Totals {
	return Totals{
		Net:              d.TotalNet,
		Vat:              d.TotalVat,
		Withholding:      d.TotalWithholding,
		Gross:            d.TotalGross,
		ToPay:            d.TotalToPay,
		GrossInCurrency2: d.TotalGrossInCurrency2,
		ToPayInCurrency2: d.TotalToPayInCurrency2,
	}
}

// ChangeStatus moves the document to status. Lifecycle rules are owned by callers.
func (d *Document) ChangeStatus(status DocumentStatus) error {
	if !status.IsValid() {
		return shared.ValidationErrors{"status": "Unknown document status"}
	}
	if d.Status == status {
		return nil
	}
	old := d.Status
	d.Status = status
	d.touch()
	d.AddDomainEvent(NewDocumentStatusChangedEvent(d, old))
	return nil
}

// SetNotePayment stores the rendered payment note
func (d *Document) SetNotePayment(note *string) {
	d.NotePayment = note
	d.touch()
}

func (d *Document) touch() {
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}
