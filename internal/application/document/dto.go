package document

import (
	"time"

	"github.com/erp/invoicing/internal/domain/document"
	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Order DTOs
// =============================================================================

// CreateOrderRequest represents a request to register an order
type CreateOrderRequest struct {
	CompanyID   uuid.UUID       `json:"company_id" binding:"required"`
	Reference   string          `json:"reference" binding:"required,min=1,max=50"`
	Description string          `json:"description" binding:"max=500"`
	Total       decimal.Decimal `json:"total"`
	OrderDate   time.Time       `json:"order_date" binding:"required"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID          uuid.UUID       `json:"id"`
	CompanyID   uuid.UUID       `json:"company_id"`
	Reference   string          `json:"reference"`
	Description string          `json:"description,omitempty"`
	Total       decimal.Decimal `json:"total"`
	OrderDate   time.Time       `json:"order_date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *document.Order) OrderResponse {
	return OrderResponse{
		ID:          o.ID,
		CompanyID:   o.CompanyID,
		Reference:   o.Reference,
		Description: o.Description,
		Total:       o.Total,
		OrderDate:   o.OrderDate,
		CreatedAt:   o.CreatedAt,
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

func (f ListFilter) toDomain() shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	filter.Search = f.Search
	return filter
}

// =============================================================================
// Change rate DTOs
// =============================================================================

// CreateChangeRateRequest represents a request to register a change rate
type CreateChangeRateRequest struct {
	Currency1 string          `json:"currency1" binding:"required,len=3"`
	Currency2 string          `json:"currency2" binding:"required,len=3"`
	Rate      decimal.Decimal `json:"rate"`
	Date      time.Time       `json:"date" binding:"required"`
}

// ChangeRateResponse represents a change rate in API responses
type ChangeRateResponse struct {
	ID             int64           `json:"id"`
	OwnerCompanyID *uuid.UUID      `json:"owner_company_id,omitempty"`
	Currency1      string          `json:"currency1"`
	Currency2      string          `json:"currency2"`
	Rate           decimal.Decimal `json:"rate"`
	Date           time.Time       `json:"date"`
	IsBase         bool            `json:"is_base"`
}

// ToChangeRateResponse converts a domain ChangeRate to ChangeRateResponse
func ToChangeRateResponse(r *document.ChangeRate) ChangeRateResponse {
	return ChangeRateResponse{
		ID:             r.ID,
		OwnerCompanyID: r.OwnerCompanyID,
		Currency1:      r.Currency1,
		Currency2:      r.Currency2,
		Rate:           r.Rate,
		Date:           r.Date,
		IsBase:         r.IsBaseCurrency(),
	}
}

// =============================================================================
// Document DTOs
// =============================================================================

// CreateDocumentRequest represents a request to create a document.
// When Deadline is omitted on a customer invoice it is derived from the customer's due days.
type CreateDocumentRequest struct {
	Type         string          `json:"type" binding:"required,oneof=INV_CUSTOMER INV_PROVIDER QUOTE PURCHASE_ORDER"`
	CompanyID    uuid.UUID       `json:"company_id" binding:"required"`
	DocNumber    string          `json:"doc_number" binding:"required,min=1,max=50"`
	DocDate      time.Time       `json:"doc_date" binding:"required"`
	Deadline     *time.Time      `json:"deadline"`
	VatRate      decimal.Decimal `json:"vat_rate"`
	Withholding  decimal.Decimal `json:"withholding"`
	ChangeRateID *int64          `json:"change_rate_id"`
	OrderIDs     []uuid.UUID     `json:"order_ids"`
}

// AttachOrdersRequest links orders to a document
type AttachOrdersRequest struct {
	OrderIDs []uuid.UUID `json:"order_ids" binding:"required,min=1"`
}

// UpdateRatesRequest replaces the rates of a document. A nil ChangeRateID removes conversion.
type UpdateRatesRequest struct {
	VatRate      decimal.Decimal `json:"vat_rate"`
	Withholding  decimal.Decimal `json:"withholding"`
	ChangeRateID *int64          `json:"change_rate_id"`
}

// UpdateStatusRequest moves a document to another status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING ACCEPTED MODIFIED PAID REJECTED"`
}

// PaymentNoteRequest selects the account and language of a payment note.
// Without a BankAccountID the first account of the tenant root is used.
type PaymentNoteRequest struct {
	BankAccountID *uuid.UUID `json:"bank_account_id"`
	Locale        string     `json:"locale"`
}

// TotalsResponse holds the derived amounts of a document
type TotalsResponse struct {
	Net              decimal.Decimal  `json:"total_net"`
	Vat              decimal.Decimal  `json:"total_vat"`
	Withholding      decimal.Decimal  `json:"total_withholding"`
	Gross            decimal.Decimal  `json:"total_gross"`
	ToPay            decimal.Decimal  `json:"total_to_pay"`
	GrossInCurrency2 *decimal.Decimal `json:"total_gross_in_currency2,omitempty"`
	ToPayInCurrency2 *decimal.Decimal `json:"total_to_pay_in_currency2,omitempty"`
}

// DocumentResponse represents a document in API responses
type DocumentResponse struct {
	ID           uuid.UUID       `json:"id"`
	Type         string          `json:"type"`
	Status       string          `json:"status"`
	CompanyID    uuid.UUID       `json:"company_id"`
	DocNumber    string          `json:"doc_number"`
	DocDate      time.Time       `json:"doc_date"`
	Deadline     *time.Time      `json:"deadline,omitempty"`
	VatRate      decimal.Decimal `json:"vat_rate"`
	Withholding  decimal.Decimal `json:"withholding"`
	ChangeRateID *int64          `json:"change_rate_id,omitempty"`
	OrderIDs     []uuid.UUID     `json:"order_ids"`
	Totals       TotalsResponse  `json:"totals"`
	NotePayment  *string         `json:"note_payment,omitempty"`
	Version      int             `json:"version"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToDocumentResponse converts a domain Document to DocumentResponse
func ToDocumentResponse(d *document.Document) DocumentResponse {
	t := d.Totals()
	resp := DocumentResponse{
		ID:          d.ID,
		Type:        string(d.Type),
		Status:      string(d.Status),
		CompanyID:   d.CompanyID,
		DocNumber:   d.DocNumber,
		DocDate:     d.DocDate,
		Deadline:    d.Deadline,
		VatRate:     d.VatRate,
		Withholding: d.Withholding,
		OrderIDs:    d.OrderIDs,
		Totals: TotalsResponse{
			Net:              t.Net,
			Vat:              t.Vat,
			Withholding:      t.Withholding,
			Gross:            t.Gross,
			ToPay:            t.ToPay,
			GrossInCurrency2: t.GrossInCurrency2,
			ToPayInCurrency2: t.ToPayInCurrency2,
		},
		NotePayment: d.NotePayment,
		Version:     d.Version,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if d.ChangeRate != nil {
		id := d.ChangeRate.ID
		resp.ChangeRateID = &id
	}
	if resp.OrderIDs == nil {
		resp.OrderIDs = []uuid.UUID{}
	}
	return resp
}
