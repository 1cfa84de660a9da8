package models

import (
	"time"

	"github.com/erp/invoicing/internal/domain/document"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate
type OrderModel struct {
	TenantRow
	CompanyID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Reference   string          `gorm:"type:varchar(50);not null"`
	Description string          `gorm:"type:text"`
	Total       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	OrderDate   time.Time       `gorm:"type:date;not null"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() *document.Order {
	return &document.Order{
		TenantAggregateRoot: m.tenantRoot(),
		CompanyID:           m.CompanyID,
		Reference:           m.Reference,
		Description:         m.Description,
		Total:               m.Total,
		OrderDate:           m.OrderDate.UTC(),
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order
func OrderModelFromDomain(o *document.Order) *OrderModel {
	m := &OrderModel{
		CompanyID:   o.CompanyID,
		Reference:   o.Reference,
		Description: o.Description,
		Total:       o.Total,
		OrderDate:   o.OrderDate,
	}
	m.setTenantRoot(o.TenantAggregateRoot)
	return m
}

// ChangeRateModel is the persistence model for change rates.
// Row 1 is seeded with is_base set and no owner.
type ChangeRateModel struct {
	ID             int64           `gorm:"primaryKey;autoIncrement"`
	OwnerCompanyID *uuid.UUID      `gorm:"type:uuid;index"`
	Currency1      string          `gorm:"column:currency1;type:varchar(3);not null"`
	Currency2      string          `gorm:"column:currency2;type:varchar(3);not null"`
	Rate           decimal.Decimal `gorm:"type:decimal(18,8);not null"`
	Date           time.Time       `gorm:"type:date;not null"`
	IsBase         bool            `gorm:"not null;default:false"`
	CreatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ChangeRateModel) TableName() string {
	return "change_rates"
}

// ToDomain converts the persistence model to a domain ChangeRate
func (m *ChangeRateModel) ToDomain() *document.ChangeRate {
	return &document.ChangeRate{
		ID:             m.ID,
		OwnerCompanyID: m.OwnerCompanyID,
		Currency1:      m.Currency1,
		Currency2:      m.Currency2,
		Rate:           m.Rate,
		Date:           m.Date.UTC(),
		IsBase:         m.IsBase,
		CreatedAt:      m.CreatedAt,
	}
}

// ChangeRateModelFromDomain creates a new persistence model from a domain ChangeRate
func ChangeRateModelFromDomain(r *document.ChangeRate) *ChangeRateModel {
	return &ChangeRateModel{
		ID:             r.ID,
		OwnerCompanyID: r.OwnerCompanyID,
		Currency1:      r.Currency1,
		Currency2:      r.Currency2,
		Rate:           r.Rate,
		Date:           r.Date,
		IsBase:         r.IsBase,
		CreatedAt:      r.CreatedAt,
	}
}

// DocumentModel is the persistence model for the Document aggregate.
// Totals are stored as computed and only rewritten by a recalculation.
type DocumentModel struct {
	TenantRow
	Type        document.DocumentType   `gorm:"type:varchar(20);not null;index"`
	Status      document.DocumentStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	CompanyID   uuid.UUID               `gorm:"type:uuid;not null;index"`
	DocNumber   string                  `gorm:"type:varchar(50);not null"`
	DocDate     time.Time               `gorm:"type:date;not null;index"`
	Deadline    *time.Time              `gorm:"type:date"`
	VatRate     decimal.Decimal         `gorm:"type:decimal(9,6);not null;default:0"`
	Withholding decimal.Decimal         `gorm:"type:decimal(9,6);not null;default:0"`

	ChangeRateID *int64           `gorm:"index"`
	ChangeRate   *ChangeRateModel `gorm:"foreignKey:ChangeRateID"`

	TotalNet              decimal.Decimal  `gorm:"type:numeric;not null;default:0"`
	TotalVat              decimal.Decimal  `gorm:"type:numeric;not null;default:0"`
	TotalWithholding      decimal.Decimal  `gorm:"type:numeric;not null;default:0"`
	TotalGross            decimal.Decimal  `gorm:"type:numeric;not null;default:0"`
	TotalToPay            decimal.Decimal  `gorm:"type:numeric;not null;default:0"`
	TotalGrossInCurrency2 *decimal.Decimal `gorm:"column:total_gross_in_currency2;type:numeric"`
	TotalToPayInCurrency2 *decimal.Decimal `gorm:"column:total_to_pay_in_currency2;type:numeric"`

	NotePayment *string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (DocumentModel) TableName() string {
	return "documents"
}

// ToDomain converts the persistence model to a domain Document.
// orderIDs come from the document_orders join table.
func (m *DocumentModel) ToDomain(orderIDs []uuid.UUID) *document.Document {
	if orderIDs == nil {
		orderIDs = []uuid.UUID{}
	}
	doc := &document.Document{
		TenantAggregateRoot:   m.tenantRoot(),
		Type:                  m.Type,
		Status:                m.Status,
		CompanyID:             m.CompanyID,
		DocNumber:             m.DocNumber,
		DocDate:               m.DocDate.UTC(),
		VatRate:               m.VatRate,
		Withholding:           m.Withholding,
		OrderIDs:              orderIDs,
		TotalNet:              m.TotalNet,
		TotalVat:              m.TotalVat,
		TotalWithholding:      m.TotalWithholding,
		TotalGross:            m.TotalGross,
		TotalToPay:            m.TotalToPay,
		TotalGrossInCurrency2: m.TotalGrossInCurrency2,
		TotalToPayInCurrency2: m.TotalToPayInCurrency2,
		NotePayment:           m.NotePayment,
	}
	if m.Deadline != nil {
		d := m.Deadline.UTC()
		doc.Deadline = &d
	}
	if m.ChangeRate != nil {
		doc.ChangeRate = m.ChangeRate.ToDomain()
	}
	return doc
}

// DocumentModelFromDomain creates a new persistence model from a domain Document.
// The change rate is referenced by id only.
func DocumentModelFromDomain(d *document.Document) *DocumentModel {
	m := &DocumentModel{
		Type:                  d.Type,
		Status:                d.Status,
		CompanyID:             d.CompanyID,
		DocNumber:             d.DocNumber,
		DocDate:               d.DocDate,
		Deadline:              d.Deadline,
		VatRate:               d.VatRate,
		Withholding:           d.Withholding,
		TotalNet:              d.TotalNet,
		TotalVat:              d.TotalVat,
		TotalWithholding:      d.TotalWithholding,
		TotalGross:            d.TotalGross,
		TotalToPay:            d.TotalToPay,
		TotalGrossInCurrency2: d.TotalGrossInCurrency2,
		TotalToPayInCurrency2: d.TotalToPayInCurrency2,
		NotePayment:           d.NotePayment,
	}
	m.setTenantRoot(d.TenantAggregateRoot)
	if d.ChangeRate != nil {
		id := d.ChangeRate.ID
		m.ChangeRateID = &id
	}
	return m
}

// DocumentOrderModel links documents and orders
type DocumentOrderModel struct {
	DocumentID uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

// TableName returns the table name for GORM
func (DocumentOrderModel) TableName() string {
	return "document_orders"
}

// All returns every model, in dependency order, for schema creation in tests
func All() []any {
	return []any{
		&CompanyModel{},
		&CustomerModel{},
		&ProviderModel{},
		&BankAccountModel{},
		&ChangeRateModel{},
		&OrderModel{},
		&DocumentModel{},
		&DocumentOrderModel{},
	}
}
