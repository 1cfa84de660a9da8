package persistence

import (
	"context"
	"time"

	"github.com/erp/invoicing/internal/domain/document"
	"github.com/erp/invoicing/internal/domain/report"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const invoiceSummaryColumns = "d.id, d.type, d.status, d.company_id, c.legal_name AS com_name, " +
	"d.doc_number, d.doc_date, d.deadline, d.total_net, d.total_vat, d.total_withholding, d.total_to_pay"

// invoiceSummaryRow is the scan target of the report queries
type invoiceSummaryRow struct {
	ID               uuid.UUID
	Type             string
	Status           string
	CompanyID        uuid.UUID
	ComName          *string
	DocNumber        string
	DocDate          time.Time
	Deadline         *time.Time
	TotalNet         decimal.Decimal
	TotalVat         decimal.Decimal
	TotalWithholding decimal.Decimal
	TotalToPay       decimal.Decimal
}

func (r invoiceSummaryRow) toDomain() report.InvoiceSummary {
	s := report.InvoiceSummary{
		ID:               r.ID,
		Type:             document.DocumentType(r.Type),
		Status:           document.DocumentStatus(r.Status),
		CompanyID:        r.CompanyID,
		DocNumber:        r.DocNumber,
		DocDate:          r.DocDate.UTC(),
		TotalNet:         r.TotalNet,
		TotalVat:         r.TotalVat,
		TotalWithholding: r.TotalWithholding,
		TotalToPay:       r.TotalToPay,
	}
	if r.ComName != nil {
		s.ComName = *r.ComName
	}
	if r.Deadline != nil {
		d := r.Deadline.UTC()
		s.Deadline = &d
	}
	return s
}

// GormInvoiceReportRepository implements report.InvoiceReader using GORM.
// Rows carry the stored totals; aggregation happens in the report package.
type GormInvoiceReportRepository struct {
	db *gorm.DB
}

// NewGormInvoiceReportRepository creates a new GormInvoiceReportRepository
func NewGormInvoiceReportRepository(db *gorm.DB) *GormInvoiceReportRepository {
	return &GormInvoiceReportRepository{db: db}
}

func (r *GormInvoiceReportRepository) baseQuery(ctx context.Context, tenantID uuid.UUID) *gorm.DB {
	return conn(ctx, r.db).
		Table("documents d").
		Select(invoiceSummaryColumns).
		Joins("LEFT JOIN companies c ON c.id = d.company_id").
		Where("d.owner_company_id = ?", tenantID)
}

// FindInvoices returns INV_* documents of the filter's direction issued within its range
func (r *GormInvoiceReportRepository) FindInvoices(ctx context.Context, filter report.CashFlowFilter) ([]report.InvoiceSummary, error) {
	// dates are stored at midnight UTC, so the upper bound is the day after To
	upper := filter.Range.To.AddDate(0, 0, 1)

	var rows []invoiceSummaryRow
	if err := r.baseQuery(ctx, filter.TenantID).
		Where("d.type IN ?", filter.Direction.DocumentTypes()).
		Where("d.doc_date >= ? AND d.doc_date < ?", filter.Range.From, upper).
		Order("d.doc_date ASC, d.doc_number ASC, d.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return summariesToDomain(rows), nil
}

// FindPendingInvoices returns invoices whose status still awaits payment
func (r *GormInvoiceReportRepository) FindPendingInvoices(ctx context.Context, tenantID uuid.UUID) ([]report.InvoiceSummary, error) {
	var rows []invoiceSummaryRow
	if err := r.baseQuery(ctx, tenantID).
		Where("d.type IN ?", report.DirectionAll.DocumentTypes()).
		Where("d.status IN ?", document.PendingStatuses()).
		Order("d.deadline ASC, d.doc_number ASC, d.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return summariesToDomain(rows), nil
}

func summariesToDomain(rows []invoiceSummaryRow) []report.InvoiceSummary {
	out := make([]report.InvoiceSummary, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out
}

var _ report.InvoiceReader = (*GormInvoiceReportRepository)(nil)
