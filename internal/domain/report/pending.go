package report

import (
	"sort"
	"time"

	"github.com/erp/invoicing/internal/domain/document"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PendingLine is one unpaid invoice in a pending-payment report
type PendingLine struct {
	DocumentID uuid.UUID               `json:"id_document"`
	ComName    string                  `json:"com_name"`
	DocNumber  string                  `json:"doc_number"`
	Deadline   *time.Time              `json:"deadline,omitempty"`
	TotalToPay decimal.Decimal         `json:"total_to_pay"`
	Status     document.DocumentStatus `json:"status"`
}

// PendingMonth groups unpaid invoices falling due in one month
type PendingMonth struct {
	Period       Period          `json:"period"`
	MonthlyTotal decimal.Decimal `json:"monthly_total"`
	Lines        []PendingLine   `json:"lines"`
}

// UnscheduledPending holds unpaid invoices without a deadline
type UnscheduledPending struct {
	Total decimal.Decimal `json:"total"`
	Lines []PendingLine   `json:"lines"`
}

// PendingReport buckets unpaid invoices by the month of their deadline
type PendingReport struct {
	GrandTotal  decimal.Decimal    `json:"grand_total"`
	Months      []PendingMonth     `json:"months"`
	Unscheduled UnscheduledPending `json:"unscheduled"`
}

func pendingLine(inv InvoiceSummary) PendingLine {
	return PendingLine{
		DocumentID: inv.ID,
		ComName:    inv.ComName,
		DocNumber:  inv.DocNumber,
		Deadline:   inv.Deadline,
		TotalToPay: inv.TotalToPay,
		Status:     inv.Status,
	}
}

// BuildPendingReport aggregates documents whose status is still pending.
// Documents without a deadline are listed under Unscheduled and still count
// toward the grand total.
func BuildPendingReport(docs []InvoiceSummary) *PendingReport {
	report := &PendingReport{
		GrandTotal:  decimal.Zero,
		Months:      []PendingMonth{},
		Unscheduled: UnscheduledPending{Total: decimal.Zero, Lines: []PendingLine{}},
	}

	scheduled := make([]InvoiceSummary, 0, len(docs))
	var unscheduled []InvoiceSummary
	for _, d := range docs {
		if !d.Status.IsPending() {
			continue
		}
		report.GrandTotal = report.GrandTotal.Add(d.TotalToPay)
		if d.Deadline == nil {
			unscheduled = append(unscheduled, d)
			continue
		}
		scheduled = append(scheduled, d)
	}

	sort.SliceStable(scheduled, func(i, j int) bool {
		return lessByDate(scheduled[i], scheduled[j], *scheduled[i].Deadline, *scheduled[j].Deadline)
	})
	sort.SliceStable(unscheduled, func(i, j int) bool {
		return lessByDate(unscheduled[i], unscheduled[j], unscheduled[i].DocDate, unscheduled[j].DocDate)
	})

	for _, d := range scheduled {
		p := PeriodOf(*d.Deadline)
		n := len(report.Months)
		if n == 0 || report.Months[n-1].Period != p {
			report.Months = append(report.Months, PendingMonth{Period: p, MonthlyTotal: decimal.Zero})
			n++
		}
		month := &report.Months[n-1]
		month.MonthlyTotal = month.MonthlyTotal.Add(d.TotalToPay)
		month.Lines = append(month.Lines, pendingLine(d))
	}

	for _, d := range unscheduled {
		report.Unscheduled.Total = report.Unscheduled.Total.Add(d.TotalToPay)
		report.Unscheduled.Lines = append(report.Unscheduled.Lines, pendingLine(d))
	}
	return report
}
