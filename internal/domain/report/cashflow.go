package report

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthlyCashFlow is one month of a cash-flow report
type MonthlyCashFlow struct {
	Period   Period           `json:"period"`
	NetTotal decimal.Decimal  `json:"net_total"`
	Invoices []InvoiceSummary `json:"invoices"`
}

// CashFlowReport groups a tenant's invoices by issue month
type CashFlowReport struct {
	Range              DateRange         `json:"range"`
	GrandTotalNet      decimal.Decimal   `json:"grand_total_net"`
	AverageNetPerMonth decimal.Decimal   `json:"average_net_per_month"`
	Months             []MonthlyCashFlow `json:"months"`
}

// PartyInvoiceLine is one invoice contributing to a party's totals
type PartyInvoiceLine struct {
	DocumentID       uuid.UUID       `json:"id_document"`
	DocNumber        string          `json:"doc_number"`
	DocDate          string          `json:"doc_date"`
	TotalNet         decimal.Decimal `json:"total_net"`
	TotalVat         decimal.Decimal `json:"total_vat"`
	TotalWithholding decimal.Decimal `json:"total_withholding"`
}

// PartyCashFlow sums the invoices of one counterparty
type PartyCashFlow struct {
	CompanyID        uuid.UUID          `json:"company_id"`
	LegalName        string             `json:"legal_name"`
	TotalNet         decimal.Decimal    `json:"total_net"`
	TotalVat         decimal.Decimal    `json:"total_vat"`
	TotalWithholding decimal.Decimal    `json:"total_withholding"`
	Invoices         []PartyInvoiceLine `json:"invoices"`
}

// CashFlowByPartyReport groups a tenant's invoices by counterparty
type CashFlowByPartyReport struct {
	Range         DateRange       `json:"range"`
	GrandTotalNet decimal.Decimal `json:"grand_total_net"`
	Parties       []PartyCashFlow `json:"parties"`
}

// includedInvoices keeps INV_* documents issued inside rng
func includedInvoices(invoices []InvoiceSummary, rng DateRange) []InvoiceSummary {
	out := make([]InvoiceSummary, 0, len(invoices))
	for _, inv := range invoices {
		if inv.Type.IsInvoice() && rng.Contains(inv.DocDate) {
			out = append(out, inv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return lessByDate(out[i], out[j], out[i].DocDate, out[j].DocDate)
	})
	return out
}

// BuildCashFlowReport buckets invoices by the month of their issue date.
// Only months with at least one invoice appear, in ascending order.
func BuildCashFlowReport(invoices []InvoiceSummary, rng DateRange) *CashFlowReport {
	report := &CashFlowReport{
		Range:              rng,
		GrandTotalNet:      decimal.Zero,
		AverageNetPerMonth: decimal.Zero,
		Months:             []MonthlyCashFlow{},
	}

	index := make(map[Period]int)
	for _, inv := range includedInvoices(invoices, rng) {
		p := PeriodOf(inv.DocDate)
		i, ok := index[p]
		if !ok {
			i = len(report.Months)
			index[p] = i
			report.Months = append(report.Months, MonthlyCashFlow{Period: p, NetTotal: decimal.Zero})
		}
		report.Months[i].NetTotal = report.Months[i].NetTotal.Add(inv.TotalNet)
		report.Months[i].Invoices = append(report.Months[i].Invoices, inv)
		report.GrandTotalNet = report.GrandTotalNet.Add(inv.TotalNet)
	}

	sort.Slice(report.Months, func(i, j int) bool {
		return report.Months[i].Period.Before(report.Months[j].Period)
	})

	if n := len(report.Months); n > 0 {
		report.AverageNetPerMonth = report.GrandTotalNet.Div(decimal.NewFromInt(int64(n)))
	}
	return report
}

// BuildCashFlowByParty groups invoices by counterparty company.
// Parties are ordered by legal name, ties broken by company id.
func BuildCashFlowByParty(invoices []InvoiceSummary, rng DateRange) *CashFlowByPartyReport {
	report := &CashFlowByPartyReport{
		Range:         rng,
		GrandTotalNet: decimal.Zero,
		Parties:       []PartyCashFlow{},
	}

	index := make(map[uuid.UUID]int)
	for _, inv := range includedInvoices(invoices, rng) {
		i, ok := index[inv.CompanyID]
		if !ok {
			i = len(report.Parties)
			index[inv.CompanyID] = i
			report.Parties = append(report.Parties, PartyCashFlow{
				CompanyID:        inv.CompanyID,
				LegalName:        inv.ComName,
				TotalNet:         decimal.Zero,
				TotalVat:         decimal.Zero,
				TotalWithholding: decimal.Zero,
			})
		}
		party := &report.Parties[i]
		party.TotalNet = party.TotalNet.Add(inv.TotalNet)
		party.TotalVat = party.TotalVat.Add(inv.TotalVat)
		party.TotalWithholding = party.TotalWithholding.Add(inv.TotalWithholding)
		party.Invoices = append(party.Invoices, PartyInvoiceLine{
			DocumentID:       inv.ID,
			DocNumber:        inv.DocNumber,
			DocDate:          inv.DocDate.Format("2006-01-02"),
			TotalNet:         inv.TotalNet,
			TotalVat:         inv.TotalVat,
			TotalWithholding: inv.TotalWithholding,
		})
		report.GrandTotalNet = report.GrandTotalNet.Add(inv.TotalNet)
	}

	sort.Slice(report.Parties, func(i, j int) bool {
		a, b := report.Parties[i], report.Parties[j]
		if a.LegalName != b.LegalName {
			return a.LegalName < b.LegalName
		}
		return a.CompanyID.String() < b.CompanyID.String()
	})
	return report
}
