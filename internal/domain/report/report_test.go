package report

import (
	"testing"
	"time"

	"github.com/erp/invoicing/internal/domain/document"
	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func invoice(number string, date time.Time, net string) InvoiceSummary {
	return InvoiceSummary{
		ID:               uuid.New(),
		Type:             document.TypeCustomerInvoice,
		Status:           document.StatusPending,
		DocNumber:        number,
		DocDate:          date,
		TotalNet:         dec(net),
		TotalVat:         decimal.Zero,
		TotalWithholding: decimal.Zero,
		TotalToPay:       dec(net),
	}
}

func mustRange(t *testing.T, from, to time.Time) DateRange {
	t.Helper()
	r, err := NewDateRange(from, to)
	require.NoError(t, err)
	return r
}

func TestBuildCashFlowReport(t *testing.T) {
	rng := mustRange(t, day(2024, 1, 1), day(2024, 12, 31))

	t.Run("buckets by month with grand total and average", func(t *testing.T) {
		invoices := []InvoiceSummary{
			invoice("F-3", day(2024, 3, 2), "30"),
			invoice("F-1", day(2024, 1, 15), "100"),
			invoice("F-2", day(2024, 1, 20), "50"),
		}

		report := BuildCashFlowReport(invoices, rng)

		require.Len(t, report.Months, 2)
		assert.Equal(t, Period{Year: 2024, Month: 1}, report.Months[0].Period)
		assert.True(t, dec("150").Equal(report.Months[0].NetTotal))
		assert.Equal(t, Period{Year: 2024, Month: 3}, report.Months[1].Period)
		assert.True(t, dec("30").Equal(report.Months[1].NetTotal))
		assert.True(t, dec("180").Equal(report.GrandTotalNet))
		assert.True(t, dec("90").Equal(report.AverageNetPerMonth))
		assert.Equal(t, "F-1", report.Months[0].Invoices[0].DocNumber)
	})

	t.Run("empty window averages to zero", func(t *testing.T) {
		report := BuildCashFlowReport(nil, rng)

		assert.Empty(t, report.Months)
		assert.True(t, report.GrandTotalNet.IsZero())
		assert.True(t, report.AverageNetPerMonth.IsZero())
	})

	t.Run("range bounds are inclusive and outside dates dropped", func(t *testing.T) {
		narrow := mustRange(t, day(2024, 2, 1), day(2024, 2, 29))
		invoices := []InvoiceSummary{
			invoice("A", day(2024, 2, 1), "10"),
			invoice("B", time.Date(2024, 2, 29, 18, 30, 0, 0, time.UTC), "20"),
			invoice("C", day(2024, 3, 1), "40"),
			invoice("D", day(2024, 1, 31), "80"),
		}

		report := BuildCashFlowReport(invoices, narrow)

		require.Len(t, report.Months, 1)
		assert.True(t, dec("30").Equal(report.GrandTotalNet))
	})

	t.Run("non invoice documents are ignored", func(t *testing.T) {
		quote := invoice("Q-1", day(2024, 5, 1), "500")
		quote.Type = document.TypeQuote

		report := BuildCashFlowReport([]InvoiceSummary{quote}, rng)

		assert.Empty(t, report.Months)
	})

	t.Run("months across years sort ascending", func(t *testing.T) {
		wide := mustRange(t, day(2023, 1, 1), day(2024, 12, 31))
		report := BuildCashFlowReport([]InvoiceSummary{
			invoice("X", day(2024, 1, 5), "1"),
			invoice("Y", day(2023, 12, 5), "1"),
		}, wide)

		require.Len(t, report.Months, 2)
		assert.Equal(t, "2023-12", report.Months[0].Period.String())
		assert.Equal(t, "2024-01", report.Months[1].Period.String())
	})
}

func TestBuildCashFlowByParty(t *testing.T) {
	rng := mustRange(t, day(2024, 1, 1), day(2024, 12, 31))
	zeta, alpha := uuid.New(), uuid.New()

	withParty := func(inv InvoiceSummary, id uuid.UUID, name, vat, wh string) InvoiceSummary {
		inv.CompanyID = id
		inv.ComName = name
		inv.TotalVat = dec(vat)
		inv.TotalWithholding = dec(wh)
		return inv
	}

	report := BuildCashFlowByParty([]InvoiceSummary{
		withParty(invoice("F-1", day(2024, 1, 10), "100"), zeta, "Zeta SA", "21", "15"),
		withParty(invoice("F-2", day(2024, 2, 10), "50"), alpha, "Alpha SL", "10.5", "0"),
		withParty(invoice("F-3", day(2024, 3, 10), "30"), zeta, "Zeta SA", "6.3", "4.5"),
	}, rng)

	require.Len(t, report.Parties, 2)
	assert.Equal(t, "Alpha SL", report.Parties[0].LegalName)
	zetaParty := report.Parties[1]
	assert.Equal(t, zeta, zetaParty.CompanyID)
	assert.True(t, dec("130").Equal(zetaParty.TotalNet))
	assert.True(t, dec("27.3").Equal(zetaParty.TotalVat))
	assert.True(t, dec("19.5").Equal(zetaParty.TotalWithholding))
	require.Len(t, zetaParty.Invoices, 2)
	assert.Equal(t, "2024-01-10", zetaParty.Invoices[0].DocDate)
	assert.True(t, dec("180").Equal(report.GrandTotalNet))
}

func TestBuildPendingReport(t *testing.T) {
	pending := func(number string, deadline *time.Time, toPay string, status document.DocumentStatus) InvoiceSummary {
		inv := invoice(number, day(2024, 1, 1), toPay)
		inv.Deadline = deadline
		inv.Status = status
		return inv
	}
	may10, may20, jun1 := day(2024, 5, 10), day(2024, 5, 20), day(2024, 6, 1)

	t.Run("groups by deadline month and excludes paid", func(t *testing.T) {
		report := BuildPendingReport([]InvoiceSummary{
			pending("F-2", &may20, "60", document.StatusPending),
			pending("F-1", &may10, "40", document.StatusPending),
			pending("F-3", &may10, "999", document.StatusPaid),
		})

		require.Len(t, report.Months, 1)
		assert.True(t, dec("100").Equal(report.Months[0].MonthlyTotal))
		assert.True(t, dec("100").Equal(report.GrandTotal))
		assert.Equal(t, "F-1", report.Months[0].Lines[0].DocNumber)
		assert.Equal(t, "F-2", report.Months[0].Lines[1].DocNumber)
	})

	t.Run("accepted and modified count as pending, rejected does not", func(t *testing.T) {
		report := BuildPendingReport([]InvoiceSummary{
			pending("A", &jun1, "10", document.StatusAccepted),
			pending("B", &may10, "20", document.StatusModified),
			pending("C", &may10, "30", document.StatusRejected),
		})

		require.Len(t, report.Months, 2)
		assert.Equal(t, 5, report.Months[0].Period.Month)
		assert.Equal(t, 6, report.Months[1].Period.Month)
		assert.True(t, dec("30").Equal(report.GrandTotal))
	})

	t.Run("documents without deadline are unscheduled", func(t *testing.T) {
		report := BuildPendingReport([]InvoiceSummary{
			pending("A", nil, "25", document.StatusPending),
			pending("B", &may10, "75", document.StatusPending),
		})

		require.Len(t, report.Months, 1)
		require.Len(t, report.Unscheduled.Lines, 1)
		assert.True(t, dec("25").Equal(report.Unscheduled.Total))
		assert.True(t, dec("100").Equal(report.GrandTotal))
	})

	t.Run("no documents yields an empty report", func(t *testing.T) {
		report := BuildPendingReport(nil)

		assert.Empty(t, report.Months)
		assert.Empty(t, report.Unscheduled.Lines)
		assert.True(t, report.GrandTotal.IsZero())
	})
}

func TestNewDateRange(t *testing.T) {
	_, err := NewDateRange(day(2024, 2, 1), day(2024, 1, 1))

	var verrs shared.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "end_date")

	_, err = NewDateRange(time.Time{}, day(2024, 1, 1))
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "start_date")
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, DirectionAll, d)

	d, err = ParseDirection("Sales")
	require.NoError(t, err)
	assert.True(t, d.Includes(document.TypeCustomerInvoice))
	assert.False(t, d.Includes(document.TypeProviderInvoice))

	_, err = ParseDirection("sideways")
	assert.Error(t, err)

	purchases := FilterDirection([]InvoiceSummary{
		{Type: document.TypeCustomerInvoice},
		{Type: document.TypeProviderInvoice},
	}, DirectionPurchases)
	assert.Len(t, purchases, 1)
}
