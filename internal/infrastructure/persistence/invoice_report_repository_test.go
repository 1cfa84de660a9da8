package persistence

import (
	"context"
	"testing"

	"github.com/erp/invoicing/internal/domain/document"
	"github.com/erp/invoicing/internal/domain/report"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormInvoiceReportRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	tenant := saveCompany(t, db, "Tenant SL", nil)
	client := saveCompany(t, db, "Client SL", tenant)
	supplier := saveCompany(t, db, "Supplier SL", tenant)
	docs := NewGormDocumentRepository(db)
	repo := NewGormInvoiceReportRepository(db)

	deadline := day(2024, 2, 14)
	sale := newInvoice(t, tenant.ID, client.ID, document.TypeCustomerInvoice, "S-1", day(2024, 1, 15), &deadline)
	purchase := newInvoice(t, tenant.ID, supplier.ID, document.TypeProviderInvoice, "P-1", day(2024, 1, 31), nil)
	late := newInvoice(t, tenant.ID, client.ID, document.TypeCustomerInvoice, "S-2", day(2024, 2, 1), nil)
	quote := newInvoice(t, tenant.ID, client.ID, document.TypeQuote, "Q-1", day(2024, 1, 20), nil)
	paid := newInvoice(t, tenant.ID, client.ID, document.TypeCustomerInvoice, "S-3", day(2024, 1, 5), nil)
	require.NoError(t, paid.ChangeStatus(document.StatusPaid))
	foreign := newInvoice(t, uuid.New(), client.ID, document.TypeCustomerInvoice, "S-X", day(2024, 1, 10), nil)
	for _, d := range []*document.Document{sale, purchase, late, quote, paid, foreign} {
		require.NoError(t, docs.Save(ctx, d))
	}

	rng, err := report.NewDateRange(day(2024, 1, 1), day(2024, 1, 31))
	require.NoError(t, err)

	t.Run("returns invoices within the inclusive range", func(t *testing.T) {
		invoices, err := repo.FindInvoices(ctx, report.CashFlowFilter{TenantID: tenant.ID, Range: rng, Direction: report.DirectionAll})

		require.NoError(t, err)
		numbers := []string{}
		for _, inv := range invoices {
			numbers = append(numbers, inv.DocNumber)
		}
		assert.Equal(t, []string{"S-3", "S-1", "P-1"}, numbers)
	})

	t.Run("filters by direction and carries the party name", func(t *testing.T) {
		invoices, err := repo.FindInvoices(ctx, report.CashFlowFilter{TenantID: tenant.ID, Range: rng, Direction: report.DirectionPurchases})

		require.NoError(t, err)
		require.Len(t, invoices, 1)
		assert.Equal(t, "Supplier SL", invoices[0].ComName)
		assert.Equal(t, document.TypeProviderInvoice, invoices[0].Type)
	})

	t.Run("pending invoices exclude paid documents and quotes", func(t *testing.T) {
		invoices, err := repo.FindPendingInvoices(ctx, tenant.ID)

		require.NoError(t, err)
		numbers := []string{}
		for _, inv := range invoices {
			numbers = append(numbers, inv.DocNumber)
			assert.True(t, inv.Status.IsPending())
		}
		assert.ElementsMatch(t, []string{"S-1", "P-1", "S-2"}, numbers)
	})

	t.Run("keeps the deadline when present", func(t *testing.T) {
		invoices, err := repo.FindPendingInvoices(ctx, tenant.ID)
		require.NoError(t, err)

		for _, inv := range invoices {
			if inv.DocNumber == "S-1" {
				require.NotNil(t, inv.Deadline)
				assert.True(t, deadline.Equal(*inv.Deadline))
			} else {
				assert.Nil(t, inv.Deadline)
			}
		}
	})
}
