package document

import (
	"context"
	"testing"
	"time"

	"github.com/erp/invoicing/internal/domain/company"
	"github.com/erp/invoicing/internal/domain/document"
	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type documentFixture struct {
	svc       *DocumentService
	companies *MockCompanyReader
	docs      *MockDocumentRepository
	orders    *MockOrderRepository
	rates     *MockChangeRateRepository
	customers *MockCustomerRepository
	accounts  *MockBankAccountRepository
	tx        *fakeTxManager
	events    *recordingPublisher

	root   *company.Company
	client *company.Company
}

func newDocumentFixture(t *testing.T) *documentFixture {
	t.Helper()
	root, err := company.NewCompany(company.NewPartyProfile("Root SL", "", "R1"))
	require.NoError(t, err)
	client, err := company.NewCompany(company.NewPartyProfile("Client SA", "", "C1"))
	require.NoError(t, err)
	require.NoError(t, client.AssignOwner(root))

	f := &documentFixture{
		companies: new(MockCompanyReader),
		docs:      new(MockDocumentRepository),
		orders:    new(MockOrderRepository),
		rates:     new(MockChangeRateRepository),
		customers: new(MockCustomerRepository),
		accounts:  new(MockBankAccountRepository),
		tx:        &fakeTxManager{},
		events:    &recordingPublisher{},
		root:      root,
		client:    client,
	}
	f.svc = NewDocumentService(DocumentServiceDeps{
		Documents:    f.docs,
		Orders:       f.orders,
		ChangeRates:  f.rates,
		Companies:    f.companies,
		Customers:    f.customers,
		BankAccounts: f.accounts,
		TxManager:    f.tx,
	})
	f.svc.SetEventPublisher(f.events)
	return f
}

func (f *documentFixture) newOrder(t *testing.T, ref string, total string) document.Order {
	t.Helper()
	o, err := document.NewOrder(f.root.ID, document.OrderInput{
		CompanyID: f.client.ID,
		Reference: ref,
		Total:     decimal.RequireFromString(total),
		OrderDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return *o
}

func (f *documentFixture) newDocument(t *testing.T, orders ...document.Order) *document.Document {
	t.Helper()
	doc, err := document.NewDocument(f.root.ID, document.DocumentInput{
		Type:        document.TypeCustomerInvoice,
		CompanyID:   f.client.ID,
		DocNumber:   "F-001",
		DocDate:     time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		VatRate:     decimal.RequireFromString("0.21"),
		Withholding: decimal.RequireFromString("0.15"),
	})
	require.NoError(t, err)
	for _, o := range orders {
		require.NoError(t, doc.AttachOrders(o.ID))
	}
	doc.ApplyTotals(document.ComputeTotals(doc, orders))
	doc.ClearDomainEvents()
	return doc
}

func TestDocumentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("derives the deadline from customer due days", func(t *testing.T) {
		f := newDocumentFixture(t)
		days := 30
		customer, err := company.NewCustomer(f.root.ID, f.client, &days, nil)
		require.NoError(t, err)

		f.companies.On("FindCompanyByID", mock.Anything, f.client.ID).Return(f.client, nil)
		f.docs.On("ExistsByDocNumber", mock.Anything, f.root.ID, document.TypeCustomerInvoice, "F-001").Return(false, nil)
		f.customers.On("FindByCompany", mock.Anything, f.root.ID, f.client.ID).Return(customer, nil)
		f.docs.On("Save", mock.Anything, mock.AnythingOfType("*document.Document")).Return(nil)

		resp, err := f.svc.Create(ctx, f.root.ID, CreateDocumentRequest{
			Type:      "INV_CUSTOMER",
			CompanyID: f.client.ID,
			DocNumber: "F-001",
			DocDate:   time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			VatRate:   decimal.RequireFromString("0.21"),
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Deadline)
		assert.Equal(t, time.Date(2024, 2, 19, 0, 0, 0, 0, time.UTC), *resp.Deadline)
		assert.Equal(t, "PENDING", resp.Status)
		assert.True(t, resp.Totals.Net.IsZero())
		assert.True(t, resp.Totals.ToPay.IsZero())
		assert.Contains(t, f.events.types(), document.EventTypeDocumentCreated)
		assert.Equal(t, 1, f.tx.calls)
	})

	t.Run("computes totals of the initial orders", func(t *testing.T) {
		f := newDocumentFixture(t)
		o1 := f.newOrder(t, "A", "100")
		o2 := f.newOrder(t, "B", "50")
		ids := []uuid.UUID{o1.ID, o2.ID}
		deadline := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

		f.companies.On("FindCompanyByID", mock.Anything, f.client.ID).Return(f.client, nil)
		f.docs.On("ExistsByDocNumber", mock.Anything, f.root.ID, document.TypeCustomerInvoice, "F-002").Return(false, nil)
		f.orders.On("FindByIDsForTenant", mock.Anything, f.root.ID, ids).Return([]document.Order{o1, o2}, nil)
		f.docs.On("Save", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.svc.Create(ctx, f.root.ID, CreateDocumentRequest{
			Type:        "INV_CUSTOMER",
			CompanyID:   f.client.ID,
			DocNumber:   "F-002",
			DocDate:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Deadline:    &deadline,
			VatRate:     decimal.RequireFromString("0.21"),
			Withholding: decimal.RequireFromString("0.15"),
			OrderIDs:    ids,
		})
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("150").Equal(resp.Totals.Net))
		assert.True(t, decimal.RequireFromString("181.5").Equal(resp.Totals.Gross))
		assert.True(t, decimal.RequireFromString("159").Equal(resp.Totals.ToPay))
		f.customers.AssertNotCalled(t, "FindByCompany", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a duplicate number", func(t *testing.T) {
		f := newDocumentFixture(t)
		f.companies.On("FindCompanyByID", mock.Anything, f.client.ID).Return(f.client, nil)
		f.docs.On("ExistsByDocNumber", mock.Anything, f.root.ID, document.TypeProviderInvoice, "P-1").Return(true, nil)

		_, err := f.svc.Create(ctx, f.root.ID, CreateDocumentRequest{
			Type: "INV_PROVIDER", CompanyID: f.client.ID, DocNumber: "P-1", DocDate: time.Now(),
		})
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "ALREADY_EXISTS", derr.Code)
	})

	t.Run("company of another tenant is not found", func(t *testing.T) {
		f := newDocumentFixture(t)
		other := uuid.New()
		f.companies.On("FindCompanyByID", mock.Anything, f.client.ID).Return(f.client, nil)

		_, err := f.svc.Create(ctx, other, CreateDocumentRequest{
			Type: "QUOTE", CompanyID: f.client.ID, DocNumber: "Q-1", DocDate: time.Now(),
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestDocumentService_AttachOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("recomputes totals inside one transaction", func(t *testing.T) {
		f := newDocumentFixture(t)
		o1 := f.newOrder(t, "A", "100")
		doc := f.newDocument(t, o1)
		o2 := f.newOrder(t, "B", "100")

		f.docs.On("FindByIDForTenant", mock.Anything, f.root.ID, doc.ID).Return(doc, nil)
		f.orders.On("FindByIDsForTenant", mock.Anything, f.root.ID, []uuid.UUID{o2.ID}).Return([]document.Order{o2}, nil)
		f.orders.On("FindByIDsForTenant", mock.Anything, f.root.ID, []uuid.UUID{o1.ID, o2.ID}).Return([]document.Order{o1, o2}, nil)
		f.docs.On("Save", mock.Anything, doc).Return(nil)

		resp, err := f.svc.AttachOrders(ctx, f.root.ID, doc.ID, AttachOrdersRequest{OrderIDs: []uuid.UUID{o2.ID, o2.ID}})
		require.NoError(t, err)
		assert.Len(t, resp.OrderIDs, 2)
		assert.True(t, decimal.RequireFromString("200").Equal(resp.Totals.Net))
		assert.True(t, decimal.RequireFromString("212").Equal(resp.Totals.ToPay))
		assert.Equal(t, 1, f.tx.calls)
		assert.Equal(t, []string{document.EventTypeDocumentTotalsRecalculated}, f.events.types())
	})

	t.Run("missing order is not found and nothing is saved", func(t *testing.T) {
		f := newDocumentFixture(t)
		doc := f.newDocument(t)
		missing := uuid.New()

		f.docs.On("FindByIDForTenant", mock.Anything, f.root.ID, doc.ID).Return(doc, nil)
		f.orders.On("FindByIDsForTenant", mock.Anything, f.root.ID, []uuid.UUID{missing}).Return([]document.Order{}, nil)

		_, err := f.svc.AttachOrders(ctx, f.root.ID, doc.ID, AttachOrdersRequest{OrderIDs: []uuid.UUID{missing}})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		f.docs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		assert.Empty(t, f.events.events)
	})

	t.Run("order of another company is rejected", func(t *testing.T) {
		f := newDocumentFixture(t)
		doc := f.newDocument(t)
		foreign, err := document.NewOrder(f.root.ID, document.OrderInput{
			CompanyID: uuid.New(), Reference: "X", Total: decimal.NewFromInt(1), OrderDate: time.Now(),
		})
		require.NoError(t, err)

		f.docs.On("FindByIDForTenant", mock.Anything, f.root.ID, doc.ID).Return(doc, nil)
		f.orders.On("FindByIDsForTenant", mock.Anything, f.root.ID, []uuid.UUID{foreign.ID}).Return([]document.Order{*foreign}, nil)

		_, err = f.svc.AttachOrders(ctx, f.root.ID, doc.ID, AttachOrdersRequest{OrderIDs: []uuid.UUID{foreign.ID}})
		var verrs shared.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "order_ids")
	})

	t.Run("paid document cannot change", func(t *testing.T) {
		f := newDocumentFixture(t)
		o := f.newOrder(t, "A", "10")
		doc := f.newDocument(t)
		require.NoError(t, doc.ChangeStatus(document.StatusPaid))

		f.docs.On("FindByIDForTenant", mock.Anything, f.root.ID, doc.ID).Return(doc, nil)
		f.orders.On("FindByIDsForTenant", mock.Anything, f.root.ID, []uuid.UUID{o.ID}).Return([]document.Order{o}, nil)

		_, err := f.svc.AttachOrders(ctx, f.root.ID, doc.ID, AttachOrdersRequest{OrderIDs: []uuid.UUID{o.ID}})
		assert.ErrorIs(t, err, document.ErrDocumentPaid)
	})
}

func TestDocumentService_DetachOrder(t *testing.T) {
	ctx := context.Background()
	f := newDocumentFixture(t)
	o1 := f.newOrder(t, "A", "100")
	o2 := f.newOrder(t, "B", "40")
	doc := f.newDocument(t, o1, o2)

	f.docs.On("FindByIDForTenant", mock.Anything, f.root.ID, doc.ID).Return(doc, nil)
	f.orders.On("FindByIDsForTenant", mock.Anything, f.root.ID, []uuid.UUID{o1.ID}).Return([]document.Order{o1}, nil)
	f.docs.On("Save", mock.Anything, doc).Return(nil)

	resp, err := f.svc.DetachOrder(ctx, f.root.ID, doc.ID, o2.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{o1.ID}, resp.OrderIDs)
	assert.True(t, decimal.NewFromInt(100).Equal(resp.Totals.Net))

	t.Run("order not linked is not found", func(t *testing.T) {
		_, err := f.svc.DetachOrder(ctx, f.root.ID, doc.ID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestDocumentService_UpdateRates(t *testing.T) {
	ctx := context.Background()

	t.Run("non-base change rate fills currency2 totals", func(t *testing.T) {
		f := newDocumentFixture(t)
		o := f.newOrder(t, "A", "100")
		doc := f.newDocument(t, o)
		owner := f.root.ID
		rate := &document.ChangeRate{ID: 7, OwnerCompanyID: &owner, Currency1: "EUR", Currency2: "USD", Rate: decimal.RequireFromString("1.1")}

		f.docs.On("FindByIDForTenant", mock.Anything, f.root.ID, doc.ID).Return(doc, nil)
		f.rates.On("FindByIDForTenant", mock.Anything, f.root.ID, int64(7)).Return(rate, nil)
		f.orders.On("FindByIDsForTenant", mock.Anything, f.root.ID, []uuid.UUID{o.ID}).Return([]document.Order{o}, nil)
		f.docs.On("Save", mock.Anything, doc).Return(nil)

		id := int64(7)
		resp, err := f.svc.UpdateRates(ctx, f.root.ID, doc.ID, UpdateRatesRequest{
			VatRate:      decimal.RequireFromString("0.10"),
			Withholding:  decimal.Zero,
			ChangeRateID: &id,
		})
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(110).Equal(resp.Totals.Gross))
		require.NotNil(t, resp.Totals.GrossInCurrency2)
		assert.True(t, decimal.RequireFromString("121").Equal(*resp.Totals.GrossInCurrency2))
		assert.Equal(t, int64(7), *resp.ChangeRateID)
	})

	t.Run("base currency leaves currency2 totals empty", func(t *testing.T) {
		f := newDocumentFixture(t)
		o := f.newOrder(t, "A", "100")
		doc := f.newDocument(t, o)
		base := &document.ChangeRate{ID: document.BaseCurrencyRateID, Currency1: "EUR", Currency2: "EUR", Rate: decimal.NewFromInt(1), IsBase: true}

		f.docs.On("FindByIDForTenant", mock.Anything, f.root.ID, doc.ID).Return(doc, nil)
		f.rates.On("FindByIDForTenant", mock.Anything, f.root.ID, document.BaseCurrencyRateID).Return(base, nil)
		f.orders.On("FindByIDsForTenant", mock.Anything, f.root.ID, []uuid.UUID{o.ID}).Return([]document.Order{o}, nil)
		f.docs.On("Save", mock.Anything, doc).Return(nil)

		id := document.BaseCurrencyRateID
		resp, err := f.svc.UpdateRates(ctx, f.root.ID, doc.ID, UpdateRatesRequest{ChangeRateID: &id})
		require.NoError(t, err)
		assert.Nil(t, resp.Totals.GrossInCurrency2)
		assert.Nil(t, resp.Totals.ToPayInCurrency2)
	})

	t.Run("rate of another tenant is not found", func(t *testing.T) {
		f := newDocumentFixture(t)
		doc := f.newDocument(t)
		other := uuid.New()
		foreign := &document.ChangeRate{ID: 9, OwnerCompanyID: &other, Currency1: "EUR", Currency2: "GBP", Rate: decimal.RequireFromString("0.85")}

		f.docs.On("FindByIDForTenant", mock.Anything, f.root.ID, doc.ID).Return(doc, nil)
		f.rates.On("FindByIDForTenant", mock.Anything, f.root.ID, int64(9)).Return(foreign, nil)

		id := int64(9)
		_, err := f.svc.UpdateRates(ctx, f.root.ID, doc.ID, UpdateRatesRequest{ChangeRateID: &id})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rates out of range are rejected", func(t *testing.T) {
		f := newDocumentFixture(t)
		doc := f.newDocument(t)
		f.docs.On("FindByIDForTenant", mock.Anything, f.root.ID, doc.ID).Return(doc, nil)

		_, err := f.svc.UpdateRates(ctx, f.root.ID, doc.ID, UpdateRatesRequest{VatRate: decimal.NewFromInt(2)})
		var verrs shared.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "vat_rate")
	})
}

func TestDocumentService_RecalculateTotals(t *testing.T) {
	ctx := context.Background()
	f := newDocumentFixture(t)
	doc := f.newDocument(t)

	f.docs.On("FindByIDForTenant", mock.Anything, f.root.ID, doc.ID).Return(doc, nil)
	f.docs.On("Save", mock.Anything, doc).Return(nil)

	resp, err := f.svc.RecalculateTotals(ctx, f.root.ID, doc.ID)
	require.NoError(t, err)
	assert.True(t, resp.Totals.ToPay.IsZero())
	f.orders.AssertNotCalled(t, "FindByIDsForTenant", mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	f := newDocumentFixture(t)
	doc := f.newDocument(t)

	f.docs.On("FindByIDForTenant", mock.Anything, f.root.ID, doc.ID).Return(doc, nil)
	f.docs.On("Save", mock.Anything, doc).Return(nil)

	resp, err := f.svc.UpdateStatus(ctx, f.root.ID, doc.ID, UpdateStatusRequest{Status: "PAID"})
	require.NoError(t, err)
	assert.Equal(t, "PAID", resp.Status)
	assert.Equal(t, []string{document.EventTypeDocumentStatusChanged}, f.events.types())
}

func TestDocumentService_GeneratePaymentNote(t *testing.T) {
	ctx := context.Background()

	t.Run("renders the transfer clause with the tenant account", func(t *testing.T) {
		f := newDocumentFixture(t)
		doc := f.newDocument(t)
		days := 10
		method := company.PayMethodTransfer
		customer, err := company.NewCustomer(f.root.ID, f.client, &days, &method)
		require.NoError(t, err)
		account, err := company.NewBankAccount(f.root.ID, company.BankAccountInput{
			CompanyID: f.root.ID, IBAN: "GB82WEST12345698765432", Holder: "Root SL",
		})
		require.NoError(t, err)

		f.docs.On("FindByIDForTenant", mock.Anything, f.root.ID, doc.ID).Return(doc, nil)
		f.customers.On("FindByCompany", mock.Anything, f.root.ID, f.client.ID).Return(customer, nil)
		f.accounts.On("FindByCompany", mock.Anything, f.root.ID, f.root.ID).Return([]company.BankAccount{*account}, nil)
		f.docs.On("Save", mock.Anything, doc).Return(nil)

		resp, err := f.svc.GeneratePaymentNote(ctx, f.root.ID, doc.ID, PaymentNoteRequest{})
		require.NoError(t, err)
		require.NotNil(t, resp.NotePayment)
		assert.Contains(t, *resp.NotePayment, "2024-03-25")
		assert.Contains(t, *resp.NotePayment, "GB82 WEST 1234 5698 7654 32")
	})

	t.Run("no customer record gives no note", func(t *testing.T) {
		f := newDocumentFixture(t)
		doc := f.newDocument(t)

		f.docs.On("FindByIDForTenant", mock.Anything, f.root.ID, doc.ID).Return(doc, nil)
		f.customers.On("FindByCompany", mock.Anything, f.root.ID, f.client.ID).Return(nil, shared.ErrNotFound)
		f.accounts.On("FindByCompany", mock.Anything, f.root.ID, f.root.ID).Return([]company.BankAccount{}, nil)
		f.docs.On("Save", mock.Anything, doc).Return(nil)

		resp, err := f.svc.GeneratePaymentNote(ctx, f.root.ID, doc.ID, PaymentNoteRequest{})
		require.NoError(t, err)
		assert.Nil(t, resp.NotePayment)
	})
}
