package models

import (
	"sync"
	"testing"
	"time"

	"github.com/erp/invoicing/internal/domain/company"
	"github.com/erp/invoicing/internal/domain/document"
	"github.com/erp/invoicing/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestTableNames(t *testing.T) {
	assert.Equal(t, "companies", CompanyModel{}.TableName())
	assert.Equal(t, "customers", CustomerModel{}.TableName())
	assert.Equal(t, "providers", ProviderModel{}.TableName())
	assert.Equal(t, "bank_accounts", BankAccountModel{}.TableName())
	assert.Equal(t, "change_rates", ChangeRateModel{}.TableName())
	assert.Equal(t, "orders", OrderModel{}.TableName())
	assert.Equal(t, "documents", DocumentModel{}.TableName())
	assert.Equal(t, "document_orders", DocumentOrderModel{}.TableName())
}

func TestDocumentModel_TotalsAreUnscaled(t *testing.T) {
	s, err := schema.Parse(&DocumentModel{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	for _, name := range []string{
		"TotalNet", "TotalVat", "TotalWithholding", "TotalGross", "TotalToPay",
		"TotalGrossInCurrency2", "TotalToPayInCurrency2",
	} {
		f := s.LookUpField(name)
		require.NotNil(t, f, name)
		assert.Equal(t, schema.DataType("numeric"), f.DataType, name)
	}
}

func TestCompanyModel_Mapping(t *testing.T) {
	addr, err := valueobject.NewAddress("Gran Via 1", "Madrid", valueobject.WithPostalCode("28013"))
	require.NoError(t, err)
	profile := company.NewPartyProfile("Acme SL", "Acme", "esb12345678").
		WithContact("billing@acme.test", "+34 600 000 000").
		WithAddress(addr)
	c, err := company.NewCompany(profile)
	require.NoError(t, err)

	t.Run("root company keeps a nil owner", func(t *testing.T) {
		m := CompanyModelFromDomain(c)

		assert.Nil(t, m.OwnerCompanyID)
		assert.Equal(t, "ESB12345678", m.VATNumber)

		back := m.ToDomain()
		assert.Equal(t, c.ID, back.ID)
		assert.Equal(t, c.PartyProfile, back.PartyProfile)
		assert.True(t, back.IsRoot())
	})

	t.Run("owned company keeps its owner", func(t *testing.T) {
		owner := uuid.New()
		m := CompanyModelFromDomain(c)
		m.OwnerCompanyID = &owner

		back := m.ToDomain()
		require.NotNil(t, back.OwnerCompanyID)
		assert.Equal(t, owner, back.TenantID())
	})
}

func TestCustomerModel_Mapping(t *testing.T) {
	c, err := company.NewCompany(company.NewPartyProfile("Beta SA", "Beta", "ESA00000001"))
	require.NoError(t, err)
	owner := uuid.New()
	days := 30
	method := company.PayMethodTransfer
	customer, err := company.NewCustomer(owner, c, &days, &method)
	require.NoError(t, err)

	back := CustomerModelFromDomain(customer).ToDomain()

	assert.Equal(t, owner, back.OwnerCompanyID)
	assert.Equal(t, c.ID, back.CompanyID)
	assert.Equal(t, 30, back.DueDaysOrZero())
	require.NotNil(t, back.PayMethod)
	assert.Equal(t, company.PayMethodTransfer, *back.PayMethod)
}

func TestDocumentModel_Mapping(t *testing.T) {
	owner := uuid.New()
	deadline := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	doc, err := document.NewDocument(owner, document.DocumentInput{
		Type:        document.TypeCustomerInvoice,
		CompanyID:   uuid.New(),
		DocNumber:   "F-2024-001",
		DocDate:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Deadline:    &deadline,
		VatRate:     decimal.RequireFromString("0.21"),
		Withholding: decimal.RequireFromString("0.15"),
	})
	require.NoError(t, err)

	t.Run("references the change rate by id", func(t *testing.T) {
		doc.ChangeRate = &document.ChangeRate{ID: 7, Rate: decimal.RequireFromString("1.1")}

		m := DocumentModelFromDomain(doc)

		require.NotNil(t, m.ChangeRateID)
		assert.Equal(t, int64(7), *m.ChangeRateID)
		assert.Nil(t, m.ChangeRate)
	})

	t.Run("restores order ids and rate", func(t *testing.T) {
		m := DocumentModelFromDomain(doc)
		m.ChangeRate = &ChangeRateModel{ID: 7, Currency1: "EUR", Currency2: "USD", Rate: decimal.RequireFromString("1.1")}
		orderID := uuid.New()

		back := m.ToDomain([]uuid.UUID{orderID})

		assert.Equal(t, []uuid.UUID{orderID}, back.OrderIDs)
		require.NotNil(t, back.ChangeRate)
		assert.Equal(t, "USD", back.ChangeRate.Currency2)
		require.NotNil(t, back.Deadline)
		assert.True(t, deadline.Equal(*back.Deadline))
	})

	t.Run("nil order ids become an empty slice", func(t *testing.T) {
		back := DocumentModelFromDomain(doc).ToDomain(nil)

		assert.NotNil(t, back.OrderIDs)
		assert.Empty(t, back.OrderIDs)
	})
}

func TestChangeRateModel_Mapping(t *testing.T) {
	m := &ChangeRateModel{ID: 1, Currency1: "EUR", Currency2: "EUR", Rate: decimal.NewFromInt(1), IsBase: true}

	rate := m.ToDomain()

	assert.True(t, rate.IsBaseCurrency())
	assert.Nil(t, rate.OwnerCompanyID)
}
