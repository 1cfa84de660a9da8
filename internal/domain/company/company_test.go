package company

import (
	"testing"

	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCompany(t *testing.T, name string) *Company {
	t.Helper()
	c, err := NewCompany(NewPartyProfile(name, "", "ESB"+name[:1]+"0000001"))
	require.NoError(t, err)
	return c
}

func TestNewCompany(t *testing.T) {
	t.Run("creates root company", func(t *testing.T) {
		c, err := NewCompany(NewPartyProfile("  Acme SL ", "Acme", "esb12345678"))

		require.NoError(t, err)
		assert.Equal(t, "Acme SL", c.LegalName)
		assert.Equal(t, "ESB12345678", c.VATNumber)
		assert.True(t, c.IsRoot())
		assert.Equal(t, c.ID, c.TenantID())
		assert.Len(t, c.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeCompanyCreated, c.GetDomainEvents()[0].EventType())
	})

	t.Run("fails without legal name", func(t *testing.T) {
		c, err := NewCompany(NewPartyProfile("", "Acme", "ESB12345678"))

		assert.Nil(t, c)
		var verrs shared.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "legal_name")
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		profile := NewPartyProfile("Acme SL", "", "ESB12345678").WithContact("not-an-email", "")
		_, err := NewCompany(profile)

		var verrs shared.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, []string{"email"}, verrs.Fields())
	})
}

func TestCompany_AssignOwner(t *testing.T) {
	t.Run("assigns a root owner", func(t *testing.T) {
		root := newTestCompany(t, "Root")
		child := newTestCompany(t, "Child")

		require.NoError(t, child.AssignOwner(root))
		assert.False(t, child.IsRoot())
		assert.Equal(t, root.ID, child.TenantID())
		assert.Equal(t, 2, child.Version)
	})

	t.Run("rejects an owner that is itself owned", func(t *testing.T) {
		root := newTestCompany(t, "Root")
		child := newTestCompany(t, "Child")
		grandchild := newTestCompany(t, "Grandchild")
		require.NoError(t, child.AssignOwner(root))

		err := grandchild.AssignOwner(child)

		assert.ErrorIs(t, err, ErrInvalidOwnership)
		assert.True(t, grandchild.IsRoot())
	})

	t.Run("rejects self ownership", func(t *testing.T) {
		c := newTestCompany(t, "Self")

		err := c.AssignOwner(c)

		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_OWNERSHIP", derr.Code)
	})

	t.Run("rejects nil owner", func(t *testing.T) {
		c := newTestCompany(t, "Orphan")
		assert.Error(t, c.AssignOwner(nil))
	})
}

func TestNewCustomer(t *testing.T) {
	tenant := newTestCompany(t, "Tenant")
	counterparty := newTestCompany(t, "Buyer")

	t.Run("copies the counterparty profile", func(t *testing.T) {
		days := 30
		method := PayMethodTransfer
		cust, err := NewCustomer(tenant.ID, counterparty, &days, &method)

		require.NoError(t, err)
		assert.Equal(t, counterparty.ID, cust.CompanyID)
		assert.Equal(t, tenant.ID, cust.OwnerCompanyID)
		assert.Equal(t, counterparty.LegalName, cust.LegalName)
		assert.Equal(t, 30, cust.DueDaysOrZero())
	})

	t.Run("missing due days count as zero", func(t *testing.T) {
		cust, err := NewCustomer(tenant.ID, counterparty, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, 0, cust.DueDaysOrZero())
	})

	t.Run("rejects unknown payment method", func(t *testing.T) {
		method := PayMethod("BARTER")
		_, err := NewCustomer(tenant.ID, counterparty, nil, &method)

		var verrs shared.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "pay_method")
	})

	t.Run("rejects negative due days", func(t *testing.T) {
		days := -1
		_, err := NewCustomer(tenant.ID, counterparty, &days, nil)
		assert.Error(t, err)
	})
}

func TestNewProvider(t *testing.T) {
	tenant := newTestCompany(t, "Tenant")
	counterparty := newTestCompany(t, "Supplier")

	p, err := NewProvider(tenant.ID, counterparty)

	require.NoError(t, err)
	assert.Equal(t, counterparty.ID, p.CompanyID)
	assert.True(t, p.BelongsTo(tenant.ID))

	_, err = NewProvider(tenant.ID, nil)
	assert.Error(t, err)
}

func TestNewBankAccount(t *testing.T) {
	tenantID := uuid.New()
	companyID := uuid.New()

	t.Run("normalizes a valid IBAN", func(t *testing.T) {
		acc, err := NewBankAccount(tenantID, BankAccountInput{
			CompanyID: companyID,
			IBAN:      "gb29 nwbk 6016 1331 9268 19",
			Holder:    " Acme SL ",
		})

		require.NoError(t, err)
		assert.Equal(t, "GB29NWBK60161331926819", acc.IBAN)
		assert.Equal(t, "GB29 NWBK 6016 1331 9268 19", acc.FormattedIBAN())
		assert.Equal(t, "Acme SL", acc.Holder)
	})

	t.Run("rejects an IBAN with a bad checksum", func(t *testing.T) {
		acc, err := NewBankAccount(tenantID, BankAccountInput{
			CompanyID: companyID,
			IBAN:      "GB29 NWBK 6016 1331 9268 18",
		})

		assert.Nil(t, acc)
		var verrs shared.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "Invalid IBAN", verrs["iban"])
	})
}
