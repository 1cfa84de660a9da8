package company

import (
	"context"
	"testing"

	"github.com/erp/invoicing/internal/domain/company"
	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const validIBAN = "GB82 WEST 1234 5698 7654 32"

func TestBankAccountService_Create(t *testing.T) {
	ctx := context.Background()
	root := newRootCompany("Root")
	client := newOwnedCompany(root, "Client")

	t.Run("stores the normalized IBAN", func(t *testing.T) {
		companies := new(MockCompanyRepository)
		accounts := new(MockBankAccountRepository)
		svc := NewBankAccountService(companies, accounts)

		companies.On("FindCompanyByID", ctx, client.ID).Return(client, nil)
		accounts.On("Save", ctx, mock.AnythingOfType("*company.BankAccount")).Return(nil)

		resp, err := svc.Create(ctx, root.ID, CreateBankAccountRequest{CompanyID: client.ID, IBAN: validIBAN, Holder: "Client"})
		require.NoError(t, err)
		assert.Equal(t, "GB82WEST12345698765432", resp.IBAN)
		assert.Equal(t, "GB82 WEST 1234 5698 7654 32", resp.FormattedIBAN)
	})

	t.Run("invalid IBAN fails on the iban field before any lookup", func(t *testing.T) {
		companies := new(MockCompanyRepository)
		accounts := new(MockBankAccountRepository)
		svc := NewBankAccountService(companies, accounts)

		_, err := svc.Create(ctx, root.ID, CreateBankAccountRequest{CompanyID: client.ID, IBAN: "GB83WEST12345698765432"})
		var verrs shared.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, []string{"iban"}, verrs.Fields())
		companies.AssertNotCalled(t, "FindCompanyByID", mock.Anything, mock.Anything)
	})

	t.Run("company outside the tenant is not found", func(t *testing.T) {
		companies := new(MockCompanyRepository)
		accounts := new(MockBankAccountRepository)
		svc := NewBankAccountService(companies, accounts)
		foreign := newOwnedCompany(newRootCompany("Other"), "Foreign")

		companies.On("FindCompanyByID", ctx, foreign.ID).Return(foreign, nil)

		_, err := svc.Create(ctx, root.ID, CreateBankAccountRequest{CompanyID: foreign.ID, IBAN: validIBAN})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		accounts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestBankAccountService_ListByCompany(t *testing.T) {
	ctx := context.Background()
	root := newRootCompany("Root")
	client := newOwnedCompany(root, "Client")
	account, err := company.NewBankAccount(root.ID, company.BankAccountInput{CompanyID: client.ID, IBAN: validIBAN})
	require.NoError(t, err)

	companies := new(MockCompanyRepository)
	accounts := new(MockBankAccountRepository)
	companies.On("FindCompanyByID", ctx, client.ID).Return(client, nil)
	accounts.On("FindByCompany", ctx, root.ID, client.ID).Return([]company.BankAccount{*account}, nil)

	resp, err := NewBankAccountService(companies, accounts).ListByCompany(ctx, root.ID, client.ID)
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, account.ID, resp[0].ID)
}

func TestBankAccountService_CheckIBAN(t *testing.T) {
	svc := NewBankAccountService(new(MockCompanyRepository), new(MockBankAccountRepository))

	ok := svc.CheckIBAN(CheckIBANRequest{IBAN: "gb82west12345698765432"})
	assert.True(t, ok.Valid)
	assert.Equal(t, "GB82WEST12345698765432", ok.Normalized)

	bad := svc.CheckIBAN(CheckIBANRequest{IBAN: "not-an-iban"})
	assert.False(t, bad.Valid)
	assert.Empty(t, bad.Normalized)
}
