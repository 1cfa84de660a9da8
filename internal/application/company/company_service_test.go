package company

import (
	"context"
	"errors"
	"testing"

	"github.com/erp/invoicing/internal/domain/company"
	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCompanyService_CreateRoot(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a root company and publishes its events", func(t *testing.T) {
		repo := new(MockCompanyRepository)
		publisher := new(MockEventPublisher)
		svc := NewCompanyService(repo)
		svc.SetEventPublisher(publisher)

		repo.On("Save", ctx, mock.AnythingOfType("*company.Company")).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := svc.CreateRoot(ctx, CreateCompanyRequest{LegalName: "Acme SL", VATNumber: "b12345678"})
		require.NoError(t, err)
		assert.True(t, resp.IsRoot)
		assert.Nil(t, resp.OwnerCompanyID)
		assert.Equal(t, "B12345678", resp.VATNumber)
		publisher.AssertNumberOfCalls(t, "Publish", 1)
	})

	t.Run("rejects an invalid address", func(t *testing.T) {
		svc := NewCompanyService(new(MockCompanyRepository))

		_, err := svc.CreateRoot(ctx, CreateCompanyRequest{
			LegalName: "Acme SL",
			VATNumber: "B1",
			Address:   &AddressRequest{Street: "", City: "Madrid"},
		})
		var verrs shared.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "address")
	})
}

func TestCompanyService_Create(t *testing.T) {
	ctx := context.Background()
	root := newRootCompany("Root")

	t.Run("assigns the tenant root as owner", func(t *testing.T) {
		repo := new(MockCompanyRepository)
		svc := NewCompanyService(repo)

		repo.On("FindCompanyByID", ctx, root.ID).Return(root, nil)
		repo.On("ExistsByVATNumber", ctx, root.ID, "X1").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*company.Company")).Return(nil)

		resp, err := svc.Create(ctx, root.ID, CreateCompanyRequest{LegalName: "Client", VATNumber: "x1"})
		require.NoError(t, err)
		require.NotNil(t, resp.OwnerCompanyID)
		assert.Equal(t, root.ID, *resp.OwnerCompanyID)
		assert.False(t, resp.IsRoot)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a duplicate VAT number", func(t *testing.T) {
		repo := new(MockCompanyRepository)
		svc := NewCompanyService(repo)

		repo.On("FindCompanyByID", ctx, root.ID).Return(root, nil)
		repo.On("ExistsByVATNumber", ctx, root.ID, "X1").Return(true, nil)

		_, err := svc.Create(ctx, root.ID, CreateCompanyRequest{LegalName: "Client", VATNumber: "X1"})
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "ALREADY_EXISTS", derr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown tenant is not found", func(t *testing.T) {
		repo := new(MockCompanyRepository)
		svc := NewCompanyService(repo)
		tenantID := uuid.New()

		repo.On("FindCompanyByID", ctx, tenantID).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, tenantID, CreateCompanyRequest{LegalName: "Client", VATNumber: "X1"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("owned company cannot act as tenant", func(t *testing.T) {
		repo := new(MockCompanyRepository)
		svc := NewCompanyService(repo)
		owned := newOwnedCompany(root, "Owned")

		repo.On("FindCompanyByID", ctx, owned.ID).Return(owned, nil)

		_, err := svc.Create(ctx, owned.ID, CreateCompanyRequest{LegalName: "Client", VATNumber: "X1"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCompanyService_GetByID(t *testing.T) {
	ctx := context.Background()
	root := newRootCompany("Root")
	other := newRootCompany("Other")
	foreign := newOwnedCompany(other, "Foreign")

	repo := new(MockCompanyRepository)
	svc := NewCompanyService(repo)
	repo.On("FindCompanyByID", ctx, foreign.ID).Return(foreign, nil)
	repo.On("FindCompanyByID", ctx, root.ID).Return(root, nil)

	t.Run("company of another tenant is not found", func(t *testing.T) {
		_, err := svc.GetByID(ctx, root.ID, foreign.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("tenant sees its own root", func(t *testing.T) {
		resp, err := svc.GetByID(ctx, root.ID, root.ID)
		require.NoError(t, err)
		assert.Equal(t, root.ID, resp.ID)
	})

	t.Run("lookup failures are wrapped", func(t *testing.T) {
		failing := new(MockCompanyRepository)
		id := uuid.New()
		failing.On("FindCompanyByID", ctx, id).Return(nil, errors.New("db down"))

		_, err := NewCompanyService(failing).GetByID(ctx, root.ID, id)
		require.Error(t, err)
		assert.NotErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCompanyService_List(t *testing.T) {
	ctx := context.Background()
	root := newRootCompany("Root")
	owned := newOwnedCompany(root, "Owned")

	repo := new(MockCompanyRepository)
	svc := NewCompanyService(repo)
	repo.On("FindForTenant", ctx, root.ID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 2 && f.PageSize == 20 && f.OrderDir == "asc"
	})).Return([]company.Company{*root, *owned}, nil)

	resp, err := svc.List(ctx, root.ID, ListFilter{Page: 2})
	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.True(t, resp[0].IsRoot)
	assert.False(t, resp[1].IsRoot)
}
