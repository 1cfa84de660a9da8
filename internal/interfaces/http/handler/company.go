package handler

import (
	companyapp "github.com/erp/invoicing/internal/application/company"
	"github.com/gin-gonic/gin"
)

// CompanyHandler handles company and tenant endpoints
type CompanyHandler struct {
	BaseHandler
	companies *companyapp.CompanyService
	accounts  *companyapp.BankAccountService
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companies *companyapp.CompanyService, accounts *companyapp.BankAccountService) *CompanyHandler {
	return &CompanyHandler{
		companies: companies,
		accounts:  accounts,
	}
}

// CreateTenant registers a root company, which becomes a new tenant.
// @ID           createTenant
// @Summary      Create a tenant
// @Description  Register a root company. Its ID becomes the tenant ID of everything it owns
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID when JWT auth is disabled"
// @Param        request body companyapp.CreateCompanyRequest true "Request body"
// @Success      201 {object} APIResponse[companyapp.CompanyResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tenants [post]
func (h *CompanyHandler) CreateTenant(c *gin.Context) {
	var req companyapp.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	company, err := h.companies.CreateRoot(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, company)
}

// Create registers a company owned by the caller's tenant.
// @ID           createCompany
// @Summary      Create a company
// @Description  Register a company owned by the caller tenant
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID when JWT auth is disabled"
// @Param        request body companyapp.CreateCompanyRequest true "Request body"
// @Success      201 {object} APIResponse[companyapp.CompanyResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /companies [post]
func (h *CompanyHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req companyapp.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	company, err := h.companies.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, company)
}

// Get returns one company of the tenant.
// @ID           getCompanyById
// @Summary      Get company by ID
// @Description  Retrieve one company of the tenant
// @Tags         companies
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID when JWT auth is disabled"
// @Param        id path string true "Company ID" format(uuid)
// @Success      200 {object} APIResponse[companyapp.CompanyResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /companies/{id} [get]
func (h *CompanyHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	company, err := h.companies.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, company)
}

// List returns the tenant root and the companies it owns.
// @ID           listCompanies
// @Summary      List companies
// @Description  List the tenant root and the companies it owns
// @Tags         companies
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID when JWT auth is disabled"
// @Param        search query string false "Search term"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]companyapp.CompanyResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /companies [get]
func (h *CompanyHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var filter companyapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	companies, err := h.companies.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, companies)
}

// ListBankAccounts handles GET /api/v1/companies/:id/bank-accounts
// @ID           listCompanyBankAccounts
// @Summary      List bank accounts of a company
// @Description  List the bank accounts registered for a company of the tenant
// @Tags         companies
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID when JWT auth is disabled"
// @Param        id path string true "Company ID" format(uuid)
// @Success      200 {object} APIResponse[[]companyapp.BankAccountResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /companies/{id}/bank-accounts [get]
func (h *CompanyHandler) ListBankAccounts(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	accounts, err := h.accounts.ListByCompany(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, accounts)
}
