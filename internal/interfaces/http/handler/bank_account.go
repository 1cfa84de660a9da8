package handler

import (
	companyapp "github.com/erp/invoicing/internal/application/company"
	"github.com/gin-gonic/gin"
)

// BankAccountHandler handles bank account and IBAN endpoints
type BankAccountHandler struct {
	BaseHandler
	accounts *companyapp.BankAccountService
}

// NewBankAccountHandler creates a new BankAccountHandler
func NewBankAccountHandler(accounts *companyapp.BankAccountService) *BankAccountHandler {
	return &BankAccountHandler{accounts: accounts}
}

// Create registers a bank account for a company of the tenant. An IBAN
// failing the checksum is reported as a validation error on "iban".
// @ID           createBankAccount
// @Summary      Create a bank account
// @Description  Register a bank account for a company of the tenant
// @Tags         bank-accounts
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID when JWT auth is disabled"
// @Param        request body companyapp.CreateBankAccountRequest true "Request body"
// @Success      201 {object} APIResponse[companyapp.BankAccountResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bank-accounts [post]
func (h *BankAccountHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req companyapp.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	account, err := h.accounts.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, account)
}

// ValidateIBAN checks an IBAN without storing it. An invalid IBAN is a
// successful response with valid=false.
// @ID           validateIban
// @Summary      Validate an IBAN
// @Description  Check the format and checksum of an IBAN without storing it
// @Tags         bank-accounts
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID when JWT auth is disabled"
// @Param        request body companyapp.CheckIBANRequest true "Request body"
// @Success      200 {object} APIResponse[companyapp.IBANCheckResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /iban/validate [post]
func (h *BankAccountHandler) ValidateIBAN(c *gin.Context) {
	var req companyapp.CheckIBANRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	h.Success(c, h.accounts.CheckIBAN(req))
}
