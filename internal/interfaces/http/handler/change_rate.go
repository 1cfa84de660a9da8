package handler

import (
	documentapp "github.com/erp/invoicing/internal/application/document"
	"github.com/erp/invoicing/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ChangeRateHandler handles currency change rate endpoints
type ChangeRateHandler struct {
	BaseHandler
	rates *documentapp.ChangeRateService
}

// NewChangeRateHandler creates a new ChangeRateHandler
func NewChangeRateHandler(rates *documentapp.ChangeRateService) *ChangeRateHandler {
	return &ChangeRateHandler{rates: rates}
}

// CreateChangeRateRequest is the request body for registering a change rate
type CreateChangeRateRequest struct {
	Currency1 string          `json:"currency1" binding:"required,len=3"`
	Currency2 string          `json:"currency2" binding:"required,len=3"`
	Rate      decimal.Decimal `json:"rate"`
	Date      string          `json:"date" binding:"required,datetime=2006-01-02"`
}

// Create handles POST /api/v1/change-rates
// @ID           createChangeRate
// @Summary      Create a change rate
// @Description  Register a conversion rate between two currencies
// @Tags         change-rates
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID when JWT auth is disabled"
// @Param        request body CreateChangeRateRequest true "Request body"
// @Success      201 {object} APIResponse[documentapp.ChangeRateResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /change-rates [post]
func (h *ChangeRateHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req CreateChangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		h.ValidationError(c, []dto.ValidationDetail{{Field: "date", Message: "Must be a date formatted as 2006-01-02"}})
		return
	}

	rate, err := h.rates.Create(c.Request.Context(), tenantID, documentapp.CreateChangeRateRequest{
		Currency1: req.Currency1,
		Currency2: req.Currency2,
		Rate:      req.Rate,
		Date:      date,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, rate)
}

// List returns the tenant's rates plus the shared base-currency rate.
// @ID           listChangeRates
// @Summary      List change rates
// @Description  List the tenant rates plus the shared base-currency rate
// @Tags         change-rates
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID when JWT auth is disabled"
// @Success      200 {object} APIResponse[[]documentapp.ChangeRateResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /change-rates [get]
func (h *ChangeRateHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	rates, err := h.rates.List(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rates)
}
