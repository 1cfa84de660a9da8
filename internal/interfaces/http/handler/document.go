package handler

import (
	documentapp "github.com/erp/invoicing/internal/application/document"
	"github.com/erp/invoicing/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentHandler handles financial document endpoints
type DocumentHandler struct {
	BaseHandler
	documents *documentapp.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documents *documentapp.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

// CreateDocumentRequest is the request body for creating a document.
// Dates use the 2006-01-02 layout.
type CreateDocumentRequest struct {
	Type         string          `json:"type" binding:"required,oneof=INV_CUSTOMER INV_PROVIDER QUOTE PURCHASE_ORDER"`
	CompanyID    uuid.UUID       `json:"company_id" binding:"required"`
	DocNumber    string          `json:"doc_number" binding:"required,min=1,max=50"`
	DocDate      string          `json:"doc_date" binding:"required,datetime=2006-01-02"`
	Deadline     *string         `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
	VatRate      decimal.Decimal `json:"vat_rate"`
	Withholding  decimal.Decimal `json:"withholding"`
	ChangeRateID *int64          `json:"change_rate_id"`
	OrderIDs     []uuid.UUID     `json:"order_ids"`
}

func (r CreateDocumentRequest) toApp() (documentapp.CreateDocumentRequest, []dto.ValidationDetail) {
	var details []dto.ValidationDetail
	docDate, err := parseDate(r.DocDate)
	if err != nil {
		details = append(details, dto.ValidationDetail{Field: "doc_date", Message: "Must be a date formatted as 2006-01-02"})
	}
	deadline, err := parseOptionalDate(r.Deadline)
	if err != nil {
		details = append(details, dto.ValidationDetail{Field: "deadline", Message: "Must be a date formatted as 2006-01-02"})
	}
	return documentapp.CreateDocumentRequest{
		Type:         r.Type,
		CompanyID:    r.CompanyID,
		DocNumber:    r.DocNumber,
		DocDate:      docDate,
		Deadline:     deadline,
		VatRate:      r.VatRate,
		Withholding:  r.Withholding,
		ChangeRateID: r.ChangeRateID,
		OrderIDs:     r.OrderIDs,
	}, details
}

// Create creates a document with zero totals, or with the totals of the
// orders listed in order_ids.
// @ID           createDocument
// @Summary      Create a document
// @Description  Create an invoice, quote or purchase order. Totals start at zero or follow the listed orders
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID when JWT auth is disabled"
// @Param        request body CreateDocumentRequest true "Request body"
// @Success      201 {object} APIResponse[documentapp.DocumentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /documents [post]
func (h *DocumentHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	appReq, details := req.toApp()
	if len(details) > 0 {
		h.ValidationError(c, details)
		return
	}

	doc, err := h.documents.Create(c.Request.Context(), tenantID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, doc)
}

// Get handles GET /api/v1/documents/:id
// @ID           getDocumentById
// @Summary      Get document by ID
// @Description  Retrieve a document with its totals
// @Tags         documents
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID when JWT auth is disabled"
// @Param        id path string true "Document ID" format(uuid)
// @Success      200 {object} APIResponse[documentapp.DocumentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /documents/{id} [get]
func (h *DocumentHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.documents.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// AttachOrders links orders and recomputes totals.
// @ID           attachDocumentOrders
// @Summary      Attach orders
// @Description  Link orders to a document and recompute its totals
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID when JWT auth is disabled"
// @Param        id path string true "Document ID" format(uuid)
// @Param        request body documentapp.AttachOrdersRequest true "Request body"
// @Success      200 {object} APIResponse[documentapp.DocumentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /documents/{id}/orders [put]
func (h *DocumentHandler) AttachOrders(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	var req documentapp.AttachOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	doc, err := h.documents.AttachOrders(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// DetachOrder unlinks one order and recomputes totals.
// @ID           detachDocumentOrder
// @Summary      Detach an order
// @Description  Unlink one order from a document and recompute its totals
// @Tags         documents
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID when JWT auth is disabled"
// @Param        id path string true "Document ID" format(uuid)
// @Param        orderId path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[documentapp.DocumentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /documents/{id}/orders/{orderId} [delete]
func (h *DocumentHandler) DetachOrder(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	orderID, ok := h.uuidParam(c, "orderId")
	if !ok {
		return
	}

	doc, err := h.documents.DetachOrder(c.Request.Context(), tenantID, id, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// UpdateRates replaces vat, withholding and change rate, then recomputes.
// @ID           updateDocumentRates
// @Summary      Update document rates
// @Description  Replace vat, withholding and change rate, then recompute the totals
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID when JWT auth is disabled"
// @Param        id path string true "Document ID" format(uuid)
// @Param        request body documentapp.UpdateRatesRequest true "Request body"
// @Success      200 {object} APIResponse[documentapp.DocumentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /documents/{id}/rates [put]
func (h *DocumentHandler) UpdateRates(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	var req documentapp.UpdateRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	doc, err := h.documents.UpdateRates(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// Recalculate handles POST /api/v1/documents/:id/recalculate
// @ID           recalculateDocument
// @Summary      Recalculate totals
// @Description  Recompute the totals of a document from its orders and rates
// @Tags         documents
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID when JWT auth is disabled"
// @Param        id path string true "Document ID" format(uuid)
// @Success      200 {object} APIResponse[documentapp.DocumentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /documents/{id}/recalculate [post]
func (h *DocumentHandler) Recalculate(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.documents.RecalculateTotals(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// UpdateStatus handles PUT /api/v1/documents/:id/status
// @ID           updateDocumentStatus
// @Summary      Update document status
// @Description  Move a document to another status
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID when JWT auth is disabled"
// @Param        id path string true "Document ID" format(uuid)
// @Param        request body documentapp.UpdateStatusRequest true "Request body"
// @Success      200 {object} APIResponse[documentapp.DocumentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /documents/{id}/status [put]
func (h *DocumentHandler) UpdateStatus(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	var req documentapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	doc, err := h.documents.UpdateStatus(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// GeneratePaymentNote renders and stores the payment instructions.
// The body is optional.
// @ID           generatePaymentNote
// @Summary      Generate payment note
// @Description  Render the payment instructions of a document and store them on it
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID when JWT auth is disabled"
// @Param        id path string true "Document ID" format(uuid)
// @Param        request body documentapp.PaymentNoteRequest true "Request body"
// @Success      200 {object} APIResponse[documentapp.DocumentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /documents/{id}/payment-note [post]
func (h *DocumentHandler) GeneratePaymentNote(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	var req documentapp.PaymentNoteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}

	doc, err := h.documents.GeneratePaymentNote(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}
