package handler

import (
	documentapp "github.com/erp/invoicing/internal/application/document"
	"github.com/erp/invoicing/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	BaseHandler
	orders *documentapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *documentapp.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// CreateOrderRequest is the request body for registering an order
type CreateOrderRequest struct {
	CompanyID   uuid.UUID       `json:"company_id" binding:"required"`
	Reference   string          `json:"reference" binding:"required,min=1,max=50"`
	Description string          `json:"description" binding:"max=500"`
	Total       decimal.Decimal `json:"total"`
	OrderDate   string          `json:"order_date" binding:"required,datetime=2006-01-02"`
}

// Create handles POST /api/v1/orders
// @ID           createOrder
// @Summary      Create an order
// @Description  Register an order for a company of the tenant
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID when JWT auth is disabled"
// @Param        request body CreateOrderRequest true "Request body"
// @Success      201 {object} APIResponse[documentapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	orderDate, err := parseDate(req.OrderDate)
	if err != nil {
		h.ValidationError(c, []dto.ValidationDetail{{Field: "order_date", Message: "Must be a date formatted as 2006-01-02"}})
		return
	}

	order, err := h.orders.Create(c.Request.Context(), tenantID, documentapp.CreateOrderRequest{
		CompanyID:   req.CompanyID,
		Reference:   req.Reference,
		Description: req.Description,
		Total:       req.Total,
		OrderDate:   orderDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// Get handles GET /api/v1/orders/:id
// @ID           getOrderById
// @Summary      Get order by ID
// @Description  Retrieve an order by its ID
// @Tags         orders
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID when JWT auth is disabled"
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[documentapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orders.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// List handles GET /api/v1/orders
// @ID           listOrders
// @Summary      List orders
// @Description  List the orders of the tenant
// @Tags         orders
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID when JWT auth is disabled"
// @Param        search query string false "Search term"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]documentapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var filter documentapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	orders, err := h.orders.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}
