package handler

import (
	"errors"
	"net/http"

	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/erp/invoicing/internal/infrastructure/logger"
	"github.com/erp/invoicing/internal/interfaces/http/dto"
	"github.com/erp/invoicing/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BaseHandler writes the response envelope for every handler
type BaseHandler struct{}

func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error writes an error envelope with the status registered for code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// ValidationError writes a 400 listing the offending fields
func (h *BaseHandler) ValidationError(c *gin.Context, details []dto.ValidationDetail) {
	c.JSON(http.StatusBadRequest,
		dto.NewValidationErrorResponse("Request validation failed", middleware.GetRequestID(c), details))
}

// tenantID returns the tenant resolved by the tenant middleware, writing a
// 401 when there is none
func (h *BaseHandler) tenantID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetTenantID(c)
	if !ok {
		h.Error(c, dto.ErrCodeUnauthorized, "Tenant identification required")
	}
	return id, ok
}

// uuidParam parses a UUID path parameter, writing a 400 on failure
func (h *BaseHandler) uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.ValidationError(c, []dto.ValidationDetail{{Field: name, Message: "Invalid UUID format"}})
		return uuid.Nil, false
	}
	return id, true
}

// BindError reports a failed ShouldBind call
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, middleware.FormatValidationErrors(verrs, middleware.GetRequestID(c)))
	case middleware.IsBodyTooLarge(err):
		h.Error(c, dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size")
	default:
		h.Error(c, dto.ErrCodeInvalidJSON, err.Error())
	}
}

// HandleError maps a service error onto the envelope. Unknown errors are
// logged and answered with a generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var (
		verrs     shared.ValidationErrors
		domainErr *shared.DomainError
	)
	switch {
	case err == nil:
	case errors.As(err, &verrs):
		details := make([]dto.ValidationDetail, 0, len(verrs))
		for _, field := range verrs.Fields() {
			details = append(details, dto.ValidationDetail{Field: field, Message: verrs[field]})
		}
		h.ValidationError(c, details)
	case errors.As(err, &domainErr):
		h.Error(c, dto.NormalizeErrorCode(domainErr.Code), domainErr.Message)
	default:
		logger.L(c.Request.Context()).Error("unhandled error", zap.Error(err))
		_ = c.Error(err)
		h.Error(c, dto.ErrCodeInternal, "An unexpected error occurred")
	}
}
