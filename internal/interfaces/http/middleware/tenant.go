package middleware

import (
	"net/http"
	"strings"

	"github.com/erp/invoicing/internal/infrastructure/logger"
	"github.com/erp/invoicing/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Tenant context keys
const (
	TenantIDKey     = "tenant_id"
	TenantHeaderKey = "X-Tenant-ID"
)

// TenantConfig controls how the owner company of a request is resolved
type TenantConfig struct {
	// HeaderEnabled accepts X-Tenant-ID. Only set when JWT auth is off.
	HeaderEnabled bool
	// SkipPaths are path prefixes that need no tenant
	SkipPaths []string
}

// DefaultTenantConfig returns the tenant configuration for a deployment
// with or without JWT authentication.
func DefaultTenantConfig(jwtEnabled bool) TenantConfig {
	return TenantConfig{
		HeaderEnabled: !jwtEnabled,
		SkipPaths:     []string{"/health", "/api/v1/health", "/api/v1/iban", "/api/v1/tenants"},
	}
}

// Tenant resolves the owner company scoping the request. A tenant set by
// JWTAuth wins; otherwise X-Tenant-ID is used when HeaderEnabled.
// Requests without a tenant are rejected with 401.
func Tenant(cfg TenantConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, p := range cfg.SkipPaths {
			if path == p || strings.HasPrefix(path, p+"/") {
				c.Next()
				return
			}
		}

		if _, ok := GetTenantID(c); ok {
			c.Next()
			return
		}

		raw := ""
		if cfg.HeaderEnabled {
			raw = strings.TrimSpace(c.GetHeader(TenantHeaderKey))
		}
		if raw == "" {
			abortTenant(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Tenant identification required")
			return
		}
		tenantID, err := uuid.Parse(raw)
		if err != nil || tenantID == uuid.Nil {
			abortTenant(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Invalid tenant ID format")
			return
		}

		c.Set(TenantIDKey, tenantID)
		c.Request = c.Request.WithContext(logger.WithTenantID(c.Request.Context(), tenantID))
		c.Next()
	}
}

func abortTenant(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}

// GetTenantID returns the tenant resolved for the request
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(TenantIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}
