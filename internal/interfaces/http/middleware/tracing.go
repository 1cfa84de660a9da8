// Package middleware provides the gin middleware chain of the invoicing API.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// Tracing starts a server span per request through otelgin, named after the
// route pattern ("GET /api/v1/documents/:id"). Disabled tracing is a pass-through.
func Tracing(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return otelgin.Middleware(cfg.ServiceName)
}

// SpanAttributes copies the request ID, tenant and token subject onto the
// request span. Place it after JWTAuth and Tenant.
func SpanAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		if span := trace.SpanFromContext(c.Request.Context()); span.IsRecording() {
			var kv []attribute.KeyValue
			if id := GetRequestID(c); id != "" {
				kv = append(kv, attribute.String("request_id", id))
			}
			if tenantID, ok := GetTenantID(c); ok {
				kv = append(kv, attribute.String("tenant_id", tenantID.String()))
			}
			if sub := GetJWTSubject(c); sub != "" {
				kv = append(kv, attribute.String("subject", sub))
			}
			span.SetAttributes(kv...)
		}
		c.Next()
	}
}

// SpanErrorMarker fails the request span on 4xx and 5xx responses. Place it after Tracing.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		status := c.Writer.Status()
		if code, desc := spanStatus(status); code == codes.Error {
			span.SetStatus(code, desc)
			span.SetAttributes(attribute.Int("http.status_code", status))
		}
	}
}

// spanStatus maps an HTTP status to a span status. Server errors share one
// description so internal details stay out of traces.
func spanStatus(status int) (codes.Code, string) {
	switch {
	case status >= http.StatusInternalServerError:
		return codes.Error, "Internal Server Error"
	case status >= http.StatusBadRequest:
		return codes.Error, http.StatusText(status)
	default:
		return codes.Unset, ""
	}
}
