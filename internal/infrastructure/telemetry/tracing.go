package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope of application spans
const TracerName = "github.com/erp/invoicing"

// Span attribute keys shared by the services
const (
	AttrTenantID   = "tenant_id"
	AttrDocumentID = "document_id"
	AttrCompanyID  = "company_id"
	AttrOrderCount = "order_count"
	AttrDirection  = "direction"
	AttrCacheHit   = "cache_hit"
)

// StartServiceSpan starts an internal span named "<service>.<method>" with
// alternating key/value attributes. The caller ends the span.
//
//	ctx, span := telemetry.StartServiceSpan(ctx, "document", "attach_orders",
//	    telemetry.AttrDocumentID, id.String())
//	defer span.End()
func StartServiceSpan(ctx context.Context, service, method string, keyValues ...any) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, service+"."+method,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs(keyValues)...))
}

// SetAttributes adds alternating key/value attributes to span
func SetAttributes(span trace.Span, keyValues ...any) {
	span.SetAttributes(attrs(keyValues)...)
}

// RecordError marks span failed with err; nil is ignored
func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// attrs pairs up keyValues, dropping pairs whose key is not a string
func attrs(keyValues []any) []attribute.KeyValue {
	var out []attribute.KeyValue
	for i := 1; i < len(keyValues); i += 2 {
		if key, ok := keyValues[i-1].(string); ok {
			out = append(out, attr(attribute.Key(key), keyValues[i]))
		}
	}
	return out
}

func attr(k attribute.Key, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return k.String(v)
	case bool:
		return k.Bool(v)
	case int:
		return k.Int(v)
	case int64:
		return k.Int64(v)
	case float64:
		return k.Float64(v)
	case []string:
		return k.StringSlice(v)
	case fmt.Stringer:
		return k.String(v.String())
	}
	return k.String(fmt.Sprint(value))
}
