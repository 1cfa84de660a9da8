package cache

import (
	"context"

	"github.com/erp/invoicing/internal/domain/document"
	"github.com/erp/invoicing/internal/domain/shared"
	"go.uber.org/zap"
)

// ReportCacheInvalidator drops a tenant's cached reports whenever one of its
// documents changes
type ReportCacheInvalidator struct {
	cache  ReportCache
	logger *zap.Logger
}

// NewReportCacheInvalidator creates a new invalidation handler
func NewReportCacheInvalidator(cache ReportCache, logger *zap.Logger) *ReportCacheInvalidator {
	return &ReportCacheInvalidator{cache: cache, logger: logger}
}

// EventTypes returns the document events that affect report results
func (h *ReportCacheInvalidator) EventTypes() []string {
	return []string{
		document.EventTypeDocumentCreated,
		document.EventTypeDocumentTotalsRecalculated,
		document.EventTypeDocumentStatusChanged,
	}
}

// Handle invalidates the event's tenant
func (h *ReportCacheInvalidator) Handle(ctx context.Context, event shared.DomainEvent) error {
	if err := h.cache.Invalidate(ctx, event.TenantID()); err != nil {
		return err
	}
	h.logger.Debug("report cache invalidated",
		zap.String("tenant_id", event.TenantID().String()),
		zap.String("event_type", event.EventType()),
	)
	return nil
}

var _ shared.EventHandler = (*ReportCacheInvalidator)(nil)
