package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/erp/invoicing/internal/domain/report"
	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/erp/invoicing/internal/infrastructure/cache"
	"github.com/erp/invoicing/internal/infrastructure/config"
	"github.com/erp/invoicing/internal/infrastructure/logger"
	"github.com/erp/invoicing/internal/infrastructure/storage"
	"github.com/erp/invoicing/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	spanService      = "report"
	defaultCacheTTL  = 5 * time.Minute
	defaultExportDir = "exports"
	csvContentType   = "text/csv"
	dateLayout       = "2006-01-02"
)

// Report kinds, used in cache keys and metrics
const (
	reportCashflow = "cashflow"
	reportParties  = "parties"
	reportPending  = "pending"
)

// ErrExportUnavailable is returned when no report archive is configured
var ErrExportUnavailable = shared.NewDomainError("EXPORT_UNAVAILABLE", "Report export is not configured")

// ReportService builds the tenant reports. Results are cached per tenant and
// dropped whenever a document of the tenant changes.
type ReportService struct {
	invoices     report.InvoiceReader
	cache        cache.ReportCache
	archive      storage.ReportArchive
	metrics      *telemetry.ReportMetrics
	cacheTTL     time.Duration
	exportPrefix string
}

// NewReportService creates a new ReportService. cache and archive may be nil.
func NewReportService(invoices report.InvoiceReader, reportCache cache.ReportCache, archive storage.ReportArchive, cfg config.ReportConfig) *ReportService {
	s := &ReportService{
		invoices:     invoices,
		cache:        reportCache,
		archive:      archive,
		cacheTTL:     cfg.CacheTTL,
		exportPrefix: cfg.ExportPrefix,
	}
	if s.cacheTTL <= 0 {
		s.cacheTTL = defaultCacheTTL
	}
	if s.exportPrefix == "" {
		s.exportPrefix = defaultExportDir
	}
	return s
}

// SetMetrics records cache lookups and build times on m
func (s *ReportService) SetMetrics(m *telemetry.ReportMetrics) {
	s.metrics = m
}

// CashFlow groups the tenant's invoices issued in the range by month
func (s *ReportService) CashFlow(ctx context.Context, tenantID uuid.UUID, req CashFlowRequest) (_ *report.CashFlowReport, err error) {
	rng, dir, err := req.filter()
	if err != nil {
		return nil, err
	}
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "cash_flow",
		telemetry.AttrTenantID, tenantID.String(),
		telemetry.AttrDirection, string(dir))
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	key := cacheKey(reportCashflow, dir, rng)
	var result report.CashFlowReport
	slot, hit := s.lookup(ctx, tenantID, reportCashflow, key, &result)
	if hit {
		return &result, nil
	}
	start := time.Now()

	invoices, err := s.invoices.FindInvoices(ctx, report.CashFlowFilter{TenantID: tenantID, Range: rng, Direction: dir})
	if err != nil {
		return nil, fmt.Errorf("load invoices: %w", err)
	}
	built := report.BuildCashFlowReport(report.FilterDirection(invoices, dir), rng)
	s.store(ctx, tenantID, slot, built, time.Since(start))
	return built, nil
}

// CashFlowByParty groups the tenant's invoices issued in the range by counterparty
func (s *ReportService) CashFlowByParty(ctx context.Context, tenantID uuid.UUID, req CashFlowRequest) (_ *report.CashFlowByPartyReport, err error) {
	rng, dir, err := req.filter()
	if err != nil {
		return nil, err
	}
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "cash_flow_by_party",
		telemetry.AttrTenantID, tenantID.String(),
		telemetry.AttrDirection, string(dir))
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	key := cacheKey(reportParties, dir, rng)
	var result report.CashFlowByPartyReport
	slot, hit := s.lookup(ctx, tenantID, reportParties, key, &result)
	if hit {
		return &result, nil
	}
	start := time.Now()

	invoices, err := s.invoices.FindInvoices(ctx, report.CashFlowFilter{TenantID: tenantID, Range: rng, Direction: dir})
	if err != nil {
		return nil, fmt.Errorf("load invoices: %w", err)
	}
	built := report.BuildCashFlowByParty(report.FilterDirection(invoices, dir), rng)
	s.store(ctx, tenantID, slot, built, time.Since(start))
	return built, nil
}

// Pending buckets the tenant's unpaid invoices by deadline month
func (s *ReportService) Pending(ctx context.Context, tenantID uuid.UUID) (_ *report.PendingReport, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "pending",
		telemetry.AttrTenantID, tenantID.String())
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	var result report.PendingReport
	slot, hit := s.lookup(ctx, tenantID, reportPending, reportPending, &result)
	if hit {
		return &result, nil
	}
	start := time.Now()

	invoices, err := s.invoices.FindPendingInvoices(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("load pending invoices: %w", err)
	}
	built := report.BuildPendingReport(invoices)
	s.store(ctx, tenantID, slot, built, time.Since(start))
	return built, nil
}

// ExportCashFlowCSV renders the cash-flow report as CSV, archives it and
// returns a time-limited download link.
func (s *ReportService) ExportCashFlowCSV(ctx context.Context, tenantID uuid.UUID, req CashFlowRequest) (*ExportResponse, error) {
	if s.archive == nil {
		return nil, ErrExportUnavailable
	}
	cashFlow, err := s.CashFlow(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	data, rows, err := renderCashFlowCSV(cashFlow)
	if err != nil {
		return nil, fmt.Errorf("render csv: %w", err)
	}

	_, dir, _ := req.filter()
	key := fmt.Sprintf("%s/%s/cashflow-%s-%s-%s-%s.csv",
		s.exportPrefix, tenantID, dir,
		cashFlow.Range.From.Format(dateLayout), cashFlow.Range.To.Format(dateLayout),
		time.Now().UTC().Format("20060102T150405Z"))
	if err := s.archive.Put(ctx, key, data, csvContentType); err != nil {
		return nil, fmt.Errorf("archive report: %w", err)
	}
	url, expiresAt, err := s.archive.DownloadURL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("presign report: %w", err)
	}

	logger.L(ctx).Info("Cash-flow report exported",
		zap.String("key", key),
		zap.Int("rows", rows))
	return &ExportResponse{Key: key, DownloadURL: url, ExpiresAt: expiresAt, Rows: rows}, nil
}

// CashFlowCSV renders the cash-flow report as CSV without archiving it
func (s *ReportService) CashFlowCSV(ctx context.Context, tenantID uuid.UUID, req CashFlowRequest) ([]byte, error) {
	cashFlow, err := s.CashFlow(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}
	data, _, err := renderCashFlowCSV(cashFlow)
	if err != nil {
		return nil, fmt.Errorf("render csv: %w", err)
	}
	return data, nil
}

// renderCashFlowCSV writes one row per invoice followed by one total row per month
func renderCashFlowCSV(r *report.CashFlowReport) ([]byte, int, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"period", "id_document", "type", "doc_number", "doc_date", "com_name",
		"total_net", "total_vat", "total_withholding", "total_to_pay"}
	if err := w.Write(header); err != nil {
		return nil, 0, err
	}

	rows := 0
	for _, month := range r.Months {
		period := month.Period.String()
		for _, inv := range month.Invoices {
			if err := w.Write([]string{
				period, inv.ID.String(), string(inv.Type), inv.DocNumber, inv.DocDate.Format(dateLayout), inv.ComName,
				inv.TotalNet.String(), inv.TotalVat.String(), inv.TotalWithholding.String(), inv.TotalToPay.String(),
			}); err != nil {
				return nil, 0, err
			}
			rows++
		}
		if err := w.Write([]string{period, "", "MONTH_TOTAL", "", "", "", month.NetTotal.String(), "", "", ""}); err != nil {
			return nil, 0, err
		}
	}
	if err := w.Write([]string{"", "", "GRAND_TOTAL", "", "", "", r.GrandTotalNet.String(), "", "", ""}); err != nil {
		return nil, 0, err
	}
	w.Flush()
	return buf.Bytes(), rows, w.Error()
}

// cacheSlot is where a missed result goes once it has been built
type cacheSlot struct {
	report string
	key    string
	gen    cache.Generation
	ok     bool
}

// lookup reads a cached result. Cache failures degrade to a miss whose
// result is not stored.
func (s *ReportService) lookup(ctx context.Context, tenantID uuid.UUID, kind, key string, dest any) (cacheSlot, bool) {
	slot := cacheSlot{report: kind, key: key}
	outcome := telemetry.CacheMiss
	hit := false
	if s.cache != nil {
		gen, found, err := s.cache.Get(ctx, tenantID, key, dest)
		switch {
		case err != nil:
			logger.L(ctx).Warn("Report cache read failed", zap.String("key", key), zap.Error(err))
			outcome = telemetry.CacheError
		case found:
			outcome, hit = telemetry.CacheHit, true
		default:
			slot.gen, slot.ok = gen, true
		}
	}
	telemetry.SetAttributes(trace.SpanFromContext(ctx), telemetry.AttrCacheHit, hit)
	s.metrics.CacheLookup(ctx, kind, outcome)
	return slot, hit
}

// store records how long the missed report took to build and writes it into
// the generation its lookup saw. Cache failures are logged and ignored.
func (s *ReportService) store(ctx context.Context, tenantID uuid.UUID, slot cacheSlot, value any, took time.Duration) {
	s.metrics.Built(ctx, slot.report, took)
	if !slot.ok {
		return
	}
	if err := s.cache.Set(ctx, tenantID, slot.gen, slot.key, value, s.cacheTTL); err != nil {
		logger.L(ctx).Warn("Report cache write failed", zap.String("key", slot.key), zap.Error(err))
	}
}

func cacheKey(kind string, dir report.Direction, rng report.DateRange) string {
	return fmt.Sprintf("%s:%s:%s:%s", kind, dir, rng.From.Format(dateLayout), rng.To.Format(dateLayout))
}
