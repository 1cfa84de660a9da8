package handler

import (
	reportapp "github.com/erp/invoicing/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles cash-flow and pending-payment reports
type ReportHandler struct {
	BaseHandler
	reports *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// CashFlow groups invoices by month.
// @ID           getCashFlow
// @Summary      Cash-flow report
// @Description  Group invoice totals by month for the period
// @Tags         reports
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID when JWT auth is disabled"
// @Param        start_date query string true "Period start" format(date)
// @Param        end_date query string true "Period end" format(date)
// @Param        direction query string false "Invoice side" Enums(sales, purchases, all) default(all)
// @Success      200 {object} APIResponse[report.CashFlowReport]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /reports/cash-flow [get]
func (h *ReportHandler) CashFlow(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req reportapp.CashFlowRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	report, err := h.reports.CashFlow(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// CashFlowByParty groups invoices by month and counterparty.
// @ID           getCashFlowByParty
// @Summary      Cash-flow report by party
// @Description  Group invoice totals by month and counterparty for the period
// @Tags         reports
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID when JWT auth is disabled"
// @Param        start_date query string true "Period start" format(date)
// @Param        end_date query string true "Period end" format(date)
// @Param        direction query string false "Invoice side" Enums(sales, purchases, all) default(all)
// @Success      200 {object} APIResponse[report.CashFlowByPartyReport]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /reports/cash-flow/parties [get]
func (h *ReportHandler) CashFlowByParty(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req reportapp.CashFlowRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	report, err := h.reports.CashFlowByParty(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// ExportCashFlow archives the cash-flow report as CSV and returns a download link.
// @ID           exportCashFlow
// @Summary      Export cash-flow report
// @Description  Archive the cash-flow report as CSV and return a presigned download link
// @Tags         reports
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID when JWT auth is disabled"
// @Param        start_date query string true "Period start" format(date)
// @Param        end_date query string true "Period end" format(date)
// @Param        direction query string false "Invoice side" Enums(sales, purchases, all) default(all)
// @Success      200 {object} APIResponse[reportapp.ExportResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /reports/cash-flow/export [get]
func (h *ReportHandler) ExportCashFlow(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req reportapp.CashFlowRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	export, err := h.reports.ExportCashFlowCSV(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, export)
}

// Pending handles GET /api/v1/reports/pending
// @ID           getPendingPayments
// @Summary      Pending payments report
// @Description  Sum the unpaid invoices of the tenant per side
// @Tags         reports
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID when JWT auth is disabled"
// @Success      200 {object} APIResponse[report.PendingReport]
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /reports/pending [get]
func (h *ReportHandler) Pending(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	report, err := h.reports.Pending(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}
