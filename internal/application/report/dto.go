package report

import (
	"time"

	"github.com/erp/invoicing/internal/domain/report"
)

// CashFlowRequest selects the period and side of a cash-flow report
type CashFlowRequest struct {
	StartDate time.Time `form:"start_date" time_format:"2006-01-02" binding:"required"`
	EndDate   time.Time `form:"end_date" time_format:"2006-01-02" binding:"required"`
	Direction string    `form:"direction" binding:"omitempty,oneof=sales purchases all"`
}

// filter validates the request and converts it to a domain filter
func (r CashFlowRequest) filter() (report.DateRange, report.Direction, error) {
	rng, err := report.NewDateRange(r.StartDate, r.EndDate)
	if err != nil {
		return report.DateRange{}, "", err
	}
	dir, err := report.ParseDirection(r.Direction)
	if err != nil {
		return report.DateRange{}, "", err
	}
	return rng, dir, nil
}

// ExportResponse points at an archived report file
type ExportResponse struct {
	Key         string    `json:"key"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
	Rows        int       `json:"rows"`
}
