package report

import (
	"fmt"
	"time"

	"github.com/erp/invoicing/internal/domain/shared"
)

// Period is a (year, month) aggregation bucket key
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// PeriodOf returns the calendar month containing t
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: int(t.Month())}
}

// Before reports whether p is an earlier month than other
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

// String renders the period as YYYY-MM
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// DateRange is an inclusive range of calendar days
type DateRange struct {
	From time.Time `json:"start_date"`
	To   time.Time `json:"end_date"`
}

// NewDateRange creates a range after checking From is not after To
func NewDateRange(from, to time.Time) (DateRange, error) {
	errs := shared.ValidationErrors{}
	if from.IsZero() {
		errs.Add("start_date", "Start date is required")
	}
	if to.IsZero() {
		errs.Add("end_date", "End date is required")
	}
	r := DateRange{From: dayOf(from), To: dayOf(to)}
	if !errs.HasErrors() && r.To.Before(r.From) {
		errs.Add("end_date", "End date cannot be before start date")
	}
	if err := errs.OrNil(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// Contains reports whether the calendar day of t lies within the range, bounds included
func (r DateRange) Contains(t time.Time) bool {
	d := dayOf(t)
	return !d.Before(dayOf(r.From)) && !d.After(dayOf(r.To))
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
