package shared

import "context"

// Paging defaults for list queries
const (
	DefaultPageSize = 20
	DefaultOrderBy  = "created_at"
)

// Filter narrows and pages a list query. Repositories whitelist OrderBy.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
}

// DefaultFilter is the first page, newest first
func DefaultFilter() Filter {
	return Filter{Page: 1, PageSize: DefaultPageSize, OrderBy: DefaultOrderBy, OrderDir: "desc"}
}

// Paged reports whether the filter limits the rows returned
func (f Filter) Paged() bool {
	return f.Page > 0 && f.PageSize > 0
}

// Offset is the number of rows before the filter's page
func (f Filter) Offset() int {
	if !f.Paged() {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// TransactionManager runs fn as one unit of work. Repositories called with the
// ctx passed to fn join the transaction.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
