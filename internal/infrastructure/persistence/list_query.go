package persistence

import (
	"errors"
	"strings"

	"github.com/erp/invoicing/internal/domain/shared"
	"gorm.io/gorm"
)

// Sortable columns per list. Anything else in a filter's OrderBy falls back
// to the list's default column, so user input never reaches ORDER BY.
var (
	partySortColumns = columnSet("id", "created_at", "updated_at", "legal_name", "commercial_name", "vat_number")
	orderSortColumns = columnSet("id", "created_at", "updated_at", "reference", "order_date", "total")
)

func columnSet(cols ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		set[c] = struct{}{}
	}
	return set
}

// listQuery describes how a repository searches, sorts and pages its rows
type listQuery struct {
	sortColumns   map[string]struct{}
	defaultSort   string
	searchColumns []string
}

// sortColumn returns the whitelisted column named by orderBy, or the default
func (q listQuery) sortColumn(orderBy string) string {
	col := strings.TrimSpace(orderBy)
	if _, ok := q.sortColumns[col]; ok {
		return col
	}
	return q.defaultSort
}

// sortDirection accepts asc in any case; everything else sorts descending
func sortDirection(dir string) string {
	if strings.EqualFold(strings.TrimSpace(dir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// apply adds search, ordering and pagination from filter to query.
// id is appended as a tiebreaker so pages are stable.
func (q listQuery) apply(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if search := strings.TrimSpace(filter.Search); search != "" && len(q.searchColumns) > 0 {
		pattern := "%" + strings.ToLower(search) + "%"
		clauses := make([]string, len(q.searchColumns))
		args := make([]any, len(q.searchColumns))
		for i, col := range q.searchColumns {
			clauses[i] = "LOWER(" + col + ") LIKE ?"
			args[i] = pattern
		}
		query = query.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}

	col := q.sortColumn(filter.OrderBy)
	query = query.Order(col + " " + sortDirection(filter.OrderDir))
	if col != "id" {
		query = query.Order("id ASC")
	}

	if filter.Paged() {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}

// translateNotFound maps GORM's missing-row error to the domain sentinel
func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return err
}
