package persistence

import (
	"errors"
	"fmt"
	"testing"

	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/erp/invoicing/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func dryRunList(t *testing.T, q listQuery, filter shared.Filter) *gorm.Statement {
	t.Helper()
	db := setupTestDB(t).Session(&gorm.Session{DryRun: true})
	var rows []models.OrderModel
	return q.apply(db.Model(&models.OrderModel{}), filter).Find(&rows).Statement
}

func TestListQuery_Sorting(t *testing.T) {
	tests := []struct {
		name    string
		orderBy string
		dir     string
		want    string
	}{
		{"whitelisted column", "reference", "asc", "ORDER BY reference ASC,id ASC"},
		{"surrounding spaces", "  total ", "DESC", "ORDER BY total DESC,id ASC"},
		{"unknown column uses default", "secret", "asc", "ORDER BY order_date ASC,id ASC"},
		{"empty column uses default", "", "", "ORDER BY order_date DESC,id ASC"},
		{"id needs no tiebreaker", "id", "asc", "ORDER BY id ASC"},
		{"injected column", "total; DROP TABLE documents;--", "asc", "ORDER BY order_date ASC,id ASC"},
		{"injected direction", "total", "ASC; DROP TABLE documents;--", "ORDER BY total DESC,id ASC"},
		{"case matters for columns", "TOTAL", "asc", "ORDER BY order_date ASC,id ASC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := dryRunList(t, orderList, shared.Filter{OrderBy: tt.orderBy, OrderDir: tt.dir})
			assert.Contains(t, stmt.SQL.String(), tt.want)
		})
	}
}

func TestListQuery_SearchAndPaging(t *testing.T) {
	stmt := dryRunList(t, orderList, shared.Filter{Search: " Acme ", Page: 3, PageSize: 10})
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "(LOWER(reference) LIKE ? OR LOWER(description) LIKE ?)")
	assert.Contains(t, sql, "LIMIT")
	assert.Contains(t, sql, "OFFSET")
	assert.Equal(t, []any{"%acme%", "%acme%"}, stmt.Vars[:2])
}

func TestListQuery_NoPaging(t *testing.T) {
	stmt := dryRunList(t, orderList, shared.Filter{})
	assert.NotContains(t, stmt.SQL.String(), "LIMIT")
	assert.Empty(t, stmt.Vars)
}

func TestSortDirection(t *testing.T) {
	for in, want := range map[string]string{"asc": "ASC", " ASC ": "ASC", "desc": "DESC", "": "DESC", "up": "DESC"} {
		assert.Equal(t, want, sortDirection(in), in)
	}
}

func TestTranslateNotFound(t *testing.T) {
	assert.ErrorIs(t, translateNotFound(gorm.ErrRecordNotFound), shared.ErrNotFound)
	assert.ErrorIs(t, translateNotFound(fmt.Errorf("wrapped: %w", gorm.ErrRecordNotFound)), shared.ErrNotFound)

	other := errors.New("connection refused")
	assert.Same(t, other, translateNotFound(other))
}
