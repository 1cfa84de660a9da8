package migration

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/erp/invoicing/migrations"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	src, err := iofs.New(migrations.FS, ".")
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	r, _, err := src.ReadUp(first)
	require.NoError(t, err)
	body, err := io.ReadAll(r)
	require.NoError(t, err)
	_ = r.Close()

	sql := string(body)
	for _, table := range []string{"companies", "customers", "providers", "bank_accounts", "change_rates", "orders", "documents", "document_orders"} {
		assert.Contains(t, sql, "CREATE TABLE "+table+" (", table)
	}
	assert.True(t, strings.Contains(sql, "VALUES (1, NULL,"), "base-currency rate must be seeded with id 1")

	// Stored totals keep the full precision of the computation
	for line := range strings.Lines(sql) {
		if col, _, ok := strings.Cut(strings.TrimSpace(line), " "); ok && strings.HasPrefix(col, "total_") {
			assert.Contains(t, line, "NUMERIC ", col)
			assert.NotContains(t, line, "DECIMAL", col)
		}
	}

	_, _, err = src.ReadDown(first)
	require.NoError(t, err)
}

func TestApplied(t *testing.T) {
	tests := []struct {
		name        string
		in          error
		wantChanged bool
		wantErr     bool
	}{
		{"success", nil, true, false},
		{"nothing to do", migrate.ErrNoChange, false, false},
		{"wrapped no change", fmt.Errorf("up: %w", migrate.ErrNoChange), false, false},
		{"failure", errors.New("syntax error at or near"), false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed, err := applied(tt.in)
			assert.Equal(t, tt.wantChanged, changed)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
