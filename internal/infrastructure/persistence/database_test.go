package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/erp/invoicing/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDialector(t *testing.T) (gorm.Dialector, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return postgres.New(postgres.Config{Conn: conn}), mock
}

func TestOpenDatabase(t *testing.T) {
	t.Run("configures the pool and pings", func(t *testing.T) {
		dialector, mock := newMockDialector(t)
		mock.ExpectPing()

		cfg := &config.DatabaseConfig{
			MaxOpenConns:    12,
			MaxIdleConns:    4,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 10 * time.Minute,
		}
		db, err := openDatabase(dialector, cfg, gormlogger.Discard)
		require.NoError(t, err)

		assert.Equal(t, 12, db.pool.Stats().MaxOpenConnections)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("closes the pool when the ping fails", func(t *testing.T) {
		dialector, mock := newMockDialector(t)
		mock.ExpectPing().WillReturnError(assert.AnError)
		mock.ExpectClose()

		_, err := openDatabase(dialector, &config.DatabaseConfig{}, gormlogger.Discard)

		assert.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDatabase_PingAndClose(t *testing.T) {
	dialector, mock := newMockDialector(t)
	mock.ExpectPing()
	db, err := openDatabase(dialector, &config.DatabaseConfig{}, gormlogger.Discard)
	require.NoError(t, err)

	mock.ExpectPing().WillReturnError(assert.AnError)
	assert.ErrorIs(t, db.PingContext(context.Background()), assert.AnError)

	mock.ExpectClose()
	assert.NoError(t, db.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
