package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/erp/invoicing/internal/infrastructure/config"
	"github.com/erp/invoicing/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const connectTimeout = 5 * time.Second

// Database owns the GORM handle shared by every repository
type Database struct {
	DB   *gorm.DB
	pool *sql.DB
}

// NewDatabase connects to PostgreSQL with the configured pool and routes GORM
// output through zap. logLevel is the application level; see logger.SQLLevel.
func NewDatabase(cfg *config.DatabaseConfig, zl *zap.Logger, logLevel string) (*Database, error) {
	sqlLog := logger.NewSQLLogger(zl, logger.SQLConfig{
		Level:         logger.SQLLevel(logLevel),
		SlowThreshold: cfg.SlowQueryThresh,
	})
	return openDatabase(postgres.Open(cfg.DSN()), cfg, sqlLog)
}

func openDatabase(dialector gorm.Dialector, cfg *config.DatabaseConfig, gl gormlogger.Interface) (*Database, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gl,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		DisableAutomaticPing:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	pool, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database pool: %w", err)
	}
	configurePool(pool, cfg)

	d := &Database{DB: db, pool: pool}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := d.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return d, nil
}

func configurePool(pool *sql.DB, cfg *config.DatabaseConfig) {
	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	pool.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
}

// PingContext checks the connection; the health endpoint calls it
func (d *Database) PingContext(ctx context.Context) error {
	return d.pool.PingContext(ctx)
}

// Close releases the connection pool
func (d *Database) Close() error {
	return d.pool.Close()
}
