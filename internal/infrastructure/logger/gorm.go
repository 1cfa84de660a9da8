package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowQuery = 200 * time.Millisecond

// SQLConfig controls which statements SQLLogger records
type SQLConfig struct {
	// Level is the GORM verbosity, usually from SQLLevel
	Level gormlogger.LogLevel
	// SlowThreshold flags statements slower than this; zero uses 200ms
	SlowThreshold time.Duration
	// LogNotFound records gorm.ErrRecordNotFound as an error. Tenant-scoped
	// lookups miss routinely, so it is off by default.
	LogNotFound bool
}

// SQLLogger routes GORM output to zap. Statement entries carry the request
// and tenant of the context the query ran in.
type SQLLogger struct {
	base *zap.Logger
	cfg  SQLConfig
}

// NewSQLLogger creates a GORM logger writing to l under the "sql" name
func NewSQLLogger(l *zap.Logger, cfg SQLConfig) *SQLLogger {
	if cfg.SlowThreshold <= 0 {
		cfg.SlowThreshold = defaultSlowQuery
	}
	return &SQLLogger{base: l.Named("sql"), cfg: cfg}
}

// SQLLevel maps the application log level to GORM's. Statements are only
// recorded at debug; info and warn keep slow queries and errors.
func SQLLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// LogMode implements gormlogger.Interface
func (l *SQLLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.cfg.Level = level
	return &cp
}

func (l *SQLLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.cfg.Level >= gormlogger.Info {
		l.with(ctx).Sugar().Infof(msg, args...)
	}
}

func (l *SQLLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.cfg.Level >= gormlogger.Warn {
		l.with(ctx).Sugar().Warnf(msg, args...)
	}
}

func (l *SQLLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.cfg.Level >= gormlogger.Error {
		l.with(ctx).Sugar().Errorf(msg, args...)
	}
}

// Trace records one executed statement
func (l *SQLLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.cfg.Level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)

	switch {
	case err != nil && l.cfg.Level >= gormlogger.Error:
		if errors.Is(err, gormlogger.ErrRecordNotFound) && !l.cfg.LogNotFound {
			return
		}
		sql, rows := fc()
		l.with(ctx).Error("query failed", statementFields(sql, rows, elapsed, zap.Error(err))...)
	case elapsed > l.cfg.SlowThreshold && l.cfg.Level >= gormlogger.Warn:
		sql, rows := fc()
		l.with(ctx).Warn("slow query", statementFields(sql, rows, elapsed, zap.Duration("threshold", l.cfg.SlowThreshold))...)
	case l.cfg.Level >= gormlogger.Info:
		sql, rows := fc()
		l.with(ctx).Debug("query", statementFields(sql, rows, elapsed)...)
	}
}

func (l *SQLLogger) with(ctx context.Context) *zap.Logger {
	if fields := contextFields(ctx); len(fields) > 0 {
		return l.base.With(fields...)
	}
	return l.base
}

func statementFields(sql string, rows int64, elapsed time.Duration, extra ...zap.Field) []zap.Field {
	return append([]zap.Field{
		zap.String("sql", sql),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	}, extra...)
}

var _ gormlogger.Interface = (*SQLLogger)(nil)
