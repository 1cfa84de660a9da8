package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func selectDocuments() (string, int64) {
	return "SELECT * FROM documents", 3
}

func newObservedSQLLogger(cfg SQLConfig) (*SQLLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewSQLLogger(zap.New(core), cfg), recorded
}

func TestSQLLogger_LogMode(t *testing.T) {
	l := NewSQLLogger(zap.NewNop(), SQLConfig{Level: gormlogger.Info})
	changed, ok := l.LogMode(gormlogger.Warn).(*SQLLogger)

	require.True(t, ok)
	assert.Equal(t, gormlogger.Info, l.cfg.Level)
	assert.Equal(t, gormlogger.Warn, changed.cfg.Level)
	assert.Equal(t, defaultSlowQuery, changed.cfg.SlowThreshold)
}

func TestSQLLogger_Trace(t *testing.T) {
	t.Run("failed statement", func(t *testing.T) {
		l, recorded := newObservedSQLLogger(SQLConfig{Level: gormlogger.Error})
		l.Trace(context.Background(), time.Now(), selectDocuments, errors.New("syntax error"))

		entry := findEntry(t, recorded, "query failed")
		assert.Equal(t, zapcore.ErrorLevel, entry.Level)
		assert.Equal(t, "SELECT * FROM documents", entry.ContextMap()["sql"])
	})

	t.Run("not found is skipped unless asked for", func(t *testing.T) {
		l, recorded := newObservedSQLLogger(SQLConfig{Level: gormlogger.Error})
		l.Trace(context.Background(), time.Now(), selectDocuments, gormlogger.ErrRecordNotFound)
		assert.Empty(t, recorded.All())

		l, recorded = newObservedSQLLogger(SQLConfig{Level: gormlogger.Error, LogNotFound: true})
		l.Trace(context.Background(), time.Now(), selectDocuments, gormlogger.ErrRecordNotFound)
		assert.Len(t, recorded.All(), 1)
	})

	t.Run("slow statement", func(t *testing.T) {
		l, recorded := newObservedSQLLogger(SQLConfig{Level: gormlogger.Warn, SlowThreshold: time.Millisecond})
		l.Trace(context.Background(), time.Now().Add(-time.Second), selectDocuments, nil)

		entry := findEntry(t, recorded, "slow query")
		assert.Equal(t, zapcore.WarnLevel, entry.Level)
	})

	t.Run("fast statements are dropped at warn", func(t *testing.T) {
		l, recorded := newObservedSQLLogger(SQLConfig{Level: gormlogger.Warn})
		l.Trace(context.Background(), time.Now(), selectDocuments, nil)
		assert.Empty(t, recorded.All())
	})

	t.Run("silent", func(t *testing.T) {
		l, recorded := newObservedSQLLogger(SQLConfig{Level: gormlogger.Silent})
		l.Trace(context.Background(), time.Now(), selectDocuments, errors.New("x"))
		assert.Empty(t, recorded.All())
	})

	t.Run("request and tenant from context", func(t *testing.T) {
		l, recorded := newObservedSQLLogger(SQLConfig{Level: gormlogger.Info})
		tenant := uuid.New()
		ctx := WithTenantID(WithRequestID(context.Background(), "req-9"), tenant)

		l.Trace(ctx, time.Now(), selectDocuments, nil)

		fields := findEntry(t, recorded, "query").ContextMap()
		assert.Equal(t, "req-9", fields["request_id"])
		assert.Equal(t, tenant.String(), fields["tenant_id"])
		assert.EqualValues(t, 3, fields["rows"])
	})
}

func TestSQLLevel(t *testing.T) {
	cases := map[string]gormlogger.LogLevel{
		"silent": gormlogger.Silent,
		"error":  gormlogger.Error,
		"warn":   gormlogger.Warn,
		"info":   gormlogger.Warn,
		"debug":  gormlogger.Info,
		"":       gormlogger.Warn,
	}
	for level, want := range cases {
		assert.Equal(t, want, SQLLevel(level), level)
	}
}
