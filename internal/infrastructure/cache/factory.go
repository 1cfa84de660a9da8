package cache

import (
	"github.com/erp/invoicing/internal/infrastructure/config"
	"go.uber.org/zap"
)

// FactoryOption is a functional option for NewReportCache
type FactoryOption func(*factory)

type factory struct {
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// WithLogger sets the logger used to report the chosen backend
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to memory.
// Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewReportCache returns a Redis cache when Redis is enabled, otherwise an in-memory one
func NewReportCache(cfg config.RedisConfig, opts ...FactoryOption) (ReportCache, error) {
	f := &factory{logger: zap.NewNop(), allowInMemoryFallback: true}
	for _, opt := range opts {
		opt(f)
	}

	if !cfg.Enabled {
		f.logger.Info("Redis disabled, using in-memory report cache")
		return NewInMemoryReportCache(), nil
	}

	c, err := NewRedisReportCache(cfg)
	if err != nil {
		if !f.allowInMemoryFallback {
			return nil, err
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory report cache",
			zap.String("addr", cfg.Addr()),
			zap.Error(err),
		)
		return NewInMemoryReportCache(), nil
	}

	f.logger.Info("Using Redis report cache", zap.String("addr", cfg.Addr()))
	return c, nil
}
