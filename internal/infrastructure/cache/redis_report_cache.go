package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/erp/invoicing/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "invoicing:report:"

// RedisReportCache implements ReportCache using Redis.
// This is suitable for deployments where several instances share report results.
type RedisReportCache struct {
	client     *redis.Client
	ownsClient bool
	keyPrefix  string
}

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewRedisReportCache creates a cache on a new connection built from cfg
func NewRedisReportCache(cfg config.RedisConfig) (*RedisReportCache, error) {
	client, err := NewRedisClient(cfg)
	if err != nil {
		return nil, err
	}
	c := NewRedisReportCacheWithClient(client, "")
	c.ownsClient = true
	return c, nil
}

// NewRedisReportCacheWithClient creates a cache sharing an existing client
func NewRedisReportCacheWithClient(client *redis.Client, keyPrefix string) *RedisReportCache {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisReportCache{client: client, keyPrefix: keyPrefix}
}

func (c *RedisReportCache) generationKey(tenantID uuid.UUID) string {
	return c.keyPrefix + tenantID.String() + ":gen"
}

func (c *RedisReportCache) entryKey(tenantID uuid.UUID, gen Generation, key string) string {
	return fmt.Sprintf("%s%s:%d:%s", c.keyPrefix, tenantID, gen, key)
}

func readGeneration(ctx context.Context, r redis.Cmdable, key string) (Generation, error) {
	gen, err := r.Get(ctx, key).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("failed to read cache generation: %w", err)
	}
	return Generation(gen), nil
}

// Get loads the entry for key into dest
func (c *RedisReportCache) Get(ctx context.Context, tenantID uuid.UUID, key string, dest any) (Generation, bool, error) {
	gen, err := readGeneration(ctx, c.client, c.generationKey(tenantID))
	if err != nil {
		return 0, false, err
	}

	data, err := c.client.Get(ctx, c.entryKey(tenantID, gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return gen, false, nil
	}
	if err != nil {
		return gen, false, fmt.Errorf("failed to read cache entry: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return gen, false, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return gen, true, nil
}

// Set stores value under key for ttl. The generation key is watched so an
// Invalidate racing the write aborts it.
func (c *RedisReportCache) Set(ctx context.Context, tenantID uuid.UUID, gen Generation, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	genKey := c.generationKey(tenantID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, genKey)
		if err != nil {
			return err
		}
		if current != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.entryKey(tenantID, gen, key), data, ttl)
			return nil
		})
		return err
	}, genKey)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Invalidate bumps the tenant generation with an atomic INCR
func (c *RedisReportCache) Invalidate(ctx context.Context, tenantID uuid.UUID) error {
	if err := c.client.Incr(ctx, c.generationKey(tenantID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate report cache: %w", err)
	}
	return nil
}

// Close closes the Redis client when the cache created it
func (c *RedisReportCache) Close() error {
	if !c.ownsClient {
		return nil
	}
	return c.client.Close()
}

var _ ReportCache = (*RedisReportCache)(nil)
