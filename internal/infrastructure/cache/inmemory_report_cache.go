package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// entry is a stored report with its expiration
type entry struct {
	data      []byte
	expiresAt time.Time
}

// InMemoryReportCache implements ReportCache using an in-memory map.
// This is suitable for single-instance deployments and testing.
type InMemoryReportCache struct {
	mu          sync.RWMutex
	entries     map[string]entry
	generations map[uuid.UUID]Generation
	stopChan    chan struct{}
	wg          sync.WaitGroup
	closeOnce   sync.Once
}

// NewInMemoryReportCache creates a new in-memory report cache.
// It starts a background goroutine to clean up expired entries.
func NewInMemoryReportCache() *InMemoryReportCache {
	c := &InMemoryReportCache{
		entries:     make(map[string]entry),
		generations: make(map[uuid.UUID]Generation),
		stopChan:    make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanupLoop()

	return c
}

func entryKey(tenantID uuid.UUID, gen Generation, key string) string {
	return fmt.Sprintf("%s:%d:%s", tenantID, gen, key)
}

// Get loads the entry for key into dest
func (c *InMemoryReportCache) Get(ctx context.Context, tenantID uuid.UUID, key string, dest any) (Generation, bool, error) {
	c.mu.RLock()
	gen := c.generations[tenantID]
	e, ok := c.entries[entryKey(tenantID, gen, key)]
	c.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		return gen, false, nil
	}
	if err := json.Unmarshal(e.data, dest); err != nil {
		return gen, false, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return gen, true, nil
}

// Set stores value under key for ttl. Nothing is written when gen is stale.
func (c *InMemoryReportCache) Set(ctx context.Context, tenantID uuid.UUID, gen Generation, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generations[tenantID] {
		return nil
	}
	c.entries[entryKey(tenantID, gen, key)] = entry{data: data, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Invalidate bumps the tenant generation
func (c *InMemoryReportCache) Invalidate(ctx context.Context, tenantID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[tenantID]++
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (c *InMemoryReportCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

func (c *InMemoryReportCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup removes expired and orphaned entries
func (c *InMemoryReportCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// Size returns the number of stored entries, orphans included
func (c *InMemoryReportCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var _ ReportCache = (*InMemoryReportCache)(nil)
