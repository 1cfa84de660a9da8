// Package cache stores computed report results per tenant.
//
// Entries are namespaced by a per-tenant generation number. Invalidating a
// tenant bumps its generation, which orphans every entry written before; the
// orphans then expire through their TTL. A result is stored under the
// generation its lookup observed, so a report built while the tenant was
// invalidated is never served under the newer generation.
package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Generation counts the invalidations of one tenant
type Generation int64

// ReportCache caches JSON-serializable report results for a tenant
type ReportCache interface {
	// Get loads the entry for key into dest. found is false on a miss. gen is
	// the tenant generation the lookup ran against.
	Get(ctx context.Context, tenantID uuid.UUID, key string, dest any) (gen Generation, found bool, err error)

	// Set stores value under key for ttl in generation gen. The write is
	// dropped when the tenant has been invalidated since gen was read.
	Set(ctx context.Context, tenantID uuid.UUID, gen Generation, key string, value any, ttl time.Duration) error

	// Invalidate drops every entry of the tenant
	Invalidate(ctx context.Context, tenantID uuid.UUID) error

	// Close releases resources held by the cache
	Close() error
}
