// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"waste_backend/internal/feature/waste/domain/entity"
	"waste_backend/internal/feature/waste/usecase"
)

// CachingWasteRepository decorates a WasteRepository with Redis caching of
// the daily-total aggregation, the query behind the dashboard summary and
// forecast. It implements the decorator pattern, transparently adding
// caching without modifying the underlying repository.
type CachingWasteRepository struct {
	inner     usecase.WasteRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingWasteRepository decorates a WasteRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "waste".
func NewCachingWasteRepository(rdb *redis.Client, ttl time.Duration, inner usecase.WasteRepository, namespace string) *CachingWasteRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "waste"
	}
	return &CachingWasteRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create inserts an entry and invalidates cached aggregations.
func (c *CachingWasteRepository) Create(ctx context.Context, e *entity.WasteEntry) error {
	if err := c.inner.Create(ctx, e); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	_ = c.deleteByPattern(ctx, c.namespace+":totals:*") // Best effort: don't fail if cache deletion fails
	return nil
}

// Find passes list queries straight through; only aggregations are cached.
func (c *CachingWasteRepository) Find(ctx context.Context, from, to time.Time, department string) ([]entity.WasteEntry, error) {
	return c.inner.Find(ctx, from, to, department)
}

// DailyTotals retrieves daily aggregates, checking cache first then falling
// back to the database.
func (c *CachingWasteRepository) DailyTotals(ctx context.Context, from, to time.Time) ([]entity.DailyTotal, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.DailyTotals(ctx, from, to)
	}

	key := c.cacheKey(from, to)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.DailyTotal
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.DailyTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates a cache key for a specific aggregation window.
// Bounds are bucketed to the day so repeated dashboard loads share an entry.
func (c *CachingWasteRepository) cacheKey(from, to time.Time) string {
	return fmt.Sprintf("%s:totals:%s:%s",
		c.namespace,
		from.UTC().Format("2006-01-02"),
		to.UTC().Format("2006-01-02"),
	)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingWasteRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
