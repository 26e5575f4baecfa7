// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	shared "indicator_backend/internal/domain/entity"
	"indicator_backend/internal/feature/indicator/domain/entity"
	"indicator_backend/internal/feature/indicator/usecase"
	"indicator_backend/internal/platform/logger"
)

// CachingIndicatorRepository decorates an IndicatorRepository with Redis caching of single lookups.
// Board and custom forecast mutations resolve indicators through FindByID, so that is the hot path;
// List and SearchBySymbol go straight to the database.
type CachingIndicatorRepository struct {
	inner     usecase.IndicatorRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.IndicatorRepository = (*CachingIndicatorRepository)(nil)

// NewCachingIndicatorRepository decorates an IndicatorRepository with Redis caching.
// If ttl is 0, entries live until the next daily sync (08:00 JST). If namespace is empty, it uses "indicators".
func NewCachingIndicatorRepository(rdb *redis.Client, ttl time.Duration, inner usecase.IndicatorRepository, namespace string) *CachingIndicatorRepository {
	if ttl < 0 {
		ttl = 0
	}
	if namespace == "" {
		namespace = "indicators"
	}
	return &CachingIndicatorRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FindByID retrieves an indicator, checking cache first then falling back to the database.
// Misses on the database are not cached.
func (c *CachingIndicatorRepository) FindByID(ctx context.Context, id uuid.UUID, indicatorType shared.IndicatorType) (entity.Indicator, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id, indicatorType)
	}

	key := c.cacheKey(indicatorType, id)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Indicator
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// 壊れたエントリは削除してDBから取り直す
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FindByID(ctx, id, indicatorType)
	if err != nil {
		return entity.Indicator{}, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.expiry()).Err(); err != nil {
			logger.L().Warn().Err(err).Str("key", key).Msg("failed to cache indicator")
		}
	}
	return out, nil
}

func (c *CachingIndicatorRepository) List(ctx context.Context, indicatorType shared.IndicatorType, limit, offset int) ([]entity.Indicator, error) {
	return c.inner.List(ctx, indicatorType, limit, offset)
}

func (c *CachingIndicatorRepository) SearchBySymbol(ctx context.Context, symbol string, limit int) ([]entity.Indicator, error) {
	return c.inner.SearchBySymbol(ctx, symbol, limit)
}

// UpsertBatch writes the catalog rows and invalidates the cached entries of every affected type.
func (c *CachingIndicatorRepository) UpsertBatch(ctx context.Context, indicators []entity.Indicator) error {
	if err := c.inner.UpsertBatch(ctx, indicators); err != nil {
		return err
	}
	if c.rdb == nil || len(indicators) == 0 {
		return nil
	}

	seen := map[shared.IndicatorType]struct{}{}
	for _, i := range indicators {
		if _, ok := seen[i.IndicatorType]; ok {
			continue
		}
		seen[i.IndicatorType] = struct{}{}
		if err := c.deleteByPattern(ctx, c.cacheKeyPrefix(i.IndicatorType)+"*"); err != nil {
			// 次回の同期かTTL切れで解消するため失敗扱いにしない
			logger.L().Warn().Err(err).Str("indicator_type", string(i.IndicatorType)).Msg("failed to invalidate indicator cache")
		}
	}
	return nil
}

func (c *CachingIndicatorRepository) expiry() time.Duration {
	if c.ttl > 0 {
		return c.ttl
	}
	return TimeUntilNext8AM()
}

func (c *CachingIndicatorRepository) cacheKey(indicatorType shared.IndicatorType, id uuid.UUID) string {
	return fmt.Sprintf("%s%s", c.cacheKeyPrefix(indicatorType), id)
}

func (c *CachingIndicatorRepository) cacheKeyPrefix(indicatorType shared.IndicatorType) string {
	return fmt.Sprintf("%s:%s:", c.namespace, safe(string(indicatorType)))
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingIndicatorRepository) deleteByPattern(ctx context.Context, pattern string) error {
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

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
