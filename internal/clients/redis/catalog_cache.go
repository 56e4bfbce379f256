package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ccomp-uerj/progress-backend/internal/pkg/logger"
	"github.com/ccomp-uerj/progress-backend/internal/types"
	"github.com/ccomp-uerj/progress-backend/internal/utils"
)

// CatalogCache holds the latest catalog snapshot so every page load does not
// hit the slow upstream scraper. A miss or a cache error just falls through
// to the upstream fetch.
type CatalogCache interface {
	Get(ctx context.Context) ([]types.RawCourseRecord, bool)
	Set(ctx context.Context, records []types.RawCourseRecord)
	Invalidate(ctx context.Context)
	Close() error
}

type catalogCache struct {
	log *logger.Logger
	rdb *goredis.Client
	key string
	ttl time.Duration
}

// NewCatalogCache connects to the Redis named by REDIS_ADDR. Returns an error
// when the address is unset or unreachable; callers may then run uncached.
func NewCatalogCache(log *logger.Logger) (CatalogCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ttlSeconds := utils.GetEnvAsInt("CATALOG_CACHE_TTL_SECONDS", 3600, log)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &catalogCache{
		log: log.With("client", "CatalogCache"),
		rdb: rdb,
		key: utils.GetEnv("CATALOG_CACHE_KEY", "catalog:disciplines", log),
		ttl: time.Duration(ttlSeconds) * time.Second,
	}, nil
}

func (c *catalogCache) Get(ctx context.Context) ([]types.RawCourseRecord, bool) {
	raw, err := c.rdb.Get(ctx, c.key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("Catalog cache read failed", "error", err)
		}
		return nil, false
	}
	var records []types.RawCourseRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		c.log.Warn("Catalog cache entry corrupt, dropping", "error", err)
		c.Invalidate(ctx)
		return nil, false
	}
	return records, true
}

func (c *catalogCache) Set(ctx context.Context, records []types.RawCourseRecord) {
	raw, err := json.Marshal(records)
	if err != nil {
		c.log.Warn("Catalog cache encode failed", "error", err)
		return
	}
	if err := c.rdb.Set(ctx, c.key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("Catalog cache write failed", "error", err)
	}
}

func (c *catalogCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, c.key).Err(); err != nil {
		c.log.Warn("Catalog cache invalidate failed", "error", err)
	}
}

func (c *catalogCache) Close() error {
	return c.rdb.Close()
}
