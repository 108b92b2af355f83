package repository

import (
	"context"
	"crypto/sha1"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-admin-console/internal/config"
)

// Cache holds raw GET answers keyed by resource and URL.  Implementations
// must be safe for concurrent use and treat their own failures as misses.
type Cache interface {
	Get(ctx context.Context, resource, url string) ([]byte, bool)
	Put(ctx context.Context, resource, url string, body []byte)
	Invalidate(ctx context.Context, resources ...string)
}

// RedisCache stores backend answers in Redis.  Each resource keeps an index
// set of its keys so a mutation can drop every cached list and detail page
// of that resource at once.
type RedisCache struct {
	rdb     *redis.Client
	ttl     time.Duration
	prefix  string
	maxBody int
}

// NewRedisCache returns nil when caching is disabled or Redis is missing;
// a nil *RedisCache must not be stored in a Cache interface, so callers use
// the returned Cache value directly.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) Cache {
	if !cfg.Enabled || rdb == nil {
		return nil
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisCache{rdb: rdb, ttl: ttl, prefix: cfg.Prefix, maxBody: cfg.MaxBodyBytes}
}

func (c *RedisCache) key(resource, url string) string {
	sum := sha1.Sum([]byte(url))
	return fmt.Sprintf("%s:%s:%x", c.prefix, resource, sum[:])
}

func (c *RedisCache) index(resource string) string {
	return c.prefix + ":idx:" + resource
}

func (c *RedisCache) Get(ctx context.Context, resource, url string) ([]byte, bool) {
	bs, err := c.rdb.Get(ctx, c.key(resource, url)).Bytes()
	if err != nil {
		return nil, false
	}
	return bs, true
}

func (c *RedisCache) Put(ctx context.Context, resource, url string, body []byte) {
	if c.maxBody > 0 && len(body) > c.maxBody {
		return
	}
	key := c.key(resource, url)
	pipe := c.rdb.TxPipeline()
	pipe.SetEx(ctx, key, body, c.ttl)
	pipe.SAdd(ctx, c.index(resource), key)
	pipe.Expire(ctx, c.index(resource), 2*c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		logrus.WithError(err).WithField("resource", resource).Debug("cache put failed")
	}
}

func (c *RedisCache) Invalidate(ctx context.Context, resources ...string) {
	for _, resource := range resources {
		idx := c.index(resource)
		keys, err := c.rdb.SMembers(ctx, idx).Result()
		if err != nil {
			logrus.WithError(err).WithField("resource", resource).Warn("cache invalidation failed")
			continue
		}
		if err := c.rdb.Del(ctx, append(keys, idx)...).Err(); err != nil {
			logrus.WithError(err).WithField("resource", resource).Warn("cache invalidation failed")
		}
	}
}
