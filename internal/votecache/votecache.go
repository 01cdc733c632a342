package votecache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/mkarpushin/board/internal/config"
)

// DefaultTTL bounds staleness when an invalidation is lost.
const DefaultTTL = 10 * time.Minute

// Open connects to redis and verifies the connection.
func Open(conf config.RedisConf) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
		PoolSize: conf.PoolSize,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return client, nil
}

// Cache is a read-through cache for per-article voter counts. The
// database stays the source of truth; the cache only spares a COUNT
// on hot article pages.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Cache{rdb: rdb, ttl: ttl}
}

// Key builds the redis key for an article's voter count.
func Key(articleID uint) string {
	return fmt.Sprintf("board:votes:%d", articleID)
}

// Get returns the cached count and whether it was present.
func (c *Cache) Get(ctx context.Context, articleID uint) (int64, bool, error) {
	n, err := c.rdb.Get(ctx, Key(articleID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	return n, true, nil
}

func (c *Cache) Put(ctx context.Context, articleID uint, count int64) error {
	return c.rdb.Set(ctx, Key(articleID), count, c.ttl).Err()
}

func (c *Cache) Invalidate(ctx context.Context, articleID uint) error {
	return c.rdb.Del(ctx, Key(articleID)).Err()
}
