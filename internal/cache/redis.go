package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces all cache keys in Redis to avoid collisions with other
// tenants of the same database.
const keyPrefix = "tscache:"

// opTimeout bounds individual Redis round trips so a slow cache never stalls
// a catalog lookup for longer than the lookup itself would take.
const opTimeout = 2 * time.Second

func init() {
	Register("redis", newRedisCache)
}

// redisCache implements the Cache interface over Redis/Valkey. Entries are
// plain SET/GET with per-key TTL; eviction of the oldest entries is left to
// the server's maxmemory policy, which suits a read-through response cache.
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func newRedisCache(opts Options) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.RedisAddress,
		Password: opts.RedisPassword,
		DB:       opts.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &redisCache{client: client, ttl: opts.TTL}, nil
}

func (r *redisCache) Get(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	val, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		// redis.Nil is an ordinary miss; anything else degrades to a miss too.
		return nil, false
	}
	return val, true
}

func (r *redisCache) Set(key string, value []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_ = r.client.Set(ctx, keyPrefix+key, value, r.ttl).Err()
}

func (r *redisCache) Len() int {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	count, err := r.client.DBSize(ctx).Result()
	if err != nil {
		return 0
	}
	return int(count)
}

func (r *redisCache) Close() error {
	err := r.client.Close()
	if err != nil && !errors.Is(err, redis.ErrClosed) {
		return err
	}
	return nil
}
