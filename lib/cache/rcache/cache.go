package rcache

import (
	"context"
	"errors"
	"github.com/ValentinKolb/dEnv/lib/cache"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/redis/go-redis/v9"
	"time"
)

var Logger = logger.GetLogger("cache")

// DefaultTimeout bounds a single redis round trip if Options.Timeout is zero.
const DefaultTimeout = 5 * time.Second

// Options configures the redis backed cache.
type Options struct {
	Addr     string
	Password string
	DB       int
	// Prefix is prepended to every key
	Prefix string
	// Timeout bounds every operation, DefaultTimeout if zero
	Timeout time.Duration
}

type redisCache struct {
	client  redis.UniversalClient
	prefix  string
	timeout time.Duration
	owned   bool
}

// New connects to the redis server described by opts. The connection is
// established lazily, an unreachable server surfaces as RetCUnavailable
// errors on the individual operations.
func New(opts Options) cache.ICache {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	c := NewFromClient(client, opts.Prefix, opts.Timeout).(*redisCache)
	c.owned = true
	return c
}

// NewFromClient wraps an existing client. The caller keeps ownership of the
// client, Close does not close it.
func NewFromClient(client redis.UniversalClient, prefix string, timeout time.Duration) cache.ICache {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &redisCache{
		client:  client,
		prefix:  prefix,
		timeout: timeout,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see cache/interface.go)
// --------------------------------------------------------------------------

func (c *redisCache) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	val, err := c.client.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		Logger.Debugf("GET %s failed: %v", key, err)
		return "", false, cache.NewError(cache.RetCUnavailable, "GET "+key, err)
	}
	return val, true, nil
}

func (c *redisCache) Set(key, value string, opts cache.SetOptions) error {
	if opts.Expire < 0 {
		return cache.NewError(cache.RetCInvalidOperation, "negative expiry for "+key, nil)
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	var err error
	if opts.NotExists {
		// SETNX reports false for an existing key, which is not an error
		err = c.client.SetNX(ctx, c.prefix+key, value, opts.Expire).Err()
	} else {
		err = c.client.Set(ctx, c.prefix+key, value, opts.Expire).Err()
	}
	if err != nil {
		Logger.Debugf("SET %s failed: %v", key, err)
		return cache.NewError(cache.RetCUnavailable, "SET "+key, err)
	}
	return nil
}

func (c *redisCache) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		Logger.Debugf("DEL %s failed: %v", key, err)
		return cache.NewError(cache.RetCUnavailable, "DEL "+key, err)
	}
	return nil
}

func (c *redisCache) Close() error {
	if !c.owned {
		return nil
	}
	return c.client.Close()
}
