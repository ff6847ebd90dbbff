package lcache

import (
	"github.com/ValentinKolb/dEnv/lib/cache"
	"github.com/puzpuzpuz/xsync/v3"
	"time"
)

// entry is a cached value with an optional deadline. A zero expiresAt never expires.
type entry struct {
	value     string
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

type localCache struct {
	data *xsync.MapOf[string, entry]
	now  func() time.Time
}

// Option configures the local cache.
type Option func(*localCache)

// WithClock replaces time.Now, used for expiry decisions.
func WithClock(now func() time.Time) Option {
	return func(c *localCache) {
		c.now = now
	}
}

// New creates an empty in-process cache.
func New(opts ...Option) cache.ICache {
	c := &localCache{
		data: xsync.NewMapOf[string, entry](),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// --------------------------------------------------------------------------
// Interface Methods (docu see cache/interface.go)
// --------------------------------------------------------------------------

func (c *localCache) Get(key string) (string, bool, error) {
	e, ok := c.data.Load(key)
	if !ok {
		return "", false, nil
	}
	if e.expired(c.now()) {
		c.evict(key, e)
		return "", false, nil
	}
	return e.value, true, nil
}

func (c *localCache) Set(key, value string, opts cache.SetOptions) error {
	if opts.Expire < 0 {
		return cache.NewError(cache.RetCInvalidOperation, "negative expiry for "+key, nil)
	}

	now := c.now()
	e := entry{value: value}
	if opts.Expire > 0 {
		e.expiresAt = now.Add(opts.Expire)
	}

	if !opts.NotExists {
		c.data.Store(key, e)
		return nil
	}

	c.data.Compute(key, func(old entry, loaded bool) (entry, bool) {
		if loaded && !old.expired(now) {
			return old, false
		}
		return e, false
	})
	return nil
}

func (c *localCache) Delete(key string) error {
	c.data.Delete(key)
	return nil
}

// evict removes key only if it still holds e. A concurrent Set may have
// replaced it and a concurrent Delete may have removed it already.
func (c *localCache) evict(key string, e entry) {
	c.data.Compute(key, func(old entry, loaded bool) (entry, bool) {
		return old, !loaded || old == e
	})
}

func (c *localCache) Close() error {
	c.data.Clear()
	return nil
}
