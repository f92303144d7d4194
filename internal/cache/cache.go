package cache

import (
	"time"

	"github.com/morelia/expodesk/internal/syncx"
	"github.com/pkg/errors"
)

// Cache keeps recent platform API list responses for a short while so
// that flipping between dashboard pages does not hammer the backend.
// Entries are owned by the access token that fetched them and are
// purged together on logout.
type Cache struct {
	ttl     time.Duration
	entries syncx.Map[string, entry]
	now     func() time.Time
}

type entry struct {
	owner     string
	value     any
	expiresAt time.Time
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl: ttl,
		now: time.Now,
	}
}

func (c *Cache) Get(owner, key string) (any, bool) {
	item, ok := c.entries.Load(cacheKey(owner, key))
	if !ok {
		return nil, false
	}

	if c.now().After(item.expiresAt) {
		c.entries.Delete(cacheKey(owner, key))
		return nil, false
	}

	return item.value, true
}

func (c *Cache) Set(owner, key string, value any) {
	c.entries.Store(cacheKey(owner, key), entry{
		owner:     owner,
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	})
}

// PurgeOwner drops every entry fetched with the given token.
func (c *Cache) PurgeOwner(owner string) {
	c.entries.Range(func(key string, item entry) bool {
		if item.owner == owner {
			c.entries.Delete(key)
		}

		return true
	})
}

func cacheKey(owner, key string) string {
	return owner + "\x00" + key
}

// Fetch returns the cached value under (owner, key) or computes, stores
// and returns a fresh one. Failures are never cached.
func Fetch[T any](c *Cache, owner, key string, fn func() (T, error)) (T, error) {
	if raw, ok := c.Get(owner, key); ok {
		if value, ok := raw.(T); ok {
			return value, nil
		}
	}

	value, err := fn()
	if err != nil {
		return value, errors.WithStack(err)
	}

	c.Set(owner, key, value)

	return value, nil
}
