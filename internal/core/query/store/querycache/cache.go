// Package querycache caches federated sub-query results by structural
// key with a per-entry lifetime.
package querycache

import (
	"time"

	"github.com/gowvp/hawk/internal/core/query"
	gocache "github.com/patrickmn/go-cache"
)

var _ query.ResultCacher = &Cache{}

type Cache struct {
	c *gocache.Cache
}

func NewCache() *Cache {
	return &Cache{
		c: gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

// Get implements query.ResultCacher.
func (c *Cache) Get(key string) (*query.Result, bool) {
	v, ok := c.c.Get(key)
	if !ok {
		return nil, false
	}
	return v.(*query.Result), true
}

// Has implements query.ResultCacher.
func (c *Cache) Has(key string) bool {
	_, ok := c.c.Get(key)
	return ok
}

// Set implements query.ResultCacher.
func (c *Cache) Set(key string, r *query.Result, ttl time.Duration) {
	c.c.Set(key, r, ttl)
}
