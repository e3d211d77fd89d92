package cache

import (
	"time"

	"houses-api/entities"

	"github.com/jellydator/ttlcache/v3"
)

// UserCache keeps recently resolved users so authenticated requests skip a
// database round-trip.
type UserCache struct {
	items *ttlcache.Cache[string, entities.User]
}

func NewUserCache(ttl time.Duration) *UserCache {
	return &UserCache{
		items: ttlcache.New(
			ttlcache.WithTTL[string, entities.User](ttl),
			ttlcache.WithDisableTouchOnHit[string, entities.User](),
		),
	}
}

// Start runs expired-item cleanup until Stop is called.
func (c *UserCache) Start() { go c.items.Start() }

func (c *UserCache) Stop() { c.items.Stop() }

func (c *UserCache) Get(id string) (*entities.User, bool) {
	item := c.items.Get(id)
	if item == nil {
		return nil, false
	}
	u := item.Value()
	return &u, true
}

func (c *UserCache) Set(u *entities.User) {
	c.items.Set(u.ID, *u, ttlcache.DefaultTTL)
}

func (c *UserCache) Delete(id string) {
	c.items.Delete(id)
}

func (c *UserCache) Len() int {
	return c.items.Len()
}

// Flush drops every cached user.
func (c *UserCache) Flush() {
	c.items.DeleteAll()
}
