package infra_memory

import (
	"sync"
	"time"
)

type cacheItem struct {
	value string
	exp   time.Time
}

// Cache is a TTL string cache for deployments without redis.
type Cache struct {
	mu   sync.RWMutex
	data map[string]cacheItem
}

func NewCache() *Cache {
	return &Cache{data: make(map[string]cacheItem)}
}

func (c *Cache) Set(key string, value string, ttl time.Duration) error {
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}

	c.mu.Lock()
	c.data[key] = cacheItem{value: value, exp: exp}
	c.mu.Unlock()
	return nil
}

func (c *Cache) Get(key string) (string, error) {
	c.mu.RLock()
	it, ok := c.data[key]
	c.mu.RUnlock()

	if !ok {
		return "", nil
	}
	if !it.exp.IsZero() && time.Now().After(it.exp) {
		c.mu.Lock()
		delete(c.data, key)
		c.mu.Unlock()
		return "", nil
	}
	return it.value, nil
}
