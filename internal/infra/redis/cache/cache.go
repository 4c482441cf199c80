package infra_redis_cache

import (
	"time"

	"github.com/go-redis/redis"
)

// Driver is a namespaced TTL string cache. Backs auth sessions and catalog
// response caching.
type Driver struct {
	client *redis.Client
	key    string
}

func New(client *redis.Client, key string) *Driver {
	return &Driver{client: client, key: key}
}

func (d *Driver) Set(key string, value string, ttl time.Duration) error {
	return d.client.Set(d.fullKey(key), value, ttl).Err()
}

func (d *Driver) Get(key string) (string, error) {
	val, err := d.client.Get(d.fullKey(key)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}
	return val, nil
}

func (d *Driver) fullKey(key string) string {
	if d.key == "" {
		return key
	}
	return d.key + ":" + key
}
