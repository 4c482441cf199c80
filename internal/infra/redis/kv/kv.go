package infra_redis_kv

import (
	"context"
	"strings"

	"github.com/go-redis/redis"
	storage_keyed "github.com/moviepair/core/internal/storage/keyed"
)

// Backend stores raw records under "<prefix>:<key>". Expiry stays with the
// keyed store's sweep so that all backends age records the same way.
type Backend struct {
	client *redis.Client
	prefix string
}

func New(client *redis.Client, prefix string) *Backend {
	return &Backend{client: client, prefix: prefix}
}

func (b *Backend) Get(_ context.Context, key string) ([]byte, error) {
	raw, err := b.client.Get(b.fullKey(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, storage_keyed.ErrNotFound
		}
		return nil, err
	}
	return raw, nil
}

func (b *Backend) Put(_ context.Context, key string, value []byte) error {
	return b.client.Set(b.fullKey(key), value, 0).Err()
}

func (b *Backend) Delete(_ context.Context, key string) error {
	n, err := b.client.Del(b.fullKey(key)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage_keyed.ErrNotFound
	}
	return nil
}

func (b *Backend) Keys(_ context.Context) ([]string, error) {
	full, err := b.client.Keys(b.fullKey("*")).Result()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(full))
	for _, k := range full {
		keys = append(keys, strings.TrimPrefix(k, b.prefix+":"))
	}
	return keys, nil
}

func (b *Backend) fullKey(key string) string {
	if b.prefix == "" {
		return key
	}
	return b.prefix + ":" + key
}
