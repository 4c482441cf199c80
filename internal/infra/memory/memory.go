package infra_memory

import (
	"context"
	"sync"

	storage_keyed "github.com/moviepair/core/internal/storage/keyed"
)

// Backend is the in-process map implementation of storage_keyed.Backend.
type Backend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func New() *Backend {
	return &Backend{data: make(map[string][]byte)}
}

func (b *Backend) Get(_ context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	raw, ok := b.data[key]
	if !ok {
		return nil, storage_keyed.ErrNotFound
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

func (b *Backend) Put(_ context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	b.data[key] = stored
	return nil
}

func (b *Backend) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.data, key)
	return nil
}

func (b *Backend) Keys(_ context.Context) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	keys := make([]string, 0, len(b.data))
	for key := range b.data {
		keys = append(keys, key)
	}
	return keys, nil
}
