package storage_keyed

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"
)

var (
	ErrNotFound = errors.New("no such key")
)

// Backend persists raw records under string keys. Implementations live in
// internal/infra (memory map, flat-file directory, redis).
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

type Config struct {
	// Alphabet and CodeLen drive generated codes. NoLeadingZero keeps the
	// first character off the zero position of the alphabet.
	Alphabet      string
	CodeLen       int
	NoLeadingZero bool

	// TTL of zero means records never expire.
	TTL time.Duration

	// Normalize is applied to every incoming key (both reads and writes).
	Normalize func(string) string
}

type envelope[T any] struct {
	CreatedAt time.Time `json:"createdAt"`
	Record    T         `json:"record"`
}

// Store is a code-addressed store of short-lived session records. All
// mutations of one key are serialized through a per-key mutex, so concurrent
// read-modify-writes cannot silently overwrite each other.
type Store[T any] struct {
	backend Backend
	cfg     Config
	now     func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

type Option[T any] func(*Store[T])

// WithClock replaces the time source. Tests use it to force expiry.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(s *Store[T]) {
		s.now = now
	}
}

func New[T any](backend Backend, cfg Config, opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		backend: backend,
		cfg:     cfg,
		now:     time.Now,
		locks:   make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create generates a fresh code, builds the record through factory and
// persists it. Generation retries until the code collides with no live
// record; the alphabet bounds the retry count in practice.
func (s *Store[T]) Create(ctx context.Context, factory func(code string) T) (string, error) {
	for {
		code := s.buildCode()
		if _, ok, err := s.Get(ctx, code); err != nil {
			return "", err
		} else if ok {
			continue
		}
		if err := s.Save(ctx, code, factory(code)); err != nil {
			return "", err
		}
		return code, nil
	}
}

// Get returns the record under code, reporting ok=false when the code is
// unknown, expired or holds an unreadable record.
func (s *Store[T]) Get(ctx context.Context, code string) (T, bool, error) {
	var zero T

	env, ok, err := s.getEnvelope(ctx, s.normalize(code))
	if err != nil || !ok {
		return zero, false, err
	}
	if s.expired(env.CreatedAt) {
		return zero, false, nil
	}
	return env.Record, true, nil
}

// Save overwrites the record under code, keeping the original creation time
// so that a save never extends a record's lifetime.
func (s *Store[T]) Save(ctx context.Context, code string, record T) error {
	code = s.normalize(code)

	createdAt := s.now()
	if env, ok, err := s.getEnvelope(ctx, code); err != nil {
		return err
	} else if ok && !s.expired(env.CreatedAt) {
		createdAt = env.CreatedAt
	}

	raw, err := json.Marshal(envelope[T]{CreatedAt: createdAt, Record: record})
	if err != nil {
		return err
	}
	return s.backend.Put(ctx, code, raw)
}

// Update runs fn against the record under code and persists the result.
// Returns ErrNotFound for unknown or expired codes.
func (s *Store[T]) Update(ctx context.Context, code string, fn func(record *T) error) (T, error) {
	var zero T
	code = s.normalize(code)

	lock := s.lockFor(code)
	lock.Lock()
	defer lock.Unlock()

	record, ok, err := s.Get(ctx, code)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, ErrNotFound
	}
	if err := fn(&record); err != nil {
		return zero, err
	}
	if err := s.Save(ctx, code, record); err != nil {
		return zero, err
	}
	return record, nil
}

// Sweep deletes every record older than the configured TTL.
func (s *Store[T]) Sweep(ctx context.Context) error {
	if s.cfg.TTL <= 0 {
		return nil
	}

	keys, err := s.backend.Keys(ctx)
	if err != nil {
		return err
	}
	for _, key := range keys {
		env, ok, err := s.getEnvelope(ctx, key)
		if err != nil {
			return err
		}
		if ok && !s.expired(env.CreatedAt) {
			continue
		}
		if err := s.backend.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}
	return nil
}

func (s *Store[T]) Delete(ctx context.Context, code string) error {
	err := s.backend.Delete(ctx, s.normalize(code))
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

func (s *Store[T]) getEnvelope(ctx context.Context, code string) (envelope[T], bool, error) {
	var env envelope[T]

	raw, err := s.backend.Get(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return env, false, nil
		}
		return env, false, err
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		// Unreadable record counts as absent.
		return env, false, nil
	}
	return env, true, nil
}

func (s *Store[T]) expired(createdAt time.Time) bool {
	return s.cfg.TTL > 0 && s.now().Sub(createdAt) > s.cfg.TTL
}

func (s *Store[T]) normalize(code string) string {
	if s.cfg.Normalize != nil {
		return s.cfg.Normalize(code)
	}
	return code
}

func (s *Store[T]) lockFor(code string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[code]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[code] = lock
	}
	return lock
}

func (s *Store[T]) buildCode() string {
	var builder strings.Builder
	builder.Grow(s.cfg.CodeLen)

	for i := range s.cfg.CodeLen {
		n := len(s.cfg.Alphabet)
		idx := rand.Intn(n)
		if i == 0 && s.cfg.NoLeadingZero {
			idx = rand.Intn(n-1) + 1
		}
		builder.WriteByte(s.cfg.Alphabet[idx])
	}

	return s.normalize(builder.String())
}
