package usecase_cast

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/moviepair/core/internal/model"
	storage_keyed "github.com/moviepair/core/internal/storage/keyed"
)

var (
	ErrResourceNotFound = errors.New("no such room")
	ErrInternal         = errors.New("internal error")
)

//go:generate mockery --name=RoomStore --output=./mocks/store --filename=store.go
type RoomStore interface {
	Create(ctx context.Context, factory func(code string) model.CastRoom) (string, error)
	Get(ctx context.Context, code string) (model.CastRoom, bool, error)
	Update(ctx context.Context, code string, fn func(room *model.CastRoom) error) (model.CastRoom, error)
	Sweep(ctx context.Context) error
}

// Usecase pairs a sending device with a receiving one through a short numeric
// code. Expiry is enforced lazily: every operation sweeps first.
type Usecase struct {
	store  RoomStore
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Usecase)

func WithLogger(logger *slog.Logger) Option {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(u *Usecase) {
		u.now = now
	}
}

func New(store RoomStore, opts ...Option) *Usecase {
	u := &Usecase{
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Create publishes the sender's playback descriptor under a fresh code.
func (u *Usecase) Create(ctx context.Context, stream json.RawMessage) (string, error) {
	u.sweep(ctx)

	code, err := u.store.Create(ctx, func(code string) model.CastRoom {
		return model.CastRoom{
			Code:      code,
			Stream:    stream,
			CreatedAt: u.now(),
		}
	})
	if err != nil {
		return "", errors.Join(ErrInternal, err)
	}
	return code, nil
}

// Join hands the descriptor to the receiver and flags the room connected.
// Repeated joins simply re-flag it.
func (u *Usecase) Join(ctx context.Context, code string) (json.RawMessage, error) {
	u.sweep(ctx)

	room, err := u.store.Update(ctx, code, func(room *model.CastRoom) error {
		room.Connected = true
		return nil
	})
	if err != nil {
		if errors.Is(err, storage_keyed.ErrNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, errors.Join(ErrInternal, err)
	}
	return room.Stream, nil
}

// Status reports the connected flag. Unknown or expired codes come back as
// expired rather than an error so that polling stays cheap.
func (u *Usecase) Status(ctx context.Context, code string) (connected bool, expired bool) {
	u.sweep(ctx)

	room, ok, err := u.store.Get(ctx, code)
	if err != nil {
		u.logger.Error("cast status lookup failed", slog.String("error", err.Error()))
		return false, true
	}
	if !ok {
		return false, true
	}
	return room.Connected, false
}

func (u *Usecase) sweep(ctx context.Context) {
	if err := u.store.Sweep(ctx); err != nil {
		u.logger.Warn("cast sweep failed", slog.String("error", err.Error()))
	}
}
