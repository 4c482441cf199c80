package usecase_swipe

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/moviepair/core/internal/model"
	storage_keyed "github.com/moviepair/core/internal/storage/keyed"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrResourceNotFound = errors.New("no such room")
	ErrRoomFull         = errors.New("room is full")
	ErrInternal         = errors.New("internal error")
)

//go:generate mockery --name=RoomStore --output=./mocks/store --outpkg=store_mocks --filename=store.go
type RoomStore interface {
	Create(ctx context.Context, factory func(code string) model.SwipeRoom) (string, error)
	Get(ctx context.Context, code string) (model.SwipeRoom, bool, error)
	Update(ctx context.Context, code string, fn func(room *model.SwipeRoom) error) (model.SwipeRoom, error)
	Sweep(ctx context.Context) error
}

//go:generate mockery --name=MetadataProvider --output=./mocks/provider --outpkg=provider_mocks --filename=provider.go
type MetadataProvider interface {
	DiscoverMovies(ctx context.Context, q model.DiscoverQuery) ([]model.TitleSummary, error)
	DiscoverShows(ctx context.Context, q model.DiscoverQuery) ([]model.TitleSummary, error)
	Recommended(ctx context.Context, mediaType model.MediaType, id int) ([]model.TitleSummary, error)
	Similar(ctx context.Context, mediaType model.MediaType, id int) ([]model.TitleSummary, error)
}

type Usecase struct {
	store    RoomStore
	provider MetadataProvider
	logger   *slog.Logger
	now      func() time.Time
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

func New(store RoomStore, provider MetadataProvider, opts ...Option) *Usecase {
	u := &Usecase{
		store:    store,
		provider: provider,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Create allocates a room in the genres phase with the creator as its sole
// player.
func (u *Usecase) Create(ctx context.Context, playerName string) (string, model.SwipeRoom, error) {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return "", model.SwipeRoom{}, ErrInvalidInput
	}

	if err := u.store.Sweep(ctx); err != nil {
		u.logger.Warn("room sweep failed", slog.String("error", err.Error()))
	}

	var created model.SwipeRoom
	code, err := u.store.Create(ctx, func(code string) model.SwipeRoom {
		created = model.SwipeRoom{
			Code:        code,
			CreatedAt:   u.now(),
			Phase:       model.PhaseGenres,
			Players:     map[string]*model.PlayerState{playerName: model.NewPlayerState(playerName)},
			PlayerOrder: []string{playerName},
			MovieData:   map[string]model.TitleSummary{},
			MovieIDs:    []string{},
		}
		return created
	})
	if err != nil {
		return "", model.SwipeRoom{}, errors.Join(ErrInternal, err)
	}
	return code, created, nil
}

// Join registers the player under its name. Re-joining with a name already in
// the room is a no-op; a third distinct name is rejected.
func (u *Usecase) Join(ctx context.Context, code, playerName string) (model.SwipeRoom, error) {
	playerName = strings.TrimSpace(playerName)
	if code == "" || playerName == "" {
		return model.SwipeRoom{}, ErrInvalidInput
	}

	room, err := u.store.Update(ctx, code, func(room *model.SwipeRoom) error {
		if _, ok := room.Players[playerName]; ok {
			return nil
		}
		if len(room.Players) >= model.MaxPlayers {
			return ErrRoomFull
		}
		room.Players[playerName] = model.NewPlayerState(playerName)
		room.PlayerOrder = append(room.PlayerOrder, playerName)
		return nil
	})
	if err != nil {
		return model.SwipeRoom{}, u.mapStoreError(err)
	}
	return room, nil
}

// SubmitGenres records the player's genre choice. Once both players are done
// choosing, the deck is built and the room advances to the swiping phase.
func (u *Usecase) SubmitGenres(ctx context.Context, code, playerName string, genreIDs []int) (model.SwipeRoom, error) {
	if code == "" || playerName == "" {
		return model.SwipeRoom{}, ErrInvalidInput
	}
	if genreIDs == nil {
		genreIDs = []int{}
	}

	room, err := u.store.Update(ctx, code, func(room *model.SwipeRoom) error {
		player, ok := room.Player(playerName)
		if !ok {
			return ErrInvalidInput
		}
		player.Genres = genreIDs
		player.GenresDone = true
		return nil
	})
	if err != nil {
		return model.SwipeRoom{}, u.mapStoreError(err)
	}

	if room.Phase != model.PhaseGenres || !room.AllGenresDone() {
		return room, nil
	}

	// Deck construction happens outside the room lock: it is slow (provider
	// calls) and the phase check below makes it fire once.
	p1, p2 := room.Players[room.PlayerOrder[0]], room.Players[room.PlayerOrder[1]]
	deck, shared, all := u.buildDeck(ctx, p1.Genres, p2.Genres)

	room, err = u.store.Update(ctx, code, func(room *model.SwipeRoom) error {
		if room.Phase != model.PhaseGenres {
			return nil
		}
		for _, title := range deck {
			room.MovieData[title.Key()] = title
			room.MovieIDs = append(room.MovieIDs, title.Key())
		}
		room.SharedGenres = shared
		room.AllGenres = all
		room.Phase = model.PhaseSwiping
		return nil
	})
	if err != nil {
		return model.SwipeRoom{}, u.mapStoreError(err)
	}
	return room, nil
}

// Deck returns the ordered deck and the current phase.
func (u *Usecase) Deck(ctx context.Context, code string) ([]model.TitleSummary, model.Phase, error) {
	room, ok, err := u.store.Get(ctx, code)
	if err != nil {
		return nil, "", errors.Join(ErrInternal, err)
	}
	if !ok {
		return nil, "", ErrResourceNotFound
	}

	deck := make([]model.TitleSummary, 0, len(room.MovieIDs))
	for _, key := range room.MovieIDs {
		if title, ok := room.MovieData[key]; ok {
			deck = append(deck, title)
		}
	}
	return deck, room.Phase, nil
}

// Swipe appends movieKey to the player's like or dislike list. Repeated
// swipes on one key are no-ops.
func (u *Usecase) Swipe(ctx context.Context, code, playerName, movieKey string, direction model.SwipeDirection) error {
	if code == "" || playerName == "" || movieKey == "" {
		return ErrInvalidInput
	}
	if direction != model.SwipeLeft && direction != model.SwipeRight {
		return ErrInvalidInput
	}

	_, err := u.store.Update(ctx, code, func(room *model.SwipeRoom) error {
		player, ok := room.Player(playerName)
		if !ok {
			return ErrInvalidInput
		}
		if direction == model.SwipeRight {
			player.Likes = appendUnique(player.Likes, movieKey)
		} else {
			player.Dislikes = appendUnique(player.Dislikes, movieKey)
		}
		return nil
	})
	if err != nil {
		return u.mapStoreError(err)
	}
	return nil
}

// MarkDone flags the player as finished swiping; when every registered player
// is done the room advances to results.
func (u *Usecase) MarkDone(ctx context.Context, code, playerName string) (model.SwipeRoom, error) {
	if code == "" || playerName == "" {
		return model.SwipeRoom{}, ErrInvalidInput
	}

	room, err := u.store.Update(ctx, code, func(room *model.SwipeRoom) error {
		player, ok := room.Player(playerName)
		if !ok {
			return ErrInvalidInput
		}
		player.Done = true
		if room.AllDone() {
			room.Phase = model.PhaseResults
		}
		return nil
	})
	if err != nil {
		return model.SwipeRoom{}, u.mapStoreError(err)
	}
	return room, nil
}

func (u *Usecase) mapStoreError(err error) error {
	switch {
	case errors.Is(err, storage_keyed.ErrNotFound):
		return ErrResourceNotFound
	case errors.Is(err, ErrRoomFull), errors.Is(err, ErrInvalidInput):
		return err
	default:
		return errors.Join(ErrInternal, err)
	}
}

func appendUnique(list []string, key string) []string {
	for _, k := range list {
		if k == key {
			return list
		}
	}
	return append(list, key)
}
