package usecase_sync

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/moviepair/core/internal/model"
)

const (
	maxFavorites = 200
	maxHistory   = 500
	maxComments  = 2000
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

//go:generate mockery --name=BlobRepository --output=./mocks/repository --filename=repository.go
type BlobRepository interface {
	// Load returns an empty blob for unknown users.
	Load(ctx context.Context, email string) (model.UserData, error)
	Save(ctx context.Context, email string, data model.UserData) error
}

type Usecase struct {
	repository BlobRepository
	logger     *slog.Logger
}

func New(repository BlobRepository) *Usecase {
	return &Usecase{
		repository: repository,
		logger:     slog.Default(),
	}
}

// Load returns the stored blob for the user.
func (u *Usecase) Load(ctx context.Context, email string) (model.UserData, error) {
	if email == "" {
		return model.UserData{}, ErrInvalidInput
	}

	data, err := u.repository.Load(ctx, email)
	if err != nil {
		return model.UserData{}, errors.Join(ErrInternal, err)
	}
	return data, nil
}

// Reconcile merges the incoming blob with the stored one, persists the result
// and returns it. Reconciling an already-merged blob is a no-op.
func (u *Usecase) Reconcile(ctx context.Context, email string, incoming *model.UserData) (model.UserData, error) {
	if email == "" || incoming == nil {
		return model.UserData{}, ErrInvalidInput
	}

	stored, err := u.repository.Load(ctx, email)
	if err != nil {
		return model.UserData{}, errors.Join(ErrInternal, err)
	}

	merged := Merge(stored, *incoming)
	if err := u.repository.Save(ctx, email, merged); err != nil {
		return model.UserData{}, errors.Join(ErrInternal, err)
	}
	return merged, nil
}

// Merge combines two blobs field by field. Every rule keys records by
// deterministic identity and resolves conflicts by recency, so the end state
// does not depend on which side is local and which is incoming.
func Merge(stored, incoming model.UserData) model.UserData {
	return model.UserData{
		Favorites: mergeFavorites(stored.Favorites, incoming.Favorites),
		History:   mergeHistory(stored.History, incoming.History),
		Positions: mergePositions(stored.Positions, incoming.Positions),
		Comments:  mergeComments(stored.Comments, incoming.Comments),
	}
}

// mergeFavorites keeps, per {type}-{id}, the record with the larger addedAt
// as a whole. Result sorted by addedAt descending, capped.
func mergeFavorites(stored, incoming []model.FavoriteItem) []model.FavoriteItem {
	byKey := make(map[string]model.FavoriteItem)
	order := []string{}
	for _, f := range append(append([]model.FavoriteItem{}, stored...), incoming...) {
		key := f.Key()
		prev, ok := byKey[key]
		if !ok {
			order = append(order, key)
		}
		if !ok || f.AddedAt > prev.AddedAt {
			byKey[key] = f
		}
	}

	out := make([]model.FavoriteItem, 0, len(order))
	for _, key := range order {
		out = append(out, byKey[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AddedAt > out[j].AddedAt
	})
	return capSlice(out, maxFavorites)
}

func mergeHistory(stored, incoming []model.HistoryItem) []model.HistoryItem {
	byKey := make(map[string]model.HistoryItem)
	order := []string{}
	for _, h := range append(append([]model.HistoryItem{}, stored...), incoming...) {
		key := h.Key()
		prev, ok := byKey[key]
		if !ok {
			order = append(order, key)
		}
		if !ok || h.WatchedAt > prev.WatchedAt {
			byKey[key] = h
		}
	}

	out := make([]model.HistoryItem, 0, len(order))
	for _, key := range order {
		out = append(out, byKey[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WatchedAt > out[j].WatchedAt
	})
	return capSlice(out, maxHistory)
}

// mergePositions keeps the newer savedAt per position key. Unbounded.
func mergePositions(stored, incoming map[string]model.PlaybackPosition) map[string]model.PlaybackPosition {
	out := make(map[string]model.PlaybackPosition, len(stored)+len(incoming))
	for key, pos := range stored {
		out[key] = pos
	}
	for key, pos := range incoming {
		if prev, ok := out[key]; ok && prev.SavedAt >= pos.SavedAt {
			continue
		}
		out[key] = pos
	}
	return out
}

// mergeComments deduplicates by id; an id collision is the same comment, not
// a conflict. Sorted by createdAt descending, capped.
func mergeComments(stored, incoming []model.Comment) []model.Comment {
	byID := make(map[string]model.Comment)
	order := []string{}
	for _, c := range append(append([]model.Comment{}, stored...), incoming...) {
		if _, ok := byID[c.ID]; !ok {
			order = append(order, c.ID)
		}
		byID[c.ID] = c
	}

	out := make([]model.Comment, 0, len(order))
	for _, id := range order {
		out = append(out, byID[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return capSlice(out, maxComments)
}

func capSlice[T any](list []T, limit int) []T {
	if len(list) > limit {
		return list[:limit]
	}
	return list
}
