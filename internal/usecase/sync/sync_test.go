package usecase_sync

import (
	"context"
	"fmt"
	"testing"

	infra_blob "github.com/moviepair/core/internal/infra/blob"
	infra_memory "github.com/moviepair/core/internal/infra/memory"
	"github.com/moviepair/core/internal/model"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type SyncUsecaseSuite struct {
	suite.Suite
}

func initSyncUsecase() *Usecase {
	return New(infra_blob.New(infra_memory.New()))
}

func fav(id int, addedAt int64, title string) model.FavoriteItem {
	return model.FavoriteItem{ID: id, Type: model.MediaTypeMovie, Title: title, AddedAt: addedAt}
}

func hist(id, season, episode int, watchedAt int64, progress float64) model.HistoryItem {
	return model.HistoryItem{
		ID: id, Type: model.MediaTypeTV,
		Season: season, Episode: episode,
		WatchedAt: watchedAt, Progress: progress,
	}
}

func comment(id string, createdAt int64) model.Comment {
	return model.Comment{ID: id, MediaID: 1, MediaType: model.MediaTypeMovie, Text: "t", CreatedAt: createdAt}
}

func (s *SyncUsecaseSuite) TestMergeFavorites(t provider.T) {
	t.Parallel()

	stored := model.UserData{Favorites: []model.FavoriteItem{
		fav(1, 100, "stored one"),
		fav(2, 300, "stored two"),
	}}
	incoming := model.UserData{Favorites: []model.FavoriteItem{
		fav(1, 200, "newer one"),
		fav(3, 250, "fresh three"),
	}}

	merged := Merge(stored, incoming)

	assert.Len(t, merged.Favorites, 3)
	// Sorted by addedAt descending.
	assert.Equal(t, 2, merged.Favorites[0].ID)
	assert.Equal(t, 3, merged.Favorites[1].ID)
	assert.Equal(t, 1, merged.Favorites[2].ID)
	// The record with the larger addedAt wins as a whole.
	assert.Equal(t, "newer one", merged.Favorites[2].Title)
}

func (s *SyncUsecaseSuite) TestMergeFavoritesTieKeepsStored(t provider.T) {
	t.Parallel()

	stored := model.UserData{Favorites: []model.FavoriteItem{fav(1, 100, "stored")}}
	incoming := model.UserData{Favorites: []model.FavoriteItem{fav(1, 100, "incoming")}}

	merged := Merge(stored, incoming)
	assert.Len(t, merged.Favorites, 1)
	assert.Equal(t, "stored", merged.Favorites[0].Title)
}

func (s *SyncUsecaseSuite) TestMergeHistoryKeyedPerEpisode(t provider.T) {
	t.Parallel()

	stored := model.UserData{History: []model.HistoryItem{
		hist(9, 1, 1, 100, 0.5),
		hist(9, 1, 2, 150, 0.2),
	}}
	incoming := model.UserData{History: []model.HistoryItem{
		hist(9, 1, 1, 200, 0.9), // same episode, newer
		hist(9, 2, 1, 120, 0.1), // different season
	}}

	merged := Merge(stored, incoming)

	assert.Len(t, merged.History, 3)
	byKey := map[string]model.HistoryItem{}
	for _, h := range merged.History {
		byKey[h.Key()] = h
	}
	assert.Equal(t, 0.9, byKey["tv-9-1-1"].Progress)
	assert.Equal(t, 0.2, byKey["tv-9-1-2"].Progress)
	assert.Equal(t, 0.1, byKey["tv-9-2-1"].Progress)
}

func (s *SyncUsecaseSuite) TestMergePositions(t provider.T) {
	t.Parallel()

	stored := model.UserData{Positions: map[string]model.PlaybackPosition{
		"movie-1":  {Time: 10, SavedAt: 100},
		"tv-2-1-3": {Time: 99, SavedAt: 500},
	}}
	incoming := model.UserData{Positions: map[string]model.PlaybackPosition{
		"movie-1":  {Time: 20, SavedAt: 200},
		"tv-2-1-3": {Time: 5, SavedAt: 400}, // older, must lose
		"movie-7":  {Time: 1, SavedAt: 50},
	}}

	merged := Merge(stored, incoming)

	assert.Len(t, merged.Positions, 3)
	assert.Equal(t, float64(20), merged.Positions["movie-1"].Time)
	assert.Equal(t, float64(99), merged.Positions["tv-2-1-3"].Time)
	assert.Equal(t, float64(1), merged.Positions["movie-7"].Time)
}

func (s *SyncUsecaseSuite) TestMergeCommentsDedupByID(t provider.T) {
	t.Parallel()

	stored := model.UserData{Comments: []model.Comment{comment("a", 100), comment("b", 300)}}
	incoming := model.UserData{Comments: []model.Comment{comment("a", 100), comment("c", 200)}}

	merged := Merge(stored, incoming)

	assert.Len(t, merged.Comments, 3)
	assert.Equal(t, "b", merged.Comments[0].ID)
	assert.Equal(t, "c", merged.Comments[1].ID)
	assert.Equal(t, "a", merged.Comments[2].ID)
}

func (s *SyncUsecaseSuite) TestMergeCaps(t provider.T) {
	t.Parallel()

	many := model.UserData{}
	for i := range maxFavorites + 50 {
		many.Favorites = append(many.Favorites, fav(i, int64(i), "f"))
	}

	merged := Merge(model.UserData{}, many)

	assert.Len(t, merged.Favorites, maxFavorites)
	// The cap drops the oldest entries.
	assert.Equal(t, int64(maxFavorites+49), merged.Favorites[0].AddedAt)
	assert.Equal(t, int64(50), merged.Favorites[maxFavorites-1].AddedAt)
}

func (s *SyncUsecaseSuite) TestMergeIsIdempotent(t provider.T) {
	t.Parallel()

	data := model.UserData{
		Favorites: []model.FavoriteItem{fav(1, 100, "one"), fav(2, 200, "two")},
		History:   []model.HistoryItem{hist(9, 1, 1, 100, 0.5)},
		Positions: map[string]model.PlaybackPosition{"movie-1": {Time: 10, SavedAt: 100}},
		Comments:  []model.Comment{comment("a", 100)},
	}

	once := Merge(model.UserData{}, data)
	twice := Merge(once, data)

	assert.Equal(t, once, twice)
}

func (s *SyncUsecaseSuite) TestReconcileRoundTrip(t provider.T) {
	t.Parallel()

	ctx := context.Background()
	usecase := initSyncUsecase()

	deviceA := model.NewUserData()
	deviceA.Favorites = []model.FavoriteItem{fav(1, 100, "from A")}

	merged, err := usecase.Reconcile(ctx, "user@example.com", &deviceA)
	assert.NoError(t, err)
	assert.Len(t, merged.Favorites, 1)

	deviceB := model.NewUserData()
	deviceB.Favorites = []model.FavoriteItem{fav(2, 200, "from B")}

	merged, err = usecase.Reconcile(ctx, "user@example.com", &deviceB)
	assert.NoError(t, err)
	assert.Len(t, merged.Favorites, 2)

	loaded, err := usecase.Load(ctx, "user@example.com")
	assert.NoError(t, err)
	assert.Equal(t, merged, loaded)

	// Accounts stay isolated.
	other, err := usecase.Load(ctx, "other@example.com")
	assert.NoError(t, err)
	assert.Empty(t, other.Favorites)
}

func (s *SyncUsecaseSuite) TestReconcileValidation(t provider.T) {
	t.Parallel()

	ctx := context.Background()
	usecase := initSyncUsecase()

	data := model.NewUserData()
	_, err := usecase.Reconcile(ctx, "", &data)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = usecase.Reconcile(ctx, "user@example.com", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = usecase.Load(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func (s *SyncUsecaseSuite) TestReconcileConcurrentDevices(t provider.T) {
	t.Parallel()

	ctx := context.Background()
	usecase := initSyncUsecase()

	done := make(chan struct{})
	for device := range 4 {
		go func() {
			defer func() { done <- struct{}{} }()
			data := model.NewUserData()
			data.Favorites = []model.FavoriteItem{fav(device, int64(device+1), fmt.Sprintf("device %d", device))}
			_, err := usecase.Reconcile(ctx, "user@example.com", &data)
			assert.NoError(t, err)
		}()
	}
	for range 4 {
		<-done
	}
}

func TestSyncUsecaseSuite(t *testing.T) {
	suite.RunSuite(t, new(SyncUsecaseSuite))
}
