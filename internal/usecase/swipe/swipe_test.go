package usecase_swipe

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	infra_memory "github.com/moviepair/core/internal/infra/memory"
	"github.com/moviepair/core/internal/model"
	storage_keyed "github.com/moviepair/core/internal/storage/keyed"
	provider_mocks "github.com/moviepair/core/internal/usecase/swipe/mocks/provider"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type SwipeUsecaseSuite struct {
	suite.Suite
}

type swipeResources struct {
	usecase  *Usecase
	provider *provider_mocks.MetadataProvider
	ctx      context.Context
}

func initSwipeResources(t provider.T) *swipeResources {
	metadata := provider_mocks.NewMetadataProvider(t)
	store := storage_keyed.New[model.SwipeRoom](infra_memory.New(), storage_keyed.Config{
		Alphabet: "ABCDEFGHJKLMNPQRSTUVWXYZ23456789",
		CodeLen:  5,
		TTL:      24 * time.Hour,
	})
	return &swipeResources{
		usecase:  New(store, metadata),
		provider: metadata,
		ctx:      context.Background(),
	}
}

func movieTitle(id int, poster string) model.TitleSummary {
	return model.TitleSummary{
		ID:          id,
		Title:       fmt.Sprintf("Movie %d", id),
		PosterPath:  poster,
		VoteAverage: float64(id%10) + 0.5,
		Type:        model.MediaTypeMovie,
	}
}

func showTitle(id int) model.TitleSummary {
	return model.TitleSummary{
		ID:          id,
		Title:       fmt.Sprintf("Show %d", id),
		PosterPath:  "/poster.jpg",
		VoteAverage: 7.0,
		Type:        model.MediaTypeTV,
	}
}

func titles(from, count int) []model.TitleSummary {
	out := make([]model.TitleSummary, 0, count)
	for i := range count {
		out = append(out, movieTitle(from+i, "/poster.jpg"))
	}
	return out
}

func (r *swipeResources) stubEmptyDeck() {
	r.provider.On("DiscoverMovies", mock.Anything, mock.Anything).Return([]model.TitleSummary{}, nil).Maybe()
	r.provider.On("DiscoverShows", mock.Anything, mock.Anything).Return([]model.TitleSummary{}, nil).Maybe()
}

func (s *SwipeUsecaseSuite) TestCreate(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		playerName    string
		expectedError error
	}{
		{name: "Should create room in genres phase", playerName: "alice"},
		{name: "Should trim surrounding spaces", playerName: "  alice  "},
		{name: "Should reject empty name", playerName: "   ", expectedError: ErrInvalidInput},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initSwipeResources(t)

			code, room, err := r.usecase.Create(r.ctx, tc.playerName)

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, code, 5)
			assert.Equal(t, model.PhaseGenres, room.Phase)
			assert.Equal(t, []string{"alice"}, room.PlayerOrder)
			assert.Contains(t, room.Players, "alice")
		})
	}
}

func (s *SwipeUsecaseSuite) TestJoin(t provider.T) {
	t.Parallel()

	r := initSwipeResources(t)
	code, _, err := r.usecase.Create(r.ctx, "alice")
	assert.NoError(t, err)

	room, err := r.usecase.Join(r.ctx, code, "bob")
	assert.NoError(t, err)
	assert.True(t, room.BothJoined())
	assert.Equal(t, []string{"alice", "bob"}, room.PlayerOrder)

	// Re-joining under a known name is a no-op.
	room, err = r.usecase.Join(r.ctx, code, "bob")
	assert.NoError(t, err)
	assert.Len(t, room.Players, 2)

	_, err = r.usecase.Join(r.ctx, code, "carol")
	assert.ErrorIs(t, err, ErrRoomFull)

	_, err = r.usecase.Join(r.ctx, "ZZZZZ", "dave")
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func (s *SwipeUsecaseSuite) TestSubmitGenresBuildsDeck(t provider.T) {
	t.Parallel()

	r := initSwipeResources(t)

	sharedMovies := titles(100, 25)
	sharedMovies = append(sharedMovies, movieTitle(999, "")) // no poster, must be dropped
	sharedShows := []model.TitleSummary{showTitle(500), showTitle(501)}
	broaderMovies := titles(200, 25)
	// Key collision with the shared pool: dedup keeps the shared copy.
	broaderMovies = append(broaderMovies, movieTitle(100, "/poster.jpg"))

	matchAll := func(q model.DiscoverQuery) bool { return q.MatchAll }
	broader := func(q model.DiscoverQuery) bool { return !q.MatchAll }

	r.provider.On("DiscoverMovies", mock.Anything, mock.MatchedBy(matchAll)).Return(sharedMovies, nil)
	r.provider.On("DiscoverShows", mock.Anything, mock.MatchedBy(matchAll)).Return(sharedShows, nil)
	r.provider.On("DiscoverMovies", mock.Anything, mock.MatchedBy(broader)).Return(broaderMovies, nil)
	r.provider.On("DiscoverShows", mock.Anything, mock.MatchedBy(broader)).Return([]model.TitleSummary{}, nil)

	code, _, err := r.usecase.Create(r.ctx, "alice")
	assert.NoError(t, err)
	_, err = r.usecase.Join(r.ctx, code, "bob")
	assert.NoError(t, err)

	room, err := r.usecase.SubmitGenres(r.ctx, code, "alice", []int{28, 35})
	assert.NoError(t, err)
	assert.Equal(t, model.PhaseGenres, room.Phase)
	assert.Empty(t, room.MovieIDs)

	room, err = r.usecase.SubmitGenres(r.ctx, code, "bob", []int{35, 18})
	assert.NoError(t, err)
	assert.Equal(t, model.PhaseSwiping, room.Phase)
	assert.Equal(t, []int{35}, room.SharedGenres)
	assert.Equal(t, []int{28, 35, 18}, room.AllGenres)

	deck, phase, err := r.usecase.Deck(r.ctx, code)
	assert.NoError(t, err)
	assert.Equal(t, model.PhaseSwiping, phase)
	assert.LessOrEqual(t, len(deck), deckMaxSize)
	assert.NotEmpty(t, deck)

	seen := map[string]struct{}{}
	for _, title := range deck {
		assert.NotEmpty(t, title.PosterPath)
		_, dup := seen[title.Key()]
		assert.False(t, dup, "deck holds %s twice", title.Key())
		seen[title.Key()] = struct{}{}
	}
	// Shared overlap exists, so the deck opens with a shared-genre title.
	assert.True(t, deck[0].SharedGenre)
}

func (s *SwipeUsecaseSuite) TestSubmitGenresNoOverlap(t provider.T) {
	t.Parallel()

	r := initSwipeResources(t)
	r.provider.On("DiscoverMovies", mock.Anything, mock.MatchedBy(func(q model.DiscoverQuery) bool {
		return !q.MatchAll
	})).Return(titles(300, 10), nil)
	r.provider.On("DiscoverShows", mock.Anything, mock.Anything).Return([]model.TitleSummary{}, nil)

	code, _, err := r.usecase.Create(r.ctx, "alice")
	assert.NoError(t, err)
	_, err = r.usecase.Join(r.ctx, code, "bob")
	assert.NoError(t, err)

	_, err = r.usecase.SubmitGenres(r.ctx, code, "alice", []int{28})
	assert.NoError(t, err)
	room, err := r.usecase.SubmitGenres(r.ctx, code, "bob", []int{18})
	assert.NoError(t, err)

	assert.Equal(t, model.PhaseSwiping, room.Phase)
	assert.Empty(t, room.SharedGenres)
	assert.NotEmpty(t, room.MovieIDs)
	for _, key := range room.MovieIDs {
		assert.False(t, room.MovieData[key].SharedGenre)
	}
}

func (s *SwipeUsecaseSuite) TestProviderFailureDegradesDeck(t provider.T) {
	t.Parallel()

	r := initSwipeResources(t)
	r.provider.On("DiscoverMovies", mock.Anything, mock.Anything).Return(nil, errors.New("upstream down"))
	r.provider.On("DiscoverShows", mock.Anything, mock.Anything).Return(nil, errors.New("upstream down"))

	code, _, err := r.usecase.Create(r.ctx, "alice")
	assert.NoError(t, err)
	_, err = r.usecase.Join(r.ctx, code, "bob")
	assert.NoError(t, err)
	_, err = r.usecase.SubmitGenres(r.ctx, code, "alice", []int{28})
	assert.NoError(t, err)

	room, err := r.usecase.SubmitGenres(r.ctx, code, "bob", []int{28})
	assert.NoError(t, err)
	assert.Equal(t, model.PhaseSwiping, room.Phase)
	assert.Empty(t, room.MovieIDs)
}

func (s *SwipeUsecaseSuite) TestSwipeValidation(t provider.T) {
	t.Parallel()

	r := initSwipeResources(t)
	r.stubEmptyDeck()

	code, _, err := r.usecase.Create(r.ctx, "alice")
	assert.NoError(t, err)

	assert.ErrorIs(t, r.usecase.Swipe(r.ctx, code, "alice", "movie-1", "sideways"), ErrInvalidInput)
	assert.ErrorIs(t, r.usecase.Swipe(r.ctx, code, "", "movie-1", model.SwipeRight), ErrInvalidInput)
	assert.ErrorIs(t, r.usecase.Swipe(r.ctx, code, "ghost", "movie-1", model.SwipeRight), ErrInvalidInput)
	assert.ErrorIs(t, r.usecase.Swipe(r.ctx, "ZZZZZ", "alice", "movie-1", model.SwipeRight), ErrResourceNotFound)
}

func (s *SwipeUsecaseSuite) TestSwipeIsIdempotentPerKey(t provider.T) {
	t.Parallel()

	r := initSwipeResources(t)
	code, _, err := r.usecase.Create(r.ctx, "alice")
	assert.NoError(t, err)

	for range 3 {
		assert.NoError(t, r.usecase.Swipe(r.ctx, code, "alice", "movie-1", model.SwipeRight))
	}
	assert.NoError(t, r.usecase.Swipe(r.ctx, code, "alice", "movie-2", model.SwipeLeft))

	report, err := r.usecase.Status(r.ctx, code)
	assert.NoError(t, err)
	assert.Equal(t, 1, report.Players["alice"].Liked)
	assert.Equal(t, 2, report.Players["alice"].Total)
}

func (s *SwipeUsecaseSuite) TestMarkDoneAdvancesToResults(t provider.T) {
	t.Parallel()

	r := initSwipeResources(t)
	code, _, err := r.usecase.Create(r.ctx, "alice")
	assert.NoError(t, err)
	_, err = r.usecase.Join(r.ctx, code, "bob")
	assert.NoError(t, err)

	room, err := r.usecase.MarkDone(r.ctx, code, "alice")
	assert.NoError(t, err)
	assert.NotEqual(t, model.PhaseResults, room.Phase)

	room, err = r.usecase.MarkDone(r.ctx, code, "bob")
	assert.NoError(t, err)
	assert.Equal(t, model.PhaseResults, room.Phase)
}

func TestSwipeUsecaseSuite(t *testing.T) {
	suite.RunSuite(t, new(SwipeUsecaseSuite))
}
