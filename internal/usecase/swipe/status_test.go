package usecase_swipe

import (
	"testing"

	"github.com/moviepair/core/internal/model"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type ScoringSuite struct {
	suite.Suite
}

func playerWith(likes, dislikes []string) *model.PlayerState {
	p := model.NewPlayerState("p")
	p.Likes = likes
	p.Dislikes = dislikes
	return p
}

func (s *ScoringSuite) TestSwipeCompatibility(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		p1       *model.PlayerState
		p2       *model.PlayerState
		expected int
	}{
		{
			name:     "Full agreement",
			p1:       playerWith([]string{"a", "b"}, []string{"c"}),
			p2:       playerWith([]string{"a", "b"}, []string{"c"}),
			expected: 100,
		},
		{
			name:     "Full disagreement",
			p1:       playerWith([]string{"a"}, []string{"b"}),
			p2:       playerWith([]string{"b"}, []string{"a"}),
			expected: 0,
		},
		{
			name: "Keys only one player rated are excluded",
			// Shared verdicts: a (both like), b (split). c and d are one-sided.
			p1:       playerWith([]string{"a", "c"}, []string{"b"}),
			p2:       playerWith([]string{"a", "b"}, []string{"d"}),
			expected: 50,
		},
		{
			name:     "No overlap at all",
			p1:       playerWith([]string{"a"}, nil),
			p2:       playerWith([]string{"b"}, nil),
			expected: 0,
		},
		{
			name:     "Nothing swiped",
			p1:       playerWith(nil, nil),
			p2:       playerWith(nil, nil),
			expected: 0,
		},
		{
			name:     "Rounded to nearest percent",
			p1:       playerWith([]string{"a", "b"}, []string{"c"}),
			p2:       playerWith([]string{"a", "c"}, []string{"b"}),
			expected: 33,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, swipeCompatibility(tc.p1, tc.p2))
			// Swapping the players must not move the score.
			assert.Equal(t, tc.expected, swipeCompatibility(tc.p2, tc.p1))
		})
	}
}

func (s *ScoringSuite) TestGenreCompatibility(t provider.T) {
	t.Parallel()

	assert.Equal(t, 100, genreCompatibility([]int{28, 35}, []int{35, 28}))
	assert.Equal(t, 33, genreCompatibility([]int{28, 35}, []int{35, 18}))
	assert.Equal(t, 0, genreCompatibility([]int{28}, []int{18}))
	assert.Equal(t, 0, genreCompatibility(nil, nil))
}

func (s *ScoringSuite) TestMatchedTitlesKeepFirstPlayersOrder(t provider.T) {
	t.Parallel()

	room := &model.SwipeRoom{
		MovieData: map[string]model.TitleSummary{
			"movie-1": {ID: 1, Type: model.MediaTypeMovie},
			"movie-2": {ID: 2, Type: model.MediaTypeMovie},
			"movie-3": {ID: 3, Type: model.MediaTypeMovie},
		},
	}
	p1 := playerWith([]string{"movie-3", "movie-1", "movie-2"}, nil)
	p2 := playerWith([]string{"movie-1", "movie-3"}, nil)

	matches := matchedTitles(room, p1, p2)

	ids := []int{}
	for _, m := range matches {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []int{3, 1}, ids)
}

func (s *ScoringSuite) TestStatusBeforeSecondPlayer(t provider.T) {
	t.Parallel()

	r := initSwipeResources(t)
	code, _, err := r.usecase.Create(r.ctx, "alice")
	assert.NoError(t, err)

	report, err := r.usecase.Status(r.ctx, code)
	assert.NoError(t, err)
	assert.False(t, report.BothJoined)
	assert.Equal(t, model.PhaseGenres, report.Phase)
	assert.Empty(t, report.Matches)
	assert.Zero(t, report.Compatibility)

	_, err = r.usecase.Status(r.ctx, "ZZZZZ")
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func (s *ScoringSuite) TestRecommendationsComputedOnceAndCached(t provider.T) {
	t.Parallel()

	r := initSwipeResources(t)

	// A deck of exactly five shared movies keeps the rest deterministic.
	matchAll := func(q model.DiscoverQuery) bool { return q.MatchAll }
	r.provider.On("DiscoverMovies", mock.Anything, mock.MatchedBy(matchAll)).Return(titles(100, 5), nil)
	r.provider.On("DiscoverShows", mock.Anything, mock.Anything).Return([]model.TitleSummary{}, nil)
	r.provider.On("DiscoverMovies", mock.Anything, mock.MatchedBy(func(q model.DiscoverQuery) bool {
		return !q.MatchAll
	})).Return([]model.TitleSummary{}, nil)

	code, _, err := r.usecase.Create(r.ctx, "alice")
	assert.NoError(t, err)
	_, err = r.usecase.Join(r.ctx, code, "bob")
	assert.NoError(t, err)
	_, err = r.usecase.SubmitGenres(r.ctx, code, "alice", []int{28})
	assert.NoError(t, err)
	_, err = r.usecase.SubmitGenres(r.ctx, code, "bob", []int{28})
	assert.NoError(t, err)

	// Both like 100 and 101; alice likes 101 first.
	for _, swipe := range []struct {
		player    string
		key       string
		direction model.SwipeDirection
	}{
		{"alice", "movie-101", model.SwipeRight},
		{"alice", "movie-100", model.SwipeRight},
		{"alice", "movie-102", model.SwipeLeft},
		{"bob", "movie-100", model.SwipeRight},
		{"bob", "movie-101", model.SwipeRight},
		{"bob", "movie-102", model.SwipeLeft},
	} {
		assert.NoError(t, r.usecase.Swipe(r.ctx, code, swipe.player, swipe.key, swipe.direction))
	}

	recommended := append(titles(1000, 8), movieTitle(103, "/poster.jpg")) // 103 is in the deck
	recommended = append(recommended, movieTitle(2000, ""))               // no poster
	similar := titles(3000, 5)

	r.provider.On("Recommended", mock.Anything, model.MediaTypeMovie, 101).Return(recommended, nil).Once()
	r.provider.On("Similar", mock.Anything, model.MediaTypeMovie, 101).Return(similar, nil).Once()
	r.provider.On("Recommended", mock.Anything, model.MediaTypeMovie, 100).Return([]model.TitleSummary{movieTitle(101, "/poster.jpg")}, nil).Once()
	r.provider.On("Similar", mock.Anything, model.MediaTypeMovie, 100).Return([]model.TitleSummary{}, nil).Once()

	_, err = r.usecase.MarkDone(r.ctx, code, "alice")
	assert.NoError(t, err)
	_, err = r.usecase.MarkDone(r.ctx, code, "bob")
	assert.NoError(t, err)

	report, err := r.usecase.Status(r.ctx, code)
	assert.NoError(t, err)
	assert.Equal(t, model.PhaseResults, report.Phase)
	assert.True(t, report.AllDone)
	assert.Equal(t, 100, report.Compatibility)
	assert.Equal(t, 2, report.MatchCount)
	assert.Equal(t, 101, report.Matches[0].ID)
	assert.Equal(t, 100, report.Matches[1].ID)

	recs := report.Recommendations
	assert.NotEmpty(t, recs)
	assert.LessOrEqual(t, len(recs), recommendMaxResults)
	seen := map[string]struct{}{
		"movie-100": {}, "movie-101": {}, "movie-102": {}, "movie-103": {}, "movie-104": {},
	}
	for i, rec := range recs {
		assert.NotEmpty(t, rec.PosterPath)
		assert.Equal(t, "Movie 101", rec.BasedOn)
		_, dup := seen[rec.Key()]
		assert.False(t, dup, "recommendation %s collides with deck or matches", rec.Key())
		seen[rec.Key()] = struct{}{}
		if i > 0 {
			assert.GreaterOrEqual(t, recs[i-1].VoteAverage, rec.VoteAverage)
		}
	}

	// The second status call serves the stored list; Once above guarantees
	// the provider is not asked again.
	again, err := r.usecase.Status(r.ctx, code)
	assert.NoError(t, err)
	assert.Equal(t, len(recs), len(again.Recommendations))
}

func TestScoringSuite(t *testing.T) {
	suite.RunSuite(t, new(ScoringSuite))
}
