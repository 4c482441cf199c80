package usecase_swipe

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/moviepair/core/internal/model"
	"github.com/sourcegraph/conc/pool"
)

const (
	deckMaxSize     = 30
	maxProviderPage = 20
	minMovieVotes   = 50
	minShowVotes    = 30
	fetchFanout     = 4
)

// Movie genre ids mapped to their TV discovery equivalents.
var tvGenreEquivalents = map[int]int{
	28:    10759, // action -> action & adventure
	12:    10759, // adventure -> action & adventure
	14:    10765, // fantasy -> sci-fi & fantasy
	878:   10765, // science fiction -> sci-fi & fantasy
	10752: 10768, // war -> war & politics
}

// buildDeck assembles the swipe deck for two genre choices. Provider failures
// degrade the deck instead of failing the room.
func (u *Usecase) buildDeck(ctx context.Context, g1, g2 []int) (deck []model.TitleSummary, shared, all []int) {
	shared = intersect(g1, g2)
	all = union(g1, g2)

	var sharedPool, broaderPool []model.TitleSummary
	var mu sync.Mutex

	tasks := pool.New().WithMaxGoroutines(fetchFanout)
	fetchInto := func(dst *[]model.TitleSummary, fetch func(context.Context, model.DiscoverQuery) ([]model.TitleSummary, error), q model.DiscoverQuery, pages int) {
		for _, page := range randomPages(pages) {
			q := q
			q.Page = page
			tasks.Go(func() {
				titles, err := fetch(ctx, q)
				if err != nil {
					u.logger.Warn("deck page fetch failed", slog.String("error", err.Error()))
					return
				}
				mu.Lock()
				*dst = append(*dst, titles...)
				mu.Unlock()
			})
		}
	}

	if len(shared) > 0 {
		// AND over the shared set, OR over the combined set.
		fetchInto(&sharedPool, u.provider.DiscoverMovies, model.DiscoverQuery{GenreIDs: shared, MatchAll: true, MinVotes: minMovieVotes}, 3)
		fetchInto(&sharedPool, u.provider.DiscoverShows, model.DiscoverQuery{GenreIDs: tvGenres(shared), MatchAll: true, MinVotes: minShowVotes}, 2)
		fetchInto(&broaderPool, u.provider.DiscoverMovies, model.DiscoverQuery{GenreIDs: all, MinVotes: minMovieVotes}, 2)
		fetchInto(&broaderPool, u.provider.DiscoverShows, model.DiscoverQuery{GenreIDs: tvGenres(all), MinVotes: minShowVotes}, 1)
	} else {
		// No overlap: only the broader pool, with extra pages to compensate.
		fetchInto(&broaderPool, u.provider.DiscoverMovies, model.DiscoverQuery{GenreIDs: all, MinVotes: minMovieVotes}, 4)
		fetchInto(&broaderPool, u.provider.DiscoverShows, model.DiscoverQuery{GenreIDs: tvGenres(all), MinVotes: minShowVotes}, 2)
	}
	tasks.Wait()

	// Dedup by key, shared pool first; items without a poster are dropped.
	seen := make(map[string]struct{})
	candidates := make([]model.TitleSummary, 0, len(sharedPool)+len(broaderPool))
	for _, title := range sharedPool {
		key := title.Key()
		if _, ok := seen[key]; ok || title.PosterPath == "" {
			continue
		}
		seen[key] = struct{}{}
		title.SharedGenre = true
		candidates = append(candidates, title)
	}
	for _, title := range broaderPool {
		key := title.Key()
		if _, ok := seen[key]; ok || title.PosterPath == "" {
			continue
		}
		seen[key] = struct{}{}
		title.SharedGenre = false
		candidates = append(candidates, title)
	}

	rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	return interleave(candidates, deckMaxSize), shared, all
}

// interleave front-loads shared-genre titles two-to-one against the rest,
// preserving post-shuffle relative order within each group.
func interleave(candidates []model.TitleSummary, limit int) []model.TitleSummary {
	var sh, ot []model.TitleSummary
	for _, title := range candidates {
		if title.SharedGenre {
			sh = append(sh, title)
		} else {
			ot = append(ot, title)
		}
	}

	deck := make([]model.TitleSummary, 0, limit)
	si, oi := 0, 0
	for (si < len(sh) || oi < len(ot)) && len(deck) < limit {
		if si < len(sh) {
			deck = append(deck, sh[si])
			si++
		}
		if oi < len(ot) {
			deck = append(deck, ot[oi])
			oi++
		}
		if si < len(sh) {
			deck = append(deck, sh[si])
			si++
		}
	}
	if len(deck) > limit {
		deck = deck[:limit]
	}
	return deck
}

// randomPages samples n distinct pages from [1, maxProviderPage].
func randomPages(n int) []int {
	if n > maxProviderPage {
		n = maxProviderPage
	}
	used := make(map[int]struct{}, n)
	pages := make([]int, 0, n)
	for len(pages) < n {
		page := rand.Intn(maxProviderPage) + 1
		if _, ok := used[page]; ok {
			continue
		}
		used[page] = struct{}{}
		pages = append(pages, page)
	}
	return pages
}

func tvGenres(genreIDs []int) []int {
	out := make([]int, 0, len(genreIDs))
	seen := make(map[int]struct{}, len(genreIDs))
	for _, id := range genreIDs {
		if mapped, ok := tvGenreEquivalents[id]; ok {
			id = mapped
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func intersect(a, b []int) []int {
	inB := make(map[int]struct{}, len(b))
	for _, id := range b {
		inB[id] = struct{}{}
	}
	out := []int{}
	seen := make(map[int]struct{})
	for _, id := range a {
		if _, ok := inB[id]; !ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func union(a, b []int) []int {
	out := []int{}
	seen := make(map[int]struct{})
	for _, id := range append(append([]int{}, a...), b...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
