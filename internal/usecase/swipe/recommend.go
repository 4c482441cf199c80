package usecase_swipe

import (
	"context"
	"log/slog"
	"sort"

	"github.com/moviepair/core/internal/model"
	"github.com/sourcegraph/conc/pool"
)

const (
	recommendSourceTitles = 5
	recommendedPerTitle   = 6
	similarPerTitle       = 4
	recommendMaxResults   = 15
)

// roomRecommendations returns the room's cached recommendation list,
// computing and persisting it on first use.
func (u *Usecase) roomRecommendations(ctx context.Context, code string, room *model.SwipeRoom, matches []model.TitleSummary) ([]model.Recommendation, error) {
	if room.Recommendations != nil {
		return room.Recommendations, nil
	}

	recs := u.expandRecommendations(ctx, matches, room.MovieIDs)

	updated, err := u.store.Update(ctx, code, func(room *model.SwipeRoom) error {
		if room.Recommendations == nil {
			room.Recommendations = recs
		}
		return nil
	})
	if err != nil {
		return nil, u.mapStoreError(err)
	}
	return updated.Recommendations, nil
}

// expandRecommendations collects the provider's recommended and similar lists
// for the first matched titles, deduplicated against the matches themselves
// and the swipe deck.
func (u *Usecase) expandRecommendations(ctx context.Context, matches []model.TitleSummary, deckKeys []string) []model.Recommendation {
	sources := matches
	if len(sources) > recommendSourceTitles {
		sources = sources[:recommendSourceTitles]
	}

	type batch struct {
		titles  []model.TitleSummary
		basedOn string
		cap     int
	}
	// Two slots per source: recommended then similar, in match order, so the
	// dedup below stays deterministic regardless of fetch completion order.
	batches := make([]batch, len(sources)*2)

	tasks := pool.New().WithMaxGoroutines(fetchFanout)
	for i, match := range sources {
		tasks.Go(func() {
			titles, err := u.provider.Recommended(ctx, match.Type, match.ID)
			if err != nil {
				u.logger.Warn("recommendations fetch failed", slog.String("error", err.Error()))
				return
			}
			batches[i*2] = batch{titles: titles, basedOn: match.Title, cap: recommendedPerTitle}
		})
		tasks.Go(func() {
			titles, err := u.provider.Similar(ctx, match.Type, match.ID)
			if err != nil {
				u.logger.Warn("similar fetch failed", slog.String("error", err.Error()))
				return
			}
			batches[i*2+1] = batch{titles: titles, basedOn: match.Title, cap: similarPerTitle}
		})
	}
	tasks.Wait()

	seen := make(map[string]struct{}, len(matches)+len(deckKeys))
	for _, match := range matches {
		seen[match.Key()] = struct{}{}
	}
	for _, key := range deckKeys {
		seen[key] = struct{}{}
	}

	out := []model.Recommendation{}
	for _, b := range batches {
		titles := b.titles
		if len(titles) > b.cap {
			titles = titles[:b.cap]
		}
		for _, title := range titles {
			key := title.Key()
			if _, ok := seen[key]; ok || title.PosterPath == "" {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, model.Recommendation{TitleSummary: title, BasedOn: b.basedOn})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].VoteAverage > out[j].VoteAverage
	})
	if len(out) > recommendMaxResults {
		out = out[:recommendMaxResults]
	}
	return out
}
