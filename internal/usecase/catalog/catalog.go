package usecase_catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/moviepair/core/internal/model"
)

const cacheTTL = 5 * time.Minute

var (
	ErrInvalidInput = errors.New("invalid input")
)

type MetadataProvider interface {
	DiscoverMovies(ctx context.Context, q model.DiscoverQuery) ([]model.TitleSummary, error)
	DiscoverShows(ctx context.Context, q model.DiscoverQuery) ([]model.TitleSummary, error)
}

type Cache interface {
	Set(key string, value string, ttl time.Duration) error
	Get(key string) (string, error)
}

// Usecase proxies the provider's discovery endpoints for the browsing pages,
// caching responses briefly. Provider failures surface as an empty page.
type Usecase struct {
	provider MetadataProvider
	cache    Cache
	logger   *slog.Logger
}

func New(provider MetadataProvider, cache Cache) *Usecase {
	return &Usecase{
		provider: provider,
		cache:    cache,
		logger:   slog.Default(),
	}
}

func (u *Usecase) Discover(ctx context.Context, mediaType model.MediaType, genreIDs []int, page int) ([]model.TitleSummary, error) {
	if mediaType != model.MediaTypeMovie && mediaType != model.MediaTypeTV {
		return nil, ErrInvalidInput
	}
	if page <= 0 {
		page = 1
	}

	key := cacheKey(mediaType, genreIDs, page)
	if cached, err := u.cache.Get(key); err == nil && cached != "" {
		var titles []model.TitleSummary
		if err := json.Unmarshal([]byte(cached), &titles); err == nil {
			return titles, nil
		}
	}

	query := model.DiscoverQuery{GenreIDs: genreIDs, Page: page}
	var titles []model.TitleSummary
	var err error
	if mediaType == model.MediaTypeMovie {
		titles, err = u.provider.DiscoverMovies(ctx, query)
	} else {
		titles, err = u.provider.DiscoverShows(ctx, query)
	}
	if err != nil {
		u.logger.Warn("catalog discover failed", slog.String("error", err.Error()))
		return []model.TitleSummary{}, nil
	}
	if titles == nil {
		titles = []model.TitleSummary{}
	}

	if raw, err := json.Marshal(titles); err == nil {
		if err := u.cache.Set(key, string(raw), cacheTTL); err != nil {
			u.logger.Warn("catalog cache set failed", slog.String("error", err.Error()))
		}
	}
	return titles, nil
}

func cacheKey(mediaType model.MediaType, genreIDs []int, page int) string {
	ids := make([]string, 0, len(genreIDs))
	for _, id := range genreIDs {
		ids = append(ids, strconv.Itoa(id))
	}
	return fmt.Sprintf("catalog:%s:%s:p%d", mediaType, strings.Join(ids, ","), page)
}
