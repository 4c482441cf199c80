package infra_tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/moviepair/core/internal/config"
	"github.com/moviepair/core/internal/model"
)

// ErrUnavailable covers every provider failure: transport errors, timeouts
// and non-200 statuses. Callers substitute an empty result set.
var ErrUnavailable = errors.New("metadata provider unavailable")

type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
	attempts   uint
	retryDelay time.Duration
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithRetry(attempts uint, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.retryDelay = delay
	}
}

func New(cfg config.TMDB, opts ...Option) *Client {
	c := &Client{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		language:   cfg.Language,
		httpClient: &http.Client{Timeout: 8 * time.Second},
		attempts:   3,
		retryDelay: 300 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type discoverItem struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	PosterPath   string  `json:"poster_path"`
	VoteAverage  float64 `json:"vote_average"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	Overview     string  `json:"overview"`
	GenreIDs     []int   `json:"genre_ids"`
}

type resultsPage struct {
	Page    int            `json:"page"`
	Results []discoverItem `json:"results"`
}

func (it discoverItem) toSummary(mediaType model.MediaType) model.TitleSummary {
	title := it.Title
	if title == "" {
		title = it.Name
	}
	release := it.ReleaseDate
	if release == "" {
		release = it.FirstAirDate
	}
	return model.TitleSummary{
		ID:          it.ID,
		Title:       title,
		PosterPath:  it.PosterPath,
		VoteAverage: it.VoteAverage,
		ReleaseDate: release,
		Overview:    it.Overview,
		Type:        mediaType,
		GenreIDs:    it.GenreIDs,
	}
}

func (c *Client) DiscoverMovies(ctx context.Context, q model.DiscoverQuery) ([]model.TitleSummary, error) {
	return c.discover(ctx, model.MediaTypeMovie, q)
}

func (c *Client) DiscoverShows(ctx context.Context, q model.DiscoverQuery) ([]model.TitleSummary, error) {
	return c.discover(ctx, model.MediaTypeTV, q)
}

func (c *Client) discover(ctx context.Context, mediaType model.MediaType, q model.DiscoverQuery) ([]model.TitleSummary, error) {
	if c.apiKey == "" || len(q.GenreIDs) == 0 {
		return nil, nil
	}

	separator := "|"
	if q.MatchAll {
		separator = ","
	}
	genres := make([]string, 0, len(q.GenreIDs))
	for _, id := range q.GenreIDs {
		genres = append(genres, strconv.Itoa(id))
	}

	u, err := url.Parse(c.baseURL + "/discover/" + mediaType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	query := u.Query()
	query.Set("api_key", c.apiKey)
	if c.language != "" {
		query.Set("language", c.language)
	}
	query.Set("sort_by", "popularity.desc")
	query.Set("with_genres", strings.Join(genres, separator))
	if q.MinVotes > 0 {
		query.Set("vote_count.gte", strconv.Itoa(q.MinVotes))
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}
	query.Set("page", strconv.Itoa(page))
	u.RawQuery = query.Encode()

	resp, err := c.fetch(ctx, u.String())
	if err != nil {
		return nil, err
	}

	out := make([]model.TitleSummary, 0, len(resp.Results))
	for _, it := range resp.Results {
		out = append(out, it.toSummary(mediaType))
	}
	return out, nil
}

func (c *Client) Recommended(ctx context.Context, mediaType model.MediaType, id int) ([]model.TitleSummary, error) {
	return c.related(ctx, mediaType, id, "recommendations")
}

func (c *Client) Similar(ctx context.Context, mediaType model.MediaType, id int) ([]model.TitleSummary, error) {
	return c.related(ctx, mediaType, id, "similar")
}

func (c *Client) related(ctx context.Context, mediaType model.MediaType, id int, kind string) ([]model.TitleSummary, error) {
	if c.apiKey == "" {
		return nil, nil
	}

	u, err := url.Parse(fmt.Sprintf("%s/%s/%d/%s", c.baseURL, mediaType, id, kind))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	query := u.Query()
	query.Set("api_key", c.apiKey)
	if c.language != "" {
		query.Set("language", c.language)
	}
	query.Set("page", "1")
	u.RawQuery = query.Encode()

	resp, err := c.fetch(ctx, u.String())
	if err != nil {
		return nil, err
	}

	out := make([]model.TitleSummary, 0, len(resp.Results))
	for _, it := range resp.Results {
		out = append(out, it.toSummary(mediaType))
	}
	return out, nil
}

func (c *Client) fetch(ctx context.Context, rawURL string) (*resultsPage, error) {
	var page resultsPage

	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
			if err != nil {
				return err
			}
			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("status %d", resp.StatusCode)
			}
			return json.NewDecoder(resp.Body).Decode(&page)
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &page, nil
}
