package model

import "fmt"

type MediaType = string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// TitleSummary is a denormalized snapshot of provider metadata captured at
// deck-build time. It is never re-fetched, so staleness is expected.
type TitleSummary struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	PosterPath  string    `json:"poster_path"`
	VoteAverage float64   `json:"vote_average"`
	ReleaseDate string    `json:"release_date"`
	Overview    string    `json:"overview"`
	Type        MediaType `json:"type"`
	GenreIDs    []int     `json:"genre_ids"`
	SharedGenre bool      `json:"sharedGenre"`
}

// Key is the deck key: "{type}-{id}".
func (t TitleSummary) Key() string {
	return fmt.Sprintf("%s-%d", t.Type, t.ID)
}

type Recommendation struct {
	TitleSummary
	BasedOn string `json:"basedOn"`
}
