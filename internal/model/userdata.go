package model

import (
	"encoding/json"
	"fmt"
)

// FavoriteItem is unique per (media id, media type) within one user's blob.
type FavoriteItem struct {
	ID           int     `json:"id"`
	Type         MediaType `json:"type"`
	Title        string  `json:"title,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty"`
	VoteAverage  float64 `json:"vote_average,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	AddedAt      int64   `json:"addedAt"`
}

func (f FavoriteItem) Key() string {
	return fmt.Sprintf("%s-%d", f.Type, f.ID)
}

// HistoryItem records one watch session of a movie or of a single episode.
type HistoryItem struct {
	ID           int     `json:"id"`
	Type         MediaType `json:"type"`
	Title        string  `json:"title,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty"`
	VoteAverage  float64 `json:"vote_average,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	WatchedAt    int64   `json:"watchedAt"`
	Progress     float64 `json:"progress"`
	Duration     float64 `json:"duration"`
	Season       int     `json:"season,omitempty"`
	Episode      int     `json:"episode,omitempty"`
	EpisodeName  string  `json:"episodeName,omitempty"`
	Quality      string  `json:"quality,omitempty"`
}

func (h HistoryItem) Key() string {
	return fmt.Sprintf("%s-%d-%d-%d", h.Type, h.ID, h.Season, h.Episode)
}

// PlaybackPosition is a resumable playback point, keyed externally by a
// string that encodes media identity (and season/episode for series).
type PlaybackPosition struct {
	Time     float64 `json:"time"`
	Duration float64 `json:"duration"`
	SavedAt  int64   `json:"savedAt"`
}

// Comment ids are client-generated and effectively random; an id collision is
// treated as the same comment, not as a conflict.
type Comment struct {
	ID        string    `json:"id"`
	MediaID   int       `json:"mediaId"`
	MediaType MediaType `json:"mediaType"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	CreatedAt int64     `json:"createdAt"`
}

// UserData is the per-user reconciliation unit.
type UserData struct {
	Favorites []FavoriteItem              `json:"favorites"`
	History   []HistoryItem               `json:"history"`
	Positions map[string]PlaybackPosition `json:"positions"`
	Comments  []Comment                   `json:"comments"`
}

func NewUserData() UserData {
	return UserData{
		Favorites: []FavoriteItem{},
		History:   []HistoryItem{},
		Positions: map[string]PlaybackPosition{},
		Comments:  []Comment{},
	}
}

// UnmarshalJSON decodes each collection independently so that one malformed
// collection degrades to empty instead of failing the whole blob.
func (d *UserData) UnmarshalJSON(raw []byte) error {
	*d = NewUserData()

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return err
	}

	if v, ok := fields["favorites"]; ok {
		var favs []FavoriteItem
		if err := json.Unmarshal(v, &favs); err == nil && favs != nil {
			d.Favorites = favs
		}
	}
	if v, ok := fields["history"]; ok {
		var hist []HistoryItem
		if err := json.Unmarshal(v, &hist); err == nil && hist != nil {
			d.History = hist
		}
	}
	if v, ok := fields["positions"]; ok {
		var pos map[string]PlaybackPosition
		if err := json.Unmarshal(v, &pos); err == nil && pos != nil {
			d.Positions = pos
		}
	}
	if v, ok := fields["comments"]; ok {
		var comments []Comment
		if err := json.Unmarshal(v, &comments); err == nil && comments != nil {
			d.Comments = comments
		}
	}

	return nil
}
