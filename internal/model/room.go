package model

import "time"

type Phase = string

const (
	PhaseGenres  Phase = "genres"
	PhaseSwiping Phase = "swiping"
	PhaseResults Phase = "results"
)

type SwipeDirection = string

const (
	SwipeLeft  SwipeDirection = "left"
	SwipeRight SwipeDirection = "right"
)

const MaxPlayers = 2

// PlayerState is keyed by the player's name within a room. Two joiners with
// the same name share one slot.
type PlayerState struct {
	Name       string   `json:"name"`
	Genres     []int    `json:"genres"`
	Likes      []string `json:"likes"`
	Dislikes   []string `json:"dislikes"`
	GenresDone bool     `json:"genresDone"`
	Done       bool     `json:"done"`
}

// SwipeRoom holds the full state of one matching session. The deck
// (MovieData + MovieIDs) is built once at the genres->swiping transition and
// never recomputed.
type SwipeRoom struct {
	Code      string                  `json:"code"`
	CreatedAt time.Time               `json:"createdAt"`
	Phase     Phase                   `json:"phase"`
	Players   map[string]*PlayerState `json:"players"`
	// PlayerOrder preserves join order; map iteration would not.
	PlayerOrder     []string                `json:"playerOrder"`
	MovieData       map[string]TitleSummary `json:"movieData"`
	MovieIDs        []string                `json:"movieIds"`
	SharedGenres    []int                   `json:"sharedGenres,omitempty"`
	AllGenres       []int                   `json:"allGenres,omitempty"`
	Recommendations []Recommendation        `json:"recommendations,omitempty"`
}

func NewPlayerState(name string) *PlayerState {
	return &PlayerState{
		Name:     name,
		Genres:   []int{},
		Likes:    []string{},
		Dislikes: []string{},
	}
}

func (r *SwipeRoom) Player(name string) (*PlayerState, bool) {
	p, ok := r.Players[name]
	return p, ok
}

func (r *SwipeRoom) BothJoined() bool {
	return len(r.Players) >= MaxPlayers
}

func (r *SwipeRoom) AllGenresDone() bool {
	if !r.BothJoined() {
		return false
	}
	for _, p := range r.Players {
		if !p.GenresDone {
			return false
		}
	}
	return true
}

func (r *SwipeRoom) AllDone() bool {
	if !r.BothJoined() {
		return false
	}
	for _, p := range r.Players {
		if !p.Done {
			return false
		}
	}
	return true
}
