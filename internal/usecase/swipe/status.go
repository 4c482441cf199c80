package usecase_swipe

import (
	"context"
	"errors"
	"math"

	"github.com/moviepair/core/internal/model"
)

// PlayerStats is the public view of one player inside a status report.
type PlayerStats struct {
	Name       string `json:"name"`
	Genres     []int  `json:"genres"`
	GenresDone bool   `json:"genresDone"`
	Liked      int    `json:"liked"`
	Total      int    `json:"total"`
	Done       bool   `json:"done"`
}

// StatusReport is the polled aggregate view of a room.
type StatusReport struct {
	Code               string                  `json:"code"`
	Phase              model.Phase             `json:"phase"`
	BothJoined         bool                    `json:"bothJoined"`
	AllGenresDone      bool                    `json:"allGenresDone"`
	AllDone            bool                    `json:"allDone"`
	Matches            []model.TitleSummary    `json:"matches"`
	MatchCount         int                     `json:"matchCount"`
	Compatibility      int                     `json:"compatibility"`
	GenreCompatibility int                     `json:"genreCompatibility"`
	SharedGenres       []int                   `json:"sharedGenres"`
	Players            map[string]PlayerStats  `json:"players"`
	TotalMovies        int                     `json:"totalMovies"`
	Recommendations    []model.Recommendation  `json:"recommendations"`
}

// Status computes the aggregate room view: matches, compatibility scores and,
// once both players finished with at least one match, the cached
// recommendation list.
func (u *Usecase) Status(ctx context.Context, code string) (StatusReport, error) {
	room, ok, err := u.store.Get(ctx, code)
	if err != nil {
		return StatusReport{}, errors.Join(ErrInternal, err)
	}
	if !ok {
		return StatusReport{}, ErrResourceNotFound
	}

	report := StatusReport{
		Code:            room.Code,
		Phase:           room.Phase,
		BothJoined:      room.BothJoined(),
		AllGenresDone:   room.AllGenresDone(),
		AllDone:         room.AllDone(),
		Matches:         []model.TitleSummary{},
		SharedGenres:    room.SharedGenres,
		Players:         make(map[string]PlayerStats, len(room.Players)),
		TotalMovies:     len(room.MovieIDs),
		Recommendations: []model.Recommendation{},
	}
	if report.SharedGenres == nil {
		report.SharedGenres = []int{}
	}

	for name, p := range room.Players {
		report.Players[name] = PlayerStats{
			Name:       p.Name,
			Genres:     p.Genres,
			GenresDone: p.GenresDone,
			Liked:      len(p.Likes),
			Total:      len(p.Likes) + len(p.Dislikes),
			Done:       p.Done,
		}
	}

	if !report.BothJoined {
		return report, nil
	}

	p1 := room.Players[room.PlayerOrder[0]]
	p2 := room.Players[room.PlayerOrder[1]]

	report.Matches = matchedTitles(&room, p1, p2)
	report.MatchCount = len(report.Matches)
	report.Compatibility = swipeCompatibility(p1, p2)
	report.GenreCompatibility = genreCompatibility(p1.Genres, p2.Genres)

	if report.AllDone && report.MatchCount > 0 {
		recs, err := u.roomRecommendations(ctx, code, &room, report.Matches)
		if err != nil {
			return StatusReport{}, err
		}
		report.Recommendations = recs
	}

	return report, nil
}

// matchedTitles resolves the intersection of both liked lists, keeping the
// first player's like order.
func matchedTitles(room *model.SwipeRoom, p1, p2 *model.PlayerState) []model.TitleSummary {
	liked2 := toSet(p2.Likes)
	out := []model.TitleSummary{}
	for _, key := range p1.Likes {
		if _, ok := liked2[key]; !ok {
			continue
		}
		if title, ok := room.MovieData[key]; ok {
			out = append(out, title)
		}
	}
	return out
}

// swipeCompatibility counts agreement over keys both players explicitly
// rated. A key only one player reached is excluded entirely.
func swipeCompatibility(p1, p2 *model.PlayerState) int {
	likes1, dislikes1 := toSet(p1.Likes), toSet(p1.Dislikes)
	likes2, dislikes2 := toSet(p2.Likes), toSet(p2.Dislikes)

	all := make(map[string]struct{})
	for _, set := range []map[string]struct{}{likes1, dislikes1, likes2, dislikes2} {
		for key := range set {
			all[key] = struct{}{}
		}
	}

	agree, total := 0, 0
	for key := range all {
		_, l1 := likes1[key]
		_, d1 := dislikes1[key]
		_, l2 := likes2[key]
		_, d2 := dislikes2[key]
		if !(l1 || d1) || !(l2 || d2) {
			continue
		}
		total++
		if (l1 && l2) || (d1 && d2) {
			agree++
		}
	}
	if total == 0 {
		return 0
	}
	return roundPercent(agree, total)
}

func genreCompatibility(g1, g2 []int) int {
	all := union(g1, g2)
	if len(all) == 0 {
		return 0
	}
	return roundPercent(len(intersect(g1, g2)), len(all))
}

func roundPercent(part, whole int) int {
	return int(math.Round(float64(part) / float64(whole) * 100))
}

func toSet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		set[key] = struct{}{}
	}
	return set
}
