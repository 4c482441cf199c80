package model

// DiscoverQuery selects one page of titles by genre from the metadata
// provider.
type DiscoverQuery struct {
	GenreIDs []int
	// MatchAll requires every genre (AND semantics); otherwise any genre
	// matches (OR semantics).
	MatchAll bool
	MinVotes int
	Page     int
}
