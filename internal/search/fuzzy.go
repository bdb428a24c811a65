package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/cineradar/internal/domain"
)

// Match is a quick-filter hit with the character positions to highlight
type Match struct {
	Movie          domain.Movie
	Index          int // position in the source slice
	MatchedIndexes []int
	Score          int // higher is better
}

// titleIndex implements fuzzy.Source over precomputed lowercase titles
type titleIndex struct {
	lowerTitles []string
}

func (idx titleIndex) String(i int) string { return idx.lowerTitles[i] }
func (idx titleIndex) Len() int            { return len(idx.lowerTitles) }

// QuickFilter fuzzy-matches query against movie titles. An empty query
// matches everything in source order.
func QuickFilter(query string, movies []domain.Movie) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		all := make([]Match, len(movies))
		for i, m := range movies {
			all[i] = Match{Movie: m, Index: i}
		}
		return all
	}

	idx := titleIndex{lowerTitles: make([]string, len(movies))}
	for i, m := range movies {
		idx.lowerTitles[i] = strings.ToLower(m.DisplayTitle())
	}

	found := fuzzy.FindFrom(query, idx)
	matches := make([]Match, len(found))
	for i, f := range found {
		matches[i] = Match{
			Movie:          movies[f.Index],
			Index:          f.Index,
			MatchedIndexes: f.MatchedIndexes,
			Score:          f.Score,
		}
	}
	return matches
}
