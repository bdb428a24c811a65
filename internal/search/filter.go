package search

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mmcdole/cineradar/internal/domain"
)

// FilterByYear keeps movies matching the year selector. A range compares the
// parsed release year against [Start, End] and drops movies whose year cannot
// be parsed. A single year compares the 4-character date prefix as a string.
func FilterByYear(movies []domain.Movie, year domain.YearFilter) []domain.Movie {
	return keep(movies, func(m domain.Movie) bool {
		if year.Range {
			y, ok := m.ReleaseYear()
			return ok && y >= year.Start && y <= year.End
		}
		return m.YearPrefix() == year.Raw
	})
}

// FilterByGenre keeps movies tagged with genreID
func FilterByGenre(movies []domain.Movie, genreID int) []domain.Movie {
	return keep(movies, func(m domain.Movie) bool {
		return m.HasGenre(genreID)
	})
}

// FilterByRating partitions on the threshold: at or below domain.RatingSplit it
// keeps movies rated at most the threshold, above it movies rated at least
// the threshold.
func FilterByRating(movies []domain.Movie, threshold float64) []domain.Movie {
	if threshold <= domain.RatingSplit {
		return keep(movies, func(m domain.Movie) bool { return m.VoteAverage <= threshold })
	}
	return keep(movies, func(m domain.Movie) bool { return m.VoteAverage >= threshold })
}

// FilterWithPoster drops movies without a poster image
func FilterWithPoster(movies []domain.Movie) []domain.Movie {
	return keep(movies, domain.Movie.HasPoster)
}

// Cap truncates to at most n movies
func Cap(movies []domain.Movie, n int) []domain.Movie {
	if n >= 0 && len(movies) > n {
		return movies[:n]
	}
	return movies
}

// SortMovies orders movies in place for the given key. Popularity keeps the
// incoming relevance order. Ties keep their relative order. Titles compare
// with the collation rules of lang.
func SortMovies(movies []domain.Movie, key domain.SortKey, lang language.Tag) {
	switch key {
	case domain.SortVoteAverageDesc:
		sort.SliceStable(movies, func(i, j int) bool {
			return movies[i].VoteAverage > movies[j].VoteAverage
		})
	case domain.SortReleaseDateDesc:
		sort.SliceStable(movies, func(i, j int) bool {
			ti, okI := movies[i].Released()
			tj, okJ := movies[j].Released()
			if okI != okJ {
				return okI // undated movies go last
			}
			return ti.After(tj)
		})
	case domain.SortTitleAsc:
		c := collate.New(lang, collate.IgnoreCase)
		sort.SliceStable(movies, func(i, j int) bool {
			return c.CompareString(movies[i].DisplayTitle(), movies[j].DisplayTitle()) < 0
		})
	}
}

func keep(movies []domain.Movie, pred func(domain.Movie) bool) []domain.Movie {
	out := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		if pred(m) {
			out = append(out, m)
		}
	}
	return out
}
