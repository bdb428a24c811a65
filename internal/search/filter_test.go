package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/mmcdole/cineradar/internal/domain"
)

func movie(id int, title, date string, vote float64, genres ...int) domain.Movie {
	return domain.Movie{
		ID:          id,
		Title:       title,
		PosterPath:  "/p.jpg",
		ReleaseDate: date,
		VoteAverage: vote,
		GenreIDs:    genres,
	}
}

func ids(movies []domain.Movie) []int {
	out := make([]int, len(movies))
	for i, m := range movies {
		out[i] = m.ID
	}
	return out
}

func TestFilterByYear_Range(t *testing.T) {
	movies := []domain.Movie{
		movie(1, "a", "1999-12-31", 5),
		movie(2, "b", "2000-01-01", 5),
		movie(3, "c", "2009-06-15", 5),
		movie(4, "d", "2010-01-01", 5),
		movie(5, "e", "", 5),
		movie(6, "f", "abcd-01-01", 5),
	}
	year, ok, err := domain.ParseYear("2000,2009")
	require.NoError(t, err)
	require.True(t, ok)

	got := FilterByYear(movies, year)
	assert.Equal(t, []int{2, 3}, ids(got))
	for _, m := range got {
		y, ok := m.ReleaseYear()
		require.True(t, ok)
		assert.True(t, y >= 2000 && y <= 2009)
	}
}

func TestFilterByYear_SingleUsesPrefix(t *testing.T) {
	movies := []domain.Movie{
		movie(1, "a", "2015-03-01", 5),
		movie(2, "b", "2016-03-01", 5),
		movie(3, "c", "2015", 5),
		movie(4, "d", "", 5),
	}
	year, _, err := domain.ParseYear("2015")
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3}, ids(FilterByYear(movies, year)))
}

func TestFilterByGenre(t *testing.T) {
	movies := []domain.Movie{
		movie(1, "a", "", 5, 28, 12),
		movie(2, "b", "", 5, 35),
		movie(3, "c", "", 5),
	}
	assert.Equal(t, []int{1}, ids(FilterByGenre(movies, 12)))
	assert.Empty(t, FilterByGenre(movies, 99))
}

func TestFilterByRating_Partition(t *testing.T) {
	movies := []domain.Movie{
		movie(1, "a", "", 3.0),
		movie(2, "b", "", 5.5),
		movie(3, "c", "", 6.0),
		movie(4, "d", "", 7.0),
		movie(5, "e", "", 9.1),
	}

	tests := []struct {
		threshold float64
		want      []int
	}{
		{3, []int{1}},
		{5, []int{1}},
		{5.5, []int{1, 2}},
		{6, []int{3, 4, 5}},
		{7, []int{4, 5}},
		{9, []int{5}},
	}
	for _, tt := range tests {
		got := FilterByRating(movies, tt.threshold)
		assert.Equal(t, tt.want, ids(got), "threshold %v", tt.threshold)
		for _, m := range got {
			if tt.threshold <= domain.RatingSplit {
				assert.LessOrEqual(t, m.VoteAverage, tt.threshold)
			} else {
				assert.GreaterOrEqual(t, m.VoteAverage, tt.threshold)
			}
		}
	}
}

func TestFilterWithPoster(t *testing.T) {
	movies := []domain.Movie{
		movie(1, "a", "", 5),
		{ID: 2, Title: "no poster"},
		{ID: 3, Title: "blank", PosterPath: "  "},
	}
	assert.Equal(t, []int{1}, ids(FilterWithPoster(movies)))
}

func TestCap(t *testing.T) {
	movies := make([]domain.Movie, 20)
	assert.Len(t, Cap(movies, 16), 16)
	assert.Len(t, Cap(movies[:3], 16), 3)
}

func TestSortMovies(t *testing.T) {
	base := func() []domain.Movie {
		return []domain.Movie{
			movie(1, "Zodiac", "2007-03-02", 7.7),
			movie(2, "Ágora", "2009-10-09", 6.9),
			movie(3, "amelie", "", 8.0),
			movie(4, "Batman", "2022-03-01", 7.7),
		}
	}

	t.Run("vote descending is stable", func(t *testing.T) {
		m := base()
		SortMovies(m, domain.SortVoteAverageDesc, language.Spanish)
		assert.Equal(t, []int{3, 1, 4, 2}, ids(m))
	})

	t.Run("release date descending puts undated last", func(t *testing.T) {
		m := base()
		SortMovies(m, domain.SortReleaseDateDesc, language.Spanish)
		assert.Equal(t, []int{4, 2, 1, 3}, ids(m))
	})

	t.Run("title ascending is locale aware", func(t *testing.T) {
		m := base()
		SortMovies(m, domain.SortTitleAsc, language.Spanish)
		assert.Equal(t, []int{2, 3, 4, 1}, ids(m))
	})

	t.Run("popularity keeps order", func(t *testing.T) {
		m := base()
		SortMovies(m, domain.SortPopularityDesc, language.Spanish)
		assert.Equal(t, []int{1, 2, 3, 4}, ids(m))
	})
}

func TestQuickFilter(t *testing.T) {
	movies := []domain.Movie{
		movie(1, "The Dark Knight", "", 9),
		movie(2, "Batman Begins", "", 8),
		movie(3, "Inception", "", 8.8),
	}

	all := QuickFilter("  ", movies)
	require.Len(t, all, 3)
	assert.Equal(t, 2, all[2].Index)

	got := QuickFilter("batman", movies)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Movie.ID)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, got[0].MatchedIndexes)

	assert.Empty(t, QuickFilter("xyzzy", movies))
}
