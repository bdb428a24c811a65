package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/cineradar/internal/domain"
)

func numbered(n int) []domain.Movie {
	movies := make([]domain.Movie, n)
	for i := range movies {
		movies[i] = domain.Movie{ID: i + 100, PosterPath: "/p.jpg"}
	}
	return movies
}

func TestPerRow(t *testing.T) {
	assert.Equal(t, 4, PerRow(1600, DefaultMetrics)) // 1360 / 310
	assert.Equal(t, 1, PerRow(300, DefaultMetrics))
	assert.Equal(t, 1, PerRow(0, DefaultMetrics))
	assert.Equal(t, 6, PerRow(200, Metrics{ContainerRatio: 0.9, CardFootprint: 30}))
	assert.Equal(t, 4, PerRow(1600, Metrics{}), "zero metrics fall back to defaults")
}

func TestRowOf(t *testing.T) {
	assert.Equal(t, 2, RowOf(9, 4))
	assert.Equal(t, 0, RowOf(3, 4))
	assert.Equal(t, 5, RowOf(5, 0))
}

func TestArrange_MarkerBeforeSelectedRow(t *testing.T) {
	movies := numbered(20)
	selected := movies[9]

	entries := Arrange(movies, selected.ID, true, 4)
	require.Len(t, entries, 21)
	assert.Equal(t, 8, ExpansionIndex(entries))
	assert.Equal(t, selected.ID, entries[8].Movie.ID)

	for i := 0; i < 8; i++ {
		assert.Equal(t, EntryMovie, entries[i].Kind)
		assert.Equal(t, movies[i].ID, entries[i].Movie.ID)
	}
	for i := 8; i < 20; i++ {
		assert.Equal(t, EntryMovie, entries[i+1].Kind)
		assert.Equal(t, movies[i].ID, entries[i+1].Movie.ID)
	}
}

func TestArrange_SingleMarker(t *testing.T) {
	movies := numbered(7)
	for perRow := 1; perRow <= 8; perRow++ {
		for sel := range movies {
			entries := Arrange(movies, movies[sel].ID, true, perRow)
			count := 0
			for _, e := range entries {
				if e.Kind == EntryExpansion {
					count++
				}
			}
			assert.Equal(t, 1, count)
			assert.Equal(t, RowOf(sel, perRow)*perRow, ExpansionIndex(entries))
		}
	}
}

func TestArrange_NoExpansion(t *testing.T) {
	movies := numbered(5)

	assert.Equal(t, -1, ExpansionIndex(Arrange(movies, 0, false, 3)))
	assert.Equal(t, -1, ExpansionIndex(Arrange(movies, 999, true, 3)), "selection outside list")
	assert.Empty(t, Arrange(nil, 100, true, 3))
}
