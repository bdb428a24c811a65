package components

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/cineradar/internal/domain"
	"github.com/mmcdole/cineradar/internal/layout"
	"github.com/mmcdole/cineradar/internal/search"
)

func sampleMovies(n int) []domain.Movie {
	out := make([]domain.Movie, n)
	for i := range out {
		out[i] = domain.Movie{ID: i + 1, Title: fmt.Sprintf("Movie %d", i+1), PosterPath: "/p.jpg", ReleaseDate: "2020-01-01"}
	}
	return out
}

func newSizedGrid(width int, movies []domain.Movie) Grid {
	g := NewGrid(26, 0.85)
	g.SetSize(width, 40)
	g.SetFocused(true)
	g.SetMovies(movies)
	return g
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestGrid_PerRowFollowsWidth(t *testing.T) {
	assert.Equal(t, 3, newSizedGrid(100, nil).PerRow()) // floor(100*0.85/26)
	assert.Equal(t, 1, newSizedGrid(20, nil).PerRow())
}

func TestGrid_Navigation(t *testing.T) {
	g := newSizedGrid(100, sampleMovies(7)) // rows: 0-2, 3-5, 6

	g.MoveRight()
	g.MoveDown()
	assert.Equal(t, 4, g.Cursor())

	g.MoveDown() // short last row clamps to the last card
	assert.Equal(t, 6, g.Cursor())

	g.MoveDown()
	assert.Equal(t, 6, g.Cursor())

	g.MoveUp()
	assert.Equal(t, 3, g.Cursor())

	g.MoveLeft()
	g.MoveLeft()
	g.MoveLeft()
	g.MoveLeft()
	assert.Equal(t, 0, g.Cursor())
}

func TestGrid_QuickFilter(t *testing.T) {
	movies := []domain.Movie{
		{ID: 1, Title: "Alien"},
		{ID: 2, Title: "Brazil"},
		{ID: 3, Title: "Aliens"},
	}
	g := newSizedGrid(100, movies)
	g.StartFilter()
	require.True(t, g.IsFilterTyping())

	for _, r := range "lien" {
		g, _, _ = g.Update(runes(string(r)))
	}
	assert.Equal(t, "lien", g.FilterQuery())
	require.Equal(t, 2, g.Len())
	for _, m := range g.Visible() {
		assert.Contains(t, m.Title, "Alien")
	}

	// enter keeps the narrowed list but hands keys back to navigation
	g, _, _ = g.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, g.IsFilterTyping())
	assert.True(t, g.IsFiltering())

	g, _, handled := g.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, handled)
	assert.False(t, g.IsFiltering())
	assert.Equal(t, 3, g.Len())
}

func TestGrid_CustomMatcher(t *testing.T) {
	g := newSizedGrid(100, sampleMovies(3))
	g.SetMatcher(func(string, []domain.Movie) []search.Match { return nil })
	g.StartFilter()
	g, _, _ = g.Update(runes("x"))
	assert.True(t, g.IsEmpty())
	assert.Contains(t, g.View(nil, ""), `No matches for "x"`)
}

func TestGrid_ViewPlacesPanelBeforeSelectedRow(t *testing.T) {
	movies := sampleMovies(6)
	g := newSizedGrid(100, movies)

	entries := layout.Arrange(g.Visible(), 5, true, g.PerRow())
	view := g.View(entries, "DETAIL PANEL")

	panelAt := strings.Index(view, "DETAIL PANEL")
	require.NotEqual(t, -1, panelAt)
	assert.Less(t, strings.Index(view, "Movie 3"), panelAt, "first row above the panel")
	assert.Greater(t, strings.Index(view, "Movie 4"), panelAt, "selected row below the panel")
}

func TestGrid_RefreshKeepsCursor(t *testing.T) {
	g := newSizedGrid(100, sampleMovies(5))
	g.MoveRight()
	g.MoveRight()

	g.Refresh(sampleMovies(5))
	assert.Equal(t, 2, g.Cursor())

	g.Refresh(sampleMovies(2))
	assert.Equal(t, 1, g.Cursor())
}

func TestWindow(t *testing.T) {
	assert.Equal(t, 0, window(10, 20, 5, 8), "fits without scrolling")
	assert.Equal(t, 0, window(100, 30, 5, 10))
	assert.Equal(t, 40, window(100, 30, 50, 60))
	assert.Equal(t, 70, window(100, 30, 95, 100), "never past the end")
}
