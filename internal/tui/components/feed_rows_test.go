package components

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSections() []FeedSection {
	return []FeedSection{
		{Key: "trending", Title: "Trending this week", Movies: sampleMovies(10)},
		{Key: "topRated", Title: "Top rated", Err: errors.New("boom")},
		{Key: "upcoming", Title: "Coming soon", Movies: sampleMovies(2)},
	}
}

func TestFeedRows_CursorPerRow(t *testing.T) {
	f := NewFeedRows(26)
	f.SetSize(80, 40) // three cards across
	f.SetFocused(true)
	f.SetSections(sampleSections())

	for i := 0; i < 4; i++ {
		f.MoveRight()
	}
	movie, key, ok := f.SelectedMovie()
	require.True(t, ok)
	assert.Equal(t, 5, movie.ID)
	assert.Equal(t, "trending", key)

	f.MoveDown()
	_, _, ok = f.SelectedMovie()
	assert.False(t, ok, "failed section has nothing to select")

	f.MoveDown()
	f.MoveRight()
	f.MoveRight()
	movie, key, _ = f.SelectedMovie()
	assert.Equal(t, 2, movie.ID)
	assert.Equal(t, "upcoming", key)

	f.MoveUp()
	f.MoveUp()
	movie, _, _ = f.SelectedMovie()
	assert.Equal(t, 5, movie.ID, "each row remembers its column")
}

func TestFeedRows_ScrollsHorizontally(t *testing.T) {
	f := NewFeedRows(26)
	f.SetSize(80, 40)
	f.SetFocused(true)
	f.SetSections(sampleSections())

	view := f.View("", "")
	assert.Contains(t, view, "Movie 3")
	assert.NotContains(t, view, "Movie 4 ")

	for i := 0; i < 5; i++ {
		f.MoveRight()
	}
	view = f.View("", "")
	assert.Contains(t, view, "Movie 6")
	assert.NotContains(t, view, "Movie 1 ")
	assert.Contains(t, view, "could not load this section")
}

func TestFeedRows_PanelUnderExpandedRow(t *testing.T) {
	f := NewFeedRows(26)
	f.SetSize(80, 60)
	f.SetSections(sampleSections())

	view := f.View("upcoming", "PANEL")
	panelAt := strings.Index(view, "PANEL")
	require.NotEqual(t, -1, panelAt)
	assert.Less(t, strings.Index(view, "Coming soon"), panelAt)
	assert.Less(t, strings.Index(view, "Top rated"), panelAt)
}
