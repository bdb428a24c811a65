// Package layout arranges movie lists into display sequences for a grid that
// shows the selected movie's detail panel inline, above the selected row.
package layout

import (
	"math"

	"github.com/mmcdole/cineradar/internal/domain"
)

// Metrics describes how wide the grid is relative to the viewport and how much
// horizontal space a single card takes
type Metrics struct {
	ContainerRatio float64 // share of the viewport the grid occupies
	CardFootprint  float64 // width of one card including its gutter
}

// DefaultMetrics matches an 85% wide container with ~310 unit cards
var DefaultMetrics = Metrics{ContainerRatio: 0.85, CardFootprint: 310}

// PerRow returns how many cards fit in a row, never less than one
func PerRow(viewportWidth int, m Metrics) int {
	if m.ContainerRatio <= 0 {
		m.ContainerRatio = DefaultMetrics.ContainerRatio
	}
	if m.CardFootprint <= 0 {
		m.CardFootprint = DefaultMetrics.CardFootprint
	}
	n := int(math.Floor(float64(viewportWidth) * m.ContainerRatio / m.CardFootprint))
	if n < 1 {
		return 1
	}
	return n
}

// RowOf returns the zero-indexed row holding position index
func RowOf(index, perRow int) int {
	if perRow < 1 {
		perRow = 1
	}
	return index / perRow
}

// EntryKind tags a display entry
type EntryKind int

const (
	EntryMovie EntryKind = iota
	EntryExpansion
)

// Entry is one slot in the display sequence. Movie is the card for
// EntryMovie and the selected movie for EntryExpansion.
type Entry struct {
	Kind  EntryKind
	Movie domain.Movie
}

// Arrange returns the display sequence for movies. When the selected movie is
// in the list, exactly one expansion entry is placed immediately before the
// first movie of the selected movie's row; every movie follows in original
// order. Otherwise all entries are movies.
func Arrange(movies []domain.Movie, selectedID int, hasSelection bool, perRow int) []Entry {
	selectedIdx := -1
	if hasSelection {
		for i, m := range movies {
			if m.ID == selectedID {
				selectedIdx = i
				break
			}
		}
	}

	size := len(movies)
	if selectedIdx >= 0 {
		size++
	}
	entries := make([]Entry, 0, size)

	if selectedIdx < 0 {
		for _, m := range movies {
			entries = append(entries, Entry{Kind: EntryMovie, Movie: m})
		}
		return entries
	}

	rowStart := RowOf(selectedIdx, perRow) * max(perRow, 1)
	for i, m := range movies {
		if i == rowStart {
			entries = append(entries, Entry{Kind: EntryExpansion, Movie: movies[selectedIdx]})
		}
		entries = append(entries, Entry{Kind: EntryMovie, Movie: m})
	}
	return entries
}

// ExpansionIndex returns the position of the expansion entry, or -1
func ExpansionIndex(entries []Entry) int {
	for i, e := range entries {
		if e.Kind == EntryExpansion {
			return i
		}
	}
	return -1
}
