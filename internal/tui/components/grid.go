package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/cineradar/internal/domain"
	"github.com/mmcdole/cineradar/internal/layout"
	"github.com/mmcdole/cineradar/internal/search"
	"github.com/mmcdole/cineradar/internal/tui/styles"
)

// Card geometry
const (
	// Border adds 1 cell on each side
	BorderWidth  = 2
	BorderHeight = 2

	// Padding(0,1) inside the card border
	HorizontalPadding = 2

	// title, year and rating, favorite marker
	CardBodyLines = 3

	// Filter bar at the top of the grid when active
	FilterBarLines = 1
)

// Matcher narrows movies for the quick filter
type Matcher func(query string, movies []domain.Movie) []search.Match

// Grid lays movie cards out in rows. The expansion entry renders the detail
// panel full width before the selected row.
type Grid struct {
	movies []domain.Movie

	cursor int

	width   int
	height  int
	focused bool

	cardWidth int
	metrics   layout.Metrics

	isFavorite func(id int) bool

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	matcher      Matcher
	matches      []search.Match // nil when no query narrows the list
}

// NewGrid creates a grid whose cards are cardWidth cells wide including
// the border
func NewGrid(cardWidth int, containerRatio float64) Grid {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "filter: "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	if cardWidth < 12 {
		cardWidth = 12
	}
	return Grid{
		cardWidth:   cardWidth,
		metrics:     layout.Metrics{ContainerRatio: containerRatio, CardFootprint: float64(cardWidth)},
		filterInput: ti,
		matcher:     search.QuickFilter,
		isFavorite:  func(int) bool { return false },
	}
}

// SetMovies replaces the grid content and resets the cursor and filter
func (g *Grid) SetMovies(movies []domain.Movie) {
	g.movies = movies
	g.cursor = 0
	g.clearFilter()
}

// Refresh replaces the content but keeps the cursor and the filter query
func (g *Grid) Refresh(movies []domain.Movie) {
	g.movies = movies
	if g.filterActive {
		g.applyFilter()
	}
	g.clampCursor()
}

// SetMatcher sets the quick filter implementation. nil restores the default.
func (g *Grid) SetMatcher(m Matcher) {
	if m == nil {
		m = search.QuickFilter
	}
	g.matcher = m
}

// SetFavoriteLookup sets the predicate used to mark favorite cards
func (g *Grid) SetFavoriteLookup(fn func(id int) bool) {
	g.isFavorite = fn
}

// SetSize updates the grid dimensions
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
}

// SetFocused sets the focus state
func (g *Grid) SetFocused(focused bool) {
	g.focused = focused
}

// PerRow returns how many cards fit in one row
func (g Grid) PerRow() int {
	return layout.PerRow(g.width, g.metrics)
}

// Cursor returns the cursor position within the visible movies
func (g Grid) Cursor() int {
	return g.cursor
}

// Len returns the number of visible movies
func (g Grid) Len() int {
	if g.matches != nil {
		return len(g.matches)
	}
	return len(g.movies)
}

// IsEmpty returns true if there is nothing to show
func (g Grid) IsEmpty() bool {
	return g.Len() == 0
}

// Visible returns the movies left after the quick filter, in display order
func (g Grid) Visible() []domain.Movie {
	if g.matches == nil {
		return g.movies
	}
	out := make([]domain.Movie, len(g.matches))
	for i, m := range g.matches {
		out[i] = m.Movie
	}
	return out
}

// SelectedMovie returns the movie under the cursor
func (g Grid) SelectedMovie() (domain.Movie, bool) {
	visible := g.Visible()
	if g.cursor < 0 || g.cursor >= len(visible) {
		return domain.Movie{}, false
	}
	return visible[g.cursor], true
}

// MoveUp moves the cursor one row up
func (g *Grid) MoveUp() {
	if per := g.PerRow(); g.cursor-per >= 0 {
		g.cursor -= per
	}
}

// MoveDown moves the cursor one row down, landing on the last card of a
// short final row
func (g *Grid) MoveDown() {
	per := g.PerRow()
	n := g.Len()
	if layout.RowOf(g.cursor, per) == layout.RowOf(n-1, per) {
		return
	}
	g.cursor += per
	g.clampCursor()
}

// MoveLeft moves the cursor one card back
func (g *Grid) MoveLeft() {
	if g.cursor > 0 {
		g.cursor--
	}
}

// MoveRight moves the cursor one card forward
func (g *Grid) MoveRight() {
	if g.cursor < g.Len()-1 {
		g.cursor++
	}
}

func (g *Grid) clampCursor() {
	if g.cursor >= g.Len() {
		g.cursor = g.Len() - 1
	}
	if g.cursor < 0 {
		g.cursor = 0
	}
}

// StartFilter activates the quick filter input
func (g *Grid) StartFilter() tea.Cmd {
	g.filterActive = true
	return g.filterInput.Focus()
}

// IsFiltering returns true if the quick filter narrows the grid
func (g Grid) IsFiltering() bool {
	return g.filterActive
}

// IsFilterTyping returns true while the filter input has focus
func (g Grid) IsFilterTyping() bool {
	return g.filterActive && g.filterInput.Focused()
}

// FilterQuery returns the current quick filter text
func (g Grid) FilterQuery() string {
	return g.filterInput.Value()
}

// ClearFilter deactivates the filter and shows all movies
func (g *Grid) ClearFilter() {
	g.clearFilter()
}

func (g *Grid) clearFilter() {
	g.filterActive = false
	g.matches = nil
	g.filterInput.SetValue("")
	g.filterInput.Blur()
}

func (g *Grid) applyFilter() {
	query := strings.TrimSpace(g.filterInput.Value())
	if query == "" {
		g.matches = nil
		return
	}
	g.matches = g.matcher(query, g.movies)
	if g.matches == nil {
		g.matches = []search.Match{}
	}
	g.cursor = 0
}

// Update handles key input. Only the filter input and arrow navigation are
// consumed here; the model handles everything else.
func (g Grid) Update(msg tea.Msg) (Grid, tea.Cmd, bool) {
	if !g.focused {
		return g, nil, false
	}
	keyMsg, ok := msg.(tea.KeyMsg)

	if g.IsFilterTyping() {
		if ok {
			switch keyMsg.String() {
			case "esc":
				g.clearFilter()
				return g, nil, true
			case "enter":
				g.filterInput.Blur()
				return g, nil, true
			case "backspace":
				if g.filterInput.Value() == "" {
					g.clearFilter()
					return g, nil, true
				}
			}
		}
		var cmd tea.Cmd
		g.filterInput, cmd = g.filterInput.Update(msg)
		g.applyFilter()
		return g, cmd, true
	}

	if !ok {
		return g, nil, false
	}
	if g.filterActive && keyMsg.String() == "esc" {
		g.clearFilter()
		return g, nil, true
	}

	switch keyMsg.String() {
	case "up", "k":
		g.MoveUp()
	case "down", "j":
		g.MoveDown()
	case "left", "h":
		g.MoveLeft()
	case "right", "l":
		g.MoveRight()
	default:
		return g, nil, false
	}
	return g, nil, true
}

// View renders the entries produced by layout.Arrange for Visible(). panel
// is drawn where the expansion entry sits.
func (g Grid) View(entries []layout.Entry, panel string) string {
	if g.width <= 0 || g.height <= 0 {
		return ""
	}

	var header []string
	if g.filterActive {
		header = append(header, g.renderFilterBar())
	}
	bodyHeight := g.height - len(header)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	if g.IsEmpty() {
		msg := styles.DimStyle.Render("No movies to show")
		if g.filterActive {
			msg = styles.DimStyle.Render(fmt.Sprintf("No matches for %q", g.filterInput.Value()))
		}
		return strings.Join(append(header, msg), "\n")
	}

	lines, focusStart, focusEnd := g.renderBody(entries, panel)
	start := window(len(lines), bodyHeight, focusStart, focusEnd)
	end := start + bodyHeight
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(append(header, lines[start:end]...), "\n")
}

// renderBody draws rows of cards and returns the lines plus the range that
// should stay on screen: the cursor row, and the detail panel above it when
// the expansion belongs to that row.
func (g Grid) renderBody(entries []layout.Entry, panel string) (lines []string, focusStart, focusEnd int) {
	per := g.PerRow()
	highlights := g.highlightsByID()

	var row []string
	movieIdx := 0
	panelStart := -1
	cursorRow := false

	flush := func() {
		if len(row) == 0 {
			return
		}
		block := strings.Split(lipgloss.JoinHorizontal(lipgloss.Top, row...), "\n")
		if cursorRow {
			focusStart = len(lines)
			if panelStart >= 0 {
				focusStart = panelStart
			}
			focusEnd = len(lines) + len(block)
		}
		lines = append(lines, block...)
		row = nil
		cursorRow = false
		panelStart = -1
	}

	for _, e := range entries {
		if e.Kind == layout.EntryExpansion {
			flush()
			if panel != "" {
				panelStart = len(lines)
				lines = append(lines, strings.Split(panel, "\n")...)
			}
			continue
		}
		if movieIdx == g.cursor {
			cursorRow = true
		}
		selected := movieIdx == g.cursor && g.focused
		row = append(row, renderCard(e.Movie, g.cardWidth, selected, g.isFavorite(e.Movie.ID), highlights[e.Movie.ID]))
		movieIdx++
		if len(row) == per {
			flush()
		}
	}
	flush()
	return lines, focusStart, focusEnd
}

func (g Grid) highlightsByID() map[int][]int {
	if g.matches == nil {
		return nil
	}
	out := make(map[int][]int, len(g.matches))
	for _, m := range g.matches {
		out[m.Movie.ID] = m.MatchedIndexes
	}
	return out
}

func (g Grid) renderFilterBar() string {
	count := styles.DimStyle.Render(fmt.Sprintf(" %d/%d", g.Len(), len(g.movies)))
	return g.filterInput.View() + count
}

// window picks the first line to show so that [focusStart, focusEnd) is on
// screen, keeping it near the top third when scrolling is needed
func window(total, height, focusStart, focusEnd int) int {
	if total <= height {
		return 0
	}
	start := focusStart - height/3
	if focusEnd-start > height {
		start = focusEnd - height
	}
	if start > focusStart {
		start = focusStart
	}
	if start > total-height {
		start = total - height
	}
	if start < 0 {
		start = 0
	}
	return start
}
