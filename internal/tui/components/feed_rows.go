package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/cineradar/internal/domain"
	"github.com/mmcdole/cineradar/internal/tui/styles"
)

// FeedSection is one home row
type FeedSection struct {
	Key    string // selection source name
	Title  string
	Movies []domain.Movie
	Err    error
}

// FeedRows shows the home feeds as horizontally scrolling card rows
type FeedRows struct {
	sections []FeedSection
	row      int
	cols     []int // cursor column per row
	offsets  []int // first visible card per row

	width   int
	height  int
	focused bool

	cardWidth  int
	isFavorite func(id int) bool
}

// NewFeedRows creates the home rows
func NewFeedRows(cardWidth int) FeedRows {
	if cardWidth < 12 {
		cardWidth = 12
	}
	return FeedRows{
		cardWidth:  cardWidth,
		isFavorite: func(int) bool { return false },
	}
}

// SetSections replaces the rows, keeping the cursor where it still fits
func (f *FeedRows) SetSections(sections []FeedSection) {
	f.sections = sections
	cols := make([]int, len(sections))
	offsets := make([]int, len(sections))
	copy(cols, f.cols)
	copy(offsets, f.offsets)
	f.cols = cols
	f.offsets = offsets
	if f.row >= len(sections) {
		f.row = 0
	}
	for i := range sections {
		f.clampCol(i)
	}
}

// SetFavoriteLookup sets the predicate used to mark favorite cards
func (f *FeedRows) SetFavoriteLookup(fn func(id int) bool) {
	f.isFavorite = fn
}

// SetSize updates the dimensions
func (f *FeedRows) SetSize(width, height int) {
	f.width = width
	f.height = height
	for i := range f.sections {
		f.scrollToCursor(i)
	}
}

// SetFocused sets the focus state
func (f *FeedRows) SetFocused(focused bool) {
	f.focused = focused
}

// visibleCards returns how many cards fit across the viewport
func (f FeedRows) visibleCards() int {
	n := f.width / f.cardWidth
	if n < 1 {
		return 1
	}
	return n
}

// Row returns the index of the active row
func (f FeedRows) Row() int { return f.row }

// Col returns the cursor column of the active row
func (f FeedRows) Col() int {
	if f.row >= len(f.cols) {
		return 0
	}
	return f.cols[f.row]
}

// SelectedMovie returns the movie under the cursor and its row key
func (f FeedRows) SelectedMovie() (domain.Movie, string, bool) {
	if f.row >= len(f.sections) {
		return domain.Movie{}, "", false
	}
	sec := f.sections[f.row]
	col := f.cols[f.row]
	if col < 0 || col >= len(sec.Movies) {
		return domain.Movie{}, "", false
	}
	return sec.Movies[col], sec.Key, true
}

// MoveUp activates the previous row
func (f *FeedRows) MoveUp() {
	if f.row > 0 {
		f.row--
	}
}

// MoveDown activates the next row
func (f *FeedRows) MoveDown() {
	if f.row < len(f.sections)-1 {
		f.row++
	}
}

// MoveLeft moves the cursor one card back in the active row
func (f *FeedRows) MoveLeft() {
	if f.row >= len(f.sections) {
		return
	}
	if f.cols[f.row] > 0 {
		f.cols[f.row]--
	}
	f.scrollToCursor(f.row)
}

// MoveRight moves the cursor one card forward in the active row
func (f *FeedRows) MoveRight() {
	if f.row >= len(f.sections) {
		return
	}
	if f.cols[f.row] < len(f.sections[f.row].Movies)-1 {
		f.cols[f.row]++
	}
	f.scrollToCursor(f.row)
}

func (f *FeedRows) clampCol(i int) {
	n := len(f.sections[i].Movies)
	if f.cols[i] >= n {
		f.cols[i] = max(n-1, 0)
	}
	f.scrollToCursor(i)
}

func (f *FeedRows) scrollToCursor(i int) {
	if i >= len(f.cols) {
		return
	}
	visible := f.visibleCards()
	if f.cols[i] < f.offsets[i] {
		f.offsets[i] = f.cols[i]
	}
	if f.cols[i] >= f.offsets[i]+visible {
		f.offsets[i] = f.cols[i] - visible + 1
	}
}

// Update handles arrow navigation
func (f FeedRows) Update(msg tea.Msg) (FeedRows, tea.Cmd, bool) {
	if !f.focused {
		return f, nil, false
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil, false
	}
	switch keyMsg.String() {
	case "up", "k":
		f.MoveUp()
	case "down", "j":
		f.MoveDown()
	case "left", "h":
		f.MoveLeft()
	case "right", "l":
		f.MoveRight()
	default:
		return f, nil, false
	}
	return f, nil, true
}

// View renders every row. panel is drawn beneath the row whose key equals
// expanded.
func (f FeedRows) View(expanded, panel string) string {
	if f.width <= 0 || f.height <= 0 {
		return ""
	}
	if len(f.sections) == 0 {
		return styles.DimStyle.Render("Loading feeds...")
	}

	var lines []string
	focusStart, focusEnd := 0, 0
	for i, sec := range f.sections {
		start := len(lines)
		lines = append(lines, f.renderRowTitle(i, sec))
		lines = append(lines, strings.Split(f.renderRowCards(i, sec), "\n")...)
		if panel != "" && sec.Key == expanded {
			lines = append(lines, strings.Split(panel, "\n")...)
		}
		if i == f.row {
			focusStart, focusEnd = start, len(lines)
		}
		lines = append(lines, "")
	}

	start := window(len(lines), f.height, focusStart, focusEnd)
	end := min(start+f.height, len(lines))
	return strings.Join(lines[start:end], "\n")
}

func (f FeedRows) renderRowTitle(i int, sec FeedSection) string {
	title := sec.Title
	style := styles.SubtitleStyle
	if i == f.row {
		style = styles.AccentStyle.Bold(true)
	}
	count := ""
	if len(sec.Movies) > 0 {
		count = styles.DimStyle.Render(fmt.Sprintf(" %d/%d", f.cols[i]+1, len(sec.Movies)))
	}
	return style.Render(title) + count
}

func (f FeedRows) renderRowCards(i int, sec FeedSection) string {
	if sec.Err != nil {
		return styles.WarningStyle.Render("  could not load this section")
	}
	if len(sec.Movies) == 0 {
		return styles.DimStyle.Render("  nothing here")
	}

	visible := f.visibleCards()
	from := f.offsets[i]
	to := min(from+visible, len(sec.Movies))

	cards := make([]string, 0, to-from)
	for j := from; j < to; j++ {
		selected := f.focused && i == f.row && j == f.cols[i]
		cards = append(cards, renderCard(sec.Movies[j], f.cardWidth, selected, f.isFavorite(sec.Movies[j].ID), nil))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}
