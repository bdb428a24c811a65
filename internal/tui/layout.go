package tui

import "github.com/mmcdole/cineradar/internal/domain"

// Layout constants
const (
	// HeaderHeight is the logo and search line plus the filter summary line
	HeaderHeight = 2
	// ErrorLineHeight is reserved for the single view error
	ErrorLineHeight = 1
	// FooterHeight is the status and help line
	FooterHeight = 1
	// ChromeHeight is everything around the main area
	ChromeHeight = HeaderHeight + ErrorLineHeight + FooterHeight

	// MinMainHeight keeps the main area usable in tiny terminals
	MinMainHeight = 5
	// logoWidth reserves room for the logo before the search bar
	logoWidth = 12
)

var filterFields = []domain.FilterField{
	domain.FilterYear,
	domain.FilterGenre,
	domain.FilterRating,
	domain.FilterSort,
}

// mainHeight returns the height available to the home rows or the grid
func (m Model) mainHeight() int {
	return max(m.Height-ChromeHeight, MinMainHeight)
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	m.SearchBar.SetWidth(m.Width - logoWidth - 2)
	m.Feeds.SetSize(m.Width, m.mainHeight())
	m.Grid.SetSize(m.Width, m.mainHeight())
	m.DetailPanel.SetWidth(m.Width - 1)
}
