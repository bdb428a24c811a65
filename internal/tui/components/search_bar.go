package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/cineradar/internal/tui/styles"
)

// SearchEvent reports what a key did to the search bar
type SearchEvent int

const (
	SearchNone SearchEvent = iota
	SearchSubmit
	SearchCancel
)

// SearchBar is the always-visible query input in the header
type SearchBar struct {
	input textinput.Model
	width int
}

// NewSearchBar creates a new search bar
func NewSearchBar() SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search movies..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return SearchBar{input: ti}
}

// Focus starts editing
func (s *SearchBar) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur stops editing and keeps the text
func (s *SearchBar) Blur() {
	s.input.Blur()
}

// Focused reports whether the bar has keyboard focus
func (s SearchBar) Focused() bool {
	return s.input.Focused()
}

// Value returns the query text
func (s SearchBar) Value() string {
	return s.input.Value()
}

// SetValue replaces the query text
func (s *SearchBar) SetValue(v string) {
	s.input.SetValue(v)
}

// SetWidth updates the input width
func (s *SearchBar) SetWidth(width int) {
	s.width = width
	s.input.Width = max(width-lipgloss.Width(s.input.Prompt)-1, 10)
}

// Update routes input while focused. Enter submits and esc cancels; both
// release focus.
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd, SearchEvent) {
	if !s.input.Focused() {
		return s, nil, SearchNone
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			s.input.Blur()
			return s, nil, SearchSubmit
		case "esc":
			s.input.Blur()
			return s, nil, SearchCancel
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd, SearchNone
}

// View renders the search bar
func (s SearchBar) View() string {
	return s.input.View()
}
