package components

import (
	"fmt"
	"strings"

	"github.com/mmcdole/cineradar/internal/domain"
	"github.com/mmcdole/cineradar/internal/tui/styles"
)

// FilterAction is what the user confirmed in the filter modal
type FilterAction int

const (
	FilterNone FilterAction = iota
	FilterApply
	FilterClear
)

var filterFields = []domain.FilterField{
	domain.FilterYear,
	domain.FilterGenre,
	domain.FilterRating,
	domain.FilterSort,
}

// Rows below the fields
const (
	rowApply = iota + 4
	rowClear
	rowCount
)

const filterModalWidth = 36

// FilterModal is a popup for editing the year, genre, rating and sort filters.
// Up/down moves between rows, left/right cycles the value of a field.
type FilterModal struct {
	visible bool
	draft   domain.FilterState
	cursor  int
}

// NewFilterModal creates a new filter modal
func NewFilterModal() FilterModal {
	return FilterModal{}
}

// Show displays the modal seeded with the current filters
func (m *FilterModal) Show(current domain.FilterState) {
	m.visible = true
	m.draft = current
	m.cursor = 0
}

// Hide dismisses the modal
func (m *FilterModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m FilterModal) IsVisible() bool {
	return m.visible
}

// Draft returns the filters being edited
func (m FilterModal) Draft() domain.FilterState {
	return m.draft
}

// HandleKey processes a key press and returns (handled, action, filters).
// filters is meaningful only for FilterApply.
func (m *FilterModal) HandleKey(key string) (handled bool, action FilterAction, filters domain.FilterState) {
	if !m.visible {
		return false, FilterNone, domain.FilterState{}
	}

	switch key {
	case "j", "down", "tab":
		m.cursor = (m.cursor + 1) % rowCount
	case "k", "up", "shift+tab":
		m.cursor = (m.cursor + rowCount - 1) % rowCount
	case "l", "right":
		m.cycle(1)
	case "h", "left":
		m.cycle(-1)
	case "enter":
		switch m.cursor {
		case rowApply:
			m.visible = false
			return true, FilterApply, m.draft
		case rowClear:
			m.visible = false
			m.draft = domain.DefaultFilters()
			return true, FilterClear, m.draft
		default:
			m.cycle(1)
		}
	case "a":
		m.visible = false
		return true, FilterApply, m.draft
	case "c":
		m.visible = false
		m.draft = domain.DefaultFilters()
		return true, FilterClear, m.draft
	case "esc", "f":
		m.visible = false
	}

	return true, FilterNone, domain.FilterState{} // consume all keys when visible
}

// cycle moves the field under the cursor to the next or previous option
func (m *FilterModal) cycle(delta int) {
	if m.cursor >= len(filterFields) {
		return
	}
	field := filterFields[m.cursor]
	opts := domain.OptionsFor(field)
	if len(opts) == 0 {
		return
	}
	current := 0
	for i, opt := range opts {
		if opt.Value == m.draft.Get(field) {
			current = i
			break
		}
	}
	next := (current + delta + len(opts)) % len(opts)
	m.draft = m.draft.With(field, opts[next].Value)
}

// View renders the filter modal
func (m FilterModal) View() string {
	if !m.visible {
		return ""
	}

	var lines []string
	for i, field := range filterFields {
		label := styles.Pad(field.String(), 8)
		value := domain.OptionLabel(field, m.draft.Get(field))
		if value == "" {
			value = domain.OptionsFor(field)[0].Label
		}
		text := fmt.Sprintf("%s ‹ %s ›", label, value)
		lines = append(lines, m.renderRow(i, text))
	}
	lines = append(lines, "")
	lines = append(lines, m.renderRow(rowApply, "  Apply"))
	lines = append(lines, m.renderRow(rowClear, "  Clear filters"))

	help := styles.DimStyle.Render("←/→ change · a apply · c clear · esc close")
	content := strings.Join(lines, "\n")

	return styles.ModalStyle.
		Render(styles.ModalTitleStyle.Render("Filters") + "\n" + content + "\n\n" + help)
}

func (m FilterModal) renderRow(row int, text string) string {
	style := styles.NormalItemStyle
	if row == m.cursor {
		style = styles.SelectedItemStyle
	} else if row < len(filterFields) && m.draft.Get(filterFields[row]) != domain.DefaultFilters().Get(filterFields[row]) {
		style = styles.ActiveItemStyle
	}
	return style.Render(styles.Pad(text, filterModalWidth))
}
