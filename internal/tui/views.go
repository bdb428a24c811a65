package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/cineradar/internal/domain"
	"github.com/mmcdole/cineradar/internal/service"
	"github.com/mmcdole/cineradar/internal/tmdb"
	"github.com/mmcdole/cineradar/internal/tui/components"
	"github.com/mmcdole/cineradar/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Initializing..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	if m.FilterModal.IsVisible() {
		return lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.FilterModal.View())
	}

	main := m.renderMain()
	main = lipgloss.NewStyle().Height(m.mainHeight()).MaxHeight(m.mainHeight()).Render(main)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.renderErrorLine(),
		main,
		m.renderFooter(),
	)
}

// renderHeader renders the logo, the search bar and the active filters
func (m Model) renderHeader() string {
	logo := styles.LogoStyle.Render(styles.Pad("CineRadar", logoWidth))
	top := logo + m.SearchBar.View()

	var parts []string
	switch m.Session.Mode() {
	case service.ModeFavorites:
		parts = append(parts, styles.AccentStyle.Render(fmt.Sprintf("★ Favorites (%d)", m.FavoritesSvc.Len())))
	case service.ModeResults:
		parts = append(parts, styles.AccentStyle.Render("Results"))
	default:
		parts = append(parts, styles.AccentStyle.Render("Home"))
	}
	parts = append(parts, filterSummary(m.Session.Filters()))
	line := strings.Join(parts, styles.DimStyle.Render("  ·  "))
	return top + "\n" + lipgloss.NewStyle().MaxWidth(m.Width).Render(line)
}

// filterSummary lists the filter values that differ from the defaults
func filterSummary(f domain.FilterState) string {
	defaults := domain.DefaultFilters()
	var set []string
	for _, field := range filterFields {
		if v := f.Get(field); v != defaults.Get(field) {
			set = append(set, fmt.Sprintf("%s: %s", field, domain.OptionLabel(field, v)))
		}
	}
	if len(set) == 0 {
		return styles.DimStyle.Render("no filters (f to edit)")
	}
	return styles.FilterStyle.Render(strings.Join(set, ", "))
}

// renderErrorLine shows the single active view error
func (m Model) renderErrorLine() string {
	viewErr := m.Session.ViewError()
	if viewErr == nil {
		return ""
	}
	style := styles.ErrorStyle
	if viewErr.Kind != domain.NetworkFailure {
		style = styles.WarningStyle
	}
	return style.Render(styles.Truncate(viewErr.Message(), m.Width))
}

// renderMain renders the home rows or the grid for the current mode
func (m Model) renderMain() string {
	switch m.Session.Mode() {
	case service.ModeHome:
		if m.LoadingHome && !m.Session.HomeLoaded() {
			return m.Spinner.View() + " " + styles.DimStyle.Render("Loading feeds...")
		}
		expanded := ""
		if _, src, ok := m.Session.Selected(); ok {
			expanded = string(src)
		}
		return m.Feeds.View(expanded, m.renderDetailPanel())

	case service.ModeResults:
		if m.Session.Searching() {
			return m.Spinner.View() + " " + styles.DimStyle.Render("Searching...")
		}
		if len(m.Session.Results()) == 0 {
			return ""
		}
	case service.ModeFavorites:
		if m.FavoritesSvc.Len() == 0 {
			return styles.DimStyle.Render("No favorites yet. Press * on any movie to add it.")
		}
	}

	entries := m.Session.Display(m.gridSource, m.Grid.Visible(), m.Grid.PerRow())
	return m.Grid.View(entries, m.renderDetailPanel())
}

// renderDetailPanel renders the panel for the selection, or "" if none
func (m Model) renderDetailPanel() string {
	movie, src, ok := m.Session.Selected()
	if !ok {
		return ""
	}
	posterURL := ""
	if movie.HasPoster() {
		posterURL = tmdb.ImageURL(m.opts.ImageBaseURL, m.opts.PosterSize, movie.PosterPath)
	}
	return m.DetailPanel.View(components.DetailView{
		Movie:     movie,
		Detail:    m.Session.Detail(),
		Source:    sourceLabel(src),
		PosterURL: posterURL,
		Loading:   m.LoadingDetail,
		Favorite:  m.FavoritesSvc.Contains(movie.ID),
	})
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.isLoading():
		text := "Loading..."
		if m.Session.Searching() {
			text = "Searching..."
		} else if m.LoadingDetail {
			text = "Loading details..."
		}
		left = m.Spinner.View() + " " + styles.DimStyle.Render(text)
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	var hints []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, styles.HelpKeyStyle.Render(h.Key)+" "+styles.HelpDescStyle.Render(h.Desc))
	}
	right := strings.Join(hints, "  ")

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		right = styles.HelpKeyStyle.Render("?") + " " + styles.HelpDescStyle.Render("help")
		gap = max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
BROWSE                          MOVIE
  h/j/k/l    Move                 Enter  Show / hide details
  /          Search by title      *      Toggle favorite
  f          Filters              o      Open trailer
  Ctrl+f     Filter this grid     i      Open IMDb page
  F          Favorites            p      Open poster
  H          Home                 Esc    Back
  r          Reload home          q      Quit

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}
