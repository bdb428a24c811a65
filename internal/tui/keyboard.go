package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/cineradar/internal/service"
	"github.com/mmcdole/cineradar/internal/tmdb"
	"github.com/mmcdole/cineradar/internal/tui/components"
)

// handleKeyMsg routes a key press. Overlays and focused inputs take keys
// before the global bindings.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.cancelDetail()
		return m, tea.Quit
	}

	if m.State == StateHelp {
		m.State = StateBrowsing
		return m, nil
	}

	if m.FilterModal.IsVisible() {
		_, action, filters := m.FilterModal.HandleKey(msg.String())
		switch action {
		case components.FilterApply:
			for _, field := range filterFields {
				m.Session.SetFilter(field, filters.Get(field))
			}
			return m, m.submitSearch()
		case components.FilterClear:
			m.Session.ClearFilters()
			return m, m.submitSearch()
		}
		return m, nil
	}

	if m.SearchBar.Focused() {
		var cmd tea.Cmd
		var event components.SearchEvent
		m.SearchBar, cmd, event = m.SearchBar.Update(msg)
		switch event {
		case components.SearchSubmit:
			m.Session.SetQuery(m.SearchBar.Value())
			return m, m.submitSearch()
		case components.SearchCancel:
			m.SearchBar.SetValue(m.Session.Query())
		}
		return m, cmd
	}

	if m.Grid.IsFilterTyping() {
		var cmd tea.Cmd
		m.Grid, cmd, _ = m.Grid.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancelDetail()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, m.keys.Search):
		return m, m.SearchBar.Focus()

	case key.Matches(msg, m.keys.Filters):
		m.FilterModal.Show(m.Session.Filters())
		return m, nil

	case key.Matches(msg, m.keys.Favorites):
		m.cancelDetail()
		m.Session.ToggleFavoritesView()
		if m.Session.Mode() == service.ModeFavorites {
			// drop any search still in flight
			m.searchSeq++
			m.SearchBar.SetValue("")
		}
		m.syncGrid(true)
		return m, nil

	case key.Matches(msg, m.keys.QuickFilter):
		if m.Session.Mode() == service.ModeHome {
			return m, nil
		}
		return m, m.Grid.StartFilter()

	case key.Matches(msg, m.keys.Home):
		return m.goHome()

	case key.Matches(msg, m.keys.Escape):
		return m.handleEscape()

	case key.Matches(msg, m.keys.Enter):
		movie, source, ok := m.cursorSelection()
		if !ok {
			return m, nil
		}
		return m, m.selectMovie(movie, source)

	case key.Matches(msg, m.keys.ToggleFavorite):
		return m, m.toggleFavorite()

	case key.Matches(msg, m.keys.Trailer):
		return m, m.openDetailURL("trailer", m.Session.Detail().TrailerURL)

	case key.Matches(msg, m.keys.IMDb):
		return m, m.openDetailURL("IMDb", m.Session.Detail().IMDbURL)

	case key.Matches(msg, m.keys.Poster):
		movie, ok := m.focusedMovie()
		if !ok || !movie.HasPoster() {
			return m, m.setStatus("No poster for this movie", false)
		}
		return m, OpenURLCmd(m.Opener, "poster", tmdb.ImageURL(m.opts.ImageBaseURL, m.opts.PosterSize, movie.PosterPath))

	case key.Matches(msg, m.keys.Refresh):
		if m.Session.Mode() != service.ModeHome || m.LoadingHome {
			return m, nil
		}
		m.LoadingHome = true
		m.Session.DismissError()
		return m, tea.Batch(LoadHomeCmd(m.CatalogSvc), m.Spinner.Tick)
	}

	return m.handleNavigation(msg)
}

// handleNavigation moves the cursor of whichever list is on screen
func (m Model) handleNavigation(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.Session.Mode() == service.ModeHome {
		var cmd tea.Cmd
		m.Feeds, cmd, _ = m.Feeds.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.Grid, cmd, _ = m.Grid.Update(msg)
	return m, cmd
}

// handleEscape backs out one level: quick filter, selection, error, then
// the current view
func (m Model) handleEscape() (Model, tea.Cmd) {
	switch {
	case m.Grid.IsFiltering():
		m.Grid.ClearFilter()
		return m, nil
	case hasSelection(m.Session):
		m.cancelDetail()
		m.Session.ClearSelection()
		return m, nil
	case m.Session.ViewError() != nil:
		m.Session.DismissError()
		return m, nil
	case m.Session.Mode() != service.ModeHome:
		return m.goHome()
	}
	return m, nil
}

func (m Model) goHome() (Model, tea.Cmd) {
	m.cancelDetail()
	m.Session.ResetToHome()
	m.SearchBar.SetValue("")
	m.syncGrid(true)
	return m, nil
}

func (m *Model) openDetailURL(label, rawURL string) tea.Cmd {
	if _, _, ok := m.Session.Selected(); !ok {
		return m.setStatus("Select a movie first", false)
	}
	if rawURL == "" {
		if m.LoadingDetail {
			return m.setStatus("Still loading details", false)
		}
		return m.setStatus("No "+label+" available", false)
	}
	return OpenURLCmd(m.Opener, label, rawURL)
}

func hasSelection(s *service.Session) bool {
	_, _, ok := s.Selected()
	return ok
}
