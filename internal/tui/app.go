package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/cineradar/internal/domain"
	"github.com/mmcdole/cineradar/internal/search"
	"github.com/mmcdole/cineradar/internal/service"
	"github.com/mmcdole/cineradar/internal/tui/components"
	"github.com/mmcdole/cineradar/internal/tui/styles"
)

// ApplicationState represents the current overlay state
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
)

// Options are the display settings taken from the config
type Options struct {
	PartialFeeds   bool
	CardWidth      int
	ContainerRatio float64
	ImageBaseURL   string
	PosterSize     string
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State   ApplicationState
	Ready   bool
	Session *service.Session

	// Services
	CatalogSvc   *service.CatalogService
	FavoritesSvc *service.FavoritesService
	Opener       URLOpener

	// UI Components
	SearchBar   components.SearchBar
	FilterModal components.FilterModal
	Feeds       components.FeedRows
	Grid        components.Grid
	DetailPanel components.DetailPanel
	Spinner     spinner.Model

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg     string
	StatusIsErr   bool
	LoadingHome   bool
	LoadingDetail bool

	opts   Options
	keys   KeyMap
	logger *slog.Logger

	// gridSource is the list the grid currently holds
	gridSource service.Source
	// searchSeq identifies the latest submitted search
	searchSeq uint64
	// detailCancel aborts the in-flight enrichment of the previous selection
	detailCancel context.CancelFunc
	title        string
}

// NewModel creates a new application model
func NewModel(
	catalogSvc *service.CatalogService,
	favoritesSvc *service.FavoritesService,
	opener URLOpener,
	opts Options,
	logger *slog.Logger,
) Model {
	if logger == nil {
		logger = slog.Default()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	grid := components.NewGrid(opts.CardWidth, opts.ContainerRatio)
	grid.SetFavoriteLookup(favoritesSvc.Contains)
	feeds := components.NewFeedRows(opts.CardWidth)
	feeds.SetFavoriteLookup(favoritesSvc.Contains)
	feeds.SetFocused(true)

	session := service.NewSession()
	return Model{
		State:        StateBrowsing,
		Session:      session,
		CatalogSvc:   catalogSvc,
		FavoritesSvc: favoritesSvc,
		Opener:       opener,
		SearchBar:    components.NewSearchBar(),
		FilterModal:  components.NewFilterModal(),
		Feeds:        feeds,
		Grid:         grid,
		DetailPanel:  components.NewDetailPanel(),
		Spinner:      sp,
		LoadingHome:  true,
		opts:         opts,
		keys:         DefaultKeyMap(),
		logger:       logger,
		title:        session.WindowTitle(),
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		LoadHomeCmd(m.CatalogSvc),
		m.Spinner.Tick,
		tea.SetWindowTitle(m.title),
	}
	if w := m.FavoritesSvc.Warning(); w != "" {
		cmds = append(cmds, func() tea.Msg {
			return StatusMsg{Message: w, Type: StatusWarning}
		})
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	return next.withTitle(cmd)
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !m.isLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case HomeLoadedMsg:
		m.LoadingHome = false
		m.Session.ApplyHome(msg.Feeds, m.opts.PartialFeeds)
		m.Feeds.SetSections(feedSections(m.Session.Home()))
		return m, nil

	case SearchResultsMsg:
		if msg.Seq != m.searchSeq || m.Session.Mode() != service.ModeResults {
			return m, nil
		}
		if msg.Err != nil {
			m.logger.Error("search failed", "query", msg.Query, "error", msg.Err)
			m.Session.ApplySearchError(msg.Err)
			return m, nil
		}
		m.Session.ApplyResults(msg.Movies)
		m.cancelDetail()
		m.syncGrid(true)
		return m, nil

	case DetailLoadedMsg:
		if msg.Token != m.Session.Token() {
			return m, nil
		}
		m.LoadingDetail = false
		if msg.Err != nil {
			if !errors.Is(msg.Err, domain.ErrStaleSelection) {
				m.logger.Warn("detail unavailable", "error", msg.Err)
			}
			return m, nil
		}
		m.Session.ApplyDetail(msg.Token, msg.Detail)
		return m, nil

	case URLOpenedMsg:
		if msg.Err != nil {
			m.logger.Error("failed to open url", "label", msg.Label, "error", msg.Err)
			return m, m.setStatus(fmt.Sprintf("Could not open %s: %v", msg.Label, msg.Err), true)
		}
		return m, m.setStatus("Opened "+msg.Label, false)

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.Type == StatusError || msg.Type == StatusWarning)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// withTitle appends a window title update when the session title changed
func (m Model) withTitle(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	title := m.Session.WindowTitle()
	if title == m.title {
		return m, cmd
	}
	m.title = title
	return m, tea.Batch(cmd, tea.SetWindowTitle(title))
}

func (m Model) isLoading() bool {
	return m.LoadingHome || m.LoadingDetail || m.Session.Searching()
}

func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.StatusMsg = msg
	m.StatusIsErr = isErr
	return ClearStatusCmd()
}

// submitSearch starts a search for the current query and filters
func (m *Model) submitSearch() tea.Cmd {
	if !m.Session.BeginSearch() {
		return m.setStatus("Type a title or choose a filter first", false)
	}
	m.cancelDetail()
	m.searchSeq++
	m.syncGrid(false)
	return tea.Batch(
		ResolveCmd(m.CatalogSvc, m.searchSeq, m.Session.Query(), m.Session.Filters()),
		m.Spinner.Tick,
	)
}

// selectMovie toggles the selection and starts loading its detail
func (m *Model) selectMovie(movie domain.Movie, source service.Source) tea.Cmd {
	m.cancelDetail()
	token, needsDetail := m.Session.Select(movie, source)
	if !needsDetail {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.detailCancel = cancel
	m.LoadingDetail = true
	return tea.Batch(EnrichCmd(ctx, m.CatalogSvc, token, movie.ID), m.Spinner.Tick)
}

// cancelDetail aborts any in-flight enrichment
func (m *Model) cancelDetail() {
	if m.detailCancel != nil {
		m.detailCancel()
		m.detailCancel = nil
	}
	m.LoadingDetail = false
}

// toggleFavorite adds or removes the focused movie
func (m *Model) toggleFavorite() tea.Cmd {
	movie, ok := m.focusedMovie()
	if !ok {
		return nil
	}
	added, err := m.FavoritesSvc.Toggle(movie)
	if err != nil {
		return m.setStatus(fmt.Sprintf("Could not save favorites: %v", err), true)
	}
	if m.Session.Mode() == service.ModeFavorites {
		if sel, src, ok := m.Session.Selected(); ok && !added && src == service.SourceFavorites && sel.ID == movie.ID {
			m.cancelDetail()
			m.Session.ClearSelection()
		}
		m.syncGrid(false)
	}
	if added {
		return m.setStatus("Added to favorites: "+movie.DisplayTitle(), false)
	}
	return m.setStatus("Removed from favorites: "+movie.DisplayTitle(), false)
}

// focusedMovie is the selection if there is one, else the movie under the cursor
func (m Model) focusedMovie() (domain.Movie, bool) {
	if movie, _, ok := m.Session.Selected(); ok {
		return movie, true
	}
	return m.cursorMovie()
}

// cursorMovie returns the movie under the cursor and the list it belongs to
func (m Model) cursorMovie() (domain.Movie, bool) {
	movie, _, ok := m.cursorSelection()
	return movie, ok
}

func (m Model) cursorSelection() (domain.Movie, service.Source, bool) {
	if m.Session.Mode() == service.ModeHome {
		movie, key, ok := m.Feeds.SelectedMovie()
		return movie, service.Source(key), ok
	}
	movie, ok := m.Grid.SelectedMovie()
	return movie, m.gridSource, ok
}

// syncGrid loads the list for the current mode into the grid. reset moves
// the cursor back to the first card.
func (m *Model) syncGrid(reset bool) {
	var source service.Source
	var movies []domain.Movie
	switch m.Session.Mode() {
	case service.ModeFavorites:
		source = service.SourceFavorites
		movies = m.FavoritesSvc.List()
	case service.ModeResults:
		source = service.SourceResults
		movies = m.Session.Results()
	default:
		m.gridSource = ""
		m.Grid.SetFocused(false)
		m.Feeds.SetFocused(true)
		return
	}

	m.Grid.SetFocused(true)
	m.Feeds.SetFocused(false)
	if source == service.SourceFavorites {
		m.Grid.SetMatcher(m.favoritesMatcher())
	} else {
		m.Grid.SetMatcher(nil)
	}
	if reset || source != m.gridSource {
		m.Grid.SetMovies(movies)
	} else {
		m.Grid.Refresh(movies)
	}
	m.gridSource = source
}

// favoritesMatcher ranks favorites with the favorites service instead of
// the default title matcher
func (m Model) favoritesMatcher() components.Matcher {
	favs := m.FavoritesSvc
	return func(query string, _ []domain.Movie) []search.Match {
		found := favs.Find(query)
		matches := make([]search.Match, len(found))
		for i, movie := range found {
			matches[i] = search.Match{Movie: movie, Index: i}
		}
		return matches
	}
}

func feedSections(home service.HomeFeeds) []components.FeedSection {
	results := home.Sections()
	sections := make([]components.FeedSection, 0, len(results))
	for _, r := range results {
		sections = append(sections, components.FeedSection{
			Key:    string(service.FeedSource(r.Name)),
			Title:  r.Name.Title(),
			Movies: r.Movies,
			Err:    r.Err,
		})
	}
	return sections
}

// sourceLabel names a selection source for the detail panel
func sourceLabel(src service.Source) string {
	switch src {
	case service.SourceResults:
		return "search results"
	case service.SourceFavorites:
		return "favorites"
	case "":
		return ""
	default:
		return service.FeedName(src).Title()
	}
}
