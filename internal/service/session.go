package service

import (
	"fmt"
	"strings"

	"github.com/mmcdole/cineradar/internal/domain"
	"github.com/mmcdole/cineradar/internal/layout"
)

const appTitle = "CineRadar"

// Mode is what the main area currently shows
type Mode int

const (
	ModeHome Mode = iota
	ModeResults
	ModeFavorites
)

// Source names the list a selection was made from. Home feeds use their
// FeedName.
type Source string

const (
	SourceResults   Source = "results"
	SourceFavorites Source = "favorites"
)

// FeedSource returns the selection source for a home feed
func FeedSource(name FeedName) Source { return Source(name) }

// Session holds the browse state: query, filters, results, selection,
// detail, home feeds, favorites view flag and the single view error.
// It is not safe for concurrent use; the TUI mutates it from Update only.
type Session struct {
	query         string
	filters       domain.FilterState
	searchActive  bool
	searching     bool
	results       []domain.Movie
	showFavorites bool

	selected  *domain.Movie
	selSource Source
	token     uint64
	detail    domain.MovieDetail

	home       HomeFeeds
	homeLoaded bool

	viewErr *domain.ViewError
}

// NewSession creates a session on the home view with default filters
func NewSession() *Session {
	return &Session{filters: domain.DefaultFilters()}
}

// Query returns the free-text query
func (s *Session) Query() string { return s.query }

// SetQuery replaces the free-text query
func (s *Session) SetQuery(q string) { s.query = q }

// Filters returns the current filter state
func (s *Session) Filters() domain.FilterState { return s.filters }

// SetFilter changes one filter value
func (s *Session) SetFilter(field domain.FilterField, value string) {
	s.filters = s.filters.With(field, value)
}

// ClearFilters restores the default filters
func (s *Session) ClearFilters() {
	s.filters = domain.DefaultFilters()
}

// CanSubmit reports whether a search may run: a non-blank query or any
// filter value
func (s *Session) CanSubmit() bool {
	return strings.TrimSpace(s.query) != "" || s.filters.Active()
}

// BeginSearch clears the view error, leaves the favorites view and marks
// search mode active. It returns false and changes nothing when there is
// nothing to search for.
func (s *Session) BeginSearch() bool {
	if !s.CanSubmit() {
		return false
	}
	s.showFavorites = false
	s.viewErr = nil
	s.searchActive = true
	s.searching = true
	return true
}

// ApplyResults replaces the result list and clears the selection. An empty
// list raises EmptyResult, anything else clears the view error.
func (s *Session) ApplyResults(movies []domain.Movie) {
	s.searching = false
	s.results = movies
	s.ClearSelection()
	if len(movies) == 0 {
		s.viewErr = domain.NewViewError(domain.EmptyResult, nil)
		return
	}
	s.viewErr = nil
}

// ApplySearchError records a failed search. The previous results stay.
func (s *Session) ApplySearchError(err error) {
	s.searching = false
	s.viewErr = domain.NewViewError(domain.NetworkFailure, err)
}

// ResetToHome leaves search mode and restores the default filters
func (s *Session) ResetToHome() {
	s.searchActive = false
	s.searching = false
	s.showFavorites = false
	s.results = nil
	s.query = ""
	s.filters = domain.DefaultFilters()
	s.viewErr = nil
	s.ClearSelection()
}

// ToggleFavoritesView switches between the favorites view and the previous
// view. Entering the favorites view resets search mode.
func (s *Session) ToggleFavoritesView() {
	s.showFavorites = !s.showFavorites
	if s.showFavorites {
		s.searchActive = false
		s.searching = false
		s.query = ""
		s.results = nil
		s.ClearSelection()
	}
}

// Select makes movie the selection and returns the token the detail result
// must carry. Selecting the current selection again clears it, in which case
// needsDetail is false.
func (s *Session) Select(movie domain.Movie, source Source) (token uint64, needsDetail bool) {
	if s.selected != nil && s.selected.ID == movie.ID && s.selSource == source {
		s.ClearSelection()
		return 0, false
	}
	s.token++
	m := movie
	s.selected = &m
	s.selSource = source
	s.detail = domain.MovieDetail{}
	return s.token, true
}

// ClearSelection drops the selection and its detail. Any in-flight detail
// result becomes stale.
func (s *Session) ClearSelection() {
	if s.selected != nil {
		s.token++
	}
	s.selected = nil
	s.selSource = ""
	s.detail = domain.MovieDetail{}
}

// Selected returns the selected movie and its source
func (s *Session) Selected() (domain.Movie, Source, bool) {
	if s.selected == nil {
		return domain.Movie{}, "", false
	}
	return *s.selected, s.selSource, true
}

// Token returns the token of the current selection
func (s *Session) Token() uint64 { return s.token }

// ApplyDetail stores detail if token still names the current selection.
// It returns false for stale results.
func (s *Session) ApplyDetail(token uint64, detail domain.MovieDetail) bool {
	if s.selected == nil || token != s.token {
		return false
	}
	s.detail = detail
	return true
}

// Detail returns the enrichment of the selected movie, empty until loaded
func (s *Session) Detail() domain.MovieDetail { return s.detail }

// ApplyHome stores the home feeds. With partial set, feeds that loaded are
// shown and failures raise PartialDegradation, or NetworkFailure when every
// feed failed, unless another view already holds an error. Without it any
// failure leaves every feed empty and no view error is raised.
func (s *Session) ApplyHome(feeds HomeFeeds, partial bool) {
	s.homeLoaded = true
	failed := feeds.Failed()
	if failed == 0 {
		s.home = feeds
		return
	}
	if !partial {
		s.home = HomeFeeds{
			Trending: FeedResult{Name: FeedTrending},
			TopRated: FeedResult{Name: FeedTopRated},
			Upcoming: FeedResult{Name: FeedUpcoming},
			Popular:  FeedResult{Name: FeedPopular},
		}
		return
	}
	s.home = feeds
	if s.Mode() != ModeHome && s.viewErr != nil {
		return
	}
	if failed == len(feeds.Sections()) {
		s.viewErr = domain.NewViewError(domain.NetworkFailure, feeds.Err())
		return
	}
	s.viewErr = domain.NewViewError(domain.PartialDegradation, feeds.Err())
}

// Home returns the home feeds
func (s *Session) Home() HomeFeeds { return s.home }

// HomeLoaded reports whether ApplyHome has run
func (s *Session) HomeLoaded() bool { return s.homeLoaded }

// Mode returns what the main area shows
func (s *Session) Mode() Mode {
	switch {
	case s.showFavorites:
		return ModeFavorites
	case s.searchActive:
		return ModeResults
	default:
		return ModeHome
	}
}

// Results returns the current search results
func (s *Session) Results() []domain.Movie { return s.results }

// Searching reports whether a search request is in flight
func (s *Session) Searching() bool { return s.searching }

// ViewError returns the active view error, or nil
func (s *Session) ViewError() *domain.ViewError { return s.viewErr }

// DismissError clears the active view error
func (s *Session) DismissError() { s.viewErr = nil }

// Display arranges movies from source for a grid of perRow columns. The
// expansion entry is placed only when the selection came from source.
func (s *Session) Display(source Source, movies []domain.Movie, perRow int) []layout.Entry {
	if s.selected == nil || s.selSource != source {
		return layout.Arrange(movies, 0, false, perRow)
	}
	return layout.Arrange(movies, s.selected.ID, true, perRow)
}

// WindowTitle returns the terminal title for the current state
func (s *Session) WindowTitle() string {
	if s.selected != nil {
		return fmt.Sprintf("%s | %s", s.selected.DisplayTitle(), appTitle)
	}
	if s.searchActive && strings.TrimSpace(s.query) != "" {
		return fmt.Sprintf("Results for %q | %s", strings.TrimSpace(s.query), appTitle)
	}
	return appTitle + " - Movie Finder"
}
