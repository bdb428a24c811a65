package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/mmcdole/cineradar/internal/domain"
	"github.com/mmcdole/cineradar/internal/search"
)

const (
	// HomeFeedLimit caps each home feed after poster filtering
	HomeFeedLimit = 16
	// CastLimit is how many billed actors the detail panel shows
	CastLimit = 6

	youTubeWatchURL = "https://www.youtube.com/watch?v="
	imdbTitleURL    = "https://www.imdb.com/title/"
)

// FeedName identifies a home feed
type FeedName string

const (
	FeedTrending FeedName = "trending"
	FeedTopRated FeedName = "topRated"
	FeedUpcoming FeedName = "upcoming"
	FeedPopular  FeedName = "popular"
)

// Title returns the section heading for the feed
func (n FeedName) Title() string {
	switch n {
	case FeedTrending:
		return "Trending this week"
	case FeedTopRated:
		return "Top rated"
	case FeedUpcoming:
		return "Coming soon"
	case FeedPopular:
		return "Popular"
	default:
		return string(n)
	}
}

// FeedResult is the outcome of one home feed request
type FeedResult struct {
	Name   FeedName
	Movies []domain.Movie
	Err    error
}

// OK reports whether the feed loaded
func (r FeedResult) OK() bool { return r.Err == nil }

// HomeFeeds holds the four home feed results in display order
type HomeFeeds struct {
	Trending FeedResult
	TopRated FeedResult
	Upcoming FeedResult
	Popular  FeedResult
}

// Sections returns the feeds in display order
func (h HomeFeeds) Sections() []FeedResult {
	return []FeedResult{h.Trending, h.TopRated, h.Upcoming, h.Popular}
}

// Failed returns how many feeds failed
func (h HomeFeeds) Failed() int {
	n := 0
	for _, s := range h.Sections() {
		if !s.OK() {
			n++
		}
	}
	return n
}

// Err joins the failures of every feed, nil when all loaded
func (h HomeFeeds) Err() error {
	var errs []error
	for _, s := range h.Sections() {
		if !s.OK() {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name, s.Err))
		}
	}
	return errors.Join(errs...)
}

// CatalogService loads home feeds, resolves searches and enriches the
// selected movie
type CatalogService struct {
	repo   domain.CatalogRepository
	lang   language.Tag
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service. lang drives locale-aware
// title sorting.
func NewCatalogService(repo domain.CatalogRepository, lang language.Tag, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{
		repo:   repo,
		lang:   lang,
		logger: logger,
	}
}

// LoadHome fetches the four home feeds concurrently. Each branch reports its
// own outcome; a failing feed does not cancel the others.
func (s *CatalogService) LoadHome(ctx context.Context) HomeFeeds {
	var feeds HomeFeeds
	branches := []struct {
		name  FeedName
		fetch func(context.Context) ([]domain.Movie, error)
		dest  *FeedResult
	}{
		{FeedTrending, s.repo.Trending, &feeds.Trending},
		{FeedTopRated, s.repo.TopRated, &feeds.TopRated},
		{FeedUpcoming, s.repo.Upcoming, &feeds.Upcoming},
		{FeedPopular, s.repo.Popular, &feeds.Popular},
	}

	var g errgroup.Group
	for _, b := range branches {
		b := b
		g.Go(func() error {
			movies, err := b.fetch(ctx)
			if err != nil {
				s.logger.Error("failed to load home feed", "feed", b.name, "error", err)
				*b.dest = FeedResult{Name: b.name, Err: err}
				return nil
			}
			movies = search.Cap(search.FilterWithPoster(movies), HomeFeedLimit)
			*b.dest = FeedResult{Name: b.name, Movies: movies}
			return nil
		})
	}
	_ = g.Wait()

	s.logger.Info("loaded home feeds", "failed", feeds.Failed())
	return feeds
}

// Resolve runs a text search when query is non-empty and a discover browse
// otherwise, then applies the local filters. The result never contains a
// movie without a poster.
func (s *CatalogService) Resolve(ctx context.Context, query string, filters domain.FilterState) ([]domain.Movie, error) {
	query = strings.TrimSpace(query)

	year, hasYear, err := domain.ParseYear(filters.Year)
	if err != nil {
		return nil, fmt.Errorf("year filter: %w", err)
	}
	genre, hasGenre, err := domain.ParseGenre(filters.Genre)
	if err != nil {
		return nil, fmt.Errorf("genre filter: %w", err)
	}
	rating, hasRating, err := domain.ParseRating(filters.Rating)
	if err != nil {
		return nil, fmt.Errorf("rating filter: %w", err)
	}

	var results []domain.Movie
	if query != "" {
		s.logger.Debug("searching", "query", query)
		results, err = s.repo.SearchMovies(ctx, query)
		if err != nil {
			s.logger.Error("search failed", "query", query, "error", err)
			return nil, err
		}
		// the text search endpoint cannot filter by year or genre
		if hasYear {
			results = search.FilterByYear(results, year)
		}
		if hasGenre {
			results = search.FilterByGenre(results, genre)
		}
	} else {
		params := domain.DiscoverParams{SortBy: filters.SortBy}
		if hasYear {
			params.Year = &year
		}
		if hasGenre {
			params.Genre = genre
		}
		s.logger.Debug("discovering", "sort", params.SortBy, "year", filters.Year, "genre", filters.Genre)
		results, err = s.repo.Discover(ctx, params)
		if err != nil {
			s.logger.Error("discover failed", "error", err)
			return nil, err
		}
	}

	if hasRating {
		results = search.FilterByRating(results, rating)
	}

	// text search returns relevance order, so honor the sort locally
	if query != "" && !hasGenre && !hasYear {
		search.SortMovies(results, filters.SortBy, s.lang)
	}

	results = search.FilterWithPoster(results)
	s.logger.Info("search complete", "query", query, "results", len(results))
	return results, nil
}

// Enrich fetches genres, cast, videos and external ids for one movie in
// parallel. A detail is returned only when all four succeed; the first
// failure cancels the remaining requests.
func (s *CatalogService) Enrich(ctx context.Context, movieID int) (domain.MovieDetail, error) {
	var (
		genres []domain.Genre
		cast   []domain.CastMember
		videos []domain.Video
		ids    domain.ExternalIDs
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		genres, err = s.repo.MovieGenres(gctx, movieID)
		return err
	})
	g.Go(func() (err error) {
		cast, err = s.repo.MovieCast(gctx, movieID)
		return err
	})
	g.Go(func() (err error) {
		videos, err = s.repo.MovieVideos(gctx, movieID)
		return err
	})
	g.Go(func() (err error) {
		ids, err = s.repo.MovieExternalIDs(gctx, movieID)
		return err
	})
	if err := g.Wait(); err != nil {
		if !errors.Is(err, context.Canceled) {
			s.logger.Error("failed to enrich movie", "movieID", movieID, "error", err)
		}
		return domain.MovieDetail{}, err
	}

	if len(cast) > CastLimit {
		cast = cast[:CastLimit]
	}
	return domain.MovieDetail{
		MovieID:    movieID,
		Genres:     genres,
		Cast:       cast,
		TrailerURL: TrailerURL(videos),
		IMDbURL:    IMDbURL(ids.IMDbID),
	}, nil
}

// TrailerURL returns the watch URL of the first YouTube trailer, or ""
func TrailerURL(videos []domain.Video) string {
	for _, v := range videos {
		if v.Type == "Trailer" && v.Site == "YouTube" && v.Key != "" {
			return youTubeWatchURL + v.Key
		}
	}
	return ""
}

// IMDbURL returns the IMDb title page for id, or "" when id is empty
func IMDbURL(id string) string {
	if id == "" {
		return ""
	}
	return imdbTitleURL + id
}
