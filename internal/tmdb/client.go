package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/cineradar/internal/domain"
)

const (
	// DefaultBaseURL is the TMDB v3 API root
	DefaultBaseURL = "https://api.themoviedb.org/3"
	// DefaultLanguage matches the locale the feeds were curated for
	DefaultLanguage = "es-ES"

	defaultTimeout = 15 * time.Second

	// topRatedMinVotes keeps obscure titles with few votes out of the top-rated feed
	topRatedMinVotes = 1000
)

// Options configures a Client
type Options struct {
	APIKey   string
	BaseURL  string
	Language string
	Timeout  time.Duration
}

// Client implements domain.CatalogRepository against the TMDB v3 API.
// It is stateless: no retries and no caching.
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new TMDB API client
func NewClient(opts Options, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, domain.ErrMissingAPIKey
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		apiKey:   opts.APIKey,
		language: opts.Language,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		logger: logger,
	}, nil
}

// doRequest performs an authenticated GET against the TMDB API and returns
// the body of a 200 response
func (c *Client) doRequest(ctx context.Context, path string, query url.Values, localized bool) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	if localized {
		query.Set("language", c.language)
	}
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("tmdb request", "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("tmdb request failed", "path", path, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrAPIUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusUnauthorized:
		return nil, domain.ErrUnauthorized
	case http.StatusNotFound:
		return nil, domain.ErrNotFound
	}

	var apiErr ErrorResponse
	if json.Unmarshal(body, &apiErr) == nil && apiErr.StatusMessage != "" {
		c.logger.Error("tmdb request error", "path", path, "status", resp.StatusCode, "message", apiErr.StatusMessage)
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, apiErr.StatusMessage)
	}
	c.logger.Error("tmdb request error", "path", path, "status", resp.StatusCode)
	return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
}

// getJSON performs a request and decodes the body into dest
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, localized bool, dest interface{}) error {
	body, err := c.doRequest(ctx, path, query, localized)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// getMovies fetches a results page and maps it
func (c *Client) getMovies(ctx context.Context, path string, query url.Values) ([]domain.Movie, error) {
	var page ResultsPage
	if err := c.getJSON(ctx, path, query, true, &page); err != nil {
		return nil, err
	}
	return MapMovies(page.Results), nil
}

// Trending returns this week's trending movies
func (c *Client) Trending(ctx context.Context) ([]domain.Movie, error) {
	movies, err := c.getMovies(ctx, "/trending/movie/week", nil)
	if err != nil {
		return nil, fmt.Errorf("trending: %w", err)
	}
	return movies, nil
}

// TopRated returns movies by vote average among those with enough votes
func (c *Client) TopRated(ctx context.Context) ([]domain.Movie, error) {
	query := url.Values{}
	query.Set("sort_by", string(domain.SortVoteAverageDesc))
	query.Set("vote_count.gte", strconv.Itoa(topRatedMinVotes))
	query.Set("page", "1")

	movies, err := c.getMovies(ctx, "/discover/movie", query)
	if err != nil {
		return nil, fmt.Errorf("top rated: %w", err)
	}
	return movies, nil
}

// Upcoming returns upcoming releases
func (c *Client) Upcoming(ctx context.Context) ([]domain.Movie, error) {
	query := url.Values{}
	query.Set("page", "1")

	movies, err := c.getMovies(ctx, "/movie/upcoming", query)
	if err != nil {
		return nil, fmt.Errorf("upcoming: %w", err)
	}
	return movies, nil
}

// Popular returns movies by popularity
func (c *Client) Popular(ctx context.Context) ([]domain.Movie, error) {
	query := url.Values{}
	query.Set("sort_by", string(domain.SortPopularityDesc))
	query.Set("page", "1")

	movies, err := c.getMovies(ctx, "/discover/movie", query)
	if err != nil {
		return nil, fmt.Errorf("popular: %w", err)
	}
	return movies, nil
}

// SearchMovies runs a free-text movie search (first page)
func (c *Client) SearchMovies(ctx context.Context, query string) ([]domain.Movie, error) {
	q := url.Values{}
	q.Set("query", query)

	movies, err := c.getMovies(ctx, "/search/movie", q)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return movies, nil
}

// Discover browses movies with server-side sort, year and genre
func (c *Client) Discover(ctx context.Context, params domain.DiscoverParams) ([]domain.Movie, error) {
	movies, err := c.getMovies(ctx, "/discover/movie", DiscoverQuery(params))
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	return movies, nil
}

// DiscoverQuery builds the discover query parameters. A year range becomes a
// primary release date window covering whole years.
func DiscoverQuery(params domain.DiscoverParams) url.Values {
	query := url.Values{}
	sortBy := params.SortBy
	if sortBy == "" {
		sortBy = domain.SortPopularityDesc
	}
	query.Set("sort_by", string(sortBy))

	if y := params.Year; y != nil {
		if y.Range {
			query.Set("primary_release_date.gte", fmt.Sprintf("%d-01-01", y.Start))
			query.Set("primary_release_date.lte", fmt.Sprintf("%d-12-31", y.End))
		} else {
			query.Set("primary_release_year", strconv.Itoa(y.Start))
		}
	}
	if params.Genre != 0 {
		query.Set("with_genres", strconv.Itoa(params.Genre))
	}
	return query
}

// MovieGenres returns the named genres from /movie/{id}
func (c *Client) MovieGenres(ctx context.Context, movieID int) ([]domain.Genre, error) {
	var resp MovieDetailsResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d", movieID), nil, true, &resp); err != nil {
		return nil, fmt.Errorf("movie %d details: %w", movieID, err)
	}
	return MapGenres(resp.Genres), nil
}

// MovieCast returns the cast from /movie/{id}/credits
func (c *Client) MovieCast(ctx context.Context, movieID int) ([]domain.CastMember, error) {
	var resp CreditsResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d/credits", movieID), nil, true, &resp); err != nil {
		return nil, fmt.Errorf("movie %d credits: %w", movieID, err)
	}
	return MapCast(resp.Cast), nil
}

// MovieVideos returns the videos from /movie/{id}/videos
func (c *Client) MovieVideos(ctx context.Context, movieID int) ([]domain.Video, error) {
	var resp VideosResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d/videos", movieID), nil, true, &resp); err != nil {
		return nil, fmt.Errorf("movie %d videos: %w", movieID, err)
	}
	return MapVideos(resp.Results), nil
}

// MovieExternalIDs returns /movie/{id}/external_ids. This endpoint takes no
// language parameter.
func (c *Client) MovieExternalIDs(ctx context.Context, movieID int) (domain.ExternalIDs, error) {
	var resp ExternalIDsResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d/external_ids", movieID), nil, false, &resp); err != nil {
		return domain.ExternalIDs{}, fmt.Errorf("movie %d external ids: %w", movieID, err)
	}
	return domain.ExternalIDs{IMDbID: deref(resp.IMDbID)}, nil
}

// IsAuthError reports whether err came from a rejected API key
func IsAuthError(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized)
}
