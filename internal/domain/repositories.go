package domain

import (
	"context"
)

// DiscoverParams are the server-side parameters of a discover query
type DiscoverParams struct {
	SortBy SortKey
	Year   *YearFilter // nil = no year constraint
	Genre  int         // 0 = no genre constraint
}

// FeedRepository provides the curated home feeds
type FeedRepository interface {
	// Trending returns this week's trending movies
	Trending(ctx context.Context) ([]Movie, error)

	// TopRated returns movies sorted by vote average with a vote-count floor
	TopRated(ctx context.Context) ([]Movie, error)

	// Upcoming returns upcoming releases
	Upcoming(ctx context.Context) ([]Movie, error)

	// Popular returns movies sorted by popularity
	Popular(ctx context.Context) ([]Movie, error)
}

// SearchRepository provides text search and parameterized discovery
type SearchRepository interface {
	// SearchMovies runs a free-text search. Results come in relevance order
	// and the endpoint ignores year and genre.
	SearchMovies(ctx context.Context, query string) ([]Movie, error)

	// Discover browses movies with server-side sorting and filtering
	Discover(ctx context.Context, params DiscoverParams) ([]Movie, error)
}

// DetailRepository provides the per-movie enrichment resources
type DetailRepository interface {
	// MovieGenres returns the named genres from the full movie details
	MovieGenres(ctx context.Context, movieID int) ([]Genre, error)

	// MovieCast returns the credited cast in billing order
	MovieCast(ctx context.Context, movieID int) ([]CastMember, error)

	// MovieVideos returns the videos attached to the movie
	MovieVideos(ctx context.Context, movieID int) ([]Video, error)

	// MovieExternalIDs returns identifiers on other sites
	MovieExternalIDs(ctx context.Context, movieID int) (ExternalIDs, error)
}

// CatalogRepository is everything the catalog service needs from TMDB
type CatalogRepository interface {
	FeedRepository
	SearchRepository
	DetailRepository
}
