package tmdb

import (
	"fmt"
	"strings"
)

const (
	// DefaultImageBaseURL is the TMDB image host
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"
	// DefaultPosterSize is the size segment used for cards
	DefaultPosterSize = "w500"
	// PlaceholderImageURL is shown when a movie has no usable poster
	PlaceholderImageURL = "https://via.placeholder.com/300x450/1a0f23/e879f9?text=No+Image"
)

// ImageURL composes a loadable image URL from a partial path. An empty path
// yields the placeholder image.
func ImageURL(base, size, path string) string {
	if strings.TrimSpace(path) == "" {
		return PlaceholderImageURL
	}
	if base == "" {
		base = DefaultImageBaseURL
	}
	if size == "" {
		size = DefaultPosterSize
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return fmt.Sprintf("%s/%s%s", strings.TrimRight(base, "/"), size, path)
}
