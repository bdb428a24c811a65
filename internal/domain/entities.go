package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ReleaseDateLayout is the date format TMDB uses for release dates
const ReleaseDateLayout = "2006-01-02"

// Movie is the summary record returned by TMDB list endpoints.
// JSON tags follow the TMDB wire names so persisted favorites keep the
// same shape as an API results entry.
type Movie struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title,omitempty"`
	PosterPath    string  `json:"poster_path"`
	BackdropPath  string  `json:"backdrop_path,omitempty"`
	ReleaseDate   string  `json:"release_date"` // "YYYY-MM-DD", may be empty
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int     `json:"vote_count,omitempty"`
	Popularity    float64 `json:"popularity,omitempty"`
	GenreIDs      []int   `json:"genre_ids"`
	Overview      string  `json:"overview"`
}

// HasPoster reports whether the movie has a poster image to render
func (m Movie) HasPoster() bool {
	return strings.TrimSpace(m.PosterPath) != ""
}

// YearPrefix returns the first four characters of the release date, or "" if
// the date is shorter than that
func (m Movie) YearPrefix() string {
	if len(m.ReleaseDate) < 4 {
		return ""
	}
	return m.ReleaseDate[:4]
}

// ReleaseYear parses the release year. ok is false when the date is missing
// or its year prefix is not an integer.
func (m Movie) ReleaseYear() (year int, ok bool) {
	prefix := m.YearPrefix()
	if prefix == "" {
		return 0, false
	}
	y, err := strconv.Atoi(prefix)
	if err != nil || y == 0 {
		return 0, false
	}
	return y, true
}

// Released parses the release date. ok is false for missing or malformed dates.
func (m Movie) Released() (time.Time, bool) {
	if m.ReleaseDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(ReleaseDateLayout, m.ReleaseDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// HasGenre reports whether genreID is in the movie's genre list
func (m Movie) HasGenre(genreID int) bool {
	for _, id := range m.GenreIDs {
		if id == genreID {
			return true
		}
	}
	return false
}

// DisplayTitle falls back to the original title when the localized one is empty
func (m Movie) DisplayTitle() string {
	if m.Title != "" {
		return m.Title
	}
	return m.OriginalTitle
}

// FormattedRating returns the vote average as "7.4/10"
func (m Movie) FormattedRating() string {
	return fmt.Sprintf("%.1f/10", m.VoteAverage)
}

// Genre is a named TMDB genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CastMember is a single credited actor
type CastMember struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character"`
}

// Video is a TMDB video entry (trailers, teasers, featurettes)
type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"` // hosting platform, e.g. "YouTube"
	Type string `json:"type"` // e.g. "Trailer", "Teaser"
}

// MovieDetail holds the enrichment data shown in the detail panel for the
// selected movie. The zero value is the "empty" detail.
type MovieDetail struct {
	MovieID    int
	Genres     []Genre
	Cast       []CastMember
	TrailerURL string
	IMDbURL    string
}

// IsEmpty reports whether nothing has been loaded
func (d MovieDetail) IsEmpty() bool {
	return d.MovieID == 0 && len(d.Genres) == 0 && len(d.Cast) == 0 &&
		d.TrailerURL == "" && d.IMDbURL == ""
}

// GenreNames joins genre names, "-" when there are none
func (d MovieDetail) GenreNames() string {
	names := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		names = append(names, g.Name)
	}
	return joinOrDash(names)
}

// CastNames joins cast member names, "-" when there are none
func (d MovieDetail) CastNames() string {
	names := make([]string, 0, len(d.Cast))
	for _, c := range d.Cast {
		names = append(names, c.Name)
	}
	return joinOrDash(names)
}

func joinOrDash(parts []string) string {
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

// ExternalIDs holds identifiers of the movie on other sites
type ExternalIDs struct {
	IMDbID string
}
