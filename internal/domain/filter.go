package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// SortKey is a TMDB sort_by value
type SortKey string

const (
	SortPopularityDesc  SortKey = "popularity.desc"
	SortVoteAverageDesc SortKey = "vote_average.desc"
	SortReleaseDateDesc SortKey = "release_date.desc"
	SortTitleAsc        SortKey = "title.asc"
)

// String returns the display label for the sort key
func (k SortKey) String() string {
	switch k {
	case SortPopularityDesc:
		return "Popularity"
	case SortVoteAverageDesc:
		return "Top rated"
	case SortReleaseDateDesc:
		return "Newest"
	case SortTitleAsc:
		return "Title (A-Z)"
	default:
		return string(k)
	}
}

// RatingSplit is the boundary between the "at most" and "at least" rating buckets.
// Thresholds at or below it keep movies rated <= threshold; above it, >= threshold.
const RatingSplit = 5.5

// FilterField names one of the editable filters
type FilterField int

const (
	FilterYear FilterField = iota
	FilterGenre
	FilterRating
	FilterSort
)

// String returns the label for the filter field
func (f FilterField) String() string {
	switch f {
	case FilterYear:
		return "Year"
	case FilterGenre:
		return "Genre"
	case FilterRating:
		return "Rating"
	case FilterSort:
		return "Sort by"
	default:
		return "Unknown"
	}
}

// FilterState is the user's current search filters. Empty strings mean
// "not set". Values are kept in their wire form (as the option lists carry
// them) and parsed on use.
type FilterState struct {
	Genre  string  // numeric genre code, e.g. "28"
	Year   string  // "2015" or "2000,2009"
	Rating string  // threshold, e.g. "7" or "5.5"
	SortBy SortKey // never empty once defaulted
}

// DefaultFilters returns {no genre, no year, no rating, popularity descending}
func DefaultFilters() FilterState {
	return FilterState{SortBy: SortPopularityDesc}
}

// Active reports whether any filter value is set. A sort value alone counts,
// so an empty query with only a sort still runs a discover query.
func (f FilterState) Active() bool {
	return f.Genre != "" || f.Year != "" || f.Rating != "" || f.SortBy != ""
}

// Get returns the raw value of a field
func (f FilterState) Get(field FilterField) string {
	switch field {
	case FilterYear:
		return f.Year
	case FilterGenre:
		return f.Genre
	case FilterRating:
		return f.Rating
	case FilterSort:
		return string(f.SortBy)
	default:
		return ""
	}
}

// With returns a copy with one field replaced
func (f FilterState) With(field FilterField, value string) FilterState {
	switch field {
	case FilterYear:
		f.Year = value
	case FilterGenre:
		f.Genre = value
	case FilterRating:
		f.Rating = value
	case FilterSort:
		f.SortBy = SortKey(value)
	}
	return f
}

// YearFilter is a parsed year selector
type YearFilter struct {
	Raw   string // single-year form kept verbatim for prefix comparison
	Start int
	End   int
	Range bool
}

// ParseYear parses "YYYY" or "start,end". An empty value returns ok=false.
func ParseYear(raw string) (YearFilter, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return YearFilter{}, false, nil
	}
	if strings.Contains(raw, ",") {
		parts := strings.SplitN(raw, ",", 2)
		start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return YearFilter{}, false, fmt.Errorf("invalid range start %q: %w", parts[0], err)
		}
		end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return YearFilter{}, false, fmt.Errorf("invalid range end %q: %w", parts[1], err)
		}
		return YearFilter{Raw: raw, Start: start, End: end, Range: true}, true, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return YearFilter{}, false, fmt.Errorf("invalid year %q: %w", raw, err)
	}
	return YearFilter{Raw: raw, Start: year, End: year}, true, nil
}

// ParseGenre parses the numeric genre code. An empty value returns ok=false.
func ParseGenre(raw string) (int, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false, nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("invalid genre %q: %w", raw, err)
	}
	return id, true, nil
}

// ParseRating parses the rating threshold. An empty value returns ok=false.
func ParseRating(raw string) (float64, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid rating %q: %w", raw, err)
	}
	return v, true, nil
}

// Option is a selectable filter value with its label
type Option struct {
	Value string
	Label string
}

// GenreOptions lists the TMDB movie genres offered by the filter menu
var GenreOptions = []Option{
	{"", "All genres"},
	{"28", "Action"},
	{"12", "Adventure"},
	{"16", "Animation"},
	{"35", "Comedy"},
	{"80", "Crime"},
	{"99", "Documentary"},
	{"18", "Drama"},
	{"10751", "Family"},
	{"14", "Fantasy"},
	{"36", "History"},
	{"27", "Horror"},
	{"10402", "Music"},
	{"9648", "Mystery"},
	{"10749", "Romance"},
	{"878", "Science Fiction"},
	{"10770", "TV Movie"},
	{"53", "Thriller"},
	{"10752", "War"},
	{"37", "Western"},
}

// YearOptions lists single years followed by decade ranges
var YearOptions = []Option{
	{"", "All years"},
	{"2024", "2024"},
	{"2023", "2023"},
	{"2022", "2022"},
	{"2021", "2021"},
	{"2020", "2020"},
	{"2019", "2019"},
	{"2018", "2018"},
	{"2017", "2017"},
	{"2016", "2016"},
	{"2015", "2015"},
	{"2014", "2014"},
	{"2013", "2013"},
	{"2012", "2012"},
	{"2011", "2011"},
	{"2010", "2010"},
	{"2000,2009", "2000-2009"},
	{"1990,1999", "1990-1999"},
	{"1980,1989", "1980-1989"},
	{"1970,1979", "1970-1979"},
	{"1960,1969", "1960-1969"},
	{"1950,1959", "1950-1959"},
	{"1900,1949", "1900-1949"},
}

// RatingOptions lists the rating buckets. Values above RatingSplit mean
// "at least", the rest mean "at most".
var RatingOptions = []Option{
	{"", "Any rating"},
	{"9", "9.0+ Masterpieces"},
	{"8.5", "8.5+ Exceptional"},
	{"8", "8.0+ Very good"},
	{"7.5", "7.5+ Recommended"},
	{"7", "7.0+ Good"},
	{"6.5", "6.5+ Decent"},
	{"6", "6.0+ Acceptable"},
	{"5.5", "5.5- Mediocre"},
	{"5", "5.0- Average"},
	{"4", "4.0- Bad"},
	{"3", "3.0- Very bad"},
}

// SortOptions lists the available orderings
var SortOptions = []Option{
	{string(SortPopularityDesc), SortPopularityDesc.String()},
	{string(SortVoteAverageDesc), SortVoteAverageDesc.String()},
	{string(SortReleaseDateDesc), SortReleaseDateDesc.String()},
	{string(SortTitleAsc), SortTitleAsc.String()},
}

// OptionsFor returns the option list for a filter field
func OptionsFor(field FilterField) []Option {
	switch field {
	case FilterYear:
		return YearOptions
	case FilterGenre:
		return GenreOptions
	case FilterRating:
		return RatingOptions
	case FilterSort:
		return SortOptions
	default:
		return nil
	}
}

// OptionLabel returns the label for a value, or the value itself if unknown
func OptionLabel(field FilterField, value string) string {
	for _, opt := range OptionsFor(field) {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}
