package tmdb

// ResultsPage is the envelope of every TMDB list endpoint
type ResultsPage struct {
	Page         int          `json:"page"`
	TotalPages   int          `json:"total_pages"`
	TotalResults int          `json:"total_results"`
	Results      []MovieEntry `json:"results"`
}

// MovieEntry is a summary record inside a results page
type MovieEntry struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	PosterPath    *string `json:"poster_path"` // null when the movie has no poster
	BackdropPath  *string `json:"backdrop_path"`
	ReleaseDate   string  `json:"release_date"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int     `json:"vote_count"`
	Popularity    float64 `json:"popularity"`
	GenreIDs      []int   `json:"genre_ids"`
	Overview      string  `json:"overview"`
}

// MovieDetailsResponse is the subset of /movie/{id} we read
type MovieDetailsResponse struct {
	ID     int         `json:"id"`
	Title  string      `json:"title"`
	Genres []GenreJSON `json:"genres"`
}

// GenreJSON is a named genre
type GenreJSON struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CreditsResponse is /movie/{id}/credits
type CreditsResponse struct {
	ID   int        `json:"id"`
	Cast []CastJSON `json:"cast"`
}

// CastJSON is a cast entry
type CastJSON struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character"`
	Order     int    `json:"order"`
}

// VideosResponse is /movie/{id}/videos
type VideosResponse struct {
	ID      int         `json:"id"`
	Results []VideoJSON `json:"results"`
}

// VideoJSON is a video entry
type VideoJSON struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// ExternalIDsResponse is /movie/{id}/external_ids
type ExternalIDsResponse struct {
	ID     int     `json:"id"`
	IMDbID *string `json:"imdb_id"`
}

// ErrorResponse is the body TMDB sends with non-2xx statuses
type ErrorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       bool   `json:"success"`
}
