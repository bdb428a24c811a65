package tmdb

import "github.com/mmcdole/cineradar/internal/domain"

// MapMovies converts results page entries to domain movies
func MapMovies(entries []MovieEntry) []domain.Movie {
	movies := make([]domain.Movie, 0, len(entries))
	for _, e := range entries {
		movies = append(movies, MapMovie(e))
	}
	return movies
}

// MapMovie converts a single entry
func MapMovie(e MovieEntry) domain.Movie {
	return domain.Movie{
		ID:            e.ID,
		Title:         e.Title,
		OriginalTitle: e.OriginalTitle,
		PosterPath:    deref(e.PosterPath),
		BackdropPath:  deref(e.BackdropPath),
		ReleaseDate:   e.ReleaseDate,
		VoteAverage:   e.VoteAverage,
		VoteCount:     e.VoteCount,
		Popularity:    e.Popularity,
		GenreIDs:      e.GenreIDs,
		Overview:      e.Overview,
	}
}

// MapGenres converts named genres
func MapGenres(genres []GenreJSON) []domain.Genre {
	out := make([]domain.Genre, 0, len(genres))
	for _, g := range genres {
		out = append(out, domain.Genre{ID: g.ID, Name: g.Name})
	}
	return out
}

// MapCast converts cast entries, keeping billing order
func MapCast(cast []CastJSON) []domain.CastMember {
	out := make([]domain.CastMember, 0, len(cast))
	for _, c := range cast {
		out = append(out, domain.CastMember{ID: c.ID, Name: c.Name, Character: c.Character})
	}
	return out
}

// MapVideos converts video entries
func MapVideos(videos []VideoJSON) []domain.Video {
	out := make([]domain.Video, 0, len(videos))
	for _, v := range videos {
		out = append(out, domain.Video{Key: v.Key, Name: v.Name, Site: v.Site, Type: v.Type})
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
