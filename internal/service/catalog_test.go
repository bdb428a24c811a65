package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/mmcdole/cineradar/internal/domain"
)

type mockCatalog struct {
	mock.Mock
}

func movies(args mock.Arguments) []domain.Movie {
	if v, ok := args.Get(0).([]domain.Movie); ok {
		return v
	}
	return nil
}

func (m *mockCatalog) Trending(ctx context.Context) ([]domain.Movie, error) {
	args := m.Called(ctx)
	return movies(args), args.Error(1)
}

func (m *mockCatalog) TopRated(ctx context.Context) ([]domain.Movie, error) {
	args := m.Called(ctx)
	return movies(args), args.Error(1)
}

func (m *mockCatalog) Upcoming(ctx context.Context) ([]domain.Movie, error) {
	args := m.Called(ctx)
	return movies(args), args.Error(1)
}

func (m *mockCatalog) Popular(ctx context.Context) ([]domain.Movie, error) {
	args := m.Called(ctx)
	return movies(args), args.Error(1)
}

func (m *mockCatalog) SearchMovies(ctx context.Context, query string) ([]domain.Movie, error) {
	args := m.Called(ctx, query)
	return movies(args), args.Error(1)
}

func (m *mockCatalog) Discover(ctx context.Context, params domain.DiscoverParams) ([]domain.Movie, error) {
	args := m.Called(ctx, params)
	return movies(args), args.Error(1)
}

func (m *mockCatalog) MovieGenres(ctx context.Context, id int) ([]domain.Genre, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).([]domain.Genre)
	return v, args.Error(1)
}

func (m *mockCatalog) MovieCast(ctx context.Context, id int) ([]domain.CastMember, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).([]domain.CastMember)
	return v, args.Error(1)
}

func (m *mockCatalog) MovieVideos(ctx context.Context, id int) ([]domain.Video, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).([]domain.Video)
	return v, args.Error(1)
}

func (m *mockCatalog) MovieExternalIDs(ctx context.Context, id int) (domain.ExternalIDs, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(domain.ExternalIDs)
	return v, args.Error(1)
}

func withPoster(id int, title, date string, vote float64, genres ...int) domain.Movie {
	return domain.Movie{ID: id, Title: title, PosterPath: fmt.Sprintf("/%d.jpg", id), ReleaseDate: date, VoteAverage: vote, GenreIDs: genres}
}

func manyMovies(n int) []domain.Movie {
	out := make([]domain.Movie, n)
	for i := range out {
		out[i] = withPoster(i+1, fmt.Sprintf("m%d", i+1), "2020-01-01", 7)
	}
	return out
}

func newCatalog(repo domain.CatalogRepository) *CatalogService {
	return NewCatalogService(repo, language.Spanish, nil)
}

func TestLoadHome_FiltersAndCaps(t *testing.T) {
	repo := new(mockCatalog)
	trending := append([]domain.Movie{{ID: 999, Title: "no poster"}}, manyMovies(20)...)
	repo.On("Trending", mock.Anything).Return(trending, nil)
	repo.On("TopRated", mock.Anything).Return(manyMovies(3), nil)
	repo.On("Upcoming", mock.Anything).Return(manyMovies(16), nil)
	repo.On("Popular", mock.Anything).Return([]domain.Movie{}, nil)

	feeds := newCatalog(repo).LoadHome(context.Background())

	require.NoError(t, feeds.Err())
	assert.Len(t, feeds.Trending.Movies, HomeFeedLimit)
	assert.Equal(t, 1, feeds.Trending.Movies[0].ID)
	assert.Len(t, feeds.TopRated.Movies, 3)
	assert.Len(t, feeds.Upcoming.Movies, 16)
	assert.Empty(t, feeds.Popular.Movies)
	for _, sec := range feeds.Sections() {
		for _, m := range sec.Movies {
			assert.True(t, m.HasPoster())
		}
	}
	repo.AssertExpectations(t)
}

func TestLoadHome_PerBranchFailure(t *testing.T) {
	repo := new(mockCatalog)
	boom := errors.New("boom")
	repo.On("Trending", mock.Anything).Return(manyMovies(2), nil)
	repo.On("TopRated", mock.Anything).Return(nil, boom)
	repo.On("Upcoming", mock.Anything).Return(manyMovies(2), nil)
	repo.On("Popular", mock.Anything).Return(manyMovies(2), nil)

	feeds := newCatalog(repo).LoadHome(context.Background())

	assert.Equal(t, 1, feeds.Failed())
	assert.ErrorIs(t, feeds.Err(), boom)
	assert.Equal(t, FeedTopRated, feeds.TopRated.Name)
	assert.False(t, feeds.TopRated.OK())
	assert.Len(t, feeds.Trending.Movies, 2)
	assert.Len(t, feeds.Popular.Movies, 2)
}

func TestResolve_TextSearchScenario(t *testing.T) {
	repo := new(mockCatalog)
	repo.On("SearchMovies", mock.Anything, "batman").Return([]domain.Movie{
		withPoster(1, "The Dark Knight", "2008-07-16", 9.0),
		withPoster(2, "The Dark Knight Rises", "2012-07-16", 6.0),
	}, nil)

	filters := domain.FilterState{Year: "2008", Rating: "7", SortBy: domain.SortPopularityDesc}
	got, err := newCatalog(repo).Resolve(context.Background(), "batman", filters)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)
	repo.AssertNotCalled(t, "Discover", mock.Anything, mock.Anything)
}

func TestResolve_TextSearchLocalFilters(t *testing.T) {
	repo := new(mockCatalog)
	repo.On("SearchMovies", mock.Anything, "star").Return([]domain.Movie{
		withPoster(1, "a", "1999-01-01", 8, 878),
		withPoster(2, "b", "2003-01-01", 8, 878),
		withPoster(3, "c", "2005-01-01", 8, 28),
		withPoster(4, "d", "", 8, 878),
		{ID: 5, Title: "no poster", ReleaseDate: "2004-01-01", GenreIDs: []int{878}},
	}, nil)

	filters := domain.FilterState{Year: "2000,2009", Genre: "878", SortBy: domain.SortTitleAsc}
	got, err := newCatalog(repo).Resolve(context.Background(), "  star ", filters)

	require.NoError(t, err)
	assert.Equal(t, []int{2}, movieIDs(got))
}

func TestResolve_LocalSortOnlyWithoutGenreOrYear(t *testing.T) {
	results := func() []domain.Movie {
		return []domain.Movie{
			withPoster(1, "low", "2010-01-01", 5.0),
			withPoster(2, "high", "2010-05-01", 9.0),
		}
	}
	repo := new(mockCatalog)
	repo.On("SearchMovies", mock.Anything, "x").Return(results(), nil).Once()
	repo.On("SearchMovies", mock.Anything, "x").Return(results(), nil).Once()
	svc := newCatalog(repo)

	sorted, err := svc.Resolve(context.Background(), "x", domain.FilterState{SortBy: domain.SortVoteAverageDesc})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, movieIDs(sorted))

	unsorted, err := svc.Resolve(context.Background(), "x", domain.FilterState{Year: "2010", SortBy: domain.SortVoteAverageDesc})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, movieIDs(unsorted))
}

func TestResolve_DiscoverPath(t *testing.T) {
	repo := new(mockCatalog)
	repo.On("Discover", mock.Anything, mock.MatchedBy(func(p domain.DiscoverParams) bool {
		return p.SortBy == domain.SortReleaseDateDesc &&
			p.Genre == 35 &&
			p.Year != nil && p.Year.Range && p.Year.Start == 1990 && p.Year.End == 1999
	})).Return([]domain.Movie{
		withPoster(1, "a", "1995-01-01", 4.0),
		withPoster(2, "b", "1996-01-01", 6.0),
		withPoster(3, "c", "1997-01-01", 5.5),
	}, nil)

	filters := domain.FilterState{Genre: "35", Year: "1990,1999", Rating: "5.5", SortBy: domain.SortReleaseDateDesc}
	got, err := newCatalog(repo).Resolve(context.Background(), "", filters)

	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, movieIDs(got), "rating 5.5 keeps at most")
	repo.AssertExpectations(t)
}

func TestResolve_Errors(t *testing.T) {
	repo := new(mockCatalog)
	repo.On("SearchMovies", mock.Anything, "x").Return(nil, domain.ErrAPIUnavailable)

	_, err := newCatalog(repo).Resolve(context.Background(), "x", domain.DefaultFilters())
	assert.ErrorIs(t, err, domain.ErrAPIUnavailable)

	_, err = newCatalog(repo).Resolve(context.Background(), "x", domain.FilterState{Year: "soon"})
	assert.Error(t, err)
}

func TestEnrich(t *testing.T) {
	repo := new(mockCatalog)
	cast := make([]domain.CastMember, 9)
	for i := range cast {
		cast[i] = domain.CastMember{ID: i, Name: fmt.Sprintf("actor%d", i)}
	}
	repo.On("MovieGenres", mock.Anything, 7).Return([]domain.Genre{{ID: 18, Name: "Drama"}}, nil)
	repo.On("MovieCast", mock.Anything, 7).Return(cast, nil)
	repo.On("MovieVideos", mock.Anything, 7).Return([]domain.Video{
		{Key: "teaser", Site: "YouTube", Type: "Teaser"},
		{Key: "vimeo", Site: "Vimeo", Type: "Trailer"},
		{Key: "yt1", Site: "YouTube", Type: "Trailer"},
		{Key: "yt2", Site: "YouTube", Type: "Trailer"},
	}, nil)
	repo.On("MovieExternalIDs", mock.Anything, 7).Return(domain.ExternalIDs{IMDbID: "tt0000007"}, nil)

	d, err := newCatalog(repo).Enrich(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, 7, d.MovieID)
	assert.Equal(t, "Drama", d.GenreNames())
	assert.Len(t, d.Cast, CastLimit)
	assert.Equal(t, "actor0", d.Cast[0].Name)
	assert.Equal(t, "https://www.youtube.com/watch?v=yt1", d.TrailerURL)
	assert.Equal(t, "https://www.imdb.com/title/tt0000007", d.IMDbURL)
}

func TestEnrich_AllOrNothing(t *testing.T) {
	repo := new(mockCatalog)
	repo.On("MovieGenres", mock.Anything, 7).Return([]domain.Genre{{ID: 18, Name: "Drama"}}, nil)
	repo.On("MovieCast", mock.Anything, 7).Return([]domain.CastMember{{Name: "A"}}, nil)
	repo.On("MovieVideos", mock.Anything, 7).Return(nil, domain.ErrNotFound)
	repo.On("MovieExternalIDs", mock.Anything, 7).Return(domain.ExternalIDs{}, nil)

	d, err := newCatalog(repo).Enrich(context.Background(), 7)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, d.IsEmpty())
}

func TestTrailerAndIMDbURL(t *testing.T) {
	assert.Empty(t, TrailerURL(nil))
	assert.Empty(t, TrailerURL([]domain.Video{{Key: "k", Site: "YouTube", Type: "Clip"}}))
	assert.Empty(t, IMDbURL(""))
}

func movieIDs(movies []domain.Movie) []int {
	out := make([]int, len(movies))
	for i, m := range movies {
		out[i] = m.ID
	}
	return out
}
