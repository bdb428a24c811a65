package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYear(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    YearFilter
		ok      bool
		wantErr bool
	}{
		{name: "empty", raw: "", ok: false},
		{name: "blank", raw: "   ", ok: false},
		{name: "single", raw: "2015", want: YearFilter{Raw: "2015", Start: 2015, End: 2015}, ok: true},
		{name: "range", raw: "1990,1999", want: YearFilter{Raw: "1990,1999", Start: 1990, End: 1999, Range: true}, ok: true},
		{name: "range with spaces", raw: "1990, 1999", want: YearFilter{Raw: "1990, 1999", Start: 1990, End: 1999, Range: true}, ok: true},
		{name: "garbage", raw: "soon", wantErr: true},
		{name: "bad range end", raw: "1990,x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := ParseYear(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseGenreAndRating(t *testing.T) {
	id, ok, err := ParseGenre("878")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 878, id)

	_, ok, err = ParseGenre("")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = ParseGenre("scifi")
	assert.Error(t, err)

	r, ok, err := ParseRating("5.5")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 5.5, r, 0.0001)

	_, _, err = ParseRating("good")
	assert.Error(t, err)
}

func TestFilterState(t *testing.T) {
	f := DefaultFilters()
	assert.Equal(t, SortPopularityDesc, f.SortBy)
	assert.True(t, f.Active(), "sort alone counts as active")
	assert.False(t, FilterState{}.Active())

	g := f.With(FilterGenre, "35").With(FilterYear, "2000,2009")
	assert.Equal(t, "35", g.Get(FilterGenre))
	assert.Equal(t, "2000,2009", g.Get(FilterYear))
	assert.Empty(t, f.Genre, "With returns a copy")

	g = g.With(FilterSort, string(SortTitleAsc))
	assert.Equal(t, SortTitleAsc, g.SortBy)
}

func TestOptionLabel(t *testing.T) {
	assert.Equal(t, "Comedy", OptionLabel(FilterGenre, "35"))
	assert.Equal(t, "1990-1999", OptionLabel(FilterYear, "1990,1999"))
	assert.Equal(t, "Title (A-Z)", OptionLabel(FilterSort, "title.asc"))
	assert.Equal(t, "1234", OptionLabel(FilterYear, "1234"))

	for _, field := range []FilterField{FilterYear, FilterGenre, FilterRating, FilterSort} {
		assert.NotEmpty(t, OptionsFor(field), field.String())
	}
}
