package search

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilters_Defaults(t *testing.T) {
	f := ParseFilters(url.Values{})

	assert.Empty(t, f.Category)
	assert.Empty(t, f.Condition)
	assert.Empty(t, f.Query)
	assert.Nil(t, f.MinPrice)
	assert.Nil(t, f.MaxPrice)
	assert.Nil(t, f.ViewerLat)
	assert.Nil(t, f.ViewerLon)
	assert.Nil(t, f.RadiusKm)
	assert.Nil(t, f.Bounds)
	assert.Equal(t, SortDateDesc, f.SortBy)
	assert.Equal(t, DefaultPage, f.Page)
	assert.Equal(t, DefaultLimit, f.Limit)
}

func TestParseFilters_FullQuery(t *testing.T) {
	values := url.Values{}
	values.Set("category", "vehicles")
	values.Set("condition", "used")
	values.Set("minPrice", "1000")
	values.Set("maxPrice", "5000")
	values.Set("search", "mountain bike")
	values.Set("latitude", "48.8566")
	values.Set("longitude", "2.3522")
	values.Set("distance", "25")
	values.Set("sortBy", "price_asc")
	values.Set("page", "3")
	values.Set("limit", "20")

	f := ParseFilters(values)

	assert.Equal(t, "vehicles", f.Category)
	assert.Equal(t, "used", f.Condition)
	assert.Equal(t, "mountain bike", f.Query)
	require.NotNil(t, f.MinPrice)
	assert.Equal(t, 1000.0, *f.MinPrice)
	require.NotNil(t, f.MaxPrice)
	assert.Equal(t, 5000.0, *f.MaxPrice)
	require.NotNil(t, f.RadiusKm)
	assert.Equal(t, 25.0, *f.RadiusKm)
	assert.True(t, f.HasViewer())
	assert.Equal(t, SortPriceAsc, f.SortBy)
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 20, f.Limit)
	assert.Equal(t, 40, f.Offset())
}

func TestParseFilters_MalformedNumbersDegradeToAbsent(t *testing.T) {
	values := url.Values{}
	values.Set("minPrice", "cheap")
	values.Set("maxPrice", "12,50")
	values.Set("latitude", "north")
	values.Set("longitude", "")
	values.Set("distance", "nearby")
	values.Set("page", "zero")
	values.Set("limit", "-5")

	f := ParseFilters(values)

	assert.Nil(t, f.MinPrice)
	assert.Nil(t, f.MaxPrice)
	assert.Nil(t, f.ViewerLat)
	assert.Nil(t, f.ViewerLon)
	assert.Nil(t, f.RadiusKm)
	assert.False(t, f.HasViewer())
	assert.Equal(t, DefaultPage, f.Page)
	assert.Equal(t, DefaultLimit, f.Limit)
}

func TestParseFilters_UnknownSortFallsBack(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"price_asc", SortPriceAsc},
		{"price_desc", SortPriceDesc},
		{"date_asc", SortDateAsc},
		{"date_desc", SortDateDesc},
		{"distance", SortDistance},
		{"relevance", SortDateDesc},
		{"", SortDateDesc},
		{"PRICE_ASC", SortDateDesc},
	}

	for _, tt := range tests {
		values := url.Values{}
		values.Set("sortBy", tt.raw)
		assert.Equal(t, tt.expected, ParseFilters(values).SortBy, "sortBy=%q", tt.raw)
	}
}

func TestParseFilters_PartialViewerIsNotAViewer(t *testing.T) {
	values := url.Values{}
	values.Set("latitude", "48.8566")

	f := ParseFilters(values)
	require.NotNil(t, f.ViewerLat)
	assert.Nil(t, f.ViewerLon)
	assert.False(t, f.HasViewer())
}

func TestParseFilters_ImpossiblePriceRangeIsKept(t *testing.T) {
	// min > max is not an error; it simply yields no results downstream
	values := url.Values{}
	values.Set("minPrice", "500")
	values.Set("maxPrice", "100")

	f := ParseFilters(values)
	require.NotNil(t, f.MinPrice)
	require.NotNil(t, f.MaxPrice)
	assert.Greater(t, *f.MinPrice, *f.MaxPrice)
}

func TestParseFilters_Bounds(t *testing.T) {
	values := url.Values{}
	values.Set("bounds", "52.0,4.0,53.0,5.0")
	assert.NotNil(t, ParseFilters(values).Bounds)

	values.Set("bounds", "not-a-viewport")
	assert.Nil(t, ParseFilters(values).Bounds)
}
