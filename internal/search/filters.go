package search

import (
	"net/url"
	"strconv"

	"github.com/paulmach/orb"

	"mercato/server/internal/geo"
)

// Sort modes accepted by both search endpoints. Anything else falls back to
// newest-first.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortDateAsc   = "date_asc"
	SortDateDesc  = "date_desc"
	SortDistance  = "distance"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Filters is the normalized form of the raw query parameters. Optional
// constraints are pointers; nil means "no constraint". Parsing is permissive:
// malformed values degrade to nil rather than erroring.
type Filters struct {
	Category  string
	Condition string
	MinPrice  *float64
	MaxPrice  *float64
	Query     string
	ViewerLat *float64
	ViewerLon *float64
	RadiusKm  *float64
	Bounds    *orb.Bound
	SortBy    string
	Page      int
	Limit     int
}

// ParseFilters normalizes raw query parameters into a Filters set.
func ParseFilters(values url.Values) Filters {
	f := Filters{
		Category:  values.Get("category"),
		Condition: values.Get("condition"),
		Query:     values.Get("search"),
		MinPrice:  parseFloat(values.Get("minPrice")),
		MaxPrice:  parseFloat(values.Get("maxPrice")),
		ViewerLat: parseFloat(values.Get("latitude")),
		ViewerLon: parseFloat(values.Get("longitude")),
		RadiusKm:  parseFloat(values.Get("distance")),
		SortBy:    parseSort(values.Get("sortBy")),
		Page:      parsePositiveInt(values.Get("page"), DefaultPage),
		Limit:     parsePositiveInt(values.Get("limit"), DefaultLimit),
	}

	if raw := values.Get("bounds"); raw != "" {
		f.Bounds = geo.ParseBounds(raw)
	}

	return f
}

// HasViewer reports whether the request carries a full viewer position.
func (f *Filters) HasViewer() bool {
	return f.ViewerLat != nil && f.ViewerLon != nil
}

// Offset returns the row offset for the requested page.
func (f *Filters) Offset() int {
	return (f.Page - 1) * f.Limit
}

func parseSort(raw string) string {
	switch raw {
	case SortPriceAsc, SortPriceDesc, SortDateAsc, SortDateDesc, SortDistance:
		return raw
	default:
		return SortDateDesc
	}
}

func parseFloat(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parsePositiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
