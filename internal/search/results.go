package search

import (
	"sort"

	"github.com/paulmach/orb"

	"mercato/server/internal/geo"
	"mercato/server/internal/models"
)

// Result is a listing enriched for one request. Distance is set only when
// both the viewer and the listing have coordinates; it is never persisted.
type Result struct {
	Listing  models.Listing
	Distance *float64
}

// BuildResults wraps listings in per-request result items, preserving order.
func BuildResults(listings []models.Listing) []Result {
	results := make([]Result, len(listings))
	for i, listing := range listings {
		results[i] = Result{Listing: listing}
	}
	return results
}

// AnnotateDistance computes the viewer-to-listing distance for every item
// that has coordinates. Items without coordinates, or when the viewer
// position is incomplete, keep a nil distance.
func AnnotateDistance(results []Result, viewerLat, viewerLon *float64) {
	if viewerLat == nil || viewerLon == nil {
		return
	}
	for i := range results {
		listing := &results[i].Listing
		if !listing.HasCoordinates() {
			continue
		}
		d := geo.DistanceKm(*viewerLat, *viewerLon, *listing.Latitude, *listing.Longitude)
		results[i].Distance = &d
	}
}

// SortByDistance stable-sorts items ascending by distance. Items with no
// distance are pushed to the end, keeping their relative order.
func SortByDistance(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		di, dj := results[i].Distance, results[j].Distance
		if di == nil {
			return false
		}
		if dj == nil {
			return true
		}
		return *di < *dj
	})
}

// FilterByRadius drops items whose distance is unknown or beyond the given
// radius. The bound is inclusive: an item at exactly radius kilometers stays.
func FilterByRadius(results []Result, radiusKm float64) []Result {
	filtered := results[:0]
	for _, r := range results {
		if r.Distance == nil || *r.Distance > radiusKm {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// FilterByBounds drops items lying outside the map viewport. Items without
// coordinates are dropped too; a map viewport only ever shows located items.
func FilterByBounds(results []Result, bound orb.Bound) []Result {
	filtered := results[:0]
	for _, r := range results {
		listing := &r.Listing
		if !listing.HasCoordinates() {
			continue
		}
		if !geo.InBounds(bound, *listing.Latitude, *listing.Longitude) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}
