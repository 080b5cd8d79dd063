package geo

import (
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// ParseBounds parses a map viewport given as "minLat,minLng,maxLat,maxLng".
// Malformed input yields nil, consistent with the permissive treatment of
// every other query parameter.
func ParseBounds(raw string) *orb.Bound {
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return nil
	}

	vals := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil
		}
		vals[i] = v
	}

	bound := orb.Bound{
		Min: orb.Point{vals[1], vals[0]},
		Max: orb.Point{vals[3], vals[2]},
	}
	if bound.Min[0] > bound.Max[0] || bound.Min[1] > bound.Max[1] {
		return nil
	}
	return &bound
}

// InBounds reports whether the coordinate pair lies inside the viewport.
func InBounds(bound orb.Bound, lat, lon float64) bool {
	return bound.Contains(orb.Point{lon, lat})
}
