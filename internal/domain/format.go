package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// CombineLatLon pairs latitudes and longitudes into "lat,lon" strings.
func CombineLatLon(lat, lon []float64) ([]string, error) {
	if len(lat) != len(lon) {
		return nil, fmt.Errorf("combine coordinates: %w: %d latitudes, %d longitudes", ErrMisaligned, len(lat), len(lon))
	}
	pairs := make([]string, len(lat))
	for i := range lat {
		pairs[i] = FormatFloat(lat[i]) + "," + FormatFloat(lon[i])
	}
	return pairs, nil
}

// FormatPath joins "lat,lon" pairs with '|' as the elevation API expects.
// The input is not modified.
func FormatPath(pairs []string) string {
	return strings.Join(pairs, "|")
}

// FormatFloat renders v in the shortest decimal form that round-trips.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
