package domain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// EarthRadiusMeters is the mean Earth radius used for great-circle distances.
const EarthRadiusMeters = 6371000.0

// GreatCircleDistance returns the distance in meters between two points
// given in degrees, using the spherical law of cosines.
func GreatCircleDistance(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}
	phi1, phi2 := radians(lat1), radians(lat2)
	dLambda := radians(lon2) - radians(lon1)

	cosC := math.Sin(phi1)*math.Sin(phi2) + math.Cos(phi1)*math.Cos(phi2)*math.Cos(dLambda)
	// Rounding can push the argument just outside acos's domain for
	// near-identical or near-antipodal points.
	cosC = math.Max(-1, math.Min(1, cosC))

	return math.Acos(cosC) * EarthRadiusMeters
}

// PairwiseDistances returns the N-1 segment lengths between consecutive points.
func PairwiseDistances(lat, lon []float64) ([]float64, error) {
	if len(lat) != len(lon) {
		return nil, fmt.Errorf("pairwise distances: %w: %d latitudes, %d longitudes", ErrMisaligned, len(lat), len(lon))
	}
	if len(lat) < 2 {
		return []float64{}, nil
	}
	d := make([]float64, len(lat)-1)
	for i := range d {
		d[i] = GreatCircleDistance(lat[i], lon[i], lat[i+1], lon[i+1])
	}
	return d, nil
}

// CumulativeDistances returns the running total of segment lengths with a
// leading zero, so the result has one entry per point.
func CumulativeDistances(segments []float64) []float64 {
	out := make([]float64, len(segments)+1)
	floats.CumSum(out[1:], segments)
	return out
}

func radians(deg float64) float64 {
	return deg * (math.Pi / 180)
}
