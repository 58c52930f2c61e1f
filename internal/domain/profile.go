package domain

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// NewRows zips coordinates, cumulative distances and elevations into output
// rows. All three must have one entry per point.
func NewRows(coords Coordinates, cumulative, elevations []float64) ([]Row, error) {
	n := coords.Len()
	if len(coords.Longitudes) != n || len(cumulative) != n || len(elevations) != n {
		return nil, fmt.Errorf("assemble rows: %w: %d latitudes, %d longitudes, %d distances, %d elevations",
			ErrMisaligned, n, len(coords.Longitudes), len(cumulative), len(elevations))
	}

	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{
			Latitude:  coords.Latitudes[i],
			Longitude: coords.Longitudes[i],
			Distance:  cumulative[i],
			Elevation: elevations[i],
		}
	}
	return rows, nil
}

// Summarize computes distance and elevation statistics over rows.
func Summarize(rows []Row) Summary {
	if len(rows) == 0 {
		return Summary{}
	}

	elev := make([]float64, len(rows))
	for i, r := range rows {
		elev[i] = r.Elevation
	}

	s := Summary{
		Points:        len(rows),
		TotalDistance: rows[len(rows)-1].Distance,
		MinElevation:  floats.Min(elev),
		MaxElevation:  floats.Max(elev),
		MeanElevation: stat.Mean(elev, nil),
	}
	for i := 1; i < len(elev); i++ {
		if delta := elev[i] - elev[i-1]; delta > 0 {
			s.Ascent += delta
		} else {
			s.Descent -= delta
		}
	}
	return s
}
