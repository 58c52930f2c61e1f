package domain

import (
	"context"
	"time"
)

// Coordinates holds two index-aligned sequences, one entry per path point.
type Coordinates struct {
	Latitudes  []float64
	Longitudes []float64
}

// Len returns the number of points.
func (c Coordinates) Len() int { return len(c.Latitudes) }

// Row is one line of the output table.
type Row struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Distance  float64 `json:"distance_m"`  // cumulative from the first point
	Elevation float64 `json:"elevation_m"` // meters above the provider's reference
}

// Summary aggregates a profile for logging and downstream consumers.
type Summary struct {
	Points        int     `json:"points"`
	TotalDistance float64 `json:"total_distance_m"`
	MinElevation  float64 `json:"min_elevation_m"`
	MaxElevation  float64 `json:"max_elevation_m"`
	MeanElevation float64 `json:"mean_elevation_m"`
	Ascent        float64 `json:"ascent_m"`
	Descent       float64 `json:"descent_m"`
}

// Profile is the finished result of one pipeline run.
type Profile struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Rows        []Row     `json:"rows"`
	Summary     Summary   `json:"summary"`
}

// ElevationService looks up elevations along a path.
type ElevationService interface {
	// PathElevations takes a pipe-delimited list of "lat,lon" pairs and the
	// number of samples to return, and returns one elevation per sample in
	// the provider's order.
	PathElevations(ctx context.Context, path string, samples int) ([]float64, error)
}
