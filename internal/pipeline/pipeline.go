// Package pipeline wires path parsing, distance computation, elevation
// lookup, and output into a single run.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/elevation-profile-etl/internal/domain"
	"github.com/couchcryptid/elevation-profile-etl/internal/observability"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Source reads the raw path export.
type Source interface {
	Read(ctx context.Context, path string) ([]byte, error)
}

// TableWriter persists the profile rows.
type TableWriter interface {
	Write(ctx context.Context, path string, rows []domain.Row) error
}

// ProfileLoader receives the finished profile after the table is written.
type ProfileLoader interface {
	Load(ctx context.Context, profile domain.Profile) error
}

// Sink is an optional named ProfileLoader. The name labels errors and metrics.
type Sink struct {
	Name   string
	Loader ProfileLoader
}

// Params names the files for one run.
type Params struct {
	InputPath  string
	OutputPath string
}

// Pipeline runs the profile stages in order and stops at the first failure.
type Pipeline struct {
	source     Source
	elevations domain.ElevationService
	table      TableWriter
	sinks      []Sink
	logger     *slog.Logger
	metrics    *observability.Metrics
	clock      clockwork.Clock
}

// New creates a Pipeline with the given stages and observability.
func New(source Source, elevations domain.ElevationService, table TableWriter, sinks []Sink, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Pipeline {
	return &Pipeline{
		source:     source,
		elevations: elevations,
		table:      table,
		sinks:      sinks,
		logger:     logger,
		metrics:    metrics,
		clock:      clock,
	}
}

// Run executes one pass from the input export to the output table and sinks.
// Nothing is written unless every earlier stage succeeded.
func (p *Pipeline) Run(ctx context.Context, params Params) (domain.Profile, error) {
	start := p.clock.Now()
	runID := uuid.New().String()
	logger := p.logger.With("run_id", runID)
	logger.Info("pipeline started", "input", params.InputPath, "output", params.OutputPath)

	coords, err := p.extract(ctx, params.InputPath)
	if err != nil {
		return domain.Profile{}, err
	}
	p.metrics.PointsParsed.Add(float64(coords.Len()))
	logger.Debug("coordinates parsed", "points", coords.Len())

	rows, err := p.transform(ctx, coords)
	if err != nil {
		return domain.Profile{}, err
	}

	profile := domain.Profile{
		RunID:       runID,
		GeneratedAt: start.UTC(),
		Rows:        rows,
		Summary:     domain.Summarize(rows),
	}

	if err := p.table.Write(ctx, params.OutputPath, rows); err != nil {
		return domain.Profile{}, p.fail("write", err)
	}
	p.metrics.RowsWritten.Add(float64(len(rows)))

	for _, s := range p.sinks {
		if err := s.Loader.Load(ctx, profile); err != nil {
			return profile, p.fail(s.Name, err)
		}
		logger.Debug("sink loaded", "sink", s.Name)
	}

	elapsed := p.clock.Since(start)
	p.metrics.RunDuration.Observe(elapsed.Seconds())
	p.metrics.LastSuccess.Set(float64(p.clock.Now().Unix()))

	sum := profile.Summary
	logger.Info("pipeline complete",
		"points", sum.Points,
		"total_distance_m", sum.TotalDistance,
		"min_elevation_m", sum.MinElevation,
		"max_elevation_m", sum.MaxElevation,
		"ascent_m", sum.Ascent,
		"descent_m", sum.Descent,
		"duration", elapsed,
	)
	return profile, nil
}

// extract reads and parses the export into aligned coordinates.
func (p *Pipeline) extract(ctx context.Context, path string) (domain.Coordinates, error) {
	raw, err := p.source.Read(ctx, path)
	if err != nil {
		return domain.Coordinates{}, p.fail("read", err)
	}
	tokens, err := domain.ParseTokens(raw)
	if err != nil {
		return domain.Coordinates{}, p.fail("parse", err)
	}
	coords, err := domain.SplitCoordinates(tokens)
	if err != nil {
		return domain.Coordinates{}, p.fail("split", err)
	}
	return coords, nil
}

// transform computes distances, fetches elevations, and assembles the rows.
func (p *Pipeline) transform(ctx context.Context, coords domain.Coordinates) ([]domain.Row, error) {
	segments, err := domain.PairwiseDistances(coords.Latitudes, coords.Longitudes)
	if err != nil {
		return nil, p.fail("distance", err)
	}
	cumulative := domain.CumulativeDistances(segments)

	pairs, err := domain.CombineLatLon(coords.Latitudes, coords.Longitudes)
	if err != nil {
		return nil, p.fail("format", err)
	}

	elevations, err := p.elevations.PathElevations(ctx, domain.FormatPath(pairs), coords.Len())
	if err != nil {
		return nil, p.fail("elevation", err)
	}

	rows, err := domain.NewRows(coords, cumulative, elevations)
	if err != nil {
		return nil, p.fail("assemble", err)
	}
	return rows, nil
}

func (p *Pipeline) fail(stage string, err error) error {
	p.metrics.StageErrors.WithLabelValues(stage).Inc()
	return fmt.Errorf("%s: %w", stage, err)
}
