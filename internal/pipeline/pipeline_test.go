package pipeline_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/elevation-profile-etl/internal/adapter/file"
	"github.com/couchcryptid/elevation-profile-etl/internal/domain"
	"github.com/couchcryptid/elevation-profile-etl/internal/observability"
	"github.com/couchcryptid/elevation-profile-etl/internal/pipeline"
	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const export = "-110.87521,43.50059,0 -110.87514,43.50064,0 -110.87483,43.50070,0"

// --- mocks ---

type mockSource struct {
	data []byte
	err  error
}

func (m *mockSource) Read(_ context.Context, _ string) ([]byte, error) {
	return m.data, m.err
}

type mockElevations struct {
	elevations []float64
	err        error
	clock      *clockwork.FakeClock
	path       string
	samples    int
	calls      int
}

func (m *mockElevations) PathElevations(_ context.Context, path string, samples int) ([]float64, error) {
	m.calls++
	m.path = path
	m.samples = samples
	if m.clock != nil {
		m.clock.Advance(2 * time.Second)
	}
	return m.elevations, m.err
}

type mockTable struct {
	path string
	rows []domain.Row
	err  error
}

func (m *mockTable) Write(_ context.Context, path string, rows []domain.Row) error {
	m.path = path
	m.rows = rows
	return m.err
}

type mockLoader struct {
	loaded []domain.Profile
	err    error
}

func (m *mockLoader) Load(_ context.Context, profile domain.Profile) error {
	m.loaded = append(m.loaded, profile)
	return m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

var testStart = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

// --- tests ---

func TestPipeline_Run_HappyPath(t *testing.T) {
	clock := clockwork.NewFakeClockAt(testStart)
	elev := &mockElevations{elevations: []float64{1876.98, 1876.72, 1879.10}, clock: clock}
	table := &mockTable{}
	sink := &mockLoader{}
	metrics := observability.NewMetricsForTesting()

	p := pipeline.New(&mockSource{data: []byte(export)}, elev, table,
		[]pipeline.Sink{{Name: "chart", Loader: sink}}, discardLogger(), metrics, clock)

	profile, err := p.Run(context.Background(), pipeline.Params{InputPath: "in.txt", OutputPath: "out.csv"})
	require.NoError(t, err)

	assert.Equal(t, 1, elev.calls)
	assert.Equal(t, 3, elev.samples)
	assert.Equal(t, "43.50059,-110.87521|43.50064,-110.87514|43.5007,-110.87483", elev.path)

	assert.Equal(t, "out.csv", table.path)
	require.Len(t, table.rows, 3)
	assert.Zero(t, table.rows[0].Distance)
	assert.Less(t, table.rows[1].Distance, table.rows[2].Distance)
	assert.Equal(t, 43.5007, table.rows[2].Latitude)
	assert.Equal(t, -110.87483, table.rows[2].Longitude)
	assert.Equal(t, 1879.10, table.rows[2].Elevation)

	require.Len(t, sink.loaded, 1)
	if diff := cmp.Diff(profile, sink.loaded[0]); diff != "" {
		t.Fatalf("sink profile mismatch (-want +got):\n%s", diff)
	}
	assert.NotEmpty(t, profile.RunID)
	assert.Equal(t, testStart, profile.GeneratedAt)
	assert.Equal(t, 3, profile.Summary.Points)
	assert.InDelta(t, 1876.72, profile.Summary.MinElevation, 1e-9)

	assert.InDelta(t, 3, testutil.ToFloat64(metrics.PointsParsed), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(metrics.RowsWritten), 0)
	assert.InDelta(t, float64(testStart.Add(2*time.Second).Unix()), testutil.ToFloat64(metrics.LastSuccess), 0)
	assert.Equal(t, 0, testutil.CollectAndCount(metrics.StageErrors))
}

func TestPipeline_Run_UniqueRunIDs(t *testing.T) {
	clock := clockwork.NewFakeClockAt(testStart)
	elev := &mockElevations{elevations: []float64{1, 2, 3}}
	p := pipeline.New(&mockSource{data: []byte(export)}, elev, &mockTable{}, nil,
		discardLogger(), observability.NewMetricsForTesting(), clock)

	first, err := p.Run(context.Background(), pipeline.Params{})
	require.NoError(t, err)
	second, err := p.Run(context.Background(), pipeline.Params{})
	require.NoError(t, err)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestPipeline_Run_StageErrors(t *testing.T) {
	providerErr := errors.New("OVER_QUERY_LIMIT")

	tests := []struct {
		name    string
		source  *mockSource
		elev    *mockElevations
		table   *mockTable
		stage   string
		wantErr error
	}{
		{
			name:    "read",
			source:  &mockSource{err: domain.ErrIO},
			elev:    &mockElevations{},
			table:   &mockTable{},
			stage:   "read",
			wantErr: domain.ErrIO,
		},
		{
			name:    "parse",
			source:  &mockSource{data: []byte("no commas here")},
			elev:    &mockElevations{},
			table:   &mockTable{},
			stage:   "parse",
			wantErr: domain.ErrParse,
		},
		{
			name:    "split",
			source:  &mockSource{data: []byte("-110.8,north,0")},
			elev:    &mockElevations{},
			table:   &mockTable{},
			stage:   "split",
			wantErr: domain.ErrParse,
		},
		{
			name:    "elevation",
			source:  &mockSource{data: []byte(export)},
			elev:    &mockElevations{err: providerErr},
			table:   &mockTable{},
			stage:   "elevation",
			wantErr: providerErr,
		},
		{
			name:    "assemble",
			source:  &mockSource{data: []byte(export)},
			elev:    &mockElevations{elevations: []float64{1, 2}},
			table:   &mockTable{},
			stage:   "assemble",
			wantErr: domain.ErrMisaligned,
		},
		{
			name:    "write",
			source:  &mockSource{data: []byte(export)},
			elev:    &mockElevations{elevations: []float64{1, 2, 3}},
			table:   &mockTable{err: domain.ErrIO},
			stage:   "write",
			wantErr: domain.ErrIO,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := observability.NewMetricsForTesting()
			sink := &mockLoader{}
			p := pipeline.New(tt.source, tt.elev, tt.table,
				[]pipeline.Sink{{Name: "chart", Loader: sink}}, discardLogger(), metrics, clockwork.NewFakeClock())

			_, err := p.Run(context.Background(), pipeline.Params{OutputPath: "out.csv"})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.stage+":")
			assert.InDelta(t, 1, testutil.ToFloat64(metrics.StageErrors.WithLabelValues(tt.stage)), 0)
			assert.Empty(t, sink.loaded)
			assert.InDelta(t, 0, testutil.ToFloat64(metrics.LastSuccess), 0)
		})
	}
}

func TestPipeline_Run_NoElevationCallOnParseFailure(t *testing.T) {
	elev := &mockElevations{}
	table := &mockTable{}
	p := pipeline.New(&mockSource{data: []byte("-110.87521,43.50059,0 -110.87514,")}, elev, table, nil,
		discardLogger(), observability.NewMetricsForTesting(), clockwork.NewFakeClock())

	_, err := p.Run(context.Background(), pipeline.Params{})
	require.ErrorIs(t, err, domain.ErrParse)
	assert.Zero(t, elev.calls)
	assert.Nil(t, table.rows)
}

func TestPipeline_Run_MalformedInputCreatesNoOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "coordinates.txt")
	output := filepath.Join(dir, "profile.csv")
	require.NoError(t, os.WriteFile(input, []byte("-110.87521,43.50059,0 -110.87514,"), 0o600))

	p := pipeline.New(file.Reader{}, &mockElevations{}, file.CSVWriter{}, nil,
		discardLogger(), observability.NewMetricsForTesting(), clockwork.NewFakeClock())

	_, err := p.Run(context.Background(), pipeline.Params{InputPath: input, OutputPath: output})
	require.ErrorIs(t, err, domain.ErrParse)

	_, statErr := os.Stat(output)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestPipeline_Run_EndToEndWithFiles(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "coordinates.txt")
	output := filepath.Join(dir, "profile.csv")
	require.NoError(t, os.WriteFile(input, []byte("-110.87521,43.50059,0 -110.87521,43.50059,0"), 0o600))

	p := pipeline.New(file.Reader{}, &mockElevations{elevations: []float64{1876.5, 1876.5}}, file.CSVWriter{}, nil,
		discardLogger(), observability.NewMetricsForTesting(), clockwork.NewFakeClock())

	_, err := p.Run(context.Background(), pipeline.Params{InputPath: input, OutputPath: output})
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "43.50059,-110.87521,0,1876.5\n43.50059,-110.87521,0,1876.5\n", string(data))
}

func TestPipeline_Run_SinkError(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	table := &mockTable{}
	failing := &mockLoader{err: errors.New("broker unavailable")}
	after := &mockLoader{}

	p := pipeline.New(&mockSource{data: []byte(export)}, &mockElevations{elevations: []float64{1, 2, 3}}, table,
		[]pipeline.Sink{{Name: "kafka", Loader: failing}, {Name: "chart", Loader: after}},
		discardLogger(), metrics, clockwork.NewFakeClock())

	profile, err := p.Run(context.Background(), pipeline.Params{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kafka: broker unavailable")
	assert.Len(t, table.rows, 3)
	assert.Len(t, profile.Rows, 3)
	assert.Empty(t, after.loaded)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.StageErrors.WithLabelValues("kafka")), 0)
}
