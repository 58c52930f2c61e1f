package chart

import (
	"context"
	"fmt"
	"os"

	"github.com/couchcryptid/elevation-profile-etl/internal/domain"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// HTMLRenderer writes an interactive go-echarts line chart.
// It implements pipeline.ProfileLoader.
type HTMLRenderer struct {
	path string
}

// NewHTMLRenderer creates a renderer that writes to path.
func NewHTMLRenderer(path string) *HTMLRenderer {
	return &HTMLRenderer{path: path}
}

// Load renders the profile page and writes it.
func (r *HTMLRenderer) Load(_ context.Context, profile domain.Profile) (err error) {
	line := newLineChart(profile)

	f, err := os.Create(r.path)
	if err != nil {
		return fmt.Errorf("%w: create chart: %w", domain.ErrIO, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close chart: %w", domain.ErrIO, cerr)
		}
	}()

	if err := line.Render(f); err != nil {
		return fmt.Errorf("%w: render chart: %w", domain.ErrIO, err)
	}
	return nil
}

func newLineChart(profile domain.Profile) *charts.Line {
	s := profile.Summary

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Elevation Profile", Width: "100%", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title: "Elevation Profile",
			Subtitle: fmt.Sprintf("points=%d distance=%.0fm min=%.0fm max=%.0fm ascent=%.0fm",
				s.Points, s.TotalDistance, s.MinElevation, s.MaxElevation, s.Ascent),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Distance (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Elevation (m)", NameLocation: "middle", NameGap: 45}),
	)

	data := make([]opts.LineData, 0, len(profile.Rows))
	for _, row := range profile.Rows {
		data = append(data, opts.LineData{Value: []interface{}{row.Distance, row.Elevation}})
	}
	line.AddSeries("elevation", data)

	return line
}
