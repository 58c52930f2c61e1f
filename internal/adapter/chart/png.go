// Package chart renders elevation profiles as images and HTML pages.
package chart

import (
	"context"
	"fmt"
	"image/color"

	"github.com/couchcryptid/elevation-profile-etl/internal/domain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PNGRenderer draws distance against elevation with gonum/plot.
// It implements pipeline.ProfileLoader.
type PNGRenderer struct {
	path   string
	width  vg.Length
	height vg.Length
}

// NewPNGRenderer creates a renderer that saves to path. The image format is
// taken from the file extension (.png, .svg, .pdf, ...).
func NewPNGRenderer(path string) *PNGRenderer {
	return &PNGRenderer{
		path:   path,
		width:  12 * vg.Inch,
		height: 5 * vg.Inch,
	}
}

// Load renders the profile and saves it.
func (r *PNGRenderer) Load(_ context.Context, profile domain.Profile) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Elevation Profile (%.0f m)", profile.Summary.TotalDistance)
	p.X.Label.Text = "Distance (m)"
	p.Y.Label.Text = "Elevation (m)"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(profile.Rows))
	for i, row := range profile.Rows {
		pts[i].X = row.Distance
		pts[i].Y = row.Elevation
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("build profile line: %w", err)
	}
	line.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	line.Width = vg.Points(1.5)
	p.Add(line)

	if err := p.Save(r.width, r.height, r.path); err != nil {
		return fmt.Errorf("%w: save chart: %w", domain.ErrIO, err)
	}
	return nil
}
