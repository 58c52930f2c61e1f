// Package file reads path exports from and writes profile tables to the local filesystem.
package file

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/couchcryptid/elevation-profile-etl/internal/domain"
)

// Reader loads a path export in one read.
// It implements pipeline.Source.
type Reader struct{}

// Read returns the full contents of path.
func (Reader) Read(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read path export: %w", domain.ErrIO, err)
	}
	return data, nil
}

// CSVWriter writes profile rows as headerless CSV: latitude, longitude,
// cumulative distance, elevation.
// It implements pipeline.TableWriter.
type CSVWriter struct{}

// Write creates or truncates path and writes one line per row.
func (CSVWriter) Write(_ context.Context, path string, rows []domain.Row) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create table: %w", domain.ErrIO, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close table: %w", domain.ErrIO, cerr)
		}
	}()

	w := csv.NewWriter(f)
	record := make([]string, 4)
	for _, r := range rows {
		record[0] = domain.FormatFloat(r.Latitude)
		record[1] = domain.FormatFloat(r.Longitude)
		record[2] = domain.FormatFloat(r.Distance)
		record[3] = domain.FormatFloat(r.Elevation)
		if err := w.Write(record); err != nil {
			return fmt.Errorf("%w: write table row: %w", domain.ErrIO, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: flush table: %w", domain.ErrIO, err)
	}
	return nil
}
