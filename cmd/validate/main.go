// Command validate checks a profile table produced by elevate. It verifies
// the row layout, that cumulative distance starts at zero and grows by the
// great-circle distance between consecutive rows, and, when the source export
// is given, that rows match the export's points in order.
//
// Usage:
//
//	go run ./cmd/validate -csv profile.csv -input coordinates.txt
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/couchcryptid/elevation-profile-etl/internal/domain"
)

// distanceTolerance is the allowed drift, in meters, between a recorded
// increment and the recomputed segment distance.
const distanceTolerance = 1e-6

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	csvPath := flag.String("csv", "", "path to the profile table")
	inputPath := flag.String("input", "", "optional path to the source path export")
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*csvPath, *inputPath, os.Stdout); code != 0 {
		os.Exit(code)
	}
}

func run(csvPath, inputPath string, out io.Writer) int {
	fmt.Fprintln(out, "=== Elevation Profile Validation ===")
	fmt.Fprintln(out)

	records, err := loadCSV(csvPath)
	if err != nil {
		fmt.Fprintf(out, "FATAL: load profile table: %v\n", err)
		return 1
	}

	structure, rows := validateStructure(records)
	phases := []*phase{structure, validateDistances(rows)}

	if inputPath != "" {
		coords, err := loadExport(inputPath)
		if err != nil {
			fmt.Fprintf(out, "FATAL: load path export: %v\n", err)
			return 1
		}
		phases = append(phases, validateInputParity(rows, coords))
	}

	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-32s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Rows: %d\n", len(records))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

func loadCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func loadExport(path string) (domain.Coordinates, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Coordinates{}, err
	}
	tokens, err := domain.ParseTokens(raw)
	if err != nil {
		return domain.Coordinates{}, err
	}
	return domain.SplitCoordinates(tokens)
}

// validateStructure checks that every record has four finite numeric fields
// with plausible coordinates. Only well-formed records are returned.
func validateStructure(records [][]string) (*phase, []domain.Row) {
	p := &phase{name: "Table structure"}
	if len(records) == 0 {
		p.errorf("table is empty")
		return p, nil
	}

	rows := make([]domain.Row, 0, len(records))
	for i, rec := range records {
		if len(rec) != 4 {
			p.errorf("row %d: %d fields, want 4", i+1, len(rec))
			continue
		}
		var vals [4]float64
		ok := true
		for j, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				p.errorf("row %d field %d: %q is not a finite number", i+1, j+1, field)
				ok = false
				continue
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		row := domain.Row{Latitude: vals[0], Longitude: vals[1], Distance: vals[2], Elevation: vals[3]}
		if row.Latitude < -90 || row.Latitude > 90 {
			p.errorf("row %d: latitude %v out of range", i+1, row.Latitude)
		}
		if row.Longitude < -180 || row.Longitude > 180 {
			p.errorf("row %d: longitude %v out of range", i+1, row.Longitude)
		}
		rows = append(rows, row)
	}
	return p, rows
}

func validateDistances(rows []domain.Row) *phase {
	p := &phase{name: "Cumulative distance"}
	if len(rows) == 0 {
		return p
	}
	if rows[0].Distance != 0 {
		p.errorf("row 1: distance %v, want 0", rows[0].Distance)
	}
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if cur.Distance < prev.Distance {
			p.errorf("row %d: distance %v decreases from %v", i+1, cur.Distance, prev.Distance)
			continue
		}
		want := domain.GreatCircleDistance(prev.Latitude, prev.Longitude, cur.Latitude, cur.Longitude)
		if got := cur.Distance - prev.Distance; !floatEq(got, want) {
			p.errorf("row %d: increment %v, want %v", i+1, got, want)
		}
	}
	return p
}

func validateInputParity(rows []domain.Row, coords domain.Coordinates) *phase {
	p := &phase{name: "Input parity"}
	if len(rows) != coords.Len() {
		p.errorf("table has %d rows, export has %d points", len(rows), coords.Len())
		return p
	}
	for i, row := range rows {
		if row.Latitude != coords.Latitudes[i] || row.Longitude != coords.Longitudes[i] {
			p.errorf("row %d: (%v, %v), export has (%v, %v)",
				i+1, row.Latitude, row.Longitude, coords.Latitudes[i], coords.Longitudes[i])
		}
	}
	return p
}

func floatEq(a, b float64) bool {
	return math.Abs(a-b) <= distanceTolerance*math.Max(1, math.Abs(b))
}
