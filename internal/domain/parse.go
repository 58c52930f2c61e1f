package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseTokens splits a raw path export into alternating longitude and
// latitude strings: [lon0, lat0, lon1, lat1, ...].
//
// Content after the final comma is the last point's altitude and is
// discarded. Every token at an even index from 2 onward is "<alt> <lon>";
// the altitude must be numeric and is dropped.
func ParseTokens(raw []byte) ([]string, error) {
	var fields []string
	start := 0
	for i, b := range raw {
		if b != ',' {
			continue
		}
		fields = append(fields, string(raw[start:i]))
		start = i + 1
	}

	if len(fields) == 0 {
		return nil, &ParseError{Index: -1, Reason: "no comma-separated tokens"}
	}

	tokens := make([]string, len(fields))
	for i, field := range fields {
		if i < 2 || i%2 != 0 {
			tokens[i] = strings.TrimSpace(field)
			continue
		}
		lon, err := stripAltitude(field)
		if err != nil {
			return nil, &ParseError{Index: i, Token: field, Reason: err.Error()}
		}
		tokens[i] = lon
	}

	if len(tokens)%2 != 0 {
		return nil, &ParseError{Index: -1, Reason: fmt.Sprintf("odd token count %d", len(tokens))}
	}
	return tokens, nil
}

// stripAltitude removes the "<alt> " prefix the export leaves in front of
// every longitude after the first. Leading whitespace from wrapped lines is
// ignored.
func stripAltitude(token string) (string, error) {
	token = strings.TrimLeftFunc(token, unicode.IsSpace)
	sep := strings.IndexFunc(token, unicode.IsSpace)
	if sep < 0 {
		return "", errors.New("missing altitude prefix")
	}
	alt, lon := token[:sep], strings.TrimSpace(token[sep:])
	if _, err := parseDecimal(alt); err != nil {
		return "", fmt.Errorf("altitude prefix %q is not numeric", alt)
	}
	if lon == "" {
		return "", errors.New("missing longitude after altitude")
	}
	return lon, nil
}

// Longitudes returns token 0 and every even-indexed token after it as floats.
func Longitudes(tokens []string) ([]float64, error) {
	return parseEvery(tokens, 0)
}

// Latitudes returns every odd-indexed token as floats.
func Latitudes(tokens []string) ([]float64, error) {
	return parseEvery(tokens, 1)
}

// SplitCoordinates separates a token sequence into index-aligned latitude
// and longitude sequences.
func SplitCoordinates(tokens []string) (Coordinates, error) {
	lons, err := Longitudes(tokens)
	if err != nil {
		return Coordinates{}, err
	}
	lats, err := Latitudes(tokens)
	if err != nil {
		return Coordinates{}, err
	}
	if len(lats) != len(lons) {
		return Coordinates{}, &ParseError{
			Index:  -1,
			Reason: fmt.Sprintf("%d latitudes but %d longitudes", len(lats), len(lons)),
		}
	}
	if len(lats) == 0 {
		return Coordinates{}, &ParseError{Index: -1, Reason: "no coordinate pairs"}
	}
	return Coordinates{Latitudes: lats, Longitudes: lons}, nil
}

func parseEvery(tokens []string, offset int) ([]float64, error) {
	out := make([]float64, 0, len(tokens)/2+1)
	for i := offset; i < len(tokens); i += 2 {
		v, err := parseDecimal(tokens[i])
		if err != nil {
			return nil, &ParseError{Index: i, Token: tokens[i], Reason: err.Error()}
		}
		out = append(out, v)
	}
	return out, nil
}

// parseDecimal parses a finite decimal number. NaN and Inf are rejected.
func parseDecimal(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("not a decimal number")
	}
	return v, nil
}
