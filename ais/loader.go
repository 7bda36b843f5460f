package ais

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/trajectory-engine/geom"
	"github.com/theoremus-urban-solutions/trajectory-engine/trajectory"
)

// Schema names the columns that carry the positional core of an AIS export.
// Every other column is preserved verbatim as a fix attribute.
type Schema struct {
	TimeColumn string
	LatColumn  string
	LonColumn  string
	// TimeLayouts are tried in order when parsing the time column.
	TimeLayouts []string
}

// DefaultSchema matches the Danish Maritime Authority AIS exports the
// engine is usually fed with.
func DefaultSchema() Schema {
	return Schema{
		TimeColumn: "Timestamp",
		LatColumn:  "Latitude",
		LonColumn:  "Longitude",
		TimeLayouts: []string{
			"02/01/2006 15:04:05",
			time.RFC3339,
			"2006-01-02 15:04:05",
		},
	}
}

// ReadFile reads an AIS CSV file into a fix table.
func ReadFile(path string, s Schema) ([]trajectory.Fix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	fixes, err := ReadCSV(f, s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fixes, nil
}

// ReadCSV reads an AIS CSV stream into a fix table. The first record is the
// header. Column lookup is case-insensitive; a leading "# " on a header
// cell (as in "# Timestamp") is ignored. Rows with an unparsable timestamp
// or position are emitted with zero time or NaN coordinates so the builder
// rejects the table fast instead of silently dropping observations.
func ReadCSV(r io.Reader, s Schema) ([]trajectory.Fix, error) {
	csvr := csv.NewReader(r)
	records, err := csvr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	head := records[0]
	idx := func(col string) int {
		for i, h := range head {
			h = strings.TrimPrefix(strings.TrimSpace(h), "# ")
			if strings.EqualFold(h, col) {
				return i
			}
		}
		return -1
	}
	ti := idx(s.TimeColumn)
	lati := idx(s.LatColumn)
	loni := idx(s.LonColumn)
	if ti < 0 || lati < 0 || loni < 0 {
		return nil, fmt.Errorf("missing required column: time=%q lat=%q lon=%q", s.TimeColumn, s.LatColumn, s.LonColumn)
	}

	fixes := make([]trajectory.Fix, 0, len(records)-1)
	for _, rec := range records[1:] {
		fix := trajectory.Fix{
			Position: geom.Point{Lon: math.NaN(), Lat: math.NaN()},
			Attrs:    make(map[string]any, len(head)-3),
		}
		for i, cell := range rec {
			if i >= len(head) {
				break
			}
			switch i {
			case ti:
				fix.Time = parseTime(cell, s.TimeLayouts)
			case lati:
				fix.Position.Lat = parseCoord(cell)
			case loni:
				fix.Position.Lon = parseCoord(cell)
			default:
				name := strings.TrimPrefix(strings.TrimSpace(head[i]), "# ")
				fix.Attrs[name] = parseScalar(cell)
			}
		}
		fixes = append(fixes, fix)
	}
	return fixes, nil
}

func parseTime(cell string, layouts []string) time.Time {
	cell = strings.TrimSpace(cell)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseCoord(cell string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// parseScalar keeps numbers numeric and everything else as the original
// string. Identifiers like MMSI stay strings only when they carry leading
// zeros or non-digits; either form groups identically in the builder.
func parseScalar(cell string) any {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return ""
	}
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return v
	}
	return trimmed
}
