package formatter_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/theoremus-urban-solutions/trajectory-engine/formatter"
	"github.com/theoremus-urban-solutions/trajectory-engine/geom"
	"github.com/theoremus-urban-solutions/trajectory-engine/trajectory"
)

func testCollection(t *testing.T) *trajectory.Collection {
	t.Helper()
	t0 := time.Date(2017, 7, 5, 17, 0, 0, 0, time.UTC)
	var fixes []trajectory.Fix
	for _, id := range []string{"111", "222"} {
		for j := 0; j < 3; j++ {
			fixes = append(fixes, trajectory.Fix{
				Time:     t0.Add(time.Duration(j) * time.Minute),
				Position: geom.Point{Lon: 11.9 + float64(j)*0.001, Lat: 54.7},
				Attrs:    map[string]any{"MMSI": id, "SOG": 4.5},
			})
		}
	}
	coll, err := trajectory.Build(fixes, "MMSI", 0)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return coll
}

func TestTrajectoriesGeoJSON(t *testing.T) {
	coll := testCollection(t)
	b, err := formatter.TrajectoriesGeoJSON(coll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var fc formatter.FeatureCollection
	if err := json.Unmarshal(b, &fc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if fc.Type != "FeatureCollection" || len(fc.Features) != 2 {
		t.Fatalf("expected a FeatureCollection of 2 features, got %s/%d", fc.Type, len(fc.Features))
	}

	f := fc.Features[0]
	if f.Geometry.Type != "LineString" {
		t.Errorf("expected LineString, got %s", f.Geometry.Type)
	}
	if f.Properties["id"] != "111" {
		t.Errorf("expected first feature for 111, got %v", f.Properties["id"])
	}
	coords, ok := f.Geometry.Coordinates.([]any)
	if !ok || len(coords) != 3 {
		t.Errorf("expected 3 coordinate pairs, got %v", f.Geometry.Coordinates)
	}
	if f.Properties["start_time"] != "2017-07-05T17:00:00Z" {
		t.Errorf("unexpected start_time: %v", f.Properties["start_time"])
	}
}

func TestTrajectoriesGeoJSON_Empty(t *testing.T) {
	b, err := formatter.TrajectoriesGeoJSON(trajectory.NewCollection(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(b), `"features":[]`) {
		t.Errorf("empty collection should render an empty features array: %s", b)
	}
}

func TestStartLocationsGeoJSON(t *testing.T) {
	coll := testCollection(t)
	rows, err := coll.StartLocations([]string{"SOG"})
	if err != nil {
		t.Fatalf("start locations: %v", err)
	}
	b, err := formatter.StartLocationsGeoJSON(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var fc formatter.FeatureCollection
	if err := json.Unmarshal(b, &fc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(fc.Features) != 2 {
		t.Fatalf("expected 2 point features, got %d", len(fc.Features))
	}
	if fc.Features[0].Geometry.Type != "Point" {
		t.Errorf("expected Point geometry, got %s", fc.Features[0].Geometry.Type)
	}
	if fc.Features[0].Properties["SOG"] != 4.5 {
		t.Errorf("expected carried SOG property, got %v", fc.Features[0].Properties["SOG"])
	}
}

func TestStartLocationsCSV(t *testing.T) {
	coll := testCollection(t)
	rows, err := coll.StartLocations([]string{"SOG"})
	if err != nil {
		t.Fatalf("start locations: %v", err)
	}
	b, err := formatter.StartLocationsCSV(rows, []string{"SOG"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "id,lon,lat,SOG" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "111,11.900000,54.700000,4.5") {
		t.Errorf("unexpected first row: %s", lines[1])
	}
}
