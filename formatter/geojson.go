package formatter

import (
	"encoding/json"
	"time"

	"github.com/theoremus-urban-solutions/trajectory-engine/trajectory"
)

// FeatureCollection is a minimal GeoJSON feature collection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a single GeoJSON feature.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// Geometry holds either a LineString (Coordinates) or a Point.
type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

// TrajectoriesGeoJSON renders every trajectory in the collection as a
// LineString feature, in collection order. Properties carry the object id,
// fix count, path length, start/end time, duration, and average speed.
func TrajectoriesGeoJSON(c *trajectory.Collection) ([]byte, error) {
	fc := FeatureCollection{Type: "FeatureCollection", Features: []Feature{}}
	for _, tr := range c.Trajectories() {
		length, err := tr.Length()
		if err != nil {
			return nil, err
		}
		start, err := tr.StartTime()
		if err != nil {
			return nil, err
		}
		end, err := tr.EndTime()
		if err != nil {
			return nil, err
		}
		speed, err := tr.AverageSpeed()
		if err != nil {
			return nil, err
		}

		coords := make([][2]float64, 0, tr.NumFixes())
		for _, f := range tr.Fixes() {
			coords = append(coords, [2]float64{f.Position.Lon, f.Position.Lat})
		}
		fc.Features = append(fc.Features, Feature{
			Type:     "Feature",
			Geometry: Geometry{Type: "LineString", Coordinates: coords},
			Properties: map[string]any{
				"id":            tr.ID(),
				"num_fixes":     tr.NumFixes(),
				"length_m":      length,
				"start_time":    start.UTC().Format(time.RFC3339),
				"end_time":      end.UTC().Format(time.RFC3339),
				"duration_s":    end.Sub(start).Seconds(),
				"avg_speed_mps": speed,
			},
		})
	}
	return json.Marshal(fc)
}

// StartLocationsGeoJSON renders a start-location table as Point features in
// row order, with the carried attributes as feature properties.
func StartLocationsGeoJSON(rows []trajectory.StartLocation) ([]byte, error) {
	fc := FeatureCollection{Type: "FeatureCollection", Features: []Feature{}}
	for _, row := range rows {
		props := map[string]any{"id": row.ObjectID}
		for k, v := range row.Attrs {
			props[k] = v
		}
		fc.Features = append(fc.Features, Feature{
			Type:       "Feature",
			Geometry:   Geometry{Type: "Point", Coordinates: [2]float64{row.Position.Lon, row.Position.Lat}},
			Properties: props,
		})
	}
	return json.Marshal(fc)
}
