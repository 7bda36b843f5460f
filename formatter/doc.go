// Package formatter serializes trajectory collections for consumers.
//
// This package is organized into:
// - geojson.go: GeoJSON FeatureCollections (LineString per trajectory, Point per start location)
// - csv.go: start-location table export
//
// The output carries the geometry, timestamps, and attributes a renderer
// needs, without any engine logic of its own.
package formatter
