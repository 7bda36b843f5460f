// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// It covers the HTTP server, the engine defaults (grouping attribute,
// minimum length, observation gap), and the configured fix sources (AIS
// CSV export, GTFS-RT vehicle positions feed).
package config
