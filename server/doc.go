// Package server exposes the trajectory engine over HTTP: trajectory and
// trip GeoJSON, start-location tables, and a health endpoint. All handlers
// derive new collections from the immutable base state, so requests need
// no locking.
package server
