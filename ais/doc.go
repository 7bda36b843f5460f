// Package ais reads AIS vessel report exports (CSV) into the fix tables
// the trajectory engine consumes. It is the loading collaborator of the
// engine: it only maps columns to timestamps, positions, and attributes,
// and leaves all validation of the resulting table to trajectory.Build.
package ais
