// Package gtfsrt turns GTFS-Realtime VehiclePositions feeds into fix
// tables for the trajectory engine. It is the live counterpart of the ais
// package: each feed entity becomes one fix keyed by vehicle id, and an
// Accumulator collects fixes across successive feed refreshes until enough
// history exists to build trajectories from.
package gtfsrt
