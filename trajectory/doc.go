// Package trajectory turns a stream of timestamped position fixes into
// structured trajectories and provides the query surface over them.
//
// # Overview
//
// The package coordinates three concepts:
//   - a fix table: an ordered []Fix, each fix carrying a timestamp, a
//     position, and arbitrary named attributes (one of which identifies the
//     moving object)
//   - Trajectory: one object's time-ordered fix sequence with derived
//     geometric and temporal properties
//   - Collection: an ordered, immutable set of trajectories with
//     filter/split/extract operations
//
// # Usage
//
// Build trajectories from a fix table, then query:
//
//	coll, err := trajectory.Build(fixes, "MMSI", 100)
//	if err != nil { ... }
//
//	trips := coll.SplitByObservationGap(5 * time.Minute)
//	inArea := trips.Intersecting(area)
//	rows, err := inArea.StartLocations([]string{"SOG", "ShipType"})
//
// # Immutability
//
// Trajectories and Collections are never mutated after construction. Every
// query returns a new Collection; splitting produces new, independent
// Trajectory values and leaves the originals untouched. Because of this the
// operations are safe to run concurrently over shared inputs without locking.
package trajectory
