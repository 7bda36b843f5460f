// Package geom provides the geometric primitives shared by the trajectory
// engine: geographic points, geodesic distance, and polygon predicates.
//
// Distances are always geodesic (haversine, meters). Intersection and
// containment predicates are purely topological and are evaluated on raw
// lon/lat coordinates, so the two never mix metrics.
package geom
