package trajectory

import (
	"fmt"

	"github.com/theoremus-urban-solutions/trajectory-engine/geom"
)

// Collection is an ordered, immutable set of trajectories. Order is builder
// or insertion order; no operation re-orders. Every query returns a new
// Collection and never mutates the receiver.
type Collection struct {
	trajectories []*Trajectory
}

// NewCollection builds a Collection over the given trajectories in order.
func NewCollection(trajectories []*Trajectory) *Collection {
	owned := make([]*Trajectory, len(trajectories))
	copy(owned, trajectories)
	return &Collection{trajectories: owned}
}

// Trajectories exposes the underlying ordered sequence. The returned slice
// is a read-only view; callers may iterate or filter it externally.
func (c *Collection) Trajectories() []*Trajectory { return c.trajectories }

// Len returns the number of trajectories in the collection.
func (c *Collection) Len() int { return len(c.trajectories) }

// Filter returns a new Collection holding, in original order, every
// trajectory for which keep returns true. It is the generic primitive the
// named queries are built on.
func (c *Collection) Filter(keep func(*Trajectory) bool) *Collection {
	var out []*Trajectory
	for _, t := range c.trajectories {
		if keep(t) {
			out = append(out, t)
		}
	}
	return &Collection{trajectories: out}
}

// Intersecting returns the trajectories whose path intersects area, in
// original order. Non-intersecting trajectories are dropped entirely; none
// are clipped or split.
func (c *Collection) Intersecting(area geom.Polygon) *Collection {
	return c.Filter(func(t *Trajectory) bool { return t.Intersects(area) })
}

// StartLocation is one row of the start-location table: a trajectory's
// object id, the position of its first fix, and the requested attributes
// copied verbatim from that fix.
type StartLocation struct {
	ObjectID string
	Position geom.Point
	Attrs    map[string]any
}

// StartLocations emits one row per trajectory in collection order. It fails
// with ErrUnknownAttribute when a requested attribute is absent from a
// trajectory's first fix, and with ErrEmptyTrajectory when the collection
// holds a zero-fix trajectory.
func (c *Collection) StartLocations(attrs []string) ([]StartLocation, error) {
	rows := make([]StartLocation, 0, len(c.trajectories))
	for _, t := range c.trajectories {
		pos, err := t.StartLocation()
		if err != nil {
			return nil, err
		}
		first := t.fixes[0]
		carried := make(map[string]any, len(attrs))
		for _, name := range attrs {
			v, ok := first.Attr(name)
			if !ok {
				return nil, fmt.Errorf("%w: %q not present on first fix of %s", ErrUnknownAttribute, name, t.id)
			}
			carried[name] = v
		}
		rows = append(rows, StartLocation{ObjectID: t.id, Position: pos, Attrs: carried})
	}
	return rows, nil
}
