package trajectory

import (
	"time"

	"github.com/theoremus-urban-solutions/trajectory-engine/geom"
)

// Trajectory is one object's time-ordered fix sequence. Instances are
// immutable: they are created by Build or by a split and never change
// afterwards, so the cached length stays valid for the life of the value.
type Trajectory struct {
	id     string
	fixes  []Fix
	length float64
}

// newTrajectory takes ownership of fixes. The caller must not retain the
// slice. Fixes must already be sorted by time.
func newTrajectory(id string, fixes []Fix) *Trajectory {
	t := &Trajectory{id: id, fixes: fixes}
	t.length = geom.PathLengthMeters(t.positions())
	return t
}

// ID returns the object identifier the trajectory was grouped under. Split
// products carry the parent id with a numeric suffix.
func (t *Trajectory) ID() string { return t.id }

// Fixes exposes the underlying time-ordered fix sequence. The returned
// slice is a read-only view; callers must not modify it.
func (t *Trajectory) Fixes() []Fix { return t.fixes }

// NumFixes returns the number of fixes in the trajectory.
func (t *Trajectory) NumFixes() int { return len(t.fixes) }

// Length returns the trajectory's path length in meters: the sum of
// consecutive-fix haversine distances.
func (t *Trajectory) Length() (float64, error) {
	if len(t.fixes) == 0 {
		return 0, ErrEmptyTrajectory
	}
	return t.length, nil
}

// StartLocation returns the position of the first fix.
func (t *Trajectory) StartLocation() (geom.Point, error) {
	if len(t.fixes) == 0 {
		return geom.Point{}, ErrEmptyTrajectory
	}
	return t.fixes[0].Position, nil
}

// EndLocation returns the position of the last fix.
func (t *Trajectory) EndLocation() (geom.Point, error) {
	if len(t.fixes) == 0 {
		return geom.Point{}, ErrEmptyTrajectory
	}
	return t.fixes[len(t.fixes)-1].Position, nil
}

// StartTime returns the timestamp of the first fix.
func (t *Trajectory) StartTime() (time.Time, error) {
	if len(t.fixes) == 0 {
		return time.Time{}, ErrEmptyTrajectory
	}
	return t.fixes[0].Time, nil
}

// EndTime returns the timestamp of the last fix.
func (t *Trajectory) EndTime() (time.Time, error) {
	if len(t.fixes) == 0 {
		return time.Time{}, ErrEmptyTrajectory
	}
	return t.fixes[len(t.fixes)-1].Time, nil
}

// Duration returns end time minus start time. Non-negative by the ordering
// invariant.
func (t *Trajectory) Duration() (time.Duration, error) {
	if len(t.fixes) == 0 {
		return 0, ErrEmptyTrajectory
	}
	return t.fixes[len(t.fixes)-1].Time.Sub(t.fixes[0].Time), nil
}

// AverageSpeed returns path length over duration in meters per second.
// A zero-duration trajectory has zero average speed.
func (t *Trajectory) AverageSpeed() (float64, error) {
	d, err := t.Duration()
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, nil
	}
	return t.length / d.Seconds(), nil
}

// Bounds returns the bounding box of the trajectory's positions.
func (t *Trajectory) Bounds() (min, max geom.Point, err error) {
	min, max, ok := geom.Bounds(t.positions())
	if !ok {
		return geom.Point{}, geom.Point{}, ErrEmptyTrajectory
	}
	return min, max, nil
}

// Intersects reports whether the trajectory's path, the polyline through
// all of its fixes, touches the area's boundary or interior. An empty
// trajectory intersects nothing.
func (t *Trajectory) Intersects(area geom.Polygon) bool {
	return area.IntersectsPath(t.positions())
}

func (t *Trajectory) positions() []geom.Point {
	pts := make([]geom.Point, len(t.fixes))
	for i, f := range t.fixes {
		pts[i] = f.Position
	}
	return pts
}
