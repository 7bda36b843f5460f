package trajectory

import (
	"fmt"
	"time"
)

// splitWhere cuts the trajectory between every consecutive fix pair for
// which cut returns true. Each maximal run between cuts, inclusive of both
// ends, becomes a new independent trajectory; single-fix runs are dropped
// because they cannot form a path. The receiver is left untouched.
func (t *Trajectory) splitWhere(cut func(prev, next Fix) bool) []*Trajectory {
	if len(t.fixes) == 0 {
		return nil
	}
	var parts []*Trajectory
	start := 0
	emit := func(end int) {
		if end-start < 2 {
			return
		}
		run := make([]Fix, end-start)
		copy(run, t.fixes[start:end])
		id := fmt.Sprintf("%s_%d", t.id, len(parts))
		parts = append(parts, newTrajectory(id, run))
	}
	for i := 1; i < len(t.fixes); i++ {
		if cut(t.fixes[i-1], t.fixes[i]) {
			emit(i)
			start = i
		}
	}
	emit(len(t.fixes))
	return parts
}

// SplitByObservationGap cuts the trajectory wherever the time difference
// between consecutive fixes exceeds maxGap, converting one continuous track
// (including stationary periods) into discrete trips.
func (t *Trajectory) SplitByObservationGap(maxGap time.Duration) []*Trajectory {
	return t.splitWhere(func(prev, next Fix) bool {
		return next.Time.Sub(prev.Time) > maxGap
	})
}

// SplitByObservationGap applies the per-trajectory gap split to every
// trajectory in the collection. The result enumerates all surviving
// sub-trajectories in original-trajectory order, then chronological order
// within each. Applying the same gap twice is idempotent over the fix
// sequences.
func (c *Collection) SplitByObservationGap(maxGap time.Duration) *Collection {
	var out []*Trajectory
	for _, t := range c.trajectories {
		out = append(out, t.SplitByObservationGap(maxGap)...)
	}
	return &Collection{trajectories: out}
}
