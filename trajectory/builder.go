package trajectory

import (
	"fmt"
	"sort"
)

// Build groups a fix table by the groupKey attribute, orders each group by
// time, and returns the surviving trajectories as a Collection.
//
// Every fix must carry a non-zero timestamp, a finite position, and the
// groupKey attribute; otherwise Build fails with ErrInvalidInput. An empty
// table fails with ErrEmptyInput. Partial success is not offered: callers
// wanting partial results must pre-filter the table.
//
// Groups are exhaustive and disjoint. Within a group the sort is stable, so
// fixes with equal timestamps keep their input order and every attribute
// payload stays attached to its own fix. A group with fewer than two fixes,
// or whose haversine path length is strictly below minLength meters, is
// discarded. Collection order is the first-occurrence order of each object
// id in the input.
func Build(fixes []Fix, groupKey string, minLength float64) (*Collection, error) {
	if len(fixes) == 0 {
		return nil, fmt.Errorf("%w: fix table has zero rows", ErrEmptyInput)
	}

	groups := map[string][]Fix{}
	var order []string
	for i, f := range fixes {
		if f.Time.IsZero() {
			return nil, fmt.Errorf("%w: fix %d has no timestamp", ErrInvalidInput, i)
		}
		if !f.Position.Valid() {
			return nil, fmt.Errorf("%w: fix %d has no position", ErrInvalidInput, i)
		}
		v, ok := f.Attr(groupKey)
		if !ok {
			return nil, fmt.Errorf("%w: fix %d lacks attribute %q", ErrInvalidInput, i, groupKey)
		}
		id := attrKey(v)
		if _, seen := groups[id]; !seen {
			order = append(order, id)
		}
		groups[id] = append(groups[id], f)
	}

	var result []*Trajectory
	for _, id := range order {
		group := groups[id]
		if len(group) < 2 {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Time.Before(group[j].Time)
		})
		t := newTrajectory(id, group)
		if t.length < minLength {
			continue
		}
		result = append(result, t)
	}
	return &Collection{trajectories: result}, nil
}
