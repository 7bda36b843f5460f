package gtfsrt

import (
	"sync"
	"time"

	"github.com/theoremus-urban-solutions/trajectory-engine/trajectory"
)

// Accumulator collects vehicle-position fixes across successive feed
// refreshes. A single GTFS-RT snapshot holds one fix per vehicle; only the
// history accumulated over many refreshes forms trajectories. Duplicate
// observations (same vehicle, same timestamp) are dropped so repeated
// polling of a stale feed does not inflate the table.
type Accumulator struct {
	url    string
	client *Client

	mu    sync.Mutex
	fixes []trajectory.Fix
	seen  map[string]struct{}
}

// NewAccumulator creates an accumulator polling the given VehiclePositions
// feed URL.
func NewAccumulator(url string) *Accumulator {
	return &Accumulator{
		url:    url,
		client: NewClient(),
		seen:   map[string]struct{}{},
	}
}

// Refresh fetches the feed once and appends every new observation.
// It returns the number of fixes added.
func (a *Accumulator) Refresh() (int, error) {
	raw, err := a.client.Fetch(a.url)
	if err != nil {
		return 0, err
	}
	fixes, err := ParseVehiclePositions(raw)
	if err != nil {
		return 0, err
	}
	return a.Add(fixes), nil
}

// Add appends the given fixes, skipping ones already observed.
func (a *Accumulator) Add(fixes []trajectory.Fix) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	added := 0
	for _, f := range fixes {
		id, _ := f.Attrs[VehicleIDAttribute].(string)
		key := id + "@" + f.Time.UTC().Format(time.RFC3339)
		if _, dup := a.seen[key]; dup {
			continue
		}
		a.seen[key] = struct{}{}
		a.fixes = append(a.fixes, f)
		added++
	}
	return added
}

// Fixes returns a snapshot copy of the accumulated fix table, in
// observation order.
func (a *Accumulator) Fixes() []trajectory.Fix {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]trajectory.Fix, len(a.fixes))
	copy(out, a.fixes)
	return out
}

// Size returns the number of accumulated fixes.
func (a *Accumulator) Size() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.fixes)
}
