package trajectory_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/theoremus-urban-solutions/trajectory-engine/geom"
	"github.com/theoremus-urban-solutions/trajectory-engine/trajectory"
)

var t0 = time.Date(2017, 7, 5, 17, 0, 0, 0, time.UTC)

// degrees of latitude covering the given number of meters, small-angle
const latDegPerMeter = 1.0 / 111194.926

func aisFix(t *testing.T, mmsi string, at time.Time, lon, lat float64) trajectory.Fix {
	t.Helper()
	return trajectory.Fix{
		Time:     at,
		Position: geom.Point{Lon: lon, Lat: lat},
		Attrs:    map[string]any{"MMSI": mmsi},
	}
}

// straightLineFixes lays fixes for one object on a meridian so that the
// total path length is lengthM meters, one fix per entry in offsets.
func straightLineFixes(t *testing.T, mmsi string, lengthM float64, offsets []time.Duration) []trajectory.Fix {
	t.Helper()
	step := lengthM * latDegPerMeter / float64(len(offsets)-1)
	fixes := make([]trajectory.Fix, len(offsets))
	for i, off := range offsets {
		fixes[i] = aisFix(t, mmsi, t0.Add(off), 11.9, float64(i)*step)
	}
	return fixes
}

func TestBuild_GroupsAndOrders(t *testing.T) {
	// Interleaved ids; first occurrence order is b, a.
	fixes := []trajectory.Fix{
		aisFix(t, "b", t0.Add(2*time.Minute), 0, 0.002),
		aisFix(t, "a", t0, 0, 0),
		aisFix(t, "b", t0, 0, 0),
		aisFix(t, "a", t0.Add(time.Minute), 0, 0.001),
		aisFix(t, "b", t0.Add(time.Minute), 0, 0.001),
	}
	coll, err := trajectory.Build(fixes, "MMSI", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coll.Len() != 2 {
		t.Fatalf("expected 2 trajectories, got %d", coll.Len())
	}
	if got := coll.Trajectories()[0].ID(); got != "b" {
		t.Errorf("first trajectory should be first-seen id b, got %s", got)
	}
	if got := coll.Trajectories()[1].ID(); got != "a" {
		t.Errorf("second trajectory should be a, got %s", got)
	}
	// Within each trajectory fixes must be time-ordered.
	for _, tr := range coll.Trajectories() {
		fs := tr.Fixes()
		for i := 1; i < len(fs); i++ {
			if fs[i].Time.Before(fs[i-1].Time) {
				t.Errorf("trajectory %s fixes out of order at %d", tr.ID(), i)
			}
		}
	}
}

func TestBuild_StableSortKeepsPayloadWithFix(t *testing.T) {
	// Two fixes share a timestamp; the stable sort must keep input order
	// and each attribute payload attached to its own fix.
	f1 := aisFix(t, "a", t0, 0, 0)
	f1.Attrs["seq"] = 1
	f2 := aisFix(t, "a", t0, 0, 0.001)
	f2.Attrs["seq"] = 2
	f3 := aisFix(t, "a", t0.Add(time.Minute), 0, 0.002)
	f3.Attrs["seq"] = 3

	coll, err := trajectory.Build([]trajectory.Fix{f1, f2, f3}, "MMSI", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fs := coll.Trajectories()[0].Fixes()
	for i, want := range []int{1, 2, 3} {
		if got := fs[i].Attrs["seq"]; got != want {
			t.Errorf("fix %d: expected seq %d, got %v", i, want, got)
		}
	}
}

func TestBuild_DiscardsDegenerateGroups(t *testing.T) {
	fixes := []trajectory.Fix{
		aisFix(t, "pair", t0, 0, 0),
		aisFix(t, "pair", t0.Add(time.Minute), 0, 0.001),
		aisFix(t, "single", t0, 5, 5),
	}
	coll, err := trajectory.Build(fixes, "MMSI", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coll.Len() != 1 || coll.Trajectories()[0].ID() != "pair" {
		t.Fatalf("expected only the 2-fix group to survive, got %d", coll.Len())
	}
}

func TestBuild_MinLengthMonotone(t *testing.T) {
	// ~500 m track; raising minLength can only shrink the result.
	fixes := straightLineFixes(t, "123", 500, []time.Duration{0, time.Minute, 2 * time.Minute, 3 * time.Minute})
	short := straightLineFixes(t, "456", 50, []time.Duration{0, time.Minute})
	all := append(fixes, short...)

	counts := []int{}
	for _, min := range []float64{0, 100, 400, 600} {
		coll, err := trajectory.Build(all, "MMSI", min)
		if err != nil {
			t.Fatalf("minLength %.0f: unexpected error: %v", min, err)
		}
		counts = append(counts, coll.Len())
	}
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[i-1] {
			t.Errorf("result size must be non-increasing in minLength: %v", counts)
		}
	}
	if counts[0] != 2 || counts[1] != 1 || counts[3] != 0 {
		t.Errorf("unexpected counts: %v", counts)
	}
}

func TestBuild_FixConservation(t *testing.T) {
	// With minLength 0, every fix of every >=2-fix group survives exactly once.
	fixes := []trajectory.Fix{
		aisFix(t, "a", t0, 0, 0),
		aisFix(t, "a", t0.Add(time.Minute), 0, 0.001),
		aisFix(t, "a", t0.Add(2*time.Minute), 0, 0.002),
		aisFix(t, "b", t0, 1, 1),
		aisFix(t, "b", t0.Add(time.Minute), 1, 1.001),
		aisFix(t, "lone", t0, 2, 2),
	}
	coll, err := trajectory.Build(fixes, "MMSI", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	total := 0
	for _, tr := range coll.Trajectories() {
		total += tr.NumFixes()
	}
	if total != 5 {
		t.Errorf("expected 5 fixes across trajectories (6 input minus 1 single), got %d", total)
	}
}

func TestBuild_Errors(t *testing.T) {
	valid := aisFix(t, "a", t0, 0, 0)
	noTime := trajectory.Fix{Position: geom.Point{}, Attrs: map[string]any{"MMSI": "a"}}
	noKey := trajectory.Fix{Time: t0, Position: geom.Point{}, Attrs: map[string]any{"SOG": 4.2}}

	tests := []struct {
		name  string
		fixes []trajectory.Fix
		want  error
	}{
		{"empty table", nil, trajectory.ErrEmptyInput},
		{"missing timestamp", []trajectory.Fix{valid, noTime}, trajectory.ErrInvalidInput},
		{"missing group key", []trajectory.Fix{valid, noKey}, trajectory.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := trajectory.Build(tt.fixes, "MMSI", 0)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestBuild_InvalidPosition(t *testing.T) {
	bad := aisFix(t, "a", t0, 0, 0)
	bad.Position = geom.Point{Lon: math.NaN(), Lat: 0}
	_, err := trajectory.Build([]trajectory.Fix{bad}, "MMSI", 0)
	if !errors.Is(err, trajectory.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
