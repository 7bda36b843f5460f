package trajectory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/theoremus-urban-solutions/trajectory-engine/geom"
	"github.com/theoremus-urban-solutions/trajectory-engine/trajectory"
)

// threeVessels builds a collection of three trajectories around distinct
// longitudes, each fix carrying SOG and ShipType attributes.
func threeVessels(t *testing.T) *trajectory.Collection {
	t.Helper()
	var fixes []trajectory.Fix
	for _, v := range []struct {
		mmsi string
		lon  float64
		sog  float64
	}{
		{"111", 0, 3.5},
		{"222", 10, 7.0},
		{"333", 20, 12.5},
	} {
		for j := 0; j < 3; j++ {
			fixes = append(fixes, trajectory.Fix{
				Time:     t0.Add(time.Duration(j) * time.Minute),
				Position: geom.Point{Lon: v.lon, Lat: float64(j) * 0.001},
				Attrs: map[string]any{
					"MMSI":     v.mmsi,
					"SOG":      v.sog + float64(j),
					"ShipType": "Cargo",
				},
			})
		}
	}
	coll, err := trajectory.Build(fixes, "MMSI", 0)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if coll.Len() != 3 {
		t.Fatalf("expected 3 trajectories, got %d", coll.Len())
	}
	return coll
}

func TestFilter(t *testing.T) {
	coll := threeVessels(t)
	kept := coll.Filter(func(tr *trajectory.Trajectory) bool {
		return tr.ID() != "222"
	})
	if kept.Len() != 2 {
		t.Fatalf("expected 2 trajectories, got %d", kept.Len())
	}
	if kept.Trajectories()[0].ID() != "111" || kept.Trajectories()[1].ID() != "333" {
		t.Error("filter must preserve collection order")
	}
	if coll.Len() != 3 {
		t.Error("filter must not mutate the receiver")
	}
}

func TestIntersecting(t *testing.T) {
	coll := threeVessels(t)
	// Area around longitude 10 catches only vessel 222.
	area := geom.Rect(geom.Point{Lon: 9, Lat: -1}, geom.Point{Lon: 11, Lat: 1})
	got := coll.Intersecting(area)
	if got.Len() != 1 || got.Trajectories()[0].ID() != "222" {
		t.Fatalf("expected only 222, got %d trajectories", got.Len())
	}
	// Trajectories are kept whole, never clipped.
	if got.Trajectories()[0].NumFixes() != 3 {
		t.Error("intersecting trajectories must keep all their fixes")
	}

	// Wide area keeps everything in original order.
	wide := geom.Rect(geom.Point{Lon: -1, Lat: -1}, geom.Point{Lon: 21, Lat: 1})
	all := coll.Intersecting(wide)
	var ids []string
	for _, tr := range all.Trajectories() {
		ids = append(ids, tr.ID())
	}
	if diff := cmp.Diff([]string{"111", "222", "333"}, ids); diff != "" {
		t.Errorf("order not preserved (-want +got):\n%s", diff)
	}
}

func TestStartLocations(t *testing.T) {
	coll := threeVessels(t)
	rows, err := coll.StartLocations([]string{"SOG"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	wantSOG := []float64{3.5, 7.0, 12.5}
	for i, row := range rows {
		if row.Attrs["SOG"] != wantSOG[i] {
			t.Errorf("row %d: expected SOG %v of the first fix, got %v", i, wantSOG[i], row.Attrs["SOG"])
		}
		start, err := coll.Trajectories()[i].StartLocation()
		if err != nil {
			t.Fatalf("StartLocation: %v", err)
		}
		if row.Position != start {
			t.Errorf("row %d: position should be the trajectory start, got %v", i, row.Position)
		}
	}
}

func TestStartLocations_UnknownAttribute(t *testing.T) {
	coll := threeVessels(t)
	_, err := coll.StartLocations([]string{"SOG", "Draught"})
	if !errors.Is(err, trajectory.ErrUnknownAttribute) {
		t.Errorf("expected ErrUnknownAttribute, got %v", err)
	}
}

func TestExternalFilteringComposition(t *testing.T) {
	// The exposed sequence plus per-trajectory predicates are enough for ad
	// hoc external filtering: start location in area AND length threshold.
	coll := threeVessels(t)
	area := geom.Rect(geom.Point{Lon: -1, Lat: -1}, geom.Point{Lon: 11, Lat: 1})

	var picked []string
	for _, tr := range coll.Trajectories() {
		start, err := tr.StartLocation()
		if err != nil {
			t.Fatalf("StartLocation: %v", err)
		}
		length, err := tr.Length()
		if err != nil {
			t.Fatalf("Length: %v", err)
		}
		if area.Contains(start) && length > 100 {
			picked = append(picked, tr.ID())
		}
	}
	if diff := cmp.Diff([]string{"111", "222"}, picked); diff != "" {
		t.Errorf("unexpected external filter result (-want +got):\n%s", diff)
	}
}
