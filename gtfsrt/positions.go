package gtfsrt

import (
	"fmt"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/trajectory-engine/geom"
	"github.com/theoremus-urban-solutions/trajectory-engine/trajectory"
)

// VehicleIDAttribute is the attribute every parsed fix is keyed by; feed it
// to trajectory.Build as the group key.
const VehicleIDAttribute = "vehicle_id"

// ParseVehiclePositions decodes a GTFS-RT FeedMessage and returns one fix
// per vehicle-position entity. Entities without a position are skipped;
// entities without their own timestamp fall back to the feed header
// timestamp. route_id, trip_id, bearing, and speed come along as
// attributes when present.
func ParseVehiclePositions(b []byte) ([]trajectory.Fix, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(b, &fm); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	var headerTS int64
	if fm.Header != nil && fm.Header.Timestamp != nil {
		headerTS = int64(*fm.Header.Timestamp)
	}

	var fixes []trajectory.Fix
	for _, ent := range fm.Entity {
		vp := ent.Vehicle
		if vp == nil || vp.Position == nil || vp.Position.Latitude == nil || vp.Position.Longitude == nil {
			continue
		}
		ts := headerTS
		if vp.Timestamp != nil {
			ts = int64(*vp.Timestamp)
		}
		if ts == 0 {
			continue
		}

		vehicleID := ent.GetId()
		if vp.Vehicle != nil && vp.Vehicle.Id != nil && *vp.Vehicle.Id != "" {
			vehicleID = *vp.Vehicle.Id
		}

		attrs := map[string]any{VehicleIDAttribute: vehicleID}
		if vp.Trip != nil {
			if vp.Trip.RouteId != nil {
				attrs["route_id"] = *vp.Trip.RouteId
			}
			if vp.Trip.TripId != nil {
				attrs["trip_id"] = *vp.Trip.TripId
			}
		}
		if vp.Position.Bearing != nil {
			attrs["bearing"] = float64(*vp.Position.Bearing)
		}
		if vp.Position.Speed != nil {
			attrs["speed"] = float64(*vp.Position.Speed)
		}

		fixes = append(fixes, trajectory.Fix{
			Time: time.Unix(ts, 0).UTC(),
			Position: geom.Point{
				Lon: float64(*vp.Position.Longitude),
				Lat: float64(*vp.Position.Latitude),
			},
			Attrs: attrs,
		})
	}
	return fixes, nil
}
