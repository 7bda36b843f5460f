package geom

import "math"

// Point is a 2D geographic coordinate (longitude, latitude in degrees).
type Point struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Valid reports whether both coordinates are finite numbers.
func (p Point) Valid() bool {
	return !math.IsNaN(p.Lon) && !math.IsInf(p.Lon, 0) &&
		!math.IsNaN(p.Lat) && !math.IsInf(p.Lat, 0)
}

const earthRadiusKM = 6371.0

// HaversineMeters returns the great-circle distance between two points in meters.
func HaversineMeters(a, b Point) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180
	la1 := a.Lat * math.Pi / 180
	la2 := b.Lat * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKM * c * 1000
}

// PathLengthMeters returns the summed haversine length of the polyline
// through pts. Fewer than two points has zero length.
func PathLengthMeters(pts []Point) float64 {
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += HaversineMeters(pts[i-1], pts[i])
	}
	return total
}

// Bounds returns the axis-aligned bounding box of pts.
// ok is false when pts is empty.
func Bounds(pts []Point) (min, max Point, ok bool) {
	if len(pts) == 0 {
		return Point{}, Point{}, false
	}
	min, max = pts[0], pts[0]
	for _, p := range pts[1:] {
		if p.Lon < min.Lon {
			min.Lon = p.Lon
		}
		if p.Lat < min.Lat {
			min.Lat = p.Lat
		}
		if p.Lon > max.Lon {
			max.Lon = p.Lon
		}
		if p.Lat > max.Lat {
			max.Lat = p.Lat
		}
	}
	return min, max, true
}
