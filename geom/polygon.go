package geom

import "errors"

// Polygon is a closed planar region described by an ordered ring of
// vertices. The ring is implicitly closed: the last vertex connects back to
// the first. The engine never mutates a Polygon after construction.
type Polygon struct {
	ring []Point
}

// ErrDegeneratePolygon is returned when a ring has fewer than three vertices.
var ErrDegeneratePolygon = errors.New("polygon requires at least 3 vertices")

// NewPolygon builds a Polygon from an ordered ring of at least three
// vertices. A trailing vertex equal to the first is accepted and dropped.
func NewPolygon(ring []Point) (Polygon, error) {
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		ring = ring[:len(ring)-1]
	}
	if len(ring) < 3 {
		return Polygon{}, ErrDegeneratePolygon
	}
	owned := make([]Point, len(ring))
	copy(owned, ring)
	return Polygon{ring: owned}, nil
}

// Rect returns the rectangular Polygon spanned by two opposite corners.
func Rect(min, max Point) Polygon {
	return Polygon{ring: []Point{
		{Lon: min.Lon, Lat: min.Lat},
		{Lon: max.Lon, Lat: min.Lat},
		{Lon: max.Lon, Lat: max.Lat},
		{Lon: min.Lon, Lat: max.Lat},
	}}
}

// Ring returns a copy of the polygon's vertex ring.
func (pg Polygon) Ring() []Point {
	out := make([]Point, len(pg.ring))
	copy(out, pg.ring)
	return out
}

// Contains reports whether p lies inside the polygon, using the even-odd
// ray-casting rule with a horizontal ray.
func (pg Polygon) Contains(p Point) bool {
	inside := false
	n := len(pg.ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := pg.ring[i], pg.ring[j]
		if (a.Lat > p.Lat) != (b.Lat > p.Lat) {
			x := a.Lon + (p.Lat-a.Lat)/(b.Lat-a.Lat)*(b.Lon-a.Lon)
			if p.Lon < x {
				inside = !inside
			}
		}
	}
	return inside
}

// IntersectsSegment reports whether the segment a-b crosses or touches any
// edge of the polygon ring.
func (pg Polygon) IntersectsSegment(a, b Point) bool {
	n := len(pg.ring)
	for i := 0; i < n; i++ {
		c := pg.ring[i]
		d := pg.ring[(i+1)%n]
		if segmentsIntersect(a, b, c, d) {
			return true
		}
	}
	return false
}

// IntersectsPath reports whether the polyline through pts touches the
// polygon's boundary or interior. A single interior vertex is enough; so is
// a single segment crossing an edge.
func (pg Polygon) IntersectsPath(pts []Point) bool {
	for _, p := range pts {
		if pg.Contains(p) {
			return true
		}
	}
	for i := 1; i < len(pts); i++ {
		if pg.IntersectsSegment(pts[i-1], pts[i]) {
			return true
		}
	}
	return false
}

// orientation of the ordered triplet (a, b, c):
// 0 collinear, 1 clockwise, 2 counterclockwise.
func orientation(a, b, c Point) int {
	v := (b.Lat-a.Lat)*(c.Lon-b.Lon) - (b.Lon-a.Lon)*(c.Lat-b.Lat)
	if v == 0 {
		return 0
	}
	if v > 0 {
		return 1
	}
	return 2
}

func onSegment(a, b, c Point) bool {
	return b.Lon <= maxf(a.Lon, c.Lon) && b.Lon >= minf(a.Lon, c.Lon) &&
		b.Lat <= maxf(a.Lat, c.Lat) && b.Lat >= minf(a.Lat, c.Lat)
}

func segmentsIntersect(p1, q1, p2, q2 Point) bool {
	o1 := orientation(p1, q1, p2)
	o2 := orientation(p1, q1, q2)
	o3 := orientation(p2, q2, p1)
	o4 := orientation(p2, q2, q1)

	if o1 != o2 && o3 != o4 {
		return true
	}
	// Collinear touch cases.
	if o1 == 0 && onSegment(p1, p2, q1) {
		return true
	}
	if o2 == 0 && onSegment(p1, q2, q1) {
		return true
	}
	if o3 == 0 && onSegment(p2, p1, q2) {
		return true
	}
	if o4 == 0 && onSegment(p2, q1, q2) {
		return true
	}
	return false
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
