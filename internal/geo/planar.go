package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// Planar predicates over WGS84 coordinates. Precision here is "good enough
// for a 1 m buffer heuristic", not survey grade: distances are computed in
// degrees and thresholds converted with a flat meters-per-degree factor,
// which is fine at cadastral scale.

// metersPerDegree approximates one degree of latitude at Korean latitudes.
const metersPerDegree = 111320.0

// DegreesForMeters converts a metric tolerance into degrees.
func DegreesForMeters(m float64) float64 { return m / metersPerDegree }

// ExpandBBox returns "minx,miny,maxx,maxy" for the geometry's bound grown by
// margin degrees in every direction.
func ExpandBBox(g orb.Geometry, margin float64) orb.Bound {
	b := g.Bound()
	return orb.Bound{
		Min: orb.Point{b.Min[0] - margin, b.Min[1] - margin},
		Max: orb.Point{b.Max[0] + margin, b.Max[1] + margin},
	}
}

// Near reports whether the two geometries intersect or come within tolDeg of
// each other. Testing "buffered parcel intersects road" is equivalent to
// "distance(parcel, road) <= buffer" for a boolean verdict, so the 1 m buffer
// is implemented as a distance threshold.
func Near(a, b orb.Geometry, tolDeg float64) bool {
	if Intersects(a, b) {
		return true
	}
	return MinDistance(a, b) <= tolDeg
}

// Intersects reports whether the geometries share any point: either their
// boundaries cross or one contains the other.
func Intersects(a, b orb.Geometry) bool {
	pa, pb := paths(a), paths(b)
	for _, ra := range pa {
		for _, rb := range pb {
			if pathsCross(ra, rb) {
				return true
			}
		}
	}
	// No boundary crossing: one may still lie entirely inside the other.
	if p := firstPoint(pb); p != nil && containedIn(a, *p) {
		return true
	}
	if p := firstPoint(pa); p != nil && containedIn(b, *p) {
		return true
	}
	return false
}

// MinDistance returns the smallest planar distance (in degrees) between the
// boundaries of the two geometries, or +Inf if either is empty.
func MinDistance(a, b orb.Geometry) float64 {
	min := math.Inf(1)
	for _, ra := range paths(a) {
		for _, rb := range paths(b) {
			for i := 0; i+1 <= len(ra); i++ {
				s1a, s1b := segmentAt(ra, i)
				if s1a == nil {
					break
				}
				for j := 0; j+1 <= len(rb); j++ {
					s2a, s2b := segmentAt(rb, j)
					if s2a == nil {
						break
					}
					if d := segmentDistance(*s1a, *s1b, *s2a, *s2b); d < min {
						min = d
					}
				}
			}
		}
	}
	return min
}

// paths flattens a geometry into point sequences: rings for polygons, the
// line itself for linestrings, a single point for points.
func paths(g orb.Geometry) [][]orb.Point {
	switch v := g.(type) {
	case orb.Point:
		return [][]orb.Point{{v}}
	case orb.LineString:
		return [][]orb.Point{v}
	case orb.MultiLineString:
		out := make([][]orb.Point, 0, len(v))
		for _, ls := range v {
			out = append(out, ls)
		}
		return out
	case orb.Ring:
		return [][]orb.Point{v}
	case orb.Polygon:
		out := make([][]orb.Point, 0, len(v))
		for _, r := range v {
			out = append(out, r)
		}
		return out
	case orb.MultiPolygon:
		var out [][]orb.Point
		for _, poly := range v {
			for _, r := range poly {
				out = append(out, r)
			}
		}
		return out
	case orb.Collection:
		var out [][]orb.Point
		for _, member := range v {
			out = append(out, paths(member)...)
		}
		return out
	default:
		return nil
	}
}

func firstPoint(p [][]orb.Point) *orb.Point {
	for _, path := range p {
		if len(path) > 0 {
			pt := path[0]
			return &pt
		}
	}
	return nil
}

// containedIn reports whether pt lies inside g, for polygonal g.
func containedIn(g orb.Geometry, pt orb.Point) bool {
	switch v := g.(type) {
	case orb.Polygon:
		return pointInPolygon(pt, v)
	case orb.MultiPolygon:
		for _, poly := range v {
			if pointInPolygon(pt, poly) {
				return true
			}
		}
	case orb.Collection:
		for _, member := range v {
			if containedIn(member, pt) {
				return true
			}
		}
	}
	return false
}

// pointInPolygon: even-odd hit on the outer ring, excluded by any hole.
func pointInPolygon(pt orb.Point, poly orb.Polygon) bool {
	if len(poly) == 0 {
		return false
	}
	if !pointInRing(pt, poly[0]) {
		return false
	}
	for i := 1; i < len(poly); i++ {
		if pointInRing(pt, poly[i]) {
			return false
		}
	}
	return true
}

// pointInRing is the classic ray cast. The epsilon keeps the division stable
// when an edge is horizontal.
func pointInRing(pt orb.Point, ring []orb.Point) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	inside := false
	x, y := pt[0], pt[1]
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]
		if ((yi > y) != (yj > y)) && (x < (xj-xi)*(y-yi)/(yj-yi+1e-12)+xi) {
			inside = !inside
		}
	}
	return inside
}

func pathsCross(a, b []orb.Point) bool {
	for i := 0; i+1 < len(a); i++ {
		for j := 0; j+1 < len(b); j++ {
			if segmentsIntersect(a[i], a[i+1], b[j], b[j+1]) {
				return true
			}
		}
	}
	return false
}

// segmentAt yields the i-th segment of a path, treating a single point as a
// degenerate segment so distance math still applies.
func segmentAt(path []orb.Point, i int) (*orb.Point, *orb.Point) {
	switch {
	case len(path) == 0 || i >= len(path):
		return nil, nil
	case len(path) == 1:
		if i > 0 {
			return nil, nil
		}
		return &path[0], &path[0]
	case i+1 >= len(path):
		return nil, nil
	default:
		return &path[i], &path[i+1]
	}
}

func segmentsIntersect(p1, p2, q1, q2 orb.Point) bool {
	d1 := cross(q1, q2, p1)
	d2 := cross(q1, q2, p2)
	d3 := cross(p1, p2, q1)
	d4 := cross(p1, p2, q2)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// Collinear touches count as intersection: adjacency is exactly the case
	// the analyzer cares about.
	switch {
	case d1 == 0 && onSegment(q1, q2, p1):
		return true
	case d2 == 0 && onSegment(q1, q2, p2):
		return true
	case d3 == 0 && onSegment(p1, p2, q1):
		return true
	case d4 == 0 && onSegment(p1, p2, q2):
		return true
	}
	return false
}

func cross(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

func onSegment(a, b, p orb.Point) bool {
	return math.Min(a[0], b[0]) <= p[0] && p[0] <= math.Max(a[0], b[0]) &&
		math.Min(a[1], b[1]) <= p[1] && p[1] <= math.Max(a[1], b[1])
}

// segmentDistance is the minimum distance between two segments that do not
// necessarily intersect.
func segmentDistance(p1, p2, q1, q2 orb.Point) float64 {
	if segmentsIntersect(p1, p2, q1, q2) {
		return 0
	}
	return math.Min(
		math.Min(pointSegmentDistance(p1, q1, q2), pointSegmentDistance(p2, q1, q2)),
		math.Min(pointSegmentDistance(q1, p1, p2), pointSegmentDistance(q2, p1, p2)),
	)
}

func pointSegmentDistance(p, a, b orb.Point) float64 {
	dx, dy := b[0]-a[0], b[1]-a[1]
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(p[0]-a[0], p[1]-a[1])
	}
	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p[0]-(a[0]+t*dx), p[1]-(a[1]+t*dy))
}
