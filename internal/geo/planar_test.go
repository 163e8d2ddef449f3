package geo

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func squareAround(cx, cy, half float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{cx - half, cy - half},
		{cx + half, cy - half},
		{cx + half, cy + half},
		{cx - half, cy + half},
		{cx - half, cy - half},
	}}
}

func TestIntersects(t *testing.T) {
	parcel := squareAround(127.0, 36.5, 0.0005)

	t.Run("crossing line intersects", func(t *testing.T) {
		road := orb.LineString{{126.999, 36.5}, {127.001, 36.5}}
		assert.True(t, Intersects(parcel, road))
	})

	t.Run("line fully inside intersects", func(t *testing.T) {
		road := orb.LineString{{126.9999, 36.5}, {127.0001, 36.5}}
		assert.True(t, Intersects(parcel, road))
	})

	t.Run("distant line does not intersect", func(t *testing.T) {
		road := orb.LineString{{127.01, 36.51}, {127.02, 36.51}}
		assert.False(t, Intersects(parcel, road))
	})

	t.Run("touching edge counts as intersection", func(t *testing.T) {
		road := orb.LineString{{127.0005, 36.4995}, {127.0005, 36.5005}}
		assert.True(t, Intersects(parcel, road))
	})

	t.Run("polygon containing parcel intersects", func(t *testing.T) {
		zone := squareAround(127.0, 36.5, 0.01)
		assert.True(t, Intersects(parcel, zone))
		assert.True(t, Intersects(zone, parcel))
	})
}

func TestMinDistance(t *testing.T) {
	parcel := squareAround(127.0, 36.5, 0.0005)

	t.Run("gap measured from nearest edge", func(t *testing.T) {
		// Road edge 0.0001 deg east of the parcel's east edge.
		road := orb.LineString{{127.0006, 36.4995}, {127.0006, 36.5005}}
		d := MinDistance(parcel, road)
		assert.InDelta(t, 0.0001, d, 1e-9)
	})

	t.Run("intersecting geometries have zero distance", func(t *testing.T) {
		road := orb.LineString{{126.999, 36.5}, {127.001, 36.5}}
		assert.Equal(t, 0.0, MinDistance(parcel, road))
	})
}

func TestNear_BufferHeuristic(t *testing.T) {
	parcel := squareAround(127.0, 36.5, 0.0005)
	oneMeter := DegreesForMeters(1.0)

	t.Run("sub-meter digitization gap still connects", func(t *testing.T) {
		// ~0.5m east of the parcel edge.
		gap := DegreesForMeters(0.5)
		road := orb.LineString{{127.0005 + gap, 36.4995}, {127.0005 + gap, 36.5005}}
		assert.True(t, Near(parcel, road, oneMeter))
	})

	t.Run("road beyond the buffer does not connect", func(t *testing.T) {
		gap := DegreesForMeters(5.0)
		road := orb.LineString{{127.0005 + gap, 36.4995}, {127.0005 + gap, 36.5005}}
		assert.False(t, Near(parcel, road, oneMeter))
	})
}

func TestExpandBBox(t *testing.T) {
	parcel := squareAround(127.0, 36.5, 0.0005)
	b := ExpandBBox(parcel, 0.0001)

	assert.InDelta(t, 126.9994, b.Min[0], 1e-9)
	assert.InDelta(t, 36.4994, b.Min[1], 1e-9)
	assert.InDelta(t, 127.0006, b.Max[0], 1e-9)
	assert.InDelta(t, 36.5006, b.Max[1], 1e-9)
}

func TestPointInPolygon_Holes(t *testing.T) {
	outer := orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}
	hole := orb.Ring{{4, 4}, {6, 4}, {6, 6}, {4, 6}, {4, 4}}
	poly := orb.Polygon{outer, hole}

	assert.True(t, pointInPolygon(orb.Point{2, 2}, poly))
	assert.False(t, pointInPolygon(orb.Point{5, 5}, poly), "point in hole is outside")
	assert.False(t, pointInPolygon(orb.Point{20, 20}, poly))
}
