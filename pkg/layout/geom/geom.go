// Package geom is the small 2D geometry kernel used by the layout engine.
//
// It builds on the planar primitives from github.com/paulmach/orb (polygon
// containment, area, centroid, bounding boxes) and adds the handful of
// operations the engine needs on top: polygon translation, polygon-polygon
// intersection tests, and unit-cell enumeration. All coordinates are in tile
// units with x growing right and y growing down.
package geom

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Bounds is an axis-aligned bounding box in tile coordinates.
// Max values are exclusive for integer cell ranges but inclusive for the
// continuous polygon extent; the distinction only matters during
// rasterization, which floors/ceils explicitly.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MaxX float64 `json:"max_x"`
	MinY float64 `json:"min_y"`
	MaxY float64 `json:"max_y"`
}

// Width returns the horizontal extent of the bounds.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent of the bounds.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Translate returns the bounds shifted by (dx, dy).
func (b Bounds) Translate(dx, dy float64) Bounds {
	return Bounds{
		MinX: b.MinX + dx,
		MaxX: b.MaxX + dx,
		MinY: b.MinY + dy,
		MaxY: b.MaxY + dy,
	}
}

// Intersects reports whether two bounds overlap (touching edges do not count).
func (b Bounds) Intersects(o Bounds) bool {
	return b.MinX < o.MaxX && o.MinX < b.MaxX && b.MinY < o.MaxY && o.MinY < b.MaxY
}

// FromOrbBound converts an orb bounding box to Bounds.
func FromOrbBound(b orb.Bound) Bounds {
	return Bounds{MinX: b.Min.X(), MaxX: b.Max.X(), MinY: b.Min.Y(), MaxY: b.Max.Y()}
}

// NewPolygon builds a single-ring orb polygon from an open point list,
// closing the ring if necessary.
func NewPolygon(points []orb.Point) orb.Polygon {
	ring := make(orb.Ring, 0, len(points)+1)
	ring = append(ring, points...)
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return orb.Polygon{ring}
}

// Translate returns a copy of the polygon shifted by (dx, dy).
func Translate(p orb.Polygon, dx, dy float64) orb.Polygon {
	out := make(orb.Polygon, len(p))
	for i, ring := range p {
		r := make(orb.Ring, len(ring))
		for j, pt := range ring {
			r[j] = orb.Point{pt.X() + dx, pt.Y() + dy}
		}
		out[i] = r
	}
	return out
}

// Area returns the absolute planar area of the polygon.
func Area(p orb.Polygon) float64 {
	return math.Abs(planar.Area(p))
}

// Centroid returns the area-weighted centroid of the polygon.
func Centroid(p orb.Polygon) orb.Point {
	c, _ := planar.CentroidArea(p)
	return c
}

// Contains reports whether the point lies inside the polygon.
func Contains(p orb.Polygon, pt orb.Point) bool {
	return planar.PolygonContains(p, pt)
}

// Intersects reports whether two polygons intersect (share interior area or
// one contains the other). Touching at a single boundary point counts, which
// matches the permissive overlap semantics the separation engine relaxes.
func Intersects(a, b orb.Polygon) bool {
	if !FromOrbBound(a.Bound()).Intersects(FromOrbBound(b.Bound())) {
		return false
	}
	// Containment in either direction.
	if len(a) > 0 && len(a[0]) > 0 && planar.PolygonContains(b, a[0][0]) {
		return true
	}
	if len(b) > 0 && len(b[0]) > 0 && planar.PolygonContains(a, b[0][0]) {
		return true
	}
	// Any pair of boundary segments crossing.
	for _, ra := range a {
		for i := 0; i+1 < len(ra); i++ {
			for _, rb := range b {
				for j := 0; j+1 < len(rb); j++ {
					if segmentsIntersect(ra[i], ra[i+1], rb[j], rb[j+1]) {
						return true
					}
				}
			}
		}
	}
	return false
}

// segmentsIntersect reports whether segments p1-p2 and p3-p4 intersect,
// including collinear overlap.
func segmentsIntersect(p1, p2, p3, p4 orb.Point) bool {
	d1 := cross(p3, p4, p1)
	d2 := cross(p3, p4, p2)
	d3 := cross(p1, p2, p3)
	d4 := cross(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}
	return false
}

// cross returns the cross product of vectors (b-a) and (c-a).
func cross(a, b, c orb.Point) float64 {
	return (b.X()-a.X())*(c.Y()-a.Y()) - (b.Y()-a.Y())*(c.X()-a.X())
}

// onSegment reports whether point p lies on segment a-b, assuming the three
// points are collinear.
func onSegment(a, b, p orb.Point) bool {
	return math.Min(a.X(), b.X()) <= p.X() && p.X() <= math.Max(a.X(), b.X()) &&
		math.Min(a.Y(), b.Y()) <= p.Y() && p.Y() <= math.Max(a.Y(), b.Y())
}

// Cell is an integer tile coordinate.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CellsInside enumerates every unit cell whose center lies inside the
// polygon, scanning the polygon's bounding box row-major.
func CellsInside(p orb.Polygon) []Cell {
	b := FromOrbBound(p.Bound())
	minX := int(math.Floor(b.MinX))
	maxX := int(math.Ceil(b.MaxX))
	minY := int(math.Floor(b.MinY))
	maxY := int(math.Ceil(b.MaxY))

	var cells []Cell
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if planar.PolygonContains(p, orb.Point{float64(x) + 0.5, float64(y) + 0.5}) {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

// Perimeter filters cells down to those with at least one 4-neighbor outside
// the set. The input order is preserved.
func Perimeter(cells []Cell) []Cell {
	inside := make(map[Cell]bool, len(cells))
	for _, c := range cells {
		inside[c] = true
	}
	var edge []Cell
	for _, c := range cells {
		if !inside[Cell{c.X + 1, c.Y}] || !inside[Cell{c.X - 1, c.Y}] ||
			!inside[Cell{c.X, c.Y + 1}] || !inside[Cell{c.X, c.Y - 1}] {
			edge = append(edge, c)
		}
	}
	return edge
}
