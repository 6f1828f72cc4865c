package layout

import (
	"math"
	"math/rand"
	"sort"

	"github.com/paulmach/orb"

	"github.com/forgelab/dungeonforge/pkg/layout/geom"
)

// ShapeKind identifies a room shape variant. The set is closed: every
// geometry is constructed through one of the NewXxx constructors below and
// carries only the representation its variant needs.
type ShapeKind string

// Supported room shapes.
const (
	ShapeRectangle ShapeKind = "rectangle"
	ShapeCircle    ShapeKind = "circle"
	ShapeLShape    ShapeKind = "l_shape"
	ShapeIrregular ShapeKind = "irregular"
	ShapePolyomino ShapeKind = "polyomino"
)

// DefaultShapeWeights is the shape distribution used when a caller does not
// supply one.
var DefaultShapeWeights = map[ShapeKind]float64{
	ShapeRectangle: 0.4,
	ShapeCircle:    0.2,
	ShapeLShape:    0.2,
	ShapeIrregular: 0.1,
	ShapePolyomino: 0.1,
}

// Geometry is the shape record owned by a single room. The polygon, bounds
// and center always describe the same footprint; Translate rewrites all of
// them together so the separation engine never works with stale aliases.
//
// Invariants: Area > 0 and Bounds encloses Polygon exactly.
type Geometry struct {
	Kind    ShapeKind
	Center  orb.Point
	Bounds  geom.Bounds
	Polygon orb.Polygon
	Area    float64

	// polyCells holds cell offsets relative to the bounds origin for
	// polyomino geometries; nil for every other shape.
	polyCells []Offset
}

// NewRectangle builds a width x height rectangle with its top-left corner at
// (x, y).
func NewRectangle(x, y float64, width, height int) *Geometry {
	w, h := float64(width), float64(height)
	poly := geom.NewPolygon([]orb.Point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}})
	return &Geometry{
		Kind:    ShapeRectangle,
		Center:  orb.Point{x + w/2, y + h/2},
		Bounds:  geom.Bounds{MinX: x, MaxX: x + w, MinY: y, MaxY: y + h},
		Polygon: poly,
		Area:    w * h,
	}
}

// NewCircle builds a circle of the given radius approximated by a 16-gon.
// The recorded area is the exact circle area, matching the target-area
// contract rather than the polygon approximation.
func NewCircle(cx, cy, radius float64) *Geometry {
	const segments = 16
	pts := make([]orb.Point, segments)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		pts[i] = orb.Point{cx + radius*math.Cos(a), cy + radius*math.Sin(a)}
	}
	return &Geometry{
		Kind:    ShapeCircle,
		Center:  orb.Point{cx, cy},
		Bounds:  geom.Bounds{MinX: cx - radius, MaxX: cx + radius, MinY: cy - radius, MaxY: cy + radius},
		Polygon: geom.NewPolygon(pts),
		Area:    math.Pi * radius * radius,
	}
}

// NotchCorner names the corner of an L-shape that the notch is cut from.
type NotchCorner string

// L-shape notch corners.
const (
	NotchBottomRight NotchCorner = "bottom_right"
	NotchTopRight    NotchCorner = "top_right"
	NotchTopLeft     NotchCorner = "top_left"
	NotchBottomLeft  NotchCorner = "bottom_left"
)

var notchCorners = [4]NotchCorner{NotchBottomRight, NotchTopRight, NotchTopLeft, NotchBottomLeft}

// NewLShape builds a width x height rectangle at (x, y) with a
// notchW x notchH rectangle removed from the given corner.
func NewLShape(x, y float64, width, height, notchW, notchH int, corner NotchCorner) *Geometry {
	w, h := float64(width), float64(height)
	nw, nh := float64(notchW), float64(notchH)

	var pts []orb.Point
	switch corner {
	case NotchTopRight:
		pts = []orb.Point{
			{x, y}, {x + w - nw, y}, {x + w - nw, y + nh},
			{x + w, y + nh}, {x + w, y + h}, {x, y + h},
		}
	case NotchTopLeft:
		pts = []orb.Point{
			{x + nw, y}, {x + w, y}, {x + w, y + h},
			{x, y + h}, {x, y + nh}, {x + nw, y + nh},
		}
	case NotchBottomLeft:
		pts = []orb.Point{
			{x, y}, {x + w, y}, {x + w, y + h},
			{x + nw, y + h}, {x + nw, y + h - nh}, {x, y + h - nh},
		}
	default: // NotchBottomRight
		pts = []orb.Point{
			{x, y}, {x + w, y}, {x + w, y + h - nh},
			{x + w - nw, y + h - nh}, {x + w - nw, y + h}, {x, y + h},
		}
	}

	poly := geom.NewPolygon(pts)
	return &Geometry{
		Kind:    ShapeLShape,
		Center:  geom.Centroid(poly),
		Bounds:  geom.FromOrbBound(poly.Bound()),
		Polygon: poly,
		Area:    geom.Area(poly),
	}
}

// NewIrregular builds a simple polygon from the given vertex list. Callers
// are responsible for supplying vertices in angular order; the random shape
// generator guarantees this by construction.
func NewIrregular(points []orb.Point) *Geometry {
	poly := geom.NewPolygon(points)
	return &Geometry{
		Kind:    ShapeIrregular,
		Center:  geom.Centroid(poly),
		Bounds:  geom.FromOrbBound(poly.Bound()),
		Polygon: poly,
		Area:    geom.Area(poly),
	}
}

// NewPolyomino builds a geometry from unit-cell offsets anchored at (x, y).
// The polygon is the rectilinear outline of the cell union's bounding box
// footprint per cell; area is exact (one per cell).
func NewPolyomino(x, y int, offsets []Offset) *Geometry {
	offsets = normalizePolyomino(offsets)
	maxX, maxY := 0, 0
	for _, o := range offsets {
		if o.DX > maxX {
			maxX = o.DX
		}
		if o.DY > maxY {
			maxY = o.DY
		}
	}

	bounds := geom.Bounds{
		MinX: float64(x),
		MaxX: float64(x + maxX + 1),
		MinY: float64(y),
		MaxY: float64(y + maxY + 1),
	}

	// The polygon representation is only used for overlap testing, where a
	// per-cell union would be exact but expensive. A cell-accurate outline is
	// overkill for tens of rooms, so each cell contributes a unit square and
	// the overall polygon is their multi-ring collection.
	poly := make(orb.Polygon, 0, len(offsets))
	for _, o := range offsets {
		cx, cy := float64(x+o.DX), float64(y+o.DY)
		square := geom.NewPolygon([]orb.Point{{cx, cy}, {cx + 1, cy}, {cx + 1, cy + 1}, {cx, cy + 1}})
		poly = append(poly, square[0])
	}

	// Centroid of the cell set.
	var sx, sy float64
	for _, o := range offsets {
		sx += float64(x+o.DX) + 0.5
		sy += float64(y+o.DY) + 0.5
	}
	n := float64(len(offsets))

	return &Geometry{
		Kind:      ShapePolyomino,
		Center:    orb.Point{sx / n, sy / n},
		Bounds:    bounds,
		Polygon:   poly,
		Area:      n,
		polyCells: offsets,
	}
}

// Translate shifts the whole geometry by (dx, dy), rewriting polygon, bounds
// and center together. Polyomino cell offsets are origin-relative and need no
// update; GridCells derives absolute cells from the current bounds.
func (g *Geometry) Translate(dx, dy float64) {
	g.Polygon = geom.Translate(g.Polygon, dx, dy)
	g.Bounds = g.Bounds.Translate(dx, dy)
	g.Center = orb.Point{g.Center.X() + dx, g.Center.Y() + dy}
}

// Overlaps reports whether two geometries intersect.
func (g *Geometry) Overlaps(other *Geometry) bool {
	if g.Kind == ShapePolyomino && other.Kind == ShapePolyomino {
		// Exact cell-set comparison is cheaper and avoids multi-ring polygon
		// intersection corner cases.
		cells := make(map[geom.Cell]bool)
		for _, c := range g.GridCells() {
			cells[c] = true
		}
		for _, c := range other.GridCells() {
			if cells[c] {
				return true
			}
		}
		return false
	}
	return geom.Intersects(g.Polygon, other.Polygon)
}

// GridCells enumerates the interior unit cells of the geometry: the exact
// cell set for polyominoes, cell-center point-in-polygon sampling for
// everything else.
func (g *Geometry) GridCells() []geom.Cell {
	if g.Kind == ShapePolyomino {
		ax := int(math.Round(g.Bounds.MinX))
		ay := int(math.Round(g.Bounds.MinY))
		return offsetsToCells(ax, ay, g.polyCells)
	}
	return geom.CellsInside(g.Polygon)
}

// PerimeterCells enumerates interior cells that border a non-interior cell.
func (g *Geometry) PerimeterCells() []geom.Cell {
	return geom.Perimeter(g.GridCells())
}

// GenerateShape produces a random geometry near (x, y) whose realized area
// approximates targetArea. The shape variant is drawn from weights, falling
// back to DefaultShapeWeights when nil. Realized area is exact for
// rectangles and polyominoes and approximate for the organic shapes.
func GenerateShape(rng *rand.Rand, x, y, targetArea float64, weights map[ShapeKind]float64) *Geometry {
	if weights == nil {
		weights = DefaultShapeWeights
	}

	// Deterministic iteration order over the preference map.
	kinds := make([]ShapeKind, 0, len(weights))
	for k := range weights {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	choices := make([]Weighted[ShapeKind], len(kinds))
	for i, k := range kinds {
		choices[i] = Weighted[ShapeKind]{Item: k, Weight: weights[k]}
	}

	switch Choose(rng, choices) {
	case ShapeCircle:
		radius := math.Sqrt(targetArea / math.Pi)
		return NewCircle(x+radius, y+radius, radius)

	case ShapeLShape:
		base := int(math.Sqrt(targetArea * 1.2))
		if base < 3 {
			base = 3
		}
		notch := base / 3
		if notch < 1 {
			notch = 1
		}
		corner := notchCorners[rng.Intn(len(notchCorners))]
		return NewLShape(x, y, base, base, notch, notch, corner)

	case ShapeIrregular:
		numPoints := 5 + rng.Intn(3)
		angles := make([]float64, numPoints)
		for i := range angles {
			angles[i] = rng.Float64() * 2 * math.Pi
		}
		sort.Float64s(angles)

		radiusBase := math.Sqrt(targetArea / math.Pi)
		pts := make([]orb.Point, numPoints)
		for i, a := range angles {
			r := radiusBase * (0.6 + rng.Float64()*0.8)
			pts[i] = orb.Point{x + r*math.Cos(a), y + r*math.Sin(a)}
		}
		return NewIrregular(pts)

	case ShapePolyomino:
		size := int(targetArea)
		if size < 1 {
			size = 1
		}
		var offsets []Offset
		switch {
		case size == 4:
			offsets = randomCatalogued(rng, tetrominoes)
		case size == 5:
			offsets = randomCatalogued(rng, pentominoes)
		default:
			offsets = growPolyomino(rng, size, 100)
		}
		return NewPolyomino(int(x), int(y), offsets)

	default: // ShapeRectangle
		aspect := 0.7 + rng.Float64()*0.8
		width := int(math.Sqrt(targetArea * aspect))
		if width < 1 {
			width = 1
		}
		height := int(targetArea / float64(width))
		if height < 1 {
			height = 1
		}
		return NewRectangle(x, y, width, height)
	}
}
