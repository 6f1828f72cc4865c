package layout

import (
	"math"
	"math/rand"

	"github.com/forgelab/dungeonforge/pkg/layout/geom"
)

// Corridor styles.
const (
	CorridorLShaped  = "l_shaped"
	CorridorStraight = "straight"
)

// Corridor is one carved connection between two rooms: the cell band to
// rasterize plus its bounding box, used for hallway promotion.
type Corridor struct {
	From, To int
	Cells    []geom.Cell
	Bounds   geom.Bounds
}

// carveCorridors synthesizes a corridor for every graph edge. With the
// l_shaped style, centers that nearly align on one axis get a single
// horizontal or vertical band ("nearly" means within half the larger room
// extent on that axis); everything else gets a two-segment L. The straight
// style rasterizes the direct center-to-center line with a square brush.
func carveCorridors(rooms map[int]*Room, g *Graph, style string, width int) []*Corridor {
	var corridors []*Corridor
	for _, e := range g.Edges() {
		a, b := rooms[e.A], rooms[e.B]
		if a == nil || b == nil {
			continue
		}

		x1, y1 := int(a.Center().X()), int(a.Center().Y())
		x2, y2 := int(b.Center().X()), int(b.Center().Y())

		var cells []geom.Cell
		if style == CorridorStraight {
			cells = lineBand(x1, y1, x2, y2, width)
		} else {
			ba, bb := a.Bounds(), b.Bounds()
			switch {
			case math.Abs(float64(y1-y2)) <= math.Max(ba.Height(), bb.Height())/2:
				cells = horizontalBand(x1, x2, y1, width)
			case math.Abs(float64(x1-x2)) <= math.Max(ba.Width(), bb.Width())/2:
				cells = verticalBand(y1, y2, x1, width)
			default:
				cells = horizontalBand(x1, x2, y1, width)
				cells = append(cells, verticalBand(y1, y2, x2, width)...)
			}
		}

		corridors = append(corridors, &Corridor{
			From:   e.A,
			To:     e.B,
			Cells:  cells,
			Bounds: cellBounds(cells),
		})
	}
	return corridors
}

// horizontalBand fills x1..x2 at row y with a band of the given width.
func horizontalBand(x1, x2, y, width int) []geom.Cell {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	half := width / 2
	var cells []geom.Cell
	for x := x1; x <= x2; x++ {
		for dy := -half; dy < width-half; dy++ {
			cells = append(cells, geom.Cell{X: x, Y: y + dy})
		}
	}
	return cells
}

// verticalBand fills y1..y2 at column x with a band of the given width.
func verticalBand(y1, y2, x, width int) []geom.Cell {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	half := width / 2
	var cells []geom.Cell
	for y := y1; y <= y2; y++ {
		for dx := -half; dx < width-half; dx++ {
			cells = append(cells, geom.Cell{X: x + dx, Y: y})
		}
	}
	return cells
}

// lineBand rasterizes the segment (x1,y1)-(x2,y2) with Bresenham stepping
// and stamps a width x width square brush at every step.
func lineBand(x1, y1, x2, y2, width int) []geom.Cell {
	half := width / 2
	var cells []geom.Cell
	stamp := func(cx, cy int) {
		for dy := -half; dy < width-half; dy++ {
			for dx := -half; dx < width-half; dx++ {
				cells = append(cells, geom.Cell{X: cx + dx, Y: cy + dy})
			}
		}
	}

	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy

	x, y := x1, y1
	for {
		stamp(x, y)
		if x == x2 && y == y2 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
	return cells
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// cellBounds computes the bounding box of a cell list.
func cellBounds(cells []geom.Cell) geom.Bounds {
	if len(cells) == 0 {
		return geom.Bounds{}
	}
	b := geom.Bounds{
		MinX: float64(cells[0].X), MaxX: float64(cells[0].X + 1),
		MinY: float64(cells[0].Y), MaxY: float64(cells[0].Y + 1),
	}
	for _, c := range cells[1:] {
		b.MinX = math.Min(b.MinX, float64(c.X))
		b.MaxX = math.Max(b.MaxX, float64(c.X+1))
		b.MinY = math.Min(b.MinY, float64(c.Y))
		b.MaxY = math.Max(b.MaxY, float64(c.Y+1))
	}
	return b
}

// promoteHallways flags every non-main room whose bounding box intersects a
// corridor's buffered bounding box. Promoted rooms are rendered like main
// rooms but carry the corridor type and the generic corridor marker.
func promoteHallways(rooms []*Room, corridors []*Corridor, buffer float64) {
	for _, r := range rooms {
		if r.IsMain || r.IsHallway {
			continue
		}
		rb := r.Bounds()
		for _, c := range corridors {
			cb := geom.Bounds{
				MinX: c.Bounds.MinX - buffer, MaxX: c.Bounds.MaxX + buffer,
				MinY: c.Bounds.MinY - buffer, MaxY: c.Bounds.MaxY + buffer,
			}
			if rb.Intersects(cb) {
				r.IsHallway = true
				r.Type = RoomCorridor
				break
			}
		}
	}
}

// rasterize paints the final grid. The order is fixed and load bearing:
// interiors, then walls onto void only, then corridors onto void only, then
// doors unconditionally, then one marker tile per rendered room center.
// Re-running it over the same inputs yields an identical grid.
func rasterize(width, height int, rooms []*Room, corridors []*Corridor, rng *rand.Rand) Grid {
	grid := NewGrid(width, height)

	rendered := make([]*Room, 0, len(rooms))
	for _, r := range rooms {
		if r.IsMain || r.IsHallway {
			rendered = append(rendered, r)
		}
	}

	for _, r := range rendered {
		cells := r.Geometry.GridCells()
		for _, c := range cells {
			grid.Set(c.X, c.Y, TileFloor)
		}
	}
	for _, r := range rendered {
		paintWallRing(grid, r)
	}
	for _, c := range corridors {
		for _, cell := range c.Cells {
			grid.SetIfVoid(cell.X, cell.Y, TileCorridor)
		}
	}
	grid.paintDoors(rendered)

	for _, r := range rendered {
		center := r.CenterCell()
		if !grid.In(center.X, center.Y) {
			continue
		}
		switch {
		case r.IsHallway:
			grid.Set(center.X, center.Y, TileCorridor)
		case r.Type != RoomGeneric:
			grid.Set(center.X, center.Y, markerFor(r.Type))
		default:
			grid.Set(center.X, center.Y, mainMarkers[rng.Intn(len(mainMarkers))])
		}
	}
	return grid
}

// paintWallRing writes the 8-neighborhood wall ring around a room's interior
// onto void cells only.
func paintWallRing(grid Grid, r *Room) {
	cells := r.Geometry.GridCells()
	inside := make(map[geom.Cell]bool, len(cells))
	for _, c := range cells {
		inside[c] = true
	}
	for _, c := range cells {
		for _, d := range [8]geom.Cell{
			{X: 1}, {X: -1}, {Y: 1}, {Y: -1},
			{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1},
		} {
			n := geom.Cell{X: c.X + d.X, Y: c.Y + d.Y}
			if !inside[n] {
				grid.SetIfVoid(n.X, n.Y, TileWall)
			}
		}
	}
}
