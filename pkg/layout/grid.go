package layout

// Tile codes shared by every generation path. Downstream consumers key off
// these values, so they are part of the output contract and never renumbered.
const (
	TileVoid     = 0
	TileFloor    = 1
	TileWall     = 2
	TileCorridor = 3
	TileDoor     = 4
	TileTreasure = 5
	TileEntrance = 6
	TileBoss     = 7
	TileMarker8  = 8
	TileTrap     = 9
	TilePuzzle   = 10
	TileChamber  = 11
)

// mainMarkers is the pool of marker tiles stamped on main-room centers by
// generation paths that do not assign explicit room types.
var mainMarkers = []int{TileEntrance, TileBoss, TileMarker8, TileTrap, TilePuzzle, TileChamber}

// Grid is a row-major tile grid indexed as Grid[y][x]. It is mutable while a
// generator rasterizes into it and treated as immutable once handed out in a
// Result.
type Grid [][]int

// NewGrid allocates a width x height grid of void tiles.
func NewGrid(width, height int) Grid {
	g := make(Grid, height)
	for y := range g {
		g[y] = make([]int, width)
	}
	return g
}

// Width returns the horizontal tile count.
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Height returns the vertical tile count.
func (g Grid) Height() int { return len(g) }

// In reports whether (x, y) is inside the grid.
func (g Grid) In(x, y int) bool {
	return y >= 0 && y < len(g) && x >= 0 && x < len(g[y])
}

// Set writes a tile, ignoring out-of-bounds coordinates.
func (g Grid) Set(x, y, tile int) {
	if g.In(x, y) {
		g[y][x] = tile
	}
}

// SetIfVoid writes a tile only when the cell is currently void. Corridor and
// wall painting both go through here so that rasterization order alone
// determines precedence.
func (g Grid) SetIfVoid(x, y, tile int) {
	if g.In(x, y) && g[y][x] == TileVoid {
		g[y][x] = tile
	}
}

// At returns the tile at (x, y), or void for out-of-bounds coordinates.
func (g Grid) At(x, y int) int {
	if !g.In(x, y) {
		return TileVoid
	}
	return g[y][x]
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for y, row := range g {
		out[y] = append([]int(nil), row...)
	}
	return out
}

// paintDoors writes door tiles unconditionally; doors are painted last and
// always win over the wall tile at the same coordinate.
func (g Grid) paintDoors(rooms []*Room) {
	for _, r := range rooms {
		for _, d := range r.Doors {
			g.Set(d.X, d.Y, TileDoor)
		}
	}
}
