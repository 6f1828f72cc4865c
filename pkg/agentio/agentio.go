// Package agentio handles the room sub-grid hand-off to the external
// room-authoring collaborator.
//
// For each room it extracts a rectangular window of the full grid around the
// room's bounds (including the wall ring), isolates the room's connected
// interior via flood fill, and reduces the tiles to a simplified alphabet the
// collaborator works in. The collaborator returns a grid of identical shape
// in which floor and door cells may be replaced by asset identifiers;
// Validate enforces that contract before the designed rooms are reassembled
// into a full dungeon grid.
package agentio

import (
	"github.com/forgelab/dungeonforge/pkg/errors"
	"github.com/forgelab/dungeonforge/pkg/layout"
)

// Agent alphabet symbols.
const (
	SymbolEmpty = "0"
	SymbolFloor = "1"
	SymbolWall  = "2"
	SymbolDoor  = "D"
)

// symbolFor reduces a grid tile to the agent alphabet. Corridors and room
// markers all read as floor; only walls and doors keep their identity.
func symbolFor(tile int) string {
	switch tile {
	case layout.TileVoid:
		return SymbolEmpty
	case layout.TileWall:
		return SymbolWall
	case layout.TileDoor:
		return SymbolDoor
	default:
		return SymbolFloor
	}
}

// Extract is one room's isolated sub-grid in the agent alphabet, plus the
// bookkeeping needed to validate the collaborator's response and put the
// designed room back into the full grid.
type Extract struct {
	RoomID int
	// OriginX, OriginY locate Island[0][0] in the full grid.
	OriginX, OriginY int
	Island           [][]string

	// editable marks cells the collaborator may replace (floor or door).
	editable [][]bool
}

// Width returns the island's column count.
func (e *Extract) Width() int {
	if len(e.Island) == 0 {
		return 0
	}
	return len(e.Island[0])
}

// Height returns the island's row count.
func (e *Extract) Height() int { return len(e.Island) }

// ExtractRooms extracts every room of a layout result, keyed by room id.
func ExtractRooms(res *layout.Result) map[int]*Extract {
	out := make(map[int]*Extract, len(res.Rooms))
	for _, r := range res.Rooms {
		out[r.ID] = ExtractRoom(res.Grid, r)
	}
	return out
}

// ExtractRoom cuts the window around one room's bounds (one cell beyond, to
// include the wall ring), isolates the room's island, and reduces it to the
// agent alphabet.
func ExtractRoom(grid layout.Grid, room layout.RoomResult) *Extract {
	minX := int(room.Bounds.MinX) - 1
	minY := int(room.Bounds.MinY) - 1
	maxX := int(room.Bounds.MaxX) + 1
	maxY := int(room.Bounds.MaxY) + 1
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > grid.Width() {
		maxX = grid.Width()
	}
	if maxY > grid.Height() {
		maxY = grid.Height()
	}

	w, h := maxX-minX, maxY-minY
	window := make([][]int, h)
	for y := 0; y < h; y++ {
		window[y] = make([]int, w)
		for x := 0; x < w; x++ {
			window[y][x] = grid.At(minX+x, minY+y)
		}
	}

	island := extractIsland(window)

	e := &Extract{
		RoomID:   room.ID,
		OriginX:  minX,
		OriginY:  minY,
		Island:   make([][]string, h),
		editable: make([][]bool, h),
	}
	for y := 0; y < h; y++ {
		e.Island[y] = make([]string, w)
		e.editable[y] = make([]bool, w)
		for x := 0; x < w; x++ {
			sym := symbolFor(island[y][x])
			e.Island[y][x] = sym
			e.editable[y][x] = sym == SymbolFloor || sym == SymbolDoor
		}
	}
	return e
}

// extractIsland zeroes everything in the window except the room's own
// connected interior and the walls/doors bordering it. Interior cells are
// those not reachable by a flood fill entering from the window perimeter
// through non-wall/door tiles; unrelated geometry caught in the window
// rectangle is discarded.
func extractIsland(window [][]int) [][]int {
	h := len(window)
	if h == 0 {
		return nil
	}
	w := len(window[0])

	wallOrDoor := func(y, x int) bool {
		return window[y][x] == layout.TileWall || window[y][x] == layout.TileDoor
	}

	// Flood fill "outside" from the perimeter, blocked by walls and doors.
	outside := make([][]bool, h)
	for y := range outside {
		outside[y] = make([]bool, w)
	}
	var queue [][2]int
	enqueue := func(y, x int) {
		if y >= 0 && y < h && x >= 0 && x < w && !wallOrDoor(y, x) && !outside[y][x] {
			outside[y][x] = true
			queue = append(queue, [2]int{y, x})
		}
	}
	for x := 0; x < w; x++ {
		enqueue(0, x)
		enqueue(h-1, x)
	}
	for y := 0; y < h; y++ {
		enqueue(y, 0)
		enqueue(y, w-1)
	}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		enqueue(c[0]+1, c[1])
		enqueue(c[0]-1, c[1])
		enqueue(c[0], c[1]+1)
		enqueue(c[0], c[1]-1)
	}

	interior := make([][]bool, h)
	for y := range interior {
		interior[y] = make([]bool, w)
		for x := 0; x < w; x++ {
			interior[y][x] = window[y][x] != layout.TileVoid && !wallOrDoor(y, x) && !outside[y][x]
		}
	}

	keep := make([][]bool, h)
	for y := range keep {
		keep[y] = append([]bool(nil), interior[y]...)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !interior[y][x] {
				continue
			}
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					ny, nx := y+dy, x+dx
					if ny >= 0 && ny < h && nx >= 0 && nx < w && wallOrDoor(ny, nx) {
						keep[ny][nx] = true
					}
				}
			}
		}
	}

	island := make([][]int, h)
	for y := range island {
		island[y] = make([]int, w)
		for x := 0; x < w; x++ {
			if keep[y][x] {
				island[y][x] = window[y][x]
			}
		}
	}
	return island
}

// Validate checks a collaborator response against the extract's contract:
// the design must have the island's exact shape, and only cells that were
// floor or door may differ from the island. Violations are fatal and name
// the first offending coordinate (island-local).
func (e *Extract) Validate(design [][]string) error {
	if len(design) != e.Height() {
		return errors.New(errors.ErrCodeAgentShape,
			"room %d design has %d rows, expected %d", e.RoomID, len(design), e.Height())
	}
	for y, row := range design {
		if len(row) != e.Width() {
			return errors.New(errors.ErrCodeAgentShape,
				"room %d design row %d has %d cells, expected %d", e.RoomID, y, len(row), e.Width())
		}
		for x, val := range row {
			if val != e.Island[y][x] && !e.editable[y][x] {
				return errors.New(errors.ErrCodeAgentContent,
					"room %d design modified a %q cell at (%d, %d)", e.RoomID, e.Island[y][x], x, y)
			}
		}
	}
	return nil
}

// Assemble validates every design and writes them back into a full-size
// string grid at each extract's origin, skipping empty cells. The result is
// cropped to the bounding box of its non-empty content; a dungeon with no
// content at all yields nil.
func Assemble(width, height int, extracts map[int]*Extract, designs map[int][][]string) ([][]string, error) {
	grid := make([][]string, height)
	for y := range grid {
		grid[y] = make([]string, width)
		for x := range grid[y] {
			grid[y][x] = SymbolEmpty
		}
	}

	for id, design := range designs {
		e, ok := extracts[id]
		if !ok {
			return nil, errors.New(errors.ErrCodeRoomNotFound, "no extracted room with id %d", id)
		}
		if err := e.Validate(design); err != nil {
			return nil, err
		}
		for dy, row := range design {
			for dx, val := range row {
				if val == SymbolEmpty {
					continue
				}
				y, x := e.OriginY+dy, e.OriginX+dx
				if y >= 0 && y < height && x >= 0 && x < width {
					grid[y][x] = val
				}
			}
		}
	}

	return cropToContent(grid), nil
}

// cropToContent trims the grid to the bounding box of its non-empty cells.
func cropToContent(grid [][]string) [][]string {
	minY, maxY, minX, maxX := -1, -1, -1, -1
	for y, row := range grid {
		for x, val := range row {
			if val == SymbolEmpty {
				continue
			}
			if minY == -1 || y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
			if minX == -1 || x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
		}
	}
	if minY == -1 {
		return nil
	}

	out := make([][]string, 0, maxY-minY+1)
	for y := minY; y <= maxY; y++ {
		out = append(out, grid[y][minX:maxX+1])
	}
	return out
}
