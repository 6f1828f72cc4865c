package layout

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/forgelab/dungeonforge/pkg/layout/geom"
)

// Placement strategies for the adjacency method.
const (
	PlacementGridFill      = "grid_fill"
	PlacementOrganicGrowth = "organic_growth"
	PlacementCluster       = "cluster"
)

// adjacencyTolerance is the maximum bounding-box gap at which two rooms
// still count as adjacent. It admits both exact touching and a one-cell
// wall gap between interiors.
const adjacencyTolerance = 1.5

// AdjacencyParams configures the touching-rooms generation method.
type AdjacencyParams struct {
	NumRooms     int     `json:"num_rooms"`
	RoomSizeMean float64 `json:"room_size_mean"`
	RoomSizeStd  float64 `json:"room_size_std"`
	RoomSizeMin  float64 `json:"room_size_min"`
	RoomSizeMax  float64 `json:"room_size_max"`

	ShapeWeights map[ShapeKind]float64 `json:"shape_weights,omitempty"`

	PlacementStrategy    string  `json:"placement_strategy"`
	AdjacencyProbability float64 `json:"adjacency_probability"`

	MainRoomThreshold float64 `json:"main_room_threshold"`
	MinMainRooms      int     `json:"min_main_rooms"`

	DoorProbability float64 `json:"door_probability"`
	MinDoorLength   int     `json:"min_door_length"`
	MaxDoorLength   int     `json:"max_door_length"`
}

// DefaultAdjacencyParams returns the defaults for the adjacency method.
func DefaultAdjacencyParams() AdjacencyParams {
	return AdjacencyParams{
		NumRooms:             20,
		RoomSizeMean:         6,
		RoomSizeStd:          2,
		RoomSizeMin:          3,
		RoomSizeMax:          12,
		ShapeWeights:         DefaultShapeWeights,
		PlacementStrategy:    PlacementGridFill,
		AdjacencyProbability: 0.7,
		MainRoomThreshold:    1.25,
		MinMainRooms:         3,
		DoorProbability:      0.8,
		MinDoorLength:        1,
		MaxDoorLength:        3,
	}
}

// GenerateAdjacency builds a layout of touching rooms connected by doors on
// their shared walls rather than by carved corridors. Every placed room is
// rendered; the graph edges are the discovered adjacencies.
func GenerateAdjacency(rng *rand.Rand, width, height int, p AdjacencyParams, meta *Metadata) (*Result, error) {
	var rooms []*Room
	switch p.PlacementStrategy {
	case PlacementOrganicGrowth:
		rooms = placeOrganicGrowth(rng, width, height, p, meta)
	case PlacementCluster:
		rooms = placeClusters(rng, width, height, p, meta)
	default:
		rooms = placeGridFill(rng, width, height, p, meta)
	}

	graph, walls := buildAdjacencyGraph(rooms)
	selectAdjacentMainRooms(rooms, graph, p)
	placeSharedWallDoors(rng, rooms, graph, walls, p)
	grid := rasterizeAdjacent(rng, width, height, rooms)

	return &Result{
		Grid:       grid,
		Rooms:      roomResults(rooms),
		Graph:      graph.Snapshot(),
		Parameters: p,
		Metadata:   *meta,
	}, nil
}

// targetArea samples a room area around mean^2 clamped to the configured
// square bounds.
func targetArea(rng *rand.Rand, p AdjacencyParams) float64 {
	mean := p.RoomSizeMean * p.RoomSizeMean
	return normClamped(rng, mean, mean*0.3,
		p.RoomSizeMin*p.RoomSizeMin, p.RoomSizeMax*p.RoomSizeMax)
}

// placeGridFill places the first room at the grid center and each further
// room next to an already-placed one, retrying up to a fixed attempt budget
// and skipping the room (with a warning) when no spot is found.
func placeGridFill(rng *rand.Rand, width, height int, p AdjacencyParams, meta *Metadata) []*Room {
	const maxAttempts = 100

	var rooms []*Room
	occupied := map[geom.Cell]bool{}

	for id := 0; id < p.NumRooms; id++ {
		placed := false
		for attempt := 0; attempt < maxAttempts && !placed; attempt++ {
			var x, y float64
			if id == 0 {
				x, y = float64(width/2), float64(height/2)
			} else {
				x, y = findAdjacentPosition(rng, rooms, width, height, p)
			}

			g := GenerateShape(rng, x, y, targetArea(rng, p), p.ShapeWeights)
			constrainToGrid(g, width, height)

			if validPlacement(g, occupied, width, height) {
				r := NewRoom(id, g)
				rooms = append(rooms, r)
				markOccupied(g, occupied)
				placed = true
			}
		}
		if !placed {
			meta.Warnings = append(meta.Warnings,
				fmt.Sprintf("could not place room %d after %d attempts", id, maxAttempts))
		}
	}
	return rooms
}

// findAdjacentPosition proposes an anchor next to an existing room. With
// probability AdjacencyProbability it snaps directly against a room edge;
// otherwise it samples the loose neighborhood around a room, falling back to
// a random in-bounds anchor.
func findAdjacentPosition(rng *rand.Rand, rooms []*Room, width, height int, p AdjacencyParams) (float64, float64) {
	if len(rooms) == 0 {
		return float64(width / 2), float64(height / 2)
	}
	mean := int(p.RoomSizeMean)
	max := int(p.RoomSizeMax)

	if rng.Float64() < p.AdjacencyProbability {
		var candidates [][2]int
		for _, r := range rooms {
			b := r.Bounds()
			for _, pos := range [4][2]int{
				{int(b.MaxX) + 1, int(b.MinY)},
				{int(b.MinX) - mean, int(b.MinY)},
				{int(b.MinX), int(b.MaxY) + 1},
				{int(b.MinX), int(b.MinY) - mean},
			} {
				if pos[0] >= 2 && pos[0] < width-max && pos[1] >= 2 && pos[1] < height-max {
					candidates = append(candidates, pos)
				}
			}
		}
		if len(candidates) > 0 {
			c := candidates[rng.Intn(len(candidates))]
			return float64(c[0]), float64(c[1])
		}
	}

	// Loose fallback: anywhere within three cells of a random room.
	r := rooms[rng.Intn(len(rooms))]
	b := r.Bounds()
	x := int(b.MinX) - 3 + rng.Intn(int(b.Width())+7)
	y := int(b.MinY) - 3 + rng.Intn(int(b.Height())+7)
	if x < 2 || x >= width-2 || y < 2 || y >= height-2 {
		x = 2 + rng.Intn(width-4)
		y = 2 + rng.Intn(height-4)
	}
	return float64(x), float64(y)
}

// placeOrganicGrowth grows the layout outward from a seed room at the grid
// center, attaching each new room to a randomly chosen parent.
func placeOrganicGrowth(rng *rand.Rand, width, height int, p AdjacencyParams, meta *Metadata) []*Room {
	seed := GenerateShape(rng, float64(width/2), float64(height/2),
		p.RoomSizeMean*p.RoomSizeMean, p.ShapeWeights)
	constrainToGrid(seed, width, height)

	rooms := []*Room{NewRoom(0, seed)}
	occupied := map[geom.Cell]bool{}
	markOccupied(seed, occupied)

	for id := 1; id < p.NumRooms; id++ {
		parent := rooms[rng.Intn(len(rooms))]
		b := parent.Bounds()
		mean := p.RoomSizeMean

		positions := [4][2]float64{
			{b.MaxX, b.MinY},
			{b.MinX - mean, b.MinY},
			{b.MinX, b.MaxY},
			{b.MinX, b.MinY - mean},
		}
		rng.Shuffle(len(positions), func(i, j int) {
			positions[i], positions[j] = positions[j], positions[i]
		})

		placed := false
		for _, pos := range positions {
			area := normClamped(rng, mean*mean, mean*mean*0.2,
				p.RoomSizeMin*p.RoomSizeMin, p.RoomSizeMax*p.RoomSizeMax)
			g := GenerateShape(rng, pos[0], pos[1], area, p.ShapeWeights)
			constrainToGrid(g, width, height)
			if validPlacement(g, occupied, width, height) {
				r := NewRoom(id, g)
				rooms = append(rooms, r)
				markOccupied(g, occupied)
				placed = true
				break
			}
		}
		if !placed {
			meta.Warnings = append(meta.Warnings,
				fmt.Sprintf("could not grow room %d from any parent edge", id))
		}
	}
	return rooms
}

// placeClusters scatters a handful of cluster centers and fills rooms around
// each one.
func placeClusters(rng *rand.Rand, width, height int, p AdjacencyParams, meta *Metadata) []*Room {
	numClusters := p.NumRooms / 8
	if numClusters < 2 {
		numClusters = 2
	}
	perCluster := p.NumRooms / numClusters
	maxSize := int(p.RoomSizeMax)
	mean := int(p.RoomSizeMean)

	var rooms []*Room
	occupied := map[geom.Cell]bool{}
	id := 0

	for cluster := 0; cluster < numClusters; cluster++ {
		cx := maxSize + rng.Intn(width-2*maxSize)
		cy := maxSize + rng.Intn(height-2*maxSize)

		for n := 0; n < perCluster && id < p.NumRooms; n++ {
			x := cx - mean + rng.Intn(2*mean+1)
			y := cy - mean + rng.Intn(2*mean+1)

			area := normClamped(rng, p.RoomSizeMean*p.RoomSizeMean, p.RoomSizeMean*p.RoomSizeMean*0.2,
				p.RoomSizeMin*p.RoomSizeMin, p.RoomSizeMax*p.RoomSizeMax)
			g := GenerateShape(rng, float64(x), float64(y), area, p.ShapeWeights)
			constrainToGrid(g, width, height)

			if validPlacement(g, occupied, width, height) {
				rooms = append(rooms, NewRoom(id, g))
				markOccupied(g, occupied)
				id++
			} else {
				meta.Warnings = append(meta.Warnings,
					fmt.Sprintf("skipped a cluster %d room that did not fit", cluster))
			}
		}
	}
	return rooms
}

// constrainToGrid translates a geometry so its bounds sit inside the one-cell
// border of the grid.
func constrainToGrid(g *Geometry, width, height int) {
	b := g.Bounds
	var dx, dy float64
	if b.MinX < 1 {
		dx = 1 - b.MinX
	} else if b.MaxX >= float64(width-1) {
		dx = float64(width-2) - b.MaxX
	}
	if b.MinY < 1 {
		dy = 1 - b.MinY
	} else if b.MaxY >= float64(height-1) {
		dy = float64(height-2) - b.MaxY
	}
	if dx != 0 || dy != 0 {
		g.Translate(dx, dy)
	}
}

// validPlacement checks bounds and interior-cell collisions against already
// placed rooms.
func validPlacement(g *Geometry, occupied map[geom.Cell]bool, width, height int) bool {
	b := g.Bounds
	if b.MinX < 1 || b.MaxX >= float64(width-1) || b.MinY < 1 || b.MaxY >= float64(height-1) {
		return false
	}
	for _, c := range g.GridCells() {
		if occupied[c] {
			return false
		}
	}
	return true
}

func markOccupied(g *Geometry, occupied map[geom.Cell]bool) {
	for _, c := range g.GridCells() {
		occupied[c] = true
	}
}

// adjacent reports whether two rooms' bounding boxes touch within tolerance
// on one axis while their projections overlap on the other.
func adjacent(a, b *Room) bool {
	b1, b2 := a.Bounds(), b.Bounds()

	touchX := math.Abs(b1.MaxX-b2.MinX) <= adjacencyTolerance ||
		math.Abs(b2.MaxX-b1.MinX) <= adjacencyTolerance
	overlapY := !(b1.MaxY <= b2.MinY || b2.MaxY <= b1.MinY)
	if touchX && overlapY {
		return true
	}

	touchY := math.Abs(b1.MaxY-b2.MinY) <= adjacencyTolerance ||
		math.Abs(b2.MaxY-b1.MinY) <= adjacencyTolerance
	overlapX := !(b1.MaxX <= b2.MinX || b2.MaxX <= b1.MinX)
	return touchY && overlapX
}

// sharedWall computes the wall-cell run between two adjacent rooms: the
// single row or column separating (or joining) their bounding boxes, trimmed
// to the overlap of their projections. Returns nil when the overlap is empty.
func sharedWall(a, b *Room) []geom.Cell {
	b1, b2 := a.Bounds(), b.Bounds()

	// Horizontal neighbors: wall is a vertical run at the left room's MaxX.
	if math.Abs(b1.MaxX-b2.MinX) <= adjacencyTolerance {
		return verticalWall(int(b1.MaxX), b1, b2)
	}
	if math.Abs(b2.MaxX-b1.MinX) <= adjacencyTolerance {
		return verticalWall(int(b2.MaxX), b1, b2)
	}

	// Vertical neighbors: wall is a horizontal run at the upper room's MaxY.
	if math.Abs(b1.MaxY-b2.MinY) <= adjacencyTolerance {
		return horizontalWall(int(b1.MaxY), b1, b2)
	}
	if math.Abs(b2.MaxY-b1.MinY) <= adjacencyTolerance {
		return horizontalWall(int(b2.MaxY), b1, b2)
	}
	return nil
}

func verticalWall(x int, b1, b2 geom.Bounds) []geom.Cell {
	start := int(math.Max(b1.MinY, b2.MinY))
	end := int(math.Min(b1.MaxY, b2.MaxY))
	var cells []geom.Cell
	for y := start; y < end; y++ {
		cells = append(cells, geom.Cell{X: x, Y: y})
	}
	return cells
}

func horizontalWall(y int, b1, b2 geom.Bounds) []geom.Cell {
	start := int(math.Max(b1.MinX, b2.MinX))
	end := int(math.Min(b1.MaxX, b2.MaxX))
	var cells []geom.Cell
	for x := start; x < end; x++ {
		cells = append(cells, geom.Cell{X: x, Y: y})
	}
	return cells
}

// buildAdjacencyGraph discovers adjacencies pairwise over all rooms. An edge
// is recorded only when the pair has a non-empty shared wall, so every edge
// in the output graph is a candidate for a door.
func buildAdjacencyGraph(rooms []*Room) (*Graph, map[[2]int][]geom.Cell) {
	g := NewGraph()
	walls := map[[2]int][]geom.Cell{}
	for _, r := range rooms {
		g.AddNode(r.ID)
	}
	for i := 0; i < len(rooms); i++ {
		for j := i + 1; j < len(rooms); j++ {
			if !adjacent(rooms[i], rooms[j]) {
				continue
			}
			wall := sharedWall(rooms[i], rooms[j])
			if len(wall) == 0 {
				continue
			}
			e := Edge{A: rooms[i].ID, B: rooms[j].ID}.normalized()
			g.AddEdge(e)
			walls[[2]int{e.A, e.B}] = wall
		}
	}
	return g, walls
}

// selectAdjacentMainRooms flags rooms over the area threshold as main, then
// tops up to the configured minimum from the remainder ranked by area
// weighted with adjacency degree.
func selectAdjacentMainRooms(rooms []*Room, g *Graph, p AdjacencyParams) {
	threshold := p.RoomSizeMean * p.MainRoomThreshold
	thresholdArea := threshold * threshold

	count := 0
	for _, r := range rooms {
		if r.Area() >= thresholdArea {
			r.IsMain = true
			count++
		}
	}
	if count >= p.MinMainRooms {
		return
	}

	var rest []*Room
	for _, r := range rooms {
		if !r.IsMain {
			rest = append(rest, r)
		}
	}
	sort.Slice(rest, func(i, j int) bool {
		si := rest[i].Area() * (1 + 0.5*float64(g.Degree(rest[i].ID)))
		sj := rest[j].Area() * (1 + 0.5*float64(g.Degree(rest[j].ID)))
		if si != sj {
			return si > sj
		}
		return rest[i].ID < rest[j].ID
	})
	for i := 0; i < len(rest) && count < p.MinMainRooms; i++ {
		rest[i].IsMain = true
		count++
	}
}

// placeSharedWallDoors carves a door window out of each adjacent pair's
// shared wall with the configured probability. The window length is
// max(MinDoorLength, wall/3) capped at MaxDoorLength and centered on the
// wall midpoint; door cells are appended to both rooms.
func placeSharedWallDoors(rng *rand.Rand, rooms []*Room, g *Graph, walls map[[2]int][]geom.Cell, p AdjacencyParams) {
	byID := make(map[int]*Room, len(rooms))
	for _, r := range rooms {
		byID[r.ID] = r
	}

	for _, e := range g.Edges() {
		if rng.Float64() >= p.DoorProbability {
			continue
		}
		wall := walls[[2]int{e.A, e.B}]
		if len(wall) == 0 {
			continue
		}

		doorLen := len(wall) / 3
		if doorLen < p.MinDoorLength {
			doorLen = p.MinDoorLength
		}
		if doorLen > p.MaxDoorLength {
			doorLen = p.MaxDoorLength
		}

		mid := len(wall) / 2
		start := mid - doorLen/2
		if start < 0 {
			start = 0
		}
		end := start + doorLen
		if end > len(wall) {
			end = len(wall)
		}

		for _, c := range wall[start:end] {
			byID[e.A].AddDoor(c)
			byID[e.B].AddDoor(c)
		}
	}
}

// rasterizeAdjacent paints every room: interiors, then wall rings onto void,
// then doors, then center markers (random main marker for main rooms, the
// generic room marker otherwise).
func rasterizeAdjacent(rng *rand.Rand, width, height int, rooms []*Room) Grid {
	grid := NewGrid(width, height)

	for _, r := range rooms {
		for _, c := range r.Geometry.GridCells() {
			grid.Set(c.X, c.Y, TileFloor)
		}
	}
	for _, r := range rooms {
		paintWallRing(grid, r)
	}
	grid.paintDoors(rooms)

	for _, r := range rooms {
		center := r.CenterCell()
		if !grid.In(center.X, center.Y) {
			continue
		}
		if r.IsMain {
			grid.Set(center.X, center.Y, mainMarkers[rng.Intn(len(mainMarkers))])
		} else {
			grid.Set(center.X, center.Y, TileTreasure)
		}
	}
	return grid
}
