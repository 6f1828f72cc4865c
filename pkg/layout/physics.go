package layout

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// PhysicsParams configures the separation-based generation method. Field
// names double as the override keys accepted in generation requests.
type PhysicsParams struct {
	NumRooms     int     `json:"num_rooms"`
	SpawnRadius  float64 `json:"spawn_radius"`
	RoomSizeMean float64 `json:"room_size_mean"`
	RoomSizeStd  float64 `json:"room_size_std"`
	RoomSizeMin  float64 `json:"room_size_min"`
	RoomSizeMax  float64 `json:"room_size_max"`

	MainRoomThreshold float64 `json:"main_room_threshold"`
	MinMainRooms      int     `json:"min_main_rooms"`
	MainRoomRatio     float64 `json:"main_room_ratio"`

	SeparationForce      float64 `json:"separation_force"`
	MaxIterations        int     `json:"max_iterations"`
	ConvergenceThreshold float64 `json:"convergence_threshold"`
	TileSize             int     `json:"tile_size"`
	Margin               int     `json:"margin"`

	EdgeReconnectPercent     float64 `json:"edge_reconnect_percent"`
	MaxAdditionalConnections int     `json:"max_additional_connections"`

	CorridorWidth              int     `json:"corridor_width"`
	CorridorStyle              string  `json:"corridor_style"`
	CorridorIntersectionBuffer float64 `json:"corridor_intersection_buffer"`

	// ShapeWeights is the room-shape distribution. The base method sticks to
	// rectangles; the shaped variant uses the full library.
	ShapeWeights map[ShapeKind]float64 `json:"shape_weights,omitempty"`

	// AdjacencyScoring ranks main-room candidates by area weighted with
	// triangulation degree instead of raw area.
	AdjacencyScoring bool `json:"adjacency_scoring"`
}

// DefaultPhysicsParams returns the defaults for the plain physics method.
func DefaultPhysicsParams() PhysicsParams {
	return PhysicsParams{
		NumRooms:                   50,
		SpawnRadius:                20,
		RoomSizeMean:               8,
		RoomSizeStd:                3,
		RoomSizeMin:                3,
		RoomSizeMax:                20,
		MainRoomThreshold:          1.25,
		MinMainRooms:               3,
		MainRoomRatio:              0.3,
		SeparationForce:            1.0,
		MaxIterations:              1000,
		ConvergenceThreshold:       0.1,
		TileSize:                   1,
		Margin:                     1,
		EdgeReconnectPercent:       0.1,
		MaxAdditionalConnections:   3,
		CorridorWidth:              3,
		CorridorStyle:              CorridorLShaped,
		CorridorIntersectionBuffer: 1.0,
		ShapeWeights:               map[ShapeKind]float64{ShapeRectangle: 1},
	}
}

// DefaultShapedPhysicsParams returns the defaults for the shaped variant:
// the full shape library plus degree-weighted main-room scoring.
func DefaultShapedPhysicsParams() PhysicsParams {
	p := DefaultPhysicsParams()
	p.ShapeWeights = map[ShapeKind]float64{
		ShapeRectangle: DefaultShapeWeights[ShapeRectangle],
		ShapeCircle:    DefaultShapeWeights[ShapeCircle],
		ShapeLShape:    DefaultShapeWeights[ShapeLShape],
		ShapeIrregular: DefaultShapeWeights[ShapeIrregular],
		ShapePolyomino: DefaultShapeWeights[ShapePolyomino],
	}
	p.AdjacencyScoring = true
	return p
}

// GeneratePhysics runs the full separation pipeline: spawn rooms inside a
// circle, relax overlaps, pick main rooms, connect them, carve corridors,
// promote hallways, rasterize.
func GeneratePhysics(rng *rand.Rand, width, height int, p PhysicsParams, meta *Metadata) (*Result, error) {
	rooms := spawnRooms(rng, width, height, p)

	converged := separateRooms(rng, rooms, width, height, p)
	meta.PhysicsConverged = converged
	if !converged {
		meta.Warnings = append(meta.Warnings,
			fmt.Sprintf("separation hit the %d-iteration cap with residual overlap", p.MaxIterations))
	}

	selectMainRooms(rooms, p)

	mains := make([]*Room, 0, len(rooms))
	for _, r := range rooms {
		if r.IsMain {
			mains = append(mains, r)
		}
	}

	graph := buildConnectivity(rng, mains, p.EdgeReconnectPercent, p.MaxAdditionalConnections)

	byID := make(map[int]*Room, len(rooms))
	for _, r := range rooms {
		byID[r.ID] = r
	}
	corridors := carveCorridors(byID, graph, p.CorridorStyle, p.CorridorWidth)
	promoteHallways(rooms, corridors, p.CorridorIntersectionBuffer)

	grid := rasterize(width, height, rooms, corridors, rng)

	rendered := make([]*Room, 0, len(rooms))
	for _, r := range rooms {
		if r.IsMain || r.IsHallway {
			rendered = append(rendered, r)
		}
	}

	return &Result{
		Grid:       grid,
		Rooms:      roomResults(rendered),
		Graph:      graph.Snapshot(),
		Parameters: p,
		Metadata:   *meta,
	}, nil
}

// spawnRooms scatters rooms uniformly inside a circle around the grid
// center, with normally-distributed side lengths.
func spawnRooms(rng *rand.Rand, width, height int, p PhysicsParams) []*Room {
	cx, cy := float64(width)/2, float64(height)/2
	rooms := make([]*Room, 0, p.NumRooms)
	for i := 0; i < p.NumRooms; i++ {
		dx, dy := pointInCircle(rng, p.SpawnRadius)
		w := normClamped(rng, p.RoomSizeMean, p.RoomSizeStd, p.RoomSizeMin, p.RoomSizeMax)
		h := normClamped(rng, p.RoomSizeMean, p.RoomSizeStd, p.RoomSizeMin, p.RoomSizeMax)
		g := GenerateShape(rng, cx+dx, cy+dy, w*h, p.ShapeWeights)
		rooms = append(rooms, NewRoom(i, g))
	}
	return rooms
}

// separateRooms relaxes overlapping rooms with pairwise repulsion until no
// pair overlaps, displacements die down, or the iteration cap is hit.
// Returns whether the loop converged before the cap.
func separateRooms(rng *rand.Rand, rooms []*Room, width, height int, p PhysicsParams) bool {
	type force struct{ x, y float64 }

	for iter := 0; iter < p.MaxIterations; iter++ {
		forces := make([]force, len(rooms))
		overlapping := false

		for i := 0; i < len(rooms); i++ {
			for j := i + 1; j < len(rooms); j++ {
				if !rooms[i].Overlaps(rooms[j]) {
					continue
				}
				overlapping = true

				dx := rooms[i].Center().X() - rooms[j].Center().X()
				dy := rooms[i].Center().Y() - rooms[j].Center().Y()
				dist := math.Hypot(dx, dy)

				var fx, fy float64
				if dist == 0 {
					// Coincident centers repel in a random direction.
					angle := rng.Float64() * 2 * math.Pi
					fx = p.SeparationForce * math.Cos(angle)
					fy = p.SeparationForce * math.Sin(angle)
				} else {
					mag := p.SeparationForce / dist
					fx = dx / dist * mag
					fy = dy / dist * mag
				}

				forces[i].x += fx
				forces[i].y += fy
				forces[j].x -= fx
				forces[j].y -= fy
			}
		}

		if !overlapping {
			return true
		}

		maxDisp := 0.0
		for i, r := range rooms {
			disp := math.Abs(forces[i].x) + math.Abs(forces[i].y)
			if disp > maxDisp {
				maxDisp = disp
			}
			r.Geometry.Translate(forces[i].x, forces[i].y)
			snapAndClamp(r, width, height, p)
		}
		if maxDisp < p.ConvergenceThreshold {
			return true
		}
	}
	return false
}

// snapAndClamp re-snaps a room's origin onto the tile grid and pushes it back
// inside the margins.
func snapAndClamp(r *Room, width, height int, p PhysicsParams) {
	b := r.Bounds()
	snapX := float64(roundToTile(b.MinX, p.TileSize)) - b.MinX
	snapY := float64(roundToTile(b.MinY, p.TileSize)) - b.MinY
	if snapX != 0 || snapY != 0 {
		r.Geometry.Translate(snapX, snapY)
	}

	b = r.Bounds()
	margin := float64(p.Margin)
	var dx, dy float64
	if b.MinX < margin {
		dx = margin - b.MinX
	} else if b.MaxX > float64(width)-margin {
		dx = float64(width) - margin - b.MaxX
	}
	if b.MinY < margin {
		dy = margin - b.MinY
	} else if b.MaxY > float64(height)-margin {
		dy = float64(height) - margin - b.MaxY
	}
	if dx != 0 || dy != 0 {
		r.Geometry.Translate(dx, dy)
	}
}

// selectMainRooms flags rooms that clear the area threshold. If fewer than
// the configured minimum qualify, the top K rooms by score are flagged
// instead, where K is the larger of that minimum and ratio * room count.
// Scoring is raw area, or area weighted by triangulation degree when
// adjacency scoring is on.
func selectMainRooms(rooms []*Room, p PhysicsParams) {
	threshold := p.RoomSizeMean * p.MainRoomThreshold
	thresholdArea := threshold * threshold

	scores := make(map[int]float64, len(rooms))
	for _, r := range rooms {
		scores[r.ID] = r.Area()
	}
	if p.AdjacencyScoring {
		tri := triangulateRooms(rooms)
		for _, r := range rooms {
			scores[r.ID] = r.Area() * (1 + 0.5*float64(tri.Degree(r.ID)))
		}
	}

	count := 0
	for _, r := range rooms {
		if r.Area() >= thresholdArea {
			r.IsMain = true
			count++
		}
	}

	if count >= p.MinMainRooms || len(rooms) == 0 {
		return
	}

	// Not enough rooms cleared the bar; fall back to ranked selection. The
	// ratio only sizes the fallback set, it never discards a valid
	// thresholded selection.
	k := int(p.MainRoomRatio * float64(len(rooms)))
	if k < p.MinMainRooms {
		k = p.MinMainRooms
	}
	for _, r := range rooms {
		r.IsMain = false
	}
	ranked := append([]*Room(nil), rooms...)
	sort.Slice(ranked, func(i, j int) bool {
		si, sj := scores[ranked[i].ID], scores[ranked[j].ID]
		if si != sj {
			return si > sj
		}
		return ranked[i].ID < ranked[j].ID
	})
	if k > len(ranked) {
		k = len(ranked)
	}
	for _, r := range ranked[:k] {
		r.IsMain = true
	}
}
