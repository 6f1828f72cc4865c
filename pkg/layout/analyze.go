package layout

// Analysis summarizes a generated layout: room counts, area statistics,
// type distribution, and graph connectivity.
type Analysis struct {
	RoomCount       int              `json:"room_count"`
	TotalArea       float64          `json:"total_area"`
	AverageRoomSize float64          `json:"average_room_size"`
	MainRoomCount   int              `json:"main_room_count"`
	DoorCount       int              `json:"door_count"`
	RoomTypes       map[RoomType]int `json:"room_types"`
	Connectivity    Connectivity     `json:"connectivity"`
	TileCounts      map[int]int      `json:"tile_counts"`
}

// Connectivity describes the shape of a layout's room graph.
type Connectivity struct {
	TotalConnections      int     `json:"total_connections"`
	AvgConnectionsPerRoom float64 `json:"avg_connections_per_room"`
	Connected             bool    `json:"connected"`
}

// Analyze computes statistics over a layout result.
func Analyze(res *Result) Analysis {
	a := Analysis{
		RoomTypes:  map[RoomType]int{},
		TileCounts: map[int]int{},
	}

	doorCells := map[[2]int]bool{}
	for _, r := range res.Rooms {
		a.RoomCount++
		a.TotalArea += r.Area
		a.RoomTypes[r.Type]++
		if r.IsMain {
			a.MainRoomCount++
		}
		for _, d := range r.Doors {
			doorCells[d] = true
		}
	}
	// Each door coordinate is recorded by both rooms of a pair.
	a.DoorCount = len(doorCells)
	if a.RoomCount > 0 {
		a.AverageRoomSize = a.TotalArea / float64(a.RoomCount)
	}

	a.Connectivity.TotalConnections = len(res.Graph.Edges)
	if a.RoomCount > 0 {
		// Each undirected edge contributes two room endpoints.
		a.Connectivity.AvgConnectionsPerRoom = float64(2*len(res.Graph.Edges)) / float64(a.RoomCount)
	}
	a.Connectivity.Connected = snapshotConnected(res.Graph)

	for _, row := range res.Grid {
		for _, tile := range row {
			a.TileCounts[tile]++
		}
	}
	return a
}

// snapshotConnected rebuilds a graph from its serialized form and checks
// connectivity.
func snapshotConnected(snap GraphSnapshot) bool {
	g := NewGraph()
	for _, n := range snap.Nodes {
		g.AddNode(n)
	}
	for _, e := range snap.Edges {
		g.AddEdge(Edge{A: e[0], B: e[1]})
	}
	return g.Connected()
}
