package layout

import (
	"fmt"
	"math/rand"
	"sort"
)

// Graph topologies for the abstract-graph-first methods.
const (
	TopologyLinear    = "linear"
	TopologyHub       = "hub"
	TopologyBranching = "branching"
	TopologyLoop      = "loop"
)

// GraphParams configures the graph-first generation methods, which synthesize
// an abstract connectivity graph before placing any geometry.
type GraphParams struct {
	// Topology is fixed by the method name and not overridable.
	Topology string `json:"-"`

	MinRooms    int `json:"min_rooms"`
	MaxRooms    int `json:"max_rooms"`
	RoomSizeMin int `json:"room_size_min"`
	RoomSizeMax int `json:"room_size_max"`
	RoomPadding int `json:"room_padding"`

	PlacementAttempts int `json:"placement_attempts"`
	CollisionBuffer   int `json:"collision_buffer"`
	EdgeMargin        int `json:"edge_margin"`

	TreasureProbability float64 `json:"treasure_probability"`
	TrapProbability     float64 `json:"trap_probability"`
	PuzzleProbability   float64 `json:"puzzle_probability"`
	ChamberProbability  float64 `json:"chamber_probability"`

	ExtraConnectionsChance float64 `json:"extra_connections_chance"`

	LinearProgressionStrictness float64 `json:"linear_progression_strictness"`
	HubMaxBranches              int     `json:"hub_max_branches"`
	BranchingFactor             float64 `json:"branching_factor"`
	LoopClosureProbability      float64 `json:"loop_closure_probability"`
	ShortcutProbability         float64 `json:"shortcut_probability"`
}

func baseGraphParams(topology string) GraphParams {
	return GraphParams{
		Topology:               topology,
		MinRooms:               5,
		MaxRooms:               12,
		RoomSizeMin:            3,
		RoomSizeMax:            8,
		RoomPadding:            2,
		PlacementAttempts:      100,
		CollisionBuffer:        1,
		EdgeMargin:             2,
		TreasureProbability:    0.3,
		TrapProbability:        0.25,
		PuzzleProbability:      0.2,
		ChamberProbability:     0.15,
		ExtraConnectionsChance: 0.1,
	}
}

// DefaultLinearGraphParams returns the defaults for the linear topology.
func DefaultLinearGraphParams() GraphParams {
	p := baseGraphParams(TopologyLinear)
	p.MinRooms = 6
	p.MaxRooms = 9
	p.LinearProgressionStrictness = 0.9
	p.TreasureProbability = 0.4
	p.TrapProbability = 0.3
	return p
}

// DefaultHubGraphParams returns the defaults for the hub-and-spoke topology.
func DefaultHubGraphParams() GraphParams {
	p := baseGraphParams(TopologyHub)
	p.MinRooms = 5
	p.MaxRooms = 8
	p.HubMaxBranches = 6
	p.TreasureProbability = 0.5
	return p
}

// DefaultBranchingGraphParams returns the defaults for the branching-tree
// topology.
func DefaultBranchingGraphParams() GraphParams {
	p := baseGraphParams(TopologyBranching)
	p.MinRooms = 8
	p.MaxRooms = 15
	p.BranchingFactor = 0.6
	p.TreasureProbability = 0.3
	p.ChamberProbability = 0.25
	return p
}

// DefaultLoopGraphParams returns the defaults for the circular-loop topology.
func DefaultLoopGraphParams() GraphParams {
	p := baseGraphParams(TopologyLoop)
	p.MinRooms = 7
	p.MaxRooms = 11
	p.LoopClosureProbability = 0.8
	p.ShortcutProbability = 0.3
	p.ExtraConnectionsChance = 0.2
	return p
}

// GenerateGraphLayout synthesizes an abstract graph of the configured
// topology, rejection-places one rectangular room per node, types each room
// from its graph position, and carves single-width L corridors along the
// edges.
func GenerateGraphLayout(rng *rand.Rand, width, height int, p GraphParams, meta *Metadata) (*Result, error) {
	numRooms := p.MinRooms
	if p.MaxRooms > p.MinRooms {
		numRooms += rng.Intn(p.MaxRooms - p.MinRooms + 1)
	}

	var g *Graph
	switch p.Topology {
	case TopologyHub:
		g = hubGraph(rng, numRooms, p)
	case TopologyBranching:
		g = branchingGraph(rng, numRooms, p)
	case TopologyLoop:
		g = loopGraph(rng, numRooms, p)
	default:
		g = linearGraph(rng, numRooms, p)
	}

	rooms := placeGraphRooms(rng, width, height, g, p, meta)

	byID := make(map[int]*Room, len(rooms))
	for _, r := range rooms {
		byID[r.ID] = r
	}
	corridors := carveCorridors(byID, g, CorridorLShaped, 1)
	grid := rasterize(width, height, rooms, corridors, rng)

	return &Result{
		Grid:       grid,
		Rooms:      roomResults(rooms),
		Graph:      g.Snapshot(),
		Parameters: p,
		Metadata:   *meta,
	}, nil
}

// linearGraph chains rooms in order, occasionally skipping ahead instead of
// stepping, plus rare long shortcuts scaled by how loose the progression is.
func linearGraph(rng *rand.Rand, n int, p GraphParams) *Graph {
	g := NewGraph()
	for i := 0; i < n; i++ {
		g.AddNode(i)
	}
	for i := 0; i < n-1; i++ {
		if rng.Float64() < p.LinearProgressionStrictness {
			g.AddEdge(Edge{A: i, B: i + 1})
		} else {
			next := i + 2
			if next > n-1 {
				next = n - 1
			}
			g.AddEdge(Edge{A: i, B: next})
		}
	}
	for i := 0; i < n-2; i++ {
		for j := i + 2; j < n; j++ {
			if rng.Float64() < (1-p.LinearProgressionStrictness)*0.3 {
				g.AddEdge(Edge{A: i, B: j})
			}
		}
	}
	return g
}

// hubGraph connects node 0 to up to HubMaxBranches spokes, hangs the rest of
// the nodes off random spokes, and sprinkles inter-spoke links.
func hubGraph(rng *rand.Rand, n int, p GraphParams) *Graph {
	g := NewGraph()
	for i := 0; i < n; i++ {
		g.AddNode(i)
	}

	spokes := p.HubMaxBranches
	if spokes > n-1 {
		spokes = n - 1
	}
	for i := 1; i <= spokes; i++ {
		g.AddEdge(Edge{A: 0, B: i})
	}
	for node := spokes + 1; node < n; node++ {
		if spokes > 0 {
			g.AddEdge(Edge{A: 1 + rng.Intn(spokes), B: node})
		}
	}
	for i := 1; i <= spokes; i++ {
		for j := i + 1; j <= spokes; j++ {
			if rng.Float64() < p.ExtraConnectionsChance {
				g.AddEdge(Edge{A: i, B: j})
			}
		}
	}
	return g
}

// branchingGraph grows a tree from node 0, attaching one to three children
// per expansion, then adds sparse cross links.
func branchingGraph(rng *rand.Rand, n int, p GraphParams) *Graph {
	g := NewGraph()
	for i := 0; i < n; i++ {
		g.AddNode(i)
	}

	available := make([]int, 0, n-1)
	for i := 1; i < n; i++ {
		available = append(available, i)
	}
	connected := []int{0}

	for len(available) > 0 {
		parent := connected[rng.Intn(len(connected))]
		maxNew := int(p.BranchingFactor * 3)
		if maxNew < 1 {
			maxNew = 1
		}
		branches := maxNew - g.Degree(parent)
		if limit := 1 + rng.Intn(3); branches > limit {
			branches = limit
		}
		if branches < 1 {
			branches = 1
		}
		for b := 0; b < branches && len(available) > 0; b++ {
			child := available[0]
			available = available[1:]
			g.AddEdge(Edge{A: parent, B: child})
			connected = append(connected, child)
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if !g.HasEdge(i, j) && rng.Float64() < p.ExtraConnectionsChance {
				g.AddEdge(Edge{A: i, B: j})
			}
		}
	}
	return g
}

// loopGraph rings the rooms with probabilistic closure, cuts shortcuts across
// the ring, and stitches any stray components back together.
func loopGraph(rng *rand.Rand, n int, p GraphParams) *Graph {
	g := NewGraph()
	for i := 0; i < n; i++ {
		g.AddNode(i)
	}
	for i := 0; i < n; i++ {
		if rng.Float64() < p.LoopClosureProbability {
			g.AddEdge(Edge{A: i, B: (i + 1) % n})
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if rng.Float64() < p.ShortcutProbability {
				g.AddEdge(Edge{A: i, B: j})
			}
		}
	}
	connectComponents(rng, g)
	return g
}

// connectComponents links disjoint components with one random edge each,
// walking components in ascending order of their smallest node.
func connectComponents(rng *rand.Rand, g *Graph) {
	comps := components(g)
	for i := 0; i+1 < len(comps); i++ {
		a := comps[i][rng.Intn(len(comps[i]))]
		b := comps[i+1][rng.Intn(len(comps[i+1]))]
		g.AddEdge(Edge{A: a, B: b})
	}
}

// components returns the connected components as sorted node lists, ordered
// by smallest member.
func components(g *Graph) [][]int {
	adj := map[int][]int{}
	for _, e := range g.Edges() {
		adj[e.A] = append(adj[e.A], e.B)
		adj[e.B] = append(adj[e.B], e.A)
	}

	visited := map[int]bool{}
	var comps [][]int
	for _, start := range g.Nodes() {
		if visited[start] {
			continue
		}
		var comp []int
		queue := []int{start}
		visited[start] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			comp = append(comp, cur)
			for _, nb := range adj[cur] {
				if !visited[nb] {
					visited[nb] = true
					queue = append(queue, nb)
				}
			}
		}
		sort.Ints(comp)
		comps = append(comps, comp)
	}
	sort.Slice(comps, func(i, j int) bool { return comps[i][0] < comps[j][0] })
	return comps
}

// placeGraphRooms rejection-places one rectangular room per graph node. Rooms
// that find no collision-free spot within the attempt budget are skipped with
// a warning; their corridors are skipped too.
func placeGraphRooms(rng *rand.Rand, width, height int, g *Graph, p GraphParams, meta *Metadata) []*Room {
	var rooms []*Room
	occupied := NewGrid(width, height)

	for _, node := range g.Nodes() {
		w := p.RoomSizeMin + rng.Intn(p.RoomSizeMax-p.RoomSizeMin+1)
		h := p.RoomSizeMin + rng.Intn(p.RoomSizeMax-p.RoomSizeMin+1)

		placed := false
		for attempt := 0; attempt < p.PlacementAttempts; attempt++ {
			maxX := width - w - p.EdgeMargin
			maxY := height - h - p.EdgeMargin
			if maxX <= p.EdgeMargin || maxY <= p.EdgeMargin {
				break
			}
			x := p.EdgeMargin + rng.Intn(maxX-p.EdgeMargin+1)
			y := p.EdgeMargin + rng.Intn(maxY-p.EdgeMargin+1)

			if !graphRoomFits(occupied, x, y, w, h, p) {
				continue
			}

			r := NewRoom(node, NewRectangle(float64(x), float64(y), w, h))
			r.IsMain = true
			r.Type = graphRoomType(rng, node, g, p)
			rooms = append(rooms, r)

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					occupied.Set(xx, yy, node+1)
				}
			}
			placed = true
			break
		}
		if !placed {
			meta.Warnings = append(meta.Warnings,
				fmt.Sprintf("could not place room for graph node %d after %d attempts", node, p.PlacementAttempts))
		}
	}
	return rooms
}

// graphRoomFits checks that the room plus its collision buffer and padding
// touches only unoccupied cells.
func graphRoomFits(occupied Grid, x, y, w, h int, p GraphParams) bool {
	buffer := p.CollisionBuffer + p.RoomPadding
	for yy := y - buffer; yy < y+h+buffer; yy++ {
		for xx := x - buffer; xx < x+w+buffer; xx++ {
			if occupied.At(xx, yy) != 0 {
				return false
			}
		}
	}
	return true
}

// graphRoomType derives a room's role from its position in the graph: node 0
// is the entrance, leaves tend to be boss rooms, well-connected nodes tend to
// be chambers, and the rest roll on the configured type probabilities.
func graphRoomType(rng *rand.Rand, node int, g *Graph, p GraphParams) RoomType {
	if node == 0 {
		return RoomEntrance
	}
	degree := g.Degree(node)
	if degree == 1 && rng.Float64() < 0.7 {
		return RoomBoss
	}
	if degree >= 3 && rng.Float64() < p.ChamberProbability {
		return RoomChamber
	}

	roll := rng.Float64()
	switch {
	case roll < p.TreasureProbability:
		return RoomTreasure
	case roll < p.TreasureProbability+p.TrapProbability:
		return RoomTrap
	case roll < p.TreasureProbability+p.TrapProbability+p.PuzzleProbability:
		return RoomPuzzle
	default:
		return RoomChamber
	}
}
