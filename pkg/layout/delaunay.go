package layout

import (
	"math"
	"math/rand"

	"github.com/fogleman/delaunay"
)

// triangulateRooms builds the candidate connectivity graph over room
// centers via Delaunay triangulation. With fewer than three rooms (or a
// degenerate point set the triangulator rejects) it falls back to a linear
// chain in room order.
func triangulateRooms(rooms []*Room) *Graph {
	g := NewGraph()
	for _, r := range rooms {
		g.AddNode(r.ID)
	}
	if len(rooms) < 3 {
		chainRooms(g, rooms)
		return g
	}

	points := make([]delaunay.Point, len(rooms))
	for i, r := range rooms {
		points[i] = delaunay.Point{X: r.Center().X(), Y: r.Center().Y()}
	}

	tri, err := delaunay.Triangulate(points)
	if err != nil || len(tri.Triangles) == 0 {
		chainRooms(g, rooms)
		return g
	}

	for i := 0; i+2 < len(tri.Triangles); i += 3 {
		a, b, c := tri.Triangles[i], tri.Triangles[i+1], tri.Triangles[i+2]
		g.AddEdge(edgeBetween(rooms[a], rooms[b]))
		g.AddEdge(edgeBetween(rooms[b], rooms[c]))
		g.AddEdge(edgeBetween(rooms[c], rooms[a]))
	}
	return g
}

// chainRooms links rooms in slice order.
func chainRooms(g *Graph, rooms []*Room) {
	for i := 0; i+1 < len(rooms); i++ {
		g.AddEdge(edgeBetween(rooms[i], rooms[i+1]))
	}
}

// edgeBetween builds an edge weighted by the center-to-center distance.
func edgeBetween(a, b *Room) Edge {
	dx := a.Center().X() - b.Center().X()
	dy := a.Center().Y() - b.Center().Y()
	return Edge{A: a.ID, B: b.ID, Weight: math.Hypot(dx, dy)}
}

// buildConnectivity reduces the triangulation to its minimum spanning tree
// and then reintroduces a fraction of the removed edges to create loops.
// The number of reintroduced edges is int(removed * reconnectPercent),
// capped at maxAdditional; which edges come back is random.
func buildConnectivity(rng *rand.Rand, rooms []*Room, reconnectPercent float64, maxAdditional int) *Graph {
	full := triangulateRooms(rooms)
	kept, removed := full.MinimumSpanningTree()

	g := NewGraph()
	for _, r := range rooms {
		g.AddNode(r.ID)
	}
	for _, e := range kept {
		g.AddEdge(e)
	}

	extra := int(float64(len(removed)) * reconnectPercent)
	if extra > maxAdditional {
		extra = maxAdditional
	}
	for i := 0; i < extra && len(removed) > 0; i++ {
		j := rng.Intn(len(removed))
		g.AddEdge(removed[j])
		removed = append(removed[:j], removed[j+1:]...)
	}
	return g
}
