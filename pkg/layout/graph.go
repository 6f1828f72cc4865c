package layout

import "sort"

// Edge is an undirected connection between two rooms, identified by room id.
// Weight is the Euclidean distance between the room centers at build time.
type Edge struct {
	A, B   int
	Weight float64
}

// normalized returns the edge with A <= B so that undirected edges compare
// and deduplicate cleanly.
func (e Edge) normalized() Edge {
	if e.A > e.B {
		e.A, e.B = e.B, e.A
	}
	return e
}

// Graph is the undirected room-connectivity graph. Nodes are room ids; the
// edge set is deduplicated on insert.
type Graph struct {
	nodes map[int]bool
	edges []Edge
	seen  map[[2]int]bool
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: map[int]bool{}, seen: map[[2]int]bool{}}
}

// AddNode registers a room id.
func (g *Graph) AddNode(id int) { g.nodes[id] = true }

// AddEdge inserts an undirected edge, registering both endpoints. Self loops
// and duplicates are ignored.
func (g *Graph) AddEdge(e Edge) {
	e = e.normalized()
	if e.A == e.B {
		return
	}
	key := [2]int{e.A, e.B}
	if g.seen[key] {
		return
	}
	g.seen[key] = true
	g.nodes[e.A] = true
	g.nodes[e.B] = true
	g.edges = append(g.edges, e)
}

// HasEdge reports whether the undirected edge a-b exists.
func (g *Graph) HasEdge(a, b int) bool {
	e := Edge{A: a, B: b}.normalized()
	return g.seen[[2]int{e.A, e.B}]
}

// Nodes returns the node ids in ascending order.
func (g *Graph) Nodes() []int {
	out := make([]int, 0, len(g.nodes))
	for id := range g.nodes {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Edges returns the edge list in insertion order.
func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// Degree returns the number of edges incident to the node.
func (g *Graph) Degree(id int) int {
	n := 0
	for _, e := range g.edges {
		if e.A == id || e.B == id {
			n++
		}
	}
	return n
}

// Neighbors returns the ids adjacent to the node, ascending.
func (g *Graph) Neighbors(id int) []int {
	var out []int
	for _, e := range g.edges {
		switch id {
		case e.A:
			out = append(out, e.B)
		case e.B:
			out = append(out, e.A)
		}
	}
	sort.Ints(out)
	return out
}

// Connected reports whether every node is reachable from every other via a
// breadth-first sweep. The empty graph is connected.
func (g *Graph) Connected() bool {
	nodes := g.Nodes()
	if len(nodes) <= 1 {
		return true
	}

	adj := map[int][]int{}
	for _, e := range g.edges {
		adj[e.A] = append(adj[e.A], e.B)
		adj[e.B] = append(adj[e.B], e.A)
	}

	visited := map[int]bool{nodes[0]: true}
	queue := []int{nodes[0]}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range adj[cur] {
			if !visited[n] {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	return len(visited) == len(nodes)
}

// unionFind is a path-compressing disjoint set over room ids.
type unionFind struct {
	parent map[int]int
}

func newUnionFind(ids []int) *unionFind {
	uf := &unionFind{parent: make(map[int]int, len(ids))}
	for _, id := range ids {
		uf.parent[id] = id
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) bool {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return false
	}
	uf.parent[ra] = rb
	return true
}

// MinimumSpanningTree runs Kruskal's algorithm over the graph and returns the
// kept tree edges and the edges left out. Ties are broken by endpoint ids so
// the result does not depend on insertion order.
func (g *Graph) MinimumSpanningTree() (kept, removed []Edge) {
	edges := g.Edges()
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Weight != edges[j].Weight {
			return edges[i].Weight < edges[j].Weight
		}
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})

	uf := newUnionFind(g.Nodes())
	for _, e := range edges {
		if uf.union(e.A, e.B) {
			kept = append(kept, e)
		} else {
			removed = append(removed, e)
		}
	}
	return kept, removed
}

// GraphSnapshot is the serialized graph shape emitted in a layout result.
type GraphSnapshot struct {
	Nodes []int    `json:"nodes"`
	Edges [][2]int `json:"edges"`
}

// Snapshot flattens the graph for result serialization.
func (g *Graph) Snapshot() GraphSnapshot {
	snap := GraphSnapshot{Nodes: g.Nodes(), Edges: make([][2]int, 0, len(g.edges))}
	for _, e := range g.edges {
		snap.Edges = append(snap.Edges, [2]int{e.A, e.B})
	}
	sort.Slice(snap.Edges, func(i, j int) bool {
		if snap.Edges[i][0] != snap.Edges[j][0] {
			return snap.Edges[i][0] < snap.Edges[j][0]
		}
		return snap.Edges[i][1] < snap.Edges[j][1]
	})
	return snap
}
