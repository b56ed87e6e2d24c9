package services

import "route-optimizer-service/internal/domain"

// Arc is one directed half of an undirected edge.
type Arc struct {
	To     string
	Weight float64
}

// Graph is the adjacency structure the shortest-path search runs on.
// It is built once per optimisation and never mutated afterwards, so it can
// be shared by concurrent readers.
//
// Neighbours keep the order in which their edges were first inserted; this
// keeps frontier tie-breaks, and therefore returned paths, reproducible.
type Graph struct {
	nodes []string
	arcs  map[string][]Arc
	index map[string]map[string]int
}

// BuildGraph converts an undirected edge list into adjacency form.
//
// Every point becomes a node, isolated points included. Each edge {a, b, w}
// inserts a->b and b->a with weight w. A later edge between the same
// endpoints overwrites the earlier weight.
func BuildGraph(points []domain.Point, edges []domain.Edge) *Graph {
	g := &Graph{
		nodes: make([]string, 0, len(points)),
		arcs:  make(map[string][]Arc, len(points)),
		index: make(map[string]map[string]int, len(points)),
	}

	for _, p := range points {
		g.addNode(p.ID)
	}
	for _, e := range edges {
		g.setArc(e.From, e.To, e.Weight)
		g.setArc(e.To, e.From, e.Weight)
	}

	return g
}

func (g *Graph) addNode(id string) {
	if _, ok := g.index[id]; ok {
		return
	}
	g.nodes = append(g.nodes, id)
	g.arcs[id] = nil
	g.index[id] = map[string]int{}
}

func (g *Graph) setArc(from, to string, w float64) {
	// Edges may name points outside the point set; they still become nodes
	// so the search can traverse them.
	g.addNode(from)
	g.addNode(to)

	if i, ok := g.index[from][to]; ok {
		g.arcs[from][i].Weight = w
		return
	}
	g.index[from][to] = len(g.arcs[from])
	g.arcs[from] = append(g.arcs[from], Arc{To: to, Weight: w})
}

// Has reports whether id is a node of the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Nodes returns node identifiers in insertion order.
func (g *Graph) Nodes() []string { return append([]string(nil), g.nodes...) }

// Neighbors returns the arcs leaving id. The slice must not be modified.
func (g *Graph) Neighbors(id string) []Arc { return g.arcs[id] }

// Weight returns the weight of the arc a->b.
func (g *Graph) Weight(a, b string) (float64, bool) {
	i, ok := g.index[a][b]
	if !ok {
		return 0, false
	}
	return g.arcs[a][i].Weight, true
}

// Adjacency returns a copy of the graph as identifier -> neighbour -> weight.
func (g *Graph) Adjacency() map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(g.nodes))
	for _, id := range g.nodes {
		m := make(map[string]float64, len(g.arcs[id]))
		for _, a := range g.arcs[id] {
			m[a.To] = a.Weight
		}
		out[id] = m
	}
	return out
}

// PathCost sums the arc weights along seq. It reports false if two
// consecutive identifiers are not adjacent.
func (g *Graph) PathCost(seq []string) (float64, bool) {
	total := 0.0
	for i := 1; i < len(seq); i++ {
		w, ok := g.Weight(seq[i-1], seq[i])
		if !ok {
			return 0, false
		}
		total += w
	}
	return total, true
}
