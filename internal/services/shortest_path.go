package services

import (
	"container/heap"
	"route-optimizer-service/internal/domain"
)

// Path is a route through the graph, endpoints inclusive, and its total cost.
type Path struct {
	Nodes []string
	Cost  float64
}

// ShortestPath runs an informed best-first (A*) search from start to goal.
//
// The heuristic is the straight-line distance to goal. It is only a lower
// bound when every edge weight is at least the Euclidean distance between
// its endpoints; on networks where that does not hold the returned path may
// be suboptimal. Nodes without coordinates get a heuristic of zero.
//
// A node is re-opened whenever a cheaper way to reach it is found, even
// after it has been expanded. ok is false when goal is unreachable.
func ShortestPath(g *Graph, coords map[string]domain.Coordinates, start, goal string) (path Path, ok bool) {
	if start == goal {
		return Path{Nodes: []string{start}, Cost: 0}, true
	}

	goalCoords, hasGoal := coords[goal]
	heuristic := func(id string) float64 {
		c, ok := coords[id]
		if !ok || !hasGoal {
			return 0
		}
		return c.DistanceTo(goalCoords)
	}

	gScore := map[string]float64{start: 0}
	cameFrom := map[string]string{}

	open := &frontier{}
	open.push(start, 0, heuristic(start))

	for open.Len() > 0 {
		cur := heap.Pop(open).(frontierItem)

		// Lazy decrease-key: an entry is stale once a cheaper one was pushed.
		if cur.cost > gScore[cur.id] {
			continue
		}

		if cur.id == goal {
			return Path{Nodes: reconstruct(cameFrom, start, goal), Cost: gScore[goal]}, true
		}

		for _, arc := range g.Neighbors(cur.id) {
			tentative := cur.cost + arc.Weight
			if best, seen := gScore[arc.To]; seen && tentative >= best {
				continue
			}
			cameFrom[arc.To] = cur.id
			gScore[arc.To] = tentative
			open.push(arc.To, tentative, tentative+heuristic(arc.To))
		}
	}

	return Path{}, false
}

func reconstruct(cameFrom map[string]string, start, goal string) []string {
	nodes := []string{goal}
	for cur := goal; cur != start; {
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		nodes = append(nodes, prev)
		cur = prev
	}

	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	return nodes
}

type frontierItem struct {
	id       string
	cost     float64 // best known cost from start when pushed
	estimate float64 // cost + heuristic
	seq      int
}

// frontier is a min-heap on estimate. Equal estimates pop in push order so
// the search is reproducible.
type frontier struct {
	items []frontierItem
	next  int
}

func (f *frontier) push(id string, cost, estimate float64) {
	heap.Push(f, frontierItem{id: id, cost: cost, estimate: estimate, seq: f.next})
	f.next++
}

func (f frontier) Len() int { return len(f.items) }

func (f frontier) Less(i, j int) bool {
	if f.items[i].estimate != f.items[j].estimate {
		return f.items[i].estimate < f.items[j].estimate
	}
	return f.items[i].seq < f.items[j].seq
}

func (f frontier) Swap(i, j int) { f.items[i], f.items[j] = f.items[j], f.items[i] }

func (f *frontier) Push(x any) { f.items = append(f.items, x.(frontierItem)) }

func (f *frontier) Pop() any {
	old := f.items
	n := len(old)
	it := old[n-1]
	f.items = old[:n-1]
	return it
}
