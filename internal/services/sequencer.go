package services

import (
	"route-optimizer-service/internal/domain"
)

// Tour is the outcome of sequencing one cluster.
type Tour struct {
	Sequence  []string
	Cost      float64
	Unreached []string
}

// SequenceCluster orders a cluster's stops using a greedy nearest-neighbor
// construction over shortest-path costs.
//
// Starting at the depot it repeatedly moves to the unvisited stop with the
// cheapest path (first in order wins ties), appending every intermediate hop
// of that path to the sequence. A destination that appears in several orders
// is visited once per order. When no remaining stop is reachable the loop
// stops and those stops are reported as unreached. The tour then returns to
// the depot if a path exists; otherwise it ends at the last stop reached.
//
// The result is a heuristic tour, not an optimal one.
func SequenceCluster(orders []domain.Order, depot string, paths PathFinder) Tour {
	unvisited := make([]string, 0, len(orders))
	for _, o := range orders {
		unvisited = append(unvisited, o.Destination)
	}

	current := depot
	sequence := []string{depot}
	totalCost := 0.0

	for len(unvisited) > 0 {
		bestIdx := -1
		var bestPath Path

		// Select next stop by minimum path cost (greedy step).
		for i, d := range unvisited {
			p, ok := paths.ShortestPath(current, d)
			if !ok {
				continue
			}
			if bestIdx == -1 || p.Cost < bestPath.Cost {
				bestIdx = i
				bestPath = p
			}
		}

		if bestIdx == -1 {
			break
		}

		sequence = append(sequence, bestPath.Nodes[1:]...)
		totalCost += bestPath.Cost
		current = unvisited[bestIdx]
		unvisited = append(unvisited[:bestIdx], unvisited[bestIdx+1:]...)
	}

	// Return leg is best-effort; a tour that cannot get back ends where it is.
	if back, ok := paths.ShortestPath(current, depot); ok {
		sequence = append(sequence, back.Nodes[1:]...)
		totalCost += back.Cost
	}

	var unreached []string
	if len(unvisited) > 0 {
		unreached = append([]string(nil), unvisited...)
	}

	return Tour{Sequence: sequence, Cost: totalCost, Unreached: unreached}
}
