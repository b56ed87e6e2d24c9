package services

import (
	"math"
	"route-optimizer-service/internal/domain"
)

// MaxKMeansIterations caps the assignment/update passes of KMeans.
const MaxKMeansIterations = 100

// KMeans partitions points into at most k groups and returns one cluster
// index per input point.
//
// Centroids are seeded from the first k points, so the result is fully
// determined by the input order. When there are fewer points than k, k is
// reduced to the number of points. Each pass assigns every point to its
// nearest centroid (lowest index wins ties) and then moves every non-empty
// cluster's centroid to the mean of its members; an empty cluster keeps its
// previous centroid. Iteration stops at a fixed point or after
// MaxKMeansIterations passes.
func KMeans(points []domain.Coordinates, k int) []int {
	assignments := make([]int, len(points))
	if len(points) == 0 {
		return assignments
	}

	if k < 1 {
		k = 1
	}
	if len(points) < k {
		k = len(points)
	}

	centroids := make([]domain.Coordinates, k)
	copy(centroids, points[:k])

	sums := make([]domain.Coordinates, k)
	counts := make([]int, k)

	changed := true
	for iter := 0; iter < MaxKMeansIterations && changed; iter++ {
		changed = false

		for i, p := range points {
			best := 0
			bestDist := math.Inf(1)
			for j, c := range centroids {
				if d := p.DistanceTo(c); d < bestDist {
					bestDist = d
					best = j
				}
			}
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}

		clear(sums)
		clear(counts)
		for i, p := range points {
			c := assignments[i]
			sums[c].X += p.X
			sums[c].Y += p.Y
			counts[c]++
		}
		for j := range centroids {
			// Empty clusters keep their centroid instead of dividing by zero.
			if counts[j] == 0 {
				continue
			}
			centroids[j] = domain.Coordinates{
				X: sums[j].X / float64(counts[j]),
				Y: sums[j].Y / float64(counts[j]),
			}
		}
	}

	return assignments
}
