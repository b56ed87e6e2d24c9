package domain

import "math"

// Immutable planar coordinates of a network point.
type Coordinates struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// DistanceTo returns the straight-line (Euclidean) distance between c and o.
// Both the clusterer and the shortest-path heuristic measure with it.
func (c Coordinates) DistanceTo(o Coordinates) float64 {
	return math.Hypot(c.X-o.X, c.Y-o.Y)
}

// Finite reports whether both components are real numbers.
func (c Coordinates) Finite() bool { return finite(c.X) && finite(c.Y) }

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
