package domain

import "time"

// Represents the group of orders handed to one driver.
// A Cluster is produced by the clusterer and is not modified afterwards.
type Cluster struct {
	Index  int
	Orders []Order
	Color  string
}

// Represents the planned tour of a single driver.
// Sequence holds every point actually traversed, intermediate hops included,
// starting at the depot. TotalCost is the sum of edge weights along Sequence.
// Unreached lists order destinations the tour could not reach.
type OptimizedRoute struct {
	DriverIndex int
	Cluster     Cluster
	Sequence    []string
	TotalCost   float64
	Unreached   []string
}

// Complete reports whether every order of the cluster was visited.
func (r OptimizedRoute) Complete() bool { return len(r.Unreached) == 0 }

// Represents one optimisation run as returned to callers.
// A Plan is immutable planning data and contains no side effects.
type Plan struct {
	ID        string
	CreatedAt time.Time
	Depot     string
	Drivers   int
	Routes    []OptimizedRoute
	TotalCost float64
	Cached    bool
}
