package services

import (
	"context"
	"fmt"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/metrics"
	"route-optimizer-service/internal/platform/obs"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// OptimizeInput carries everything one optimisation needs.
// Depot overrides the optimizer's default depot when non-empty.
type OptimizeInput struct {
	Orders  []domain.Order
	Drivers int
	Points  []domain.Point
	Edges   []domain.Edge
	Depot   string
}

// Optimizer assigns orders to drivers and sequences each driver's tour.
//
// Every call is a pure function of its input: the graph, the clusters and
// the path cache are rebuilt per call and nothing is shared between calls.
type Optimizer struct {
	depot    string
	palette  []string
	workers  int
	validate bool
	logger   *zap.Logger
	metrics  *metrics.Engine
}

type Option func(*Optimizer)

// WithDepot sets the default depot identifier.
func WithDepot(id string) Option {
	return func(o *Optimizer) {
		if id != "" {
			o.depot = id
		}
	}
}

// WithPalette replaces the cluster colour palette.
func WithPalette(colors []string) Option {
	return func(o *Optimizer) {
		if len(colors) > 0 {
			o.palette = append([]string(nil), colors...)
		}
	}
}

// WithWorkers bounds how many clusters are sequenced concurrently.
func WithWorkers(n int) Option {
	return func(o *Optimizer) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithReferenceValidation makes Optimize reject inputs whose edges, orders
// or depot reference unknown points.
func WithReferenceValidation() Option {
	return func(o *Optimizer) { o.validate = true }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *Optimizer) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithMetrics(m *metrics.Engine) Option {
	return func(o *Optimizer) { o.metrics = m }
}

func NewOptimizer(opts ...Option) *Optimizer {
	o := &Optimizer{
		depot:   domain.DefaultDepotID,
		palette: domain.ClusterColors,
		workers: 1,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Depot returns the default depot identifier.
func (o *Optimizer) Depot() string { return o.depot }

// OptimizeRoutes runs a default Optimizer once.
func OptimizeRoutes(orders []domain.Order, drivers int, points []domain.Point, edges []domain.Edge) ([]domain.OptimizedRoute, error) {
	return NewOptimizer().Optimize(context.Background(), OptimizeInput{
		Orders:  orders,
		Drivers: drivers,
		Points:  points,
		Edges:   edges,
	})
}

// Optimize clusters the orders into at most in.Drivers groups and returns
// one route per non-empty group, numbered 1..M in cluster order. Drivers
// left without orders get no route.
//
// Unreachable stops never fail the call; they are reported on the route.
func (o *Optimizer) Optimize(ctx context.Context, in OptimizeInput) (_ []domain.OptimizedRoute, err error) {
	defer obs.Time(ctx, o.logger, "optimizer.Optimize")(&err)

	start := time.Now()
	defer func() {
		result := "ok"
		if err != nil {
			result = "error"
		}
		o.metrics.ObserveRun(result, time.Since(start).Seconds())
	}()

	if len(in.Orders) == 0 {
		return nil, fmt.Errorf("optimize: %w", ErrEmptyInput)
	}
	if in.Drivers < 1 {
		return nil, fmt.Errorf("optimize: drivers=%d: %w", in.Drivers, ErrInvalidDriverCount)
	}

	for i, e := range in.Edges {
		if !e.ValidWeight() {
			return nil, fmt.Errorf("optimize: edge #%d %q-%q weight=%v: %w", i+1, e.From, e.To, e.Weight, ErrInvalidEdgeWeight)
		}
	}

	depot := in.Depot
	if depot == "" {
		depot = o.depot
	}

	network := domain.Network{Points: in.Points, Edges: in.Edges, Orders: in.Orders}
	if o.validate {
		if err := network.Validate(depot); err != nil {
			return nil, fmt.Errorf("optimize: validate network: %w", err)
		}
	}

	coords := network.CoordinateIndex()
	clusters := o.buildClusters(in.Orders, in.Drivers, coords)

	graph := BuildGraph(in.Points, in.Edges)
	paths := NewCachedPathFinder(NewPathFinder(graph, coords, o.metrics), o.metrics)

	nonEmpty := make([]domain.Cluster, 0, len(clusters))
	for _, c := range clusters {
		if len(c.Orders) > 0 {
			nonEmpty = append(nonEmpty, c)
		}
	}

	o.logger.Debug("clustered orders",
		zap.Int("orders", len(in.Orders)),
		zap.Int("drivers", in.Drivers),
		zap.Int("clusters", len(nonEmpty)),
		zap.Int("graph_nodes", graph.Len()),
	)

	// Routes are written by cluster position, so numbering does not depend
	// on which worker finishes first.
	routes := make([]domain.OptimizedRoute, len(nonEmpty))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, cluster := range nonEmpty {
		i, cluster := i, cluster
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			tour := SequenceCluster(cluster.Orders, depot, paths)
			routes[i] = domain.OptimizedRoute{
				DriverIndex: i + 1,
				Cluster:     cluster,
				Sequence:    tour.Sequence,
				TotalCost:   tour.Cost,
				Unreached:   tour.Unreached,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("optimize: sequence clusters: %w", err)
	}

	for _, r := range routes {
		o.metrics.ObserveRoute(r.TotalCost, len(r.Cluster.Orders), len(r.Unreached))
		if !r.Complete() {
			o.logger.Warn("route skips unreachable stops",
				zap.Int("driver", r.DriverIndex),
				zap.Strings("unreached", r.Unreached),
			)
		}
	}

	return routes, nil
}

// buildClusters runs KMeans over the order coordinates and groups the
// orders by assignment. Orders whose destination has no coordinates are
// clustered at the origin.
func (o *Optimizer) buildClusters(orders []domain.Order, drivers int, coords map[string]domain.Coordinates) []domain.Cluster {
	orderCoords := make([]domain.Coordinates, len(orders))
	for i, ord := range orders {
		orderCoords[i] = coords[ord.Destination]
	}

	assignments := KMeans(orderCoords, drivers)

	k := min(drivers, len(orders))
	clusters := make([]domain.Cluster, k)
	for i := range clusters {
		clusters[i] = domain.Cluster{Index: i, Color: domain.ColorFor(o.palette, i)}
	}
	for i, ord := range orders {
		c := assignments[i]
		clusters[c].Orders = append(clusters[c].Orders, ord)
	}

	return clusters
}
