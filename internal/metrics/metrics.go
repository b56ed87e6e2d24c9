package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, route and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "route", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "route", "status"},
	)

	// PlanCacheLookups counts plan cache lookups by outcome (hit, miss, error).
	PlanCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "plan_cache_lookups_total", Help: "Plan cache lookups by outcome."},
		[]string{"outcome"},
	)

	regOnce sync.Once
)

// Engine groups the optimisation collectors. A nil *Engine is valid and
// records nothing.
type Engine struct {
	Runs          *prometheus.CounterVec
	Duration      prometheus.Histogram
	RouteCost     prometheus.Histogram
	RouteStops    prometheus.Histogram
	Unreached     prometheus.Counter
	PathSearches  prometheus.Counter
	PathCacheHits prometheus.Counter
}

// NewEngine builds the optimisation collectors and registers them on reg.
func NewEngine(reg prometheus.Registerer) *Engine {
	e := &Engine{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "optimizer_runs_total", Help: "Optimisation runs by result."},
			[]string{"result"},
		),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "optimizer_run_duration_seconds",
			Help:    "Wall time of one optimisation run.",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
		}),
		RouteCost: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "optimizer_route_cost",
			Help:    "Total cost of produced routes.",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10),
		}),
		RouteStops: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "optimizer_route_stops",
			Help:    "Orders served per produced route.",
			Buckets: prometheus.LinearBuckets(1, 2, 10),
		}),
		Unreached: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "optimizer_unreached_stops_total",
			Help: "Order destinations left out of a tour because no path existed.",
		}),
		PathSearches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "optimizer_path_searches_total",
			Help: "Shortest-path searches executed.",
		}),
		PathCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "optimizer_path_cache_hits_total",
			Help: "Shortest-path queries answered from the per-run cache.",
		}),
	}
	if reg != nil {
		reg.MustRegister(e.Runs, e.Duration, e.RouteCost, e.RouteStops, e.Unreached, e.PathSearches, e.PathCacheHits)
	}
	return e
}

// RegisterDefault registers the HTTP and cache collectors plus the Go and
// process collectors on Registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(PlanCacheLookups)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

// ObserveRun records the outcome and wall time of one optimisation run.
func (e *Engine) ObserveRun(result string, seconds float64) {
	if e == nil {
		return
	}
	e.Runs.WithLabelValues(result).Inc()
	e.Duration.Observe(seconds)
}

// ObserveRoute records one produced route.
func (e *Engine) ObserveRoute(cost float64, stops, unreached int) {
	if e == nil {
		return
	}
	e.RouteCost.Observe(cost)
	e.RouteStops.Observe(float64(stops))
	e.Unreached.Add(float64(unreached))
}

func (e *Engine) IncPathSearch() {
	if e == nil {
		return
	}
	e.PathSearches.Inc()
}

func (e *Engine) IncPathCacheHit() {
	if e == nil {
		return
	}
	e.PathCacheHits.Inc()
}
