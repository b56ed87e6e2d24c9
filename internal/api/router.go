package api

import (
	"net/http"
	"route-optimizer-service/internal/api/handlers"
	"route-optimizer-service/internal/metrics"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Deps struct {
	Repo           ports.NetworkRepository
	Plans          *services.PlanService
	Depot          string
	DefaultDrivers int
	MaxDrivers     int
	Logger         *zap.Logger
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	networkHandler := &handlers.NetworkHandler{
		Repo:   d.Repo,
		Depot:  d.Depot,
		Logger: logger,
	}
	planHandler := &handlers.PlanHandler{
		Service:        d.Plans,
		DefaultDepot:   d.Depot,
		DefaultDrivers: d.DefaultDrivers,
		MaxDrivers:     d.MaxDrivers,
		Logger:         logger,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/health", handlers.Health)
	r.Get("/network", networkHandler.Get)
	r.Put("/network", networkHandler.Put)
	r.Post("/plans", planHandler.Plan)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return r
}
