package services

import (
	"context"
	"errors"
	"fmt"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/metrics"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PlanRequest struct {
	Drivers int
	Depot   string
	// Network, when set, is optimised instead of the stored one.
	Network *domain.Network
}

// PlanService loads the network, consults the plan cache and runs the
// optimizer on a miss.
type PlanService struct {
	Repo      ports.NetworkRepository
	Cache     ports.PlanCache
	Optimizer *Optimizer
	Logger    *zap.Logger
	Now       func() time.Time
}

func NewPlanService(repo ports.NetworkRepository, cache ports.PlanCache, optimizer *Optimizer, logger *zap.Logger) *PlanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanService{
		Repo:      repo,
		Cache:     cache,
		Optimizer: optimizer,
		Logger:    logger,
		Now:       time.Now,
	}
}

func (s *PlanService) Plan(ctx context.Context, req PlanRequest) (_ domain.Plan, err error) {
	defer obs.Time(ctx, s.Logger, "plan.Plan")(&err)

	var network domain.Network
	if req.Network != nil {
		network = *req.Network
	} else {
		if s.Repo == nil {
			return domain.Plan{}, errors.New("plan: no network repository configured")
		}
		network, err = s.Repo.LoadNetwork(ctx)
		if err != nil {
			return domain.Plan{}, fmt.Errorf("plan: load network: %w", err)
		}
	}

	depot := req.Depot
	if depot == "" {
		depot = s.Optimizer.Depot()
	}

	key := Fingerprint(network, req.Drivers, depot)

	if s.Cache != nil {
		cached, ok, err := s.Cache.Get(ctx, key)
		switch {
		case err != nil:
			// A broken cache degrades to recomputing.
			metrics.PlanCacheLookups.WithLabelValues("error").Inc()
			s.Logger.Warn("plan cache lookup failed", zap.String("key", key), zap.Error(err))
		case ok:
			metrics.PlanCacheLookups.WithLabelValues("hit").Inc()
			cached.Cached = true
			return cached, nil
		default:
			metrics.PlanCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	routes, err := s.Optimizer.Optimize(ctx, OptimizeInput{
		Orders:  network.Orders,
		Drivers: req.Drivers,
		Points:  network.Points,
		Edges:   network.Edges,
		Depot:   depot,
	})
	if err != nil {
		return domain.Plan{}, fmt.Errorf("plan: %w", err)
	}

	plan := domain.Plan{
		ID:        uuid.NewString(),
		CreatedAt: s.Now().UTC(),
		Depot:     depot,
		Drivers:   req.Drivers,
		Routes:    routes,
	}
	for _, r := range routes {
		plan.TotalCost += r.TotalCost
	}

	if s.Cache != nil {
		if err := s.Cache.Put(ctx, key, plan); err != nil {
			s.Logger.Warn("plan cache store failed", zap.String("key", key), zap.Error(err))
		}
	}

	return plan, nil
}
