package ports

import (
	"context"
	"route-optimizer-service/internal/domain"
)

// Contract for caching optimisation results by input fingerprint.
type PlanCache interface {
	// Return the cached plan for key; ok is false on a miss.
	Get(ctx context.Context, key string) (plan domain.Plan, ok bool, err error)
	// Store plan under key.
	Put(ctx context.Context, key string, plan domain.Plan) error
}
