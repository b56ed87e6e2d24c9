package ports

import (
	"context"
	"route-optimizer-service/internal/domain"
)

// Contract for ingestion collaborators that produce a network from an
// external format or location (files, remote endpoints).
type NetworkSource interface {
	FetchNetwork(ctx context.Context) (domain.Network, error)
}
