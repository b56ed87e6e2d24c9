package ports

import (
	"context"
	"errors"
	"route-optimizer-service/internal/domain"
)

// ErrNotFound is returned when a repository holds no network.
var ErrNotFound = errors.New("not found")

// Port: a boundary for storing and retrieving the delivery network.
type NetworkRepository interface {
	// Return the stored points, edges and orders in their stored order.
	LoadNetwork(ctx context.Context) (domain.Network, error)
	// Replace the stored network with n.
	SaveNetwork(ctx context.Context, n domain.Network) error
}
