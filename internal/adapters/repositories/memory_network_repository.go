package repositories

import (
	"context"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
	"sync"
)

// In-memory implementation of the NetworkRepository port.
// Backs tests and short-lived tools that need no persistence.
type MemoryNetworkRepository struct {
	mu      sync.RWMutex
	network *domain.Network
}

func NewMemoryNetworkRepository(initial *domain.Network) *MemoryNetworkRepository {
	r := &MemoryNetworkRepository{}
	if initial != nil {
		n := cloneNetwork(*initial)
		r.network = &n
	}
	return r
}

func (m *MemoryNetworkRepository) LoadNetwork(ctx context.Context) (domain.Network, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.network == nil {
		return domain.Network{}, ports.ErrNotFound
	}
	return cloneNetwork(*m.network), nil
}

func (m *MemoryNetworkRepository) SaveNetwork(ctx context.Context, n domain.Network) error {
	c := cloneNetwork(n)

	m.mu.Lock()
	m.network = &c
	m.mu.Unlock()

	return nil
}

func cloneNetwork(n domain.Network) domain.Network {
	return domain.Network{
		Points: append([]domain.Point(nil), n.Points...),
		Edges:  append([]domain.Edge(nil), n.Edges...),
		Orders: append([]domain.Order(nil), n.Orders...),
	}
}
