package repositories

import (
	"context"
	"route-optimizer-service/internal/ports"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryNetworkRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryNetworkRepository(nil)

	_, err := repo.LoadNetwork(ctx)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	n := testNetwork()
	require.NoError(t, repo.SaveNetwork(ctx, n))

	// Stored copies are isolated from the caller's slices.
	n.Orders[0].Destination = "changed"
	got, err := repo.LoadNetwork(ctx)
	require.NoError(t, err)
	assert.Equal(t, "B", got.Orders[0].Destination)

	got.Points[0].ID = "changed"
	again, err := repo.LoadNetwork(ctx)
	require.NoError(t, err)
	assert.Equal(t, "depot", again.Points[0].ID)
}
