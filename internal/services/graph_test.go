package services

import (
	"route-optimizer-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGraphIsSymmetric(t *testing.T) {
	n := sampleNetwork()
	g := BuildGraph(n.Points, n.Edges)

	require.Equal(t, len(n.Points), g.Len())
	for _, e := range n.Edges {
		ab, ok := g.Weight(e.From, e.To)
		require.True(t, ok, "%s->%s", e.From, e.To)
		ba, ok := g.Weight(e.To, e.From)
		require.True(t, ok, "%s->%s", e.To, e.From)
		assert.Equal(t, e.Weight, ab)
		assert.Equal(t, ab, ba)
	}
}

func TestBuildGraphKeepsIsolatedPoints(t *testing.T) {
	g := BuildGraph(
		[]domain.Point{pt("depot", 0, 0), pt("A", 1, 1), pt("lonely", 5, 5)},
		[]domain.Edge{{From: "depot", To: "A", Weight: 2}},
	)

	assert.True(t, g.Has("lonely"))
	assert.Empty(t, g.Neighbors("lonely"))
	assert.Equal(t, map[string]float64{}, g.Adjacency()["lonely"])
	assert.Equal(t, []string{"depot", "A", "lonely"}, g.Nodes())
}

func TestBuildGraphLaterEdgeOverwrites(t *testing.T) {
	g := BuildGraph(
		[]domain.Point{pt("a", 0, 0), pt("b", 1, 0)},
		[]domain.Edge{
			{From: "a", To: "b", Weight: 9},
			{From: "b", To: "a", Weight: 4},
		},
	)

	w, ok := g.Weight("a", "b")
	require.True(t, ok)
	assert.Equal(t, 4.0, w)
	assert.Len(t, g.Neighbors("a"), 1)
}

func TestGraphPathCost(t *testing.T) {
	n := sampleNetwork()
	g := BuildGraph(n.Points, n.Edges)

	cost, ok := g.PathCost([]string{"depot", "Cliente A", "Cliente C", "depot"})
	assert.False(t, ok, "Cliente C is not adjacent to depot")
	assert.Zero(t, cost)

	cost, ok = g.PathCost([]string{"depot", "Cliente A", "Cliente C", "Cliente A", "depot"})
	require.True(t, ok)
	assert.Equal(t, 154.0, cost)

	cost, ok = g.PathCost([]string{"depot"})
	require.True(t, ok)
	assert.Zero(t, cost)
}
