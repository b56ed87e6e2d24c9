package services

import (
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/metrics"
	"sync"
)

// PathFinder answers point-to-point shortest-path queries.
type PathFinder interface {
	ShortestPath(from, to string) (Path, bool)
}

// GraphPathFinder runs ShortestPath against a fixed graph and coordinate set.
// It holds no mutable state and is safe for concurrent use.
type GraphPathFinder struct {
	graph   *Graph
	coords  map[string]domain.Coordinates
	metrics *metrics.Engine
}

func NewPathFinder(g *Graph, coords map[string]domain.Coordinates, m *metrics.Engine) *GraphPathFinder {
	return &GraphPathFinder{graph: g, coords: coords, metrics: m}
}

func (p *GraphPathFinder) ShortestPath(from, to string) (Path, bool) {
	p.metrics.IncPathSearch()
	return ShortestPath(p.graph, p.coords, from, to)
}

type pathKey struct{ from, to string }

type cachedPath struct {
	path Path
	ok   bool
}

// CachedPathFinder memoises another PathFinder by origin/destination pair.
// The sequencer asks for the same pairs over and over while it grows a tour;
// the cache turns those repeats into map lookups. Unreachable pairs are
// cached too. Returned paths are shared and must not be modified.
type CachedPathFinder struct {
	next    PathFinder
	metrics *metrics.Engine

	mu    sync.RWMutex
	paths map[pathKey]cachedPath
}

func NewCachedPathFinder(next PathFinder, m *metrics.Engine) *CachedPathFinder {
	return &CachedPathFinder{
		next:    next,
		metrics: m,
		paths:   make(map[pathKey]cachedPath),
	}
}

func (c *CachedPathFinder) ShortestPath(from, to string) (Path, bool) {
	key := pathKey{from: from, to: to}

	c.mu.RLock()
	hit, ok := c.paths[key]
	c.mu.RUnlock()
	if ok {
		c.metrics.IncPathCacheHit()
		return hit.path, hit.ok
	}

	path, found := c.next.ShortestPath(from, to)

	c.mu.Lock()
	c.paths[key] = cachedPath{path: path, ok: found}
	c.mu.Unlock()

	return path, found
}

// Len returns the number of cached pairs.
func (c *CachedPathFinder) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.paths)
}
