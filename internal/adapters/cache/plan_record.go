package cache

import (
	"encoding/json"
	"fmt"
	"route-optimizer-service/internal/domain"
	"time"
)

// Stored form of a plan. Field names are part of the persisted format.
type planRecord struct {
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Depot     string        `json:"depot"`
	Drivers   int           `json:"drivers"`
	TotalCost float64       `json:"total_cost"`
	Routes    []routeRecord `json:"routes"`
}

type routeRecord struct {
	DriverIndex  int      `json:"driver_index"`
	ClusterIndex int      `json:"cluster_index"`
	Color        string   `json:"color"`
	Orders       []string `json:"orders"`
	Sequence     []string `json:"sequence"`
	TotalCost    float64  `json:"total_cost"`
	Unreached    []string `json:"unreached,omitempty"`
}

func encodePlan(p domain.Plan) ([]byte, error) {
	rec := planRecord{
		ID:        p.ID,
		CreatedAt: p.CreatedAt,
		Depot:     p.Depot,
		Drivers:   p.Drivers,
		TotalCost: p.TotalCost,
		Routes:    make([]routeRecord, 0, len(p.Routes)),
	}
	for _, r := range p.Routes {
		orders := make([]string, 0, len(r.Cluster.Orders))
		for _, o := range r.Cluster.Orders {
			orders = append(orders, o.Destination)
		}
		rec.Routes = append(rec.Routes, routeRecord{
			DriverIndex:  r.DriverIndex,
			ClusterIndex: r.Cluster.Index,
			Color:        r.Cluster.Color,
			Orders:       orders,
			Sequence:     r.Sequence,
			TotalCost:    r.TotalCost,
			Unreached:    r.Unreached,
		})
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}
	return b, nil
}

func decodePlan(b []byte) (domain.Plan, error) {
	var rec planRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return domain.Plan{}, fmt.Errorf("decode plan: %w", err)
	}

	p := domain.Plan{
		ID:        rec.ID,
		CreatedAt: rec.CreatedAt,
		Depot:     rec.Depot,
		Drivers:   rec.Drivers,
		TotalCost: rec.TotalCost,
		Routes:    make([]domain.OptimizedRoute, 0, len(rec.Routes)),
	}
	for _, r := range rec.Routes {
		orders := make([]domain.Order, 0, len(r.Orders))
		for _, d := range r.Orders {
			orders = append(orders, domain.Order{Destination: d})
		}
		p.Routes = append(p.Routes, domain.OptimizedRoute{
			DriverIndex: r.DriverIndex,
			Cluster:     domain.Cluster{Index: r.ClusterIndex, Orders: orders, Color: r.Color},
			Sequence:    r.Sequence,
			TotalCost:   r.TotalCost,
			Unreached:   r.Unreached,
		})
	}
	return p, nil
}
