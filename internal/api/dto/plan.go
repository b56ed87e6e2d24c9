package dto

import (
	"route-optimizer-service/internal/domain"
	"time"
)

type PlanRequest struct {
	Drivers int             `json:"drivers" validate:"gte=0"`
	Depot   string          `json:"depot" validate:"max=200"`
	Network *NetworkPayload `json:"network"`
}

type RouteResponse struct {
	Driver    int      `json:"driver"`
	Color     string   `json:"color"`
	Orders    []string `json:"orders"`
	Sequence  []string `json:"sequence"`
	TotalCost float64  `json:"total_cost"`
	Complete  bool     `json:"complete"`
	Unreached []string `json:"unreached"`
}

type PlanResponse struct {
	PlanID    string          `json:"plan_id"`
	CreatedAt time.Time       `json:"created_at"`
	Cached    bool            `json:"cached"`
	Depot     string          `json:"depot"`
	Drivers   int             `json:"drivers"`
	TotalCost float64         `json:"total_cost"`
	Routes    []RouteResponse `json:"routes"`
}

func PlanFromDomain(p domain.Plan) PlanResponse {
	res := PlanResponse{
		PlanID:    p.ID,
		CreatedAt: p.CreatedAt,
		Cached:    p.Cached,
		Depot:     p.Depot,
		Drivers:   p.Drivers,
		TotalCost: p.TotalCost,
		Routes:    make([]RouteResponse, 0, len(p.Routes)),
	}
	for _, r := range p.Routes {
		orders := make([]string, 0, len(r.Cluster.Orders))
		for _, o := range r.Cluster.Orders {
			orders = append(orders, o.Destination)
		}
		unreached := r.Unreached
		if unreached == nil {
			unreached = []string{}
		}
		res.Routes = append(res.Routes, RouteResponse{
			Driver:    r.DriverIndex,
			Color:     r.Cluster.Color,
			Orders:    orders,
			Sequence:  r.Sequence,
			TotalCost: r.TotalCost,
			Complete:  r.Complete(),
			Unreached: unreached,
		})
	}
	return res
}
