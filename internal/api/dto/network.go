package dto

import "route-optimizer-service/internal/domain"

type PointPayload struct {
	ID string  `json:"id" validate:"required,max=200"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type EdgePayload struct {
	From   string  `json:"from" validate:"required"`
	To     string  `json:"to" validate:"required"`
	Weight float64 `json:"weight" validate:"gte=0"`
}

type OrderPayload struct {
	Destination string `json:"destination" validate:"required"`
}

// NetworkPayload is the wire form of a delivery network, used both as the
// PUT /network body and as an inline network in plan requests.
type NetworkPayload struct {
	Points []PointPayload `json:"points" validate:"required,min=1,dive"`
	Edges  []EdgePayload  `json:"edges" validate:"dive"`
	Orders []OrderPayload `json:"orders" validate:"dive"`
}

func (p NetworkPayload) ToDomain() domain.Network {
	n := domain.Network{
		Points: make([]domain.Point, 0, len(p.Points)),
		Edges:  make([]domain.Edge, 0, len(p.Edges)),
		Orders: make([]domain.Order, 0, len(p.Orders)),
	}
	for _, pt := range p.Points {
		n.Points = append(n.Points, domain.Point{ID: pt.ID, Coordinates: domain.Coordinates{X: pt.X, Y: pt.Y}})
	}
	for _, e := range p.Edges {
		n.Edges = append(n.Edges, domain.Edge{From: e.From, To: e.To, Weight: e.Weight})
	}
	for _, o := range p.Orders {
		n.Orders = append(n.Orders, domain.Order{Destination: o.Destination})
	}
	return n
}

func NetworkFromDomain(n domain.Network) NetworkPayload {
	p := NetworkPayload{
		Points: make([]PointPayload, 0, len(n.Points)),
		Edges:  make([]EdgePayload, 0, len(n.Edges)),
		Orders: make([]OrderPayload, 0, len(n.Orders)),
	}
	for _, pt := range n.Points {
		p.Points = append(p.Points, PointPayload{ID: pt.ID, X: pt.X, Y: pt.Y})
	}
	for _, e := range n.Edges {
		p.Edges = append(p.Edges, EdgePayload{From: e.From, To: e.To, Weight: e.Weight})
	}
	for _, o := range n.Orders {
		p.Orders = append(p.Orders, OrderPayload{Destination: o.Destination})
	}
	return p
}
