package services

import "route-optimizer-service/internal/domain"

// sampleNetwork is the depot plus seven clients used across the engine tests.
func sampleNetwork() domain.Network {
	return domain.Network{
		Points: []domain.Point{
			{ID: "depot", Coordinates: domain.Coordinates{X: 50, Y: 50}},
			{ID: "Cliente A", Coordinates: domain.Coordinates{X: 15, Y: 80}},
			{ID: "Cliente B", Coordinates: domain.Coordinates{X: 25, Y: 20}},
			{ID: "Cliente C", Coordinates: domain.Coordinates{X: 55, Y: 95}},
			{ID: "Cliente D", Coordinates: domain.Coordinates{X: 80, Y: 85}},
			{ID: "Cliente E", Coordinates: domain.Coordinates{X: 90, Y: 45}},
			{ID: "Cliente F", Coordinates: domain.Coordinates{X: 35, Y: 70}},
			{ID: "Cliente G", Coordinates: domain.Coordinates{X: 75, Y: 15}},
		},
		Edges: []domain.Edge{
			{From: "depot", To: "Cliente A", Weight: 35},
			{From: "depot", To: "Cliente F", Weight: 25},
			{From: "depot", To: "Cliente B", Weight: 38},
			{From: "Cliente A", To: "Cliente C", Weight: 42},
			{From: "Cliente A", To: "Cliente F", Weight: 30},
			{From: "Cliente B", To: "Cliente G", Weight: 20},
			{From: "Cliente B", To: "Cliente F", Weight: 35},
			{From: "Cliente C", To: "Cliente D", Weight: 28},
			{From: "Cliente D", To: "Cliente E", Weight: 42},
			{From: "Cliente E", To: "Cliente G", Weight: 25},
		},
		Orders: []domain.Order{
			{Destination: "Cliente A"},
			{Destination: "Cliente B"},
			{Destination: "Cliente C"},
			{Destination: "Cliente D"},
			{Destination: "Cliente E"},
			{Destination: "Cliente G"},
		},
	}
}

func orderCoordinates(n domain.Network) []domain.Coordinates {
	idx := n.CoordinateIndex()
	out := make([]domain.Coordinates, 0, len(n.Orders))
	for _, o := range n.Orders {
		out = append(out, idx[o.Destination])
	}
	return out
}

func pt(id string, x, y float64) domain.Point {
	return domain.Point{ID: id, Coordinates: domain.Coordinates{X: x, Y: y}}
}
