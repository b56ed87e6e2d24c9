package domain

// DefaultDepotID names the point every driver route starts and ends at.
const DefaultDepotID = "depot"

// Represents a named location of the delivery network.
// Identifiers are unique within a Network.
type Point struct {
	ID          string `json:"id" yaml:"id"`
	Coordinates `yaml:",inline"`
}

// Represents an undirected, weighted connection between two points.
// Weight is a travel cost and need not match the Euclidean distance.
type Edge struct {
	From   string  `json:"from" yaml:"from"`
	To     string  `json:"to" yaml:"to"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// ValidWeight reports whether the weight is a finite, non-negative number.
func (e Edge) ValidWeight() bool { return finite(e.Weight) && e.Weight >= 0 }

// Represents a requested delivery to a single network point.
type Order struct {
	Destination string `json:"destination" yaml:"destination"`
}
