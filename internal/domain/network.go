package domain

import (
	"errors"
	"fmt"
)

// Network bundles the inputs of one optimisation: the point set, the edge
// list and the orders to deliver. Slice order is meaningful; clustering
// tie-breaks follow the order of Orders.
type Network struct {
	Points []Point `json:"points" yaml:"points"`
	Edges  []Edge  `json:"edges" yaml:"edges"`
	Orders []Order `json:"orders" yaml:"orders"`
}

// CoordinateIndex maps point identifiers to their coordinates.
func (n Network) CoordinateIndex() map[string]Coordinates {
	idx := make(map[string]Coordinates, len(n.Points))
	for _, p := range n.Points {
		idx[p.ID] = p.Coordinates
	}
	return idx
}

// ReferentialIntegrityError reports a reference to a point that is not part
// of the network.
type ReferentialIntegrityError struct {
	Kind string // "edge", "order", "depot" or "point"
	Ref  string // position or field of the offending reference
	ID   string
}

func (e *ReferentialIntegrityError) Error() string {
	if e.Kind == "point" {
		return fmt.Sprintf("referential integrity: duplicate point %q at %s", e.ID, e.Ref)
	}
	return fmt.Sprintf("referential integrity: %s %s references unknown point %q", e.Kind, e.Ref, e.ID)
}

// Validate checks that point identifiers are unique and that every edge,
// order and the depot reference an existing point. All problems are
// reported together.
func (n Network) Validate(depot string) error {
	var errs []error

	known := make(map[string]struct{}, len(n.Points))
	for i, p := range n.Points {
		if !p.Finite() {
			errs = append(errs, fmt.Errorf("point #%d %q: coordinates must be finite, got (%v, %v)", i+1, p.ID, p.X, p.Y))
		}
		if _, dup := known[p.ID]; dup {
			errs = append(errs, &ReferentialIntegrityError{Kind: "point", Ref: fmt.Sprintf("#%d", i+1), ID: p.ID})
			continue
		}
		known[p.ID] = struct{}{}
	}

	if _, ok := known[depot]; !ok {
		errs = append(errs, &ReferentialIntegrityError{Kind: "depot", Ref: "id", ID: depot})
	}

	for i, e := range n.Edges {
		for _, id := range []string{e.From, e.To} {
			if _, ok := known[id]; !ok {
				errs = append(errs, &ReferentialIntegrityError{Kind: "edge", Ref: fmt.Sprintf("#%d", i+1), ID: id})
			}
		}
		if !e.ValidWeight() {
			errs = append(errs, fmt.Errorf("edge #%d %q-%q: weight must be a finite non-negative number, got %v", i+1, e.From, e.To, e.Weight))
		}
	}

	for i, o := range n.Orders {
		if _, ok := known[o.Destination]; !ok {
			errs = append(errs, &ReferentialIntegrityError{Kind: "order", Ref: fmt.Sprintf("#%d", i+1), ID: o.Destination})
		}
	}

	return errors.Join(errs...)
}
