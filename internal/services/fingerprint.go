package services

import (
	"fmt"
	"route-optimizer-service/internal/domain"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint derives a stable cache key from everything that influences an
// optimisation result. Input order is part of the key because clustering
// depends on it.
func Fingerprint(n domain.Network, drivers int, depot string) string {
	h := xxhash.New()

	write := func(parts ...string) {
		for _, p := range parts {
			_, _ = h.WriteString(strconv.Quote(p))
			_, _ = h.WriteString(",")
		}
		_, _ = h.WriteString("\n")
	}
	num := func(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

	write("depot", depot, "drivers", strconv.Itoa(drivers))
	for _, p := range n.Points {
		write("p", p.ID, num(p.X), num(p.Y))
	}
	for _, e := range n.Edges {
		write("e", e.From, e.To, num(e.Weight))
	}
	for _, o := range n.Orders {
		write("o", o.Destination)
	}

	return fmt.Sprintf("plan:%016x", h.Sum64())
}
