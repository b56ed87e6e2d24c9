package services

import (
	"route-optimizer-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintStableAndSensitive(t *testing.T) {
	n := sampleNetwork()
	base := Fingerprint(n, 3, "depot")

	assert.Equal(t, base, Fingerprint(sampleNetwork(), 3, "depot"))
	assert.Regexp(t, `^plan:[0-9a-f]{16}$`, base)

	assert.NotEqual(t, base, Fingerprint(n, 2, "depot"))
	assert.NotEqual(t, base, Fingerprint(n, 3, "Cliente A"))

	moved := sampleNetwork()
	moved.Points[1].X += 0.5
	assert.NotEqual(t, base, Fingerprint(moved, 3, "depot"))

	reordered := sampleNetwork()
	reordered.Orders[0], reordered.Orders[1] = reordered.Orders[1], reordered.Orders[0]
	assert.NotEqual(t, base, Fingerprint(reordered, 3, "depot"))

	reweighted := sampleNetwork()
	reweighted.Edges = append(reweighted.Edges, domain.Edge{From: "depot", To: "Cliente G", Weight: 1})
	assert.NotEqual(t, base, Fingerprint(reweighted, 3, "depot"))
}
