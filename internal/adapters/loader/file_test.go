package loader

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileYAML(t *testing.T) {
	n, err := FileSource{Path: "testdata/network.yaml"}.FetchNetwork(context.Background())
	require.NoError(t, err)

	assert.Len(t, n.Points, 8)
	assert.Len(t, n.Edges, 10)
	assert.Len(t, n.Orders, 6)
	assert.Equal(t, "Cliente A", n.Points[1].ID)
	assert.Equal(t, 15.0, n.Points[1].X)
	require.NoError(t, n.Validate("depot"))
}

func TestLoadFileJSON(t *testing.T) {
	n, err := LoadFile("testdata/network.json")
	require.NoError(t, err)

	require.Len(t, n.Points, 2)
	assert.Equal(t, 3.0, n.Points[1].X)
	assert.Equal(t, 4.0, n.Points[1].Y)
	assert.Equal(t, 10.0, n.Edges[0].Weight)
	assert.Equal(t, "A", n.Orders[0].Destination)
}

func TestDecodeRejectsUnknownFieldsAndBlankIDs(t *testing.T) {
	_, err := Decode(strings.NewReader("points:\n  - {id: a, x: 1, y: 2, z: 3}\n"))
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("points:\n  - {id: '  ', x: 1, y: 2}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id cannot be empty")

	_, err = Decode(strings.NewReader(""))
	assert.Error(t, err)
}

func TestDecodeRejectsNonFiniteNumbers(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"nan weight", "points: [{id: depot, x: 0, y: 0}, {id: A, x: 1, y: 1}]\nedges:\n  - {from: depot, to: A, weight: .nan}\n", "weight must be finite"},
		{"infinite weight", "edges:\n  - {from: depot, to: A, weight: .inf}\n", "weight must be finite"},
		{"negative infinite weight", "edges:\n  - {from: depot, to: A, weight: -.inf}\n", "weight cannot be negative"},
		{"nan coordinate", "points: [{id: depot, x: .nan, y: 0}]\n", "coordinates must be finite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("testdata/nope.yaml")
	assert.Error(t, err)
}
