package loader

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVDirSourceReadsOriginalExports(t *testing.T) {
	n, err := CSVDirSource{Dir: "testdata/csv"}.FetchNetwork(context.Background())
	require.NoError(t, err)

	require.Len(t, n.Points, 8)
	require.Len(t, n.Edges, 10)
	require.Len(t, n.Orders, 6)

	assert.Equal(t, "depot", n.Points[0].ID)
	assert.Equal(t, 15.0, n.Points[1].X)
	assert.Equal(t, 80.0, n.Points[1].Y)
	assert.Equal(t, "Cliente C", n.Edges[3].To)
	assert.Equal(t, 42.0, n.Edges[3].Weight)
	assert.Equal(t, "Cliente G", n.Orders[5].Destination)

	require.NoError(t, n.Validate("depot"))
}

func TestParseCSVEnglishHeadersAndReorderedColumns(t *testing.T) {
	points := "y,id,x\n2,depot,1\n4, A ,3\n\n"
	edges := "weight,from,to\n5,depot,A\n"
	orders := "destination\nA\n"

	n, err := ParseCSV(strings.NewReader(points), strings.NewReader(edges), strings.NewReader(orders))
	require.NoError(t, err)

	require.Len(t, n.Points, 2)
	assert.Equal(t, "A", n.Points[1].ID)
	assert.Equal(t, 3.0, n.Points[1].X)
	assert.Equal(t, 4.0, n.Points[1].Y)
	assert.Equal(t, 5.0, n.Edges[0].Weight)
}

func TestParseCSVRejectsBadRows(t *testing.T) {
	okPoints := "ponto,coord_x,coord_y\ndepot,0,0\n"
	okEdges := "origem,destino,peso\n"
	okOrders := "ponto_entrega\n"

	tests := []struct {
		name    string
		points  string
		edges   string
		orders  string
		wantErr string
	}{
		{"bad coordinate", "ponto,coord_x,coord_y\ndepot,abc,0\n", okEdges, okOrders, "line 2: x: invalid number"},
		{"missing column", "ponto,coord_x\ndepot,1\n", okEdges, okOrders, `missing column "y"`},
		{"bad weight", okPoints, "origem,destino,peso\ndepot,A,NaN\n", okOrders, "line 2: weight"},
		{"negative weight", okPoints, "origem,destino,peso\ndepot,A,-3\n", okOrders, "weight cannot be negative"},
		{"empty point id", "ponto,coord_x,coord_y\n,1,2\n", okEdges, okOrders, "id cannot be empty"},
		{"no header", "", okEdges, okOrders, "missing header row"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(tt.points), strings.NewReader(tt.edges), strings.NewReader(tt.orders))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCSVDirSourceMissingFiles(t *testing.T) {
	_, err := CSVDirSource{Dir: t.TempDir()}.FetchNetwork(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pontos.csv")
}
