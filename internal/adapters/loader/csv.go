package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"route-optimizer-service/internal/domain"
	"strconv"
	"strings"
)

// Column aliases accepted in CSV headers, Portuguese names first.
var (
	pointColumns = map[string][]string{
		"id": {"ponto", "id", "point"},
		"x":  {"coord_x", "x"},
		"y":  {"coord_y", "y"},
	}
	edgeColumns = map[string][]string{
		"from":   {"origem", "from", "origin"},
		"to":     {"destino", "to", "destination"},
		"weight": {"peso", "weight", "cost"},
	}
	orderColumns = map[string][]string{
		"destination": {"ponto_entrega", "destination", "point"},
	}
)

// File names probed by CSVDirSource, in preference order.
var (
	pointFiles = []string{"pontos.csv", "points.csv"}
	edgeFiles  = []string{"rotas.csv", "edges.csv"}
	orderFiles = []string{"pedidos.csv", "orders.csv"}
)

// ParseCSV reads the three CSV tables of a network. A single malformed row
// rejects the whole table.
func ParseCSV(points, edges, orders io.Reader) (domain.Network, error) {
	var n domain.Network

	err := readTable(points, pointColumns, func(line int, row map[string]string) error {
		x, err := parseFloat(row["x"])
		if err != nil {
			return fmt.Errorf("x: %w", err)
		}
		y, err := parseFloat(row["y"])
		if err != nil {
			return fmt.Errorf("y: %w", err)
		}
		n.Points = append(n.Points, domain.Point{ID: row["id"], Coordinates: domain.Coordinates{X: x, Y: y}})
		return nil
	})
	if err != nil {
		return domain.Network{}, fmt.Errorf("parse points: %w", err)
	}

	err = readTable(edges, edgeColumns, func(line int, row map[string]string) error {
		w, err := parseFloat(row["weight"])
		if err != nil {
			return fmt.Errorf("weight: %w", err)
		}
		n.Edges = append(n.Edges, domain.Edge{From: row["from"], To: row["to"], Weight: w})
		return nil
	})
	if err != nil {
		return domain.Network{}, fmt.Errorf("parse edges: %w", err)
	}

	err = readTable(orders, orderColumns, func(line int, row map[string]string) error {
		n.Orders = append(n.Orders, domain.Order{Destination: row["destination"]})
		return nil
	})
	if err != nil {
		return domain.Network{}, fmt.Errorf("parse orders: %w", err)
	}

	if err := normalize(&n); err != nil {
		return domain.Network{}, err
	}
	return n, nil
}

func readTable(r io.Reader, columns map[string][]string, emit func(line int, row map[string]string) error) error {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("missing header row")
		}
		return fmt.Errorf("read header: %w", err)
	}

	pos, err := resolveColumns(header, columns)
	if err != nil {
		return err
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if isBlank(rec) {
			continue
		}

		row := make(map[string]string, len(pos))
		for name, i := range pos {
			if i >= len(rec) {
				return fmt.Errorf("line %d: missing column %q", line, name)
			}
			row[name] = strings.TrimSpace(rec[i])
		}
		if err := emit(line, row); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
}

func resolveColumns(header []string, columns map[string][]string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	pos := make(map[string]int, len(columns))
	for name, aliases := range columns {
		found := false
		for _, a := range aliases {
			if i, ok := index[a]; ok {
				pos[name] = i
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("header: missing column %q (accepted: %s)", name, strings.Join(aliases, ", "))
		}
	}
	return pos, nil
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return f, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// CSVDirSource is a NetworkSource reading pontos.csv, rotas.csv and
// pedidos.csv (or points.csv, edges.csv, orders.csv) from a directory.
type CSVDirSource struct {
	Dir string
}

func (c CSVDirSource) FetchNetwork(ctx context.Context) (domain.Network, error) {
	if err := ctx.Err(); err != nil {
		return domain.Network{}, err
	}

	files := make([]*os.File, 0, 3)
	defer func() {
		for _, f := range files {
			_ = f.Close()
		}
	}()

	for _, names := range [][]string{pointFiles, edgeFiles, orderFiles} {
		f, err := openFirst(c.Dir, names)
		if err != nil {
			return domain.Network{}, fmt.Errorf("csv source: %w", err)
		}
		files = append(files, f)
	}

	n, err := ParseCSV(files[0], files[1], files[2])
	if err != nil {
		return domain.Network{}, fmt.Errorf("csv source %q: %w", c.Dir, err)
	}
	return n, nil
}

func openFirst(dir string, names []string) (*os.File, error) {
	for _, name := range names {
		f, err := os.Open(filepath.Join(dir, name))
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("open %q: %w", name, err)
		}
	}
	return nil, fmt.Errorf("none of %s found in %q", strings.Join(names, ", "), dir)
}
