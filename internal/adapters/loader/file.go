package loader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"route-optimizer-service/internal/domain"
	"strings"

	"gopkg.in/yaml.v3"
)

// Decode reads a network document. JSON documents are accepted as well,
// being a subset of YAML.
func Decode(r io.Reader) (domain.Network, error) {
	var n domain.Network

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&n); err != nil {
		if err == io.EOF {
			return domain.Network{}, fmt.Errorf("decode network: empty document")
		}
		return domain.Network{}, fmt.Errorf("decode network: %w", err)
	}

	if err := normalize(&n); err != nil {
		return domain.Network{}, fmt.Errorf("decode network: %w", err)
	}
	return n, nil
}

// LoadFile reads a YAML or JSON network file.
func LoadFile(path string) (domain.Network, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Network{}, fmt.Errorf("load network file: read %q: %w", path, err)
	}

	n, err := Decode(bytes.NewReader(b))
	if err != nil {
		return domain.Network{}, fmt.Errorf("load network file %q: %w", path, err)
	}
	return n, nil
}

// FileSource is a NetworkSource backed by a YAML or JSON file.
type FileSource struct {
	Path string
}

func (f FileSource) FetchNetwork(ctx context.Context) (domain.Network, error) {
	if err := ctx.Err(); err != nil {
		return domain.Network{}, err
	}
	return LoadFile(f.Path)
}

// normalize trims identifiers and rejects blank ones, negative weights and
// non-finite numbers.
func normalize(n *domain.Network) error {
	for i := range n.Points {
		n.Points[i].ID = strings.TrimSpace(n.Points[i].ID)
		if n.Points[i].ID == "" {
			return fmt.Errorf("point #%d: id cannot be empty", i+1)
		}
		if !n.Points[i].Finite() {
			return fmt.Errorf("point #%d: coordinates must be finite", i+1)
		}
	}
	for i := range n.Edges {
		e := &n.Edges[i]
		e.From = strings.TrimSpace(e.From)
		e.To = strings.TrimSpace(e.To)
		if e.From == "" || e.To == "" {
			return fmt.Errorf("edge #%d: endpoints cannot be empty", i+1)
		}
		if !e.ValidWeight() {
			if e.Weight < 0 {
				return fmt.Errorf("edge #%d: weight cannot be negative", i+1)
			}
			return fmt.Errorf("edge #%d: weight must be finite", i+1)
		}
	}
	for i := range n.Orders {
		n.Orders[i].Destination = strings.TrimSpace(n.Orders[i].Destination)
		if n.Orders[i].Destination == "" {
			return fmt.Errorf("order #%d: destination cannot be empty", i+1)
		}
	}
	return nil
}
