package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

// Statements used to replace a stored network. Only the placeholder
// syntax differs between SQLite and Postgres.
type networkStatements struct {
	insertPoint string
	insertEdge  string
	insertOrder string
}

// readNetwork loads all three tables ordered by insertion position.
// An empty points, edges and orders set reports ports.ErrNotFound.
func readNetwork(ctx context.Context, db *sql.DB) (domain.Network, error) {
	var n domain.Network

	rows, err := db.QueryContext(ctx, `
	SELECT id, x, y
	FROM points
	ORDER BY position;
	`)
	if err != nil {
		return domain.Network{}, fmt.Errorf("query points table: %w", err)
	}
	for rows.Next() {
		var p domain.Point
		if err := rows.Scan(&p.ID, &p.X, &p.Y); err != nil {
			rows.Close()
			return domain.Network{}, fmt.Errorf("scan point row: %w", err)
		}
		n.Points = append(n.Points, p)
	}
	if err := closeRows(rows); err != nil {
		return domain.Network{}, fmt.Errorf("points row iteration: %w", err)
	}

	rows, err = db.QueryContext(ctx, `
	SELECT origin, destination, weight
	FROM edges
	ORDER BY position;
	`)
	if err != nil {
		return domain.Network{}, fmt.Errorf("query edges table: %w", err)
	}
	for rows.Next() {
		var e domain.Edge
		if err := rows.Scan(&e.From, &e.To, &e.Weight); err != nil {
			rows.Close()
			return domain.Network{}, fmt.Errorf("scan edge row: %w", err)
		}
		n.Edges = append(n.Edges, e)
	}
	if err := closeRows(rows); err != nil {
		return domain.Network{}, fmt.Errorf("edges row iteration: %w", err)
	}

	rows, err = db.QueryContext(ctx, `
	SELECT destination
	FROM orders
	ORDER BY position;
	`)
	if err != nil {
		return domain.Network{}, fmt.Errorf("query orders table: %w", err)
	}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.Destination); err != nil {
			rows.Close()
			return domain.Network{}, fmt.Errorf("scan order row: %w", err)
		}
		n.Orders = append(n.Orders, o)
	}
	if err := closeRows(rows); err != nil {
		return domain.Network{}, fmt.Errorf("orders row iteration: %w", err)
	}

	if len(n.Points) == 0 && len(n.Edges) == 0 && len(n.Orders) == 0 {
		return domain.Network{}, ports.ErrNotFound
	}
	return n, nil
}

func closeRows(rows *sql.Rows) error {
	err := rows.Err()
	if cerr := rows.Close(); err == nil {
		err = cerr
	}
	return err
}

// writeNetwork replaces the stored network inside a single transaction.
func writeNetwork(ctx context.Context, db *sql.DB, stmts networkStatements, n domain.Network) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"points", "edges", "orders"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s table: %w", table, err)
		}
	}

	for i, p := range n.Points {
		if _, err := tx.ExecContext(ctx, stmts.insertPoint, p.ID, p.X, p.Y, i); err != nil {
			return fmt.Errorf("insert point id=%q: %w", p.ID, err)
		}
	}
	for i, e := range n.Edges {
		if _, err := tx.ExecContext(ctx, stmts.insertEdge, i, e.From, e.To, e.Weight); err != nil {
			return fmt.Errorf("insert edge %q->%q: %w", e.From, e.To, err)
		}
	}
	for i, o := range n.Orders {
		if _, err := tx.ExecContext(ctx, stmts.insertOrder, i, o.Destination); err != nil {
			return fmt.Errorf("insert order #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("db commit: %w", err)
	}
	return nil
}
