package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"route-optimizer-service/internal/adapters/loader"
	"route-optimizer-service/internal/ports"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPointsQuery := `
	CREATE TABLE IF NOT EXISTS points (
		id TEXT PRIMARY KEY,
		x REAL NOT NULL,
		y REAL NOT NULL,
		position INTEGER NOT NULL
	);
	`

	createEdgesQuery := `
	CREATE TABLE IF NOT EXISTS edges (
		position INTEGER PRIMARY KEY,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		weight REAL NOT NULL
	);
	`

	createOrdersQuery := `
	CREATE TABLE IF NOT EXISTS orders (
		position INTEGER PRIMARY KEY,
		destination TEXT NOT NULL
	);
	`

	createPlanCacheQuery := `
	CREATE TABLE IF NOT EXISTS plan_cache (
		cache_key TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_points_position
	ON points(position);
	`

	statements := []string{
		createPointsQuery,
		createEdgesQuery,
		createOrdersQuery,
		createPlanCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// SeedFromFile stores the network read from a YAML or JSON file, unless the
// repository already holds one. It reports whether the seed was written.
func SeedFromFile(ctx context.Context, repo ports.NetworkRepository, path string) (bool, error) {
	_, err := repo.LoadNetwork(ctx)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return false, fmt.Errorf("seed network: check existing: %w", err)
	}

	n, err := loader.LoadFile(path)
	if err != nil {
		return false, fmt.Errorf("seed network: %w", err)
	}

	if err := repo.SaveNetwork(ctx, n); err != nil {
		return false, fmt.Errorf("seed network: save: %w", err)
	}
	return true, nil
}
