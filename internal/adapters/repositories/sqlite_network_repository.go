package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"

	"go.uber.org/zap"
)

var sqliteNetworkStatements = networkStatements{
	insertPoint: `INSERT INTO points (id, x, y, position) VALUES (?, ?, ?, ?);`,
	insertEdge:  `INSERT INTO edges (position, origin, destination, weight) VALUES (?, ?, ?, ?);`,
	insertOrder: `INSERT INTO orders (position, destination) VALUES (?, ?);`,
}

// SQLite-backed implementation of the NetworkRepository port.
type SqliteNetworkRepository struct {
	DB     *sql.DB
	Logger *zap.Logger
}

func NewSqliteNetworkRepository(db *sql.DB, logger *zap.Logger) *SqliteNetworkRepository {
	return &SqliteNetworkRepository{DB: db, Logger: logger}
}

// Return the stored network, or ports.ErrNotFound when nothing was saved.
func (s *SqliteNetworkRepository) LoadNetwork(ctx context.Context) (_ domain.Network, err error) {
	defer obs.Time(ctx, s.Logger, "network.sqlite.Load")(&err)

	if s.DB == nil {
		return domain.Network{}, errors.New("sqlite network repository: DB is nil")
	}

	n, err := readNetwork(ctx, s.DB)
	if err != nil {
		return domain.Network{}, fmt.Errorf("load network: %w", err)
	}
	return n, nil
}

// Replace the stored network.
func (s *SqliteNetworkRepository) SaveNetwork(ctx context.Context, n domain.Network) (err error) {
	defer obs.Time(ctx, s.Logger, "network.sqlite.Save")(&err)

	if s.DB == nil {
		return errors.New("sqlite network repository: DB is nil")
	}

	if err := writeNetwork(ctx, s.DB, sqliteNetworkStatements, n); err != nil {
		return fmt.Errorf("save network: %w", err)
	}
	return nil
}
