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

var postgresNetworkStatements = networkStatements{
	insertPoint: `INSERT INTO points (id, x, y, position) VALUES ($1, $2, $3, $4);`,
	insertEdge:  `INSERT INTO edges (position, origin, destination, weight) VALUES ($1, $2, $3, $4);`,
	insertOrder: `INSERT INTO orders (position, destination) VALUES ($1, $2);`,
}

// SQLNetworkRepository is a Postgres-backed NetworkRepository.
type SQLNetworkRepository struct {
	DB     *sql.DB
	Logger *zap.Logger
}

func NewSQLNetworkRepository(db *sql.DB, logger *zap.Logger) *SQLNetworkRepository {
	return &SQLNetworkRepository{DB: db, Logger: logger}
}

func (s *SQLNetworkRepository) LoadNetwork(ctx context.Context) (_ domain.Network, err error) {
	defer obs.Time(ctx, s.Logger, "network.sql.Load")(&err)

	if s.DB == nil {
		return domain.Network{}, errors.New("sql network repository: db is nil")
	}

	n, err := readNetwork(ctx, s.DB)
	if err != nil {
		return domain.Network{}, fmt.Errorf("load network: %w", err)
	}
	return n, nil
}

func (s *SQLNetworkRepository) SaveNetwork(ctx context.Context, n domain.Network) (err error) {
	defer obs.Time(ctx, s.Logger, "network.sql.Save")(&err)

	if s.DB == nil {
		return errors.New("sql network repository: db is nil")
	}

	if err := writeNetwork(ctx, s.DB, postgresNetworkStatements, n); err != nil {
		return fmt.Errorf("save network: %w", err)
	}
	return nil
}
