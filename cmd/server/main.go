package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"route-optimizer-service/internal/adapters/cache"
	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/adapters/source"
	"route-optimizer-service/internal/api"
	"route-optimizer-service/internal/config"
	"route-optimizer-service/internal/metrics"
	"route-optimizer-service/internal/platform/db"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, Redis) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := obs.NewLogger(cfg.Environment)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	dsn := cfg.DBPath
	if cfg.DBDriver == "postgres" {
		dsn = cfg.DatabaseURL
	}
	database, err := db.Open(ctx, cfg.DBDriver, dsn)
	if err != nil {
		return err
	}
	defer database.Close()

	repo, err := openRepository(ctx, cfg, database, logger)
	if err != nil {
		return err
	}

	// Initialize schema and seed demo data on startup for local runs.
	if err := seedNetwork(ctx, cfg, repo, logger); err != nil {
		return err
	}

	planCache, closeCache, err := openPlanCache(ctx, cfg, database, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	metrics.RegisterDefault()
	optimizer := services.NewOptimizer(
		services.WithDepot(cfg.DepotID),
		services.WithWorkers(cfg.SequencerWorkers),
		services.WithLogger(logger),
		services.WithMetrics(metrics.NewEngine(metrics.Registry)),
	)
	plans := services.NewPlanService(repo, planCache, optimizer, logger)

	router := api.NewRouter(api.Deps{
		Repo:           repo,
		Plans:          plans,
		Depot:          cfg.DepotID,
		DefaultDrivers: cfg.DefaultDrivers,
		MaxDrivers:     cfg.MaxDrivers,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("db_driver", cfg.DBDriver))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openRepository(ctx context.Context, cfg config.Config, database *sql.DB, logger *zap.Logger) (ports.NetworkRepository, error) {
	if cfg.DBDriver == "postgres" {
		if err := repositories.InitPostgresSchema(ctx, database); err != nil {
			return nil, err
		}
		return repositories.NewSQLNetworkRepository(database, logger), nil
	}

	if err := repositories.InitSchema(database); err != nil {
		return nil, err
	}
	return repositories.NewSqliteNetworkRepository(database, logger), nil
}

// seedNetwork stores the remote dataset when DATASET_URL is set, and the
// seed file otherwise. The seed file never overwrites a stored network.
func seedNetwork(ctx context.Context, cfg config.Config, repo ports.NetworkRepository, logger *zap.Logger) error {
	if cfg.DatasetURL != "" {
		src, err := source.NewHTTPNetworkSource(cfg.DatasetURL, cfg.DatasetToken, logger)
		if err != nil {
			return fmt.Errorf("seed network: %w", err)
		}
		n, err := src.FetchNetwork(ctx)
		if err != nil {
			return fmt.Errorf("seed network: %w", err)
		}
		if err := n.Validate(cfg.DepotID); err != nil {
			return fmt.Errorf("seed network: %w", err)
		}
		return repo.SaveNetwork(ctx, n)
	}

	seeded, err := repositories.SeedFromFile(ctx, repo, cfg.SeedPath)
	if err != nil {
		return err
	}
	if seeded {
		logger.Info("network seeded", zap.String("path", cfg.SeedPath))
	}
	return nil
}

func openPlanCache(ctx context.Context, cfg config.Config, database *sql.DB, logger *zap.Logger) (ports.PlanCache, func(), error) {
	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return cache.NewRedisPlanCache(client, cfg.PlanCacheTTL, logger), func() { _ = client.Close() }, nil
	}

	if cfg.DBDriver == "postgres" {
		return cache.NewSQLPlanCache(database, cfg.PlanCacheTTL, logger), func() {}, nil
	}
	return cache.NewSqlitePlanCache(database, cfg.PlanCacheTTL), func() {}, nil
}
