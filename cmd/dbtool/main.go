package main

import (
	"context"
	"flag"
	"log"
	"route-optimizer-service/internal/adapters/loader"
	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/config"
	"route-optimizer-service/internal/platform/db"
	"route-optimizer-service/internal/ports"

	"github.com/joho/godotenv"
)

// dbtool initializes the schema and loads the seed network into the
// configured database.
func main() {
	force := flag.Bool("force", false, "replace a network that is already stored")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	dsn := cfg.DBPath
	if cfg.DBDriver == "postgres" {
		dsn = cfg.DatabaseURL
	}

	database, err := db.Open(ctx, cfg.DBDriver, dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	log.Println("Initializing database schema...")
	var repo ports.NetworkRepository
	if cfg.DBDriver == "postgres" {
		err = repositories.InitPostgresSchema(ctx, database)
		repo = repositories.NewSQLNetworkRepository(database, nil)
	} else {
		err = repositories.InitSchema(database)
		repo = repositories.NewSqliteNetworkRepository(database, nil)
	}
	if err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if *force {
		n, err := loader.LoadFile(cfg.SeedPath)
		if err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
		if err := repo.SaveNetwork(ctx, n); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
		log.Println("Seed network replaced.")
		return
	}

	log.Println("Seeding database...")
	seeded, err := repositories.SeedFromFile(ctx, repo, cfg.SeedPath)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	if !seeded {
		log.Println("Network already present, nothing to do (use -force to replace).")
		return
	}
	log.Println("Seeding complete.")
}
