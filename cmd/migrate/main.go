package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/culinary-compass/backend/config"
	"github.com/culinary-compass/backend/internal/database"
	"github.com/culinary-compass/backend/internal/logging"
)

func main() {
	dir := flag.String("dir", "", "migrations directory (defaults to database.migrations_dir)")
	wait := flag.Duration("wait", 30*time.Second, "how long to wait for postgres to accept connections")
	status := flag.Bool("status", false, "print recipe counts per embedding model after migrating")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	migrationsDir := cfg.Database.MigrationsDir
	if *dir != "" {
		migrationsDir = *dir
	}
	dsn := cfg.Database.ConnectionString()

	if cfg.Database.Driver == database.DriverPostgres {
		if err := waitForPostgres(dsn, *wait); err != nil {
			logging.Fatal().Err(err).Msg("database not reachable")
		}
	}

	db, err := database.Open(cfg.Database.Driver, dsn)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.RunMigrations(db, migrationsDir); err != nil {
		logging.Fatal().Err(err).Msg("migration failed")
	}
	logging.Info().Str("dir", migrationsDir).Msg("all migrations applied")

	if *status {
		counts, err := database.NewDatasetRepository(db).CountRecipes(context.Background())
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to count recipes")
		}
		for model, n := range counts {
			fmt.Printf("%s\t%d\n", model, n)
		}
	}
}

// waitForPostgres retries a lib/pq ping until it succeeds or timeout passes.
func waitForPostgres(dsn string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		db, err := database.NewSQL(dsn)
		if err == nil {
			return db.Close()
		}
		if time.Now().After(deadline) {
			return err
		}
		logging.Info().Err(err).Msg("waiting for database")
		time.Sleep(time.Second)
	}
}
