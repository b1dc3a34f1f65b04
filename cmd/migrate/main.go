package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/silis/backend/internal/config"
	"github.com/silis/backend/internal/logging"
	"github.com/silis/backend/internal/repository"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

PostgreSQL commands:
  (default)   apply pending migrations
  down        roll back the most recently applied migration
  reset       drop every table and recreate it from the consolidated schema
  fresh       drop every table and apply all migrations in order

MongoDB has no schema; every command only ensures the collection indexes.`)
	os.Exit(1)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO")
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	switch cmd {
	case "", "down", "reset", "fresh":
	default:
		usage()
	}

	backend, err := cfg.Backend()
	if err != nil {
		logging.Fatal("unsupported database", "error", err)
	}

	ctx := context.Background()
	switch backend {
	case config.BackendMemory:
		slog.Info("in-memory storage needs no migrations")
	case config.BackendMongo:
		runMongoIndexes(ctx, cfg)
	case config.BackendPostgres:
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logging.Fatal("connect failed", "error", err)
		}
		defer pool.Close()

		migrationDir := findMigrationDir()
		switch cmd {
		case "":
			runIncremental(ctx, pool, migrationDir)
		case "down":
			runDown(ctx, pool, migrationDir)
		case "reset":
			runDropAll(ctx, pool, migrationDir)
			runConsolidated(ctx, pool, migrationDir)
		case "fresh":
			runDropAll(ctx, pool, migrationDir)
			runIncremental(ctx, pool, migrationDir)
		}
	}
}

func runMongoIndexes(ctx context.Context, cfg *config.Config) {
	client, err := repository.ConnectMongo(ctx, cfg.DatabaseURL, cfg.DBTimeout)
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := repository.EnsureMongoIndexes(ctx, client.Database(cfg.DBName)); err != nil {
		logging.Fatal("index creation failed", "error", err)
	}
	slog.Info("mongo indexes ensured", "database", cfg.DBName)
}

func findMigrationDir() string {
	dir := "migrations"
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		dir = "../migrations"
	}
	return dir
}

// collectUpFiles returns the sorted .up.sql file names in dir. The 000_
// helper scripts are not migrations and never match.
func collectUpFiles(dir string) []string {
	files, err := listUpFiles(dir)
	if err != nil {
		logging.Fatal("read migrations dir failed", "error", err)
	}
	return files
}

func listUpFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func ensureSchemaMigrations(ctx context.Context, pool *pgxpool.Pool) {
	_, _ = pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
}

func runIncremental(ctx context.Context, pool *pgxpool.Pool, dir string) {
	ensureSchemaMigrations(ctx, pool)

	upFiles := collectUpFiles(dir)
	applied := 0
	for i, filename := range upFiles {
		name := strings.TrimSuffix(filename, ".up.sql")

		var exists bool
		_ = pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE name=$1)", name).Scan(&exists)
		if exists {
			continue
		}

		sql, err := os.ReadFile(filepath.Join(dir, filename))
		if err != nil {
			logging.Fatal("read migration failed", "migration", name, "error", err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			logging.Fatal("migration failed", "migration", name, "error", err)
		}
		if _, err := pool.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", name); err != nil {
			logging.Fatal("record migration failed", "migration", name, "error", err)
		}
		applied++
		slog.Info("migration completed", "number", i+1, "migration", name)
	}

	if applied == 0 {
		slog.Info("all migrations already applied")
	} else {
		slog.Info("migrations completed", "count", applied)
	}
}

func runDropAll(ctx context.Context, pool *pgxpool.Pool, dir string) {
	slog.Info("dropping all tables")
	sql, err := os.ReadFile(filepath.Join(dir, "000_drop_all.sql"))
	if err != nil {
		logging.Fatal("read 000_drop_all.sql failed", "error", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		logging.Fatal("drop all failed", "error", err)
	}
	slog.Info("all tables dropped")
}

func runConsolidated(ctx context.Context, pool *pgxpool.Pool, dir string) {
	slog.Info("applying consolidated schema")
	sql, err := os.ReadFile(filepath.Join(dir, "000_consolidated.sql"))
	if err != nil {
		logging.Fatal("read 000_consolidated.sql failed", "error", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		logging.Fatal("consolidated apply failed", "error", err)
	}

	// mark every migration as applied
	ensureSchemaMigrations(ctx, pool)
	upFiles := collectUpFiles(dir)
	for _, filename := range upFiles {
		name := strings.TrimSuffix(filename, ".up.sql")
		_, _ = pool.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1) ON CONFLICT DO NOTHING", name)
	}
	slog.Info("consolidated schema applied", "migrations_marked", len(upFiles))
}

func runDown(ctx context.Context, pool *pgxpool.Pool, dir string) {
	ensureSchemaMigrations(ctx, pool)

	var name string
	err := pool.QueryRow(ctx, "SELECT name FROM schema_migrations ORDER BY name DESC LIMIT 1").Scan(&name)
	if err != nil {
		slog.Info("no migration to roll back")
		return
	}

	sql, err := os.ReadFile(filepath.Join(dir, downFileName(name)))
	if err != nil {
		logging.Fatal("read down migration failed", "migration", name, "error", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		logging.Fatal("rollback failed", "migration", name, "error", err)
	}
	if _, err := pool.Exec(ctx, "DELETE FROM schema_migrations WHERE name=$1", name); err != nil {
		logging.Fatal("unrecord migration failed", "migration", name, "error", err)
	}
	slog.Info("migration rolled back", "migration", name)
}

func downFileName(name string) string {
	return name + ".down.sql"
}
